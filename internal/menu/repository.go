// AngelaMos | 2026
// repository.go

package menu

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/foodhall/internal/core"
)

type Repository interface {
	Create(ctx context.Context, i *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	ListAll(ctx context.Context) ([]Item, error)
	Update(ctx context.Context, i *Item) error
	SetAvailable(ctx context.Context, i *Item) error
	Delete(ctx context.Context, id string) error
	CreateRecipe(ctx context.Context, r *Recipe) error
	GetRecipe(ctx context.Context, id string) (*Recipe, error)
}

type repository struct {
	db core.DBTX
	tx core.TxRunner
}

func NewRepository(db core.DBTX, tx core.TxRunner) Repository {
	return &repository{db: db, tx: tx}
}

const itemColumns = `
	id, vendor_name, name, description, price, category, cuisine,
	is_vegetarian, is_vegan, is_gluten_free, is_halal, is_spicy, rating,
	is_available, recipe_id, created_at, updated_at`

func (r *repository) Create(ctx context.Context, i *Item) error {
	query := `
		INSERT INTO menu_items (
			id, vendor_name, name, description, price, category, cuisine,
			is_vegetarian, is_vegan, is_gluten_free, is_halal, is_spicy,
			rating, is_available, recipe_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`

	return core.GetOne(ctx, r.db, i, "create menu item", query,
		i.ID,
		i.VendorName,
		i.Name,
		i.Description,
		i.Price,
		i.Category,
		i.Cuisine,
		i.IsVegetarian,
		i.IsVegan,
		i.IsGlutenFree,
		i.IsHalal,
		i.IsSpicy,
		i.Rating,
		i.IsAvailable,
		i.RecipeID,
	)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Item, error) {
	var i Item
	err := core.GetOne(ctx, r.db, &i, "get menu item",
		`SELECT `+itemColumns+` FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Item, error) {
	var items []Item
	err := r.db.SelectContext(ctx, &items,
		`SELECT `+itemColumns+` FROM menu_items ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, i *Item) error {
	query := `
		UPDATE menu_items
		SET vendor_name = $2, name = $3, description = $4, price = $5,
			category = $6, cuisine = $7, is_vegetarian = $8, is_vegan = $9,
			is_gluten_free = $10, is_halal = $11, is_spicy = $12, rating = $13,
			is_available = $14, recipe_id = $15, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return core.GetOne(ctx, r.db, &i.UpdatedAt, "update menu item", query,
		i.ID,
		i.VendorName,
		i.Name,
		i.Description,
		i.Price,
		i.Category,
		i.Cuisine,
		i.IsVegetarian,
		i.IsVegan,
		i.IsGlutenFree,
		i.IsHalal,
		i.IsSpicy,
		i.Rating,
		i.IsAvailable,
		i.RecipeID,
	)
}

func (r *repository) SetAvailable(ctx context.Context, i *Item) error {
	query := `
		UPDATE menu_items
		SET is_available = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return core.GetOne(ctx, r.db, &i.UpdatedAt, "set menu item availability", query,
		i.ID, i.IsAvailable)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return core.ExecOne(ctx, r.db, "delete menu item",
		`DELETE FROM menu_items WHERE id = $1`, id)
}

// CreateRecipe stores the recipe and its ingredients in one transaction.
func (r *repository) CreateRecipe(ctx context.Context, rec *Recipe) error {
	return r.tx.InTx(ctx, func(tx core.DBTX) error {
		err := core.GetOne(ctx, tx, &rec.CreatedAt, "create recipe", `
			INSERT INTO recipes (id, name, servings)
			VALUES ($1, $2, $3)
			RETURNING created_at`,
			rec.ID, rec.Name, rec.Servings)
		if err != nil {
			return err
		}

		for idx := range rec.Ingredients {
			ing := &rec.Ingredients[idx]
			if ing.ID == "" {
				ing.ID = uuid.New().String()
			}
			ing.RecipeID = rec.ID

			_, err := tx.ExecContext(ctx, `
				INSERT INTO recipe_ingredients (
					id, recipe_id, name, quantity, unit, calories_per_unit
				) VALUES ($1, $2, $3, $4, $5, $6)`,
				ing.ID, ing.RecipeID, ing.Name, ing.Quantity, ing.Unit, ing.CaloriesPerUnit,
			)
			if err != nil {
				return fmt.Errorf("create recipe ingredient: %w", err)
			}
		}
		return nil
	})
}

func (r *repository) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	var rec Recipe
	err := core.GetOne(ctx, r.db, &rec, "get recipe",
		`SELECT id, name, servings, created_at FROM recipes WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &rec.Ingredients, `
		SELECT id, recipe_id, name, quantity, unit, calories_per_unit
		FROM recipe_ingredients
		WHERE recipe_id = $1
		ORDER BY name`, id)
	if err != nil {
		return nil, fmt.Errorf("list recipe ingredients: %w", err)
	}
	return &rec, nil
}
