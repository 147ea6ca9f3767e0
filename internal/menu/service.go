// AngelaMos | 2026
// service.go

package menu

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/foodhall/internal/core"
	"github.com/carterperez-dev/foodhall/internal/listview"
)

type Service struct {
	repo  Repository
	items *listview.Collection[Item]
}

func NewService(repo Repository, store listview.Store) *Service {
	return &Service{
		repo:  repo,
		items: listview.NewCollection("menu_items", store, repo.ListAll),
	}
}

var listSpec = listview.Spec[Item]{
	Search: func(i Item) []string {
		return []string{i.Name, i.Description, i.VendorName, i.Cuisine}
	},
	Filters: map[string]func(Item) []string{
		"category":  func(i Item) []string { return listview.One(i.Category) },
		"cuisine":   func(i Item) []string { return listview.One(i.Cuisine) },
		"dietary":   func(i Item) []string { return i.Dietary() },
		"vendor":    func(i Item) []string { return listview.One(i.VendorName) },
		"available": func(i Item) []string { return listview.Bool(i.IsAvailable) },
	},
	Sorts: map[string]func(a, b Item) int{
		"name":       byName,
		"name_desc":  listview.Desc(byName),
		"price_low":  listview.Then(byPrice, byName),
		"price_high": listview.Then(listview.Desc(byPrice), byName),
		"rating":     listview.Then(listview.Desc(listview.ByNumber(func(i Item) float64 { return i.Rating })), byName),
	},
	DefaultSort: "name",
}

var (
	byName  = listview.ByString(func(i Item) string { return i.Name })
	byPrice = listview.ByNumber(func(i Item) float64 { return i.Price })
)

func ListSpec() listview.Spec[Item] {
	return listSpec
}

// Detail is a menu item with the recipe its nutrition is derived from.
type Detail struct {
	Item   Item
	Recipe *Recipe
}

// List applies q to the whole menu. Public callers pass onlyAvailable to hide
// dishes that are switched off.
func (s *Service) List(
	ctx context.Context,
	q listview.Query,
	onlyAvailable bool,
) (listview.Result[Item], error) {
	items, err := s.items.Items(ctx)
	if err != nil {
		return listview.Result[Item]{}, err
	}

	if onlyAvailable {
		visible := make([]Item, 0, len(items))
		for _, i := range items {
			if i.IsAvailable {
				visible = append(visible, i)
			}
		}
		items = visible
	}

	return listview.Apply(items, q, listSpec)
}

func (s *Service) Get(ctx context.Context, id string, onlyAvailable bool) (*Detail, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if onlyAvailable && !item.IsAvailable {
		return nil, core.NotFoundError("menu item")
	}

	d := &Detail{Item: *item}
	if item.RecipeID != nil {
		rec, err := s.repo.GetRecipe(ctx, *item.RecipeID)
		switch {
		case err == nil:
			d.Recipe = rec
		case !errors.Is(err, core.ErrNotFound):
			return nil, err
		}
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, req CreateItemRequest) (*Item, error) {
	i := &Item{ID: uuid.New().String(), IsAvailable: true}
	apply(i, req)

	err := s.items.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, i)
	})
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateItemRequest) (*Item, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(i, req)

	err = s.items.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, i)
	})
	if err != nil {
		return nil, err
	}
	return i, nil
}

// SetAvailable toggles whether the dish is offered. Setting the current value
// writes nothing.
func (s *Service) SetAvailable(ctx context.Context, id string, available bool) (*Item, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i.IsAvailable == available {
		return i, nil
	}

	i.IsAvailable = available
	err = s.items.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.SetAvailable(ctx, i)
	})
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.items.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
}

func (s *Service) CreateRecipe(ctx context.Context, req CreateRecipeRequest) (*Recipe, error) {
	rec := &Recipe{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Servings:    req.Servings.Int(),
		Ingredients: make([]Ingredient, 0, len(req.Ingredients)),
	}
	for _, ing := range req.Ingredients {
		rec.Ingredients = append(rec.Ingredients, Ingredient{
			Name:            strings.TrimSpace(ing.Name),
			Quantity:        ing.Quantity.Float64(),
			Unit:            strings.TrimSpace(ing.Unit),
			CaloriesPerUnit: ing.CaloriesPerUnit.Float64(),
		})
	}

	if err := s.repo.CreateRecipe(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	return s.repo.GetRecipe(ctx, id)
}

func apply(i *Item, req CreateItemRequest) {
	i.VendorName = strings.TrimSpace(req.VendorName)
	i.Name = strings.TrimSpace(req.Name)
	i.Description = strings.TrimSpace(req.Description)
	i.Price = req.Price.Float64()
	i.Category = strings.TrimSpace(req.Category)
	i.Cuisine = strings.TrimSpace(req.Cuisine)
	i.IsVegetarian = req.IsVegetarian
	i.IsVegan = req.IsVegan
	i.IsGlutenFree = req.IsGlutenFree
	i.IsHalal = req.IsHalal
	i.IsSpicy = req.IsSpicy
	i.Rating = req.Rating.Float64()
	if req.IsAvailable != nil {
		i.IsAvailable = *req.IsAvailable
	}
	i.RecipeID = nil
	if req.RecipeID != "" {
		id := req.RecipeID
		i.RecipeID = &id
	}
}
