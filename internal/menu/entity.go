// AngelaMos | 2026
// entity.go

package menu

import (
	"time"
)

const (
	DietVegetarian = "vegetarian"
	DietVegan      = "vegan"
	DietGlutenFree = "gluten_free"
	DietHalal      = "halal"
	DietSpicy      = "spicy"
)

type Item struct {
	ID           string    `db:"id"`
	VendorName   string    `db:"vendor_name"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	Price        float64   `db:"price"`
	Category     string    `db:"category"`
	Cuisine      string    `db:"cuisine"`
	IsVegetarian bool      `db:"is_vegetarian"`
	IsVegan      bool      `db:"is_vegan"`
	IsGlutenFree bool      `db:"is_gluten_free"`
	IsHalal      bool      `db:"is_halal"`
	IsSpicy      bool      `db:"is_spicy"`
	Rating       float64   `db:"rating"`
	IsAvailable  bool      `db:"is_available"`
	RecipeID     *string   `db:"recipe_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Dietary lists the dietary labels that apply to the item.
func (i *Item) Dietary() []string {
	labels := make([]string, 0, 5)
	for _, f := range []struct {
		set   bool
		label string
	}{
		{i.IsVegetarian, DietVegetarian},
		{i.IsVegan, DietVegan},
		{i.IsGlutenFree, DietGlutenFree},
		{i.IsHalal, DietHalal},
		{i.IsSpicy, DietSpicy},
	} {
		if f.set {
			labels = append(labels, f.label)
		}
	}
	return labels
}

type Recipe struct {
	ID          string       `db:"id"`
	Name        string       `db:"name"`
	Servings    int          `db:"servings"`
	CreatedAt   time.Time    `db:"created_at"`
	Ingredients []Ingredient `db:"-"`
}

type Ingredient struct {
	ID              string  `db:"id"`
	RecipeID        string  `db:"recipe_id"`
	Name            string  `db:"name"`
	Quantity        float64 `db:"quantity"`
	Unit            string  `db:"unit"`
	CaloriesPerUnit float64 `db:"calories_per_unit"`
}

func (i Ingredient) Calories() float64 {
	return i.Quantity * i.CaloriesPerUnit
}

func (r *Recipe) TotalCalories() float64 {
	var total float64
	for _, ing := range r.Ingredients {
		total += ing.Calories()
	}
	return total
}

func (r *Recipe) CaloriesPerServing() float64 {
	if r.Servings <= 0 {
		return 0
	}
	return r.TotalCalories() / float64(r.Servings)
}
