// AngelaMos | 2026
// dto.go

package menu

import (
	"math"
	"time"

	"github.com/carterperez-dev/foodhall/internal/core"
)

type CreateItemRequest struct {
	VendorName   string         `json:"vendor_name"    validate:"required,max=100"`
	Name         string         `json:"name"           validate:"required,max=120"`
	Description  string         `json:"description"    validate:"max=1000"`
	Price        core.FlexFloat `json:"price"          validate:"gte=0"`
	Category     string         `json:"category"       validate:"required,max=64"`
	Cuisine      string         `json:"cuisine"        validate:"required,max=64"`
	IsVegetarian bool           `json:"is_vegetarian"`
	IsVegan      bool           `json:"is_vegan"`
	IsGlutenFree bool           `json:"is_gluten_free"`
	IsHalal      bool           `json:"is_halal"`
	IsSpicy      bool           `json:"is_spicy"`
	Rating       core.FlexFloat `json:"rating"         validate:"gte=0,lte=5"`
	IsAvailable  *bool          `json:"is_available"`
	RecipeID     string         `json:"recipe_id"      validate:"omitempty,uuid"`
}

type UpdateItemRequest = CreateItemRequest

type AvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}

type CreateRecipeRequest struct {
	Name        string              `json:"name"        validate:"required,max=120"`
	Servings    core.FlexInt        `json:"servings"    validate:"gte=1,lte=1000"`
	Ingredients []IngredientRequest `json:"ingredients" validate:"required,min=1,max=100,dive"`
}

type IngredientRequest struct {
	Name            string         `json:"name"              validate:"required,max=120"`
	Quantity        core.FlexFloat `json:"quantity"          validate:"gt=0"`
	Unit            string         `json:"unit"              validate:"max=32"`
	CaloriesPerUnit core.FlexFloat `json:"calories_per_unit" validate:"gte=0"`
}

type ItemResponse struct {
	ID           string     `json:"id"`
	VendorName   string     `json:"vendor_name"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Price        float64    `json:"price"`
	Category     string     `json:"category"`
	Cuisine      string     `json:"cuisine"`
	Dietary      []string   `json:"dietary"`
	IsVegetarian bool       `json:"is_vegetarian"`
	IsVegan      bool       `json:"is_vegan"`
	IsGlutenFree bool       `json:"is_gluten_free"`
	IsHalal      bool       `json:"is_halal"`
	IsSpicy      bool       `json:"is_spicy"`
	Rating       float64    `json:"rating"`
	IsAvailable  bool       `json:"is_available"`
	RecipeID     *string    `json:"recipe_id"`
	Nutrition    *Nutrition `json:"nutrition,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Nutrition struct {
	TotalCalories      float64 `json:"total_calories"`
	CaloriesPerServing float64 `json:"calories_per_serving"`
	Servings           int     `json:"servings"`
}

type RecipeResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Servings    int                  `json:"servings"`
	Ingredients []IngredientResponse `json:"ingredients"`
	Nutrition   Nutrition            `json:"nutrition"`
	CreatedAt   time.Time            `json:"created_at"`
}

type IngredientResponse struct {
	Name            string  `json:"name"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit"`
	CaloriesPerUnit float64 `json:"calories_per_unit"`
	Calories        float64 `json:"calories"`
}

func ToItemResponse(i *Item) ItemResponse {
	return ItemResponse{
		ID:           i.ID,
		VendorName:   i.VendorName,
		Name:         i.Name,
		Description:  i.Description,
		Price:        i.Price,
		Category:     i.Category,
		Cuisine:      i.Cuisine,
		Dietary:      i.Dietary(),
		IsVegetarian: i.IsVegetarian,
		IsVegan:      i.IsVegan,
		IsGlutenFree: i.IsGlutenFree,
		IsHalal:      i.IsHalal,
		IsSpicy:      i.IsSpicy,
		Rating:       i.Rating,
		IsAvailable:  i.IsAvailable,
		RecipeID:     i.RecipeID,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func ToItemResponseList(items []Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, ToItemResponse(&items[i]))
	}
	return out
}

func ToDetailResponse(d *Detail) ItemResponse {
	resp := ToItemResponse(&d.Item)
	if d.Recipe != nil {
		n := nutrition(d.Recipe)
		resp.Nutrition = &n
	}
	return resp
}

func ToRecipeResponse(r *Recipe) RecipeResponse {
	ingredients := make([]IngredientResponse, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, IngredientResponse{
			Name:            ing.Name,
			Quantity:        ing.Quantity,
			Unit:            ing.Unit,
			CaloriesPerUnit: ing.CaloriesPerUnit,
			Calories:        round1(ing.Calories()),
		})
	}
	return RecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Servings:    r.Servings,
		Ingredients: ingredients,
		Nutrition:   nutrition(r),
		CreatedAt:   r.CreatedAt,
	}
}

func nutrition(r *Recipe) Nutrition {
	return Nutrition{
		TotalCalories:      round1(r.TotalCalories()),
		CaloriesPerServing: round1(r.CaloriesPerServing()),
		Servings:           r.Servings,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
