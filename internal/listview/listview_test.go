// AngelaMos | 2026
// listview_test.go

package listview

import (
	"errors"
	"net/url"
	"slices"
	"testing"

	"github.com/carterperez-dev/foodhall/internal/core"
)

type dish struct {
	Name     string
	Cuisine  string
	Category string
	Price    float64
	Rating   float64
	Tags     []string
}

var dishSpec = Spec[dish]{
	Search: func(d dish) []string { return []string{d.Name, d.Cuisine} },
	Filters: map[string]func(dish) []string{
		"category": func(d dish) []string { return One(d.Category) },
		"cuisine":  func(d dish) []string { return One(d.Cuisine) },
		"dietary":  func(d dish) []string { return d.Tags },
	},
	Sorts: map[string]func(a, b dish) int{
		"name":       ByString(func(d dish) string { return d.Name }),
		"price_low":  ByNumber(func(d dish) float64 { return d.Price }),
		"price_high": Desc(ByNumber(func(d dish) float64 { return d.Price })),
		"rating":     Desc(ByNumber(func(d dish) float64 { return d.Rating })),
	},
}

func sampleDishes() []dish {
	return []dish{
		{Name: "Pad Thai", Cuisine: "Thai", Category: "mains", Price: 380, Rating: 4.6, Tags: []string{"spicy"}},
		{Name: "Nasi Goreng", Cuisine: "Indonesian", Category: "mains", Price: 320, Rating: 4.7},
		{Name: "Mango Sticky Rice", Cuisine: "Thai", Category: "desserts", Price: 180, Rating: 4.9, Tags: []string{"vegan", "gluten_free"}},
		{Name: "Tom Yum", Cuisine: "Thai", Category: "soups", Price: 250, Rating: 4.6, Tags: []string{"spicy", "gluten_free"}},
	}
}

func names(items []dish) []string {
	out := make([]string, 0, len(items))
	for _, d := range items {
		out = append(out, d.Name)
	}
	return out
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	items := sampleDishes()[:2]

	res, err := Apply(items, Query{Search: "nasi"}, dishSpec)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if got := names(res.Items); !slices.Equal(got, []string{"Nasi Goreng"}) {
		t.Errorf("expected only Nasi Goreng, got %v", got)
	}
	if res.Total != 2 || res.Matched != 1 {
		t.Errorf("expected total 2 matched 1, got %d/%d", res.Total, res.Matched)
	}
}

func TestApplySortPriceLow(t *testing.T) {
	items := sampleDishes()[:2]

	res, err := Apply(items, Query{Sort: "price_low"}, dishSpec)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	want := []string{"Nasi Goreng", "Pad Thai"}
	if got := names(res.Items); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestApplyFiltersCompose(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "category only",
			query: Query{Filters: map[string]string{"category": "mains"}},
			want:  []string{"Pad Thai", "Nasi Goreng"},
		},
		{
			name:  "filter value is case insensitive",
			query: Query{Filters: map[string]string{"cuisine": "THAI"}, Sort: "name"},
			want:  []string{"Mango Sticky Rice", "Pad Thai", "Tom Yum"},
		},
		{
			name:  "all disables a filter",
			query: Query{Filters: map[string]string{"category": "all"}, Sort: "price_high"},
			want:  []string{"Pad Thai", "Nasi Goreng", "Tom Yum", "Mango Sticky Rice"},
		},
		{
			name: "multi valued filter plus search",
			query: Query{
				Search:  "thai",
				Filters: map[string]string{"dietary": "gluten_free"},
				Sort:    "price_low",
			},
			want: []string{"Mango Sticky Rice", "Tom Yum"},
		},
		{
			name: "every filter must match",
			query: Query{
				Filters: map[string]string{"cuisine": "thai", "category": "mains"},
			},
			want: []string{"Pad Thai"},
		},
		{
			name:  "no match yields empty",
			query: Query{Search: "sushi"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Apply(sampleDishes(), tt.query, dishSpec)
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if got := names(res.Items); !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestApplyStableOnTies(t *testing.T) {
	res, err := Apply(sampleDishes(), Query{Sort: "rating"}, dishSpec)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	want := []string{"Mango Sticky Rice", "Nasi Goreng", "Pad Thai", "Tom Yum"}
	if got := names(res.Items); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestApplyIsIdempotentAndSubset(t *testing.T) {
	queries := []Query{
		{Search: "a"},
		{Search: "THAI", Sort: "price_high"},
		{Filters: map[string]string{"dietary": "spicy"}, Sort: "rating"},
		{Filters: map[string]string{"category": "mains", "cuisine": "indonesian"}},
		{},
	}

	items := sampleDishes()
	for _, q := range queries {
		first, err := Apply(items, q, dishSpec)
		if err != nil {
			t.Fatalf("apply %+v: %v", q, err)
		}

		second, err := Apply(first.Items, q, dishSpec)
		if err != nil {
			t.Fatalf("reapply %+v: %v", q, err)
		}

		if !slices.Equal(names(first.Items), names(second.Items)) {
			t.Errorf("query %+v not idempotent: %v then %v",
				q, names(first.Items), names(second.Items))
		}

		all := names(items)
		for _, n := range names(first.Items) {
			if !slices.Contains(all, n) {
				t.Errorf("result item %q is not in the source collection", n)
			}
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := sampleDishes()
	before := names(items)

	if _, err := Apply(items, Query{Sort: "price_low"}, dishSpec); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if !slices.Equal(before, names(items)) {
		t.Errorf("input order changed: %v -> %v", before, names(items))
	}
}

func TestApplyRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		field string
	}{
		{name: "sort", query: Query{Sort: "popularity"}, field: "sort"},
		{name: "filter", query: Query{Filters: map[string]string{"vendor": "x"}}, field: "vendor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(sampleDishes(), tt.query, dishSpec)
			if !errors.Is(err, core.ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
			appErr, ok := core.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if _, ok := appErr.Fields[tt.field]; !ok {
				t.Errorf("expected field error on %q, got %v", tt.field, appErr.Fields)
			}
		})
	}
}

func TestParseQuery(t *testing.T) {
	values := url.Values{
		"search":   {"pad"},
		"sort":     {"price_low"},
		"category": {"mains"},
		"dietary":  {""},
	}

	q := ParseQuery(values, dishSpec)

	if q.Search != "pad" || q.Sort != "price_low" {
		t.Errorf("unexpected query %+v", q)
	}
	if q.Filters["category"] != "mains" {
		t.Errorf("expected category filter, got %v", q.Filters)
	}
	if _, ok := q.Filters["dietary"]; ok {
		t.Error("empty declared filter should be inactive")
	}
	if err := dishSpec.Validate(q); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestParseQueryRejectsUndeclaredKeys(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"misspelt filter", url.Values{"categroy": {"mains"}}},
		{"empty misspelt filter", url.Values{"categroy": {""}}},
		{"pagination is not supported", url.Values{"page": {"2"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ParseQuery(tt.values, dishSpec)
			_, err := Apply(sampleDishes(), q, dishSpec)
			if !errors.Is(err, core.ErrInvalidInput) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}
