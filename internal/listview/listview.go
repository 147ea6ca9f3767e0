// AngelaMos | 2026
// listview.go

// Package listview filters, searches and sorts fetched collections the way
// every admin dashboard and the public menu present them.
package listview

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strings"

	"github.com/carterperez-dev/foodhall/internal/core"
)

// FilterAll is the filter value that disables a filter.
const FilterAll = "all"

type Query struct {
	Search  string
	Filters map[string]string
	Sort    string
}

// Spec describes how one entity type is searched, filtered and sorted.
type Spec[T any] struct {
	// Search returns the fields matched by free-text search.
	Search func(item T) []string
	// Filters maps a filter key to the enum value it compares against.
	// A filter func may return several values; the item matches when any does.
	Filters map[string]func(item T) []string
	// Sorts maps a sort key to a three-way comparator.
	Sorts       map[string]func(a, b T) int
	DefaultSort string
}

type Result[T any] struct {
	Items   []T
	Total   int
	Matched int
}

// ParseQuery reads search and sort. Every other key is taken as a filter;
// undeclared ones are kept so Validate can reject them.
func ParseQuery[T any](values url.Values, spec Spec[T]) Query {
	q := Query{
		Search:  values.Get("search"),
		Sort:    values.Get("sort"),
		Filters: make(map[string]string),
	}

	for key := range values {
		if key == "search" || key == "sort" {
			continue
		}
		v := values.Get(key)
		if _, declared := spec.Filters[key]; declared && v == "" {
			continue
		}
		q.Filters[key] = v
	}

	return q
}

// Validate rejects filter and sort keys that are not declared.
func (s Spec[T]) Validate(q Query) error {
	for key := range q.Filters {
		if _, ok := s.Filters[key]; !ok {
			return core.ValidationError(
				fmt.Sprintf("unknown filter %q", key),
				map[string][]string{key: {"is not a supported filter"}},
			)
		}
	}

	if q.Sort != "" {
		if _, ok := s.Sorts[q.Sort]; !ok {
			return core.ValidationError(
				fmt.Sprintf("unknown sort %q", q.Sort),
				map[string][]string{"sort": {"must be one of: " + strings.Join(s.SortKeys(), ", ")}},
			)
		}
	}

	return nil
}

func (s Spec[T]) SortKeys() []string {
	keys := make([]string, 0, len(s.Sorts))
	for k := range s.Sorts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Apply returns the items matching every active filter and the search text,
// ordered by the requested comparator. items is never modified.
func Apply[T any](items []T, q Query, spec Spec[T]) (Result[T], error) {
	if err := spec.Validate(q); err != nil {
		return Result[T]{}, err
	}

	needle := strings.ToLower(strings.TrimSpace(q.Search))

	active := make(map[string]string, len(q.Filters))
	for key, value := range q.Filters {
		value = strings.TrimSpace(value)
		if value == "" || strings.EqualFold(value, FilterAll) {
			continue
		}
		active[key] = strings.ToLower(value)
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if !matchesFilters(item, active, spec) {
			continue
		}
		if needle != "" && !matchesSearch(item, needle, spec) {
			continue
		}
		out = append(out, item)
	}

	sortKey := q.Sort
	if sortKey == "" {
		sortKey = spec.DefaultSort
	}
	if cmp, ok := spec.Sorts[sortKey]; ok {
		slices.SortStableFunc(out, cmp)
	}

	return Result[T]{
		Items:   out,
		Total:   len(items),
		Matched: len(out),
	}, nil
}

func matchesFilters[T any](item T, active map[string]string, spec Spec[T]) bool {
	for key, want := range active {
		fn := spec.Filters[key]
		matched := false
		for _, got := range fn(item) {
			if strings.ToLower(got) == want {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func matchesSearch[T any](item T, needle string, spec Spec[T]) bool {
	if spec.Search == nil {
		return true
	}
	for _, field := range spec.Search(item) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// One wraps a single enum value for use in Spec.Filters.
func One(v string) []string {
	return []string{v}
}

// Bool renders a flag as the "true"/"false" filter vocabulary.
func Bool(b bool) []string {
	if b {
		return []string{"true"}
	}
	return []string{"false"}
}
