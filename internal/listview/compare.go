// AngelaMos | 2026
// compare.go

package listview

import (
	"cmp"
	"strings"
	"time"
)

func ByString[T any](field func(T) string) func(a, b T) int {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(field(a)), strings.ToLower(field(b)))
	}
}

func ByNumber[T any, N cmp.Ordered](field func(T) N) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(field(a), field(b))
	}
}

func ByTime[T any](field func(T) time.Time) func(a, b T) int {
	return func(a, b T) int {
		return field(a).Compare(field(b))
	}
}

func Desc[T any](c func(a, b T) int) func(a, b T) int {
	return func(a, b T) int {
		return c(b, a)
	}
}

// Then breaks ties of the first comparator with the following ones.
func Then[T any](cmps ...func(a, b T) int) func(a, b T) int {
	return func(a, b T) int {
		for _, c := range cmps {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}
