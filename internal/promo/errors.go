// AngelaMos | 2026
// errors.go

package promo

import (
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/foodhall/internal/core"
)

var (
	ErrInactive   = fmt.Errorf("promo code is inactive: %w", core.ErrConflict)
	ErrNotStarted = fmt.Errorf("promo code is not valid yet: %w", core.ErrConflict)
	ErrExpired    = fmt.Errorf("promo code has expired: %w", core.ErrConflict)
	ErrExhausted  = fmt.Errorf("promo code has no uses left: %w", core.ErrExhausted)
)

// unavailable explains why p cannot be redeemed at now.
func unavailable(p *PromoCode, now time.Time) error {
	switch {
	case !p.IsActive:
		return ErrInactive
	case now.Before(p.ValidFrom):
		return ErrNotStarted
	case now.After(p.ValidUntil):
		return ErrExpired
	case p.Exhausted():
		return ErrExhausted
	default:
		return fmt.Errorf("promo code %s: %w", p.Code, core.ErrConflict)
	}
}

// IsUnavailable reports a code that exists but cannot be applied.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrInactive) ||
		errors.Is(err, ErrNotStarted) ||
		errors.Is(err, ErrExpired) ||
		errors.Is(err, ErrExhausted)
}
