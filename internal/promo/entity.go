// AngelaMos | 2026
// entity.go

package promo

import (
	"math"
	"time"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusExpired  = "expired"
)

type PromoCode struct {
	ID            string    `db:"id"`
	Code          string    `db:"code"`
	Description   string    `db:"description"`
	DiscountType  string    `db:"discount_type"`
	DiscountValue float64   `db:"discount_value"`
	MaxUses       *int      `db:"max_uses"`
	UsedCount     int       `db:"used_count"`
	ValidFrom     time.Time `db:"valid_from"`
	ValidUntil    time.Time `db:"valid_until"`
	IsActive      bool      `db:"is_active"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (p *PromoCode) Exhausted() bool {
	return p.MaxUses != nil && p.UsedCount >= *p.MaxUses
}

// Status is the admin list vocabulary. A code past its window or out of
// uses reads as expired even while its active flag is still set.
func (p *PromoCode) Status(now time.Time) string {
	switch {
	case !p.IsActive:
		return StatusInactive
	case now.After(p.ValidUntil), p.Exhausted():
		return StatusExpired
	default:
		return StatusActive
	}
}

func (p *PromoCode) InWindow(now time.Time) bool {
	return !now.Before(p.ValidFrom) && !now.After(p.ValidUntil)
}

// Discount is the amount taken off amount, never more than amount itself.
func (p *PromoCode) Discount(amount float64) float64 {
	if amount <= 0 {
		return 0
	}

	var d float64
	switch p.DiscountType {
	case DiscountPercentage:
		d = amount * p.DiscountValue / 100
	case DiscountFixed:
		d = p.DiscountValue
	}

	return roundCents(math.Min(d, amount))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
