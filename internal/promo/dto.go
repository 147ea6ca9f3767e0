// AngelaMos | 2026
// dto.go

package promo

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/foodhall/internal/core"
)

type CreatePromoRequest struct {
	Code          string         `json:"code"           validate:"required,min=3,max=32,alphanum"`
	Description   string         `json:"description"    validate:"max=500"`
	DiscountType  string         `json:"discount_type"  validate:"required,oneof=percentage fixed"`
	DiscountValue core.FlexFloat `json:"discount_value" validate:"gt=0"`
	MaxUses       *core.FlexInt  `json:"max_uses"       validate:"omitempty,gte=1"`
	ValidFrom     time.Time      `json:"valid_from"     validate:"required"`
	ValidUntil    time.Time      `json:"valid_until"    validate:"required,gtfield=ValidFrom"`
	IsActive      *bool          `json:"is_active"`
}

type UpdatePromoRequest = CreatePromoRequest

type UpdateActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type ValidateRequest struct {
	Code   string         `json:"code"   validate:"required,max=32"`
	Amount core.FlexFloat `json:"amount" validate:"gte=0"`
}

// Quote is the effect of a code on one amount.
type Quote struct {
	Code          string  `json:"code"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	Amount        float64 `json:"amount"`
	Discount      float64 `json:"discount"`
	FinalAmount   float64 `json:"final_amount"`
}

type PromoResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Description   string    `json:"description"`
	DiscountType  string    `json:"discount_type"`
	DiscountValue float64   `json:"discount_value"`
	MaxUses       *int      `json:"max_uses"`
	UsedCount     int       `json:"used_count"`
	ValidFrom     time.Time `json:"valid_from"`
	ValidUntil    time.Time `json:"valid_until"`
	IsActive      bool      `json:"is_active"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToPromoResponse(p *PromoCode, now time.Time) PromoResponse {
	return PromoResponse{
		ID:            p.ID,
		Code:          p.Code,
		Description:   p.Description,
		DiscountType:  p.DiscountType,
		DiscountValue: p.DiscountValue,
		MaxUses:       p.MaxUses,
		UsedCount:     p.UsedCount,
		ValidFrom:     p.ValidFrom,
		ValidUntil:    p.ValidUntil,
		IsActive:      p.IsActive,
		Status:        p.Status(now),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ToPromoResponseList(items []PromoCode, now time.Time) []PromoResponse {
	out := make([]PromoResponse, 0, len(items))
	for i := range items {
		out = append(out, ToPromoResponse(&items[i], now))
	}
	return out
}

// RegisterValidations adds the rules that span more than one field.
func RegisterValidations(v *validator.Validate) {
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		req, ok := sl.Current().Interface().(CreatePromoRequest)
		if !ok {
			return
		}
		if req.DiscountType == DiscountPercentage && req.DiscountValue > 100 {
			sl.ReportError(req.DiscountValue, "discount_value", "DiscountValue", "lte", "100")
		}
	}, CreatePromoRequest{})
}
