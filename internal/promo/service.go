// AngelaMos | 2026
// service.go

package promo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/foodhall/internal/listview"
)

type Service struct {
	repo  Repository
	codes *listview.Collection[PromoCode]
	now   func() time.Time
}

func NewService(repo Repository, store listview.Store) *Service {
	return &Service{
		repo:  repo,
		codes: listview.NewCollection("promo_codes", store, repo.ListAll),
		now:   time.Now,
	}
}

// ListSpec is built per call since status depends on the clock.
func (s *Service) ListSpec() listview.Spec[PromoCode] {
	now := s.now()
	return listview.Spec[PromoCode]{
		Search: func(p PromoCode) []string {
			return []string{p.Code, p.Description}
		},
		Filters: map[string]func(PromoCode) []string{
			"status":        func(p PromoCode) []string { return listview.One(p.Status(now)) },
			"discount_type": func(p PromoCode) []string { return listview.One(p.DiscountType) },
		},
		Sorts: map[string]func(a, b PromoCode) int{
			"newest": listview.Desc(listview.ByTime(func(p PromoCode) time.Time { return p.CreatedAt })),
			"code":   listview.ByString(func(p PromoCode) string { return p.Code }),
			"usage":  listview.Desc(listview.ByNumber(func(p PromoCode) int { return p.UsedCount })),
		},
		DefaultSort: "newest",
	}
}

func (s *Service) List(
	ctx context.Context,
	q listview.Query,
) (listview.Result[PromoCode], error) {
	items, err := s.codes.Items(ctx)
	if err != nil {
		return listview.Result[PromoCode]{}, err
	}
	return listview.Apply(items, q, s.ListSpec())
}

func (s *Service) Get(ctx context.Context, id string) (*PromoCode, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreatePromoRequest) (*PromoCode, error) {
	p := &PromoCode{ID: uuid.New().String(), IsActive: true}
	apply(p, req)

	err := s.codes.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdatePromoRequest,
) (*PromoCode, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(p, req)

	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetActive toggles a code. Setting the current state writes nothing.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (*PromoCode, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.IsActive == active {
		return p, nil
	}

	p.IsActive = active
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.codes.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
}

// Validate prices amount with code without consuming a use.
func (s *Service) Validate(ctx context.Context, code string, amount float64) (*Quote, error) {
	p, err := s.repo.GetByCode(ctx, NormalizeCode(code))
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !p.IsActive || !p.InWindow(now) || p.Exhausted() {
		return nil, unavailable(p, now)
	}

	return quote(p, amount), nil
}

// Redeem consumes one use of code and prices amount with it.
func (s *Service) Redeem(ctx context.Context, code string, amount float64) (*Quote, error) {
	var p *PromoCode

	err := s.codes.Mutate(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.repo.Redeem(ctx, NormalizeCode(code), s.now())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("redeem %s: %w", NormalizeCode(code), err)
	}

	return quote(p, amount), nil
}

// Release hands back a use taken by Redeem when the caller's own write failed.
func (s *Service) Release(ctx context.Context, code string) error {
	return s.codes.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.Release(ctx, NormalizeCode(code))
	})
}

func (s *Service) CountActive(ctx context.Context) (int, error) {
	return s.repo.CountActive(ctx, s.now())
}

func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) save(ctx context.Context, p *PromoCode) error {
	return s.codes.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, p)
	})
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func apply(p *PromoCode, req CreatePromoRequest) {
	p.Code = NormalizeCode(req.Code)
	p.Description = strings.TrimSpace(req.Description)
	p.DiscountType = req.DiscountType
	p.DiscountValue = req.DiscountValue.Float64()
	p.MaxUses = nil
	if req.MaxUses != nil {
		n := req.MaxUses.Int()
		p.MaxUses = &n
	}
	p.ValidFrom = req.ValidFrom
	p.ValidUntil = req.ValidUntil
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
}

func quote(p *PromoCode, amount float64) *Quote {
	discount := p.Discount(amount)
	return &Quote{
		Code:          p.Code,
		DiscountType:  p.DiscountType,
		DiscountValue: p.DiscountValue,
		Amount:        amount,
		Discount:      discount,
		FinalAmount:   roundCents(amount - discount),
	}
}

