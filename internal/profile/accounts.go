// AngelaMos | 2026
// accounts.go

package profile

import (
	"context"

	"github.com/carterperez-dev/foodhall/internal/auth"
)

// accountStore exposes profiles to the auth flows.
type accountStore struct {
	svc *Service
}

func NewAccountStore(svc *Service) auth.AccountStore {
	return &accountStore{svc: svc}
}

func (a *accountStore) GetByEmail(ctx context.Context, email string) (*auth.Account, error) {
	p, err := a.svc.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return toAccount(p), nil
}

func (a *accountStore) GetByID(ctx context.Context, id string) (*auth.Account, error) {
	p, err := a.svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAccount(p), nil
}

func (a *accountStore) Create(ctx context.Context, in auth.NewAccount) (*auth.Account, error) {
	p := &Profile{
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         in.Role,
	}
	if err := a.svc.Create(ctx, p); err != nil {
		return nil, err
	}
	return toAccount(p), nil
}

func (a *accountStore) IncrementTokenVersion(ctx context.Context, id string) error {
	return a.svc.IncrementTokenVersion(ctx, id)
}

func (a *accountStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return a.svc.UpdatePassword(ctx, id, passwordHash)
}

func toAccount(p *Profile) *auth.Account {
	return &auth.Account{
		ID:           p.ID,
		Email:        p.Email,
		Name:         p.Name,
		PasswordHash: p.PasswordHash,
		Role:         p.Role,
		IsActive:     p.IsActive,
		TokenVersion: p.TokenVersion,
	}
}
