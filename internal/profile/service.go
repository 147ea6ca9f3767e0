// AngelaMos | 2026
// service.go

package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/foodhall/internal/core"
	"github.com/carterperez-dev/foodhall/internal/listview"
)

type Service struct {
	repo     Repository
	profiles *listview.Collection[Profile]
}

func NewService(repo Repository, store listview.Store) *Service {
	return &Service{
		repo:     repo,
		profiles: listview.NewCollection("profiles", store, repo.ListAll),
	}
}

var listSpec = listview.Spec[Profile]{
	Search: func(p Profile) []string {
		return []string{p.Name, p.Email}
	},
	Filters: map[string]func(Profile) []string{
		"role":   func(p Profile) []string { return listview.One(p.Role) },
		"status": func(p Profile) []string { return listview.One(p.Status()) },
	},
	Sorts: map[string]func(a, b Profile) int{
		"newest": listview.Desc(listview.ByTime(func(p Profile) time.Time { return p.CreatedAt })),
		"oldest": listview.ByTime(func(p Profile) time.Time { return p.CreatedAt }),
		"name":   listview.ByString(func(p Profile) string { return p.Name }),
	},
	DefaultSort: "newest",
}

func ListSpec() listview.Spec[Profile] {
	return listSpec
}

func (s *Service) List(
	ctx context.Context,
	q listview.Query,
) (listview.Result[Profile], error) {
	items, err := s.profiles.Items(ctx)
	if err != nil {
		return listview.Result[Profile]{}, err
	}
	return listview.Apply(items, q, listSpec)
}

func (s *Service) Get(ctx context.Context, id string) (*Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(email))
}

func (s *Service) Create(ctx context.Context, p *Profile) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.Email = strings.ToLower(p.Email)
	if p.Role == "" {
		p.Role = core.RoleGuest
	}

	return s.profiles.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, p)
	})
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateProfileRequest,
) (*Profile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		p.Phone = strings.TrimSpace(*req.Phone)
	}

	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetRole changes a profile's role. Setting the current role is a no-op.
func (s *Service) SetRole(ctx context.Context, id, role string) (*Profile, error) {
	if !core.IsRole(role) {
		return nil, fmt.Errorf("set role: invalid role %q: %w", role, core.ErrInvalidInput)
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Role == role {
		return p, nil
	}

	p.Role = role
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}

	// outstanding tokens carry the old role
	if err := s.repo.IncrementTokenVersion(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

// SetActive enables or disables a profile. Setting the current state is a no-op.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (*Profile, error) {
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

func (s *Service) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

func (s *Service) IncrementTokenVersion(ctx context.Context, id string) error {
	return s.repo.IncrementTokenVersion(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.profiles.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.SoftDelete(ctx, id)
	})
}

// CanDelete allows self-deletion and admin deletion of non-admin profiles.
func (s *Service) CanDelete(ctx context.Context, requesterID, targetID string) error {
	if requesterID == targetID {
		return nil
	}

	requester, err := s.repo.GetByID(ctx, requesterID)
	if err != nil {
		return err
	}

	if !requester.IsAdmin() {
		return fmt.Errorf("delete profile: %w", core.ErrForbidden)
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if target.IsAdmin() {
		return fmt.Errorf("cannot delete admin profiles: %w", core.ErrForbidden)
	}

	return nil
}

func (s *Service) save(ctx context.Context, p *Profile) error {
	return s.profiles.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, p)
	})
}
