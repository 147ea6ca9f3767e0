// AngelaMos | 2026
// service.go

package space

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/foodhall/internal/core"
	"github.com/carterperez-dev/foodhall/internal/listview"
)

type Service struct {
	repo         Repository
	applications *listview.Collection[Application]
}

func NewService(repo Repository, store listview.Store) *Service {
	return &Service{
		repo:         repo,
		applications: listview.NewCollection("space_bookings", store, repo.ListAll),
	}
}

var listSpec = listview.Spec[Application]{
	Search: func(a Application) []string {
		return []string{a.CompanyName, a.ContactName, a.ContactEmail}
	},
	Filters: map[string]func(Application) []string{
		"status":        func(a Application) []string { return listview.One(a.Status) },
		"floor":         func(a Application) []string { return listview.One(a.Floor) },
		"business_type": func(a Application) []string { return listview.One(a.BusinessType) },
	},
	Sorts: map[string]func(a, b Application) int{
		"newest": listview.Desc(byCreated),
		"oldest": byCreated,
		"name":   listview.ByString(func(a Application) string { return a.CompanyName }),
		"size":   listview.Desc(listview.ByNumber(func(a Application) float64 { return a.SpaceSizeSqm })),
	},
	DefaultSort: "newest",
}

var byCreated = listview.ByTime(func(a Application) time.Time { return a.CreatedAt })

func ListSpec() listview.Spec[Application] {
	return listSpec
}

// Detail is an application with its comment thread.
type Detail struct {
	Application Application
	Comments    []Comment
}

func (s *Service) List(
	ctx context.Context,
	q listview.Query,
) (listview.Result[Application], error) {
	items, err := s.applications.Items(ctx)
	if err != nil {
		return listview.Result[Application]{}, err
	}
	return listview.Apply(items, q, listSpec)
}

// Submit records a new application from applicantID. An empty applicantID
// stores an application with no linked profile.
func (s *Service) Submit(
	ctx context.Context,
	applicantID string,
	req CreateApplicationRequest,
) (*Application, error) {
	start, err := core.ParseDate(req.LeaseStart)
	if err != nil {
		return nil, err
	}
	end, err := core.ParseDate(req.LeaseEnd)
	if err != nil {
		return nil, err
	}

	a := &Application{
		ID:            uuid.New().String(),
		CompanyName:   strings.TrimSpace(req.CompanyName),
		ContactName:   strings.TrimSpace(req.ContactName),
		ContactEmail:  strings.ToLower(strings.TrimSpace(req.ContactEmail)),
		ContactPhone:  strings.TrimSpace(req.ContactPhone),
		BusinessType:  strings.TrimSpace(req.BusinessType),
		Description:   strings.TrimSpace(req.Description),
		Floor:         strings.TrimSpace(req.Floor),
		Area:          strings.TrimSpace(req.Area),
		SpaceSizeSqm:  req.SpaceSizeSqm.Float64(),
		LeaseStart:    start,
		LeaseEnd:      end,
		MonthlyBudget: req.MonthlyBudget.Float64(),
		Status:        StatusPending,
	}
	if applicantID != "" {
		a.ApplicantID = &applicantID
	}

	err = s.applications.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) ListMine(ctx context.Context, applicantID string) ([]Application, error) {
	return s.repo.ListByApplicant(ctx, applicantID)
}

func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Detail{Application: *a, Comments: comments}, nil
}

// GetOwned returns the application only when profileID submitted it.
func (s *Service) GetOwned(ctx context.Context, id, profileID string) (*Detail, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !d.Application.OwnedBy(profileID) {
		return nil, core.NotFoundError("application")
	}
	return d, nil
}

// UpdateStatus sets status and, when given, the admin notes. A request that
// changes neither writes nothing.
func (s *Service) UpdateStatus(
	ctx context.Context,
	id string,
	req UpdateStatusRequest,
) (*Application, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	notes := a.AdminNotes
	if req.AdminNotes != nil {
		notes = strings.TrimSpace(*req.AdminNotes)
	}

	if a.Status == req.Status && a.AdminNotes == notes {
		return a, nil
	}

	a.Status = req.Status
	a.AdminNotes = notes

	err = s.applications.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.UpdateStatus(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) AddComment(
	ctx context.Context,
	applicationID, authorID, body string,
) (*Comment, error) {
	if _, err := s.repo.GetByID(ctx, applicationID); err != nil {
		return nil, err
	}

	c := &Comment{
		ID:            uuid.New().String(),
		ApplicationID: applicationID,
		AuthorID:      authorID,
		Body:          strings.TrimSpace(body),
	}
	if err := s.repo.AddComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.applications.Mutate(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
}

func (s *Service) CountPending(ctx context.Context) (int, error) {
	return s.repo.CountByStatus(ctx, StatusPending)
}
