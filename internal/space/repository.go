// AngelaMos | 2026
// repository.go

package space

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/foodhall/internal/core"
)

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	ListAll(ctx context.Context) ([]Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]Application, error)
	UpdateStatus(ctx context.Context, a *Application) error
	Delete(ctx context.Context, id string) error
	ListComments(ctx context.Context, applicationID string) ([]Comment, error)
	AddComment(ctx context.Context, c *Comment) error
	CountByStatus(ctx context.Context, status string) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const applicationColumns = `
	id, applicant_id, company_name, contact_name, contact_email, contact_phone,
	business_type, description, floor, area, space_size_sqm, lease_start,
	lease_end, monthly_budget, status, admin_notes, created_at, updated_at`

func (r *repository) Create(ctx context.Context, a *Application) error {
	query := `
		INSERT INTO space_bookings (
			id, applicant_id, company_name, contact_name, contact_email,
			contact_phone, business_type, description, floor, area,
			space_size_sqm, lease_start, lease_end, monthly_budget, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`

	return core.GetOne(ctx, r.db, a, "create application", query,
		a.ID,
		a.ApplicantID,
		a.CompanyName,
		a.ContactName,
		a.ContactEmail,
		a.ContactPhone,
		a.BusinessType,
		a.Description,
		a.Floor,
		a.Area,
		a.SpaceSizeSqm,
		core.FormatDate(a.LeaseStart),
		core.FormatDate(a.LeaseEnd),
		a.MonthlyBudget,
		a.Status,
	)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Application, error) {
	var a Application
	err := core.GetOne(ctx, r.db, &a, "get application",
		`SELECT `+applicationColumns+` FROM space_bookings WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Application, error) {
	var items []Application
	err := r.db.SelectContext(ctx, &items,
		`SELECT `+applicationColumns+` FROM space_bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return items, nil
}

func (r *repository) ListByApplicant(
	ctx context.Context,
	applicantID string,
) ([]Application, error) {
	var items []Application
	err := r.db.SelectContext(ctx, &items, `SELECT `+applicationColumns+`
		FROM space_bookings
		WHERE applicant_id = $1
		ORDER BY created_at DESC`, applicantID)
	if err != nil {
		return nil, fmt.Errorf("list applications by applicant: %w", err)
	}
	return items, nil
}

func (r *repository) UpdateStatus(ctx context.Context, a *Application) error {
	query := `
		UPDATE space_bookings
		SET status = $2, admin_notes = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return core.GetOne(ctx, r.db, &a.UpdatedAt, "update application status", query,
		a.ID, a.Status, a.AdminNotes)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return core.ExecOne(ctx, r.db, "delete application",
		`DELETE FROM space_bookings WHERE id = $1`, id)
}

func (r *repository) ListComments(ctx context.Context, applicationID string) ([]Comment, error) {
	var items []Comment
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, space_booking_id, author_id, body, created_at
		FROM space_booking_comments
		WHERE space_booking_id = $1
		ORDER BY created_at`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("list application comments: %w", err)
	}
	return items, nil
}

func (r *repository) AddComment(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO space_booking_comments (id, space_booking_id, author_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return core.GetOne(ctx, r.db, &c.CreatedAt, "add application comment", query,
		c.ID, c.ApplicationID, c.AuthorID, c.Body)
}

func (r *repository) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM space_bookings WHERE status = $1`, status)
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return n, nil
}
