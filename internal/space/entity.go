// AngelaMos | 2026
// entity.go

package space

import (
	"time"
)

const (
	StatusPending     = "pending"
	StatusUnderReview = "under_review"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
)

// Application is a prospective tenant's request to lease floor space.
type Application struct {
	ID            string    `db:"id"`
	ApplicantID   *string   `db:"applicant_id"`
	CompanyName   string    `db:"company_name"`
	ContactName   string    `db:"contact_name"`
	ContactEmail  string    `db:"contact_email"`
	ContactPhone  string    `db:"contact_phone"`
	BusinessType  string    `db:"business_type"`
	Description   string    `db:"description"`
	Floor         string    `db:"floor"`
	Area          string    `db:"area"`
	SpaceSizeSqm  float64   `db:"space_size_sqm"`
	LeaseStart    time.Time `db:"lease_start"`
	LeaseEnd      time.Time `db:"lease_end"`
	MonthlyBudget float64   `db:"monthly_budget"`
	Status        string    `db:"status"`
	AdminNotes    string    `db:"admin_notes"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (a *Application) OwnedBy(profileID string) bool {
	return a.ApplicantID != nil && *a.ApplicantID == profileID
}

type Comment struct {
	ID            string    `db:"id"`
	ApplicationID string    `db:"space_booking_id"`
	AuthorID      string    `db:"author_id"`
	Body          string    `db:"body"`
	CreatedAt     time.Time `db:"created_at"`
}
