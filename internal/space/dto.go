// AngelaMos | 2026
// dto.go

package space

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/foodhall/internal/core"
)

type CreateApplicationRequest struct {
	CompanyName   string         `json:"company_name"   validate:"required,max=200"`
	ContactName   string         `json:"contact_name"   validate:"required,max=100"`
	ContactEmail  string         `json:"contact_email"  validate:"required,email,max=255"`
	ContactPhone  string         `json:"contact_phone"  validate:"omitempty,max=32"`
	BusinessType  string         `json:"business_type"  validate:"required,max=64"`
	Description   string         `json:"description"    validate:"required,min=10,max=4000"`
	Floor         string         `json:"floor"          validate:"required,max=32"`
	Area          string         `json:"area"           validate:"max=64"`
	SpaceSizeSqm  core.FlexFloat `json:"space_size_sqm" validate:"gt=0"`
	LeaseStart    string         `json:"lease_start"    validate:"required,datetime=2006-01-02"`
	LeaseEnd      string         `json:"lease_end"      validate:"required,datetime=2006-01-02"`
	MonthlyBudget core.FlexFloat `json:"monthly_budget" validate:"gte=0"`
}

type UpdateStatusRequest struct {
	Status     string  `json:"status"      validate:"required,oneof=pending under_review approved rejected"`
	AdminNotes *string `json:"admin_notes" validate:"omitempty,max=4000"`
}

type CommentRequest struct {
	Body string `json:"body" validate:"required,max=4000"`
}

type ApplicationResponse struct {
	ID            string            `json:"id"`
	ApplicantID   *string           `json:"applicant_id"`
	CompanyName   string            `json:"company_name"`
	ContactName   string            `json:"contact_name"`
	ContactEmail  string            `json:"contact_email"`
	ContactPhone  string            `json:"contact_phone"`
	BusinessType  string            `json:"business_type"`
	Description   string            `json:"description"`
	Floor         string            `json:"floor"`
	Area          string            `json:"area"`
	SpaceSizeSqm  float64           `json:"space_size_sqm"`
	LeaseStart    string            `json:"lease_start"`
	LeaseEnd      string            `json:"lease_end"`
	MonthlyBudget float64           `json:"monthly_budget"`
	Status        string            `json:"status"`
	AdminNotes    string            `json:"admin_notes"`
	Comments      []CommentResponse `json:"comments,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func ToApplicationResponse(a *Application) ApplicationResponse {
	return ApplicationResponse{
		ID:            a.ID,
		ApplicantID:   a.ApplicantID,
		CompanyName:   a.CompanyName,
		ContactName:   a.ContactName,
		ContactEmail:  a.ContactEmail,
		ContactPhone:  a.ContactPhone,
		BusinessType:  a.BusinessType,
		Description:   a.Description,
		Floor:         a.Floor,
		Area:          a.Area,
		SpaceSizeSqm:  a.SpaceSizeSqm,
		LeaseStart:    core.FormatDate(a.LeaseStart),
		LeaseEnd:      core.FormatDate(a.LeaseEnd),
		MonthlyBudget: a.MonthlyBudget,
		Status:        a.Status,
		AdminNotes:    a.AdminNotes,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func ToApplicationResponseList(items []Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for i := range items {
		out = append(out, ToApplicationResponse(&items[i]))
	}
	return out
}

func ToDetailResponse(d *Detail) ApplicationResponse {
	resp := ToApplicationResponse(&d.Application)
	resp.Comments = make([]CommentResponse, 0, len(d.Comments))
	for _, c := range d.Comments {
		resp.Comments = append(resp.Comments, ToCommentResponse(&c))
	}
	return resp
}

func ToCommentResponse(c *Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

// RegisterValidations adds the lease window rule.
func RegisterValidations(v *validator.Validate) {
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		req, ok := sl.Current().Interface().(CreateApplicationRequest)
		if !ok {
			return
		}
		start, err1 := time.Parse(core.DateLayout, req.LeaseStart)
		end, err2 := time.Parse(core.DateLayout, req.LeaseEnd)
		if err1 != nil || err2 != nil {
			return
		}
		if !end.After(start) {
			sl.ReportError(req.LeaseEnd, "lease_end", "LeaseEnd", "date_after", "lease_start")
		}
	}, CreateApplicationRequest{})
}
