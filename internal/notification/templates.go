// AngelaMos | 2026
// templates.go

package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"github.com/carterperez-dev/foodhall/internal/booking")

//go:embed templates/*.html
var templateFS embed.FS

const (
	TypeConfirmation = "confirmation"
	TypeReminder     = "reminder"
	TypeCancellation = "cancellation"
)

type kind struct {
	subject string
	heading string
	page    *template.Template
}

var kinds = map[string]kind{
	TypeConfirmation: {
		subject: "Your booking is confirmed",
		heading: "Booking confirmed",
		page:    mustParse(TypeConfirmation),
	},
	TypeReminder: {
		subject: "Reminder: your visit is tomorrow",
		heading: "See you tomorrow",
		page:    mustParse(TypeReminder),
	},
	TypeCancellation: {
		subject: "Your booking has been cancelled",
		heading: "Booking cancelled",
		page:    mustParse(TypeCancellation),
	},
}

func mustParse(name string) *template.Template {
	return template.Must(template.ParseFS(
		templateFS,
		"templates/layout.html",
		"templates/"+name+".html",
	))
}

// Supported reports whether t names a known email type.
func Supported(t string) bool {
	_, ok := kinds[t]
	return ok
}

type pageData struct {
	Subject         string
	Heading         string
	Venue           string
	GuestName       string
	Reference       string
	ExperienceType  string
	Date            string
	TimeSlot        string
	Guests          string
	Amount          string
	PromoCode       string
	SpecialRequests string
}

type rendered struct {
	Subject string
	HTML    string
}

func render(emailType, venue string, b *booking.Booking) (rendered, error) {
	k, ok := kinds[emailType]
	if !ok {
		return rendered{}, fmt.Errorf("unknown email type %q", emailType)
	}

	data := pageData{
		Subject:         k.subject,
		Heading:         k.heading,
		Venue:           venue,
		GuestName:       b.GuestName,
		Reference:       reference(b.ID),
		ExperienceType:  b.ExperienceType,
		TimeSlot:        b.TimeSlot,
		Guests:          strconv.Itoa(b.Guests),
		Amount:          "$" + strconv.FormatFloat(b.PaymentAmount, 'f', 2, 64),
		PromoCode:       b.PromoCode,
		SpecialRequests: b.SpecialRequests,
	}
	if !b.BookingDate.IsZero() {
		data.Date = b.BookingDate.Format("Monday, 2 January 2006")
	}

	var buf bytes.Buffer
	if err := k.page.ExecuteTemplate(&buf, emailType+".html", data); err != nil {
		return rendered{}, fmt.Errorf("render %s email: %w", emailType, err)
	}

	return rendered{Subject: k.subject, HTML: buf.String()}, nil
}

func reference(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
