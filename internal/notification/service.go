// AngelaMos | 2026
// service.go

package notification

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/foodhall/internal/booking"
	"github.com/carterperez-dev/foodhall/internal/core"
	"github.com/carterperez-dev/foodhall/internal/mailer"
)

const (
	codeSendFailed = "EMAIL_SEND_FAILED"
	codeLogFailed  = "NOTIFICATION_LOG_FAILED"
)

// BookingSource looks up the booking an email is about.
type BookingSource interface {
	Get(ctx context.Context, id string) (*booking.Booking, error)
}

type Service struct {
	bookings BookingSource
	provider mailer.Provider
	repo     Repository
	metrics  *Metrics
	from     string
	venue    string
}

func NewService(
	bookings BookingSource,
	provider mailer.Provider,
	repo Repository,
	metrics *Metrics,
	from string,
	venue string,
) *Service {
	return &Service{
		bookings: bookings,
		provider: provider,
		repo:     repo,
		metrics:  metrics,
		from:     from,
		venue:    venue,
	}
}

// Send renders the email for req and hands it to the provider. Every
// attempt that reaches the provider leaves a notification_logs row.
func (s *Service) Send(ctx context.Context, req Request) (*Result, error) {
	ctx, span := core.StartSpan(ctx, "notification.send",
		attribute.String("email.type", req.Type),
		attribute.String("booking.id", req.BookingID),
	)
	defer span.End()

	result, err := s.send(ctx, req)
	if err != nil {
		core.SetSpanError(ctx, err)
	}
	return result, err
}

func (s *Service) send(ctx context.Context, req Request) (*Result, error) {
	emailType := strings.ToLower(strings.TrimSpace(req.Type))
	if !Supported(emailType) {
		return nil, core.ValidationError(
			"invalid email type",
			map[string][]string{"type": {"must be one of confirmation reminder cancellation"}},
		)
	}

	bookingID := strings.TrimSpace(req.BookingID)
	if bookingID == "" {
		return nil, core.ValidationError(
			"bookingId is required",
			map[string][]string{"bookingId": {"is required"}},
		)
	}

	if uuid.Validate(bookingID) != nil {
		return nil, core.NotFoundError("booking")
	}

	b, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	recipient := strings.TrimSpace(req.RecipientEmail)
	if recipient == "" {
		recipient = b.GuestEmail
	}
	if !req.AllowRecipientOverride && !strings.EqualFold(recipient, b.GuestEmail) {
		return nil, core.ForbiddenError("recipientEmail override requires an admin session")
	}
	if recipient == "" {
		return nil, core.ValidationError(
			"no recipient email",
			map[string][]string{"recipientEmail": {"is required when the booking has no guest email"}},
		)
	}

	msg, err := render(emailType, s.venue, b)
	if err != nil {
		return nil, core.InternalError(err)
	}

	entry := &Log{
		ID:        uuid.New().String(),
		BookingID: b.ID,
		EmailType: emailType,
		Recipient: recipient,
	}

	messageID, err := s.deliver(ctx, emailType, mailer.Message{
		From:    s.from,
		To:      recipient,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		s.metrics.observe(emailType, StatusFailed)

		entry.Status = StatusFailed
		entry.Error = err.Error()
		if logErr := s.repo.Create(ctx, entry); logErr != nil {
			slog.WarnContext(ctx, "record failed email",
				"booking_id", b.ID,
				"type", emailType,
				"error", logErr,
			)
		}

		return nil, sendError(err)
	}

	s.metrics.observe(emailType, StatusSent)

	entry.Status = StatusSent
	entry.ProviderMessageID = messageID
	if err := s.repo.Create(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "email sent but log write failed",
			"booking_id", b.ID,
			"type", emailType,
			"email_id", messageID,
			"error", err,
		)
		return nil, &core.AppError{
			Err:        err,
			Kind:       core.KindServer,
			Message:    fmt.Sprintf("email sent but logging failed: %v", err),
			StatusCode: http.StatusInternalServerError,
			Code:       codeLogFailed,
		}
	}

	return &Result{
		Success: true,
		EmailID: messageID,
		Message: fmt.Sprintf("%s email sent to %s", emailType, recipient),
	}, nil
}

func (s *Service) deliver(ctx context.Context, emailType string, msg mailer.Message) (string, error) {
	ctx, span := core.StartSpan(ctx, "mailer.send", attribute.String("email.type", emailType))
	defer span.End()

	id, err := s.provider.Send(ctx, msg)
	if err != nil {
		core.SetSpanError(ctx, err)
		return "", err
	}
	span.SetAttributes(attribute.String("email.id", id))
	return id, nil
}

func (s *Service) History(ctx context.Context, bookingID string) ([]Log, error) {
	if _, err := s.bookings.Get(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.repo.ListByBooking(ctx, bookingID)
}

func sendError(err error) *core.AppError {
	return &core.AppError{
		Err:        err,
		Kind:       core.KindServer,
		Message:    fmt.Sprintf("failed to send email: %v", err),
		StatusCode: http.StatusInternalServerError,
		Code:       codeSendFailed,
	}
}
