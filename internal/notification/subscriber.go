// AngelaMos | 2026
// subscriber.go

package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/foodhall/internal/bus"
	"github.com/carterperez-dev/foodhall/internal/core"
)

var subjectTypes = map[string]string{
	bus.SubjectBookingConfirmed: TypeConfirmation,
	bus.SubjectBookingCancelled: TypeCancellation,
}

// Subscribe attaches durable consumers that email guests when a booking
// is confirmed or cancelled. The returned func detaches them.
func Subscribe(ctx context.Context, sub bus.Subscriber, svc *Service) (func(), error) {
	var stops []func()
	stopAll := func() {
		for _, stop := range stops {
			stop()
		}
	}

	for subject, emailType := range subjectTypes {
		name := "notification-" + emailType
		stop, err := sub.Subscribe(ctx, name, subject, eventHandler(svc, emailType))
		if err != nil {
			stopAll()
			return nil, fmt.Errorf("subscribe %s: %w", subject, err)
		}
		stops = append(stops, stop)
	}

	return stopAll, nil
}

// eventHandler only asks for redelivery on failures a retry could fix.
func eventHandler(svc *Service, emailType string) bus.Handler {
	return func(ctx context.Context, subject string, data []byte) error {
		var event bus.BookingEvent
		if err := json.Unmarshal(data, &event); err != nil {
			slog.WarnContext(ctx, "dropping malformed booking event",
				"subject", subject,
				"error", err,
			)
			return nil
		}

		_, err := svc.Send(ctx, Request{
			Type:           emailType,
			BookingID:      event.BookingID,
			RecipientEmail: event.GuestEmail,

			AllowRecipientOverride: true,
		})
		if err == nil {
			return nil
		}

		switch core.Classify(err) {
		case core.KindNotFound, core.KindValidation:
			slog.WarnContext(ctx, "booking event not emailed",
				"subject", subject,
				"booking_id", event.BookingID,
				"error", err,
			)
			return nil
		}

		var appErr *core.AppError
		if errors.As(err, &appErr) && appErr.Code == codeLogFailed {
			return nil
		}
		return err
	}
}
