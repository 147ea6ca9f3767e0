// AngelaMos | 2026
// handler.go

package notification

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/foodhall/internal/core"
	"github.com/carterperez-dev/foodhall/internal/middleware"
)

const maxRequestBody = 64 << 10

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/notifications/booking", h.SendBookingEmail)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/notifications/bookings/{bookingID}", h.History)
}

// SendBookingEmail answers with a flat {"error": "..."} body on failure so
// callers can surface the message as is.
func (h *Handler) SendBookingEmail(w http.ResponseWriter, r *http.Request) {
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		core.JSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}
	req.AllowRecipientOverride = middleware.IsAdmin(r.Context())

	result, err := h.service.Send(r.Context(), req)
	if err != nil {
		appErr := core.FromError(err, "booking")
		status := appErr.StatusCode
		if status == 0 {
			status = appErr.Kind.Status()
		}
		if status >= http.StatusInternalServerError {
			slog.ErrorContext(r.Context(), "booking email failed",
				"type", req.Type,
				"booking_id", req.BookingID,
				"error", err,
			)
		}
		core.JSON(w, status, errorBody{Error: appErr.Message})
		return
	}

	core.JSON(w, http.StatusOK, result)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	logs, err := h.service.History(r.Context(), chi.URLParam(r, "bookingID"))
	if err != nil {
		core.WriteError(w, err, "booking")
		return
	}

	core.OK(w, ToLogResponseList(logs))
}
