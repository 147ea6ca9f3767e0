// AngelaMos | 2026
// handler.go

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/foodhall/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/dashboard", h.Admin)
}

func (h *Handler) RegisterInvestorRoutes(r chi.Router) {
	r.Get("/dashboard", h.Investor)
}

func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		core.WriteError(w, err, "dashboard")
		return
	}

	core.OK(w, summary)
}

func (h *Handler) Investor(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.InvestorSummary(r.Context())
	if err != nil {
		core.WriteError(w, err, "dashboard")
		return
	}

	core.OK(w, summary)
}
