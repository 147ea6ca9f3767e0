// AngelaMos | 2026
// handler.go

package document

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/foodhall/internal/core"
	"github.com/carterperez-dev/foodhall/internal/listview"
	"github.com/carterperez-dev/foodhall/internal/middleware"
)

const (
	defaultMaxUpload = 20 << 20
	formMemory       = 8 << 20
)

type Handler struct {
	service   *Service
	validator *validator.Validate
	maxUpload int64
}

func NewHandler(service *Service, maxUpload int64) *Handler {
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
		maxUpload: maxUpload,
	}
}

// RegisterRoutes mounts the document library for tenants and admins.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/documents", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Upload)
		r.Get("/{documentID}", h.Get)
		r.Get("/{documentID}/download", h.Download)
		r.Delete("/{documentID}", h.Delete)
	})
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Put("/documents/{documentID}/signed", h.UpdateSigned)
}

func viewerOf(r *http.Request) Viewer {
	return Viewer{
		ID:   middleware.GetUserID(r.Context()),
		Role: middleware.GetUserRole(r.Context()),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := listview.ParseQuery(r.URL.Query(), ListSpec())

	result, err := h.service.List(r.Context(), q, viewerOf(r))
	if err != nil {
		core.WriteError(w, err, "document")
		return
	}

	core.Listed(w, ToDocumentResponseList(result.Items), result.Total, result.Matched)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Get(r.Context(), chi.URLParam(r, "documentID"), viewerOf(r))
	if err != nil {
		core.WriteError(w, err, "document")
		return
	}

	core.OK(w, ToDocumentResponse(d))
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUpload {
		core.JSONError(w, h.tooLarge())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(formMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			core.JSONError(w, h.tooLarge())
			return
		}
		core.BadRequest(w, "invalid multipart form")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll() //nolint:errcheck // temp files
	}()

	form := uploadForm{
		Bucket:       strings.TrimSpace(r.FormValue("bucket")),
		DocumentType: strings.TrimSpace(r.FormValue("document_type")),
		Tags:         r.FormValue("tags"),
		OwnerID:      strings.TrimSpace(r.FormValue("owner_id")),
	}
	if err := core.ValidateStruct(h.validator, form); err != nil {
		core.JSONError(w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		core.JSONError(w, core.ValidationError("file is required",
			map[string][]string{"file": {"is required"}}))
		return
	}
	defer file.Close() //nolint:errcheck // read-only

	d, err := h.service.Upload(r.Context(), Upload{
		Bucket:       form.Bucket,
		FileName:     header.Filename,
		ContentType:  partContentType(header),
		DocumentType: form.DocumentType,
		Tags:         ParseTags(form.Tags),
		OwnerID:      form.OwnerID,
		Body:         file,
	}, viewerOf(r))
	if err != nil {
		core.WriteError(w, err, "document")
		return
	}

	core.Created(w, ToDocumentResponse(d))
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	d, body, err := h.service.Open(r.Context(), chi.URLParam(r, "documentID"), viewerOf(r))
	if err != nil {
		core.WriteError(w, err, "document")
		return
	}
	defer body.Close() //nolint:errcheck // read-only

	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(d.SizeBytes, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.FileName))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		slog.WarnContext(r.Context(), "document download interrupted",
			"document_id", d.ID,
			"error", err,
		)
	}
}

func (h *Handler) UpdateSigned(w http.ResponseWriter, r *http.Request) {
	var req SignedRequest
	if err := core.DecodeAndValidate(w, r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	d, err := h.service.SetSigned(r.Context(), chi.URLParam(r, "documentID"), *req.IsSigned)
	if err != nil {
		core.WriteError(w, err, "document")
		return
	}

	core.OK(w, ToDocumentResponse(d))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), chi.URLParam(r, "documentID"), viewerOf(r))
	if err != nil {
		core.WriteError(w, err, "document")
		return
	}

	core.NoContent(w)
}

func (h *Handler) tooLarge() error {
	return core.ValidationError("file too large", map[string][]string{
		"file": {"must be at most " + strconv.FormatInt(h.maxUpload, 10) + " bytes"},
	})
}

func partContentType(header *multipart.FileHeader) string {
	return header.Header.Get("Content-Type")
}
