// Package http contains the HTTP handlers for the API surface.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"niftycli/internal/dataprocessing"
	apierrors "niftycli/internal/errors"
	"niftycli/internal/services"
)

// SummaryHandler handles market summary HTTP requests
type SummaryHandler struct {
	service      *services.SummaryService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(service *services.SummaryService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *SummaryHandler {
	return &SummaryHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "summary")),
		errorHandler: errorHandler,
	}
}

// Routes returns the summary routes
func (h *SummaryHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetSummary)
	r.Get("/{extract}", h.GetExtract)

	return r
}

// extractResponse is the response body for a single extract
type extractResponse struct {
	Name        string                       `json:"name"`
	Title       string                       `json:"title"`
	ValueHeader string                       `json:"value_header"`
	Records     []dataprocessing.StockRecord `json:"records"`
}

// GetSummary handles GET /api/summary
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, summary)
}

// GetExtract handles GET /api/summary/{extract}
func (h *SummaryHandler) GetExtract(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "extract")
	if name == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("extract", "Extract name is required"))
		return
	}

	extract, err := h.service.Extract(r.Context(), name)
	if err != nil {
		if errors.Is(err, services.ErrUnknownExtract) {
			h.errorHandler.HandleError(w, r, apierrors.ExtractNotFoundError(name))
			return
		}
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	records := extract.Records
	if records == nil {
		records = []dataprocessing.StockRecord{}
	}

	render.JSON(w, r, extractResponse{
		Name:        extract.Name,
		Title:       extract.Title,
		ValueHeader: extract.ValueHeader,
		Records:     records,
	})
}

// mapServiceError translates service errors into API errors
func (h *SummaryHandler) mapServiceError(err error) error {
	var schemaErr *dataprocessing.SchemaError

	switch {
	case errors.Is(err, services.ErrNoData):
		return apierrors.DataNotFoundError(err)
	case errors.As(err, &schemaErr):
		return apierrors.SchemaInvalidError(err)
	default:
		return err
	}
}
