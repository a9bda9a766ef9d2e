package http

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "guestcomplaints/internal/errors"
	mw "guestcomplaints/internal/middleware"
	"guestcomplaints/pkg/contracts/domain"
)

// Export content types.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

// ComplaintHandler serves the filtered complaint table and its exports
type ComplaintHandler struct {
	service      ComplaintServiceInterface
	validator    *mw.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(service ComplaintServiceInterface, validator *mw.Validator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ComplaintHandler {
	return &ComplaintHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "complaint_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the complaint routes
func (h *ComplaintHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(render.SetContentType(render.ContentTypeJSON)).Get("/", h.GetComplaints)
	r.With(render.SetContentType(render.ContentTypeJSON)).Get("/options", h.GetOptions)
	r.With(render.SetContentType(render.ContentTypeJSON)).Get("/topics", h.GetTopics)
	r.Get("/export.xlsx", h.ExportXLSX)
	r.Get("/export.csv", h.ExportCSV)

	return r
}

// parseFilter reads and validates the filter, responding on failure.
func (h *ComplaintHandler) parseFilter(w http.ResponseWriter, r *http.Request) (domain.Filter, bool) {
	return decodeFilter(w, r, h.validator, h.errorHandler)
}

func decodeFilter(w http.ResponseWriter, r *http.Request, v *mw.Validator, eh *apierrors.ErrorHandler) (domain.Filter, bool) {
	f := filterFromQuery(r)
	if err := v.ValidateStruct(f); err != nil {
		eh.HandleError(w, r, err)
		return domain.Filter{}, false
	}
	return f, true
}

// GetComplaints handles GET /api/complaints
func (h *ComplaintHandler) GetComplaints(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	rows, err := h.service.Table(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.DebugContext(r.Context(), "complaints listed",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Int("count", len(rows)))

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   rows,
		"count":  len(rows),
	})
}

// GetOptions handles GET /api/complaints/options
func (h *ComplaintHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	options, err := h.service.Options(r.Context(), domain.Filter{Months: f.Months, Location: f.Location})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":            "success",
		"data":              options,
		"location_selector": len(options.Locations) > 1,
	})
}

// GetTopics handles GET /api/complaints/topics
func (h *ComplaintHandler) GetTopics(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.service.Topics(),
	})
}

// ExportXLSX handles GET /api/complaints/export.xlsx
func (h *ComplaintHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportXLSX(r.Context(), f, &buf); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	writeAttachment(w, ContentTypeXLSX, "reclamacoes.xlsx", buf.Bytes())
}

// ExportCSV handles GET /api/complaints/export.csv
func (h *ComplaintHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportCSV(r.Context(), f, &buf); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	writeAttachment(w, ContentTypeCSV, "reclamacoes.csv", buf.Bytes())
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
