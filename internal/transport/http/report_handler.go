package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"guestcomplaints/internal/config"
	apierrors "guestcomplaints/internal/errors"
	mw "guestcomplaints/internal/middleware"
)

// ContentTypeMarkdown is served for rendered reports.
const ContentTypeMarkdown = "text/markdown; charset=utf-8"

// ReportHandler serves the topic report
type ReportHandler struct {
	service      ComplaintServiceInterface
	validator    *mw.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewReportHandler creates a new report handler
func NewReportHandler(service ComplaintServiceInterface, validator *mw.Validator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	return &ReportHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the report routes
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetReport)
	r.Get("/download", h.DownloadReport)
	return r
}

// GetReport handles GET /api/report. The Markdown document is returned
// unless format=json asks for the structured report.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	f, ok := decodeFilter(w, r, h.validator, h.errorHandler)
	if !ok {
		return
	}

	report, err := h.service.Report(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "markdown":
		w.Header().Set("Content-Type", ContentTypeMarkdown)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(report.Markdown))
	case "json":
		render.JSON(w, r, map[string]interface{}{
			"status": "success",
			"data":   report,
		})
	default:
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", "format must be one of: markdown, json"))
	}
}

// DownloadReport handles GET /api/report/download
func (h *ReportHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	f, ok := decodeFilter(w, r, h.validator, h.errorHandler)
	if !ok {
		return
	}

	report, err := h.service.Report(r.Context(), f)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "report downloaded",
		slog.Int("topics", len(report.Ranked)))

	writeAttachment(w, ContentTypeMarkdown, config.ReportFileName, []byte(report.Markdown))
}
