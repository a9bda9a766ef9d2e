package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"guestcomplaints/internal/dataprocessing"
	"guestcomplaints/internal/exporter"
	"guestcomplaints/internal/infrastructure"
	"guestcomplaints/pkg/contracts/domain"
)

// ComplaintService answers table, selector and report queries over the
// cached dataset.
type ComplaintService struct {
	cache       *DatasetCache
	suggestions domain.SuggestionTable
	summarizer  *dataprocessing.Summarizer
	logger      *slog.Logger
	tracer      trace.Tracer
	metrics     *infrastructure.BusinessMetrics
}

// ComplaintServiceOption configures a ComplaintService.
type ComplaintServiceOption func(*ComplaintService)

// WithServiceTracer sets the tracer used for report spans.
func WithServiceTracer(tracer trace.Tracer) ComplaintServiceOption {
	return func(s *ComplaintService) { s.tracer = tracer }
}

// WithServiceMetrics sets the instruments recording reports.
func WithServiceMetrics(m *infrastructure.BusinessMetrics) ComplaintServiceOption {
	return func(s *ComplaintService) { s.metrics = m }
}

// NewComplaintService creates the service.
func NewComplaintService(cache *DatasetCache, suggestions domain.SuggestionTable, logger *slog.Logger, opts ...ComplaintServiceOption) *ComplaintService {
	if logger == nil {
		logger = slog.Default()
	}
	if suggestions == nil {
		suggestions = domain.SuggestionTable{}
	}

	s := &ComplaintService{
		cache:       cache,
		suggestions: suggestions,
		summarizer:  dataprocessing.NewSummarizer(logger, dataprocessing.DefaultSummarizerConfig()),
		logger:      logger.With(slog.String("component", "complaint_service")),
		tracer:      noop.NewTracerProvider().Tracer("complaint_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Table returns the display subset for f, sorted by review date.
func (s *ComplaintService) Table(ctx context.Context, f domain.Filter) ([]domain.ComplaintRecord, error) {
	ds, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	rows := dataprocessing.SortByDate(dataprocessing.Apply(ds.Records, f))

	s.logger.DebugContext(ctx, "table query",
		slog.Any("filter", f),
		slog.Int("rows", len(rows)))

	return rows, nil
}

// Options returns the selector values, with units limited to the months
// and location of f.
func (s *ComplaintService) Options(ctx context.Context, f domain.Filter) (domain.FilterOptions, error) {
	ds, err := s.cache.Get(ctx)
	if err != nil {
		return domain.FilterOptions{}, err
	}
	return dataprocessing.Options(ds.Records, f), nil
}

// Report generates the topic report for f. When f selects no months, every
// loaded month is reported and listed in the period line.
func (s *ComplaintService) Report(ctx context.Context, f domain.Filter) (domain.TopicReport, error) {
	ctx, span := s.tracer.Start(ctx, "complaints.report")
	defer span.End()

	ds, err := s.cache.Get(ctx)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return domain.TopicReport{}, err
	}

	months := f.Months
	if len(months) == 0 {
		months = dataprocessing.Options(ds.Records, domain.Filter{}).Months
	}

	start := time.Now()
	report := s.summarizer.GenerateReport(ctx, dataprocessing.Apply(ds.Records, f), months, s.suggestions)
	infrastructure.RecordReport(ctx, s.metrics, time.Since(start), len(report.Ranked))

	span.SetAttributes(
		attribute.Int("report.topics", len(report.Ranked)),
		attribute.StringSlice("report.months", months))

	return report, nil
}

// ExportXLSX writes the display subset for f as a workbook.
func (s *ComplaintService) ExportXLSX(ctx context.Context, f domain.Filter, w io.Writer) error {
	rows, err := s.Table(ctx, f)
	if err != nil {
		return err
	}
	if err := exporter.WriteTableXLSX(w, rows); err != nil {
		return fmt.Errorf("export xlsx: %w", err)
	}
	return nil
}

// ExportCSV writes the display subset for f as CSV.
func (s *ComplaintService) ExportCSV(ctx context.Context, f domain.Filter, w io.Writer) error {
	rows, err := s.Table(ctx, f)
	if err != nil {
		return err
	}
	if err := exporter.WriteTable(w, rows); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}

// Topics returns the keyword table topics plus the fallback topic.
func (s *ComplaintService) Topics() []string {
	return append(s.cache.classifier.Table().Topics(), domain.OtherTopic)
}
