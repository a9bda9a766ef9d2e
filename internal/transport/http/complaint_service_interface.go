package http

import (
	"context"
	"io"

	"guestcomplaints/pkg/contracts/domain"
)

// ComplaintServiceInterface defines the complaint operations the handlers need
type ComplaintServiceInterface interface {
	Table(ctx context.Context, f domain.Filter) ([]domain.ComplaintRecord, error)
	Options(ctx context.Context, f domain.Filter) (domain.FilterOptions, error)
	Report(ctx context.Context, f domain.Filter) (domain.TopicReport, error)
	ExportXLSX(ctx context.Context, f domain.Filter, w io.Writer) error
	ExportCSV(ctx context.Context, f domain.Filter, w io.Writer) error
	Topics() []string
}
