package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/singleflight"

	"guestcomplaints/internal/dataprocessing"
	apperrors "guestcomplaints/internal/errors"
	"guestcomplaints/internal/infrastructure"
	"guestcomplaints/pkg/contracts/domain"
)

// Dataset is one classified load of every configured workbook.
type Dataset struct {
	Records     []domain.ComplaintRecord
	Key         string
	LoadedAt    time.Time
	PerLocation map[string]int
}

// SourceLoader reads records from workbooks.
type SourceLoader interface {
	LoadSources(ctx context.Context, set domain.SourceSet) ([]domain.ComplaintRecord, error)
}

// DatasetCache memoizes the classified record set. The cache key is the
// SHA-256 of the workbook contents, so a reload happens only when an input
// actually changed. Concurrent loads of the same content share one read.
type DatasetCache struct {
	sources    domain.SourceSet
	loader     SourceLoader
	classifier *dataprocessing.Classifier
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    *infrastructure.BusinessMetrics

	group singleflight.Group

	mu      sync.RWMutex
	current *Dataset
	stale   bool
}

// DatasetCacheOption configures a DatasetCache.
type DatasetCacheOption func(*DatasetCache)

// WithTracer sets the tracer used for load spans.
func WithTracer(tracer trace.Tracer) DatasetCacheOption {
	return func(c *DatasetCache) { c.tracer = tracer }
}

// WithMetrics sets the instruments recording loads.
func WithMetrics(m *infrastructure.BusinessMetrics) DatasetCacheOption {
	return func(c *DatasetCache) { c.metrics = m }
}

// NewDatasetCache creates an empty cache; the first Get loads the workbooks.
func NewDatasetCache(sources domain.SourceSet, loader SourceLoader, classifier *dataprocessing.Classifier, logger *slog.Logger, opts ...DatasetCacheOption) *DatasetCache {
	if logger == nil {
		logger = slog.Default()
	}
	c := &DatasetCache{
		sources:    sources,
		loader:     loader,
		classifier: classifier,
		logger:     logger.With(slog.String("component", "dataset_cache")),
		tracer:     noop.NewTracerProvider().Tracer("dataset_cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sources returns the configured input layout.
func (c *DatasetCache) Sources() domain.SourceSet {
	return c.sources
}

// Get returns the current dataset, loading it on first use or after
// Invalidate when the input contents changed.
func (c *DatasetCache) Get(ctx context.Context) (*Dataset, error) {
	c.mu.RLock()
	current, stale := c.current, c.stale
	c.mu.RUnlock()

	if current != nil && !stale {
		return current, nil
	}

	key, err := c.contentKey()
	if err != nil {
		return nil, err
	}

	if current != nil && current.Key == key {
		c.mu.Lock()
		c.stale = false
		c.mu.Unlock()
		return current, nil
	}

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		if ds := c.Current(); ds != nil && ds.Key == key {
			return ds, nil
		}
		return c.load(context.WithoutCancel(ctx), key)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.DebugContext(ctx, "dataset load shared", slog.String("key", key[:12]))
	}
	return v.(*Dataset), nil
}

// Invalidate marks the dataset for a content check on the next Get.
func (c *DatasetCache) Invalidate() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

// Current returns the loaded dataset without triggering a load.
func (c *DatasetCache) Current() *Dataset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func (c *DatasetCache) load(ctx context.Context, key string) (*Dataset, error) {
	ctx, span := c.tracer.Start(ctx, "dataset.load",
		trace.WithAttributes(attribute.Int("dataset.sources", len(c.sources.Sources))))
	defer span.End()

	start := time.Now()
	records, err := c.loader.LoadSources(ctx, c.sources)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		infrastructure.RecordDatasetLoad(ctx, c.metrics, time.Since(start), nil, err)
		c.logger.ErrorContext(ctx, "dataset load failed", slog.String("error", err.Error()))
		return nil, err
	}

	ds := &Dataset{
		Records:     c.classifier.Annotate(records),
		Key:         key,
		LoadedAt:    time.Now(),
		PerLocation: make(map[string]int),
	}
	for _, r := range ds.Records {
		ds.PerLocation[r.Location]++
	}

	c.mu.Lock()
	c.current = ds
	c.stale = false
	c.mu.Unlock()

	elapsed := time.Since(start)
	infrastructure.RecordDatasetLoad(ctx, c.metrics, elapsed, ds.PerLocation, nil)
	span.SetAttributes(attribute.Int("dataset.records", len(ds.Records)))

	c.logger.InfoContext(ctx, "dataset loaded",
		slog.Int("records", len(ds.Records)),
		slog.String("key", key[:12]),
		slog.Duration("duration", elapsed))

	return ds, nil
}

// contentKey hashes every source's label and bytes in order.
func (c *DatasetCache) contentKey() (string, error) {
	h := sha256.New()
	for _, src := range c.sources.Sources {
		if err := hashFile(h, src.Path); err != nil {
			return "", err
		}
		fmt.Fprintf(h, "\x00%s\x00", src.Location)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func hashFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return apperrors.NewMissingInputError(path, err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return apperrors.NewParsingError("failed to read workbook", err).WithContext("path", path)
	}
	return nil
}
