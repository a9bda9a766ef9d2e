package app

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"guestcomplaints/internal/config"
	"guestcomplaints/internal/dataprocessing"
	"guestcomplaints/internal/files"
	"guestcomplaints/internal/infrastructure"
	"guestcomplaints/internal/services"
	"guestcomplaints/pkg/contracts/domain"
)

// ServiceContainer holds all application services
type ServiceContainer struct {
	Sources    *services.DatasetCache
	Complaints *services.ComplaintService
	Health     *services.HealthService
	Classifier *dataprocessing.Classifier
}

// NewServices builds the complaint services from cfg. The suggestion table
// is required; the keyword file is optional and replaces the built-in table.
// tracer and metrics may be nil.
func NewServices(cfg *config.Config, paths *config.Paths, logger *slog.Logger, tracer trace.Tracer, metrics *infrastructure.BusinessMetrics) (*ServiceContainer, error) {
	sources, err := resolveSources(cfg, paths, logger)
	if err != nil {
		return nil, fmt.Errorf("invalid input layout: %w", err)
	}

	suggestions, err := dataprocessing.LoadSuggestions(paths.DataFile(cfg.Inputs.SuggestionsFile))
	if err != nil {
		return nil, err
	}

	table := dataprocessing.DefaultKeywordTable()
	if cfg.Inputs.KeywordsFile != "" {
		table, err = dataprocessing.LoadKeywordTable(paths.DataFile(cfg.Inputs.KeywordsFile))
		if err != nil {
			return nil, err
		}
		logger.Info("keyword table loaded",
			slog.String("file", cfg.Inputs.KeywordsFile),
			slog.Int("topics", len(table)))
	}
	classifier := dataprocessing.NewClassifier(table)

	cacheOpts := []services.DatasetCacheOption{services.WithMetrics(metrics)}
	serviceOpts := []services.ComplaintServiceOption{services.WithServiceMetrics(metrics)}
	if tracer != nil {
		cacheOpts = append(cacheOpts, services.WithTracer(tracer))
		serviceOpts = append(serviceOpts, services.WithServiceTracer(tracer))
	}

	cache := services.NewDatasetCache(sources, dataprocessing.NewLoader(logger), classifier, logger, cacheOpts...)

	return &ServiceContainer{
		Sources:    cache,
		Complaints: services.NewComplaintService(cache, suggestions, logger, serviceOpts...),
		Health:     services.NewHealthService(VERSION, BuildTime, BuildID, cache, logger),
		Classifier: classifier,
	}, nil
}

// resolveSources returns the configured locations, else the discovered
// per-location workbooks, else the single workbook.
func resolveSources(cfg *config.Config, paths *config.Paths, logger *slog.Logger) (domain.SourceSet, error) {
	if len(cfg.Inputs.Locations) == 0 && cfg.Inputs.DiscoverLocations {
		set, ok, err := files.NewDiscovery(paths.DataDir).LocationWorkbooks(".", cfg.Inputs.LocationPattern)
		if err != nil {
			return domain.SourceSet{}, err
		}
		if ok {
			logger.Info("per-location workbooks discovered",
				slog.Int("locations", len(set.Sources)),
				slog.String("pattern", cfg.Inputs.LocationPattern))
			return set, nil
		}
	}
	return cfg.SourceSet(paths)
}
