package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"guestcomplaints/pkg/contracts/domain"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Inputs    InputsConfig    `yaml:"inputs" envconfig:"INPUTS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	IncludeStack    bool          `yaml:"include_stack" envconfig:"INCLUDE_STACK"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	BaseDir string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR"`
	LogsDir string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// InputsConfig describes the complaint workbooks and the static tables.
//
// Locations takes precedence over Workbook. Each entry has the form
// "Label=path", e.g. "Portugal=Reclamacoes_2025_Traduzido_Portugal.xlsx".
// Without Locations, an enabled DiscoverLocations scans the data directory
// for LocationPattern and uses the matches when there are at least two.
type InputsConfig struct {
	Workbook          string   `yaml:"workbook" envconfig:"WORKBOOK"`
	Locations         []string `yaml:"locations" envconfig:"LOCATIONS"`
	DiscoverLocations bool     `yaml:"discover_locations" envconfig:"DISCOVER_LOCATIONS"`
	LocationPattern   string   `yaml:"location_pattern" envconfig:"LOCATION_PATTERN"`
	SuggestionsFile   string   `yaml:"suggestions_file" envconfig:"SUGGESTIONS_FILE"`
	KeywordsFile      string   `yaml:"keywords_file" envconfig:"KEYWORDS_FILE"`
	WatchChanges      bool     `yaml:"watch_changes" envconfig:"WATCH_CHANGES"`
}

// TelemetryConfig toggles OpenTelemetry tracing and Prometheus metrics
type TelemetryConfig struct {
	EnableTracing bool    `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	TraceExporter string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER"`
	SampleRatio   float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO"`
	EnableMetrics bool    `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
}

// Load builds the configuration from defaults, an optional YAML file and
// COMPLAINTS_* environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	cfg := Default()

	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// ResolvePaths resolves the configured directories
func (c *Config) ResolvePaths() (*Paths, error) {
	return NewPaths(c.Paths.BaseDir, c.Paths.DataDir, c.Paths.LogsDir)
}

// SourceSet converts the input configuration into the loader's source
// descriptor, resolving relative workbook paths against the data directory.
func (c *Config) SourceSet(paths *Paths) (domain.SourceSet, error) {
	if len(c.Inputs.Locations) == 0 {
		return domain.SingleSource(paths.DataFile(c.Inputs.Workbook)), nil
	}

	set := domain.SourceSet{Sources: make([]domain.Source, 0, len(c.Inputs.Locations))}
	for _, entry := range c.Inputs.Locations {
		label, file, err := parseLocation(entry)
		if err != nil {
			return domain.SourceSet{}, err
		}
		set.Sources = append(set.Sources, domain.Source{Path: paths.DataFile(file), Location: label})
	}
	return set, nil
}

func parseLocation(entry string) (string, string, error) {
	label, file, ok := strings.Cut(entry, "=")
	label, file = strings.TrimSpace(label), strings.TrimSpace(file)
	if !ok || label == "" || file == "" {
		return "", "", fmt.Errorf("invalid location entry %q, want Label=path", entry)
	}
	return label, file, nil
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Security.RateLimit.Enabled && (c.Security.RateLimit.RPS <= 0 || c.Security.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit rps and burst must be positive when enabled")
	}

	switch strings.ToLower(c.Logging.Output) {
	case "stdout", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %q", c.Logging.Output)
	}

	// JSON is the only format the log pipeline ingests.
	c.Logging.Format = "json"

	if c.Inputs.Workbook == "" && len(c.Inputs.Locations) == 0 {
		return fmt.Errorf("either inputs.workbook or inputs.locations must be set")
	}

	seen := make(map[string]bool, len(c.Inputs.Locations))
	for _, entry := range c.Inputs.Locations {
		label, _, err := parseLocation(entry)
		if err != nil {
			return err
		}
		if seen[label] {
			return fmt.Errorf("duplicate location label %q", label)
		}
		seen[label] = true
	}

	if c.Inputs.SuggestionsFile == "" {
		return fmt.Errorf("inputs.suggestions_file must be set")
	}

	switch c.Telemetry.TraceExporter {
	case "stdout", "none":
	default:
		return fmt.Errorf("unsupported trace exporter: %s", c.Telemetry.TraceExporter)
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(EnvPrefix + "_CONFIG_FILE"); explicit != "" {
		return explicit
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Security: SecurityConfig{
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimit,
				Burst:   DefaultBurstSize,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			DataDir: DefaultDataDir,
			LogsDir: DefaultLogsDir,
		},
		Inputs: InputsConfig{
			Workbook:          DefaultWorkbook,
			DiscoverLocations: false,
			LocationPattern:   DefaultLocationPattern,
			SuggestionsFile:   DefaultSuggestionsFile,
			WatchChanges:      true,
		},
		Telemetry: TelemetryConfig{
			EnableTracing: false,
			TraceExporter: "none",
			SampleRatio:   1.0,
			EnableMetrics: true,
		},
	}
}
