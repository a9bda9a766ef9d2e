package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths holds the resolved directories the application reads from and writes to.
type Paths struct {
	BaseDir string
	DataDir string
	LogsDir string
}

// NewPaths resolves dataDir and logsDir against baseDir unless they are absolute.
// An empty baseDir means the current working directory.
func NewPaths(baseDir, dataDir, logsDir string) (*Paths, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	return &Paths{
		BaseDir: baseDir,
		DataDir: resolve(baseDir, dataDir),
		LogsDir: resolve(baseDir, logsDir),
	}, nil
}

// DataFile resolves an input file name against the data directory.
func (p *Paths) DataFile(name string) string {
	if name == "" {
		return ""
	}
	return resolve(p.DataDir, name)
}

// EnsureDirectories creates the log directory; the data directory must already exist.
func (p *Paths) EnsureDirectories() error {
	if err := os.MkdirAll(p.LogsDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", p.LogsDir, err)
	}
	return nil
}

// LogPathResolution logs the resolved paths at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Debug("Resolved application paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("data_dir", p.DataDir),
		slog.String("logs_dir", p.LogsDir))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
