package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "guestcomplaints/internal/errors"
	"guestcomplaints/pkg/contracts/domain"
)

// FileValidator checks input workbooks and output locations before any
// loading or writing starts, so problems surface with the file name attached.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateOutputDirectory ensures output directory exists or can be created
// and is writable.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	file, err := os.CreateTemp(dir, ".write_test")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	name := file.Name()
	file.Close()
	os.Remove(name)

	v.logger.Debug("Output directory validated", slog.String("directory", dir))
	return nil
}

// ValidateFile checks that path exists, is a regular file and can be opened.
// A missing file is reported as a missing input.
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		v.logger.Error("File does not exist", slog.String("file", path))
		return apperrors.NewMissingInputError(path, err)
	}
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path))
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateExcelFile checks that path is a readable .xlsx workbook and not an
// Office lock file.
func (v *FileValidator) ValidateExcelFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" {
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s is not an xlsx workbook (extension: %s)", path, ext))
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s is a temporary Excel file", path))
	}

	return nil
}

// ValidateSources checks every workbook of set and returns all failures
// joined, in source order.
func (v *FileValidator) ValidateSources(set domain.SourceSet) error {
	if len(set.Sources) == 0 {
		return apperrors.NewAppValidationError("no input workbooks configured")
	}

	var errs []error
	for _, src := range set.Sources {
		if err := v.ValidateExcelFile(src.Path); err != nil {
			errs = append(errs, err)
			continue
		}
		v.logger.Info("Input workbook validated",
			slog.String("location", src.Location),
			slog.String("file", src.Path))
	}
	return errors.Join(errs...)
}
