package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"guestcomplaints/pkg/contracts/domain"
)

// DefaultLocationPattern matches per-location complaint workbooks such as
// Reclamacoes_2025_Traduzido_Portugal.xlsx.
const DefaultLocationPattern = "Reclamacoes_*_Traduzido_*.xlsx"

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}

// FindExcelFiles finds the workbooks in dir, oldest first. Office lock
// files (~$name.xlsx) are skipped.
func (d *Discovery) FindExcelFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "~$") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.Before(files[j].ModTime)
	})

	return files, nil
}

// FindFilesByPattern finds regular files in dir matching a glob pattern,
// sorted by name.
func (d *Discovery) FindFilesByPattern(dir string, pattern string) ([]FileInfo, error) {
	searchPattern := filepath.Join(d.resolve(dir), pattern)

	matches, err := filepath.Glob(searchPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	var files []FileInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() || strings.HasPrefix(info.Name(), "~$") {
			continue
		}
		files = append(files, FileInfo{
			Path:    match,
			Name:    info.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// LocationWorkbooks builds a source set from the per-location workbooks in
// dir matching pattern. The location label is the last underscore-separated
// part of the file name: Reclamacoes_2025_Traduzido_Londres.xlsx is Londres.
// ok is false when fewer than two workbooks match; a lone location file is
// not treated as a multi-location layout.
func (d *Discovery) LocationWorkbooks(dir, pattern string) (set domain.SourceSet, ok bool, err error) {
	if pattern == "" {
		pattern = DefaultLocationPattern
	}

	files, err := d.FindFilesByPattern(dir, pattern)
	if err != nil {
		return domain.SourceSet{}, false, err
	}
	if len(files) < 2 {
		return domain.SourceSet{}, false, nil
	}

	seen := make(map[string]string, len(files))
	for _, f := range files {
		label := LocationLabel(f.Name)
		if label == "" {
			continue
		}
		if prev, dup := seen[label]; dup {
			return domain.SourceSet{}, false, fmt.Errorf("location %q matched by both %s and %s", label, prev, f.Name)
		}
		seen[label] = f.Name
		set.Sources = append(set.Sources, domain.Source{Path: f.Path, Location: label})
	}

	if len(set.Sources) < 2 {
		return domain.SourceSet{}, false, nil
	}
	return set, true, nil
}

// LocationLabel extracts the location label from a workbook file name.
func LocationLabel(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	i := strings.LastIndex(base, "_")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(base[i+1:])
}
