// Package source fetches template records from a local export or a REST
// endpoint and watches local exports for changes.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spektr-org/dataviews/helpers"
	"github.com/spektr-org/dataviews/internal/logger"
	"github.com/spektr-org/dataviews/templates"
)

// ErrUnsupportedFormat is returned for files that are neither JSON nor CSV.
var ErrUnsupportedFormat = errors.New("unsupported record format")

// Source yields the full record set.
type Source interface {
	Fetch(ctx context.Context) ([]templates.Template, error)
}

// FileSource reads a JSON or CSV export, chosen by file extension.
type FileSource struct {
	Path string
}

// NewFileSource validates the extension up front.
func NewFileSource(path string) (*FileSource, error) {
	if _, err := parserFor(path); err != nil {
		return nil, err
	}
	return &FileSource{Path: path}, nil
}

func parserFor(path string) (func([]byte) ([]templates.Template, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return helpers.ParseJSON, nil
	case ".csv":
		return helpers.ParseCSV, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Fetch reads and parses the file.
func (s *FileSource) Fetch(ctx context.Context) ([]templates.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	parse, err := parserFor(s.Path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	records, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.Path, err)
	}
	logger.FromContext(ctx).Debug("Loaded records", "path", s.Path, "count", len(records))
	return records, nil
}
