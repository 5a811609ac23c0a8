// Package petrifile reads and writes industry documents.
package petrifile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jt05610/petri-industry/industry"
)

var ErrUnknownFormat = errors.New("unknown file format")

type Service interface {
	Load(ctx context.Context, r io.Reader) (*industry.Document, error)
	Save(ctx context.Context, w io.Writer, doc *industry.Document) error
	Format() Format
}

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatOf picks the format from the file extension. Files without an
// extension, and .petri files, are JSON.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".json", ".petri":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// Services maps each format to the codec that handles it.
type Services map[Format]Service

func NewServices(srv ...Service) Services {
	s := make(Services)
	for _, v := range srv {
		s[v.Format()] = v
	}
	return s
}

func (s Services) ForPath(path string) (Service, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	return s.ForFormat(f)
}

func (s Services) ForFormat(f Format) (Service, error) {
	srv, ok := s[f]
	if !ok {
		return nil, fmt.Errorf("%w: no codec for %s", ErrUnknownFormat, f)
	}
	return srv, nil
}
