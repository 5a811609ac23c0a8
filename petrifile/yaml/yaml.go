package yaml

import (
	"context"
	"fmt"
	"io"

	"github.com/jt05610/petri-industry/industry"
	pf "github.com/jt05610/petri-industry/petrifile"
	"gopkg.in/yaml.v3"
)

var _ pf.Service = (*Service)(nil)

type Service struct {
}

func (s *Service) Load(ctx context.Context, r io.Reader) (*industry.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := industry.NewDocument()
	if err := yaml.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return doc, nil
}

func (s *Service) Save(ctx context.Context, w io.Writer, doc *industry.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func (s *Service) Format() pf.Format {
	return pf.YAML
}
