package json

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jt05610/petri-industry/industry"
	pf "github.com/jt05610/petri-industry/petrifile"
)

var _ pf.Service = (*Service)(nil)

// Service is the tab-indented JSON project format.
type Service struct {
}

func (s *Service) Load(ctx context.Context, r io.Reader) (*industry.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := industry.NewDocument()
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return doc, nil
}

func (s *Service) Save(ctx context.Context, w io.Writer, doc *industry.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(doc)
}

func (s *Service) Format() pf.Format {
	return pf.JSON
}
