// Package project ties an industry to the file it is stored in.
package project

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jt05610/petri-industry/industry"
	"github.com/jt05610/petri-industry/petrifile"
	pj "github.com/jt05610/petri-industry/petrifile/json"
	"github.com/jt05610/petri-industry/petrifile/yaml"
	"github.com/jt05610/petri-industry/signal"
	"go.uber.org/zap"
)

var ErrNoFilename = errors.New("project has no filename")

// Project owns the industry being edited and remembers where it lives and
// whether it changed since the last load or save.
type Project struct {
	ID uuid.UUID

	FilenameChanged signal.Notifier
	UnsavedChanged  signal.Notifier
	// IndustryChanged fires when Load or Reset replaces the industry.
	IndustryChanged signal.Notifier

	filename signal.Field[string]
	unsaved  signal.Field[bool]
	industry *industry.Industry
	watch    signal.Conn
	services petrifile.Services
	logger   *zap.Logger
	opts     []industry.Option
}

type Option func(*Project)

func WithLogger(logger *zap.Logger) Option {
	return func(p *Project) {
		p.logger = logger
	}
}

func WithServices(s petrifile.Services) Option {
	return func(p *Project) {
		p.services = s
	}
}

// WithIndustryOptions is applied to every industry the project creates.
func WithIndustryOptions(opts ...industry.Option) Option {
	return func(p *Project) {
		p.opts = append(p.opts, opts...)
	}
}

func DefaultServices() petrifile.Services {
	return petrifile.NewServices(&pj.Service{}, &yaml.Service{})
}

func New(opts ...Option) *Project {
	p := &Project{
		ID:       uuid.New(),
		services: DefaultServices(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(zap.Stringer("project", p.ID))
	p.filename = signal.NewField(&p.FilenameChanged, "")
	p.unsaved = signal.NewField(&p.UnsavedChanged, false)
	p.swap(p.newIndustry())
	return p
}

func (p *Project) newIndustry() *industry.Industry {
	opts := append([]industry.Option{industry.WithLogger(p.logger)}, p.opts...)
	return industry.New(opts...)
}

func (p *Project) swap(ind *industry.Industry) {
	if p.industry != nil {
		_ = p.industry.Changed.Disconnect(p.watch)
		p.industry.Detach()
	}
	p.industry = ind
	p.watch = ind.Changed.Subscribe(func() { p.unsaved.Set(true) })
	p.IndustryChanged.Notify()
}

func (p *Project) Industry() *industry.Industry { return p.industry }

func (p *Project) Filename() string { return p.filename.Get() }

func (p *Project) SetFilename(name string) { p.filename.Set(name) }

// Unsaved reports whether the industry changed since it was last loaded or
// saved.
func (p *Project) Unsaved() bool { return p.unsaved.Get() }

// Reset replaces the industry with an empty one and forgets the filename.
func (p *Project) Reset() {
	p.swap(p.newIndustry())
	p.filename.Set("")
	p.unsaved.Set(false)
}

// Load reads path into a new industry. The current industry is kept when
// reading or rebuilding fails.
func (p *Project) Load(ctx context.Context, path string) error {
	srv, err := p.services.ForPath(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	doc, err := srv.Load(ctx, f)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	ind := p.newIndustry()
	if err := ind.Load(doc); err != nil {
		p.logger.Error("corrupted project file", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("load %s: %w", path, err)
	}
	p.swap(ind)
	p.filename.Set(path)
	p.unsaved.Set(false)
	p.logger.Info("project loaded",
		zap.String("path", path),
		zap.Int("enterprises", ind.Enterprises.Len()),
		zap.Int("messages", ind.Messages.Len()),
	)
	return nil
}

// Save writes the industry to path, or to the current filename when path is
// empty.
func (p *Project) Save(ctx context.Context, path string) error {
	if path == "" {
		path = p.Filename()
	}
	if path == "" {
		return ErrNoFilename
	}
	srv, err := p.services.ForPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := srv.Save(ctx, f, p.industry.Save()); err != nil {
		_ = f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	p.filename.Set(path)
	p.unsaved.Set(false)
	p.logger.Info("project saved", zap.String("path", path))
	return nil
}
