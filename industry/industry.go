// Package industry connects the Petri nets of several enterprises through
// typed messages.
//
// Like the nets it holds, an Industry is not safe for concurrent use. A
// multi-threaded host connecting a message must hold the locks of both
// enterprise nets for the duration of Connect.
package industry

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	petri "github.com/jt05610/petri-industry"
	"github.com/jt05610/petri-industry/signal"
	"go.uber.org/zap"
)

var (
	ErrKindMismatch        = errors.New("transition kind does not fit this end of a message")
	ErrMessageTypeMismatch = errors.New("message types differ")
	ErrSameEnterprise      = errors.New("message would loop back into its own enterprise")
	ErrAlreadyConnected    = errors.New("transition is already connected")
	ErrForeignTransition   = errors.New("transition does not belong to the enterprise")
)

// Industry holds the enterprises, the messages between them and a top level
// net of its own.
type Industry struct {
	Changed signal.Notifier
	// Connected carries every message registered by Connect or Load.
	Connected signal.Signal[*Message]

	Net         *petri.Net
	Enterprises *petri.Registry[*Enterprise]
	Messages    *petri.Registry[*Message]

	logger    *zap.Logger
	chooser   petri.Chooser
	selfLoops bool
}

type Option func(*Industry)

func WithLogger(logger *zap.Logger) Option {
	return func(i *Industry) {
		i.logger = logger
	}
}

func WithChooser(c petri.Chooser) Option {
	return func(i *Industry) {
		i.chooser = c
	}
}

// WithSelfLoops allows messages whose two ends sit in the same enterprise.
func WithSelfLoops(allow bool) Option {
	return func(i *Industry) {
		i.selfLoops = allow
	}
}

func New(opts ...Option) *Industry {
	i := &Industry{
		Enterprises: petri.NewRegistry[*Enterprise](),
		Messages:    petri.NewRegistry[*Message](),
		logger:      zap.NewNop(),
		chooser:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.Net = petri.New(i.netOptions("industry")...)
	i.Net.Changed.Relay(&i.Changed)
	i.Enterprises.Changed.Relay(&i.Changed)
	i.Messages.Changed.Relay(&i.Changed)
	return i
}

func (i *Industry) netOptions(name string) []petri.Option {
	return []petri.Option{
		petri.WithName(name),
		petri.WithLogger(i.logger),
		petri.WithChooser(i.chooser),
	}
}

// SelfLoops reports whether messages within one enterprise are allowed.
func (i *Industry) SelfLoops() bool { return i.selfLoops }

// NewEnterprise creates an enterprise at (x, y) labelled with a name from
// the roster and registers it.
func (i *Industry) NewEnterprise(x, y float64) (*Enterprise, error) {
	name := RandomName(i.chooser)
	e := NewEnterprise(x, y, i.netOptions(name)...)
	e.SetLabel(name)
	if _, err := i.AddEnterprise(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (i *Industry) AddEnterprise(e *Enterprise) (petri.ID, error) {
	return i.Enterprises.Add(e)
}

// EnterpriseOf finds the enterprise whose net holds t.
func (i *Industry) EnterpriseOf(t *petri.Transition) (*Enterprise, error) {
	for _, e := range i.Enterprises.All() {
		if e.Net().Transitions.Contains(t) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: no enterprise holds %s", petri.ErrNotFound, t)
}

// CanConnect returns nil when a message may go from output to input. The
// error names the first rule that fails.
func (i *Industry) CanConnect(input, output Endpoint) error {
	if err := i.checkEndpoint(input, petri.InputPort); err != nil {
		return err
	}
	if err := i.checkEndpoint(output, petri.OutputPort); err != nil {
		return err
	}
	if in, out := input.Transition.MessageType(), output.Transition.MessageType(); in != out {
		return fmt.Errorf("%w: %q and %q", ErrMessageTypeMismatch, out, in)
	}
	if !i.selfLoops && input.Enterprise == output.Enterprise {
		return fmt.Errorf("%w: %s", ErrSameEnterprise, input.Enterprise)
	}
	return nil
}

func (i *Industry) checkEndpoint(ep Endpoint, want petri.TransitionType) error {
	if ep.Enterprise == nil || ep.Transition == nil {
		return fmt.Errorf("%w: incomplete %s endpoint", ErrForeignTransition, want)
	}
	if got := ep.Transition.Type(); got != want {
		return fmt.Errorf("%w: %s is %s, want %s", ErrKindMismatch, ep.Transition, got, want)
	}
	if !i.Enterprises.Contains(ep.Enterprise) {
		return fmt.Errorf("%w: enterprise %s", petri.ErrForeignNode, ep.Enterprise)
	}
	if !ep.Enterprise.Net().Transitions.Contains(ep.Transition) {
		return fmt.Errorf("%w: %s", ErrForeignTransition, ep)
	}
	if !ep.Enterprise.Active() || !ep.Transition.Active() {
		return fmt.Errorf("%w: %s", petri.ErrInactive, ep)
	}
	if m := ep.Transition.Message(); m != nil && m.Base().Active() {
		return fmt.Errorf("%w: %s", ErrAlreadyConnected, ep)
	}
	return nil
}

func (i *Industry) Compatible(input, output Endpoint) bool {
	return i.CanConnect(input, output) == nil
}

// Connect validates and registers a message from output to input. Nothing is
// changed when validation fails.
func (i *Industry) Connect(input, output Endpoint) (*Message, error) {
	return i.connect(input, output, petri.NoID)
}

func (i *Industry) connect(input, output Endpoint, id petri.ID) (*Message, error) {
	if err := i.CanConnect(input, output); err != nil {
		i.logger.Warn("message rejected",
			zap.Stringer("input", input.Transition),
			zap.Stringer("output", output.Transition),
			zap.Error(err),
		)
		return nil, err
	}
	m := newMessage(input, output)
	var err error
	if id == petri.NoID {
		_, err = i.Messages.Add(m)
	} else {
		err = i.Messages.AddWithID(m, id)
	}
	if err != nil {
		return nil, err
	}
	m.bind()
	i.logger.Debug("message connected",
		zap.Stringer("message", m),
		zap.String("type", m.MessageType()),
	)
	i.Connected.Emit(m)
	return m, nil
}

// RestoreMessage reactivates a deleted message after checking that both ends
// are still active and free. A plain m.Restore() that fails those checks
// leaves the message deleted.
func (i *Industry) RestoreMessage(m *Message) error {
	if !i.Messages.Contains(m) {
		return fmt.Errorf("%w: message %s", petri.ErrNotFound, m)
	}
	if m.Active() {
		return nil
	}
	if err := m.check(); err != nil {
		i.logger.Warn("message restore rejected", zap.Stringer("message", m), zap.Error(err))
		return err
	}
	m.Restore()
	return nil
}

// Detach drops the subscriptions of every message, deleted ones included,
// once the industry is thrown away.
func (i *Industry) Detach() {
	for _, m := range i.Messages.Members() {
		m.Detach()
	}
}
