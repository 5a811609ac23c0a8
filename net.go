package petri

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jt05610/petri-industry/signal"
	"go.uber.org/zap"
)

// Chooser picks an index in [0, n). *rand.Rand satisfies it.
type Chooser interface {
	Intn(n int) int
}

// Net owns the places, transitions and arrows of one Petri net and keeps its
// deadlock flag current.
//
// A Net is not safe for concurrent use. Every mutation runs its whole
// notification cascade before returning; a multi-threaded host must hold one
// lock per Net around every call.
type Net struct {
	Name string

	Changed         signal.Notifier
	DeadlockChanged signal.Notifier
	// Fired carries every transition of this net that fired.
	Fired signal.Signal[*Transition]

	Places      *Registry[*Place]
	Transitions *Registry[*Transition]
	Inputs      *Registry[*Arrow]
	Outputs     *Registry[*Arrow]

	deadlock signal.Field[bool]
	logger   *zap.Logger
	chooser  Chooser
}

type Option func(*Net)

func WithLogger(logger *zap.Logger) Option {
	return func(n *Net) {
		n.logger = logger
	}
}

func WithChooser(c Chooser) Option {
	return func(n *Net) {
		n.chooser = c
	}
}

func WithName(name string) Option {
	return func(n *Net) {
		n.Name = name
	}
}

func New(opts ...Option) *Net {
	n := &Net{
		Name:        "net",
		Places:      NewRegistry[*Place](),
		Transitions: NewRegistry[*Transition](),
		Inputs:      NewRegistry[*Arrow](),
		Outputs:     NewRegistry[*Arrow](),
		logger:      zap.NewNop(),
		chooser:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.logger = n.logger.With(zap.String("net", n.Name))
	n.deadlock = signal.NewField(&n.DeadlockChanged, false)
	n.Places.Changed.Relay(&n.Changed)
	n.Transitions.Changed.Relay(&n.Changed)
	n.Inputs.Changed.Relay(&n.Changed)
	n.Outputs.Changed.Relay(&n.Changed)
	n.Transitions.Added.Connect(n.watch)
	n.CheckDeadlock()
	return n
}

func (n *Net) watch(t *Transition) {
	t.EnabledChanged.Subscribe(func() { n.CheckDeadlock() })
	t.StatusChanged.Subscribe(func() { n.CheckDeadlock() })
	t.Fired.Subscribe(func() { n.Fired.Emit(t) })
	n.CheckDeadlock()
}

// Deadlock reports whether no active transition is enabled.
func (n *Net) Deadlock() bool {
	return n.deadlock.Get()
}

func (n *Net) CheckDeadlock() bool {
	deadlock := true
	for _, t := range n.Transitions.All() {
		if t.Enabled() {
			deadlock = false
			break
		}
	}
	if n.deadlock.Set(deadlock) {
		if deadlock {
			n.logger.Info("net deadlocked")
		} else {
			n.logger.Info("net live")
		}
	}
	return deadlock
}

func (n *Net) AddPlace(p *Place) (ID, error) {
	return n.Places.Add(p)
}

func (n *Net) AddTransition(t *Transition) (ID, error) {
	return n.Transitions.Add(t)
}

func (n *Net) arrows(typ ArrowType) (*Registry[*Arrow], error) {
	switch typ {
	case InputArrow:
		return n.Inputs, nil
	case OutputArrow:
		return n.Outputs, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownArrowType, int(typ))
	}
}

// Connect builds an arrow between two active members of this net and
// registers it. A second active arrow of the same type between the same pair
// is rejected.
func (n *Net) Connect(typ ArrowType, p *Place, t *Transition) (*Arrow, error) {
	return n.connect(typ, p, t, NoID)
}

func (n *Net) connect(typ ArrowType, p *Place, t *Transition, id ID) (*Arrow, error) {
	reg, err := n.arrows(typ)
	if err != nil {
		return nil, err
	}
	if !n.Places.Contains(p) {
		return nil, fmt.Errorf("%w: place %s", ErrForeignNode, p)
	}
	if !n.Transitions.Contains(t) {
		return nil, fmt.Errorf("%w: transition %s", ErrForeignNode, t)
	}
	if !p.Active() || !t.Active() {
		return nil, fmt.Errorf("%w: cannot connect %s and %s", ErrInactive, p, t)
	}
	for _, a := range reg.All() {
		if a.place == p && a.transition == t {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateArrow, a)
		}
	}
	a, err := NewArrow(typ, p, t)
	if err != nil {
		return nil, err
	}
	if id == NoID {
		_, err = reg.Add(a)
	} else {
		err = reg.AddWithID(a, id)
	}
	if err != nil {
		a.Detach()
		a.unregister()
		return nil, err
	}
	n.logger.Debug("arrow connected", zap.Stringer("arrow", a), zap.Stringer("type", typ))
	return a, nil
}

// RestoreArrow reactivates a deleted arrow of this net after checking that
// both endpoints are active and no other arrow joins them. A plain
// a.Restore() that fails those checks leaves the arrow deleted.
func (n *Net) RestoreArrow(a *Arrow) error {
	reg, err := n.arrows(a.typ)
	if err != nil {
		return err
	}
	if !reg.Contains(a) {
		return fmt.Errorf("%w: arrow %s", ErrForeignNode, a)
	}
	if a.Active() {
		return nil
	}
	if err := a.check(); err != nil {
		n.logger.Warn("arrow restore rejected", zap.Stringer("arrow", a), zap.Error(err))
		return err
	}
	a.Restore()
	return nil
}

// Enabled returns the active transitions that can fire, in registry order.
func (n *Net) Enabled() []*Transition {
	ret := make([]*Transition, 0)
	for _, t := range n.Transitions.All() {
		if t.Enabled() {
			ret = append(ret, t)
		}
	}
	return ret
}

// Trigger fires t, which must be a member of this net.
func (n *Net) Trigger(t *Transition) error {
	if !n.Transitions.Contains(t) {
		return fmt.Errorf("%w: transition %s", ErrForeignNode, t)
	}
	if err := t.Trigger(); err != nil {
		return err
	}
	n.logger.Debug("transition fired", zap.Stringer("transition", t))
	return nil
}

// TriggerRandom fires one enabled transition picked uniformly by the net's
// Chooser. A deadlocked net is left untouched and ErrDeadlock is returned.
func (n *Net) TriggerRandom() (*Transition, error) {
	candidates := n.Enabled()
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDeadlock, n.Name)
	}
	t := candidates[n.chooser.Intn(len(candidates))]
	return t, n.Trigger(t)
}

// Marking maps every active place id to its token count.
func (n *Net) Marking() map[ID]int {
	m := make(map[ID]int)
	for _, p := range n.Places.All() {
		m[p.ID()] = p.Tokens()
	}
	return m
}

// SetInitialMarking puts one token in every place except those fed by an
// output arrow, which start empty.
func (n *Net) SetInitialMarking() {
	for _, p := range n.Places.All() {
		p.SetTokens(1)
	}
	for _, a := range n.Outputs.All() {
		a.place.SetTokens(0)
	}
}

func (n *Net) String() string {
	return n.Name
}
