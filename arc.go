package petri

import (
	"fmt"
	"slices"

	"github.com/jt05610/petri-industry/signal"
)

type ArrowType int

const (
	InputArrow ArrowType = iota
	OutputArrow
)

func (a ArrowType) String() string {
	switch a {
	case InputArrow:
		return "input"
	case OutputArrow:
		return "output"
	default:
		return fmt.Sprintf("ArrowType(%d)", int(a))
	}
}

// ArrowState is where an Arrow stands in its registration lifecycle.
type ArrowState int

const (
	Unregistered ArrowState = iota
	RegisteredInput
	RegisteredOutput
	Removed
)

func (s ArrowState) String() string {
	switch s {
	case Unregistered:
		return "unregistered"
	case RegisteredInput:
		return "registered-input"
	case RegisteredOutput:
		return "registered-output"
	case Removed:
		return "deleted"
	default:
		return fmt.Sprintf("ArrowState(%d)", int(s))
	}
}

// Arrow connects a place and a transition. An input arrow puts the place in
// the transition's preset, an output arrow in its postset.
//
// Subscriptions held by an arrow:
//   - place.Deleted and transition.Deleted -> Delete (cascade)
//   - own Deleted -> remove from the adjacency list
//   - own Restored -> add back to the same adjacency list, or delete the
//     arrow right away when an endpoint is deleted or another arrow already
//     joins the same pair
//
// The arrow does not own its endpoints; Detach drops the two endpoint
// subscriptions when an arrow is thrown away for good.
type Arrow struct {
	Entity

	typ        ArrowType
	place      *Place
	transition *Transition
	registered bool
	placeConn  signal.Conn
	transConn  signal.Conn
}

// NewArrow builds the arrow and registers it with the transition right away.
func NewArrow(typ ArrowType, place *Place, transition *Transition) (*Arrow, error) {
	switch typ {
	case InputArrow, OutputArrow:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownArrowType, int(typ))
	}
	a := &Arrow{
		typ:        typ,
		place:      place,
		transition: transition,
	}
	a.placeConn = place.Deleted.Subscribe(a.Delete)
	a.transConn = transition.Deleted.Subscribe(a.Delete)
	a.Deleted.Subscribe(a.unregister)
	a.Restored.Subscribe(a.restored)
	a.register()
	return a, nil
}

func (a *Arrow) Type() ArrowType { return a.typ }

func (a *Arrow) Place() *Place { return a.place }

func (a *Arrow) Transition() *Transition { return a.transition }

func (a *Arrow) State() ArrowState {
	switch {
	case !a.Active():
		return Removed
	case !a.registered:
		return Unregistered
	case a.typ == InputArrow:
		return RegisteredInput
	default:
		return RegisteredOutput
	}
}

// check reports why the arrow could not be registered right now. A deleted
// arrow is never in the adjacency lists, so finding its place there means
// another arrow holds the pair.
func (a *Arrow) check() error {
	if !a.place.Active() || !a.transition.Active() {
		return fmt.Errorf("%w: %s", ErrInactive, a)
	}
	if a.registered {
		return nil
	}
	adjacent := a.transition.inputs
	if a.typ == OutputArrow {
		adjacent = a.transition.outputs
	}
	if slices.Contains(adjacent, a.place) {
		return fmt.Errorf("%w: %s", ErrDuplicateArrow, a)
	}
	return nil
}

func (a *Arrow) restored() {
	if a.check() != nil {
		a.Delete()
		return
	}
	a.register()
}

func (a *Arrow) register() {
	if a.registered {
		return
	}
	switch a.typ {
	case InputArrow:
		a.transition.AddInput(a.place)
	case OutputArrow:
		a.transition.AddOutput(a.place)
	}
	a.registered = true
}

func (a *Arrow) unregister() {
	if !a.registered {
		return
	}
	a.registered = false
	switch a.typ {
	case InputArrow:
		_ = a.transition.RemoveInput(a.place)
	case OutputArrow:
		_ = a.transition.RemoveOutput(a.place)
	}
}

// Detach stops the arrow from following its endpoints' deletion.
func (a *Arrow) Detach() {
	_ = a.place.Deleted.Disconnect(a.placeConn)
	_ = a.transition.Deleted.Disconnect(a.transConn)
}

func (a *Arrow) String() string {
	if a.typ == InputArrow {
		return a.place.String() + " -> " + a.transition.String()
	}
	return a.transition.String() + " -> " + a.place.String()
}

func (a *Arrow) Document() ArrowDocument {
	return ArrowDocument{
		ID:         a.ID(),
		Place:      a.place.ID(),
		Transition: a.transition.ID(),
	}
}
