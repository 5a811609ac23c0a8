package petri

import (
	"fmt"
	"math"

	"github.com/jt05610/petri-industry/signal"
)

type NodeKind int

const (
	PlaceNode NodeKind = iota
	TransitionNode
)

func (k NodeKind) String() string {
	switch k {
	case PlaceNode:
		return "place"
	case TransitionNode:
		return "transition"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Element is a Place or a Transition.
type Element interface {
	Object
	Kind() NodeKind
	fmt.Stringer
}

var (
	_ Element = (*Place)(nil)
	_ Element = (*Transition)(nil)
)

const (
	DefaultLabelAngle    = math.Pi / 2
	DefaultLabelDistance = 35.0
)

// Node is a positioned, labelled Entity.
type Node struct {
	Entity
	PositionChanged signal.Notifier
	LabelChanged    signal.Notifier

	x, y          signal.Field[float64]
	label         signal.Field[string]
	labelAngle    signal.Field[float64]
	labelDistance signal.Field[float64]
}

// Init wires the node's notifications and places it at (x, y). Types that
// embed Node call it from their constructor.
func (n *Node) Init(x, y float64) {
	n.x = signal.NewField[float64](nil, 0)
	n.y = signal.NewField[float64](nil, 0)
	n.label = signal.NewField(&n.LabelChanged, "")
	n.labelAngle = signal.NewField(&n.LabelChanged, DefaultLabelAngle)
	n.labelDistance = signal.NewField(&n.LabelChanged, DefaultLabelDistance)
	n.PositionChanged.Relay(&n.Changed)
	n.LabelChanged.Relay(&n.Changed)
	n.Move(x, y)
}

func (n *Node) X() float64 { return n.x.Get() }
func (n *Node) Y() float64 { return n.y.Get() }

// Move sets both coordinates with a single position notification.
func (n *Node) Move(x, y float64) {
	cx := n.x.Store(x)
	cy := n.y.Store(y)
	if cx || cy {
		n.PositionChanged.Notify()
	}
}

func (n *Node) Label() string              { return n.label.Get() }
func (n *Node) SetLabel(label string)      { n.label.Set(label) }
func (n *Node) LabelAngle() float64        { return n.labelAngle.Get() }
func (n *Node) SetLabelAngle(a float64)    { n.labelAngle.Set(a) }
func (n *Node) LabelDistance() float64     { return n.labelDistance.Get() }
func (n *Node) SetLabelDistance(d float64) { n.labelDistance.Set(d) }

// ClearLabel empties the label and puts its geometry back to the defaults.
func (n *Node) ClearLabel() {
	c := n.label.Store("")
	c = n.labelAngle.Store(n.labelAngle.Default()) || c
	c = n.labelDistance.Store(n.labelDistance.Default()) || c
	if c {
		n.LabelChanged.Notify()
	}
}

func (n *Node) name(prefix string) string {
	if l := n.Label(); l != "" {
		return l
	}
	if !n.HasID() {
		return prefix + "?"
	}
	return fmt.Sprintf("%s%d", prefix, n.ID())
}

// NodeDocument returns the persisted form of the node.
func (n *Node) NodeDocument() NodeDocument {
	return NodeDocument{
		ID:            n.ID(),
		X:             n.X(),
		Y:             n.Y(),
		Label:         n.Label(),
		LabelAngle:    n.LabelAngle(),
		LabelDistance: n.LabelDistance(),
	}
}

// ReadDocument copies the persisted node fields except the id, which belongs
// to the registry.
func (n *Node) ReadDocument(d NodeDocument) {
	n.Move(d.X, d.Y)
	n.SetLabel(d.Label)
	n.SetLabelAngle(d.LabelAngle)
	n.SetLabelDistance(d.LabelDistance)
}
