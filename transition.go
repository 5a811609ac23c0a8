package petri

import (
	"fmt"
	"math"
	"slices"

	"github.com/jt05610/petri-industry/signal"
)

// TransitionType says whether a transition is internal to its net or one end
// of a message channel between enterprises.
type TransitionType int

const (
	Internal TransitionType = iota
	InputPort
	OutputPort
)

func (t TransitionType) String() string {
	switch t {
	case Internal:
		return "internal"
	case InputPort:
		return "input"
	case OutputPort:
		return "output"
	default:
		return fmt.Sprintf("TransitionType(%d)", int(t))
	}
}

func (t TransitionType) Valid() bool {
	switch t {
	case Internal, InputPort, OutputPort:
		return true
	default:
		return false
	}
}

const DefaultArrowAngle = math.Pi

// Transition consumes one token from every input place and produces one in
// every output place. Enabled, Source and Sink are derived from the adjacency
// lists and the input token counts; callers never set them.
type Transition struct {
	Node
	EnabledChanged     signal.Notifier
	SourceChanged      signal.Notifier
	SinkChanged        signal.Notifier
	TypeChanged        signal.Notifier
	MessageTypeChanged signal.Notifier
	MessageChanged     signal.Notifier
	ArrowChanged       signal.Notifier
	// Fired is notified after every successful Trigger.
	Fired signal.Notifier

	enabled       signal.Field[bool]
	source        signal.Field[bool]
	sink          signal.Field[bool]
	typ           signal.Field[TransitionType]
	messageType   signal.Field[string]
	message       signal.Field[Object]
	arrowAngle    signal.Field[float64]
	industryAngle signal.Field[float64]

	inputs     []*Place
	inputConns []signal.Conn
	outputs    []*Place
}

func NewTransition(x, y float64) *Transition {
	t := &Transition{}
	t.Init(x, y)
	t.enabled = signal.NewField(&t.EnabledChanged, false)
	t.source = signal.NewField(&t.SourceChanged, true)
	t.sink = signal.NewField(&t.SinkChanged, true)
	t.typ = signal.NewField(&t.TypeChanged, Internal)
	t.messageType = signal.NewField(&t.MessageTypeChanged, "")
	t.message = signal.NewField[Object](&t.MessageChanged, nil)
	t.arrowAngle = signal.NewField(&t.ArrowChanged, DefaultArrowAngle)
	t.industryAngle = signal.NewField(&t.ArrowChanged, 0.0)
	t.TypeChanged.Relay(&t.Changed)
	t.MessageTypeChanged.Relay(&t.Changed)
	t.ArrowChanged.Relay(&t.Changed)
	t.CheckEnabled()
	return t
}

func (t *Transition) Kind() NodeKind { return TransitionNode }

func (t *Transition) String() string { return t.name("t") }

func (t *Transition) Enabled() bool { return t.enabled.Get() }

// IsSource reports whether the transition has no input arrows.
func (t *Transition) IsSource() bool { return t.source.Get() }

// IsSink reports whether the transition has no output arrows.
func (t *Transition) IsSink() bool { return t.sink.Get() }

func (t *Transition) Inputs() []*Place  { return slices.Clone(t.inputs) }
func (t *Transition) Outputs() []*Place { return slices.Clone(t.outputs) }

// CheckEnabled recomputes and stores whether every input place holds a token.
// A transition without inputs is always enabled.
func (t *Transition) CheckEnabled() bool {
	enabled := true
	for _, p := range t.inputs {
		if p.Tokens() < 1 {
			enabled = false
			break
		}
	}
	t.enabled.Set(enabled)
	return enabled
}

// AddInput appends p to the preset and follows its token count from now on.
func (t *Transition) AddInput(p *Place) {
	t.inputs = append(t.inputs, p)
	t.inputConns = append(t.inputConns, p.TokensChanged.Subscribe(func() { t.CheckEnabled() }))
	t.source.Set(false)
	t.CheckEnabled()
}

// RemoveInput drops the first occurrence of p from the preset.
func (t *Transition) RemoveInput(p *Place) error {
	i := slices.Index(t.inputs, p)
	if i < 0 {
		return fmt.Errorf("%w: %s is not an input of %s", ErrNotFound, p, t)
	}
	_ = p.TokensChanged.Disconnect(t.inputConns[i])
	t.inputs = slices.Delete(t.inputs, i, i+1)
	t.inputConns = slices.Delete(t.inputConns, i, i+1)
	t.source.Set(len(t.inputs) == 0)
	t.CheckEnabled()
	return nil
}

func (t *Transition) AddOutput(p *Place) {
	t.outputs = append(t.outputs, p)
	t.sink.Set(false)
}

// RemoveOutput drops the first occurrence of p from the postset.
func (t *Transition) RemoveOutput(p *Place) error {
	i := slices.Index(t.outputs, p)
	if i < 0 {
		return fmt.Errorf("%w: %s is not an output of %s", ErrNotFound, p, t)
	}
	t.outputs = slices.Delete(t.outputs, i, i+1)
	t.sink.Set(len(t.outputs) == 0)
	return nil
}

// Trigger fires the transition: one token is taken from every input, then one
// is given to every output.
func (t *Transition) Trigger() error {
	if !t.Active() {
		return fmt.Errorf("%w: %s", ErrInactive, t)
	}
	if !t.CheckEnabled() {
		return NotEnabled(t)
	}
	inputs := slices.Clone(t.inputs)
	outputs := slices.Clone(t.outputs)
	for _, p := range inputs {
		p.Take()
	}
	for _, p := range outputs {
		p.Give()
	}
	t.Fired.Notify()
	return nil
}

func (t *Transition) Type() TransitionType       { return t.typ.Get() }
func (t *Transition) SetType(typ TransitionType) { t.typ.Set(typ) }
func (t *Transition) MessageType() string        { return t.messageType.Get() }
func (t *Transition) SetMessageType(m string)    { t.messageType.Set(m) }
func (t *Transition) ArrowAngle() float64        { return t.arrowAngle.Get() }
func (t *Transition) SetArrowAngle(a float64)    { t.arrowAngle.Set(a) }
func (t *Transition) IndustryAngle() float64     { return t.industryAngle.Get() }
func (t *Transition) SetIndustryAngle(a float64) { t.industryAngle.Set(a) }

// Message returns the connection this port takes part in, or nil.
func (t *Transition) Message() Object { return t.message.Get() }

// SetMessage is called by the connection owner; pass nil to clear.
func (t *Transition) SetMessage(m Object) { t.message.Set(m) }

func (t *Transition) Document() TransitionDocument {
	return TransitionDocument{
		NodeDocument:  t.NodeDocument(),
		Type:          t.Type(),
		MessageType:   t.MessageType(),
		ArrowAngle:    t.ArrowAngle(),
		IndustryAngle: t.IndustryAngle(),
	}
}

func (t *Transition) ReadDocument(d TransitionDocument) {
	t.Node.ReadDocument(d.NodeDocument)
	t.SetType(d.Type)
	t.SetMessageType(d.MessageType)
	t.SetArrowAngle(d.ArrowAngle)
	t.SetIndustryAngle(d.IndustryAngle)
}
