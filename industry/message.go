package industry

import (
	"fmt"

	petri "github.com/jt05610/petri-industry"
	"github.com/jt05610/petri-industry/signal"
)

// Endpoint names a port transition together with the enterprise whose net
// holds it.
type Endpoint struct {
	Enterprise *Enterprise
	Transition *petri.Transition
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%s/%s", e.Enterprise, e.Transition)
}

// Message links the output port of one enterprise to the input port of
// another.
//
// Subscriptions held by a message:
//   - both transitions and both enterprises Deleted -> Delete (cascade)
//   - each transition MessageTypeChanged -> copy the type to the partner while
//     the message is active
//   - own Deleted -> clear both transitions' message reference
//   - own Restored -> set them again, or delete the message right away when
//     an end was deleted or claimed by another message in the meantime
//
// Detach drops all of them.
type Message struct {
	petri.Entity

	input  Endpoint
	output Endpoint
	detach []func()
}

func (m *Message) Input() Endpoint  { return m.input }
func (m *Message) Output() Endpoint { return m.output }

// MessageType is the type shared by both ends.
func (m *Message) MessageType() string { return m.output.Transition.MessageType() }

func (m *Message) String() string {
	return m.output.String() + " => " + m.input.String()
}

func newMessage(input, output Endpoint) *Message {
	return &Message{input: input, output: output}
}

func (m *Message) bind() {
	in, out := m.input.Transition, m.output.Transition
	m.follow(&in.Deleted, m.Delete)
	m.follow(&out.Deleted, m.Delete)
	m.follow(&m.input.Enterprise.Deleted, m.Delete)
	if m.output.Enterprise != m.input.Enterprise {
		m.follow(&m.output.Enterprise.Deleted, m.Delete)
	}
	m.follow(&in.MessageTypeChanged, func() {
		if m.Active() {
			out.SetMessageType(in.MessageType())
		}
	})
	m.follow(&out.MessageTypeChanged, func() {
		if m.Active() {
			in.SetMessageType(out.MessageType())
		}
	})
	m.follow(&m.Deleted, m.release)
	m.follow(&m.Restored, m.restored)
	m.claim()
}

// check reports why the message could not be active right now.
func (m *Message) check() error {
	for _, ep := range []Endpoint{m.input, m.output} {
		if !ep.Enterprise.Active() || !ep.Transition.Active() {
			return fmt.Errorf("%w: %s", petri.ErrInactive, ep)
		}
		if other := ep.Transition.Message(); other != nil && other != petri.Object(m) && other.Base().Active() {
			return fmt.Errorf("%w: %s", ErrAlreadyConnected, ep)
		}
	}
	if in, out := m.input.Transition.MessageType(), m.output.Transition.MessageType(); in != out {
		return fmt.Errorf("%w: %q and %q", ErrMessageTypeMismatch, out, in)
	}
	return nil
}

func (m *Message) restored() {
	if m.check() != nil {
		m.Delete()
		return
	}
	m.claim()
}

func (m *Message) follow(n *signal.Notifier, fn func()) {
	c := n.Subscribe(fn)
	m.detach = append(m.detach, func() { _ = n.Disconnect(c) })
}

func (m *Message) claim() {
	m.input.Transition.SetMessage(m)
	m.output.Transition.SetMessage(m)
}

func (m *Message) release() {
	for _, t := range []*petri.Transition{m.input.Transition, m.output.Transition} {
		if t.Message() == petri.Object(m) {
			t.SetMessage(nil)
		}
	}
}

// Detach drops every subscription of the message.
func (m *Message) Detach() {
	for _, fn := range m.detach {
		fn()
	}
	m.detach = nil
}

func (m *Message) Document() MessageDocument {
	return MessageDocument{
		ID:                 m.ID(),
		InputEnterpriseID:  m.input.Enterprise.ID(),
		InputTransitionID:  m.input.Transition.ID(),
		OutputEnterpriseID: m.output.Enterprise.ID(),
		OutputTransitionID: m.output.Transition.ID(),
	}
}
