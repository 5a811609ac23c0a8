// Package signal holds the synchronous observer primitives the engine is built on.
//
// Nothing here is safe for concurrent use. Emission is a plain function call
// chain: a handler may emit other signals, or the same one, before Emit returns.
package signal

import "errors"

// ErrNotConnected is returned by Disconnect when the handle is not (or no
// longer) subscribed.
var ErrNotConnected = errors.New("handler not connected")

// Conn identifies one subscription.
type Conn uint64

type slot[T any] struct {
	conn Conn
	fn   func(T)
}

// Signal is a list of handlers invoked in registration order.
type Signal[T any] struct {
	slots []slot[T]
	next  Conn
}

// Connect appends fn and returns the handle needed to remove it again.
func (s *Signal[T]) Connect(fn func(T)) Conn {
	s.next++
	s.slots = append(s.slots, slot[T]{conn: s.next, fn: fn})
	return s.next
}

// Disconnect removes the subscription identified by c.
func (s *Signal[T]) Disconnect(c Conn) error {
	for i, sl := range s.slots {
		if sl.conn == c {
			s.slots = append(s.slots[:i:i], s.slots[i+1:]...)
			return nil
		}
	}
	return ErrNotConnected
}

// Emit calls every handler connected when Emit started, even if one of them
// disconnects another mid-emission.
func (s *Signal[T]) Emit(v T) {
	if len(s.slots) == 0 {
		return
	}
	snapshot := make([]slot[T], len(s.slots))
	copy(snapshot, s.slots)
	for _, sl := range snapshot {
		sl.fn(v)
	}
}

// Len returns the number of connected handlers.
func (s *Signal[T]) Len() int {
	return len(s.slots)
}

// Notifier is a Signal without payload.
type Notifier struct {
	Signal[struct{}]
}

func (n *Notifier) Subscribe(fn func()) Conn {
	return n.Connect(func(struct{}) { fn() })
}

func (n *Notifier) Notify() {
	n.Emit(struct{}{})
}

// Relay forwards every notification of n to other.
func (n *Notifier) Relay(other *Notifier) Conn {
	return n.Subscribe(other.Notify)
}
