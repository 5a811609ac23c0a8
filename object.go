package petri

import "github.com/jt05610/petri-industry/signal"

// ID is the registry-assigned identifier of an Entity.
type ID int

// NoID is reported by entities that were never registered.
const NoID ID = -1

// Object is anything a Registry can hold.
type Object interface {
	Base() *Entity
}

var _ Object = (*Entity)(nil)

// Entity is the lifecycle shared by every net element. The zero value is an
// active, unregistered entity.
//
// Deleting an entity only marks it inactive: it keeps its id and stays in its
// registry so references by id remain valid, but it is skipped by iteration
// and serialization.
type Entity struct {
	Changed       signal.Notifier
	StatusChanged signal.Notifier
	Deleted       signal.Notifier
	Restored      signal.Notifier

	id         ID
	registered bool
	deleted    signal.Field[bool]
}

func (e *Entity) Base() *Entity { return e }

func (e *Entity) ID() ID {
	if !e.registered {
		return NoID
	}
	return e.id
}

func (e *Entity) HasID() bool { return e.registered }

func (e *Entity) Active() bool { return !e.deleted.Get() }

// Delete deactivates the entity. Deleting twice notifies once.
func (e *Entity) Delete() { e.setActive(false) }

// Restore reactivates a deleted entity.
func (e *Entity) Restore() { e.setActive(true) }

func (e *Entity) setActive(active bool) {
	if !e.deleted.Store(!active) {
		return
	}
	e.StatusChanged.Notify()
	e.Changed.Notify()
	if active {
		e.Restored.Notify()
	} else {
		e.Deleted.Notify()
	}
}

func (e *Entity) assignID(id ID) {
	e.id = id
	e.registered = true
}
