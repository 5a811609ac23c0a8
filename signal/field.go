package signal

// Field is a value that notifies only when it actually changes. The equality
// check is what stops feedback loops between handlers that write each other.
type Field[T comparable] struct {
	value   T
	set     bool
	def     T
	changed *Notifier
}

// NewField returns a field reporting to changed. changed may be nil for fields
// that are only ever written through Store.
func NewField[T comparable](changed *Notifier, def T) Field[T] {
	return Field[T]{def: def, changed: changed}
}

func (f *Field[T]) Get() T {
	if !f.set {
		return f.def
	}
	return f.value
}

// Set stores v and notifies if it differs from the current value. It reports
// whether anything changed.
func (f *Field[T]) Set(v T) bool {
	if !f.Store(v) {
		return false
	}
	if f.changed != nil {
		f.changed.Notify()
	}
	return true
}

// Store is Set without the notification.
func (f *Field[T]) Store(v T) bool {
	if v == f.Get() {
		return false
	}
	f.value = v
	f.set = true
	return true
}

// Default returns the value reported before the first write.
func (f *Field[T]) Default() T {
	return f.def
}

// Reset restores the default, notifying if that is a change.
func (f *Field[T]) Reset() bool {
	return f.Set(f.def)
}
