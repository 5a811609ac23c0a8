package petri

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateID      = errors.New("id already registered")
	ErrInvalidID        = errors.New("invalid id")
	ErrNotEnabled       = errors.New("transition is not enabled")
	ErrInactive         = errors.New("element is deleted")
	ErrDeadlock         = errors.New("no enabled transition")
	ErrDuplicateArrow   = errors.New("arrow already exists")
	ErrForeignNode      = errors.New("node does not belong to this net")
	ErrUnknownArrowType = errors.New("unknown arrow type")
	ErrInvalidType      = errors.New("invalid transition type")
)

func NotEnabled(t *Transition) error {
	return fmt.Errorf("%w: %s", ErrNotEnabled, t)
}
