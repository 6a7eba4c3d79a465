package state

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateName = errors.New("device already exists")
	ErrInvalidKind   = errors.New("invalid device type")
	ErrInvalidName   = errors.New("invalid device name")
	ErrNotFound      = errors.New("device not found")
	ErrOutOfRange    = errors.New("level out of range")
)

// RangeError reports a setting outside the bounds of a device kind.
type RangeError struct {
	Kind  Kind
	Level int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %s %d outside [%d-%d]", e.Kind, e.Kind.SettingName(), e.Level, e.Min, e.Max)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
