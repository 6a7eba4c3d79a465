package state

import (
	"fmt"
	"strings"
)

type Kind int

const (
	Light Kind = iota
	Fan
)

// bounds, default and label for each kind; adding a kind means adding a row here
type kindSpec struct {
	name    string
	setting string
	min     int
	max     int
	def     int
}

var kinds = map[Kind]kindSpec{
	Light: {name: "light", setting: "brightness", min: 1, max: 10, def: 5},
	Fan:   {name: "fan", setting: "speed", min: 1, max: 5, def: 1},
}

func ParseKind(s string) (Kind, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	for k, spec := range kinds {
		if spec.name == in {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

func (k Kind) String() string {
	if spec, ok := kinds[k]; ok {
		return spec.name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// SettingName is the user facing name of the adjustable value (brightness, speed).
func (k Kind) SettingName() string { return kinds[k].setting }

func (k Kind) Bounds() (lo, hi int) {
	spec := kinds[k]
	return spec.min, spec.max
}

func (k Kind) Default() int { return kinds[k].def }

type Device interface {
	Name() string
	Kind() Kind
	IsOn() bool
	Setting() int
	// TurnOn and TurnOff report whether the power state changed.
	TurnOn() bool
	TurnOff() bool
	Adjust(level int) error
	Status() string
	Snapshot() DeviceState
}

// DeviceState is a copy of a device's state, safe to hand out of the registry.
type DeviceState struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	On      bool   `json:"on"`
	Setting int    `json:"setting"`
	Max     int    `json:"max"`
}

type appliance struct {
	name    string
	kind    Kind
	on      bool
	setting int
}

// NewDevice builds an off device of the given kind at its default setting.
func NewDevice(kind Kind, name string) (Device, error) {
	if _, ok := kinds[kind]; !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKind, kind)
	}
	return &appliance{name: name, kind: kind, setting: kind.Default()}, nil
}

func (a *appliance) Name() string { return a.name }
func (a *appliance) Kind() Kind    { return a.kind }
func (a *appliance) IsOn() bool    { return a.on }
func (a *appliance) Setting() int  { return a.setting }

func (a *appliance) TurnOn() bool {
	if a.on {
		return false
	}
	a.on = true
	a.setting = a.kind.Default()
	return true
}

func (a *appliance) TurnOff() bool {
	if !a.on {
		return false
	}
	a.on = false
	return true
}

func (a *appliance) Adjust(level int) error {
	lo, hi := a.kind.Bounds()
	if level < lo || level > hi {
		return &RangeError{Kind: a.kind, Level: level, Min: lo, Max: hi}
	}
	a.setting = level
	return nil
}

func (a *appliance) Status() string {
	if !a.on {
		return a.name + ": OFF"
	}
	_, hi := a.kind.Bounds()
	return fmt.Sprintf("%s: ON %s %d/%d", a.name, Bar(a.setting, hi), a.setting, hi)
}

func (a *appliance) Snapshot() DeviceState {
	_, hi := a.kind.Bounds()
	return DeviceState{
		Name:    a.name,
		Kind:    a.kind.String(),
		On:      a.on,
		Setting: a.setting,
		Max:     hi,
	}
}

// Bar renders a fixed width gauge, e.g. Bar(3, 5) == "[███--]".
func Bar(filled, width int) string {
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("-", width-filled) + "]"
}
