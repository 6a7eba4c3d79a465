package state

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

const NoDevices = "No devices available."

// Registry owns every device, keyed by case folded name. It is not safe for
// concurrent use; the command loop is its only caller.
type Registry struct {
	devices map[string]Device
	fold    cases.Caser
}

func NewRegistry() *Registry {
	return &Registry{
		devices: make(map[string]Device),
		fold:    cases.Fold(),
	}
}

func (r *Registry) key(name string) string {
	return r.fold.String(strings.TrimSpace(name))
}

func (r *Registry) Add(kind, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	key := r.key(name)
	if _, ok := r.devices[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	k, err := ParseKind(kind)
	if err != nil {
		return err
	}
	dev, err := NewDevice(k, name)
	if err != nil {
		return err
	}
	r.devices[key] = dev
	return nil
}

func (r *Registry) Remove(name string) error {
	key := r.key(name)
	if _, ok := r.devices[key]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, strings.TrimSpace(name))
	}
	delete(r.devices, key)
	return nil
}

func (r *Registry) Find(name string) (Device, bool) {
	dev, ok := r.devices[r.key(name)]
	return dev, ok
}

func (r *Registry) Len() int {
	return len(r.devices)
}

// Devices returns the devices ordered by folded name.
func (r *Registry) Devices() []Device {
	out := make([]Device, 0, len(r.devices))
	for _, key := range slices.Sorted(maps.Keys(r.devices)) {
		out = append(out, r.devices[key])
	}
	return out
}

// List returns one status line per device, or the single NoDevices line.
func (r *Registry) List() []string {
	if len(r.devices) == 0 {
		return []string{NoDevices}
	}
	devs := r.Devices()
	lines := make([]string, 0, len(devs))
	for _, dev := range devs {
		lines = append(lines, dev.Status())
	}
	return lines
}
