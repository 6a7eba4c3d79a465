package util

import (
	"fmt"

	"github.com/elijahnyp/home_registry/state"
)

// Model is the set of devices declared under the "model" config key. It seeds
// the registry at startup; nothing is written back.
type Model struct {
	Devices []SeedDevice `mapstructure:"devices"`
}

type SeedDevice struct {
	Name    string `mapstructure:"name"`
	Kind    string `mapstructure:"kind"`
	On      bool   `mapstructure:"on"`
	Setting int    `mapstructure:"setting"`
}

func (m *Model) BuildModel() error {
	if err := Config.UnmarshalKey("model", m); err != nil {
		Logger.Error().Msgf("error unmarshaling model: %v", err)
		return fmt.Errorf("unmarshal model: %w", err)
	}
	return nil
}

// Seed adds every declared device to reg. Bad entries are logged and skipped;
// the number of devices added is returned.
func (m Model) Seed(reg *state.Registry) int {
	added := 0
	for _, entry := range m.Devices {
		if err := reg.Add(entry.Kind, entry.Name); err != nil {
			Logger.Warn().Msgf("skipping seed device %q: %v", entry.Name, err)
			continue
		}
		dev, _ := reg.Find(entry.Name)
		if entry.On {
			dev.TurnOn()
		}
		if entry.Setting != 0 {
			if err := dev.Adjust(entry.Setting); err != nil {
				Logger.Warn().Msgf("seed device %q: %v", entry.Name, err)
			}
		}
		added++
	}
	Logger.Debug().Msgf("seeded %d devices", added)
	return added
}
