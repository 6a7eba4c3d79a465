package util

import (
	"encoding/json"

	"github.com/elijahnyp/home_registry/state"
)

type HAAvdvertisementAvailability struct {
	Topic               string `json:"topic"`
	PayloadAvailable    string `json:"payload_available"`
	PayloadNotAvailable string `json:"payload_not_available"`
}

type HADeviceSpec struct {
	Name        string   `json:"name"`
	Identifiers []string `json:"ids"`
}

// HAAdvertisement is a Home Assistant MQTT discovery payload for a read only
// sensor that mirrors one registry device.
type HAAdvertisement struct { //nolint:govet // struct layout optimized for JSON field order
	HAAvdvertisementAvailability []HAAvdvertisementAvailability `json:"availability"`
	Device                       HADeviceSpec                   `json:"device"`
	UniqueID                     string                         `json:"uniq_id"`
	Name                         string                         `json:"name"`
	StateTopic                   string                         `json:"state_topic"`
	ValueTemplate                string                         `json:"value_template"`
	AttributesTopic              string                         `json:"json_attributes_topic"`
	Icon                         string                         `json:"icon,omitempty"`
	Platform                     string                         `json:"platform"`
	Qos                          int                            `json:"qos"`
}

func (ha HAAdvertisement) ToJson() string {
	data, err := json.Marshal(ha)
	if err != nil {
		Logger.Error().Msgf("Error marshalling HAAdvertisement: %v", err)
		return ""
	}
	return string(data)
}

func haIcon(kind string) string {
	switch kind {
	case "light":
		return "mdi:lightbulb"
	case "fan":
		return "mdi:fan"
	}
	return ""
}

func ConstructHAAdvertisement(dev state.DeviceState, stateTopic, availabilityTopic string) HAAdvertisement {
	id := DeviceSlug(dev.Name)
	return HAAdvertisement{
		Name:            dev.Name,
		StateTopic:      stateTopic,
		ValueTemplate:   "{{ 'ON' if value_json.on else 'OFF' }}",
		AttributesTopic: stateTopic,
		HAAvdvertisementAvailability: []HAAvdvertisementAvailability{
			{
				Topic:               availabilityTopic,
				PayloadAvailable:    "online",
				PayloadNotAvailable: "offline",
			},
		},
		Qos:      0,
		UniqueID: dev.Kind + "-" + id,
		Icon:     haIcon(dev.Kind),
		Platform: "sensor",
		Device: HADeviceSpec{
			Name:        "home_registry",
			Identifiers: []string{"home_registry"},
		},
	}
}

func HADiscoveryTopic(name string) string {
	return "homeassistant/sensor/" + DeviceSlug(name) + "/state/config"
}
