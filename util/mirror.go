package util

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	MQTT "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/text/cases"

	"github.com/elijahnyp/home_registry/state"
)

func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// DeviceSlug turns a device name into a topic safe, case folded identifier.
// Names that fold to plain [a-z0-9] map to themselves; any other name has its
// unsafe runes replaced by '_' and gets a hash of the folded name appended, so
// two registry keys never share a slug.
func DeviceSlug(name string) string {
	folded := foldName(name)
	var b strings.Builder
	lossy := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
			lossy = true
		}
	}
	if lossy {
		fmt.Fprintf(&b, "_%016x", xxhash.Sum64String(folded))
	}
	return b.String()
}

// Mirror publishes registry changes to MQTT as retained JSON. It keeps its own
// copy of the last published states so a reconnect can republish them without
// reaching into the registry. Topic settings are read once at construction;
// Config is not touched afterwards.
type Mirror struct {
	client    MQTT.Client
	topicBase string
	discovery bool
	mu        sync.Mutex
	last      map[string]state.DeviceState
}

func NewMirror(client MQTT.Client) *Mirror {
	return &Mirror{
		client:    client,
		topicBase: Config.GetString("topic_base"),
		discovery: Config.GetBool("ha_discovery"),
		last:      make(map[string]state.DeviceState),
	}
}

func (m *Mirror) StateTopic(name string) string {
	return m.topicBase + "/" + DeviceSlug(name) + "/state"
}

func (m *Mirror) onlineTopic() string {
	return m.topicBase + "/online"
}

func (m *Mirror) DeviceChanged(dev state.DeviceState) {
	m.mu.Lock()
	m.last[foldName(dev.Name)] = dev
	m.mu.Unlock()
	m.publishState(m.client, dev)
}

func (m *Mirror) DeviceRemoved(name string) {
	m.mu.Lock()
	delete(m.last, foldName(name))
	m.mu.Unlock()
	m.publish(m.client, m.StateTopic(name), "")
	if m.discovery {
		m.publish(m.client, HADiscoveryTopic(name), "")
	}
}

// Republish sends every known state again; registered as a connect hook.
func (m *Mirror) Republish(client MQTT.Client) {
	m.mu.Lock()
	states := make([]state.DeviceState, 0, len(m.last))
	for _, dev := range m.last {
		states = append(states, dev)
	}
	m.mu.Unlock()
	for _, dev := range states {
		m.publishState(client, dev)
	}
}

func (m *Mirror) publishState(client MQTT.Client, dev state.DeviceState) {
	payload, err := json.Marshal(dev)
	if err != nil {
		Logger.Error().Msgf("Error marshalling state for %s: %v", dev.Name, err)
		return
	}
	if m.discovery {
		ha := ConstructHAAdvertisement(dev, m.StateTopic(dev.Name), m.onlineTopic())
		m.publish(client, HADiscoveryTopic(dev.Name), ha.ToJson())
	}
	m.publish(client, m.StateTopic(dev.Name), string(payload))
}

func (m *Mirror) publish(client MQTT.Client, topic, payload string) {
	if client == nil || !client.IsConnected() {
		Logger.Debug().Msgf("mqtt not connected, dropping publish to %s", topic)
		return
	}
	if token := client.Publish(topic, 0, true, payload); token.Wait() && token.Error() != nil {
		Logger.Error().Msgf("Error publishing to %s: %v", topic, token.Error())
	}
}
