package main

import (
	"os"

	MQTT "github.com/eclipse/paho.mqtt.golang"

	"github.com/elijahnyp/home_registry/state"
	. "github.com/elijahnyp/home_registry/util"
)

func main() {
	os.Exit(run())
}

func run() int {
	LogInit("warn")
	SetupConfig()
	SetLogLevel(Config.GetString("log_level"))
	RegisterNewConfigListener(func() { SetLogLevel(Config.GetString("log_level")) })

	reg := state.NewRegistry()
	var model Model
	if err := model.BuildModel(); err != nil {
		Logger.Error().Msgf("Error building model: %v", err)
	} else {
		model.Seed(reg)
	}

	var opts []Option
	if Config.GetBool("mqtt_enabled") {
		if mirror := startMirror(reg); mirror != nil {
			opts = append(opts, WithSink(mirror))
			defer MqttClose()
		}
	}

	Logger.Info().Msg("ready")
	if err := NewDispatcher(os.Stdin, os.Stdout, reg, opts...).Run(); err != nil {
		Logger.Error().Msgf("command loop stopped: %v", err)
		return 1
	}
	return 0
}

// startMirror connects to the broker and publishes the seeded devices. A broker
// that cannot be reached only disables the mirror.
func startMirror(reg *state.Registry) *Mirror {
	if err := MqttInit(); err != nil {
		Logger.Error().Msgf("mqtt disabled: %v", err)
		return nil
	}
	mirror := NewMirror(Client)
	RegisterMQTTConnectHook("republish", func(client MQTT.Client) {
		mirror.Republish(client)
	})
	for _, dev := range reg.Devices() {
		mirror.DeviceChanged(dev.Snapshot())
	}
	return mirror
}
