package util

import (
	"fmt"
	"sync"

	MQTT "github.com/eclipse/paho.mqtt.golang"
)

var Client MQTT.Client

var (
	connectHandlers map[string]func(MQTT.Client)
	hooksMu         sync.Mutex
)

func OnlineTopic() string {
	return Config.GetString("topic_base") + "/online"
}

// availability topic of the current Client, fixed when it is built so paho
// goroutines never read Config
var onlineTopic string

func connectHandler(online string) MQTT.OnConnectHandler {
	return func(client MQTT.Client) {
		Logger.Info().Msg("Connected")
		client.Publish(online, 0, true, "online").Wait()
		hooksMu.Lock()
		handlers := make([]func(MQTT.Client), 0, len(connectHandlers))
		for _, handler := range connectHandlers {
			handlers = append(handlers, handler)
		}
		hooksMu.Unlock()
		for _, handler := range handlers {
			handler(client)
		}
	}
}

// RegisterMQTTConnectHook runs handler on every (re)connect. A nil handler
// removes the hook.
func RegisterMQTTConnectHook(name string, handler func(MQTT.Client)) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if connectHandlers == nil {
		connectHandlers = make(map[string]func(client MQTT.Client))
	}
	if handler == nil {
		delete(connectHandlers, name)
	} else {
		connectHandlers[name] = handler
	}
}

var connectLostHandler MQTT.ConnectionLostHandler = func(client MQTT.Client, err error) {
	Logger.Info().Msgf("Connect lost: %v", err)
}

func clientOptions() *MQTT.ClientOptions {
	onlineTopic = OnlineTopic()
	opts := MQTT.NewClientOptions()
	opts.AddBroker(Config.GetString("broker_uri"))
	opts.SetClientID(Config.GetString("id_base") + "_" + GetRandString(6))
	opts.SetUsername(Config.GetString("username"))
	opts.SetPassword(Config.GetString("password"))
	opts.SetCleanSession(Config.GetBool("cleansess"))
	opts.SetAutoReconnect(true)
	opts.SetWill(onlineTopic, "offline", 0, true)
	opts.OnConnectionLost = connectLostHandler
	opts.OnConnect = connectHandler(onlineTopic)
	return opts
}

// MqttInit (re)connects the shared Client.
func MqttInit() error {
	if Client != nil {
		Logger.Debug().Msg("Client exists - destroying")
		MqttClose()
	}

	Client = MQTT.NewClient(clientOptions())

	if token := Client.Connect(); token.Wait() && token.Error() != nil {
		err := token.Error()
		Client = nil
		return fmt.Errorf("mqtt connect %s: %w", Config.GetString("broker_uri"), err)
	}
	return nil
}

func MqttClose() {
	if Client == nil {
		return
	}
	if Client.IsConnected() {
		Client.Publish(onlineTopic, 0, true, "offline").Wait()
		Client.Disconnect(1000)
	}
	Client = nil
}
