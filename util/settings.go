package util

import (
	"crypto/rand"
	"errors"
	"reflect"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const ENV_PREFIX = "HOME_REGISTRY"

var Config = viper.New()

var (
	config_listeners []func()
	listenersMu      sync.Mutex
)

func RegisterNewConfigListener(new_listener func()) {
	listenersMu.Lock()
	defer listenersMu.Unlock()
	for _, listener := range config_listeners {
		if reflect.ValueOf(new_listener).Pointer() == reflect.ValueOf(listener).Pointer() {
			Logger.Warn().Msg("config listener already registered")
			return
		}
	}
	config_listeners = append(config_listeners, new_listener)
}

func OnNewConfig() {
	listenersMu.Lock()
	listeners := append([]func(){}, config_listeners...)
	listenersMu.Unlock()
	for _, listener := range listeners {
		listener()
	}
}

func GetRandString(n int) string {
	const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, n)
	for i := range b {
		randBytes := make([]byte, 1)
		if _, err := rand.Read(randBytes); err != nil {
			b[i] = letterBytes[i%len(letterBytes)]
		} else {
			b[i] = letterBytes[int(randBytes[0])%len(letterBytes)]
		}
	}
	return string(b)
}

func setDefaults() {
	Config.SetDefault("Log_level", "warn")
	Config.SetDefault("Mqtt_enabled", false)
	Config.SetDefault("Broker_URI", "tcp://mqtt:1883")
	Config.SetDefault("Cleansess", true)
	Config.SetDefault("Id_base", "home_registry")
	Config.SetDefault("Username", "")
	Config.SetDefault("Password", "")
	Config.SetDefault("Topic_base", "home_registry")
	Config.SetDefault("Ha_discovery", false)
}

// SetupConfig loads defaults, the optional home_registry config file and the
// environment. A missing file is not an error.
func SetupConfig() {
	Config.SetEnvPrefix(ENV_PREFIX)
	setDefaults()

	Config.SetConfigName("home_registry")
	Config.AddConfigPath("./")
	Config.AddConfigPath("./config")
	Config.AddConfigPath("/etc")
	Config.AddConfigPath("/home_registry")
	Config.AddConfigPath("/home_registry/config")

	err := Config.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case errors.As(err, &notFound):
		Logger.Debug().Msg("no config file found, using defaults")
	case err != nil:
		Logger.Error().Msgf("unable to read config file: %v", err)
	default:
		Logger.Info().Msgf("using config file %s", Config.ConfigFileUsed())
		Config.WatchConfig()
		Config.OnConfigChange(func(e fsnotify.Event) {
			Logger.Info().Msgf("Config file changed: %v", e.Name)
			Logger.Debug().Msgf("Config Additional Info: %v", e.String())
			OnNewConfig()
		})
	}

	Config.AutomaticEnv()
}
