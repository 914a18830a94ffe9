// Package config loads the process-level settings the CLI needs to
// open a serial port and talk to the controller: the device path, an
// optional baud override, and the log level. It follows the same
// flags-then-env-then-file-then-default precedence viper gives the
// rest of the pack, scaled down to this driver's much smaller surface.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything rfhost needs before it opens a port.
type Config struct {
	// Device is the serial device path, e.g. "/dev/ttyACM0".
	Device string `mapstructure:"device"`

	// Baud overrides the controller's default 115200 line rate.
	Baud int `mapstructure:"baud"`

	// ReadTimeoutMillis bounds a single underlying serial read.
	ReadTimeoutMillis int `mapstructure:"read_timeout_ms"`

	// LogLevel is a logrus level name (trace, debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`
}

// Defaults matches the controller's serial boundary (spec §6: 115200
// baud, 10ms read timeout) plus an "info" log level.
func Defaults() Config {
	return Config{
		Device:            "/dev/ttyACM0",
		Baud:              115200,
		ReadTimeoutMillis: 10,
		LogLevel:          "info",
	}
}

// Load builds a viper instance layering, highest precedence first:
// environment variables prefixed RFHOST_, an optional config file at
// configPath (if non-empty), and the package defaults. CLI flags are not
// read here; cmd/rfhost applies them to the returned Config afterwards.
func Load(configPath string) (Config, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("device", defaults.Device)
	v.SetDefault("baud", defaults.Baud)
	v.SetDefault("read_timeout_ms", defaults.ReadTimeoutMillis)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix("RFHOST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			_, notFound := err.(viper.ConfigFileNotFoundError)
			if !notFound && !os.IsNotExist(err) {
				return Config{}, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
