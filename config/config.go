// Package config loads daemon settings through viper. Defaults cover a
// runnable local setup; a JSON config file overrides them per deployment
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load sets default values and reads the optional config file from
// configDir. A missing file is not an error; everything falls back to
// defaults
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("sim.tickRate", 60)
	viper.SetDefault("sim.strictStages", false)

	viper.SetDefault("server.enabled", true)
	viper.SetDefault("server.listen", "localhost:7654")
	viper.SetDefault("server.snapshotHz", 10)

	viper.SetDefault("scenario.fighters", 6)
	viper.SetDefault("scenario.enemies", 6)
	viper.SetDefault("scenario.carriers", 1)

	viper.SetConfigName("simd.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return nil
		}
		return fmt.Errorf("error reading config file: %v", err)
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
