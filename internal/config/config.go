// Package config loads daemon settings from the environment.
package config

import (
	"github.com/spf13/viper"
)

// Config holds the daemon's runtime settings. Every field has a
// default and a WARGA_-prefixed environment override.
type Config struct {
	DataDir    string
	ExportDir  string
	TCPPort    string
	HTTPPort   string
	DisableTLS bool
}

// Load reads configuration from WARGA_* environment variables,
// falling back to the defaults.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("WARGA")
	v.AutomaticEnv()

	v.SetDefault("data_dir", "./data")
	v.SetDefault("export_dir", "./exports")
	v.SetDefault("port", "7101")
	v.SetDefault("http_port", "7102")
	v.SetDefault("disable_tls", false)

	return &Config{
		DataDir:    v.GetString("data_dir"),
		ExportDir:  v.GetString("export_dir"),
		TCPPort:    v.GetString("port"),
		HTTPPort:   v.GetString("http_port"),
		DisableTLS: v.GetBool("disable_tls"),
	}
}
