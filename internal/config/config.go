package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	CodecNative = "native"
	CodecVips   = "vips"
)

type Config struct {
	Codec       string
	Concurrency int
	LogDir      string
	LogLevel    string
	ProjectFile string
}

// Load reads IMGRESIZE_* environment variables.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("IMGRESIZE")
	v.AutomaticEnv()

	v.SetDefault("codec", CodecNative)
	v.SetDefault("concurrency", 1)
	v.SetDefault("log_dir", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("project_file", "package.json")

	cfg := &Config{
		Codec:       strings.ToLower(strings.TrimSpace(v.GetString("codec"))),
		Concurrency: v.GetInt("concurrency"),
		LogDir:      v.GetString("log_dir"),
		LogLevel:    v.GetString("log_level"),
		ProjectFile: v.GetString("project_file"),
	}

	if cfg.Codec != CodecVips {
		cfg.Codec = CodecNative
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.ProjectFile == "" {
		cfg.ProjectFile = "package.json"
	}
	return cfg
}
