package device

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config tunes the read-coalescing cache that sits in front of a Device.
// It is loaded through viper, mirroring the teacher's LoadDMGConfig, so
// the CLI and any embedder can override defaults with a config file or
// HFSPLUS_-prefixed environment variables without touching code.
type Config struct {
	CacheEnabled bool `mapstructure:"cache_enabled"`
	// SmallItems is the number of recently-read small blocks the cache
	// keeps, mirroring ublio's up_items.
	SmallItems int `mapstructure:"small_items"`
	// GraceBlocks is how far ahead of a requested read the cache will
	// opportunistically read, mirroring ublio's up_grace.
	GraceBlocks int `mapstructure:"grace_blocks"`
	// DefaultOffset is the device byte offset assumed for the volume
	// when no HFS wrapper or partition map is present to derive one.
	DefaultOffset int64 `mapstructure:"default_offset"`
}

// DefaultConfig matches the values libhfsuser's ublio setup used:
// 64 cached items with 32 blocks of read-ahead grace.
func DefaultConfig() Config {
	return Config{
		CacheEnabled:  true,
		SmallItems:    64,
		GraceBlocks:   32,
		DefaultOffset: 0,
	}
}

// LoadConfig reads "hfsplus-config.yaml" from the usual search path,
// falling back to DefaultConfig when none is found.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetConfigName("hfsplus-config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.hfsplus")
	v.AddConfigPath("/etc/hfsplus")

	def := DefaultConfig()
	v.SetDefault("cache_enabled", def.CacheEnabled)
	v.SetDefault("small_items", def.SmallItems)
	v.SetDefault("grace_blocks", def.GraceBlocks)
	v.SetDefault("default_offset", def.DefaultOffset)

	v.SetEnvPrefix("HFSPLUS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading hfsplus config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling hfsplus config: %w", err)
	}
	return cfg, nil
}
