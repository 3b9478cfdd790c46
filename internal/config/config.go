package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/JanBanasik/PokerGame/internal/util"
)

// Config provides configuration for the poker server
type Config struct {
	loaded      bool
	TCPAddress  string `yaml:"tcpAddress" envconfig:"tcp_address"`
	HTTPAddress string `yaml:"httpAddress" envconfig:"http_address"`
	Game        struct {
		Name       string `yaml:"name"`
		MaxPlayers int    `yaml:"maxPlayers" envconfig:"max_players"`
		Ante       int    `yaml:"ante"`
	}
	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration. A missing config file is not an
// error; defaults and environment variables still apply.
func Load() error {
	config = Config{}

	configFile := util.Getenv("POKER_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("poker", &config); err != nil {
		return err
	}

	applyDefaults(&config)
	config.loaded = true
	return nil
}

func applyDefaults(c *Config) {
	if c.TCPAddress == "" {
		c.TCPAddress = ":8080"
	}

	if c.HTTPAddress == "" {
		c.HTTPAddress = ":8081"
	}

	if c.Game.Name == "" {
		c.Game.Name = "five-card-draw"
	}

	if c.Game.MaxPlayers == 0 {
		c.Game.MaxPlayers = 2
	}

	if c.Game.Ante == 0 {
		c.Game.Ante = 25
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
