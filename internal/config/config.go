package config

import (
	"os"

	"chatpoker-server/internal/util"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the chat poker server
type Config struct {
	loaded         bool
	Addr           string `yaml:"addr" envconfig:"addr"`
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	} `yaml:"jwt"`
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		Format            string `yaml:"format" envconfig:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Game struct {
		BaseBet      int `yaml:"baseBet" envconfig:"base_bet"`
		StartBalance int `yaml:"startBalance" envconfig:"start_balance"`
		MaxSeats     int `yaml:"maxSeats" envconfig:"max_seats"`
	} `yaml:"game"`
	Stickers struct {
		Win      string `yaml:"win" envconfig:"win"`
		GameOver string `yaml:"gameOver" envconfig:"game_over"`
	} `yaml:"stickers"`
}

var config Config

// DefaultConfig returns the configuration used when neither the file nor the environment sets a value
func DefaultConfig() Config {
	var cfg Config
	cfg.Addr = ":5000"
	cfg.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	cfg.MigrationsPath = "./sql"
	cfg.JWT.PublicKey = ".keys/public.pem"
	cfg.JWT.PrivateKey = ".keys/private.key"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Game.BaseBet = 20
	cfg.Game.StartBalance = 1000
	cfg.Game.MaxSeats = 10

	return cfg
}

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

// Load will load the configuration
// The config file is optional. Environment variables prefixed with CPK_ take precedence over it
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("CPK_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if file != nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("cpk", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
