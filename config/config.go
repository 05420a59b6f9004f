package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	OracleKeyEnv = "ORACLE_API_KEY"
	FeedKeyEnv   = "FEED_API_KEY"
)

type TrackerConfig struct {
	Project string `toml:"project"`
}

type ServerConfig struct {
	HttpPort int `toml:"http_port"`
}

type NetConfig struct {
	OracleUrl string `toml:"oracle_url"`
	FeedUrl   string `toml:"feed_url"`
	Symbol    string `toml:"symbol"`

	// Filled from the environment by Load, never from the toml file.
	OracleApiKey string `toml:"-"`
	FeedApiKey   string `toml:"-"`
}

type LogConfig struct {
	Path  string `toml:"log_path"`
	File  string `toml:"log_file"`
	Level string `toml:"log_level"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	DB       string `toml:"db"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type Config struct {
	Tracker TrackerConfig `toml:"tracker"`
	Server  ServerConfig  `toml:"server"`
	Net     NetConfig     `toml:"net"`
	Log     LogConfig     `toml:"log"`
	DB      DBConfig      `toml:"database"`
}

func Load() (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile("./config.toml", &config); err != nil {
		return nil, fmt.Errorf("load config.toml: %w", err)
	}

	if config.Tracker.Project == "" {
		config.Tracker.Project = "pocket"
	}
	if config.Net.Symbol == "" {
		config.Net.Symbol = "POKT"
	}

	// .env is optional, the process environment always wins
	_ = godotenv.Load()
	config.Net.OracleApiKey = os.Getenv(OracleKeyEnv)
	config.Net.FeedApiKey = os.Getenv(FeedKeyEnv)
	if config.Net.OracleApiKey == "" {
		return nil, fmt.Errorf("%s must be set", OracleKeyEnv)
	}
	if config.Net.FeedApiKey == "" {
		return nil, fmt.Errorf("%s must be set", FeedKeyEnv)
	}

	return &config, nil
}
