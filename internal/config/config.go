package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration for the server and the ingest
// pipeline. Values in the YAML file may reference environment variables
// (${VAR}); a .env file is loaded first when present.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	Feed   FeedConfig   `yaml:"feed"`
	Fetch  FetchConfig  `yaml:"fetch"`
}

type ServerConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type DataConfig struct {
	Dir            string `yaml:"dir"`             // where ativos.json and snapshots live
	SeedStorePath  string `yaml:"seed_store_path"` // SQLite file backing the seed store
	RemoteSeedsURL string `yaml:"remote_seeds_url,omitempty"`
}

type FeedConfig struct {
	URL string `yaml:"url"` // DRE RSS feed
}

type FetchConfig struct {
	TimeoutSeconds int           `yaml:"timeout_seconds,omitempty"`
	MaxRetries     int           `yaml:"max_retries,omitempty"`
	Delay          time.Duration `yaml:"delay,omitempty"` // pause between detail pages
}

// Load reads the YAML config at path, expanding environment variables. A
// missing file yields the defaults so the binaries run with zero setup.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.setDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = os.Getenv("PORT")
	}
	if c.Server.Port == "" {
		c.Server.Port = "8081"
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Data.SeedStorePath == "" {
		c.Data.SeedStorePath = "data/seeds.db"
	}
	if c.Feed.URL == "" {
		c.Feed.URL = "https://files.diariodarepublica.pt/rss/serie2&parte=l-html.xml"
	}
	if c.Fetch.TimeoutSeconds == 0 {
		c.Fetch.TimeoutSeconds = 30
	}
	if c.Fetch.MaxRetries == 0 {
		c.Fetch.MaxRetries = 3
	}
	if c.Fetch.Delay == 0 {
		c.Fetch.Delay = time.Second
	}
}
