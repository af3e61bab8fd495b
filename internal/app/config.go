package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"
)

const (
	defaultGenAITimeout      = 30 * time.Second
	defaultSessionTTL        = 12 * time.Hour
	defaultRosterConcurrency = 4
	defaultMaxUploadMB       = 10
	defaultTokenHeader       = "Authorization"
	defaultMigrationsDir     = "./migrations"
)

// Duration reads TOML strings like "30s" or "12h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

type Config struct {
	Server struct {
		Port        string   `toml:"port"`
		EnableAuth  bool     `toml:"enable_auth"`
		CORSOrigins []string `toml:"cors_origins"`
		MaxUploadMB int64    `toml:"max_upload_mb"`
	} `toml:"server"`

	Database struct {
		DSN           string `toml:"dsn"`
		MigrationsDir string `toml:"migrations_dir"`
		MaxOpenConns  int    `toml:"max_open_conns"`
	} `toml:"database"`

	Auth struct {
		RedisURL    string   `toml:"redis_url"`
		TokenHeader string   `toml:"token_header"`
		SessionTTL  Duration `toml:"session_ttl"`
	} `toml:"auth"`

	GenAI struct {
		APIKey  string   `toml:"api_key"`
		Model   string   `toml:"model"`
		Timeout Duration `toml:"timeout"`
	} `toml:"genai"`

	Roster struct {
		Concurrency int `toml:"concurrency"`
	} `toml:"roster"`
}

// LoadConfig reads the TOML file at path, then lets the environment (and a
// .env file next to the process, if any) override the secrets.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Debug.Printf("Ignoring .env: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}
	return config, nil
}

func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.applyEnv()
	config.applyDefaults()

	if config.Server.Port == "" {
		return nil, fmt.Errorf("Server port is not specified in config, use a value like :9999")
	}
	if config.Database.DSN == "" {
		return nil, fmt.Errorf("database dsn is not specified in config or DATABASE_DSN")
	}
	if config.Server.EnableAuth && config.Auth.RedisURL == "" {
		return nil, fmt.Errorf("enable_auth requires auth.redis_url or REDIS_URL")
	}

	logger.Debug.Printf("Loaded config: port=%s auth=%v genai.model=%s roster.concurrency=%d",
		config.Server.Port, config.Server.EnableAuth, config.GenAI.Model, config.Roster.Concurrency)

	return &config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GenAI.APIKey = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Auth.RedisURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if !strings.Contains(v, ":") {
			v = ":" + v
		}
		c.Server.Port = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.MaxUploadMB <= 0 {
		c.Server.MaxUploadMB = defaultMaxUploadMB
	}
	if c.Database.MigrationsDir == "" {
		c.Database.MigrationsDir = defaultMigrationsDir
	}
	if c.Auth.TokenHeader == "" {
		c.Auth.TokenHeader = defaultTokenHeader
	}
	if c.Auth.SessionTTL.Duration <= 0 {
		c.Auth.SessionTTL.Duration = defaultSessionTTL
	}
	if c.GenAI.Timeout.Duration <= 0 {
		c.GenAI.Timeout.Duration = defaultGenAITimeout
	}
	if c.Roster.Concurrency <= 0 {
		c.Roster.Concurrency = defaultRosterConcurrency
	}
}

func (c *Config) MaxUploadBytes() int64 {
	return c.Server.MaxUploadMB << 20
}
