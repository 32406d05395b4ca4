package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Prompts struct {
	Identify string `toml:"identify"`
	Explain  string `toml:"explain"`
}

type LLMConfig struct {
	Provider       string   `toml:"provider"`
	Model          string   `toml:"model"`
	APIKey         string   `toml:"api_key"`
	BaseURL        string   `toml:"base_url"`
	MaxTokens      int      `toml:"max_tokens"`
	RequestTimeout Duration `toml:"request_timeout"`
}

type ServerConfig struct {
	Port          string `toml:"port"`
	Mode          string `toml:"mode"`
	MaxImageBytes int64  `toml:"max_image_bytes"`
}

type HandoffConfig struct {
	Backend       string   `toml:"backend"`
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	KeyPrefix     string   `toml:"key_prefix"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Config struct {
	Server  ServerConfig  `toml:"server"`
	LLM     LLMConfig     `toml:"llm"`
	Prompts Prompts       `toml:"prompts"`
	Handoff HandoffConfig `toml:"handoff"`
	Logging LoggingConfig `toml:"logging"`
}

// Duration lets TOML carry durations as strings like "30s".
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

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns a configuration that runs without any file present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:          "8080",
			Mode:          "release",
			MaxImageBytes: 8 << 20,
		},
		LLM: LLMConfig{
			Provider:       "gemini",
			Model:          "gemini-2.0-flash",
			MaxTokens:      1024,
			RequestTimeout: Duration{60 * time.Second},
		},
		Prompts: Prompts{
			Identify: DefaultIdentifyPrompt,
			Explain:  DefaultExplainPrompt,
		},
		Handoff: HandoffConfig{
			Backend:   "memory",
			TTL:       Duration{10 * time.Minute},
			RedisAddr: "localhost:6379",
			KeyPrefix: "labscan:handoff:",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads a TOML file on top of the defaults. Keys missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides config values with environment variables when set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		c.Server.Mode = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_REQUEST_TIMEOUT"); v != "" {
		if err := c.LLM.RequestTimeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("LLM_REQUEST_TIMEOUT: %w", err)
		}
	}
	if v := os.Getenv("HANDOFF_BACKEND"); v != "" {
		c.Handoff.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Handoff.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Handoff.RedisPassword = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		c.Handoff.RedisDB = db
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Resolve loads the config file named by CONFIG_PATH (or the default
// location) when it exists, then applies environment overrides.
func Resolve() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.toml"
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		cfg, err = Load(path)
		if err != nil {
			return nil, err
		}
	} else if os.Getenv("CONFIG_PATH") != "" {
		return nil, fmt.Errorf("config file '%s' not found: %w", path, err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}
