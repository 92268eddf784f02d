package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for the detector service.
type Config struct {
	Port string `yaml:"port"`

	// Model server settings. An empty ModelURL means no classifier is loaded.
	ModelURL          string        `yaml:"model_url"`
	ModelNamedColumns bool          `yaml:"model_named_columns"`
	ModelTimeout      time.Duration `yaml:"model_timeout"`

	WhoisTimeout   time.Duration `yaml:"whois_timeout"`
	WhoisServer    string        `yaml:"whois_server"`
	ExtractTimeout time.Duration `yaml:"extract_timeout"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Port:           "8080",
		ModelTimeout:   10 * time.Second,
		WhoisTimeout:   10 * time.Second,
		ExtractTimeout: 30 * time.Second,
	}
}

// Load reads .env (if present), then the YAML file named by CONFIG_FILE (if
// set), then applies environment overrides on top.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.Port = getenv("PORT", cfg.Port)
	cfg.ModelURL = getenv("MODEL_URL", cfg.ModelURL)
	cfg.WhoisServer = getenv("WHOIS_SERVER", cfg.WhoisServer)

	var err error
	if cfg.ModelNamedColumns, err = getenvBool("MODEL_NAMED_COLUMNS", cfg.ModelNamedColumns); err != nil {
		return cfg, err
	}
	if cfg.ModelTimeout, err = getenvDuration("MODEL_TIMEOUT", cfg.ModelTimeout); err != nil {
		return cfg, err
	}
	if cfg.WhoisTimeout, err = getenvDuration("WHOIS_TIMEOUT", cfg.WhoisTimeout); err != nil {
		return cfg, err
	}
	if cfg.ExtractTimeout, err = getenvDuration("EXTRACT_TIMEOUT", cfg.ExtractTimeout); err != nil {
		return cfg, err
	}

	if cfg.WhoisTimeout <= 0 {
		return cfg, fmt.Errorf("WHOIS_TIMEOUT must be > 0")
	}
	if cfg.ExtractTimeout < 0 || cfg.ModelTimeout < 0 {
		return cfg, fmt.Errorf("EXTRACT_TIMEOUT and MODEL_TIMEOUT must not be negative")
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}
