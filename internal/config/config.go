package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type UpstreamConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	CookieName   string `yaml:"cookie_name"`
	CookieSecret string `yaml:"cookie_secret"`
	CookieSecure bool   `yaml:"cookie_secure"`
	TTL          string `yaml:"ttl"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
}

// envOverrides are applied on top of the YAML file so deployments can tweak
// single values without shipping a new config file.
type envOverrides struct {
	Port           int    `envconfig:"PORT"`
	GinMode        string `envconfig:"GIN_MODE"`
	UpstreamURL    string `envconfig:"UPSTREAM_URL"`
	RedisAddr      string `envconfig:"REDIS_ADDR"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD"`
	SessionSecret  string `envconfig:"SESSION_SECRET"`
	SessionTTL     string `envconfig:"SESSION_TTL"`
}

type Config struct {
	Port            string
	GinMode         string
	UpstreamBaseURL string
	UpstreamTimeout time.Duration
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CookieName      string
	CookieSecret    string
	CookieSecure    bool
	SessionTTL      time.Duration
}

func Load() (*Config, error) {
	return LoadFrom("config/config.yml")
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("WEBGW", &env); err != nil {
		return nil, fmt.Errorf("failed to read env overrides: %w", err)
	}
	applyOverrides(configFile, env)

	if configFile.Session.CookieSecret == "" {
		return nil, fmt.Errorf("session cookie secret is required")
	}

	timeout, err := time.ParseDuration(defaultString(configFile.Upstream.Timeout, "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid upstream timeout: %w", err)
	}

	ttl, err := time.ParseDuration(defaultString(configFile.Session.TTL, "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	return &Config{
		Port:            fmt.Sprintf("%d", configFile.App.Port),
		GinMode:         configFile.App.GinMode,
		UpstreamBaseURL: configFile.Upstream.BaseURL,
		UpstreamTimeout: timeout,
		RedisAddr:       configFile.Redis.Addr,
		RedisPassword:   configFile.Redis.Password,
		RedisDB:         configFile.Redis.DB,
		CookieName:      defaultString(configFile.Session.CookieName, "websess"),
		CookieSecret:    configFile.Session.CookieSecret,
		CookieSecure:    configFile.Session.CookieSecure,
		SessionTTL:      ttl,
	}, nil
}

func applyOverrides(cf *ConfigFile, env envOverrides) {
	if env.Port != 0 {
		cf.App.Port = env.Port
	}
	if env.GinMode != "" {
		cf.App.GinMode = env.GinMode
	}
	if env.UpstreamURL != "" {
		cf.Upstream.BaseURL = env.UpstreamURL
	}
	if env.RedisAddr != "" {
		cf.Redis.Addr = env.RedisAddr
	}
	if env.RedisPassword != "" {
		cf.Redis.Password = env.RedisPassword
	}
	if env.SessionSecret != "" {
		cf.Session.CookieSecret = env.SessionSecret
	}
	if env.SessionTTL != "" {
		cf.Session.TTL = env.SessionTTL
	}
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
