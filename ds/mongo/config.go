package mongo

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "MONGODB"

// Config holds the settings used to build a repository from the environment.
// Datasource wins over the Server/Username/Password/Database parts when set.
type Config struct {
	Server     string        `envconfig:"SERVER"`
	Username   string        `envconfig:"AUTH_USERNAME"`
	Password   string        `envconfig:"AUTH_PASSWORD"`
	Database   string        `envconfig:"DATABASE"`
	Datasource string        `envconfig:"DATASOURCE"`
	Provider   string        `envconfig:"PROVIDER" default:"auto"`
	CtxTimeout time.Duration `envconfig:"CTX_TIMEOUT" default:"10s"`
	Ping       bool          `envconfig:"PING" default:"true"`
}

// LoadConfig reads MONGODB_* environment variables.
// Load the .env file in your init app before calling it.
func LoadConfig() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process(envPrefix, c); err != nil {
		return nil, fmt.Errorf("load mongodb config: %w", err)
	}
	c.setDefault()
	return c, nil
}

// ConfigDefault returns a config for db with the server and credentials read
// from the environment. A MONGODB_DATASOURCE value still takes precedence.
// It is best effort: a malformed variable leaves the built-in default for that
// field and the ones after it. Use LoadConfig to get the error instead.
func ConfigDefault(db string) *Config {
	c := &Config{Provider: "auto", CtxTimeout: 10 * time.Second, Ping: true}
	_ = envconfig.Process(envPrefix, c)
	c.Database = db
	c.setDefault()
	return c
}

// setDefault fills in defaults if not explicitly provided.
func (c *Config) setDefault() {
	if c.Datasource == "" && c.Server != "" {
		u := url.URL{Scheme: "mongodb", Host: c.Server, Path: "/" + c.Database}
		if c.Username != "" {
			u.User = url.UserPassword(c.Username, c.Password)
		}
		c.Datasource = u.String()
	}
	if c.CtxTimeout == 0 {
		c.CtxTimeout = 10 * time.Second
	}
}

// Options converts the config into repository options.
func (c *Config) Options() ([]Option, error) {
	p, err := ParseProvider(c.Provider)
	if err != nil {
		return nil, err
	}
	return []Option{
		WithProvider(p),
		WithTimeout(c.CtxTimeout),
		WithPing(c.Ping),
	}, nil
}
