// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config loads and validates the YAML configuration file and
// instantiates the configured adapters, namely the database connection
// pool, the token guard, and the gin engine.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/FabienMht/ginslog/logger"
	"github.com/FabienMht/ginslog/recovery"
	"github.com/gin-gonic/gin"
	"github.com/rentweb/crweb/pkg/adapter/auth/jwt"
	"github.com/rentweb/crweb/pkg/adapter/db/postgres"
	"gopkg.in/yaml.v3"
)

// Config contains all settings of the crweb binary. Each nested
// struct corresponds to one top-level section of the YAML file.
type Config struct {
	Database Database `yaml:"database"`
	Gin      Gin      `yaml:"gin"`
	Auth     Auth     `yaml:"auth"`
	Logger   Logger   `yaml:"logger"`
}

// Database contains the PostgreSQL connection settings. The
// PassFile, if given, takes precedence over the Pass field, so the
// password itself can be kept out of the main config file.
type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Pass     string `yaml:"pass"`
	PassFile string `yaml:"pass-file"`
}

// Gin contains the REST API server settings.
type Gin struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
}

// Auth contains the bearer token settings. TokenTTL determines how
// long an issued token stays valid.
type Auth struct {
	JWTSecret string   `yaml:"jwt-secret"`
	Issuer    string   `yaml:"issuer"`
	TokenTTL  Duration `yaml:"token-ttl"`
}

// Logger contains the logging settings. Level accepts debug, info,
// warn, and error.
type Logger struct {
	Level string `yaml:"level"`
}

// Load reads the YAML file at the given path, validates it, and
// replaces missing optional settings with their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize checks the mandatory settings and fills the
// optional ones with their default values.
func (c *Config) ValidateAndNormalize() error {
	d := &c.Database
	switch {
	case d.Host == "":
		return errors.New("database.host is mandatory")
	case d.Port <= 0 || d.Port >= 65536:
		return fmt.Errorf("invalid database.port: %d", d.Port)
	case d.Name == "":
		return errors.New("database.name is mandatory")
	case d.User == "":
		return errors.New("database.user is mandatory")
	}
	if d.PassFile != "" {
		pass, err := os.ReadFile(d.PassFile)
		if err != nil {
			return fmt.Errorf(
				"reading database.pass-file: %w", err,
			)
		}
		d.Pass = string(pass)
	}
	if d.Pass == "" {
		return errors.New("database.pass or pass-file is mandatory")
	}
	if c.Gin.Host == "" {
		c.Gin.Host = "127.0.0.1"
	}
	if c.Gin.Port == 0 {
		c.Gin.Port = 8080
	}
	switch c.Gin.Mode {
	case "":
		c.Gin.Mode = gin.ReleaseMode
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("invalid gin.mode: %q", c.Gin.Mode)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt-secret is mandatory")
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = Duration(24 * time.Hour)
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if _, err := c.Logger.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// URL composes the PostgreSQL connection URL of the d settings.
func (d Database) URL() string {
	return fmt.Sprintf(
		"postgres://%s@%s:%d/%s",
		url.UserPassword(d.User, d.Pass), d.Host, d.Port, d.Name,
	)
}

// ConnectionPool establishes a database connection pool based on the
// database settings of the c configuration instance.
func (c *Config) ConnectionPool(ctx context.Context) (
	*postgres.Pool, error,
) {
	return postgres.NewPool(ctx, c.Database.URL())
}

// TokenGuard instantiates the JWT issuer/verifier based on the auth
// settings of the c configuration instance.
func (c *Config) TokenGuard() (*jwt.Guard, error) {
	return jwt.New(
		c.Auth.JWTSecret,
		c.Auth.Issuer,
		time.Duration(c.Auth.TokenTTL),
	)
}

// NewEngine sets the gin mode and creates a gin engine with the
// slog-based request logging and recovery middlewares.
func (g Gin) NewEngine() *gin.Engine {
	gin.SetMode(g.Mode)
	e := gin.New()
	e.Use(
		logger.New(slog.Default()),
		recovery.New(slog.Default()),
	)
	return e
}

// Addr returns the host:port listening address of the g settings.
func (g Gin) Addr() string {
	return fmt.Sprintf("%s:%d", g.Host, g.Port)
}

// SlogLevel parses the configured logging level name.
func (l Logger) SlogLevel() (slog.Level, error) {
	switch l.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid logger.level: %q", l.Level)
}
