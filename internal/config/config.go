// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the rhymer command configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// EnvPath is the environment variable holding the configuration file path.
const EnvPath = "RHYMER_CONFIG"

var errInvalid = errors.New("invalid configuration")

// Config is the root configuration.
type Config struct {
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Rhymes     RhymesConfig     `yaml:"rhymes"`
	Server     ServerConfig     `yaml:"server"`
	Export     ExportConfig     `yaml:"export"`
	Log        LogConfig        `yaml:"log"`
}

// DictionaryConfig holds the dictionary file locations.
type DictionaryConfig struct {
	// Words is the path to the word file.
	Words string `yaml:"words" env:"RHYMER_WORDS"`

	// Phones is the path to the .phones file. The embedded CMU phones are
	// used if empty.
	Phones string `yaml:"phones" env:"RHYMER_PHONES"`
}

// RhymesConfig holds rhyme query settings.
type RhymesConfig struct {
	// OverMatchThreshold is the number of one syllable matches above which
	// they are dropped when there are two syllable matches. -1 disables
	// dropping. An unset or zero value selects the default of 500.
	OverMatchThreshold int  `yaml:"over_match_threshold" env:"RHYMER_OVER_MATCH_THRESHOLD" env-default:"500"`
	MaxResults         int  `yaml:"max_results"          env:"RHYMER_MAX_RESULTS"          env-default:"-1"`
	Strict             bool `yaml:"strict"               env:"RHYMER_STRICT"               env-default:"false"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"RHYMER_ADDR"             env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"RHYMER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"RHYMER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"RHYMER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// ExportConfig holds database export settings.
type ExportConfig struct {
	Driver    string `yaml:"driver"     env:"RHYMER_EXPORT_DRIVER"     env-default:"sqlite"`
	BatchSize int    `yaml:"batch_size" env:"RHYMER_EXPORT_BATCH_SIZE" env-default:"1000"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"RHYMER_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"RHYMER_LOG_FORMAT" env-default:"text"`
}

// Load reads the configuration from the YAML file at path and the
// environment. Environment variables take precedence over the file. If path
// is empty the RHYMER_CONFIG environment variable is used. Without a file
// the configuration comes from the environment and defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv(EnvPath)
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []error
	if c.Export.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: export.batch_size must be positive: %d", errInvalid, c.Export.BatchSize))
	}
	switch c.Export.Driver {
	case "sqlite", "pgx":
	default:
		errs = append(errs, fmt.Errorf("%w: export.driver: %q", errInvalid, c.Export.Driver))
	}
	if c.Rhymes.OverMatchThreshold < -1 {
		errs = append(errs, fmt.Errorf("%w: rhymes.over_match_threshold: %d", errInvalid, c.Rhymes.OverMatchThreshold))
	}
	if c.Rhymes.MaxResults < -1 {
		errs = append(errs, fmt.Errorf("%w: rhymes.max_results: %d", errInvalid, c.Rhymes.MaxResults))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: log.format: %q", errInvalid, c.Log.Format))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: log.level: %q", errInvalid, c.Log.Level))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: server.shutdown_timeout: %v", errInvalid, c.Server.ShutdownTimeout))
	}
	return errors.Join(errs...)
}
