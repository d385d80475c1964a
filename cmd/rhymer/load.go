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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-rhymer/cmudict"
	"github.com/ianlewis/go-rhymer/index"
	"github.com/ianlewis/go-rhymer/internal/config"
	"github.com/ianlewis/go-rhymer/phone"
)

// wordFileNames are the file names searched for in wordLocations.
var wordFileNames = []string{
	"cmudict-0.7b",
	"cmudict-0.7b.gz",
	"cmudict-0.7b.dz",
	"cmudict.dict",
}

// loadConfig reads the configuration and applies the global flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRhymer, err)
	}

	if c.IsSet("words") {
		cfg.Dictionary.Words = c.String("words")
	}
	if c.IsSet("phones") {
		cfg.Dictionary.Phones = c.String("phones")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}

	return cfg, nil
}

// newLogger returns a logger writing to w configured by cfg.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// findWords returns the first word file found in the default locations.
func findWords() (string, error) {
	for _, dir := range wordLocations() {
		for _, name := range wordFileNames {
			path := filepath.Join(dir, name)
			if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("%w: use --words or set RHYMER_WORDS", ErrNoWords)
}

func loadClassifier(path string) (*phone.Classifier, error) {
	if path == "" {
		return phone.CMU(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening phones: %w", ErrRhymer, err)
	}
	defer f.Close()

	c, err := phone.ReadClassifier(f)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %w", ErrRhymer, path, err)
	}
	return c, nil
}

// loadIndex builds the index for the configured dictionary. Variants that
// cannot be indexed are logged.
func loadIndex(ctx context.Context, cfg config.DictionaryConfig, logger *slog.Logger) (*index.Index, error) {
	start := time.Now()

	c, err := loadClassifier(cfg.Phones)
	if err != nil {
		return nil, err
	}

	path := cfg.Words
	if path == "" {
		path, err = findWords()
		if err != nil {
			return nil, err
		}
	}

	dictionary, err := cmudict.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRhymer, err)
	}

	idx, errs := index.Build(c, dictionary, nil)
	for _, err := range errs {
		if errors.Is(err, index.ErrEmptyPronunciation) {
			logger.DebugContext(ctx, "variant has no syllables", slog.Any("error", err))
			continue
		}
		logger.WarnContext(ctx, "skipping variant", slog.Any("error", err))
	}

	logger.InfoContext(ctx, "dictionary loaded",
		slog.String("path", path),
		slog.Int("words", idx.Len()),
		slog.Int("phones", c.Len()),
		slog.Duration("duration", time.Since(start)),
	)
	return idx, nil
}
