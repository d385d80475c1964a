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
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-rhymer"
	"github.com/ianlewis/go-rhymer/index"
	"github.com/ianlewis/go-rhymer/internal/server"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "serve rhyme queries over HTTP",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "addr",
			Usage: "listen on `ADDR`",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		if c.IsSet("addr") {
			cfg.Server.Addr = c.String("addr")
		}
		logger := newLogger(cfg.Log, c.App.ErrWriter)

		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		idx, err := loadIndex(ctx, cfg.Dictionary, logger)
		if err != nil {
			return err
		}
		r := rhymer.New(idx, &rhymer.Options{
			OverMatchThreshold: cfg.Rhymes.OverMatchThreshold,
			Strict:             cfg.Rhymes.Strict,
		})

		s := server.New(r, &server.Options{
			MaxResults: cfg.Rhymes.MaxResults,
			Loader: func(ctx context.Context) (*index.Index, error) {
				return loadIndex(ctx, cfg.Dictionary, logger)
			},
			Logger:          logger,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		})
		if err := s.Run(ctx, cfg.Server.Addr); err != nil {
			return fmt.Errorf("%w: %w", ErrRhymer, err)
		}
		return nil
	},
}
