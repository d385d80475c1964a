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
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-rhymer/export"
)

var exportCommand = &cli.Command{
	Name:      "export",
	Usage:     "write the word table to a database",
	ArgsUsage: "DSN",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "driver",
			Usage: "database `DRIVER` (sqlite, pgx)",
		},
		&cli.IntFlag{
			Name:  "batch-size",
			Usage: "insert `N` rows per statement",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: expected a single DSN", ErrFlagParse)
		}
		dsn := c.Args().First()

		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		if c.IsSet("driver") {
			cfg.Export.Driver = c.String("driver")
		}
		if c.IsSet("batch-size") {
			cfg.Export.BatchSize = c.Int("batch-size")
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		}
		logger := newLogger(cfg.Log, c.App.ErrWriter)

		dialect, err := export.DialectFor(cfg.Export.Driver)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		}

		idx, err := loadIndex(c.Context, cfg.Dictionary, logger)
		if err != nil {
			return err
		}

		db, err := export.OpenDB(cfg.Export.Driver, dsn)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRhymer, err)
		}
		defer db.Close()

		n, err := export.Export(c.Context, db, idx, &export.Options{
			Dialect:   dialect,
			BatchSize: cfg.Export.BatchSize,
			Logger:    logger,
		})
		if err != nil {
			return fmt.Errorf("%w: exporting: %w", ErrRhymer, err)
		}

		fmt.Fprintf(c.App.Writer, "exported %d variants of %d words\n", n, idx.Len())
		return nil
	},
}
