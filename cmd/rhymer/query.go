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
	"log/slog"
	"strconv"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-rhymer"
)

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "print the rhymes for words",
	ArgsUsage: "WORD...",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "max",
			Usage:   "print at most `N` words per tier (-1 for no limit)",
			Aliases: []string{"n"},
			Value:   rhymer.Unlimited,
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "report words sharing the stressed tail separately",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return fmt.Errorf("%w: no words given", ErrFlagParse)
		}

		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		logger := newLogger(cfg.Log, c.App.ErrWriter)

		maxResults := cfg.Rhymes.MaxResults
		if c.IsSet("max") {
			maxResults = c.Int("max")
		}
		if maxResults < rhymer.Unlimited {
			return fmt.Errorf("%w: invalid max: %d", ErrFlagParse, maxResults)
		}

		idx, err := loadIndex(c.Context, cfg.Dictionary, logger)
		if err != nil {
			return err
		}
		r := rhymer.New(idx, &rhymer.Options{
			OverMatchThreshold: cfg.Rhymes.OverMatchThreshold,
			Strict:             cfg.Rhymes.Strict || c.Bool("strict"),
		})

		tbl := table.New("Word", "Variant", "Tier", "Rhymes").WithWriter(c.App.Writer)
		for _, word := range c.Args().Slice() {
			results := r.Query(word, maxResults)
			if len(results) == 0 {
				fmt.Fprintf(c.App.ErrWriter, "%s: no pronunciation found\n", word)
				continue
			}
			for _, res := range results {
				logger.DebugContext(c.Context, "query result", slog.String("word", word), slog.String("result", res.String()))
				if res.Empty() {
					tbl.AddRow(word, strconv.Itoa(res.Variant), "-", "")
					continue
				}
				for _, tier := range []struct {
					name  string
					words []string
				}{
					{"strict", res.Strict},
					{"1", res.OneSyllable},
					{"2", res.TwoSyllables},
					{"3", res.ThreeSyllables},
				} {
					if len(tier.words) == 0 {
						continue
					}
					tbl.AddRow(word, strconv.Itoa(res.Variant), tier.name, strings.Join(tier.words, " "))
				}
			}
		}
		tbl.Print()

		return nil
	},
}
