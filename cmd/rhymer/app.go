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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrRhymer is a parent error for all command errors.
var ErrRhymer = errors.New("rhymer")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrRhymer)

// ErrNoWords indicates that no word file was configured or found.
var ErrNoWords = fmt.Errorf("%w: no word file", ErrRhymer)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but the help text is printed by the root action instead.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

func printVersion(c *cli.Context) error {
	info := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, `%s %s
Copyright (c) %s

%s`,
		c.App.Name,
		info.GitVersion,
		strings.Join(copyrightNames, "\nCopyright (c) "),
		info.String(),
	)
	if err != nil {
		return fmt.Errorf("%w: printing version: %w", ErrRhymer, err)
	}
	return nil
}

func newRhymerApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Find rhymes in a pronouncing dictionary.",
		Description: strings.Join([]string{
			"Rhyme finder for CMU Pronouncing Dictionary files written in Go.",
			"http://github.com/ianlewis/go-rhymer",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE`",
				Aliases: []string{"c"},
				EnvVars: []string{"RHYMER_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "words",
				Usage:   "read pronunciations from word file `PATH`",
				Aliases: []string{"w"},
			},
			&cli.StringFlag{
				Name:  "phones",
				Usage: "read the phone table from `PATH` instead of the built-in CMU table",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log at `LEVEL` (debug, info, warn, error)",
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			queryCommand,
			exportCommand,
			serveCommand,
		},
	}
}
