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

package cmudict

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/ianlewis/go-rhymer/index"
)

// ErrMalformedLine indicates a word file line that could not be parsed.
var ErrMalformedLine = errors.New("malformed word line")

const commentPrefix = ";;;"

var variantRegex = regexp.MustCompile(`^(.+)\(([0-9]+)\)$`)

// Entry is a word file entry.
type Entry struct {
	// Word is the word as written in the file without its variant suffix.
	Word string

	// Variant is the variant number. The primary pronunciation is 0.
	Variant int

	// Symbols are the phone symbols of the pronunciation.
	Symbols []string
}

// Scanner scans a word file from start to end.
type Scanner struct {
	s     *bufio.Scanner
	entry *Entry
	line  int
	err   error
}

// NewScanner returns a new word file scanner that reads from r.
func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	// Some lines in large dictionaries are long.
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Scanner{
		s: s,
	}
}

// Scan advances the scanner to the next entry. It returns false if the scan
// stops either by reaching the end of the input or an error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.s.Scan() {
		s.line++
		line := strings.TrimRight(s.s.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		e, err := parseLine(line)
		if err != nil {
			s.err = fmt.Errorf("line %d: %w", s.line, err)
			return false
		}
		s.entry = e
		return true
	}
	return false
}

// Entry returns the most recent entry read by Scan.
func (s *Scanner) Entry() *Entry {
	return s.entry
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	if s.err != nil {
		return s.err
	}
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

func parseLine(line string) (*Entry, error) {
	word, phones, found := strings.Cut(line, "  ")
	if !found {
		// Newer dictionary releases use a single space.
		word, phones, found = strings.Cut(line, " ")
	}
	symbols := strings.Fields(phones)
	if !found || word == "" || len(symbols) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	e := &Entry{
		Word:    word,
		Symbols: symbols,
	}
	if m := variantRegex.FindStringSubmatch(word); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("%w: variant %q: %w", ErrMalformedLine, m[2], err)
		}
		e.Word = m[1]
		e.Variant = n
	}
	return e, nil
}

// Read reads all entries of a word file and groups them into variants by
// lower-cased word. Variants are kept in file order.
func Read(r io.Reader) (map[string][]index.Variant, error) {
	words := map[string][]index.Variant{}
	s := NewScanner(r)
	for s.Scan() {
		e := s.Entry()
		word := strings.ToLower(e.Word)
		words[word] = append(words[word], index.Variant{
			Number:  e.Variant,
			Symbols: e.Symbols,
		})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading words: %w", err)
	}
	return words, nil
}
