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

package phone

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedLine indicates a .phones line without a symbol and category.
var ErrMalformedLine = errors.New("malformed phones line")

// Phone is a .phones file entry.
type Phone struct {
	// Symbol is the phone root.
	Symbol string

	// Category is the phone's category.
	Category Category
}

// Scanner scans a .phones file from start to end.
type Scanner struct {
	s     *bufio.Scanner
	phone *Phone
	line  int
	err   error
}

// NewScanner returns a new Scanner that reads from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		s: bufio.NewScanner(r),
	}
}

// Scan advances the scanner to the next phone. It returns false if the scan
// stops either by reaching the end of the input or an error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.s.Scan() {
		s.line++
		line := strings.TrimSpace(s.s.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			s.err = fmt.Errorf("%w: line %d: %q", ErrMalformedLine, s.line, line)
			return false
		}

		category, err := ParseCategory(fields[1])
		if err != nil {
			s.err = fmt.Errorf("line %d: %w", s.line, err)
			return false
		}

		s.phone = &Phone{
			Symbol:   fields[0],
			Category: category,
		}
		return true
	}
	return false
}

// Phone returns the most recent phone read by Scan.
func (s *Scanner) Phone() *Phone {
	return s.phone
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	if s.err != nil {
		return s.err
	}
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// ReadClassifier reads a .phones file and returns its Classifier.
func ReadClassifier(r io.Reader) (*Classifier, error) {
	categories := map[string]Category{}
	s := NewScanner(r)
	for s.Scan() {
		p := s.Phone()
		categories[p.Symbol] = p.Category
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading phones: %w", err)
	}
	return &Classifier{categories: categories}, nil
}
