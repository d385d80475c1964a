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
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownSymbol indicates that a phone root is not in the category table.
var ErrUnknownSymbol = errors.New("unknown phone symbol")

// ErrUnknownCategory indicates that a category name could not be parsed.
var ErrUnknownCategory = errors.New("unknown phone category")

// Category is the manner of articulation of a phone.
type Category int

const (
	// Vowel is a vowel phone. Vowels start rhyme syllables.
	Vowel Category = iota + 1
	Stop
	Affricate
	Fricative
	Aspirate
	Liquid
	Nasal
	Semivowel
)

var categoryNames = map[Category]string{
	Vowel:     "vowel",
	Stop:      "stop",
	Affricate: "affricate",
	Fricative: "fricative",
	Aspirate:  "aspirate",
	Liquid:    "liquid",
	Nasal:     "nasal",
	Semivowel: "semivowel",
}

// String returns the category name as written in a .phones file.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ParseCategory parses a category name. Names are case insensitive.
func ParseCategory(name string) (Category, error) {
	folded := strings.ToLower(strings.TrimSpace(name))
	for c, n := range categoryNames {
		if n == folded {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Root returns the symbol with its trailing stress digit removed.
func Root(symbol string) string {
	if n := len(symbol); n > 0 && isDigit(symbol[n-1]) {
		return symbol[:n-1]
	}
	return symbol
}

// Stress returns the stress digit of the symbol. The second return value is
// false if the symbol carries no stress digit.
func Stress(symbol string) (int, bool) {
	if n := len(symbol); n > 0 && isDigit(symbol[n-1]) {
		return int(symbol[n-1] - '0'), true
	}
	return 0, false
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

// Classifier maps phone roots to categories. A Classifier is immutable and
// safe for concurrent use.
type Classifier struct {
	categories map[string]Category
}

// NewClassifier returns a Classifier for the given table. The table is copied.
func NewClassifier(categories map[string]Category) *Classifier {
	return &Classifier{
		categories: maps.Clone(categories),
	}
}

// Classify returns the category of the given phone root.
func (c *Classifier) Classify(root string) (Category, error) {
	category, ok := c.categories[root]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, root)
	}
	return category, nil
}

// Symbols returns the known roots in sorted order.
func (c *Classifier) Symbols() []string {
	return slices.Sorted(maps.Keys(c.categories))
}

// Len returns the number of known roots.
func (c *Classifier) Len() int {
	return len(c.categories)
}

//go:embed cmudict-0.7b.phones
var cmuPhones string

var cmu = sync.OnceValue(func() *Classifier {
	c, err := ReadClassifier(strings.NewReader(cmuPhones))
	if err != nil {
		panic(fmt.Sprintf("reading embedded phones table: %v", err))
	}
	return c
})

// CMU returns the Classifier for the phones used by the CMU Pronouncing
// Dictionary (cmudict-0.7b).
func CMU() *Classifier {
	return cmu()
}
