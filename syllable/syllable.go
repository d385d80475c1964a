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

// Package syllable splits pronunciations into rhyme syllables.
//
// A rhyme syllable is a vowel root followed by the consonant roots up to the
// next vowel. The onset consonants of a syllable are dropped because they do
// not take part in a rhyme. For example, the word "kitcat" (K IH1 T K AE2 T)
// has the rhyme syllables "IHT" and "AET".
package syllable

import (
	"fmt"
	"strings"

	"github.com/ianlewis/go-rhymer/phone"
)

// Segmenter splits phone sequences into rhyme syllables.
type Segmenter struct {
	c *phone.Classifier
}

// New returns a Segmenter that uses c to find vowels.
func New(c *phone.Classifier) *Segmenter {
	return &Segmenter{c: c}
}

// Syllables returns the rhyme syllables for the given phone symbols. A
// pronunciation without vowels has no syllables. An error wrapping
// [phone.ErrUnknownSymbol] is returned if a symbol cannot be classified.
func (s *Segmenter) Syllables(symbols []string) ([]string, error) {
	var syllables []string
	var current strings.Builder
	for _, symbol := range symbols {
		root := phone.Root(symbol)
		category, err := s.c.Classify(root)
		if err != nil {
			return nil, fmt.Errorf("segmenting %q: %w", strings.Join(symbols, " "), err)
		}

		if category == phone.Vowel {
			if current.Len() > 0 {
				syllables = append(syllables, current.String())
				current.Reset()
			}
		} else if current.Len() == 0 {
			// Onset consonant.
			continue
		}
		current.WriteString(root)
	}
	if current.Len() > 0 {
		syllables = append(syllables, current.String())
	}
	return syllables, nil
}

// StressedTail returns the roots of the symbols from the last primary stressed
// symbol to the end of the pronunciation, concatenated. The whole
// pronunciation is used if no symbol carries primary stress.
//
// For example, "telemedicine" (T EH2 L IH0 M EH1 D IH0 S AH0 N) has the
// stressed tail "EHDIHSAHN".
func StressedTail(symbols []string) string {
	start := 0
	for i := len(symbols) - 1; i >= 0; i-- {
		if stress, ok := phone.Stress(symbols[i]); ok && stress == 1 {
			start = i
			break
		}
	}

	var b strings.Builder
	for _, symbol := range symbols[start:] {
		b.WriteString(phone.Root(symbol))
	}
	return b.String()
}

// SuffixKey returns the last n syllables concatenated. It returns false if
// there are fewer than n syllables.
func SuffixKey(syllables []string, n int) (string, bool) {
	if n <= 0 || len(syllables) < n {
		return "", false
	}
	return strings.Join(syllables[len(syllables)-n:], ""), true
}
