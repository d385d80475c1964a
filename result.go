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

package rhymer

import (
	"fmt"
	"strings"
)

// Result holds the words that rhyme with one pronunciation variant of a word.
type Result struct {
	// Variant is the variant number of the pronunciation. Most words have a
	// single pronunciation with variant number 0.
	Variant int `json:"variant"`

	// Strict holds words sharing the variant's stressed tail. It is only
	// populated when the Rhymer has strict rhymes enabled.
	Strict []string `json:"strict,omitempty"`

	// OneSyllable holds words sharing the last rhyme syllable.
	OneSyllable []string `json:"one_syllable"`

	// TwoSyllables holds words sharing the last two rhyme syllables.
	TwoSyllables []string `json:"two_syllables"`

	// ThreeSyllables holds words sharing the last three rhyme syllables.
	ThreeSyllables []string `json:"three_syllables"`
}

// Empty reports whether the result holds no words.
func (r *Result) Empty() bool {
	return len(r.Strict) == 0 &&
		len(r.OneSyllable) == 0 &&
		len(r.TwoSyllables) == 0 &&
		len(r.ThreeSyllables) == 0
}

// String returns a string representation of the Result.
func (r *Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "variant %d\n", r.Variant)
	if len(r.Strict) > 0 {
		fmt.Fprintf(&b, "  strict: %s\n", strings.Join(r.Strict, ", "))
	}
	fmt.Fprintf(&b, "  one syllable: %s\n", strings.Join(r.OneSyllable, ", "))
	fmt.Fprintf(&b, "  two syllables: %s\n", strings.Join(r.TwoSyllables, ", "))
	fmt.Fprintf(&b, "  three syllables: %s\n", strings.Join(r.ThreeSyllables, ", "))
	return b.String()
}
