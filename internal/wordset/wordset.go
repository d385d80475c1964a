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

// Package wordset implements immutable sorted sets of words.
package wordset

import (
	"slices"
	"sort"
)

// Set is a sorted, duplicate-free set of words. A Set is never modified after
// it is created and is safe for concurrent use. The nil *Set is an empty set.
type Set struct {
	words []string
}

// New returns a Set holding the given words. The slice is not retained.
func New(words ...string) *Set {
	sorted := slices.Clone(words)
	slices.Sort(sorted)
	return &Set{
		words: slices.Compact(sorted),
	}
}

// Len returns the number of words in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// Contains performs a binary search for word.
func (s *Set) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, found := sort.Find(len(s.words), func(i int) int {
		switch {
		case word < s.words[i]:
			return -1
		case word > s.words[i]:
			return 1
		}
		return 0
	})
	return found
}

// Words returns a copy of the words in lexicographic order.
func (s *Set) Words() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.words)
}

// Without returns a new Set holding the words of s that are in none of the
// given sets and are not equal to any of the excluded words.
func (s *Set) Without(sets []*Set, excluded ...string) *Set {
	var words []string
	for _, w := range s.Words() {
		if slices.Contains(excluded, w) {
			continue
		}
		if slices.ContainsFunc(sets, func(o *Set) bool { return o.Contains(w) }) {
			continue
		}
		words = append(words, w)
	}
	return &Set{words: words}
}
