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
	"sync/atomic"

	"github.com/ianlewis/go-rhymer/index"
	"github.com/ianlewis/go-rhymer/internal/wordset"
)

const (
	// Unlimited disables truncation of query results.
	Unlimited = -1

	// DefaultOverMatchThreshold is the default number of one syllable
	// matches above which they are discarded when there are two syllable
	// matches. Common endings like the unstressed "-y" of "puppy" match
	// hundreds of words which are not useful next to stronger rhymes.
	DefaultOverMatchThreshold = 500
)

// Options are options for a Rhymer.
type Options struct {
	// OverMatchThreshold is the number of one syllable matches above which
	// they are discarded if there are any two syllable matches. A negative
	// value disables discarding. DefaultOptions uses
	// DefaultOverMatchThreshold.
	OverMatchThreshold int

	// Strict enables the strict tier. Words that share the variant's
	// stressed tail are reported as strict rhymes and left out of the other
	// tiers.
	Strict bool
}

// DefaultOptions is the default options for a Rhymer.
var DefaultOptions = &Options{
	OverMatchThreshold: DefaultOverMatchThreshold,
}

// Rhymer answers rhyme queries against an index. It is safe for concurrent
// use.
type Rhymer struct {
	idx atomic.Pointer[index.Index]

	overMatchThreshold int
	strict             bool
}

// New returns a new Rhymer that queries idx.
func New(idx *index.Index, opts *Options) *Rhymer {
	if opts == nil {
		opts = DefaultOptions
	}
	r := &Rhymer{
		overMatchThreshold: opts.OverMatchThreshold,
		strict:             opts.Strict,
	}
	r.idx.Store(idx)
	return r
}

// Load replaces the index used by the Rhymer. Queries in progress complete
// against the previous index.
func (r *Rhymer) Load(idx *index.Index) {
	r.idx.Store(idx)
}

// Index returns the index currently used by the Rhymer.
func (r *Rhymer) Index() *index.Index {
	return r.idx.Load()
}

// Query returns the words that rhyme with word. There is one Result for each
// pronunciation variant of the word, in variant order. Each tier holds at
// most maxPerTier words; pass [Unlimited] for no limit. Query returns an
// empty slice if the word is not in the index.
func (r *Rhymer) Query(word string, maxPerTier int) []*Result {
	idx := r.idx.Load()
	if idx == nil {
		return nil
	}

	folded, err := idx.Fold(word)
	if err != nil {
		return nil
	}

	var results []*Result
	for _, v := range idx.Lookup(folded) {
		results = append(results, r.rhymes(idx, folded, &v, maxPerTier))
	}
	return results
}

func (r *Rhymer) rhymes(idx *index.Index, word string, v *index.Variant, maxPerTier int) *Result {
	var tiers [3]*wordset.Set
	for i, n := range index.SuffixLengths() {
		if key, ok := v.SuffixKey(n); ok {
			tiers[i] = wordset.New(idx.WordsWithSuffix(n, key)...)
		}
	}

	var strict *wordset.Set
	if r.strict && len(v.Syllables) > 0 {
		strict = wordset.New(idx.WordsWithStressedTail(v.StressedTail)...)
	}

	// A word is only reported in the strongest tier it matches.
	one := tiers[0].Without([]*wordset.Set{tiers[1], tiers[2], strict}, word)
	two := tiers[1].Without([]*wordset.Set{tiers[2], strict}, word)
	three := tiers[2].Without([]*wordset.Set{strict}, word)
	strict = strict.Without(nil, word)

	if r.overMatchThreshold >= 0 && one.Len() > r.overMatchThreshold && two.Len() > 0 {
		one = nil
	}

	return &Result{
		Variant:        v.Number,
		Strict:         truncate(strict, maxPerTier),
		OneSyllable:    truncate(one, maxPerTier),
		TwoSyllables:   truncate(two, maxPerTier),
		ThreeSyllables: truncate(three, maxPerTier),
	}
}

func truncate(s *wordset.Set, limit int) []string {
	words := s.Words()
	if limit >= 0 && len(words) > limit {
		words = words[:limit]
	}
	if words == nil {
		words = []string{}
	}
	return words
}
