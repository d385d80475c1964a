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

package index

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"golang.org/x/text/transform"

	"github.com/ianlewis/go-rhymer/internal/folding"
	"github.com/ianlewis/go-rhymer/internal/wordset"
	"github.com/ianlewis/go-rhymer/phone"
	"github.com/ianlewis/go-rhymer/syllable"
)

// ErrEmptyPronunciation indicates that a variant has no rhyme syllables. Such
// variants are kept in the word table but can never rhyme.
var ErrEmptyPronunciation = errors.New("pronunciation has no vowels")

// ErrDuplicateVariant indicates that a word has more than one variant with
// the same number after folding.
var ErrDuplicateVariant = errors.New("duplicate variant")

// SuffixLength is the number of trailing rhyme syllables in a suffix key.
type SuffixLength int

const (
	// OneSyllable selects the last rhyme syllable.
	OneSyllable SuffixLength = 1

	// TwoSyllables selects the last two rhyme syllables.
	TwoSyllables SuffixLength = 2

	// ThreeSyllables selects the last three rhyme syllables.
	ThreeSyllables SuffixLength = 3
)

// SuffixLengths returns the suffix lengths indexed by an Index, shortest
// first.
func SuffixLengths() []SuffixLength {
	return []SuffixLength{OneSyllable, TwoSyllables, ThreeSyllables}
}

// Variant is one pronunciation of a word.
type Variant struct {
	// Number is the variant number. The primary pronunciation is 0.
	Number int

	// Symbols are the phone symbols of the pronunciation.
	Symbols []string

	// Syllables are the rhyme syllables of the pronunciation. They are
	// derived from Symbols by Build.
	Syllables []string

	// StressedTail is the pronunciation from its last primary stressed phone
	// to the end. It is derived from Symbols by Build.
	StressedTail string
}

// SuffixKey returns the suffix key of length n. It returns false if the
// variant has fewer than n syllables.
func (v *Variant) SuffixKey(n SuffixLength) (string, bool) {
	return syllable.SuffixKey(v.Syllables, int(n))
}

func (v *Variant) clone() Variant {
	return Variant{
		Number:       v.Number,
		Symbols:      slices.Clone(v.Symbols),
		Syllables:    slices.Clone(v.Syllables),
		StressedTail: v.StressedTail,
	}
}

// VariantError is an error for a single variant encountered by Build.
type VariantError struct {
	// Word is the folded word.
	Word string

	// Variant is the variant number.
	Variant int

	// Err is the underlying error.
	Err error
}

// Error implements error.Error.
func (e *VariantError) Error() string {
	return fmt.Sprintf("%s(%d): %v", e.Word, e.Variant, e.Err)
}

// Unwrap returns the underlying error.
func (e *VariantError) Unwrap() error {
	return e.Err
}

// Options are options for building an Index.
type Options struct {
	// Folder returns a [transform.Transformer] that normalizes words (e.g.
	// case folding, whitespace folding, etc.) before they are stored or
	// looked up.
	Folder func() transform.Transformer
}

// DefaultOptions is the default options for an Index.
var DefaultOptions = &Options{
	Folder: folding.Word,
}

// Index is an immutable rhyme index.
type Index struct {
	words    map[string][]Variant
	suffixes map[SuffixLength]map[string]*wordset.Set
	stressed map[string]*wordset.Set

	folder func() transform.Transformer
}

// Build builds a new Index for the given dictionary using c to classify
// phones. The dictionary is not retained.
//
// Variants with phones unknown to c are left out of the index and reported
// with an error wrapping [phone.ErrUnknownSymbol]. Variants without vowels
// are reported with an error wrapping [ErrEmptyPronunciation]; they stay in
// the word table. Words that fold to the same word are merged. A variant
// whose number the merged word already has is left out and reported with an
// error wrapping [ErrDuplicateVariant]. Build returns the Index along with
// all errors encountered.
func Build(c *phone.Classifier, dictionary map[string][]Variant, opts *Options) (*Index, []error) {
	if opts == nil {
		opts = DefaultOptions
	}
	idx := &Index{
		words:    map[string][]Variant{},
		suffixes: map[SuffixLength]map[string]*wordset.Set{},
		stressed: map[string]*wordset.Set{},
		folder:   DefaultOptions.Folder,
	}
	if opts.Folder != nil {
		idx.folder = opts.Folder
	}

	seg := syllable.New(c)
	suffixWords := map[SuffixLength]map[string][]string{}
	for _, n := range SuffixLengths() {
		suffixWords[n] = map[string][]string{}
	}
	stressedWords := map[string][]string{}

	var errs []error
	for _, word := range slices.Sorted(maps.Keys(dictionary)) {
		folded, err := folding.String(idx.folder, word)
		if err != nil {
			errs = append(errs, fmt.Errorf("folding word %q: %w", word, err))
			continue
		}

		for _, v := range dictionary[word] {
			if slices.ContainsFunc(idx.words[folded], func(x Variant) bool { return x.Number == v.Number }) {
				errs = append(errs, &VariantError{Word: folded, Variant: v.Number, Err: ErrDuplicateVariant})
				continue
			}

			syllables, err := seg.Syllables(v.Symbols)
			if err != nil {
				errs = append(errs, &VariantError{Word: folded, Variant: v.Number, Err: err})
				continue
			}

			variant := Variant{
				Number:       v.Number,
				Symbols:      slices.Clone(v.Symbols),
				Syllables:    syllables,
				StressedTail: syllable.StressedTail(v.Symbols),
			}
			idx.words[folded] = append(idx.words[folded], variant)

			if len(syllables) == 0 {
				errs = append(errs, &VariantError{Word: folded, Variant: v.Number, Err: ErrEmptyPronunciation})
				continue
			}

			for _, n := range SuffixLengths() {
				if key, ok := variant.SuffixKey(n); ok {
					suffixWords[n][key] = append(suffixWords[n][key], folded)
				}
			}
			stressedWords[variant.StressedTail] = append(stressedWords[variant.StressedTail], folded)
		}
	}

	for _, variants := range idx.words {
		slices.SortStableFunc(variants, func(a, b Variant) int { return a.Number - b.Number })
	}

	for n, keys := range suffixWords {
		idx.suffixes[n] = make(map[string]*wordset.Set, len(keys))
		for key, words := range keys {
			idx.suffixes[n][key] = wordset.New(words...)
		}
	}
	for tail, words := range stressedWords {
		idx.stressed[tail] = wordset.New(words...)
	}

	return idx, errs
}

// Fold normalizes word the same way words were normalized when the Index was
// built.
func (idx *Index) Fold(word string) (string, error) {
	folded, err := folding.String(idx.folder, word)
	if err != nil {
		return "", fmt.Errorf("folding word %q: %w", word, err)
	}
	return folded, nil
}

// Lookup returns copies of the variants of the given word. It returns nil if
// the word is not in the index.
func (idx *Index) Lookup(word string) []Variant {
	folded, err := idx.Fold(word)
	if err != nil {
		return nil
	}
	variants, ok := idx.words[folded]
	if !ok {
		return nil
	}
	result := make([]Variant, 0, len(variants))
	for i := range variants {
		result = append(result, variants[i].clone())
	}
	return result
}

// WordsWithSuffix returns the words that have a variant with the given suffix
// key of length n, in lexicographic order. It returns an empty result for
// unknown keys and suffix lengths. The returned slice is owned by the caller.
func (idx *Index) WordsWithSuffix(n SuffixLength, key string) []string {
	return idx.suffixes[n][key].Words()
}

// WordsWithStressedTail returns the words that have a variant with the given
// stressed tail, in lexicographic order.
func (idx *Index) WordsWithStressedTail(tail string) []string {
	return idx.stressed[tail].Words()
}

// Words returns all words in the index in lexicographic order.
func (idx *Index) Words() []string {
	return slices.Sorted(maps.Keys(idx.words))
}

// Len returns the number of words in the index.
func (idx *Index) Len() int {
	return len(idx.words)
}
