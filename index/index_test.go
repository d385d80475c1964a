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

package index_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-rhymer/index"
	"github.com/ianlewis/go-rhymer/internal/testutil"
	"github.com/ianlewis/go-rhymer/phone"
)

func TestBuild_suffixes(t *testing.T) {
	t.Parallel()

	idx := testutil.Index(t, testutil.Words...)

	tests := []struct {
		name     string
		n        index.SuffixLength
		key      string
		expected []string
	}{
		{
			name:     "one syllable",
			n:        index.OneSyllable,
			key:      "AET",
			expected: []string{"bat", "cat", "hat", "kitcat"},
		},
		{
			name:     "two syllables",
			n:        index.TwoSyllables,
			key:      "EREYT",
			expected: []string{"decorate", "recuperate", "redecorate"},
		},
		{
			name:     "three syllables",
			n:        index.ThreeSyllables,
			key:      "EHKEREYT",
			expected: []string{"decorate", "redecorate"},
		},
		{
			name:     "variants",
			n:        index.OneSyllable,
			key:      "EY",
			expected: []string{"sunday", "tuesday"},
		},
		{
			name:     "unknown key",
			n:        index.OneSyllable,
			key:      "ZZZ",
			expected: nil,
		},
		{
			name:     "unknown suffix length",
			n:        index.SuffixLength(4),
			key:      "AET",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, idx.WordsWithSuffix(test.n, test.key)); diff != "" {
				t.Fatalf("WordsWithSuffix(%d, %q) (-want, +got):\n%s", test.n, test.key, diff)
			}
		})
	}
}

// TestBuild_consistency checks that a word is indexed under a suffix key if
// and only if one of its variants has that key.
func TestBuild_consistency(t *testing.T) {
	t.Parallel()

	idx := testutil.Index(t, testutil.Words...)

	for _, word := range idx.Words() {
		for _, v := range idx.Lookup(word) {
			for _, n := range index.SuffixLengths() {
				key, ok := v.SuffixKey(n)
				if !ok {
					continue
				}
				found := false
				for _, w := range idx.WordsWithSuffix(n, key) {
					found = found || w == word
					// The reverse direction: every indexed word has the key.
					matched := false
					for _, wv := range idx.Lookup(w) {
						if k, ok := wv.SuffixKey(n); ok && k == key {
							matched = true
						}
					}
					if !matched {
						t.Errorf("%q indexed under %d:%q but has no such variant", w, n, key)
					}
				}
				if !found {
					t.Errorf("%q(%d) missing from %d:%q", word, v.Number, n, key)
				}
			}
		}
	}
}

func TestIndex_Lookup(t *testing.T) {
	t.Parallel()

	idx := testutil.Index(t, testutil.Words...)

	expected := []index.Variant{
		{
			Number:       0,
			Symbols:      []string{"HH", "AH0", "L", "OW1"},
			Syllables:    []string{"AHL", "OW"},
			StressedTail: "OW",
		},
		{
			Number:       1,
			Symbols:      []string{"HH", "EH0", "L", "OW1"},
			Syllables:    []string{"EHL", "OW"},
			StressedTail: "OW",
		},
	}

	for _, word := range []string{"hello", "HELLO", "  Hello "} {
		if diff := cmp.Diff(expected, idx.Lookup(word)); diff != "" {
			t.Errorf("Lookup(%q) (-want, +got):\n%s", word, diff)
		}
	}

	if got := idx.Lookup("goodbye"); got != nil {
		t.Errorf("Lookup(goodbye); want: nil, got: %v", got)
	}
}

func TestIndex_Lookup_copy(t *testing.T) {
	t.Parallel()

	idx := testutil.Index(t, testutil.Words...)

	v := idx.Lookup("cat")
	v[0].Symbols[0] = "B"
	v[0].Syllables[0] = "XXX"

	if diff := cmp.Diff([]string{"K", "AE1", "T"}, idx.Lookup("cat")[0].Symbols); diff != "" {
		t.Fatalf("Lookup after mutation (-want, +got):\n%s", diff)
	}

	words := idx.WordsWithSuffix(index.OneSyllable, "AET")
	words[0] = "zzz"
	if diff := cmp.Diff("bat", idx.WordsWithSuffix(index.OneSyllable, "AET")[0]); diff != "" {
		t.Fatalf("WordsWithSuffix after mutation (-want, +got):\n%s", diff)
	}
}

func TestIndex_WordsWithStressedTail(t *testing.T) {
	t.Parallel()

	idx := testutil.Index(t, testutil.Words...)
	if diff := cmp.Diff([]string{"grow", "hello", "low"}, idx.WordsWithStressedTail("OW")); diff != "" {
		t.Fatalf("WordsWithStressedTail (-want, +got):\n%s", diff)
	}
}

func TestBuild_errors(t *testing.T) {
	t.Parallel()

	dictionary := testutil.Dictionary(t,
		"CAT  K AE1 T",
		"HMM  HH M",
		"BAD  B XX1 D",
		"BAD(1)  B AE1 D",
	)

	idx, errs := index.Build(phone.CMU(), dictionary, nil)

	var unknown, empty []string
	for _, err := range errs {
		var verr *index.VariantError
		if !errors.As(err, &verr) {
			t.Fatalf("unexpected error type %T: %v", err, err)
		}
		switch {
		case errors.Is(err, phone.ErrUnknownSymbol):
			unknown = append(unknown, verr.Error())
		case errors.Is(err, index.ErrEmptyPronunciation):
			empty = append(empty, verr.Word)
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(unknown) != 1 || !strings.HasPrefix(unknown[0], "bad(0): ") {
		t.Errorf("unknown symbol errors: %v", unknown)
	}
	if diff := cmp.Diff([]string{"hmm"}, empty); diff != "" {
		t.Errorf("empty pronunciation errors (-want, +got):\n%s", diff)
	}

	// The variant with an unknown symbol is skipped but the other is kept.
	variants := idx.Lookup("bad")
	if len(variants) != 1 || variants[0].Number != 1 {
		t.Errorf("Lookup(bad): %+v", variants)
	}

	// Empty pronunciations stay in the word table without suffix entries.
	if got := idx.Lookup("hmm"); len(got) != 1 || len(got[0].Syllables) != 0 {
		t.Errorf("Lookup(hmm): %+v", got)
	}
	if diff := cmp.Diff([]string{"bad", "cat", "hmm"}, idx.Words()); diff != "" {
		t.Errorf("Words (-want, +got):\n%s", diff)
	}
}

func TestBuild_duplicateVariants(t *testing.T) {
	t.Parallel()

	dictionary := map[string][]index.Variant{
		"Cat": {
			{Number: 1, Symbols: []string{"K", "AA1", "T"}},
			{Number: 0, Symbols: []string{"K", "AE1", "T"}},
		},
		"CAT": {
			{Number: 0, Symbols: []string{"K", "AE1", "T"}},
			{Number: 2, Symbols: []string{"K", "EH1", "T"}},
		},
		"HAT": {
			{Number: 0, Symbols: []string{"HH", "AE1", "T"}},
		},
	}

	idx, errs := index.Build(phone.CMU(), dictionary, nil)

	// "CAT" sorts before "Cat" so its variant 0 is kept.
	if len(errs) != 1 {
		t.Fatalf("Build: want 1 error, got %v", errs)
	}
	var verr *index.VariantError
	if !errors.As(errs[0], &verr) || !errors.Is(errs[0], index.ErrDuplicateVariant) {
		t.Fatalf("Build: unexpected error: %v", errs[0])
	}
	if diff := cmp.Diff(&index.VariantError{Word: "cat", Variant: 0, Err: index.ErrDuplicateVariant}, verr, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("VariantError (-want, +got):\n%s", diff)
	}

	var numbers []int
	for _, v := range idx.Lookup("cat") {
		numbers = append(numbers, v.Number)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, numbers); diff != "" {
		t.Errorf("variant numbers (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"cat", "hat"}, idx.WordsWithSuffix(index.OneSyllable, "AET")); diff != "" {
		t.Errorf("WordsWithSuffix (-want, +got):\n%s", diff)
	}
}

func TestIndex_concurrent(t *testing.T) {
	t.Parallel()

	idx := testutil.Index(t, testutil.Words...)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if len(idx.WordsWithSuffix(index.OneSyllable, "AET")) != 4 {
					t.Error("unexpected result")
					return
				}
				_ = idx.Lookup("tuesday")
			}
		}()
	}
	wg.Wait()
}
