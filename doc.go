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

// Package rhymer finds rhyming words in a pronouncing dictionary.
//
// Words are matched on their trailing rhyme syllables. A rhyme syllable is a
// vowel followed by the consonants up to the next vowel, so "cat" (K AE1 T)
// has the single rhyme syllable "AET" and rhymes with "hat" (HH AE1 T).
// Matches are reported in three tiers:
//  1. Words sharing the last rhyme syllable.
//  2. Words sharing the last two rhyme syllables.
//  3. Words sharing the last three rhyme syllables.
//
// A word is only reported in the strongest tier it matches. Optionally, a
// strict tier reports words that share the whole pronunciation from the last
// primary stressed vowel onward.
//
// A Rhymer queries an [index.Index] built from a dictionary read with the
// cmudict package:
//
//	words, err := cmudict.Load("cmudict-0.7b")
//	if err != nil {
//		return err
//	}
//	idx, errs := index.Build(phone.CMU(), words, nil)
//	// handle errs
//	r := rhymer.New(idx, nil)
//	results := r.Query("recuperate", rhymer.Unlimited)
package rhymer
