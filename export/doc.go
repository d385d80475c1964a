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

// Package export writes the word table of a rhyme index to a SQL database.
//
// The exported table holds one row per pronunciation variant:
//
//	word_variants(word, variant_number, last_syllable, last_two_syllables,
//	    last_three_syllables, stressed_tail)
//
// Suffix keys that are not defined for a variant are stored as NULL.
package export
