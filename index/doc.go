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

// Package index implements the rhyme index of a pronouncing dictionary.
//
// The index maps each word to its pronunciation variants and maps the last
// one, two and three rhyme syllables of every variant back to the words that
// end with them. An Index is built once by [Build] and is read-only after
// that, so it can be shared by any number of goroutines. To refresh the
// dictionary, build a new Index and publish it in place of the old one.
package index
