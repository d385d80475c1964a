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

// Package phone classifies phonetic symbols.
//
// Pronouncing dictionaries such as the CMU Pronouncing Dictionary describe
// words as sequences of phones written in ARPAbet, e.g. "K AE1 T" for "cat".
// Vowel phones may carry a trailing stress digit:
//  1. 0 marks no stress.
//  2. 1 marks primary stress.
//  3. 2 marks secondary stress.
//
// The symbol with its stress digit removed is called the root. A Classifier
// maps roots to their Category. Category tables are read from a .phones file
// which contains one tab separated symbol and category name per line.
package phone
