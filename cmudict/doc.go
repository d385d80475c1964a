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

// Package cmudict reads word files in the CMU Pronouncing Dictionary format.
//
// Each line of a word file holds a word followed by two spaces and the
// word's phone symbols separated by single spaces:
//
//	TUESDAY  T UW1 Z D IY0
//	TUESDAY(1)  T UW1 Z D EY2
//
// Alternate pronunciations of a word carry their variant number in
// parentheses. Lines starting with ";;;" are comments. Word files can be
// compressed with gzip (.gz) or dictzip (.dz).
package cmudict
