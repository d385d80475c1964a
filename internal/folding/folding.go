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

// Package folding normalizes dictionary words so that lookups are
// insensitive to case and surrounding whitespace.
package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

// WhitespaceFolder is a [transform.Transformer] that drops leading and
// trailing whitespace and replaces each internal whitespace span with a single
// ASCII space.
type WhitespaceFolder struct {
	// started is set once a non-space rune has been emitted.
	started bool

	// pending is set while inside an internal whitespace span.
	pending bool
}

// Transform implements [transform.Transformer.Transform].
func (w *WhitespaceFolder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if unicode.IsSpace(r) {
			w.pending = w.started
			nSrc += size
			continue
		}

		// NOTE: utf8.RuneLen is used rather than size because invalid input
		// is emitted as the three byte utf8.RuneError.
		need := utf8.RuneLen(r)
		if w.pending {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if w.pending {
			dst[nDst] = ' '
			nDst++
			w.pending = false
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc += size
		w.started = true
	}
	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *WhitespaceFolder) Reset() {
	*w = WhitespaceFolder{}
}

// Word returns a new transformer that folds whitespace and lower-cases its
// input. Transformers are stateful so a new one is needed for each use.
func Word() transform.Transformer {
	return transform.Chain(&WhitespaceFolder{}, cases.Lower(language.Und))
}

// String applies a new transformer returned by folder to s.
func String(folder func() transform.Transformer, s string) (string, error) {
	folded, _, err := transform.String(folder(), s)
	//nolint:wrapcheck // callers add context
	return folded, err
}
