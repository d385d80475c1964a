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

package folding

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/text/transform"
)

func TestWhitespaceFolder_Transform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   []byte
		dst   []byte
		atEOF bool

		expected []byte
		nDst     int
		nSrc     int
		err      error
	}{
		{
			name:  "leading and trailing whitespace",
			src:   []byte(" \t\u3000foo \t"),
			dst:   make([]byte, 5),
			atEOF: true,

			expected: []byte{'f', 'o', 'o', 0, 0},
			nDst:     3,
			nSrc:     10,
		},
		{
			name:  "internal spans",
			src:   []byte("foo \t bar\u3000baz"),
			dst:   make([]byte, 11),
			atEOF: true,

			expected: []byte("foo bar baz"),
			nDst:     11,
			nSrc:     15,
		},
		{
			name:  "short dst",
			src:   []byte("foo  bar"),
			dst:   make([]byte, 4),
			atEOF: true,

			expected: []byte{'f', 'o', 'o', 0},
			nDst:     3,
			nSrc:     5,
			err:      transform.ErrShortDst,
		},
		{
			name:  "short src",
			src:   []byte("foo\u3000")[:4],
			dst:   make([]byte, 8),
			atEOF: false,

			expected: []byte{'f', 'o', 'o', 0, 0, 0, 0, 0},
			nDst:     3,
			nSrc:     3,
			err:      transform.ErrShortSrc,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			w := WhitespaceFolder{}
			nDst, nSrc, err := w.Transform(test.dst, test.src, test.atEOF)
			if diff := cmp.Diff(test.nDst, nDst); diff != "" {
				t.Fatalf("nDst (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.nSrc, nSrc); diff != "" {
				t.Fatalf("nSrc (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("err (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.expected, test.dst); diff != "" {
				t.Fatalf("dst (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		expected string
	}{
		{in: "Recuperate", expected: "recuperate"},
		{in: "  PUPPY\n", expected: "puppy"},
		{in: "ice   CREAM", expected: "ice cream"},
		{in: "d'artagnan", expected: "d'artagnan"},
		{in: "", expected: ""},
		{in: "\t", expected: ""},
		{in: "GRÜSSEN", expected: "grüssen"},
		{in: "o'NEIL  \u3000 ", expected: "o'neil"},
	}
	for _, test := range tests {
		got, err := String(Word, test.in)
		if err != nil {
			t.Fatalf("String(%q): %v", test.in, err)
		}
		if diff := cmp.Diff(test.expected, got); diff != "" {
			t.Errorf("String(%q) (-want, +got):\n%s", test.in, diff)
		}
	}
}
