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

// Package testutil contains helpers for building test dictionaries.
package testutil

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-rhymer/cmudict"
	"github.com/ianlewis/go-rhymer/index"
	"github.com/ianlewis/go-rhymer/phone"
)

// MakeWordsOptions are options for MakeTempWords.
type MakeWordsOptions struct {
	// Gzip indicates that the file should be compressed with gzip.
	Gzip bool

	// DictZip indicates that the file should be compressed with dictzip.
	DictZip bool
}

// GetExt returns the file extension matching the compression options.
func (o *MakeWordsOptions) GetExt() string {
	if o != nil {
		if o.DictZip {
			return ".dz"
		}
		if o.Gzip {
			return ".gz"
		}
	}
	return ".txt"
}

// MakeWords makes word file data for the given lines. A comment header is
// prepended like in the CMU dictionary files.
func MakeWords(lines ...string) []byte {
	var b bytes.Buffer
	b.WriteString(";;; # test dictionary\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// MakeTempWords writes a word file for the given lines to a temporary
// directory and returns its path.
func MakeTempWords(t *testing.T, lines []string, opts *MakeWordsOptions) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "words"+opts.GetExt())
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	data := MakeWords(lines...)
	switch {
	case opts != nil && opts.DictZip:
		z, err := dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := z.Write(data); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	case opts != nil && opts.Gzip:
		z := gzip.NewWriter(f)
		if _, err := z.Write(data); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	default:
		if _, err := f.Write(data); err != nil {
			t.Fatal(err)
		}
	}

	return path
}

// Dictionary parses word file lines into a dictionary.
func Dictionary(t *testing.T, lines ...string) map[string][]index.Variant {
	t.Helper()

	words, err := cmudict.Read(bytes.NewReader(MakeWords(lines...)))
	if err != nil {
		t.Fatalf("cmudict.Read: %v", err)
	}
	return words
}

// Index builds an index of the given word file lines using the CMU phones.
// The test fails if the index reports any errors.
func Index(t *testing.T, lines ...string) *index.Index {
	t.Helper()

	idx, errs := index.Build(phone.CMU(), Dictionary(t, lines...), nil)
	if len(errs) > 0 {
		var msgs []string
		for _, err := range errs {
			msgs = append(msgs, err.Error())
		}
		t.Fatalf("index.Build:\n%s", strings.Join(msgs, "\n"))
	}
	return idx
}

// Words is a small dictionary used across tests.
var Words = []string{
	"CAT  K AE1 T",
	"HAT  HH AE1 T",
	"BAT  B AE1 T",
	"KITCAT  K IH1 T K AE2 T",
	"RECUPERATE  R IH0 K UW1 P ER0 EY2 T",
	"REDECORATE  R IY0 D EH1 K ER0 EY2 T",
	"DECORATE  D EH1 K ER0 EY2 T",
	"RHYME  R AY1 M",
	"PARADIGM  P EH1 R AH0 D AY2 M",
	"TIME  T AY1 M",
	"LOW  L OW1",
	"HELLO  HH AH0 L OW1",
	"HELLO(1)  HH EH0 L OW1",
	"GROW  G R OW1",
	"BELGO  B EH1 L G OW2",
	"TUESDAY  T UW1 Z D IY0",
	"TUESDAY(1)  T UW1 Z D EY2",
	"MONDAY  M AH1 N D IY0",
	"SUNDAY  S AH1 N D EY2",
}
