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

package cmudict

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-rhymer/index"
)

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var err error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if cerr := r.closers[i].Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens the word file at path. Files with a .gz extension are
// decompressed with gzip and files with a .dz extension with dictzip.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		z, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("creating gzip reader for %q: %w", path, err)
		}
		return &readCloser{Reader: z, closers: []io.Closer{f, z}}, nil
	case ".dz":
		z, err := dictzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("creating dictzip reader for %q: %w", path, err)
		}
		return &readCloser{Reader: z, closers: []io.Closer{f}}, nil
	default:
		return f, nil
	}
}

// Load reads the word file at path.
func Load(path string) (map[string][]index.Variant, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	words, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return words, nil
}
