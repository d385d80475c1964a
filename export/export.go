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

package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"

	// Database drivers.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/ianlewis/go-rhymer/index"
)

// Table is the name of the exported table.
const Table = "word_variants"

// DefaultBatchSize is the default number of rows inserted per statement.
const DefaultBatchSize = 1000

// ErrUnsupportedDriver indicates that a database driver is not supported.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// columns are the columns of Table in insert order.
var columns = []string{
	"word",
	"variant_number",
	"last_syllable",
	"last_two_syllables",
	"last_three_syllables",
	"stressed_tail",
}

const createTable = `CREATE TABLE ` + Table + ` (
	word TEXT NOT NULL,
	variant_number INTEGER NOT NULL,
	last_syllable TEXT,
	last_two_syllables TEXT,
	last_three_syllables TEXT,
	stressed_tail TEXT,
	PRIMARY KEY (word, variant_number)
)`

// Dialect is a SQL dialect.
type Dialect int

const (
	// SQLite uses ? placeholders.
	SQLite Dialect = iota

	// Postgres uses $n placeholders.
	Postgres
)

// DialectFor returns the dialect for the given driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "sqlite":
		return SQLite, nil
	case "pgx":
		return Postgres, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

func (d Dialect) builder() squirrel.StatementBuilderType {
	if d == Postgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// OpenDB opens a database using the given driver. Supported drivers are
// "sqlite" and "pgx".
func OpenDB(driver, dsn string) (*sql.DB, error) {
	if _, err := DialectFor(driver); err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}
	return db, nil
}

// Options are options for Export.
type Options struct {
	// Dialect is the SQL dialect of the database.
	Dialect Dialect

	// BatchSize is the number of rows inserted per statement. Zero selects
	// DefaultBatchSize.
	BatchSize int

	// Logger receives progress messages. Nothing is logged if nil.
	Logger *slog.Logger
}

// DefaultOptions is the default options for Export.
var DefaultOptions = &Options{
	Dialect:   SQLite,
	BatchSize: DefaultBatchSize,
}

// Export replaces the contents of Table in db with the variants in idx. All
// changes are made in a single transaction. It returns the number of rows
// written.
func Export(ctx context.Context, db *sql.DB, idx *index.Index, opts *Options) (int, error) {
	if opts == nil {
		opts = DefaultOptions
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op.
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+Table); err != nil {
		return 0, fmt.Errorf("dropping %s: %w", Table, err)
	}
	if _, err := tx.ExecContext(ctx, createTable); err != nil {
		return 0, fmt.Errorf("creating %s: %w", Table, err)
	}

	sb := opts.Dialect.builder()
	insert := sb.Insert(Table).Columns(columns...)
	pending := 0
	total := 0
	flush := func() error {
		if pending == 0 {
			return nil
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("building insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting into %s: %w", Table, err)
		}
		total += pending
		logger.DebugContext(ctx, "exported batch", slog.Int("rows", pending), slog.Int("total", total))
		insert = sb.Insert(Table).Columns(columns...)
		pending = 0
		return nil
	}

	for _, word := range idx.Words() {
		for _, v := range idx.Lookup(word) {
			insert = insert.Values(row(word, &v)...)
			pending++
			if pending == batchSize {
				if err := flush(); err != nil {
					return 0, err
				}
			}
		}
	}
	if err := flush(); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing export: %w", err)
	}

	logger.InfoContext(ctx, "export complete",
		slog.String("table", Table),
		slog.Int("words", idx.Len()),
		slog.Int("rows", total),
	)
	return total, nil
}

func row(word string, v *index.Variant) []any {
	values := []any{word, v.Number}
	for _, n := range index.SuffixLengths() {
		key, ok := v.SuffixKey(n)
		values = append(values, sql.NullString{String: key, Valid: ok})
	}
	return append(values, sql.NullString{String: v.StressedTail, Valid: v.StressedTail != ""})
}
