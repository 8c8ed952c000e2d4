// Package storage persists the whole ledger, either as a JSON file or in SQLite.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"moneybook/internal/core"
)

// DefaultLedgerFile is the file used when no path is configured.
const DefaultLedgerFile = "transactions.json"

// ErrNotFound means there is no saved ledger yet. Callers start empty.
var ErrNotFound = errors.New("ledger not found")

// ParseError reports a persisted ledger that cannot be decoded.
// Index is the offending record, or -1 when the document itself is malformed.
type ParseError struct {
	Path  string
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parse %s: record %d: %v", e.Path, e.Index, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// record mirrors core.Transaction with pointer fields so absent and null
// values can be told apart from zero values.
type record struct {
	Date        *string  `json:"date"`
	Kind        *string  `json:"type"`
	Category    *string  `json:"category"`
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
}

func (r record) transaction() (core.Transaction, error) {
	switch {
	case r.Date == nil:
		return core.Transaction{}, errors.New(`missing field "date"`)
	case r.Kind == nil:
		return core.Transaction{}, errors.New(`missing field "type"`)
	case r.Category == nil:
		return core.Transaction{}, errors.New(`missing field "category"`)
	case r.Amount == nil:
		return core.Transaction{}, errors.New(`missing field "amount"`)
	case r.Description == nil:
		return core.Transaction{}, errors.New(`missing field "description"`)
	}
	return core.NewTransaction(*r.Date, *r.Kind, *r.Category, *r.Amount, *r.Description)
}

// LoadFile reads the ledger stored at path.
//
// A missing file yields an empty ledger together with ErrNotFound.
// Content that is not a JSON array of complete transaction objects
// yields a *ParseError.
func LoadFile(path string) ([]core.Transaction, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger file: %w", err)
	}
	return decode(path, data)
}

func decode(path string, data []byte) ([]core.Transaction, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &ParseError{Path: path, Index: -1, Err: err}
	}
	if raws == nil {
		// literal null
		return nil, &ParseError{Path: path, Index: -1, Err: errors.New("expected a JSON array")}
	}

	out := make([]core.Transaction, 0, len(raws))
	for i, raw := range raws {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, &ParseError{Path: path, Index: i, Err: errors.New("expected an object")}
		}
		var r record
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, &ParseError{Path: path, Index: i, Err: err}
		}
		t, err := r.transaction()
		if err != nil {
			return nil, &ParseError{Path: path, Index: i, Err: err}
		}
		out = append(out, t)
	}
	return out, nil
}

// SaveFile writes the whole ledger to path, replacing previous content.
// The data goes to a temporary file in the same directory which is then
// renamed over path, so an interrupted save leaves the old file intact.
func SaveFile(path string, txs []core.Transaction) error {
	if txs == nil {
		txs = []core.Transaction{}
	}
	data, err := json.MarshalIndent(txs, "", "    ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace ledger file: %w", err)
	}
	return nil
}

// JSONFile is a ledger persisted as a single JSON document.
type JSONFile struct {
	Path string
}

func NewJSONFile(path string) *JSONFile {
	if path == "" {
		path = DefaultLedgerFile
	}
	return &JSONFile{Path: path}
}

func (f *JSONFile) Load(_ context.Context) ([]core.Transaction, error) {
	return LoadFile(f.Path)
}

func (f *JSONFile) Save(_ context.Context, txs []core.Transaction) error {
	return SaveFile(f.Path, txs)
}

// Location returns the file path, for messages.
func (f *JSONFile) Location() string {
	return f.Path
}

func (f *JSONFile) Close() error {
	return nil
}
