// Package kanji loads and persists kanji data documents.
package kanji

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/kanjiq/internal/fsutil"
	"github.com/verte-zerg/kanjiq/internal/model"
	"github.com/verte-zerg/kanjiq/internal/selection"
)

//go:embed kanji.json
var seedData []byte

// SeedName labels the embedded dataset in messages.
const SeedName = "<embedded>"

// Document is the on-disk data file: a category selection plus the record list.
type Document struct {
	SelectedCategory selection.Spec `json:"selected_category" yaml:"selected_category"`
	Kanji            []model.Record `json:"kanji" yaml:"kanji"`
}

// ParseError reports a data document that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Format is a document encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForPath picks the encoding from the file extension. JSON is the default.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Seed returns the embedded default dataset.
func Seed() (Document, error) {
	return Decode(seedData, FormatJSON, SeedName)
}

// LoadDocument reads and decodes the document at path.
func LoadDocument(path string) (Document, error) {
	if path == "" {
		return Document{}, fmt.Errorf("data path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read data file: %w", err)
	}
	return Decode(data, FormatForPath(path), path)
}

// Decode parses a document. name is used in error messages.
func Decode(data []byte, format Format, name string) (Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return Document{}, &ParseError{Path: name, Err: err}
	}
	return doc, nil
}

// Encode serializes a document.
func Encode(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	default:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

// ApplySelection returns a copy of doc with the selection replaced. The
// record list is carried over unchanged.
func (d Document) ApplySelection(spec selection.Spec) Document {
	records := make([]model.Record, len(d.Kanji))
	copy(records, d.Kanji)
	return Document{SelectedCategory: spec, Kanji: records}
}

// PersistDocument writes the whole document to path, replacing it atomically.
func PersistDocument(path string, doc Document) error {
	data, err := Encode(doc, FormatForPath(path))
	if err != nil {
		return fmt.Errorf("failed to encode data file: %w", err)
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	return nil
}
