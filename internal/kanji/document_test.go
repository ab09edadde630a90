package kanji

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/kanjiq/internal/model"
	"github.com/verte-zerg/kanjiq/internal/selection"
)

const sampleDoc = `{
  "selected_category": "jlptn5",
  "kanji": [
    {"category": "jlptn5", "character": "食", "onyomi": "ショク", "kunyomi": "た.べる", "meaning": "to eat, to consume"},
    {"category": "jlptn3", "character": "政", "onyomi": "セイ", "kunyomi": "まつりごと", "meaning": "politics"}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDocument(t *testing.T) {
	path := writeFile(t, "kanji.json", sampleDoc)
	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !doc.SelectedCategory.Equal(selection.Of("jlptn5")) {
		t.Fatalf("unexpected selection: %v", doc.SelectedCategory)
	}
	want := model.Record{Category: "jlptn5", Character: "食", Onyomi: "ショク", Kunyomi: "た.べる", Meaning: "to eat, to consume"}
	if len(doc.Kanji) != 2 || doc.Kanji[0] != want {
		t.Fatalf("unexpected records: %+v", doc.Kanji)
	}
}

func TestLoadDocumentYAML(t *testing.T) {
	content := `selected_category: [jlptn1, jlptn2]
kanji:
  - category: jlptn1
    character: 氏
    onyomi: シ
    kunyomi: うじ
    meaning: family name, surname
`
	path := writeFile(t, "kanji.yaml", content)
	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !doc.SelectedCategory.Equal(selection.Of("jlptn1", "jlptn2")) {
		t.Fatalf("unexpected selection: %v", doc.SelectedCategory)
	}
	if len(doc.Kanji) != 1 || doc.Kanji[0].Meaning != "family name, surname" {
		t.Fatalf("unexpected records: %+v", doc.Kanji)
	}
}

func TestLoadDocumentParseError(t *testing.T) {
	path := writeFile(t, "kanji.json", `{"kanji": [`)
	_, err := LoadDocument(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Path != path {
		t.Fatalf("unexpected path in error: %s", parseErr.Path)
	}
}

func TestLoadDocumentInvalidRangeIsParseError(t *testing.T) {
	path := writeFile(t, "kanji.json", `{"selected_category": "3-1-2", "kanji": []}`)
	_, err := LoadDocument(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	var rangeErr *selection.InvalidRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected wrapped InvalidRangeError, got %v", err)
	}
}

func TestLoadDocumentLevelOutOfRangeIsParseError(t *testing.T) {
	for name, content := range map[string]string{
		"kanji.json": `{"selected_category": "1-9223372036854775807", "kanji": []}`,
		"kanji.yaml": "selected_category: \"0-7\"\nkanji: []\n",
	} {
		_, err := LoadDocument(writeFile(t, name, content))
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("%s: expected ParseError, got %v", name, err)
		}
		var rangeErr *selection.InvalidRangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("%s: expected wrapped InvalidRangeError, got %v", name, err)
		}
	}
}

func TestLoadDocumentMissingFile(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestPersistRoundTrip(t *testing.T) {
	for _, name := range []string{"kanji.json", "kanji.yaml"} {
		t.Run(name, func(t *testing.T) {
			src, err := Decode([]byte(sampleDoc), FormatJSON, "sample")
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			path := filepath.Join(t.TempDir(), name)
			if err := PersistDocument(path, src); err != nil {
				t.Fatalf("seed persist: %v", err)
			}

			loaded, err := LoadDocument(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			spec := selection.Of("jlptn3", "jlptn1")
			if err := PersistDocument(path, loaded.ApplySelection(spec)); err != nil {
				t.Fatalf("persist: %v", err)
			}

			reloaded, err := LoadDocument(path)
			if err != nil {
				t.Fatalf("reload: %v", err)
			}
			if !reloaded.SelectedCategory.Equal(spec) {
				t.Fatalf("selection not persisted: %v", reloaded.SelectedCategory)
			}
			if diff := cmp.Diff(loaded.Kanji, reloaded.Kanji); diff != "" {
				t.Fatalf("kanji list changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPersistNoFilterWritesNull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanji.json")
	doc := Document{Kanji: []model.Record{{Category: "jlptn5", Character: "日", Meaning: "day"}}}
	if err := PersistDocument(path, doc); err != nil {
		t.Fatalf("persist: %v", err)
	}
	loaded, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.SelectedCategory.IsNoFilter() {
		t.Fatalf("expected no filter, got %v", loaded.SelectedCategory)
	}
}

func TestApplySelectionCopies(t *testing.T) {
	doc, err := Decode([]byte(sampleDoc), FormatJSON, "sample")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	updated := doc.ApplySelection(selection.NoFilter())
	if !doc.SelectedCategory.Equal(selection.Of("jlptn5")) {
		t.Fatalf("source document selection changed")
	}
	if !updated.SelectedCategory.IsNoFilter() {
		t.Fatalf("expected updated selection")
	}
	updated.Kanji[0].Meaning = "changed"
	if doc.Kanji[0].Meaning == "changed" {
		t.Fatalf("apply selection shares the record slice")
	}
}

func TestSeed(t *testing.T) {
	doc, err := Seed()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !doc.SelectedCategory.IsNoFilter() {
		t.Fatalf("expected seed without selection")
	}
	counts := selection.Categories(doc.Kanji)
	if len(counts) != 5 {
		t.Fatalf("expected 5 levels in seed, got %v", counts)
	}
	for _, r := range doc.Kanji {
		if r.Character == "" || r.Meaning == "" {
			t.Fatalf("incomplete seed record: %+v", r)
		}
	}
}
