package bib

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleBib = `@article{Smith2019-ab,
  title = {Some Title},
  author = {John Smith and Jane Doe},
  journal = {Journal of Examples},
  year = {2019}
}

@book{Knuth1984-tx,
  title = {The TeXbook},
  author = {Knuth, Donald E.},
  year = {1984},
  doi = {10.5555/1096000}
}
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "refs.bib")
	if err := os.WriteFile(path, []byte(sampleBib), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFields(t *testing.T) {
	lib, err := Read(writeSample(t))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(lib.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(lib.Entries))
	}

	e := lib.Entries[0]
	if got := Field(e, "title"); got != "Some Title" {
		t.Errorf("title = %q, want %q", got, "Some Title")
	}
	if got := Field(e, "doi"); got != "" {
		t.Errorf("doi = %q, want empty", got)
	}
	if HasField(e, "doi") {
		t.Error("HasField(doi) = true for entry without a DOI")
	}
	if !HasField(lib.Entries[1], "doi") {
		t.Error("HasField(doi) = false for entry with a DOI")
	}
}

func TestFieldNameCaseInsensitive(t *testing.T) {
	// Field names are case-insensitive in BibTeX, but the parser keeps
	// the written case; an entry with DOI = {...} must still count as
	// having a doi.
	const caseBib = `@article{Kuhn1962-sr,
  Title = {The Structure of Scientific Revolutions},
  Author = {Thomas S. Kuhn},
  DOI = {10.7208/chicago/9780226458106.001.0001},
  Year = {1962}
}
`
	path := filepath.Join(t.TempDir(), "case.bib")
	if err := os.WriteFile(path, []byte(caseBib), 0o644); err != nil {
		t.Fatal(err)
	}
	lib, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	e := lib.Entries[0]

	tests := []struct {
		name string
		want string
	}{
		{"title", "The Structure of Scientific Revolutions"},
		{"author", "Thomas S. Kuhn"},
		{"doi", "10.7208/chicago/9780226458106.001.0001"},
		{"DOI", "10.7208/chicago/9780226458106.001.0001"},
		{"year", "1962"},
		{"volume", ""},
	}
	for _, tt := range tests {
		if got := Field(e, tt.name); got != tt.want {
			t.Errorf("Field(%q) = %q, want %q", tt.name, got, tt.want)
		}
		if got := HasField(e, tt.name); got != (tt.want != "") {
			t.Errorf("HasField(%q) = %v, want %v", tt.name, got, tt.want != "")
		}
	}

	if got, ok := FirstAuthorSurname(e); !ok || got != "Kuhn" {
		t.Errorf("FirstAuthorSurname = (%q, %v), want (Kuhn, true)", got, ok)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "absent.bib")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSetFieldRoundTrip(t *testing.T) {
	path := writeSample(t)
	lib, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	SetField(lib.Entries[0], "doi", "10.1/X")

	out := filepath.Join(t.TempDir(), "out.bib")
	if err := Write(out, lib); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Read(out)
	if err != nil {
		t.Fatalf("Read(out) error = %v", err)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("entries after round trip = %d, want 2", len(got.Entries))
	}
	if doi := Field(got.Entries[0], "doi"); doi != "10.1/X" {
		t.Errorf("doi = %q, want %q", doi, "10.1/X")
	}
	// Untouched entry passes through.
	if doi := Field(got.Entries[1], "doi"); doi != "10.5555/1096000" {
		t.Errorf("existing doi = %q, want unchanged", doi)
	}
	if !strings.Contains(Field(got.Entries[1], "author"), "Knuth") {
		t.Errorf("author field lost in round trip: %q", Field(got.Entries[1], "author"))
	}
}

func TestFirstAuthorSurname(t *testing.T) {
	lib, err := Read(writeSample(t))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got, ok := FirstAuthorSurname(lib.Entries[0]); !ok || got != "Smith" {
		t.Errorf("FirstAuthorSurname = (%q, %v), want (Smith, true)", got, ok)
	}
	if got, ok := FirstAuthorSurname(lib.Entries[1]); !ok || got != "Knuth" {
		t.Errorf("FirstAuthorSurname = (%q, %v), want (Knuth, true)", got, ok)
	}
}
