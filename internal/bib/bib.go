// Package bib reads and writes BibTeX files and provides guarded
// accessors over entry fields. The parsed collection is mutated in
// place so untouched fields and entries round-trip unchanged.
package bib

import (
	"fmt"
	"os"
	"strings"

	"github.com/nickng/bibtex"

	"github.com/matsen/doify/internal/names"
)

// Read parses a BibTeX file.
func Read(path string) (*bibtex.BibTex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	lib, err := bibtex.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return lib, nil
}

// Write serializes a BibTeX collection to a file.
func Write(path string, lib *bibtex.BibTex) error {
	if err := os.WriteFile(path, []byte(lib.PrettyString()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Field returns an entry field's value, or "" when absent.
func Field(entry *bibtex.BibEntry, name string) string {
	if v, ok := lookup(entry, name); ok {
		return v.String()
	}
	return ""
}

// HasField reports whether an entry has a field.
func HasField(entry *bibtex.BibEntry, name string) bool {
	_, ok := lookup(entry, name)
	return ok
}

// lookup finds a field by name. BibTeX field names are
// case-insensitive, but the parser preserves the written case, so a
// miss on the exact key falls back to a case-folded scan.
func lookup(entry *bibtex.BibEntry, name string) (bibtex.BibString, bool) {
	if v, ok := entry.Fields[name]; ok {
		return v, true
	}
	for k, v := range entry.Fields {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

// SetField sets an entry field to a literal value.
func SetField(entry *bibtex.BibEntry, name, value string) {
	entry.Fields[name] = bibtex.NewBibConst(value)
}

// FirstAuthorSurname returns the first surname component of the
// entry's first author. Reports false when the entry has no author
// field or the field yields no usable surname.
func FirstAuthorSurname(entry *bibtex.BibEntry) (string, bool) {
	return names.FirstSurname(Field(entry, "author"))
}
