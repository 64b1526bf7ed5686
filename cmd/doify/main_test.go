package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/matsen/doify/internal/bib"
	"github.com/matsen/doify/internal/config"
)

const registryResponse = `{
	"message": {
		"items": [
			{
				"DOI": "10.1/X",
				"title": ["Some Title"],
				"author": [{"given": "John", "family": "Smith"}]
			}
		]
	}
}`

const inputBib = `@article{Smith2019-ab,
  title = {Some Title},
  author = {John Smith},
  year = {2019}
}

@book{Knuth1984-tx,
  title = {The TeXbook},
  author = {Knuth, Donald E.},
  year = {1984},
  doi = {10.5555/1096000}
}
`

func TestEnrichEndToEnd(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if got := r.URL.Query().Get("query.title"); got != "Some Title" {
			t.Errorf("query.title = %q, want %q", got, "Some Title")
		}
		_, _ = w.Write([]byte(registryResponse))
	}))
	t.Cleanup(server.Close)

	t.Setenv("DOIFY_API_URL", server.URL)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.bib")
	outPath := filepath.Join(dir, "out.bib")
	if err := os.WriteFile(inPath, []byte(inputBib), 0o644); err != nil {
		t.Fatal(err)
	}

	rootCmd.SetArgs([]string{inPath, outPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// Only the DOI-less entry hits the registry.
	if requests != 1 {
		t.Errorf("registry requests = %d, want 1", requests)
	}

	lib, err := bib.Read(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(lib.Entries) != 2 {
		t.Fatalf("output entries = %d, want 2", len(lib.Entries))
	}
	if doi := bib.Field(lib.Entries[0], "doi"); doi != "10.1/X" {
		t.Errorf("enriched doi = %q, want %q", doi, "10.1/X")
	}
	if doi := bib.Field(lib.Entries[1], "doi"); doi != "10.5555/1096000" {
		t.Errorf("existing doi = %q, want unchanged", doi)
	}
	if got := bib.Field(lib.Entries[1], "year"); got != "1984" {
		t.Errorf("year field = %q, want passed through", got)
	}
}

func TestEnrichMissingInputFatal(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	dir := t.TempDir()
	rootCmd.SetArgs([]string{filepath.Join(dir, "absent.bib"), filepath.Join(dir, "out.bib")})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for missing input file")
	}
}
