// Package enrich walks a bibliography and fills in missing DOI fields
// from a metadata registry.
package enrich

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/nickng/bibtex"

	"github.com/matsen/doify/internal/bib"
	"github.com/matsen/doify/internal/crossref"
)

// Resolver resolves a DOI for a title, validated against an author
// surname. Implemented by crossref.Client; substituted in tests.
type Resolver interface {
	FindDOI(ctx context.Context, title, author string) (string, error)
}

// Report summarizes one enrichment run.
type Report struct {
	Processed int // all entries in the file
	Updated   int // entries whose doi field was written
	Skipped   int // entries missing a title or a usable author
}

// Run processes entries sequentially, one blocking registry query per
// entry lacking a DOI. Every per-entry failure is logged and recovered;
// the walk always completes. No entry is queried more than once.
func Run(ctx context.Context, lib *bibtex.BibTex, resolver Resolver, logger *log.Logger) Report {
	var report Report
	for i, entry := range lib.Entries {
		report.Processed++
		entryLog := logger.WithPrefix(fmt.Sprintf("%03d: %s", i, entry.CiteName))

		if bib.HasField(entry, "doi") {
			continue
		}

		title := bib.Field(entry, "title")
		if title == "" {
			entryLog.Warn("skipped: no title")
			report.Skipped++
			continue
		}
		author, ok := bib.FirstAuthorSurname(entry)
		if !ok {
			entryLog.Warn("skipped: no author")
			report.Skipped++
			continue
		}

		doi, err := resolver.FindDOI(ctx, title, author)
		switch {
		case err == nil:
			bib.SetField(entry, "doi", doi)
			report.Updated++
			entryLog.Infof("Got DOI %s", doi)
		case crossref.IsNoMatch(err):
			entryLog.Info("DOI not found or authors didn't match.")
		default:
			entryLog.Errorf("looking up %q: %v", title, err)
		}
	}
	return report
}
