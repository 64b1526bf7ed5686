package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matsen/doify/internal/crossref"
)

var lookupAuthor string

var lookupCmd = &cobra.Command{
	Use:   "lookup <title>",
	Short: "Query CrossRef for the top work matching a title",
	Long: `Query CrossRef for the single top-relevance work matching a title,
without touching any bibliography file.

With --author, the same match rule used during enrichment is applied:
the DOI is printed only when an author's family name scores above the
similarity threshold against the given surname.

Examples:
  doify lookup "The Structure of Scientific Revolutions"
  doify lookup "Some Title" --author Smith`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().StringVarP(&lookupAuthor, "author", "a", "", "First-author surname to validate the match against")
}

func runLookup(cmd *cobra.Command, args []string) error {
	title := args[0]
	client := newClient()
	ctx := cmd.Context()

	if lookupAuthor != "" {
		doi, err := client.FindDOI(ctx, title, lookupAuthor)
		if err != nil {
			if crossref.IsNoMatch(err) {
				fmt.Println("DOI not found or authors didn't match.")
				os.Exit(ExitError)
			}
			log.Error(err)
			os.Exit(ExitAPIError)
		}
		fmt.Println(doi)
		return nil
	}

	work, err := client.SearchTitle(ctx, title)
	if err != nil {
		if errors.Is(err, crossref.ErrNoResults) {
			fmt.Println("No results.")
			os.Exit(ExitError)
		}
		log.Error(err)
		os.Exit(ExitAPIError)
	}

	printWork(work)
	return nil
}

func printWork(w *crossref.Work) {
	if len(w.Title) > 0 {
		fmt.Printf("Title:   %s\n", w.Title[0])
	}
	if len(w.Authors) > 0 {
		var names []string
		for _, a := range w.Authors {
			names = append(names, strings.TrimSpace(a.Given+" "+a.Family))
		}
		fmt.Printf("Authors: %s\n", strings.Join(names, ", "))
	}
	if year := w.Year(); year != 0 {
		fmt.Printf("Year:    %d\n", year)
	}
	if len(w.ContainerTitle) > 0 {
		fmt.Printf("Venue:   %s\n", w.ContainerTitle[0])
	}
	fmt.Printf("DOI:     %s\n", w.DOI)
}
