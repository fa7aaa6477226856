package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/folio/internal/bibtex"
	"github.com/matsen/folio/internal/clipboard"
	"github.com/matsen/folio/internal/publication"
	"github.com/matsen/folio/internal/storage"
)

var (
	citeSource string
	citeCopy   bool
)

func init() {
	citeCmd.Flags().StringVarP(&citeSource, "source", "s", "", "Look the publication up in this source only")
	citeCmd.Flags().BoolVarP(&citeCopy, "copy", "c", false, "Copy the citation to the clipboard")
	rootCmd.AddCommand(citeCmd)
}

var citeCmd = &cobra.Command{
	Use:   "cite ID|DOI",
	Short: "Print a publication's BibTeX citation",
	Long: `Print the BibTeX citation of a publication.

BibTeX sources give the entry as written, minus display-only fields.
TOML sources get an entry generated from the publication metadata.
The publication is looked up by id first, then by DOI.`,
	Args: cobra.ExactArgs(1),
	RunE: runCite,
}

// CiteResponse is the response for the cite command.
type CiteResponse struct {
	ID     string `json:"id"`
	Bibtex string `json:"bibtex"`
	Copied bool   `json:"copied"`
}

func runCite(cmd *cobra.Command, args []string) error {
	_, _, loader := mustOpenSite()

	if citeCopy && !clipboard.IsAvailable() {
		exitWithError(ExitError, "no clipboard command available (install wl-copy, xclip or xsel)")
	}

	pubs := loadPublications(loader, citeSource)
	idx, ok := storage.FindByID(pubs, args[0])
	if !ok {
		idx, ok = storage.FindByDOI(pubs, args[0])
	}
	if !ok {
		exitWithError(ExitNotFound, "publication not found: %s", args[0])
	}

	text := citation(pubs[idx])

	copied := false
	if citeCopy {
		if err := clipboard.Copy(text); err != nil {
			exitWithError(ExitError, "copying to clipboard: %v", err)
		}
		copied = true
	}

	if !humanOutput {
		return outputJSON(CiteResponse{ID: pubs[idx].ID, Bibtex: text, Copied: copied})
	}
	outputHuman("%s\n", text)
	if copied {
		outputHuman("(copied to clipboard)\n")
	}
	return nil
}

// citation returns the reconstructed source entry when there is one.
func citation(p publication.Publication) string {
	if p.Bibtex != nil && *p.Bibtex != "" {
		return *p.Bibtex
	}
	return bibtex.Format(p)
}
