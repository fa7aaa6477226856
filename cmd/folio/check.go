package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/folio/internal/bibtex"
	"github.com/matsen/folio/internal/content"
	"github.com/matsen/folio/internal/pdf"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify site content",
	Long: `Verify site content, checking for missing sources and PDFs, BibTeX parse
warnings, duplicate publication ids and duplicate DOIs.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status       string       `json:"status"`
	Pages        int          `json:"pages"`
	Publications int          `json:"publications"`
	Issues       []CheckIssue `json:"issues"`
}

// CheckIssue represents a single issue found during check.
type CheckIssue struct {
	Type     string   `json:"type"`
	Page     string   `json:"page,omitempty"`
	ID       string   `json:"id,omitempty"`
	IDs      []string `json:"ids,omitempty"`
	DOI      string   `json:"doi,omitempty"`
	Expected string   `json:"expected,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	root, cfg, loader := mustOpenSite()

	result := checkSite(loader, cfg.PublicPath(root))

	if !humanOutput {
		outputJSON(result)
	} else {
		outputHuman("Checked %d pages, %d publications\n", result.Pages, result.Publications)
		if len(result.Issues) == 0 {
			outputHuman("No issues found\n")
		}
		for _, issue := range result.Issues {
			outputHuman("  %s\n", formatIssue(issue))
		}
	}

	if len(result.Issues) > 0 {
		os.Exit(ExitDataError)
	}
	return nil
}

// checkSite inspects every page config under the loader's directory.
func checkSite(loader *content.Loader, publicDir string) CheckResult {
	result := CheckResult{Status: "ok", Issues: []CheckIssue{}}
	idx := bibtex.NewIndex()
	doiKeys := make(map[string][]string)
	loaded := make(map[string]bool)

	pages, err := loader.Pages()
	if err != nil {
		result.Issues = append(result.Issues, CheckIssue{Type: "unreadable_content", Reason: err.Error()})
	}

	for _, name := range pages {
		result.Pages++
		typ, _ := loader.PageType(name)

		switch typ {
		case content.PagePublication:
			page, ok := loader.PublicationPage(name)
			if !ok {
				continue
			}
			if !fileExists(loader.Dir, page.Source) {
				result.Issues = append(result.Issues, CheckIssue{Type: "missing_source", Page: name, Expected: page.Source})
				continue
			}
			// Pages sharing a source list the same publications
			key := filepath.Clean(filepath.FromSlash(page.Source))
			if loaded[key] {
				continue
			}
			loaded[key] = true
			src := loader.LoadSource(page.Source)
			for _, w := range src.Warnings {
				result.Issues = append(result.Issues, CheckIssue{Type: "parse_warning", Page: name, Reason: w.Error()})
			}
			for _, p := range src.Publications {
				result.Publications++
				doi := ""
				if p.DOI != nil {
					doi = *p.DOI
				}
				if existing, dup := idx.Add(p.ID, doi); dup {
					norm := bibtex.NormalizeDOI(doi)
					if len(doiKeys[norm]) == 0 {
						doiKeys[norm] = []string{existing}
					}
					doiKeys[norm] = append(doiKeys[norm], p.ID)
				}
			}

		case content.PageText:
			page, ok := loader.TextPage(name)
			if !ok {
				continue
			}
			if !fileExists(loader.Dir, page.Source) {
				result.Issues = append(result.Issues, CheckIssue{Type: "missing_source", Page: name, Expected: page.Source})
			}
			if page.PDF != "" {
				if _, err := pdf.ResolvePath(publicDir, page.PDF); err != nil {
					result.Issues = append(result.Issues, CheckIssue{Type: "missing_pdf", Page: name, Expected: page.PDF})
				}
			}
		}
	}

	dupKeys := idx.DuplicateKeys()
	sort.Strings(dupKeys)
	for _, key := range dupKeys {
		result.Issues = append(result.Issues, CheckIssue{Type: "duplicate_id", ID: key})
	}

	dois := make([]string, 0, len(doiKeys))
	for doi := range doiKeys {
		dois = append(dois, doi)
	}
	sort.Strings(dois)
	for _, doi := range dois {
		result.Issues = append(result.Issues, CheckIssue{Type: "duplicate_doi", DOI: doi, IDs: doiKeys[doi]})
	}

	if len(result.Issues) > 0 {
		result.Status = "issues_found"
	}
	return result
}

func fileExists(dir, name string) bool {
	if name == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
	return err == nil && !info.IsDir()
}

func formatIssue(issue CheckIssue) string {
	switch issue.Type {
	case "missing_source":
		return fmt.Sprintf("%s: source %s not found", issue.Page, issue.Expected)
	case "missing_pdf":
		return fmt.Sprintf("%s: PDF %s not found", issue.Page, issue.Expected)
	case "parse_warning":
		return fmt.Sprintf("%s: %s", issue.Page, issue.Reason)
	case "duplicate_id":
		return fmt.Sprintf("duplicate publication id %s", issue.ID)
	case "duplicate_doi":
		return fmt.Sprintf("DOI %s shared by %s", issue.DOI, strings.Join(issue.IDs, ", "))
	}
	return fmt.Sprintf("%s: %s", issue.Type, issue.Reason)
}
