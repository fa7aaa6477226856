package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/matsen/folio/internal/config"
	"github.com/matsen/folio/internal/content"
	"github.com/matsen/folio/internal/ingest"
)

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCheckSite(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"pubs.toml":  "type = \"publication\"\ntitle = \"Pubs\"\nsource = \"pubs.bib\"\n",
		"more.toml":  "type = \"publication\"\ntitle = \"More\"\nsource = \"more.bib\"\n",
		"gone.toml":  "type = \"publication\"\ntitle = \"Gone\"\nsource = \"gone.bib\"\n",
		"cv.toml":    "type = \"text\"\ntitle = \"CV\"\nsource = \"cv.md\"\npdf = \"/cv.pdf\"\n",
		"pubs.bib":   "@article{a, title = {A}, year = {2020}, doi = {10.1234/X}}\n@article{b, title = {B}, year = {2021}}\n",
		"more.bib":   "@article{b, title = {B again}, year = {2021}}\n@article{c, title = {C}, year = {2022}, doi = {https://doi.org/10.1234/x}}\n",
		"notes.toml": "[[publication]]\nid = \"n\"\n",
	})
	loader := content.NewLoader(dir, slog.New(slog.NewTextHandler(io.Discard, nil)), ingest.Options{})

	result := checkSite(loader, filepath.Join(dir, "public"))

	if result.Status != "issues_found" {
		t.Errorf("Status = %q, want issues_found", result.Status)
	}
	if result.Pages != 4 {
		t.Errorf("Pages = %d, want 4", result.Pages)
	}
	if result.Publications != 4 {
		t.Errorf("Publications = %d, want 4", result.Publications)
	}

	counts := make(map[string]int)
	for _, issue := range result.Issues {
		counts[issue.Type]++
		switch issue.Type {
		case "duplicate_id":
			if issue.ID != "b" {
				t.Errorf("duplicate_id ID = %q, want b", issue.ID)
			}
		case "duplicate_doi":
			if issue.DOI != "10.1234/x" || len(issue.IDs) != 2 {
				t.Errorf("duplicate_doi = %+v, want 10.1234/x shared by a and c", issue)
			}
		}
	}

	want := map[string]int{
		"missing_source": 2, // gone.bib and cv.md
		"missing_pdf":    1,
		"duplicate_id":   1,
		"duplicate_doi":  1,
	}
	for typ, n := range want {
		if counts[typ] != n {
			t.Errorf("%s issues = %d, want %d (all: %+v)", typ, counts[typ], n, result.Issues)
		}
	}
}

func TestCheckSite_Clean(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"pubs.toml": "type = \"publication\"\ntitle = \"Pubs\"\nsource = \"pubs.bib\"\n",
		"pubs.bib":  "@article{a, title = {A}, year = {2020}}\n",
	})
	loader := content.NewLoader(dir, slog.New(slog.NewTextHandler(io.Discard, nil)), ingest.Options{})

	result := checkSite(loader, dir)
	if result.Status != "ok" || len(result.Issues) != 0 {
		t.Errorf("checkSite() = %+v, want ok with no issues", result)
	}
}

func TestCheckSite_SharedSource(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"all.toml":      "type = \"publication\"\ntitle = \"All\"\nsource = \"pubs.bib\"\n",
		"selected.toml": "type = \"publication\"\ntitle = \"Selected\"\nsource = \"./pubs.bib\"\n",
		"pubs.bib":      "@article{a, title = {A}, year = {2020}, doi = {10.1234/a}}\n@article{b, title = {B}, year = {2021}}\n",
	})
	loader := content.NewLoader(dir, slog.New(slog.NewTextHandler(io.Discard, nil)), ingest.Options{})

	result := checkSite(loader, dir)
	if result.Status != "ok" || len(result.Issues) != 0 {
		t.Errorf("checkSite() = %+v, want ok with no issues", result)
	}
	if result.Pages != 2 {
		t.Errorf("Pages = %d, want 2", result.Pages)
	}
	if result.Publications != 2 {
		t.Errorf("Publications = %d, want 2", result.Publications)
	}
}

func TestLoadPublications_SharedSource(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"all.toml":      "type = \"publication\"\ntitle = \"All\"\nsource = \"pubs.bib\"\n",
		"selected.toml": "type = \"publication\"\ntitle = \"Selected\"\nsource = \"pubs.bib\"\n",
		"pubs.bib":      "@article{a, title = {A}, year = {2020}}\n@article{b, title = {B}, year = {2021}}\n",
	})
	loader := content.NewLoader(dir, slog.New(slog.NewTextHandler(io.Discard, nil)), ingest.Options{})

	pubs := loadPublications(loader, "")
	if len(pubs) != 2 || pubs[0].ID != "b" || pubs[1].ID != "a" {
		t.Errorf("loadPublications() = %+v, want b and a once each", pubs)
	}
}

func TestInitSite(t *testing.T) {
	t.Setenv(config.EnvOwner, "")
	t.Setenv(config.EnvContentDir, "")
	root := t.TempDir()

	if err := initSite(root, "Jiale Liu"); err != nil {
		t.Fatalf("initSite() error = %v", err)
	}
	if !config.IsSite(root) {
		t.Fatal("initSite() did not write folio.yml")
	}

	cfg, err := config.Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Owner != "Jiale Liu" {
		t.Errorf("Owner = %q, want %q", cfg.Owner, "Jiale Liu")
	}
	if info, err := os.Stat(cfg.ContentPath(root)); err != nil || !info.IsDir() {
		t.Errorf("content directory not created: %v", err)
	}
}
