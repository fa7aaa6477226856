// Package storage reads and writes the static JSON export.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/folio/internal/publication"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadPublications reads all publications from a JSONL file.
// A missing file yields no publications and no error.
func ReadPublications(path string) ([]publication.Publication, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening publications file: %w", err)
	}
	defer f.Close()

	var pubs []publication.Publication
	scanner := bufio.NewScanner(f)

	// Reconstructed BibTeX and abstracts make for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var pub publication.Publication
		if err := json.Unmarshal(line, &pub); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		pubs = append(pubs, pub)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading publications file: %w", err)
	}

	return pubs, nil
}

// WritePublications writes publications to a JSONL file, one per line,
// replacing existing content. Parent directories are created as needed.
func WritePublications(path string, pubs []publication.Publication) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating publications file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, pub := range pubs {
		data, err := json.Marshal(pub)
		if err != nil {
			return fmt.Errorf("encoding publication %d: %w", i, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing publication %d: %w", i, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing publications file: %w", err)
	}
	return nil
}

// FindByID searches for a publication by ID.
func FindByID(pubs []publication.Publication, id string) (int, bool) {
	for i, pub := range pubs {
		if pub.ID == id {
			return i, true
		}
	}
	return -1, false
}

// FindByDOI searches for a publication by DOI.
func FindByDOI(pubs []publication.Publication, doi string) (int, bool) {
	if doi == "" {
		return -1, false
	}
	for i, pub := range pubs {
		if pub.DOI != nil && *pub.DOI == doi {
			return i, true
		}
	}
	return -1, false
}
