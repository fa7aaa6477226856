package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matsen/folio/internal/areacolor"
	"github.com/matsen/folio/internal/publication"
	"github.com/matsen/folio/internal/storage"
)

// ErrNoExport is returned when the output directory holds no build.
var ErrNoExport = errors.New("no export found")

// ReadPublications returns the publications of the export in dir, in
// their exported order.
func ReadPublications(dir string) ([]publication.Publication, error) {
	path := filepath.Join(dir, PublicationsFile)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w in %s", ErrNoExport, dir)
	}

	pubs, err := storage.ReadPublications(path)
	if err != nil {
		return nil, err
	}
	if pubs == nil {
		pubs = []publication.Publication{}
	}
	return pubs, nil
}

// ReadAreas returns the area styles of the export in dir.
func ReadAreas(dir string) (map[string]areacolor.Style, error) {
	var styles map[string]areacolor.Style
	if err := storage.ReadJSON(filepath.Join(dir, AreasFile), &styles); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNoExport, dir)
		}
		return nil, err
	}
	if styles == nil {
		styles = map[string]areacolor.Style{}
	}
	return styles, nil
}
