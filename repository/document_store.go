package repository

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"apparel-editpages/models"
	"apparel-editpages/utils"
)

// ErrPageNotFound is returned when no artifact exists for a product id
var ErrPageNotFound = errors.New("edit page not found")

// WriteResult describes what a Write did on disk
type WriteResult struct {
	Filename  string
	Created   bool     // no artifact existed for the id
	Unchanged bool     // same name and same content were already on disk
	Replaced  []string // other artifacts of the same id that were removed
}

// DocumentStore keeps one edit page per product id in a directory
type DocumentStore struct {
	fs  afero.Fs
	dir string
}

// NewDocumentStore creates a store rooted at dir
func NewDocumentStore(fs afero.Fs, dir string) *DocumentStore {
	return &DocumentStore{fs: fs, dir: dir}
}

// Ensure DocumentStore implements DocumentStoreInterface
var _ DocumentStoreInterface = (*DocumentStore)(nil)

// Dir returns the pages directory
func (s *DocumentStore) Dir() string {
	return s.dir
}

func persistence(format string, err error, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %w", models.ErrPersistence, fmt.Sprintf(format, args...), err)
}

// Write stores text as the artifact of product id. The file is written to a
// temporary name and renamed into place; artifacts of the same id under any
// other name (an earlier slug, the legacy hyphen form) are removed afterwards.
func (s *DocumentStore) Write(id int, slug string, text string) (*WriteResult, error) {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return nil, persistence("failed to create pages directory %s", err, s.dir)
	}

	existing, err := s.pagesFor(id)
	if err != nil {
		return nil, err
	}

	filename := utils.EditPageFileName(id, slug)
	result := &WriteResult{Filename: filename, Created: len(existing) == 0}

	if current, err := afero.ReadFile(s.fs, filepath.Join(s.dir, filename)); err == nil && string(current) == text && len(existing) == 1 {
		result.Unchanged = true
		return result, nil
	}

	tmp, err := afero.TempFile(s.fs, s.dir, ".edit-page-*.tmp")
	if err != nil {
		return nil, persistence("failed to create temp file for %s", err, filename)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return nil, persistence("failed to write %s", err, filename)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return nil, persistence("failed to close %s", err, filename)
	}
	if err := s.fs.Rename(tmpName, filepath.Join(s.dir, filename)); err != nil {
		s.fs.Remove(tmpName)
		return nil, persistence("failed to move %s into place", err, filename)
	}

	for _, page := range existing {
		if page.Filename == filename {
			continue
		}
		if err := s.fs.Remove(filepath.Join(s.dir, page.Filename)); err != nil && !os.IsNotExist(err) {
			return nil, persistence("failed to remove stale page %s", err, page.Filename)
		}
		log.Printf("🔄 Replaced stale edit page %s with %s", page.Filename, filename)
		result.Replaced = append(result.Replaced, page.Filename)
	}
	return result, nil
}

// Read returns the text of the artifact of product id
func (s *DocumentStore) Read(id int) (string, *models.EditPage, error) {
	page, err := s.Find(id)
	if err != nil {
		return "", nil, err
	}
	data, err := afero.ReadFile(s.fs, filepath.Join(s.dir, page.Filename))
	if err != nil {
		return "", nil, persistence("failed to read %s", err, page.Filename)
	}
	return string(data), page, nil
}

// ReadPage returns the text of a listed artifact
func (s *DocumentStore) ReadPage(page models.EditPage) (string, error) {
	data, err := afero.ReadFile(s.fs, filepath.Join(s.dir, page.Filename))
	if err != nil {
		return "", persistence("failed to read %s", err, page.Filename)
	}
	return string(data), nil
}

// Find returns the artifact of product id, preferring the current naming
// scheme over the legacy one when both exist
func (s *DocumentStore) Find(id int) (*models.EditPage, error) {
	pages, err := s.pagesFor(id)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: product %d", ErrPageNotFound, id)
	}
	return &pages[0], nil
}

// List returns every artifact ordered by product id. Files that do not follow
// the naming scheme are ignored.
func (s *DocumentStore) List() ([]models.EditPage, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("failed to list %s", err, s.dir)
	}

	var pages []models.EditPage
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		page, err := utils.ParseEditPageFileName(entry.Name())
		if err != nil {
			continue
		}
		pages = append(pages, *page)
	}
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].ProductID != pages[j].ProductID {
			return pages[i].ProductID < pages[j].ProductID
		}
		if pages[i].Legacy != pages[j].Legacy {
			return !pages[i].Legacy
		}
		return pages[i].Filename < pages[j].Filename
	})
	return pages, nil
}

func (s *DocumentStore) pagesFor(id int) ([]models.EditPage, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var out []models.EditPage
	for _, page := range all {
		if page.ProductID == id {
			out = append(out, page)
		}
	}
	return out, nil
}

// Delete removes every artifact of product id and returns the removed names
func (s *DocumentStore) Delete(id int) ([]string, error) {
	pages, err := s.pagesFor(id)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: product %d", ErrPageNotFound, id)
	}
	var removed []string
	for _, page := range pages {
		if err := s.fs.Remove(filepath.Join(s.dir, page.Filename)); err != nil {
			return removed, persistence("failed to delete %s", err, page.Filename)
		}
		removed = append(removed, page.Filename)
	}
	return removed, nil
}

// Index maps every product id to the file name of its artifact
func (s *DocumentStore) Index() (map[int]string, error) {
	pages, err := s.List()
	if err != nil {
		return nil, err
	}
	index := make(map[int]string, len(pages))
	for _, page := range pages {
		if _, ok := index[page.ProductID]; !ok {
			index[page.ProductID] = page.Filename
		}
	}
	return index, nil
}

// NextID returns one more than the highest product id on disk, or 1 for an
// empty directory. Ids are only ever assigned through this call.
func (s *DocumentStore) NextID() (int, error) {
	pages, err := s.List()
	if err != nil {
		return 0, err
	}
	next := 1
	for _, page := range pages {
		if page.ProductID >= next {
			next = page.ProductID + 1
		}
	}
	return next, nil
}
