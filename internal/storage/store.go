package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/colloc/internal/export"
)

var now = time.Now

// Store keeps generated operators on disk, one directory per operator
// holding metadata.json and matrix.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Save writes doc and returns its id. The id is set on doc only when both
// files were written; a failed save leaves no directory behind.
func (s *Store) Save(doc *export.Document) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}

	id := fmt.Sprintf("%s_n%d_%d", doc.Distribution, doc.Size, now().UnixNano())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	if err := s.write(dir, id, doc); err != nil {
		os.RemoveAll(dir)
		return "", err
	}

	doc.ID = id
	return id, nil
}

func (s *Store) write(dir, id string, doc *export.Document) error {
	meta := *doc
	meta.ID = id
	if err := writeFile(filepath.Join(dir, "metadata.json"), func(w io.Writer) error {
		return export.WriteJSON(w, &meta)
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, "matrix.csv"), func(w io.Writer) error {
		return export.WriteCSV(w, doc.Matrix, -1)
	})
}

func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns the stored documents ordered by creation time. Entries
// that fail to parse are skipped.
func (s *Store) List() ([]*export.Document, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*export.Document{}, nil
		}
		return nil, err
	}

	docs := make([]*export.Document, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		doc, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(a, b int) bool {
		return docs[a].Created.Before(docs[b].Created)
	})
	return docs, nil
}

func (s *Store) Load(id string) (*export.Document, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var doc export.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadMatrix reads the CSV copy of the matrix.
func (s *Store) LoadMatrix(id string) ([][]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, "matrix.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return export.ReadCSV(f)
}
