package store

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"pumpsizer/internal/domain"
	"pumpsizer/internal/project"
)

// DocumentFileStore persists the project document as one JSON file.
type DocumentFileStore struct {
	path string
	mu   sync.Mutex
}

// NewDocumentFileStore returns a DocumentFileStore for path.
func NewDocumentFileStore(path string) *DocumentFileStore {
	return &DocumentFileStore{path: path}
}

// Path is the file backing the store.
func (s *DocumentFileStore) Path() string { return s.path }

// LoadDocument reads the document. A missing file yields project.Default();
// fields absent from the file keep their defaults.
func (s *DocumentFileStore) LoadDocument() (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := project.Default()
	if _, err := readJSON(s.path, &doc); err != nil {
		return domain.Document{}, fmt.Errorf("load project %s: %w", s.path, err)
	}
	return doc, nil
}

// Exists reports whether the document file is present.
func (s *DocumentFileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// SaveDocument replaces the stored document atomically.
func (s *DocumentFileStore) SaveDocument(doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeJSON(s.path, doc, 0o644); err != nil {
		return fmt.Errorf("save project %s: %w", s.path, err)
	}
	return nil
}

// Export writes the stored file verbatim to w.
func (s *DocumentFileStore) Export(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// Import reads a document from r, validates its shape and stores the bytes
// exactly as read. On any error the previously stored document is left
// intact.
func (s *DocumentFileStore) Import(r io.Reader) (domain.Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return domain.Document{}, fmt.Errorf("import: %w", err)
	}
	doc := project.Default()
	if err := decodeJSON(bytes.NewReader(raw), &doc); err != nil {
		return domain.Document{}, fmt.Errorf("import: %w", err)
	}
	if err := project.Validate(doc); err != nil {
		return domain.Document{}, fmt.Errorf("import: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeFile(s.path, raw, 0o644); err != nil {
		return domain.Document{}, fmt.Errorf("save project %s: %w", s.path, err)
	}
	return doc, nil
}

// Compile-time assertion that DocumentFileStore implements domain.DocumentStore.
var _ domain.DocumentStore = (*DocumentFileStore)(nil)
