package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// MemoryBackend keeps documents in memory. It is safe for concurrent use.
type MemoryBackend struct {
	mu    sync.RWMutex
	kinds map[string][]Document
}

// NewMemoryBackend returns an empty backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{kinds: make(map[string][]Document)}
}

// LoadFixtures builds a backend from the *.yaml files at the root of fsys.
// Each file holds a sequence of records and its base name is the kind.
func LoadFixtures(fsys fs.FS) (*MemoryBackend, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob fixtures: %w", err)
	}

	m := NewMemoryBackend()
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read fixture %s: %w", name, err)
		}
		docs, err := DecodeFixture(raw)
		if err != nil {
			return nil, fmt.Errorf("fixture %s: %w", name, err)
		}
		m.Load(strings.TrimSuffix(path.Base(name), ".yaml"), docs)
	}
	return m, nil
}

// DecodeFixture converts a YAML sequence of records into documents. Every
// record needs an id field.
func DecodeFixture(raw []byte) ([]Document, error) {
	var items []map[string]any
	if err := yaml.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	docs := make([]Document, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		id, ok := item["id"]
		if !ok || id == nil {
			return nil, fmt.Errorf("record %d: required field id is missing", i)
		}
		key := fmt.Sprint(id)
		if seen[key] {
			return nil, fmt.Errorf("record %d: duplicate id %s", i, key)
		}
		seen[key] = true

		data, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("record %s: encode: %w", key, err)
		}
		docs = append(docs, Document{ID: key, Data: data})
	}
	return docs, nil
}

// Load replaces all documents of kind.
func (m *MemoryBackend) Load(kind string, docs []Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kinds[kind] = slices.Clone(docs)
}

// Kinds returns the stored kinds, sorted.
func (m *MemoryBackend) Kinds() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kinds := make([]string, 0, len(m.kinds))
	for k := range m.kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// List returns the documents of kind in stored order. Unknown kinds are empty.
func (m *MemoryBackend) List(_ context.Context, kind string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.kinds[kind]), nil
}

// Put replaces the document with the same id, or appends it.
func (m *MemoryBackend) Put(_ context.Context, kind string, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	docs := m.kinds[kind]
	for i := range docs {
		if docs[i].ID == doc.ID {
			docs[i] = doc
			return nil
		}
	}
	m.kinds[kind] = append(docs, doc)
	return nil
}

// Delete removes the document with id.
func (m *MemoryBackend) Delete(_ context.Context, kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	docs := m.kinds[kind]
	i := slices.IndexFunc(docs, func(d Document) bool { return d.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, kind, id)
	}
	m.kinds[kind] = slices.Delete(docs, i, i+1)
	return nil
}
