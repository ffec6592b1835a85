package gateway

import (
	"context"
	"sync"
)

// Memory is an in-session edit buffer. Edits accumulate in memory until the
// surrounding system commits them; it is also the gateway used by tests.
type Memory struct {
	mu       sync.RWMutex
	manifest []byte
	files    map[string][]byte
}

// NewMemory creates an empty in-memory gateway.
func NewMemory() *Memory {
	return &Memory{
		files: make(map[string][]byte),
	}
}

func (m *Memory) LoadManifest(ctx context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.manifest == nil {
		return nil, ErrMissing
	}
	out := make([]byte, len(m.manifest))
	copy(out, m.manifest)
	return out, nil
}

func (m *Memory) SaveManifest(ctx context.Context, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.manifest = make([]byte, len(content))
	copy(m.manifest, content)
	return nil
}

func (m *Memory) SaveFile(ctx context.Context, path string, content []byte, meta SaveMeta) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf := make([]byte, len(content))
	copy(buf, content)
	m.files[path] = buf
	return nil
}

func (m *Memory) LoadFile(ctx context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.files[path]
	if !ok {
		return nil, ErrMissing
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out, nil
}

func (m *Memory) RemoveFile(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.files, path)
	return nil
}

// Paths returns the paths of all stored content files (for inspection by
// commit builders and tests).
func (m *Memory) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	return paths
}
