// Package persist is the durable-storage adapter for the workspace
// stores. Each logical store serializes to one JSON file under the data
// directory; writes are synchronous, so a mutation is durable once the
// engine's mutating call returns. Rehydration failures fall back to the
// default initial state instead of surfacing an error.
package persist

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/ericsocrat/Lokifi-sub000/internal/drawing"
	"github.com/ericsocrat/Lokifi-sub000/internal/layout"
)

const (
	drawingsFile = "drawings.json"
	panesFile    = "panes.json"
)

// DrawingsState is the persisted projection of the drawing store plus
// the snap/magnet settings. Transient state (session, selection, dragged
// object) is deliberately excluded.
type DrawingsState struct {
	Objects     []drawing.Object `json:"objects"`
	SnapToGrid  bool             `json:"snap_to_grid"`
	SnapToPrice bool             `json:"snap_to_price"`
	MagnetMode  bool             `json:"magnet_mode"`
}

// PanesState is the persisted projection of the pane layout store.
type PanesState struct {
	Panes []layout.Pane `json:"panes"`
}

// Store manages the persisted state files on disk.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore creates a Store and ensures the directory exists.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("persist store: mkdir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// SaveDrawings writes the drawings blob.
func (s *Store) SaveDrawings(state DrawingsState) error {
	if state.Objects == nil {
		state.Objects = []drawing.Object{}
	}
	return s.write(drawingsFile, state)
}

// LoadDrawings reads the drawings blob. ok is false when the file is
// missing or unreadable; callers then start from defaults.
func (s *Store) LoadDrawings() (DrawingsState, bool) {
	var state DrawingsState
	ok := s.read(drawingsFile, &state)
	return state, ok
}

// SavePanes writes the pane layout blob.
func (s *Store) SavePanes(state PanesState) error {
	if state.Panes == nil {
		state.Panes = []layout.Pane{}
	}
	return s.write(panesFile, state)
}

// LoadPanes reads the pane layout blob. ok is false when the file is
// missing or unreadable.
func (s *Store) LoadPanes() (PanesState, bool) {
	var state PanesState
	ok := s.read(panesFile, &state)
	return state, ok
}

func (s *Store) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("persist store: marshal %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("persist store: write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("persist store: rename %s: %w", name, err)
	}
	return nil
}

func (s *Store) read(name string, v any) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Debug("persist store read failed", "file", name, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		slog.Debug("persist store unmarshal failed, using defaults", "file", name, "error", err)
		return false
	}
	return true
}
