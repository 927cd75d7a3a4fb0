package persist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ericsocrat/Lokifi-sub000/internal/drawing"
	"github.com/ericsocrat/Lokifi-sub000/internal/layout"
)

func TestDrawingsRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	in := DrawingsState{
		Objects: []drawing.Object{{
			ID:     "obj-1",
			Type:   drawing.ToolTrendLine,
			PaneID: "pane-1",
			Points: []drawing.Point{{X: 1, Y: 2, Time: 1700000000, Price: 3.5}},
			Style:  drawing.DefaultStyle(),
		}},
		SnapToGrid: true,
		MagnetMode: true,
	}
	if err := store.SaveDrawings(in); err != nil {
		t.Fatalf("SaveDrawings() error = %v", err)
	}

	out, ok := store.LoadDrawings()
	if !ok {
		t.Fatalf("LoadDrawings() ok = false")
	}
	if len(out.Objects) != 1 || out.Objects[0].ID != "obj-1" {
		t.Fatalf("objects = %+v", out.Objects)
	}
	if out.Objects[0].Points[0].Price != 3.5 {
		t.Fatalf("point = %+v", out.Objects[0].Points[0])
	}
	if !out.SnapToGrid || out.SnapToPrice || !out.MagnetMode {
		t.Fatalf("settings = %+v", out)
	}
}

func TestPanesRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	in := PanesState{Panes: []layout.Pane{{
		ID:         "pane-1",
		Type:       layout.PanePrice,
		Height:     400,
		Indicators: []string{"volume"},
		Visible:    true,
	}}}
	if err := store.SavePanes(in); err != nil {
		t.Fatalf("SavePanes() error = %v", err)
	}

	out, ok := store.LoadPanes()
	if !ok {
		t.Fatalf("LoadPanes() ok = false")
	}
	if len(out.Panes) != 1 || out.Panes[0].ID != "pane-1" || out.Panes[0].Height != 400 {
		t.Fatalf("panes = %+v", out.Panes)
	}
}

func TestLoadMissingFilesFallsBack(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	if _, ok := store.LoadDrawings(); ok {
		t.Fatalf("LoadDrawings() on empty dir ok = true")
	}
	if _, ok := store.LoadPanes(); ok {
		t.Fatalf("LoadPanes() on empty dir ok = true")
	}
}

func TestLoadCorruptFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "drawings.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, ok := store.LoadDrawings(); ok {
		t.Fatalf("LoadDrawings() on corrupt file ok = true")
	}
}

func TestNewStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := NewStore(dir); err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("data dir not created: %v", err)
	}
}

func TestSaveNormalizesNilSlices(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	if err := store.SaveDrawings(DrawingsState{}); err != nil {
		t.Fatalf("SaveDrawings() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "drawings.json"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"objects": []`) {
		t.Fatalf("drawings.json = %s", data)
	}
}
