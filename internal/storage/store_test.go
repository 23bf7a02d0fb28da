package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rafaelvleite/kuramoto-metronomes/internal/config"
)

func testSeries() *Series {
	s := &Series{}
	s.Append(0.0, 0.10, 0.18, false, 0, 0)
	s.Append(1.0/30.0, 0.15, 0.18, false, 5, 1)
	s.Append(2.0/30.0, 0.98, 1.60, true, 90, 1)
	return s
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.Default()
	runID, err := st.Save(cfg, testSeries())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.ID != runID {
		t.Errorf("expected id %s, got %s", runID, meta.ID)
	}
	if meta.Frames != 3 {
		t.Errorf("expected 3 frames, got %d", meta.Frames)
	}
	if meta.FinalOrder != 0.98 {
		t.Errorf("expected final order 0.98, got %f", meta.FinalOrder)
	}
	if meta.Config == nil || meta.Config.N != cfg.N {
		t.Error("config not preserved in metadata")
	}
}

func TestStoreLockTime(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(config.Default(), testSeries())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want := 2.0 / 30.0
	if meta.LockTime < want-1e-6 || meta.LockTime > want+1e-6 {
		t.Errorf("expected lock time %.4f, got %.4f", want, meta.LockTime)
	}
}

func TestStoreNeverLocked(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	s := &Series{}
	s.Append(0.0, 0.1, 0.18, false, 0, 0)
	runID, err := st.Save(config.Default(), s)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.LockTime != -1 {
		t.Errorf("expected lock time -1, got %f", meta.LockTime)
	}
}

func TestStoreLoadSeries(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(config.Default(), testSeries())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}

	if len(series.Times) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(series.Times))
	}
	if series.Order[2] != 0.98 {
		t.Errorf("expected order 0.98, got %f", series.Order[2])
	}
	if !series.Locked[2] || series.Locked[0] {
		t.Error("locked flags not preserved")
	}
	if series.Colored[2] != 90 {
		t.Errorf("expected 90 colored, got %d", series.Colored[2])
	}
	if series.Clusters[1] != 1 {
		t.Errorf("expected 1 cluster, got %d", series.Clusters[1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(config.Default(), testSeries()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save(config.Default(), testSeries()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(config.Default(), testSeries())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(dir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "frames.csv")); os.IsNotExist(err) {
		t.Error("frames.csv not created")
	}
}

func TestStoreLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); err == nil {
		t.Error("expected error, got nil")
	}
	if _, err := st.LoadSeries("nope"); err == nil {
		t.Error("expected error, got nil")
	}
}
