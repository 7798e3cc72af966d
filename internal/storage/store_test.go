package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/plexus/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Frames: []sim.FrameStats{
			{Tick: 1, Particles: 40, Links: 12, Attracted: 2, Bounces: 0, MeanSpeed: 0.17, PointerX: 400, PointerY: 300},
			{Tick: 2, Particles: 40, Links: 13, Attracted: 3, Bounces: 1, MeanSpeed: 0.17, PointerX: 401.5, PointerY: 302},
		},
		Metrics:    map[string]float64{"links": 12.5},
		TicksTaken: 2,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Preset: "classic", Seed: 42, Width: 800, Height: 600, Path: "orbit"}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Preset != "classic" || meta.Seed != 42 || meta.Ticks != 2 {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Metrics["links"] != 12.5 {
		t.Errorf("expected links 12.5, got %f", meta.Metrics["links"])
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[1] != sampleResult().Frames[1] {
		t.Errorf("frame round trip = %+v", frames[1])
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

	for i := 0; i < 2; i++ {
		if _, err := st.Save(RunMetadata{}, sampleResult()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Preset != "custom" {
		t.Errorf("expected default preset name, got %q", runs[0].Preset)
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "nope")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreLoad_NotFound(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadFrames("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Preset: "dense"}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{metadataFile, framesFile} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{Preset: "web"}, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.ID != runID || len(data.Frames) != 2 {
		t.Errorf("unexpected export: id=%s frames=%d", data.ID, len(data.Frames))
	}
}
