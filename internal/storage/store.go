package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/plexus/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

var frameHeader = []string{"tick", "particles", "links", "attracted", "bounces", "mean_speed", "pointer_x", "pointer_y"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Ticks     int                `json:"ticks"`
	Path      string             `json:"pointer_path"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	if meta.Preset == "" {
		meta.Preset = "custom"
	}
	meta.Timestamp = time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Preset, meta.Timestamp.UnixNano())
	meta.Ticks = result.TicksTaken
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, f := range result.Frames {
		row := []string{
			strconv.FormatUint(f.Tick, 10),
			strconv.Itoa(f.Particles),
			strconv.Itoa(f.Links),
			strconv.Itoa(f.Attracted),
			strconv.Itoa(f.Bounces),
			strconv.FormatFloat(f.MeanSpeed, 'f', 6, 64),
			strconv.FormatFloat(f.PointerX, 'f', 3, 64),
			strconv.FormatFloat(f.PointerY, 'f', 3, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads frames.csv back. Malformed rows are skipped.
func (s *Store) LoadFrames(runID string) ([]sim.FrameStats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.FrameStats{}, nil
	}

	frames := make([]sim.FrameStats, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(frameHeader) {
			continue
		}
		f, err := parseFrame(rec)
		if err != nil {
			continue
		}
		frames = append(frames, f)
	}

	return frames, nil
}

func parseFrame(rec []string) (sim.FrameStats, error) {
	var f sim.FrameStats
	var err error
	if f.Tick, err = strconv.ParseUint(rec[0], 10, 64); err != nil {
		return f, err
	}
	ints := []*int{&f.Particles, &f.Links, &f.Attracted, &f.Bounces}
	for i, dst := range ints {
		if *dst, err = strconv.Atoi(rec[i+1]); err != nil {
			return f, err
		}
	}
	floats := []*float64{&f.MeanSpeed, &f.PointerX, &f.PointerY}
	for i, dst := range floats {
		if *dst, err = strconv.ParseFloat(rec[i+5], 64); err != nil {
			return f, err
		}
	}
	return f, nil
}
