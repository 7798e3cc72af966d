package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/plexus/internal/sim"
)

type ExportData struct {
	RunMetadata
	Frames []sim.FrameStats `json:"frames"`
}

// ExportJSON writes a run's metadata and frames as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Frames: frames})
}

func (s *Store) ExportJSONFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.ExportJSON(file, runID)
}
