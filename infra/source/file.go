package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/LeeJaeHaeng/parking-pass/core/model"
)

// FileSource reads the lot collection from a local JSON dataset, the offline
// fallback behind the remote registry.
type FileSource struct {
	path string
}

// NewFileSource builds a source over the given dataset path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implements Source.
func (s *FileSource) Name() string { return "local-file" }

// Fetch reads and normalizes the dataset.
func (s *FileSource) Fetch(_ context.Context) ([]model.Lot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var raws []RawLot
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", s.path, err)
	}
	return NormalizeAll(raws), nil
}
