package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jimezsa/jobtrack/internal/models"
)

type fileData struct {
	Jobs  []models.JobPosting `json:"jobs"`
	Trash []models.JobPosting `json:"trash"`
}

// ReadPostings reads postings from path. The file is either a JSON array
// of postings or a store file, whose jobs are returned.
func ReadPostings(path string) ([]models.JobPosting, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(data))
	if len(trimmed) == 0 {
		return []models.JobPosting{}, nil
	}
	if strings.HasPrefix(trimmed, "{") {
		var file fileData
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		if file.Jobs == nil {
			return []models.JobPosting{}, nil
		}
		return file.Jobs, nil
	}

	var postings []models.JobPosting
	if err := json.Unmarshal(data, &postings); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if postings == nil {
		return []models.JobPosting{}, nil
	}
	return postings, nil
}

func readFile(path string) (fileData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileData{}, nil
		}
		return fileData{}, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return fileData{}, nil
	}

	var out fileData
	if err := json.Unmarshal(data, &out); err != nil {
		return fileData{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

func writeFile(path string, data fileData) error {
	if data.Jobs == nil {
		data.Jobs = []models.JobPosting{}
	}
	if data.Trash == nil {
		data.Trash = []models.JobPosting{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(encoded, '\n'), 0o644)
}
