// Package store keeps posting records in a local JSON file laid out like
// a tracking sheet: newest row first, with replaced rows moved to trash.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jimezsa/jobtrack/internal/models"
)

var ErrDuplicate = errors.New("posting already stored")

// Store is not safe for concurrent use.
type Store struct {
	path  string
	jobs  []models.JobPosting
	trash []models.JobPosting
}

// Load opens the store at path. A missing file is an empty store.
func Load(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, jobs: data.Jobs, trash: data.Trash}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Save() error {
	return writeFile(s.path, fileData{Jobs: s.jobs, Trash: s.trash})
}

// Add inserts p as the newest row.
func (s *Store) Add(p models.JobPosting) {
	s.jobs = append([]models.JobPosting{p}, s.jobs...)
}

// AddUnique is Add that refuses a URL already stored.
func (s *Store) AddUnique(p models.JobPosting) error {
	if s.FindByURL(p.URL) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicate, p.URL)
	}
	s.Add(p)
	return nil
}

// FindByURL returns the row index holding url, or -1.
func (s *Store) FindByURL(url string) int {
	key, ok := URLKey(url)
	if !ok {
		return -1
	}
	for i, job := range s.jobs {
		if existing, ok := URLKey(job.URL); ok && existing == key {
			return i
		}
	}
	return -1
}

// ReplaceByURL moves the row with p's URL to trash and inserts p on top.
// Without a match p is simply added.
func (s *Store) ReplaceByURL(p models.JobPosting) bool {
	idx := s.FindByURL(p.URL)
	if idx < 0 {
		s.Add(p)
		return false
	}
	s.moveToTrash(idx)
	s.Add(p)
	return true
}

// ReplaceLast swaps out the most recently added row.
func (s *Store) ReplaceLast(p models.JobPosting) bool {
	if len(s.jobs) == 0 {
		s.Add(p)
		return false
	}
	s.moveToTrash(0)
	s.Add(p)
	return true
}

func (s *Store) moveToTrash(idx int) {
	removed := s.jobs[idx]
	s.jobs = append(s.jobs[:idx:idx], s.jobs[idx+1:]...)
	s.trash = append([]models.JobPosting{removed}, s.trash...)
}

func (s *Store) Jobs() []models.JobPosting {
	return append([]models.JobPosting{}, s.jobs...)
}

func (s *Store) Trash() []models.JobPosting {
	return append([]models.JobPosting{}, s.trash...)
}
