package store

import (
	"strings"

	"github.com/jimezsa/jobtrack/internal/models"
)

// MergeStats captures stats for an import.
type MergeStats struct {
	TotalStored int
	TotalInput  int
	Invalid     int
	Added       int
	TotalOut    int
}

// URLKey normalizes a posting URL for identity checks.
func URLKey(url string) (string, bool) {
	key := strings.TrimRight(strings.TrimSpace(url), "/")
	if key == "" {
		return "", false
	}
	return key, true
}

// Merge puts postings whose URL is not stored yet on top, keeping their
// order. Stored rows win collisions; input rows without a URL are skipped.
func (s *Store) Merge(input []models.JobPosting) MergeStats {
	stats := MergeStats{
		TotalStored: len(s.jobs),
		TotalInput:  len(input),
	}

	keys := make(map[string]struct{}, len(s.jobs)+len(input))
	for _, job := range s.jobs {
		if key, ok := URLKey(job.URL); ok {
			keys[key] = struct{}{}
		}
	}

	var added []models.JobPosting
	for _, p := range input {
		key, ok := URLKey(p.URL)
		if !ok {
			stats.Invalid++
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		added = append(added, p)
	}
	s.jobs = append(added, s.jobs...)

	stats.Added = len(added)
	stats.TotalOut = len(s.jobs)
	return stats
}
