package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jimezsa/jobtrack/internal/models"
)

func posting(title string, url string) models.JobPosting {
	return models.NewJobPosting(
		models.RawFields{Title: title, Company: "Acme", Platform: models.PlatformOther},
		url,
		"",
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	)
}

func titles(postings []models.JobPosting) []string {
	out := make([]string, 0, len(postings))
	for _, p := range postings {
		out = append(out, p.Title)
	}
	return out
}

func TestLoadMissingIsEmpty(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(s.Jobs()) != 0 || len(s.Trash()) != 0 {
		t.Fatalf("expected empty store")
	}
}

func TestLoadRequiresPath(t *testing.T) {
	if _, err := Load("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "jobs.json")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	s.Add(posting("SRE", "https://example.com/1"))
	s.Add(posting("Analyst", "https://example.com/2"))
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if !strings.Contains(string(raw), `"trash": []`) {
		t.Fatalf("expected empty trash array in file, got:\n%s", raw)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := titles(reloaded.Jobs()); !reflect.DeepEqual(got, []string{"Analyst", "SRE"}) {
		t.Fatalf("unexpected order after reload: %v", got)
	}
	if got := reloaded.Jobs()[1].DateAdded.String(); got != "2026-02-01" {
		t.Fatalf("unexpected date after reload: %q", got)
	}
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestAddUnique(t *testing.T) {
	s := &Store{path: "unused"}
	if err := s.AddUnique(posting("SRE", "https://example.com/1")); err != nil {
		t.Fatalf("AddUnique() error = %v", err)
	}
	err := s.AddUnique(posting("SRE again", " https://example.com/1/ "))
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if len(s.Jobs()) != 1 {
		t.Fatalf("expected 1 job, got %d", len(s.Jobs()))
	}
}

func TestFindByURL(t *testing.T) {
	s := &Store{}
	s.Add(posting("A", "https://example.com/a"))
	s.Add(posting("B", "https://example.com/b"))

	if idx := s.FindByURL("https://example.com/a"); idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if idx := s.FindByURL("https://example.com/c"); idx != -1 {
		t.Fatalf("expected -1, got %d", idx)
	}
	if idx := s.FindByURL(""); idx != -1 {
		t.Fatalf("expected -1 for empty url, got %d", idx)
	}
}

func TestReplaceByURL(t *testing.T) {
	s := &Store{}
	s.Add(posting("Old", "https://example.com/a"))
	s.Add(posting("Other", "https://example.com/b"))

	if !s.ReplaceByURL(posting("New", "https://example.com/a")) {
		t.Fatalf("expected replacement")
	}
	if got := titles(s.Jobs()); !reflect.DeepEqual(got, []string{"New", "Other"}) {
		t.Fatalf("unexpected jobs: %v", got)
	}
	if got := titles(s.Trash()); !reflect.DeepEqual(got, []string{"Old"}) {
		t.Fatalf("unexpected trash: %v", got)
	}

	if s.ReplaceByURL(posting("Fresh", "https://example.com/c")) {
		t.Fatalf("expected plain add for unknown url")
	}
	if got := titles(s.Jobs()); !reflect.DeepEqual(got, []string{"Fresh", "New", "Other"}) {
		t.Fatalf("unexpected jobs: %v", got)
	}
}

func TestReplaceLast(t *testing.T) {
	s := &Store{}
	if s.ReplaceLast(posting("First", "https://example.com/1")) {
		t.Fatalf("expected plain add on empty store")
	}
	s.Add(posting("Second", "https://example.com/2"))

	if !s.ReplaceLast(posting("Fixed", "https://example.com/2")) {
		t.Fatalf("expected replacement")
	}
	if got := titles(s.Jobs()); !reflect.DeepEqual(got, []string{"Fixed", "First"}) {
		t.Fatalf("unexpected jobs: %v", got)
	}
	if got := titles(s.Trash()); !reflect.DeepEqual(got, []string{"Second"}) {
		t.Fatalf("unexpected trash: %v", got)
	}
}

func TestJobsReturnsCopy(t *testing.T) {
	s := &Store{}
	s.Add(posting("A", "https://example.com/a"))

	jobs := s.Jobs()
	jobs[0].Title = "mutated"
	if s.Jobs()[0].Title != "A" {
		t.Fatalf("Jobs() exposed internal slice")
	}
}

func TestMerge(t *testing.T) {
	s := &Store{}
	s.Add(posting("Stored", "https://example.com/a"))

	stats := s.Merge([]models.JobPosting{
		posting("Dup", "https://example.com/a/"),
		posting("One", "https://example.com/b"),
		posting("NoURL", ""),
		posting("Two", "https://example.com/c"),
		posting("DupInput", "https://example.com/c"),
	})

	want := MergeStats{TotalStored: 1, TotalInput: 5, Invalid: 1, Added: 2, TotalOut: 3}
	if stats != want {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if got := titles(s.Jobs()); !reflect.DeepEqual(got, []string{"One", "Two", "Stored"}) {
		t.Fatalf("unexpected jobs: %v", got)
	}
}

func TestReadPostings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "import.json")
	data := `[{"title": "SRE", "company": "Acme", "url": "https://example.com/1", "date_added": "2026-01-05"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadPostings(path)
	if err != nil {
		t.Fatalf("ReadPostings() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "SRE" || got[0].DateAdded.String() != "2026-01-05" {
		t.Fatalf("unexpected postings: %+v", got)
	}

	if _, err := ReadPostings(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestReadPostingsFromStoreFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "other.json")
	data := `{"jobs": [{"title": "QA", "url": "https://example.com/qa"}], "trash": []}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadPostings(path)
	if err != nil {
		t.Fatalf("ReadPostings() error = %v", err)
	}
	if len(got) != 1 || got[0].URL != "https://example.com/qa" {
		t.Fatalf("unexpected postings: %+v", got)
	}
}
