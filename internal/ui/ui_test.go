package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jimezsa/jobtrack/internal/models"
)

func TestNormalizeColorMode(t *testing.T) {
	cases := map[string]ColorMode{
		"always":  ColorAlways,
		" NEVER ": ColorNever,
		"auto":    ColorAuto,
		"bogus":   ColorAuto,
	}
	for in, want := range cases {
		if got := NormalizeColorMode(in); got != want {
			t.Fatalf("NormalizeColorMode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPrintPostingPlain(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorNever, false)

	p := models.NewJobPosting(
		models.RawFields{Title: "Data Analyst", Company: "DataCo", Platform: models.PlatformHandshake},
		"https://joinhandshake.com/jobs/1",
		"",
		time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	)
	if err := u.PrintPosting(p); err != nil {
		t.Fatalf("PrintPosting: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Title:", "Data Analyst", "Company:", "DataCo", "Status:", models.DefaultStatus, "Added:", "2026-05-01"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "\x1b[") {
		t.Fatalf("expected no escape codes with colors disabled:\n%q", got)
	}
	if !strings.Contains(got, "Salary:") || !strings.Contains(got, "-") {
		t.Fatalf("expected dash placeholder for empty salary:\n%s", got)
	}
}

func TestDisableColorWins(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorAlways, true)
	if u.ColorEnabled {
		t.Fatalf("expected colors disabled")
	}
	u.Warnf("careful %d", 1)
	if errOut.String() != "careful 1\n" {
		t.Fatalf("unexpected warn output: %q", errOut.String())
	}
}
