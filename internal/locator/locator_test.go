package locator

import (
	"testing"

	"github.com/starford/rollover/internal/models"
)

func note(p string) models.Note {
	return models.Note{Path: p, Basename: models.Basename(p)}
}

func TestFindPrevious_PicksImmediatePredecessor(t *testing.T) {
	notes := []models.Note{
		note("daily/2024-01-01.md"),
		note("daily/2024-01-03.md"),
		note("daily/2024-01-02.md"),
		note("daily/2023-12-31.md"),
	}
	got, ok := FindPrevious(notes, note("daily/2024-01-03.md"), "daily")
	if !ok {
		t.Fatal("expected a previous note")
	}
	if got.Path != "daily/2024-01-02.md" {
		t.Errorf("previous = %q, want daily/2024-01-02.md", got.Path)
	}
}

func TestFindPrevious_OnlyNewNote(t *testing.T) {
	notes := []models.Note{note("daily/2024-01-02.md")}
	if got, ok := FindPrevious(notes, notes[0], "daily"); ok {
		t.Errorf("expected none, got %q", got.Path)
	}
}

func TestFindPrevious_Empty(t *testing.T) {
	if _, ok := FindPrevious(nil, note("daily/2024-01-02.md"), "daily"); ok {
		t.Error("expected none for empty listing")
	}
}

func TestFindPrevious_SkipsGaps(t *testing.T) {
	notes := []models.Note{
		note("daily/2024-01-01.md"),
		note("daily/2024-01-10.md"),
	}
	got, ok := FindPrevious(notes, notes[1], "daily")
	if !ok || got.Path != "daily/2024-01-01.md" {
		t.Errorf("previous = %q, %v", got.Path, ok)
	}
}

func TestFindPrevious_IgnoresOtherDirectories(t *testing.T) {
	notes := []models.Note{
		note("archive/2024-01-02.md"),
		note("dailyish/2024-01-02.md"),
		note("daily/2024-01-01.md"),
		note("daily/2024-01-03.md"),
	}
	got, ok := FindPrevious(notes, notes[3], "daily")
	if !ok || got.Path != "daily/2024-01-01.md" {
		t.Errorf("previous = %q, %v", got.Path, ok)
	}
}

func TestFindPrevious_InvalidBasenamesNeverSelected(t *testing.T) {
	notes := []models.Note{
		note("daily/ideas.md"),
		note("daily/zzz.md"),
		note("daily/2024-01-02.md"),
	}
	if got, ok := FindPrevious(notes, notes[2], "daily"); ok {
		t.Errorf("expected none, got %q", got.Path)
	}

	notes = append(notes, note("daily/2024-01-01.md"))
	got, ok := FindPrevious(notes, notes[2], "daily")
	if !ok || got.Path != "daily/2024-01-01.md" {
		t.Errorf("previous = %q, %v", got.Path, ok)
	}
}

func TestFindPrevious_FutureNotesSkipped(t *testing.T) {
	notes := []models.Note{
		note("daily/2024-02-01.md"),
		note("daily/2024-01-02.md"),
		note("daily/2024-01-01.md"),
	}
	got, ok := FindPrevious(notes, notes[1], "daily")
	if !ok || got.Path != "daily/2024-01-01.md" {
		t.Errorf("previous = %q, %v", got.Path, ok)
	}
}

func TestFindPrevious_EmptyBasenameIgnored(t *testing.T) {
	notes := []models.Note{
		{Path: "daily/.md", Basename: ""},
		note("daily/2024-01-02.md"),
	}
	if _, ok := FindPrevious(notes, notes[1], "daily"); ok {
		t.Error("expected none")
	}
}

func TestFindPrevious_EmptyDirMatchesVault(t *testing.T) {
	notes := []models.Note{
		note("2024-01-01.md"),
		note("nested/2024-01-02.md"),
	}
	got, ok := FindPrevious(notes, notes[1], "")
	if !ok || got.Path != "2024-01-01.md" {
		t.Errorf("previous = %q, %v", got.Path, ok)
	}
}

func TestInDir(t *testing.T) {
	cases := []struct {
		path, dir string
		want      bool
	}{
		{"daily/a.md", "daily", true},
		{"daily/a.md", "daily/", true},
		{"daily/sub/a.md", "daily", true},
		{"dailyx/a.md", "daily", false},
		{"a.md", "", true},
		{"a.md", "daily", false},
	}
	for _, c := range cases {
		if got := InDir(c.path, c.dir); got != c.want {
			t.Errorf("InDir(%q, %q) = %v, want %v", c.path, c.dir, got, c.want)
		}
	}
}
