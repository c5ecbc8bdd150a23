// Package locator finds the daily note that precedes a newly created one.
package locator

import (
	"sort"
	"strings"
	"time"

	"github.com/starford/rollover/internal/models"
)

type candidate struct {
	note  models.Note
	date  time.Time
	valid bool
}

// InDir reports whether p lies under dir. An empty dir matches every path.
func InDir(p, dir string) bool {
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return true
	}
	return strings.HasPrefix(p, dir+"/")
}

// FindPrevious returns the most recent note in dir dated strictly before
// newNote. The new note itself is never returned.
//
// Notes are ranked by basename date, most recent first; notes whose basename
// does not parse as a date rank last and are never selected. Equal dates
// are ordered by path. The boolean is false when no note qualifies.
func FindPrevious(notes []models.Note, newNote models.Note, dir string) (models.Note, bool) {
	newDate, newValid := newNote.Date()

	cands := make([]candidate, 0, len(notes))
	for _, n := range notes {
		if n.Basename == "" || !InDir(n.Path, dir) {
			continue
		}
		d, ok := n.Date()
		cands = append(cands, candidate{note: n, date: d, valid: ok})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.valid != b.valid {
			return a.valid
		}
		if !a.date.Equal(b.date) {
			return a.date.After(b.date)
		}
		return a.note.Path < b.note.Path
	})

	for _, c := range cands {
		if !c.valid {
			break
		}
		if c.note.Path == newNote.Path {
			continue
		}
		if newValid && !c.date.Before(newDate) {
			continue
		}
		return c.note, true
	}
	return models.Note{}, false
}
