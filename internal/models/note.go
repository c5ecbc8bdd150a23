// Package models defines the domain types for Rollover.
package models

import (
	"path"
	"strings"
	"time"
)

// DateLayout is the basename layout of a daily note.
const DateLayout = "2006-01-02"

// Note is the metadata of one Markdown file in the vault. Content is never
// carried here; it is read through the storage provider when needed.
type Note struct {
	Path      string    `json:"path"`
	Basename  string    `json:"basename"`
	CreatedAt time.Time `json:"created_at"`
}

// Date parses the basename as a calendar date.
func (n Note) Date() (time.Time, bool) {
	t, err := time.Parse(DateLayout, n.Basename)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Basename returns the file name of p without directory and extension.
func Basename(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// Rollover is one completed carry-over recorded in the history.
type Rollover struct {
	NotePath   string    `json:"note_path"`
	SourcePath string    `json:"source_path"`
	TodoCount  int       `json:"todo_count"`
	Checksum   string    `json:"checksum"`
	RunID      string    `json:"run_id"`
	RolledAt   time.Time `json:"rolled_at"`
}
