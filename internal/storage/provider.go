// Package storage defines the vault file-system abstraction.
package storage

import "github.com/starford/rollover/internal/models"

// Provider is the narrow set of vault capabilities the rollover pipeline needs.
type Provider interface {
	// List returns metadata for every .md file under dir (relative to vault root).
	List(dir string) ([]models.Note, error)
	// Stat returns metadata for a single .md file.
	Stat(path string) (models.Note, error)
	// Read returns the raw bytes of the file at path (relative to vault root).
	Read(path string) ([]byte, error)
	// Write atomically replaces the content of path (relative to vault root).
	Write(path string, content []byte) error
}
