package state

import "github.com/starford/rollover/internal/models"

// Store is the persistence surface consumed by the rollover service.
// Consumers depend on it rather than *DB so tests can substitute fakes.
type Store interface {
	GetSetting(key string) (string, bool, error)
	PutSetting(key, value string) error
	GetRollover(notePath string) (*models.Rollover, error)
	RecordRollover(r models.Rollover) error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
