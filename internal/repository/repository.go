package repository

import (
	"github.com/google/uuid"

	"github.com/NamanBalaji/swarmsim/internal/engine"
)

// Repository stores finished simulation runs.
type Repository interface {
	Save(run *engine.Result) error
	Find(id uuid.UUID) (*engine.Result, error)
	FindAll() ([]*engine.Result, error)
	Delete(id uuid.UUID) error
	Close() error
}
