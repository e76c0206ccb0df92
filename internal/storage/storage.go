// Package storage defines persistence for completed simulation runs.
package storage

import (
	"context"
	"errors"
	"time"

	"kelly-montecarlo/internal/config"
	"kelly-montecarlo/internal/model"
)

var (
	// ErrNotFound is returned when a requested run does not exist or expired.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when a run ID is saved twice.
	ErrDuplicateKey = errors.New("duplicate key: run already stored")

	// ErrInvalidInput is returned when a run is nil or has no ID.
	ErrInvalidInput = errors.New("invalid input")
)

// Run is a completed simulation: the config that produced it and its report.
// Raw path matrices are not persisted.
type Run struct {
	ID           string                `json:"id"`
	CreatedAt    time.Time             `json:"created_at"`
	Config       config.Config         `json:"config"`
	Report       model.AnalyticsReport `json:"report"`
	BlendedKelly float64               `json:"blended_kelly"`
}

// RunStore persists runs. Runs are immutable once saved.
type RunStore interface {
	Save(ctx context.Context, run *Run) error
	Get(ctx context.Context, id string) (*Run, error)
	// List returns the most recent runs first, at most limit entries.
	List(ctx context.Context, limit int) ([]*Run, error)
}
