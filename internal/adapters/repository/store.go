// Package repository defines the dataset store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/podiumlab/podium/internal/domain/model"
)

// Store holds the current dataset. The dataset is replaced wholesale on
// each successful load; there is no incremental update path.
type Store interface {
	// Replace swaps in a new dataset.
	Replace(ctx context.Context, rows []model.Row)

	// Snapshot returns the current dataset. Callers must not mutate the
	// returned rows.
	Snapshot(ctx context.Context) []model.Row

	// Count returns the number of rows in the current dataset.
	Count(ctx context.Context) int

	// LastLoad returns when the dataset was last replaced, zero if never.
	LastLoad(ctx context.Context) time.Time
}
