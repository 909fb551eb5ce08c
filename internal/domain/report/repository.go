package report

import (
	"context"
)

// Repository defines the operations for persisting and retrieving Report entities.
type Repository interface {
	// Create stores r and fills its ID and CreatedAt.
	Create(ctx context.Context, r *Report) error
	// List returns reports matching f, newest first, capped at f.Limit.
	List(ctx context.Context, f Filter) ([]*Report, error)
	// ListAll returns every report, newest first.
	ListAll(ctx context.Context) ([]*Report, error)
}
