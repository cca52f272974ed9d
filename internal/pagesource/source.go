package pagesource

import (
	"context"

	"github.com/trustlens/trustlens/internal/model"
)

// SnapshotProvider captures the currently displayed page as a snapshot
// for scoring. Obtaining a snapshot is the only suspension point of a
// scan besides storage access.
type SnapshotProvider interface {
	// ActiveSnapshot returns a snapshot of the page at url.
	// A page that cannot be read yields a *PageAccessError.
	ActiveSnapshot(ctx context.Context, url string) (model.PageSnapshot, error)
}
