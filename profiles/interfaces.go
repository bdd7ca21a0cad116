package profiles

import (
	"context"
	"errors"

	"github.com/poiesic/mentormatch/core"
)

// ErrNotFound is returned when no profile exists for a kind and id.
var ErrNotFound = errors.New("profile not found")

// Store provides read access to student and mentor profiles.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the profile for the given kind and id, or ErrNotFound.
	Get(ctx context.Context, kind core.Kind, id int64) (*core.Profile, error)

	// ListActive returns a page of active profiles of the given kind,
	// ordered by id. offset counts profiles, not pages. An empty slice
	// signals the end of the listing.
	ListActive(ctx context.Context, kind core.Kind, offset, limit int) ([]*core.Profile, error)
}
