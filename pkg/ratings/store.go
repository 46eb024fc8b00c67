// Package ratings keeps the star ratings submitted through the rate_us tool.
// Entries live only as long as the process.
package ratings

import (
	"context"
	"errors"
	"fmt"
)

const (
	MinStars = 1
	MaxStars = 5
)

var ErrStarsOutOfRange = fmt.Errorf("stars must be between %d and %d", MinStars, MaxStars)

// Entry is one accepted rating. Ordinal is its 1-based append position.
type Entry struct {
	Ordinal int    `json:"ordinal"`
	Stars   int    `json:"stars"`
	Comment string `json:"comment"`
}

func ValidateStars(stars int) error {
	if stars < MinStars || stars > MaxStars {
		return ErrStarsOutOfRange
	}
	return nil
}

// Store is an append-only, ordered sequence of ratings. Implementations must
// be safe for concurrent Append.
type Store interface {
	Append(ctx context.Context, stars int, comment string) (Entry, error)
	Len(ctx context.Context) (int, error)
	List(ctx context.Context) ([]Entry, error)
}

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

var ErrUnknownBackend = errors.New("unknown ratings backend")

// Open returns the store for the named backend.
func Open(backend string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		return OpenSQLStore()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
