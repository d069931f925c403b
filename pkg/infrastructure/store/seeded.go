package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pkgerrors "github.com/vsinha/importdesk/pkg/errors"
	"github.com/vsinha/importdesk/pkg/logger"
)

// LoadOutcome reports where a loaded value came from
type LoadOutcome int

const (
	// Loaded means the stored value was read and accepted
	Loaded LoadOutcome = iota
	// Seeded means the key was absent and the seed was written
	Seeded
	// Recovered means the stored value was unreadable and the seed replaced it
	Recovered
)

func (o LoadOutcome) String() string {
	switch o {
	case Loaded:
		return "loaded"
	case Seeded:
		return "seeded"
	case Recovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// LoadOrSeed reads key and decodes it into a T. An absent key, a value that
// does not decode, or one that check rejects is replaced by seed() and the
// seed is written back immediately. Only backend failures are returned.
func LoadOrSeed[T any](
	ctx context.Context,
	s Store,
	key string,
	seed func() T,
	check func(T) error,
	logg *logger.Logger,
) (T, LoadOutcome, error) {
	if logg == nil {
		logg = logger.Nop()
	}
	ctx = logg.WithStoreKey(ctx, key)

	raw, err := s.Get(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		value := seed()
		if err := SaveJSON(ctx, s, key, value); err != nil {
			return value, Seeded, err
		}
		logg.Info(ctx, "store key absent, seed data written")
		return value, Seeded, nil
	case err != nil:
		var zero T
		return zero, Loaded, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("read %s", key))
	}

	var value T
	decodeErr := json.Unmarshal(raw, &value)
	if decodeErr == nil && check != nil {
		decodeErr = check(value)
	}
	if decodeErr == nil {
		return value, Loaded, nil
	}

	corruption := pkgerrors.Wrap(pkgerrors.CodeStorageCorruption, decodeErr, fmt.Sprintf("stored %s unreadable", key))
	logg.Warn(logg.WithField(ctx, "error", corruption.Error()), "stored value corrupt, restoring seed data")

	value = seed()
	if err := SaveJSON(ctx, s, key, value); err != nil {
		return value, Recovered, err
	}
	return value, Recovered, nil
}

// SaveJSON encodes value and writes it under key
func SaveJSON(ctx context.Context, s Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("encode %s", key))
	}
	if err := s.Set(ctx, key, data); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("write %s", key))
	}
	return nil
}
