package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pkgerrors "github.com/vsinha/importdesk/pkg/errors"
	"github.com/vsinha/importdesk/pkg/logger"
)

type failingStore struct {
	getErr error
	setErr error
	inner  *MemoryStore
}

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.inner.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.inner.Set(ctx, key, value)
}

func (f *failingStore) Close() error { return nil }

func seedNames() []string { return []string{"Steel Rod", "Copper Wire"} }

func TestLoadOrSeed_AbsentKeyWritesSeed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	value, outcome, err := LoadOrSeed(ctx, s, "materials", seedNames, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Seeded, outcome)
	assert.Equal(t, seedNames(), value)

	raw, err := s.Get(ctx, "materials")
	require.NoError(t, err)
	assert.JSONEq(t, `["Steel Rod","Copper Wire"]`, string(raw))
}

func TestLoadOrSeed_ReadsStoredValue(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "materials", []byte(`["Cotton"]`)))

	value, outcome, err := LoadOrSeed(ctx, s, "materials", seedNames, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Loaded, outcome)
	assert.Equal(t, []string{"Cotton"}, value)
}

func TestLoadOrSeed_CorruptValueRecovers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "materials", []byte(`{not json`)))

	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})

	value, outcome, err := LoadOrSeed(ctx, s, "materials", seedNames, nil, logg)
	require.NoError(t, err)
	assert.Equal(t, Recovered, outcome)
	assert.Equal(t, seedNames(), value)
	assert.Contains(t, buf.String(), "STORAGE_CORRUPTION")
	assert.Contains(t, buf.String(), `"store_key":"materials"`)

	raw, err := s.Get(ctx, "materials")
	require.NoError(t, err)
	assert.JSONEq(t, `["Steel Rod","Copper Wire"]`, string(raw))
}

func TestLoadOrSeed_CheckRejectionRecovers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "materials", []byte(`[""]`)))

	check := func(names []string) error {
		for _, n := range names {
			if n == "" {
				return fmt.Errorf("blank name")
			}
		}
		return nil
	}

	value, outcome, err := LoadOrSeed(ctx, s, "materials", seedNames, check, nil)
	require.NoError(t, err)
	assert.Equal(t, Recovered, outcome)
	assert.Equal(t, seedNames(), value)
}

func TestLoadOrSeed_BackendFailureSurfaces(t *testing.T) {
	s := &failingStore{getErr: errors.New("connection refused"), inner: NewMemoryStore()}

	_, _, err := LoadOrSeed(context.Background(), s, "orders", seedNames, nil, nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestSaveJSON_WriteFailureIsDependencyError(t *testing.T) {
	s := &failingStore{setErr: errors.New("disk full"), inner: NewMemoryStore()}

	err := SaveJSON(context.Background(), s, "orders", []int{1})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	assert.Contains(t, err.Error(), "disk full")
}
