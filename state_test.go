//go:build test_unit

package go_machinetalk

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppStateServiceUUIDPersisted(t *testing.T) {
	dir := t.TempDir()

	var first AppState
	require.NoError(t, first.Read(dir))

	id, err := first.EnsureServiceUUID()
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	again, err := first.EnsureServiceUUID()
	require.NoError(t, err)
	assert.Equal(t, id, again)

	var second AppState
	require.NoError(t, second.Read(dir))
	assert.Equal(t, id, second.ServiceUUID)
}

func TestAppStateInvalidFile(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte(`{"service_uuid":"nope"}`), 0o600))

	var state AppState
	assert.ErrorContains(t, state.Read(dir), "invalid service uuid")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte(`{`), 0o600))
	assert.ErrorContains(t, state.Read(dir), "failed unmarshalling state file")
}

func TestAppStateEnsureServiceUUIDConcurrent(t *testing.T) {
	var state AppState
	require.NoError(t, state.Read(t.TempDir()))

	ids := make(chan string, 8)
	var wg sync.WaitGroup
	for i := 0; i < cap(ids); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := state.EnsureServiceUUID()
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	first := <-ids
	for id := range ids {
		assert.Equal(t, first, id)
	}
}
