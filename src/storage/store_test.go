package storage_test

import (
	"testing"

	"itasset/src/storage"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var header = []string{"id", "name", "payload"}

func newStore() (*storage.Store, afero.Fs) {
	fs := afero.NewMemMapFs()
	return storage.NewStore(fs), fs
}

func TestReadAllMissingFile(t *testing.T) {
	store, _ := newStore()

	rows, err := store.ReadAll("data/containers.csv")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWriteAllReadAllRoundTrip(t *testing.T) {
	store, _ := newStore()

	in := []storage.Row{
		{"id": "u-a-c-b", "name": "first", "payload": `{"qty":3}`},
		{"id": "u-a-c-d", "name": "second, with comma", "payload": `{"note":"line\nbreak"}`},
	}
	require.NoError(t, store.WriteAll("data/containers.csv", header, in))

	rows, err := store.ReadAll("data/containers.csv")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, in[0], rows[0])
	assert.Equal(t, "second, with comma", rows[1]["name"])
}

func TestWriteAllRewritesWholeFile(t *testing.T) {
	store, _ := newStore()

	require.NoError(t, store.WriteAll("c.csv", header, []storage.Row{
		{"id": "1", "name": "a"},
		{"id": "2", "name": "b"},
	}))
	require.NoError(t, store.WriteAll("c.csv", header, []storage.Row{
		{"id": "2", "name": "b"},
	}))

	rows, err := store.ReadAll("c.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0]["id"])
}

func TestEnsureExistsIdempotent(t *testing.T) {
	store, fs := newStore()

	require.NoError(t, store.EnsureExists("data/assets.csv", header))
	first, err := afero.ReadFile(fs, "data/assets.csv")
	require.NoError(t, err)

	require.NoError(t, store.EnsureExists("data/assets.csv", header))
	second, err := afero.ReadFile(fs, "data/assets.csv")
	require.NoError(t, err)

	assert.Equal(t, first, second, "second ensure must not change the file")
	assert.Equal(t, "id,name,payload\n", string(second))
}

func TestEnsureExistsKeepsRows(t *testing.T) {
	store, _ := newStore()

	require.NoError(t, store.WriteAll("a.csv", header, []storage.Row{{"id": "1"}}))
	require.NoError(t, store.EnsureExists("a.csv", header))

	rows, err := store.ReadAll("a.csv")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestUpdate(t *testing.T) {
	store, _ := newStore()

	require.NoError(t, store.WriteAll("a.csv", header, []storage.Row{
		{"id": "1", "name": "a"},
		{"id": "2", "name": "b"},
	}))

	err := store.Update("a.csv", header, func(rows []storage.Row) ([]storage.Row, error) {
		kept := rows[:0]
		for _, row := range rows {
			if row["id"] != "1" {
				kept = append(kept, row)
			}
		}
		return kept, nil
	})
	require.NoError(t, err)

	rows, err := store.ReadAll("a.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0]["id"])
}

func TestUpdateAbortsOnError(t *testing.T) {
	store, _ := newStore()

	require.NoError(t, store.WriteAll("a.csv", header, []storage.Row{{"id": "1"}}))

	err := store.Update("a.csv", header, func(rows []storage.Row) ([]storage.Row, error) {
		return nil, assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	rows, err := store.ReadAll("a.csv")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "aborted update must not rewrite the file")
}

func TestStorageErrorOnReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	store := storage.NewStore(fs)

	err := store.WriteAll("a.csv", header, nil)
	require.Error(t, err)
	var storageErr *storage.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "a.csv", storageErr.Path)
}
