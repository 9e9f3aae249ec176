package persistence_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-admin/internal/application/store"
	"github.com/jhoicas/portal-admin/internal/infrastructure/persistence"
)

func TestFileStateRepo_LoadMissingReturnsNil(t *testing.T) {
	repo := persistence.NewFileStateRepository(filepath.Join(t.TempDir(), "nada.json"))

	state, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestFileStateRepo_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "admin-portal-storage.json")
	repo := persistence.NewFileStateRepository(path)
	seed := store.Seed(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	require.NoError(t, repo.Save(context.Background(), &seed))
	got, err := repo.Load(context.Background())

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Users, len(seed.Users))
	assert.Len(t, got.Products, len(seed.Products))
	assert.Equal(t, seed.Companies, got.Companies)
	assert.True(t, seed.Products[0].Price.Equal(got.Products[0].Price))
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStateRepo_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roto.json")
	require.NoError(t, os.WriteFile(path, []byte("{no-json"), 0o644))

	_, err := persistence.NewFileStateRepository(path).Load(context.Background())

	assert.Error(t, err)
}

func TestFileStateRepo_Reset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estado.json")
	repo := persistence.NewFileStateRepository(path)
	seed := store.Seed(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(context.Background(), &seed))

	require.NoError(t, repo.Reset(context.Background()))
	state, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, state)

	// Borrar dos veces no es un error.
	assert.NoError(t, repo.Reset(context.Background()))
}
