package persistence_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-admin/internal/application/store"
	"github.com/jhoicas/portal-admin/internal/domain/repository"
	"github.com/jhoicas/portal-admin/internal/infrastructure/persistence"
)

func TestRedisStateRepo_LoadMissingKey(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectGet(repository.StateKey).RedisNil()

	state, err := persistence.NewRedisStateRepository(db).Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, state)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStateRepo_SaveAndLoad(t *testing.T) {
	db, mock := redismock.NewClientMock()
	seed := store.Seed(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	raw, err := json.Marshal(&seed)
	require.NoError(t, err)

	mock.ExpectSet(repository.StateKey, raw, 0).SetVal("OK")
	mock.ExpectGet(repository.StateKey).SetVal(string(raw))

	repo := persistence.NewRedisStateRepository(db)
	require.NoError(t, repo.Save(context.Background(), &seed))
	got, err := repo.Load(context.Background())

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, seed.Users, got.Users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStateRepo_GetError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectGet(repository.StateKey).SetErr(errors.New("conexión rechazada"))

	_, err := persistence.NewRedisStateRepository(db).Load(context.Background())

	assert.ErrorContains(t, err, "redis get")
}

func TestRedisStateRepo_Reset(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectDel(repository.StateKey).SetVal(1)

	require.NoError(t, persistence.NewRedisStateRepository(db).Reset(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
