package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/ejournal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRepo_PutGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteStateRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, StateUser, []byte(`{"id":4}`)))

	got, err := repo.Get(ctx, StateUser)
	require.NoError(t, err)
	assert.Equal(t, StateUser, got.Key)
	assert.JSONEq(t, `{"id":4}`, string(got.Value))
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestStateRepo_PutReplaces(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteStateRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, StateContent, []byte(`{"a":1}`)))
	require.NoError(t, repo.Put(ctx, StateContent, []byte(`{"a":2}`)))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.JSONEq(t, `{"a":2}`, string(list[0].Value))
}

func TestStateRepo_Get_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteStateRepo(db)

	_, err := repo.Get(context.Background(), StatePreferences)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStateRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteStateRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, StatePreferences, []byte(`{}`)))
	require.NoError(t, repo.Delete(ctx, StatePreferences))

	_, err := repo.Get(ctx, StatePreferences)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStateRepo_ListOrderedByKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteStateRepo(db)
	ctx := context.Background()

	for _, k := range []StateKey{StateUser, StateContent, StatePreferences} {
		require.NoError(t, repo.Put(ctx, k, []byte(`{}`)))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	var keys []StateKey
	for _, e := range list {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []StateKey{StateContent, StatePreferences, StateUser}, keys)
}

func TestInstanceRepo(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteInstanceRepo(db)
	ctx := context.Background()

	in, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, in.InstanceID)
	assert.Empty(t, in.APIURL)

	require.NoError(t, repo.SetAPIURL(ctx, "https://ejournal.example"))
	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, in.InstanceID, got.InstanceID)
	assert.Equal(t, "https://ejournal.example", got.APIURL)
}

func TestInstanceRepo_NotFoundWhenDeleted(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteInstanceRepo(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `DELETE FROM client_instance`)
	require.NoError(t, err)

	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.SetAPIURL(ctx, "x"), ErrNotFound)
}
