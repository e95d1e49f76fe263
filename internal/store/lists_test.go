package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkbraam/wishd/internal/keygen"
	"github.com/mkbraam/wishd/internal/validate"
)

func TestCreateList(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		s := setupStore(t)

		created, err := s.CreateList(ctx, false, "Birthday", "things I want")
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Len(t, created.Key, keygen.TokenLength)

		found, err := s.GetListByKey(ctx, created.Key)
		require.NoError(t, err)
		assert.Equal(t, created, found)

		byID, err := s.GetListByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, byID)
	})

	t.Run("title too short", func(t *testing.T) {
		s := setupStore(t)

		_, err := s.CreateList(ctx, false, "x", "")
		var verrs validate.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "title")

		n, err := s.CountLists(ctx)
		require.NoError(t, err)
		assert.Zero(t, n, "no row persisted on validation failure")
	})

	t.Run("title too long", func(t *testing.T) {
		s := setupStore(t)

		_, err := s.CreateList(ctx, false, strings.Repeat("a", 257), "")
		var verrs validate.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "title")
	})

	t.Run("description at and over the limit", func(t *testing.T) {
		s := setupStore(t)

		_, err := s.CreateList(ctx, false, "ok", strings.Repeat("d", 4096))
		require.NoError(t, err)

		_, err = s.CreateList(ctx, false, "ok", strings.Repeat("d", 4097))
		var verrs validate.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "description")
	})

	t.Run("keys are unique per list", func(t *testing.T) {
		s := setupStore(t)

		a, err := s.CreateList(ctx, false, "first", "")
		require.NoError(t, err)
		b, err := s.CreateList(ctx, false, "second", "")
		require.NoError(t, err)
		assert.NotEqual(t, a.Key, b.Key)
	})
}

func TestPrivateListAddressing(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	public, err := s.CreateList(ctx, false, "public wishes", "")
	require.NoError(t, err)
	private, err := s.CreateList(ctx, true, "secret wishes", "")
	require.NoError(t, err)

	lists, err := s.PublicLists(ctx)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, public.ID, lists[0].ID)

	found, err := s.GetListByKey(ctx, private.Key)
	require.NoError(t, err)
	assert.Equal(t, private.ID, found.ID)

	_, err = s.GetListByKey(ctx, "nope"+private.Key[4:])
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateList(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	created, err := s.CreateList(ctx, false, "before", "old words")
	require.NoError(t, err)

	updated, err := s.UpdateList(ctx, created.ID, true, "after", "")
	require.NoError(t, err)
	assert.Equal(t, created.Key, updated.Key, "key is immutable")
	assert.True(t, updated.IsPrivate)
	assert.Equal(t, "after", updated.Title)
	assert.Empty(t, updated.Description, "update is full replace")

	_, err = s.UpdateList(ctx, created.ID, false, "x", "")
	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)

	kept, err := s.GetListByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", kept.Title, "failed update leaves the row alone")

	_, err = s.UpdateList(ctx, 99999, false, "valid title", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteListCascadesItems(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	list, err := s.CreateList(ctx, false, "doomed", "")
	require.NoError(t, err)
	item, err := s.CreateItem(ctx, list.ID, "also doomed", "")
	require.NoError(t, err)

	require.NoError(t, s.DeleteList(ctx, list.ID))

	_, err = s.GetListByID(ctx, list.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetItem(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNotFound, "items go with their list")

	assert.ErrorIs(t, s.DeleteList(ctx, list.ID), ErrNotFound)
}

func TestItems(t *testing.T) {
	ctx := context.Background()

	t.Run("create and list", func(t *testing.T) {
		s := setupStore(t)
		list, err := s.CreateList(ctx, false, "gifts", "")
		require.NoError(t, err)

		first, err := s.CreateItem(ctx, list.ID, "socks", "wool")
		require.NoError(t, err)
		_, err = s.CreateItem(ctx, list.ID, "book", "")
		require.NoError(t, err)

		items, err := s.ItemsByList(ctx, list.ID)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, *first, items[0])

		n, err := s.CountItems(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
	})

	t.Run("rejects invalid list id before storage", func(t *testing.T) {
		s := setupStore(t)

		_, err := s.CreateItem(ctx, 0, "valid title", "")
		var verrs validate.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "list_id")
	})

	t.Run("update is full replace", func(t *testing.T) {
		s := setupStore(t)
		list, err := s.CreateList(ctx, false, "gifts", "")
		require.NoError(t, err)
		item, err := s.CreateItem(ctx, list.ID, "socks", "wool")
		require.NoError(t, err)

		updated, err := s.UpdateItem(ctx, item.ID, "boots", "")
		require.NoError(t, err)
		assert.Equal(t, "boots", updated.Title)
		assert.Empty(t, updated.Description)
		assert.Equal(t, list.ID, updated.ListID)

		_, err = s.UpdateItem(ctx, 99999, "valid title", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		s := setupStore(t)
		list, err := s.CreateList(ctx, false, "gifts", "")
		require.NoError(t, err)
		item, err := s.CreateItem(ctx, list.ID, "socks", "")
		require.NoError(t, err)

		require.NoError(t, s.DeleteItem(ctx, item.ID))
		_, err = s.GetItem(ctx, item.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
