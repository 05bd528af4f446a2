package dao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nearby(userID uint) Notification {
	return Notification{
		UserID:           userID,
		Title:            "Places nearby",
		Message:          "There are places near you.",
		NotificationType: "nearby_place",
	}
}

func TestNotificationDAO_InsertUnlessRecent(t *testing.T) {
	db := newTestDB(t)
	d := NewNotificationDAO(db)
	ctx := context.Background()
	since := time.Now().Add(-time.Hour)

	_, created, err := d.InsertUnlessRecent(ctx, nearby(1), since)
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = d.InsertUnlessRecent(ctx, nearby(1), since)
	require.NoError(t, err)
	assert.False(t, created)

	_, created, err = d.InsertUnlessRecent(ctx, nearby(2), since)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestNotificationDAO_InsertUnlessRecentAfterWindow(t *testing.T) {
	db := newTestDB(t)
	d := NewNotificationDAO(db)
	ctx := context.Background()

	old := nearby(1)
	old.CreatedAt = time.Now().Add(-2 * time.Hour)
	_, err := d.Insert(ctx, old)
	require.NoError(t, err)

	_, created, err := d.InsertUnlessRecent(ctx, nearby(1), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.True(t, created)
}

func TestNotificationDAO_OwnerScoped(t *testing.T) {
	db := newTestDB(t)
	d := NewNotificationDAO(db)
	ctx := context.Background()

	mine, err := d.Insert(ctx, nearby(1))
	require.NoError(t, err)
	_, err = d.Insert(ctx, nearby(1))
	require.NoError(t, err)
	theirs, err := d.Insert(ctx, nearby(2))
	require.NoError(t, err)

	assert.ErrorIs(t, d.MarkRead(ctx, 1, theirs.ID), ErrNotificationNotFound)
	assert.ErrorIs(t, d.Delete(ctx, 1, theirs.ID), ErrNotificationNotFound)

	require.NoError(t, d.MarkRead(ctx, 1, mine.ID))
	unread, err := d.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	marked, err := d.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)

	require.NoError(t, d.Delete(ctx, 1, mine.ID))
	list, err := d.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	cleared, err := d.DeleteAll(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)

	list, err = d.ListByUser(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
