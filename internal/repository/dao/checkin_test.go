package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInDAO_InsertOnce(t *testing.T) {
	db := newTestDB(t)
	d := NewCheckInDAO(db)
	ctx := context.Background()
	user := seedUser(t, db, "ada")
	place := seedPlace(t, db, user.ID, StatusApproved, 0, 0)

	created, err := d.Insert(ctx, CheckIn{UserID: user.ID, PlaceID: place.ID, PointsAwarded: 10, Notes: "spooky"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 10, profileOf(t, db, user.ID).Points)

	_, err = d.Insert(ctx, CheckIn{UserID: user.ID, PlaceID: place.ID, PointsAwarded: 10})
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	assert.Equal(t, 10, profileOf(t, db, user.ID).Points)

	total, err := d.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	found, err := d.FindByUserAndPlace(ctx, user.ID, place.ID)
	require.NoError(t, err)
	assert.Equal(t, "spooky", found.Notes)
}

func TestCheckInDAO_RequiresApprovedPlace(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "ada")
	pending := seedPlace(t, db, user.ID, StatusPending, 0, 0)

	_, err := NewCheckInDAO(db).Insert(context.Background(), CheckIn{UserID: user.ID, PlaceID: pending.ID, PointsAwarded: 10})
	assert.ErrorIs(t, err, ErrPlaceNotFound)
	assert.Equal(t, 0, profileOf(t, db, user.ID).Points)
}

func TestCheckInDAO_Lists(t *testing.T) {
	db := newTestDB(t)
	d := NewCheckInDAO(db)
	ctx := context.Background()
	user := seedUser(t, db, "ada")
	first := seedPlace(t, db, user.ID, StatusApproved, 0, 0)
	second := seedPlace(t, db, user.ID, StatusApproved, 1, 1)

	_, err := d.Insert(ctx, CheckIn{UserID: user.ID, PlaceID: first.ID, PointsAwarded: 10})
	require.NoError(t, err)
	_, err = d.Insert(ctx, CheckIn{UserID: user.ID, PlaceID: second.ID, PointsAwarded: 10})
	require.NoError(t, err)

	mine, err := d.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.NotEmpty(t, mine[0].Place.Name)

	atPlace, err := d.ListByPlace(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, atPlace, 1)

	_, err = d.FindByID(ctx, 404)
	assert.ErrorIs(t, err, ErrCheckInNotFound)
}
