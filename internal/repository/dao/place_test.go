package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceDAO_InsertAwardsSubmitter(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "ada")

	place, err := NewPlaceDAO(db).Insert(context.Background(), Place{
		Name:         "Old Mill",
		Description:  "Haunted",
		Latitude:     10,
		Longitude:    20,
		Category:     "historical",
		Difficulty:   "moderate",
		SafetyRating: 4,
		CreatedByID:  user.ID,
		Status:       StatusPending,
	}, 20)
	require.NoError(t, err)
	assert.NotZero(t, place.ID)
	assert.Equal(t, 20, profileOf(t, db, user.ID).Points)
}

func TestPlaceDAO_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	d := NewPlaceDAO(db)
	ctx := context.Background()
	creator := seedUser(t, db, "creator")
	place := seedPlace(t, db, creator.ID, StatusPending, 0, 0)

	approved, err := d.UpdateStatus(ctx, place.ID, StatusApproved, &Notification{
		Title:            "Place Approved",
		Message:          "approved",
		NotificationType: "place_approved",
		RelatedPlaceID:   &place.ID,
	}, 50)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)
	assert.Equal(t, 50, profileOf(t, db, creator.ID).Points)
	assert.Equal(t, 2, profileOf(t, db, creator.ID).Level)

	var notifications []Notification
	require.NoError(t, db.Where("user_id = ?", creator.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, "place_approved", notifications[0].NotificationType)

	_, err = d.UpdateStatus(ctx, place.ID, StatusRejected, &Notification{
		Title:            "Place Rejected",
		Message:          "rejected",
		NotificationType: "place_rejected",
	}, 0)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	stored, err := d.FindByID(ctx, place.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, stored.Status)

	var total int64
	require.NoError(t, db.Model(&Notification{}).Where("user_id = ?", creator.ID).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestPlaceDAO_UpdateStatusMissing(t *testing.T) {
	db := newTestDB(t)

	_, err := NewPlaceDAO(db).UpdateStatus(context.Background(), 404, StatusApproved, &Notification{}, 50)
	assert.ErrorIs(t, err, ErrPlaceNotFound)
}

func TestPlaceDAO_ListAndTrending(t *testing.T) {
	db := newTestDB(t)
	d := NewPlaceDAO(db)
	ctx := context.Background()
	user := seedUser(t, db, "ada")

	mill := seedPlace(t, db, user.ID, StatusApproved, 0, 0)
	require.NoError(t, db.Model(&mill).Updates(map[string]interface{}{"name": "Old Mill", "visit_count": 5}).Error)
	tower := seedPlace(t, db, user.ID, StatusApproved, 0, 0)
	require.NoError(t, db.Model(&tower).Updates(map[string]interface{}{"name": "Ghost Tower", "category": "urban"}).Error)
	seedPlace(t, db, user.ID, StatusPending, 0, 0)

	places, total, err := d.List(ctx, PlaceFilter{Limit: 12})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, places, 2)

	places, total, err = d.List(ctx, PlaceFilter{Query: "ghost", Limit: 12})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, tower.ID, places[0].ID)

	_, total, err = d.List(ctx, PlaceFilter{Category: "urban", Limit: 12})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	trending, err := d.Trending(ctx, 6)
	require.NoError(t, err)
	require.Len(t, trending, 2)
	assert.Equal(t, mill.ID, trending[0].ID)

	require.NoError(t, d.IncrementVisitCount(ctx, tower.ID))
	stored, err := d.FindByID(ctx, tower.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.VisitCount)

	pending, err := d.CountByStatus(ctx, StatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)
}

func TestPlaceDAO_Update(t *testing.T) {
	db := newTestDB(t)
	d := NewPlaceDAO(db)
	ctx := context.Background()
	user := seedUser(t, db, "ada")
	place := seedPlace(t, db, user.ID, StatusApproved, 0, 0)

	place.Name = "Renamed"
	place.Latitude = 12.5
	place.Status = StatusRejected
	updated, err := d.Update(ctx, place)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.InDelta(t, 12.5, updated.Latitude, 1e-9)
	assert.Equal(t, StatusApproved, updated.Status)

	_, err = d.Update(ctx, Place{ID: 404, Name: "x"})
	assert.ErrorIs(t, err, ErrPlaceNotFound)
}
