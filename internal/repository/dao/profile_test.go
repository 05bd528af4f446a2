package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileDAO_GetOrCreateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	d := NewProfileDAO(db)
	ctx := context.Background()

	first, err := d.GetOrCreate(ctx, 99)
	require.NoError(t, err)
	second, err := d.GetOrCreate(ctx, 99)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 0, second.Points)
	assert.Equal(t, 1, second.Level)

	var total int64
	require.NoError(t, db.Model(&Profile{}).Where("user_id = ?", 99).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestProfileDAO_AwardRecomputesLevel(t *testing.T) {
	db := newTestDB(t)
	d := NewProfileDAO(db)
	ctx := context.Background()
	user := seedUser(t, db, "ada")

	tests := []struct {
		delta      int
		wantPoints int
		wantLevel  int
	}{
		{delta: 49, wantPoints: 49, wantLevel: 1},
		{delta: 1, wantPoints: 50, wantLevel: 2},
		{delta: 150, wantPoints: 200, wantLevel: 3},
		{delta: 0, wantPoints: 200, wantLevel: 3},
		{delta: 300, wantPoints: 500, wantLevel: 4},
		{delta: 500, wantPoints: 1000, wantLevel: 5},
	}
	for _, tc := range tests {
		profile, err := d.Award(ctx, user.ID, tc.delta)
		require.NoError(t, err)
		assert.Equal(t, tc.wantPoints, profile.Points)
		assert.Equal(t, tc.wantLevel, profile.Level)

		stored := profileOf(t, db, user.ID)
		assert.Equal(t, tc.wantLevel, stored.Level)
	}
}

func TestProfileDAO_AwardRejectsNegative(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "ada")

	_, err := NewProfileDAO(db).Award(context.Background(), user.ID, -5)
	assert.ErrorIs(t, err, ErrNegativeAward)
	assert.Equal(t, 0, profileOf(t, db, user.ID).Points)
}

func TestProfileDAO_Top(t *testing.T) {
	db := newTestDB(t)
	d := NewProfileDAO(db)
	ctx := context.Background()

	low := seedUser(t, db, "low")
	high := seedUser(t, db, "high")
	_, err := d.Award(ctx, low.ID, 10)
	require.NoError(t, err)
	_, err = d.Award(ctx, high.ID, 300)
	require.NoError(t, err)

	top, err := d.Top(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, high.ID, top[0].UserID)
	assert.Equal(t, "high", top[0].User.Username)
}

func TestUserDAO_InsertDuplicate(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "ada")

	_, err := NewUserDAO(db).Insert(context.Background(), User{
		Email:    "ada@ghostpin.test",
		Username: "other",
		Password: "hash",
	})
	assert.ErrorIs(t, err, ErrUserExists)
}
