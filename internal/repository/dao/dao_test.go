package dao

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, InitTables(db))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) User {
	t.Helper()

	user, err := NewUserDAO(db).Insert(context.Background(), User{
		Email:    name + "@ghostpin.test",
		Username: name,
		Password: "hash",
	})
	require.NoError(t, err)

	return user
}

func seedPlace(t *testing.T, db *gorm.DB, creatorID uint, status string, lat, lng float64) Place {
	t.Helper()

	place := Place{
		Name:         "Place " + uuid.NewString()[:8],
		Description:  "A quiet spot",
		Latitude:     lat,
		Longitude:    lng,
		Category:     "mysterious",
		Difficulty:   "easy",
		SafetyRating: 3,
		CreatedByID:  creatorID,
		Status:       status,
	}
	require.NoError(t, db.Create(&place).Error)

	return place
}

func profileOf(t *testing.T, db *gorm.DB, userID uint) Profile {
	t.Helper()

	profile, err := NewProfileDAO(db).GetOrCreate(context.Background(), userID)
	require.NoError(t, err)

	return profile
}
