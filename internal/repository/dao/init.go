package dao

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Profile{},
		&Place{},
		&Vote{},
		&Favorite{},
		&CheckIn{},
		&Comment{},
		&Notification{},
		&Collection{},
		&CollectionPlace{},
		&Badge{},
		&UserBadge{},
		&Challenge{},
	)
}

// isUniqueViolation covers translated gorm errors, raw pgx errors and raw SQLite errors.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// insertOnce creates value inside a savepoint so a unique violation leaves the outer transaction usable.
func insertOnce(tx *gorm.DB, value interface{}) (bool, error) {
	err := tx.Transaction(func(sp *gorm.DB) error {
		return sp.Omit(clause.Associations).Create(value).Error
	})
	if err == nil {
		return true, nil
	}
	if isUniqueViolation(err) {
		return false, nil
	}

	return false, err
}
