package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ghostpin/ghostpin-api/internal/api"
	"github.com/ghostpin/ghostpin-api/internal/config"
	"github.com/ghostpin/ghostpin-api/internal/db"
	"github.com/ghostpin/ghostpin-api/internal/logger"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	database, err := openDatabase(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	s := api.NewServer(conf, database)
	defer s.Close()

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// openDatabase prefers DATABASE_URL, then a local SQLite file, then the postgres section of the config.
func openDatabase(conf *config.AppConfig) (*gorm.DB, error) {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return db.OpenPostgresWithURL(dbURL)
	}
	if path := os.Getenv("SQLITE_PATH"); path != "" {
		zap.L().Info("using sqlite database", zap.String("path", path))
		return db.OpenSQLite(path)
	}

	return db.OpenPostgres(conf.Postgres)
}
