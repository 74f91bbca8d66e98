package cli

import (
	"fmt"

	"shopReco/pkg/config"
	"shopReco/pkg/database"
	"shopReco/pkg/logger"

	"gorm.io/gorm"
)

// openDatabase loads the env config and opens the postgres pool for the
// ingest commands.
func openDatabase() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.App.Environment)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return cfg, db, nil
}
