package sink

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	"github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies the embedded schema migrations for the given sink type.
// Running against an up-to-date schema is a no-op.
func Migrate(db *gorm.DB, sinkType string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying sql.DB: %w", err)
	}

	var driver database.Driver
	switch sinkType {
	case "postgres":
		driver, err = migratepostgres.WithInstance(sqlDB, &migratepostgres.Config{})
	case "mysql":
		driver, err = migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	case "sqlite":
		driver, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	default:
		return fmt.Errorf("no migrations available for sink type: %s", sinkType)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s migration driver: %w", sinkType, err)
	}

	source, err := iofs.New(migrationsFS, "migrations/"+sinkType)
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations for %s: %w", sinkType, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, sinkType, driver)
	if err != nil {
		return fmt.Errorf("failed to initialize migrations for %s: %w", sinkType, err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Debugf("Sink schema already up to date.")
			return nil
		}
		return fmt.Errorf("failed to apply sink migrations: %w", err)
	}
	logger.Infof("Applied sink schema migrations for %s.", sinkType)
	return nil
}
