// Package sink opens and migrates the relational database the merged
// dataset is loaded into, and implements the atomic table replacement.
package sink

import (
	"fmt"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ananya923/movieflow/pkg/pipeline/config"
	"github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

// DialectorFactory builds a gorm.Dialector from a DSN.
type DialectorFactory func(dsn string) gorm.Dialector

var (
	dialectorRegistry = make(map[string]DialectorFactory)
	dialectorMutex    sync.RWMutex
)

// RegisterDialector registers a DialectorFactory for the given sink type.
func RegisterDialector(sinkType string, factory DialectorFactory) {
	dialectorMutex.Lock()
	defer dialectorMutex.Unlock()
	if _, exists := dialectorRegistry[sinkType]; exists {
		logger.Warnf("Dialector for sink type '%s' already registered. Overwriting.", sinkType)
	}
	dialectorRegistry[sinkType] = factory
}

func init() {
	RegisterDialector("postgres", func(dsn string) gorm.Dialector { return postgres.Open(dsn) })
	RegisterDialector("mysql", func(dsn string) gorm.Dialector { return mysql.Open(dsn) })
	RegisterDialector("sqlite", func(dsn string) gorm.Dialector { return sqlite.Open(dsn) })
}

// Open establishes a GORM connection for the configured sink type.
func Open(cfg config.SinkConfig) (*gorm.DB, error) {
	dialectorMutex.RLock()
	factory, ok := dialectorRegistry[cfg.Type]
	dialectorMutex.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no dialector registered for sink type: %s", cfg.Type)
	}

	db, err := gorm.Open(factory(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s sink: %w", cfg.Type, err)
	}
	logger.Infof("Opened %s sink connection.", cfg.Type)
	return db, nil
}

// QualifiedTable returns the table reference for SQL statements. Postgres
// sinks qualify the table with the configured schema; MySQL selects the
// database via the DSN and SQLite has no schemas.
func QualifiedTable(cfg config.SinkConfig) string {
	if cfg.Type == "postgres" && cfg.Schema != "" {
		return cfg.Schema + "." + cfg.Table
	}
	return cfg.Table
}
