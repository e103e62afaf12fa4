package sink

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/ananya923/movieflow/pkg/pipeline/config"
)

// NewSinkDB opens the configured sink, applies its migrations and ties the
// connection to the application lifecycle.
func NewSinkDB(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := Open(cfg.Movieflow.Sink)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db, cfg.Movieflow.Sink.Type); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	return db, nil
}

// NewSinkLoader builds the Loader over the sink connection.
func NewSinkLoader(db *gorm.DB, cfg *config.Config) *Loader {
	return NewLoader(db, QualifiedTable(cfg.Movieflow.Sink), cfg.Movieflow.Sink.BatchSize)
}

// Module provides the sink connection and loader to the Fx graph.
var Module = fx.Options(
	fx.Provide(
		NewSinkDB,
		NewSinkLoader,
	),
)
