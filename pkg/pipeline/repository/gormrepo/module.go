package gormrepo

import (
	"go.uber.org/fx"

	"github.com/ananya923/movieflow/pkg/pipeline/repository"
)

// Module provides the GORM-backed repository as the RunRepository
// implementation. The *gorm.DB connection is expected from the application
// graph.
var Module = fx.Options(
	fx.Provide(
		fx.Annotate(
			NewGormRunRepository,
			fx.As(new(repository.RunRepository)),
		),
	),
)
