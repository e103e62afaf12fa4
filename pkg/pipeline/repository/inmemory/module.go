package inmemory

import (
	"go.uber.org/fx"

	"github.com/ananya923/movieflow/pkg/pipeline/repository"
)

// Module provides the in-memory repository as the RunRepository
// implementation.
var Module = fx.Options(
	fx.Provide(
		fx.Annotate(
			NewInMemoryRunRepository,
			fx.As(new(repository.RunRepository)),
		),
	),
)
