package artifact

import (
	"context"

	"go.uber.org/fx"

	"github.com/ananya923/movieflow/pkg/pipeline/config"
	"github.com/ananya923/movieflow/pkg/pipeline/storage"
)

// NewPipelineRegistry resolves the configured artifact store and builds the
// registry over it.
func NewPipelineRegistry(resolver storage.Resolver, cfg *config.Config) (*Registry, error) {
	conn, err := resolver.ResolveConnection(context.Background(), cfg.Movieflow.Pipeline.StorageRef)
	if err != nil {
		return nil, err
	}
	return NewRegistry(conn), nil
}

// Module provides the artifact registry to the Fx graph.
var Module = fx.Options(
	fx.Provide(NewPipelineRegistry),
)
