package storage

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/fx"

	coreConfig "github.com/ananya923/movieflow/pkg/pipeline/config"
)

// connectionResolver resolves named storage connections to the provider of
// their configured type.
type connectionResolver struct {
	providers map[string]Provider
	cfg       *coreConfig.Config
}

// ResolverParams collects all registered storage providers from the Fx graph.
type ResolverParams struct {
	fx.In
	Providers []Provider `group:"storage_providers"`
	Config    *coreConfig.Config
}

// NewConnectionResolver creates a Resolver over the registered providers,
// keyed by their adapter type.
func NewConnectionResolver(params ResolverParams) Resolver {
	providers := make(map[string]Provider, len(params.Providers))
	for _, p := range params.Providers {
		providers[p.Type()] = p
	}
	return &connectionResolver{
		providers: providers,
		cfg:       params.Config,
	}
}

// ResolveConnection resolves a Connection instance by its configured name.
func (r *connectionResolver) ResolveConnection(ctx context.Context, name string) (Connection, error) {
	namedConfig, ok := r.cfg.Movieflow.StorageConfigs[name]
	if !ok {
		return nil, fmt.Errorf("storage connection '%s' not found in configuration", name)
	}

	var tempCfg struct {
		Type string `yaml:"type"`
	}
	decoderConfig := &mapstructure.DecoderConfig{
		Result:  &tempCfg,
		TagName: "yaml",
	}
	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder for storage type of '%s': %w", name, err)
	}
	if err := decoder.Decode(namedConfig); err != nil {
		return nil, fmt.Errorf("failed to decode storage type for '%s': %w", name, err)
	}

	provider, ok := r.providers[tempCfg.Type]
	if !ok {
		return nil, fmt.Errorf("no storage provider found for type '%s' (connection '%s')", tempCfg.Type, name)
	}

	conn, err := provider.GetConnection(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get storage connection '%s' from provider '%s': %w", name, tempCfg.Type, err)
	}
	return conn, nil
}

// Module provides the connection resolver to the Fx graph.
var Module = fx.Options(
	fx.Provide(NewConnectionResolver),
)
