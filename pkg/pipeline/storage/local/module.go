// Package local provides the Fx module for the local storage adapter.
package local

import (
	"go.uber.org/fx"

	storageAdapter "github.com/ananya923/movieflow/pkg/pipeline/storage"
)

// Module provides the LocalProvider into the storage provider group.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewLocalProvider,
		fx.As(new(storageAdapter.Provider)),
		fx.ResultTags(`group:"storage_providers"`),
	)),
)
