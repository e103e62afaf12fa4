// Package gcs provides the Fx module for the GCS storage adapter.
package gcs

import (
	"go.uber.org/fx"

	storageAdapter "github.com/ananya923/movieflow/pkg/pipeline/storage"
)

// Module provides the GCSProvider into the storage provider group.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewGCSProvider,
		fx.As(new(storageAdapter.Provider)),
		fx.ResultTags(`group:"storage_providers"`),
	)),
)
