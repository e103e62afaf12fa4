package metrics

import (
	"go.uber.org/fx"
)

// Module is an Fx module that provides the metrics abstractions. It provides
// the no-op implementations as defaults; the infrastructure layer decorates
// them with real backends when observability is enabled.
var Module = fx.Options(
	fx.Provide(
		NewNoOpMetricRecorder,
		NewNoOpTracer,
	),
)
