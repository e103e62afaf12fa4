package job

import (
	"go.uber.org/fx"
)

// Module provides the pipeline graph to the Fx graph.
var Module = fx.Options(
	fx.Provide(BuildGraph),
)
