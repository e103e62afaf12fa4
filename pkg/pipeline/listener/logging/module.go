package logging

import (
	"go.uber.org/fx"
)

// Module provides the logging listeners into the listener groups consumed
// by the runner.
var Module = fx.Options(
	fx.Provide(
		fx.Annotate(
			NewLoggingRunListener,
			fx.ResultTags(`group:"run_listeners"`),
		),
		fx.Annotate(
			NewLoggingTaskListener,
			fx.ResultTags(`group:"task_listeners"`),
		),
	),
)
