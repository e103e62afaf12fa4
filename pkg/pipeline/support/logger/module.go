package logger

import "go.uber.org/fx"

// Module is an Fx module that wires the fx event logger adapter.
var Module = fx.Options(
	fx.WithLogger(NewFxLoggerAdapter),
)
