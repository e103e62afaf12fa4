package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	config "github.com/ananya923/movieflow/pkg/pipeline/config"
	metrics "github.com/ananya923/movieflow/pkg/pipeline/metrics"
	logger "github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

// Module decorates the no-op metrics abstractions with real backends when
// observability is enabled in the configuration.
var Module = fx.Options(
	fx.Decorate(decorateRecorder),
	fx.Decorate(decorateTracer),
)

// decorateRecorder swaps in the Prometheus recorder and starts the
// exposition endpoint when metrics are enabled.
func decorateRecorder(lc fx.Lifecycle, base metrics.MetricRecorder, cfg *config.Config) metrics.MetricRecorder {
	mc := cfg.Movieflow.Metrics
	if !mc.Enabled {
		return base
	}

	recorder := NewPrometheusRecorder()

	if mc.Port > 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(recorder.GetRegistry(), promhttp.HandlerOpts{}))
		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", mc.Port),
			Handler: mux,
		}
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						logger.Errorf("Prometheus exposition server failed: %v", err)
					}
				}()
				logger.Infof("Prometheus metrics available at :%d/metrics", mc.Port)
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return server.Shutdown(ctx)
			},
		})
	}

	return recorder
}

// decorateTracer swaps in the OpenTelemetry tracer when tracing is enabled.
func decorateTracer(lc fx.Lifecycle, base metrics.Tracer, cfg *config.Config) (metrics.Tracer, error) {
	mc := cfg.Movieflow.Metrics
	if !mc.TracingEnabled || mc.OTLPEndpoint == "" {
		return base, nil
	}

	tracer, err := NewOpenTelemetryTracer(context.Background(), mc.OTLPEndpoint, mc.ServiceName)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tracer.Shutdown(ctx)
		},
	})

	return tracer, nil
}
