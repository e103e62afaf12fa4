package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	metrics "github.com/ananya923/movieflow/pkg/pipeline/metrics"
	model "github.com/ananya923/movieflow/pkg/pipeline/model"
	logger "github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

// PrometheusRecorder is a Prometheus implementation of the
// metrics.MetricRecorder interface.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	runDurationSeconds *prometheus.HistogramVec
	runStatusCounter   *prometheus.CounterVec

	taskDurationSeconds *prometheus.HistogramVec
	taskStatusCounter   *prometheus.CounterVec
	taskRowsCounter     *prometheus.CounterVec

	operationDuration *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a new instance of PrometheusRecorder.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()

	// Register Go runtime and process metrics.
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &PrometheusRecorder{
		registry: registry,
		runDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pipeline_run_duration_seconds",
			Help:    "Duration of pipeline run executions.",
			Buckets: prometheus.DefBuckets,
		}, []string{"pipeline_name", "status", "exit_status"}),
		runStatusCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pipeline_run_status_total",
			Help: "Total number of pipeline run executions by status.",
		}, []string{"pipeline_name", "status"}),
		taskDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pipeline_task_duration_seconds",
			Help:    "Duration of pipeline task executions.",
			Buckets: prometheus.DefBuckets,
		}, []string{"pipeline_name", "task_name", "status", "exit_status"}),
		taskStatusCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pipeline_task_status_total",
			Help: "Total number of pipeline task executions by status.",
		}, []string{"pipeline_name", "task_name", "status"}),
		taskRowsCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pipeline_task_rows_total",
			Help: "Total rows processed by task and direction.",
		}, []string{"task_name", "direction"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pipeline_operation_duration_seconds",
			Help:    "Duration of named pipeline operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	registry.MustRegister(r.runDurationSeconds)
	registry.MustRegister(r.runStatusCounter)
	registry.MustRegister(r.taskDurationSeconds)
	registry.MustRegister(r.taskStatusCounter)
	registry.MustRegister(r.taskRowsCounter)
	registry.MustRegister(r.operationDuration)

	return r
}

// GetRegistry returns the Prometheus registry for exposition.
func (r *PrometheusRecorder) GetRegistry() *prometheus.Registry {
	return r.registry
}

// RecordRunStart records the start of a RunExecution.
func (r *PrometheusRecorder) RecordRunStart(ctx context.Context, execution *model.RunExecution) {
	r.runStatusCounter.WithLabelValues(execution.PipelineName, string(execution.Status)).Inc()
	logger.Debugf("Metrics: run '%s' started.", execution.PipelineName)
}

// RecordRunEnd records the end of a RunExecution.
func (r *PrometheusRecorder) RecordRunEnd(ctx context.Context, execution *model.RunExecution) {
	if execution.EndTime.IsZero() {
		return
	}
	duration := execution.EndTime.Sub(execution.StartTime).Seconds()

	r.runDurationSeconds.WithLabelValues(
		execution.PipelineName,
		string(execution.Status),
		string(execution.ExitStatus),
	).Observe(duration)

	logger.Debugf("Metrics: run '%s' ended. Duration: %.3fs", execution.PipelineName, duration)
}

// RecordTaskStart records the start of a TaskExecution.
func (r *PrometheusRecorder) RecordTaskStart(ctx context.Context, execution *model.TaskExecution) {
	pipelineName := ""
	if execution.RunExecution != nil {
		pipelineName = execution.RunExecution.PipelineName
	}
	r.taskStatusCounter.WithLabelValues(pipelineName, execution.TaskName, string(execution.Status)).Inc()
	logger.Debugf("Metrics: task '%s' started.", execution.TaskName)
}

// RecordTaskEnd records the end of a TaskExecution.
func (r *PrometheusRecorder) RecordTaskEnd(ctx context.Context, execution *model.TaskExecution) {
	if execution.EndTime.IsZero() {
		return
	}
	duration := execution.EndTime.Sub(execution.StartTime).Seconds()

	pipelineName := ""
	if execution.RunExecution != nil {
		pipelineName = execution.RunExecution.PipelineName
	}

	r.taskDurationSeconds.WithLabelValues(
		pipelineName,
		execution.TaskName,
		string(execution.Status),
		string(execution.ExitStatus),
	).Observe(duration)

	logger.Debugf("Metrics: task '%s' ended. Duration: %.3fs", execution.TaskName, duration)
}

// RecordRowsProcessed records the number of rows a task read or wrote.
func (r *PrometheusRecorder) RecordRowsProcessed(ctx context.Context, taskName string, direction string, count int) {
	r.taskRowsCounter.WithLabelValues(taskName, direction).Add(float64(count))
}

// RecordDuration records the execution time of a named operation.
func (r *PrometheusRecorder) RecordDuration(ctx context.Context, name string, duration time.Duration, tags map[string]string) {
	r.operationDuration.WithLabelValues(name).Observe(duration.Seconds())
}

var _ metrics.MetricRecorder = (*PrometheusRecorder)(nil)
