package logging

import (
	"context"

	listener "github.com/ananya923/movieflow/pkg/pipeline/listener"
	model "github.com/ananya923/movieflow/pkg/pipeline/model"
	logger "github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

// --- Run Execution Listener ---

type LoggingRunListener struct{}

func NewLoggingRunListener() listener.RunListener {
	return &LoggingRunListener{}
}

func (l *LoggingRunListener) BeforeRun(ctx context.Context, execution *model.RunExecution) {
	logger.Infof("RunListener: BeforeRun - Pipeline: %s, ID: %s, Params: %+v", execution.PipelineName, execution.ID, execution.Parameters)
}

func (l *LoggingRunListener) AfterRun(ctx context.Context, execution *model.RunExecution) {
	logger.Infof("RunListener: AfterRun - Pipeline: %s, Status: %s, ExitStatus: %s", execution.PipelineName, execution.Status, execution.ExitStatus)
}

var _ listener.RunListener = (*LoggingRunListener)(nil)

// --- Task Execution Listener ---

type LoggingTaskListener struct{}

func NewLoggingTaskListener() listener.TaskListener {
	return &LoggingTaskListener{}
}

func (l *LoggingTaskListener) BeforeTask(ctx context.Context, execution *model.TaskExecution) {
	logger.Infof("TaskListener: BeforeTask - Task: %s, ID: %s", execution.TaskName, execution.ID)
}

func (l *LoggingTaskListener) AfterTask(ctx context.Context, execution *model.TaskExecution) {
	if execution.ExitStatus == model.ExitStatusUpstreamFailed {
		logger.Warnf("TaskListener: AfterTask - Task: %s skipped, ExitStatus: %s", execution.TaskName, execution.ExitStatus)
		return
	}
	logger.Infof("TaskListener: AfterTask - Task: %s, Status: %s, ExitStatus: %s, Duration: %s", execution.TaskName, execution.Status, execution.ExitStatus, execution.Duration())
}

var _ listener.TaskListener = (*LoggingTaskListener)(nil)
