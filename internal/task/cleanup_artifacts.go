package task

import (
	"context"

	"github.com/ananya923/movieflow/internal/artifact"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
	"github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

// CleanupArtifactsTask removes the intermediate CSV artifacts after the
// pipeline has produced its deliverables.
type CleanupArtifactsTask struct {
	registry *artifact.Registry
}

// NewCleanupArtifactsTask creates the cleanup task.
func NewCleanupArtifactsTask(registry *artifact.Registry) *CleanupArtifactsTask {
	return &CleanupArtifactsTask{registry: registry}
}

// Name implements task.Task.
func (t *CleanupArtifactsTask) Name() string { return CleanupArtifacts }

// Execute deletes each intermediate artifact best-effort. A failed delete is
// logged but never fails the run; the data is already in the sink and the
// leftover files are harmless.
func (t *CleanupArtifactsTask) Execute(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error) {
	removed := 0
	for _, name := range artifact.Intermediates() {
		if err := t.registry.Store().DeleteObject(ctx, "", name); err != nil {
			logger.Warnf("Failed to delete intermediate artifact '%s': %v", name, err)
			continue
		}
		removed++
	}

	execution.ExecutionContext.Put("removed_artifacts", removed)
	logger.Infof("Cleanup removed %d of %d intermediate artifacts.", removed, len(artifact.Intermediates()))
	return model.ExitStatusCompleted, nil
}
