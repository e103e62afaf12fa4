package task

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ananya923/movieflow/internal/artifact"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
)

func TestCleanupArtifactsTask_RemovesIntermediatesOnly(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	for _, name := range artifact.Intermediates() {
		require.NoError(t, reg.Store().Upload(ctx, "", name, strings.NewReader("x"), "text/csv"))
	}
	require.NoError(t, reg.Store().Upload(ctx, "", "visuals/avg_rating_by_genre.png", strings.NewReader("png"), "image/png"))
	require.NoError(t, reg.Store().Upload(ctx, "", artifact.MergedParquet, strings.NewReader("PAR1"), "application/octet-stream"))
	execution := newTestExecution(CleanupArtifacts)

	exitStatus, err := NewCleanupArtifactsTask(reg).Execute(ctx, execution)
	require.NoError(t, err)
	assert.Equal(t, model.ExitStatusCompleted, exitStatus)
	assert.Equal(t, len(artifact.Intermediates()), execution.ExecutionContext.GetInt("removed_artifacts"))

	for _, name := range artifact.Intermediates() {
		assert.False(t, objectExists(t, reg, name), name)
	}
	assert.True(t, objectExists(t, reg, "visuals/avg_rating_by_genre.png"))
	assert.True(t, objectExists(t, reg, artifact.MergedParquet))
}

func TestCleanupArtifactsTask_MissingArtifactsAreTolerated(t *testing.T) {
	reg := newTestRegistry(t)
	execution := newTestExecution(CleanupArtifacts)

	exitStatus, err := NewCleanupArtifactsTask(reg).Execute(context.Background(), execution)
	require.NoError(t, err)
	assert.Equal(t, model.ExitStatusCompleted, exitStatus)
	assert.Equal(t, len(artifact.Intermediates()), execution.ExecutionContext.GetInt("removed_artifacts"))
}
