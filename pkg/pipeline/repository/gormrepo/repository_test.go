package gormrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ananya923/movieflow/pkg/pipeline/model"
)

func newTestRepository(t *testing.T) *GormRunRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	repo, err := NewGormRunRepository(db)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Exec("DROP TABLE pipeline_task_executions")
		db.Exec("DROP TABLE pipeline_run_executions")
	})
	return repo
}

func TestGormRunRepository_SaveAndFindRun(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	run := model.NewRunExecution("movie_data_pipeline", map[string]interface{}{"movie_count": 10})
	run.ExecutionContext.Put("data_dir", "/tmp/movies")
	require.NoError(t, repo.SaveRunExecution(ctx, run))

	found, err := repo.FindRunExecutionByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, found.ID)
	assert.Equal(t, "movie_data_pipeline", found.PipelineName)
	assert.Equal(t, model.StatusStarting, found.Status)
	assert.Equal(t, "/tmp/movies", found.ExecutionContext.GetString("data_dir"))
}

func TestGormRunRepository_UpdateRun(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	run := model.NewRunExecution("movie_data_pipeline", nil)
	require.NoError(t, repo.SaveRunExecution(ctx, run))

	run.MarkAsStarted()
	run.MarkAsCompleted()
	require.NoError(t, repo.UpdateRunExecution(ctx, run))

	found, err := repo.FindRunExecutionByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, found.Status)
	assert.Equal(t, model.ExitStatusCompleted, found.ExitStatus)
	assert.False(t, found.EndTime.IsZero())
}

func TestGormRunRepository_UpdateRun_NotFound(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	run := model.NewRunExecution("movie_data_pipeline", nil)
	run.MarkAsStarted()
	assert.Error(t, repo.UpdateRunExecution(ctx, run))
}

func TestGormRunRepository_TaskExecutions(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	run := model.NewRunExecution("movie_data_pipeline", nil)
	require.NoError(t, repo.SaveRunExecution(ctx, run))

	te := model.NewTaskExecution("fetch_movies", run)
	require.NoError(t, repo.SaveTaskExecution(ctx, te))

	te.MarkAsStarted()
	te.RowsWritten = 10
	te.MarkAsCompleted()
	require.NoError(t, repo.UpdateTaskExecution(ctx, te))

	found, err := repo.FindRunExecutionByID(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, found.TaskExecutions, 1)
	assert.Equal(t, "fetch_movies", found.TaskExecutions[0].TaskName)
	assert.Equal(t, model.StatusCompleted, found.TaskExecutions[0].Status)
	assert.Equal(t, 10, found.TaskExecutions[0].RowsWritten)
}

func TestGormRunRepository_RecordsFailures(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	run := model.NewRunExecution("movie_data_pipeline", nil)
	require.NoError(t, repo.SaveRunExecution(ctx, run))

	te := model.NewTaskExecution("load_to_postgres", run)
	require.NoError(t, repo.SaveTaskExecution(ctx, te))
	te.MarkAsStarted()
	te.MarkAsFailed(assert.AnError)
	require.NoError(t, repo.UpdateTaskExecution(ctx, te))

	found, err := repo.FindRunExecutionByID(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, found.TaskExecutions, 1)
	require.Len(t, found.TaskExecutions[0].Failures, 1)
	assert.Contains(t, found.TaskExecutions[0].Failures[0].Error(), assert.AnError.Error())
}

func TestGormRunRepository_FindLatestRunExecution(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	none, err := repo.FindLatestRunExecution(ctx, "movie_data_pipeline")
	require.NoError(t, err)
	assert.Nil(t, none)

	first := model.NewRunExecution("movie_data_pipeline", nil)
	require.NoError(t, repo.SaveRunExecution(ctx, first))

	second := model.NewRunExecution("movie_data_pipeline", nil)
	second.StartTime = first.StartTime.Add(time.Second)
	require.NoError(t, repo.SaveRunExecution(ctx, second))

	latest, err := repo.FindLatestRunExecution(ctx, "movie_data_pipeline")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
}
