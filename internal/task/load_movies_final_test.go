package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ananya923/movieflow/internal/domain/entity"
	"github.com/ananya923/movieflow/internal/sink"
	"github.com/ananya923/movieflow/pkg/pipeline/config"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
)

func newTestLoader(t *testing.T, dsn string) *sink.Loader {
	t.Helper()
	cfg := config.SinkConfig{Type: "sqlite", DSN: dsn, Table: "movies_final", BatchSize: 100}
	db, err := sink.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, sink.Migrate(db, cfg.Type))
	t.Cleanup(func() {
		db.Exec("DROP TABLE IF EXISTS movies_final")
		db.Exec("DROP TABLE IF EXISTS schema_migrations")
	})
	return sink.NewLoader(db, sink.QualifiedTable(cfg), cfg.BatchSize)
}

func TestLoadMoviesFinalTask_LoadsMergedRows(t *testing.T) {
	reg := newTestRegistry(t)
	loader := newTestLoader(t, "file:load_task_test?mode=memory&cache=shared")
	ctx := context.Background()

	rows := []entity.MergedMovieRating{
		{RatingID: 1, MovieID: 1, Title: "Heat", Genre: "Action", ReleaseYear: 1995, Decade: 1990, Score: 3.5, RatingCategory: "Medium"},
		{RatingID: 2, MovieID: 2, Title: "Arrival", Genre: "Sci-Fi", ReleaseYear: 2016, Decade: 2010, Score: 4.5, RatingCategory: "High"},
	}
	require.NoError(t, reg.WriteMerged(ctx, rows))
	execution := newTestExecution(LoadMoviesFinal)

	exitStatus, err := NewLoadMoviesFinalTask(reg, loader).Execute(ctx, execution)
	require.NoError(t, err)
	assert.Equal(t, model.ExitStatusCompleted, exitStatus)
	assert.Equal(t, 2, execution.RowsRead)
	assert.Equal(t, 2, execution.RowsWritten)
	assert.Equal(t, 2, execution.ExecutionContext.GetInt("loaded_rows"))

	count, err := loader.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestLoadMoviesFinalTask_RerunIsIdempotent(t *testing.T) {
	reg := newTestRegistry(t)
	loader := newTestLoader(t, "file:load_task_rerun_test?mode=memory&cache=shared")
	ctx := context.Background()

	rows := []entity.MergedMovieRating{
		{RatingID: 1, MovieID: 1, Title: "Heat", Genre: "Action", ReleaseYear: 1995, Decade: 1990, Score: 3.5, RatingCategory: "Medium"},
	}
	require.NoError(t, reg.WriteMerged(ctx, rows))
	task := NewLoadMoviesFinalTask(reg, loader)

	_, err := task.Execute(ctx, newTestExecution(LoadMoviesFinal))
	require.NoError(t, err)
	_, err = task.Execute(ctx, newTestExecution(LoadMoviesFinal))
	require.NoError(t, err)

	count, err := loader.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLoadMoviesFinalTask_MissingMergedArtifact(t *testing.T) {
	reg := newTestRegistry(t)
	loader := newTestLoader(t, "file:load_task_missing_test?mode=memory&cache=shared")

	exitStatus, err := NewLoadMoviesFinalTask(reg, loader).Execute(context.Background(), newTestExecution(LoadMoviesFinal))
	assert.Equal(t, model.ExitStatusFailed, exitStatus)
	assert.Error(t, err)
}
