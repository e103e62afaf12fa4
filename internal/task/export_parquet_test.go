package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ananya923/movieflow/internal/artifact"
	"github.com/ananya923/movieflow/internal/domain/entity"
	"github.com/ananya923/movieflow/pkg/pipeline/config"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
)

func TestExportParquetTask_DisabledIsNoop(t *testing.T) {
	reg := newTestRegistry(t)
	cfg := newTestConfig(nil)
	execution := newTestExecution(ExportParquet)

	exitStatus, err := NewExportParquetTask(reg, cfg).Execute(context.Background(), execution)
	require.NoError(t, err)
	assert.Equal(t, model.ExitStatusNoop, exitStatus)
	assert.False(t, objectExists(t, reg, artifact.MergedParquet))
}

func TestExportParquetTask_WritesParquetFile(t *testing.T) {
	reg := newTestRegistry(t)
	cfg := newTestConfig(func(p *config.PipelineConfig) {
		p.ParquetExport = true
	})
	ctx := context.Background()

	require.NoError(t, reg.WriteMerged(ctx, []entity.MergedMovieRating{
		{RatingID: 1, MovieID: 1, Title: "Heat", Genre: "Action", ReleaseYear: 1995, Decade: 1990, Score: 3.5, RatingCategory: "Medium"},
		{RatingID: 2, MovieID: 2, Title: "Arrival", Genre: "Sci-Fi", ReleaseYear: 2016, Decade: 2010, Score: 4.5, RatingCategory: "High"},
	}))
	execution := newTestExecution(ExportParquet)

	exitStatus, err := NewExportParquetTask(reg, cfg).Execute(ctx, execution)
	require.NoError(t, err)
	assert.Equal(t, model.ExitStatusCompleted, exitStatus)
	assert.Equal(t, 2, execution.RowsRead)
	assert.Equal(t, 2, execution.RowsWritten)
	assert.Equal(t, artifact.MergedParquet, execution.ExecutionContext.GetString("artifact"))

	data := readObject(t, reg, artifact.MergedParquet)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte("PAR1"), data[:4])
	assert.Equal(t, []byte("PAR1"), data[len(data)-4:])
}
