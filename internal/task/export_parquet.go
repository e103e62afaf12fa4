package task

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/ananya923/movieflow/internal/artifact"
	"github.com/ananya923/movieflow/internal/domain/entity"
	"github.com/ananya923/movieflow/pkg/pipeline/config"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
	"github.com/ananya923/movieflow/pkg/pipeline/support/exception"
	"github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

// parquetRow mirrors entity.MergedMovieRating with the schema tags the
// Parquet writer needs.
type parquetRow struct {
	RatingID       int32   `parquet:"name=rating_id, type=INT32"`
	MovieID        int32   `parquet:"name=movie_id, type=INT32"`
	Title          string  `parquet:"name=title, type=BYTE_ARRAY, convertedtype=UTF8"`
	Genre          string  `parquet:"name=genre, type=BYTE_ARRAY, convertedtype=UTF8"`
	ReleaseYear    int32   `parquet:"name=release_year, type=INT32"`
	Decade         int32   `parquet:"name=decade, type=INT32"`
	Score          float64 `parquet:"name=score, type=DOUBLE"`
	RatingCategory string  `parquet:"name=rating_category, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// ExportParquetTask writes the merged dataset as a Snappy-compressed
// Parquet file. The task is a no-op unless parquet_export is enabled.
type ExportParquetTask struct {
	registry *artifact.Registry
	cfg      config.PipelineConfig
}

// NewExportParquetTask creates the Parquet export task.
func NewExportParquetTask(registry *artifact.Registry, cfg *config.Config) *ExportParquetTask {
	return &ExportParquetTask{registry: registry, cfg: cfg.Movieflow.Pipeline}
}

// Name implements task.Task.
func (t *ExportParquetTask) Name() string { return ExportParquet }

// Execute encodes the merged dataset to Parquet and uploads it next to the
// CSV artifacts.
func (t *ExportParquetTask) Execute(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error) {
	if !t.cfg.ParquetExport {
		logger.Debugf("Parquet export is disabled, nothing to do.")
		return model.ExitStatusNoop, nil
	}

	rows, err := t.registry.ReadMerged(ctx)
	if err != nil {
		return model.ExitStatusFailed, exception.NewPipelineError(exception.StageMerge,
			"failed to read merged artifact", err, false)
	}
	execution.RowsRead = len(rows)

	data, err := encodeParquet(rows)
	if err != nil {
		return model.ExitStatusFailed, exception.NewPipelineError(exception.StageMerge,
			"failed to encode merged dataset as parquet", err, false)
	}

	if err := t.registry.Store().Upload(ctx, "", artifact.MergedParquet,
		bytes.NewReader(data), "application/octet-stream"); err != nil {
		return model.ExitStatusFailed, exception.NewPipelineError(exception.StageMerge,
			"failed to upload parquet artifact", err, true)
	}

	execution.RowsWritten = len(rows)
	execution.ExecutionContext.Put("artifact", artifact.MergedParquet)
	logger.Infof("Exported %d rows to '%s'.", len(rows), artifact.MergedParquet)
	return model.ExitStatusCompleted, nil
}

// encodeParquet writes rows through a temp file because the Parquet writer
// needs a seekable target.
func encodeParquet(rows []entity.MergedMovieRating) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "movieflow-parquet-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)
	tmpPath := filepath.Join(tmpDir, "merged.parquet")

	fw, err := local.NewLocalFileWriter(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	pw, err := writer.NewParquetWriter(fw, new(parquetRow), 4)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		rec := parquetRow{
			RatingID:       int32(row.RatingID),
			MovieID:        int32(row.MovieID),
			Title:          row.Title,
			Genre:          row.Genre,
			ReleaseYear:    int32(row.ReleaseYear),
			Decade:         int32(row.Decade),
			Score:          row.Score,
			RatingCategory: row.RatingCategory,
		}
		if err := pw.Write(rec); err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to write parquet row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close parquet file: %w", err)
	}

	return os.ReadFile(tmpPath)
}
