package task

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ananya923/movieflow/internal/artifact"
	"github.com/ananya923/movieflow/internal/domain/entity"
	"github.com/ananya923/movieflow/pkg/pipeline/config"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
	"github.com/ananya923/movieflow/pkg/pipeline/support/exception"
	"github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

// AnalyzeAndVisualizeTask computes the average score per genre from the
// merged dataset and renders it as a bar chart.
type AnalyzeAndVisualizeTask struct {
	registry *artifact.Registry
	cfg      config.PipelineConfig
}

// NewAnalyzeAndVisualizeTask creates the analysis task.
func NewAnalyzeAndVisualizeTask(registry *artifact.Registry, cfg *config.Config) *AnalyzeAndVisualizeTask {
	return &AnalyzeAndVisualizeTask{registry: registry, cfg: cfg.Movieflow.Pipeline}
}

// Name implements task.Task.
func (t *AnalyzeAndVisualizeTask) Name() string { return AnalyzeAndVisualize }

// Execute aggregates the merged rows by genre, logs the averages, renders
// the bar chart, and uploads it to the artifact store at the configured
// chart path. The averages are also put into the execution context so the
// run record carries the analysis result.
func (t *AnalyzeAndVisualizeTask) Execute(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error) {
	rows, err := t.registry.ReadMerged(ctx)
	if err != nil {
		return model.ExitStatusFailed, exception.NewPipelineError(exception.StageAnalysis,
			"failed to read merged artifact", err, false)
	}
	execution.RowsRead = len(rows)

	averages := AverageScoreByGenre(rows)
	if len(averages) == 0 {
		// An empty dataset degrades to an empty chart, not a failure.
		logger.Warnf("Merged dataset is empty, rendering an empty chart.")
	}
	for _, avg := range averages {
		logger.Infof("Genre %-12s avg score %.2f", avg.Genre, avg.AvgScore)
	}

	chartBytes, err := renderGenreChart(averages)
	if err != nil {
		return model.ExitStatusFailed, exception.NewPipelineError(exception.StageAnalysis,
			"failed to render genre chart", err, false)
	}

	if err := t.registry.Store().Upload(ctx, "", t.cfg.ChartPath,
		bytes.NewReader(chartBytes), "image/png"); err != nil {
		return model.ExitStatusFailed, exception.NewPipelineError(exception.StageAnalysis,
			"failed to upload genre chart", err, true)
	}

	execution.RowsWritten = len(averages)
	execution.ExecutionContext.Put("genre_averages", averages)
	execution.ExecutionContext.Put("chart", t.cfg.ChartPath)
	logger.Infof("Genre chart written to '%s'.", t.cfg.ChartPath)
	return model.ExitStatusCompleted, nil
}

// AverageScoreByGenre aggregates merged rows into per-genre mean scores,
// sorted by genre name.
func AverageScoreByGenre(rows []entity.MergedMovieRating) []entity.GenreAverage {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, row := range rows {
		sums[row.Genre] += row.Score
		counts[row.Genre]++
	}

	genres := make([]string, 0, len(sums))
	for genre := range sums {
		genres = append(genres, genre)
	}
	sort.Strings(genres)

	averages := make([]entity.GenreAverage, 0, len(genres))
	for _, genre := range genres {
		averages = append(averages, entity.GenreAverage{
			Genre:    genre,
			AvgScore: sums[genre] / float64(counts[genre]),
		})
	}
	return averages
}

// renderGenreChart renders the averages as a PNG bar chart. The plot
// library only saves to files, so the chart goes through a temp file.
func renderGenreChart(averages []entity.GenreAverage) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Average Rating by Genre"
	p.X.Label.Text = "Genre"
	p.Y.Label.Text = "Average Score"
	p.Y.Min = 0

	values := make(plotter.Values, len(averages))
	genres := make([]string, len(averages))
	for i, avg := range averages {
		values[i] = avg.AvgScore
		genres[i] = avg.Genre
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, fmt.Errorf("failed to build bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(genres...)

	tmpDir, err := os.MkdirTemp("", "movieflow-chart-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create chart temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	tmpPath := filepath.Join(tmpDir, "chart.png")
	if err := p.Save(6*vg.Inch, 4*vg.Inch, tmpPath); err != nil {
		return nil, fmt.Errorf("failed to save chart: %w", err)
	}
	return os.ReadFile(tmpPath)
}
