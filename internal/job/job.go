// Package job defines the movie pipeline's task graph: which tasks exist
// and in what order they run.
package job

import (
	"fmt"

	"github.com/ananya923/movieflow/internal/task"
	"github.com/ananya923/movieflow/pkg/pipeline/graph"
)

// BuildGraph constructs the movie pipeline DAG. The two fetch/transform
// branches run independently and meet at the merge; the load, analysis and
// Parquet export fan out from the merged dataset, and cleanup waits for
// every consumer of the intermediates.
func BuildGraph() (*graph.Graph, error) {
	g := graph.New()

	tasks := []string{
		task.FetchMovies,
		task.FetchRatings,
		task.TransformMovies,
		task.TransformRatings,
		task.MergeDatasets,
		task.LoadMoviesFinal,
		task.AnalyzeAndVisualize,
		task.ExportParquet,
		task.CleanupArtifacts,
	}
	for _, name := range tasks {
		if err := g.AddTask(name); err != nil {
			return nil, fmt.Errorf("failed to add task '%s': %w", name, err)
		}
	}

	edges := [][2]string{
		{task.FetchMovies, task.TransformMovies},
		{task.FetchRatings, task.TransformRatings},
		{task.TransformMovies, task.MergeDatasets},
		{task.TransformRatings, task.MergeDatasets},
		{task.MergeDatasets, task.LoadMoviesFinal},
		{task.MergeDatasets, task.ExportParquet},
		{task.LoadMoviesFinal, task.AnalyzeAndVisualize},
		{task.AnalyzeAndVisualize, task.CleanupArtifacts},
		{task.ExportParquet, task.CleanupArtifacts},
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			return nil, fmt.Errorf("failed to add edge %s -> %s: %w", e[0], e[1], err)
		}
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline graph: %w", err)
	}
	return g, nil
}
