// Package task implements the tasks of the movie data pipeline: synthetic
// ingestion, per-dataset transformation, the movie/rating merge, the
// relational load, genre analysis with chart rendering, the optional
// Parquet export, and artifact cleanup.
package task

// Task names as they appear in the pipeline graph.
const (
	FetchMovies         = "fetch_movies"
	FetchRatings        = "fetch_ratings"
	TransformMovies     = "transform_movies"
	TransformRatings    = "transform_ratings"
	MergeDatasets       = "merge_datasets"
	LoadMoviesFinal     = "load_movies_final"
	AnalyzeAndVisualize = "analyze_and_visualize"
	ExportParquet       = "export_parquet"
	CleanupArtifacts    = "cleanup_artifacts"
)
