package config

// Package config provides structures and utilities for managing application
// configuration.

// EmbeddedConfig holds the content of the configuration file, typically
// passed from main.go when the file is compiled into the binary.
type EmbeddedConfig []byte

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the logging level (e.g., "INFO", "DEBUG").
	Level string `yaml:"level"`
}

// SystemConfig holds system-wide settings.
type SystemConfig struct {
	// Timezone is the application timezone (e.g., "UTC").
	Timezone string `yaml:"timezone"`
	// Logging is the logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// PipelineConfig holds the settings of the movie pipeline itself.
type PipelineConfig struct {
	// Name is the pipeline name used in run executions and metrics.
	Name string `yaml:"name"`
	// DataDir is the directory where intermediate artifacts are written.
	DataDir string `yaml:"data_dir"`
	// MovieCount is the number of movies the generation task produces.
	MovieCount int `yaml:"movie_count"`
	// RatingCount is the number of ratings the generation task produces.
	RatingCount int `yaml:"rating_count"`
	// Seed seeds the random generation. Zero means time-based.
	Seed int64 `yaml:"seed"`
	// ParquetExport enables the optional Parquet export of the merged dataset.
	ParquetExport bool `yaml:"parquet_export"`
	// ChartPath is where the genre chart image is written, relative to DataDir.
	ChartPath string `yaml:"chart_path"`
	// StorageRef names the storage adapter used for artifacts.
	StorageRef string `yaml:"storage_ref"`
}

// SinkConfig holds the settings of the relational sink the merged dataset is
// loaded into.
type SinkConfig struct {
	// Type selects the database driver: "postgres", "mysql" or "sqlite".
	Type string `yaml:"type"`
	// DSN is the connection string for the selected driver.
	DSN string `yaml:"dsn"`
	// Schema is the target schema name.
	Schema string `yaml:"schema"`
	// Table is the target table name.
	Table string `yaml:"table"`
	// BatchSize is the number of rows per insert batch.
	BatchSize int `yaml:"batch_size"`
}

// MetricsConfig holds observability settings.
type MetricsConfig struct {
	// Enabled turns on the Prometheus metric recorder.
	Enabled bool `yaml:"enabled"`
	// Port is the port the Prometheus exposition endpoint listens on.
	Port int `yaml:"port"`
	// TracingEnabled turns on the OpenTelemetry tracer.
	TracingEnabled bool `yaml:"tracing_enabled"`
	// OTLPEndpoint is the OTLP gRPC collector endpoint (host:port).
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	// ServiceName identifies this process in the tracing backend.
	ServiceName string `yaml:"service_name"`
}

// MovieflowConfig holds all configuration under the "movieflow" top-level key.
type MovieflowConfig struct {
	// System contains system-wide configurations.
	System SystemConfig `yaml:"system"`
	// Pipeline contains the movie pipeline configuration.
	Pipeline PipelineConfig `yaml:"pipeline"`
	// Sink contains the relational sink configuration.
	Sink SinkConfig `yaml:"sink"`
	// Metrics contains observability configuration.
	Metrics MetricsConfig `yaml:"metrics"`
	// StorageConfigs holds named storage adapter configurations.
	StorageConfigs map[string]interface{} `yaml:"storage"`
}

// Config is the root structure for the entire application configuration.
type Config struct {
	Movieflow MovieflowConfig `yaml:"movieflow"`
	// EmbeddedConfig holds configuration loaded from an embedded source.
	EmbeddedConfig EmbeddedConfig `yaml:"-"`
}

// NewConfig returns a new instance of Config with default values.
func NewConfig() *Config {
	return &Config{
		Movieflow: MovieflowConfig{
			System: SystemConfig{
				Timezone: "UTC",
				Logging:  LoggingConfig{Level: "INFO"},
			},
			Pipeline: PipelineConfig{
				Name:        "movie_data_pipeline",
				DataDir:     "data/movies",
				MovieCount:  10,
				RatingCount: 30,
				ChartPath:   "visuals/avg_rating_by_genre.png",
				StorageRef:  "artifacts",
			},
			Sink: SinkConfig{
				Type:      "sqlite",
				DSN:       "movieflow.db",
				Schema:    "week9_movies",
				Table:     "movies_final",
				BatchSize: 500,
			},
			Metrics: MetricsConfig{
				ServiceName: "movieflow",
			},
			StorageConfigs: make(map[string]interface{}),
		},
	}
}
