package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
movieflow:
  system:
    logging:
      level: DEBUG
  pipeline:
    name: movie_data_pipeline
    data_dir: /tmp/movies
    movie_count: 25
  sink:
    type: postgres
    dsn: host=localhost user=test dbname=test
    schema: week9_movies
    table: movies_final
  metrics:
    enabled: true
    port: 9091
`

func TestLoadConfig_MergesYAMLOverDefaults(t *testing.T) {
	cfg, err := LoadConfig("", EmbeddedConfig(testYAML))
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Movieflow.System.Logging.Level)
	assert.Equal(t, "/tmp/movies", cfg.Movieflow.Pipeline.DataDir)
	assert.Equal(t, 25, cfg.Movieflow.Pipeline.MovieCount)
	// Defaults survive where YAML is silent.
	assert.Equal(t, 30, cfg.Movieflow.Pipeline.RatingCount)
	assert.Equal(t, "visuals/avg_rating_by_genre.png", cfg.Movieflow.Pipeline.ChartPath)
	assert.Equal(t, "postgres", cfg.Movieflow.Sink.Type)
	assert.Equal(t, "week9_movies", cfg.Movieflow.Sink.Schema)
	assert.Equal(t, 500, cfg.Movieflow.Sink.BatchSize)
	assert.True(t, cfg.Movieflow.Metrics.Enabled)
	assert.Equal(t, 9091, cfg.Movieflow.Metrics.Port)
}

func TestLoadConfig_EnvOverridesYAML(t *testing.T) {
	t.Setenv("MOVIEFLOW_SINK_DSN", "host=db user=prod dbname=movies")
	t.Setenv("MOVIEFLOW_PIPELINE_MOVIE_COUNT", "100")
	t.Setenv("MOVIEFLOW_METRICS_TRACING_ENABLED", "true")

	cfg, err := LoadConfig("", EmbeddedConfig(testYAML))
	require.NoError(t, err)

	assert.Equal(t, "host=db user=prod dbname=movies", cfg.Movieflow.Sink.DSN)
	assert.Equal(t, 100, cfg.Movieflow.Pipeline.MovieCount)
	assert.True(t, cfg.Movieflow.Metrics.TracingEnabled)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	_, err := LoadConfig("", EmbeddedConfig("movieflow: [not a mapping"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, validate(cfg))

	cfg.Movieflow.Sink.Type = "oracle"
	assert.Error(t, validate(cfg))

	cfg = NewConfig()
	cfg.Movieflow.Pipeline.MovieCount = 0
	assert.Error(t, validate(cfg))

	cfg = NewConfig()
	cfg.Movieflow.Sink.BatchSize = -1
	assert.Error(t, validate(cfg))
}
