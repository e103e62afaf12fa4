package task

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ananya923/movieflow/internal/artifact"
	"github.com/ananya923/movieflow/pkg/pipeline/config"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
	storageConfig "github.com/ananya923/movieflow/pkg/pipeline/storage/config"
	"github.com/ananya923/movieflow/pkg/pipeline/storage/local"
)

func newTestRegistry(t *testing.T) *artifact.Registry {
	t.Helper()
	conn, err := local.NewLocalAdapter(storageConfig.StorageConfig{
		Type:    local.ProviderType,
		BaseDir: t.TempDir(),
	}, "artifacts")
	require.NoError(t, err)
	return artifact.NewRegistry(conn)
}

func newTestConfig(mutate func(*config.PipelineConfig)) *config.Config {
	cfg := config.NewConfig()
	if mutate != nil {
		mutate(&cfg.Movieflow.Pipeline)
	}
	return cfg
}

func newTestExecution(taskName string) *model.TaskExecution {
	run := model.NewRunExecution("movie_data_pipeline_test", nil)
	return model.NewTaskExecution(taskName, run)
}

func objectExists(t *testing.T, reg *artifact.Registry, name string) bool {
	t.Helper()
	rc, err := reg.Store().Download(context.Background(), "", name)
	if err != nil {
		return false
	}
	rc.Close()
	return true
}

func readObject(t *testing.T, reg *artifact.Registry, name string) []byte {
	t.Helper()
	rc, err := reg.Store().Download(context.Background(), "", name)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return data
}
