package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"

	"github.com/ananya923/movieflow/pkg/pipeline/support/exception"
	"github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

const moduleName = "config"

// ConfigParams defines the dependencies for NewConfigProvider.
type ConfigParams struct {
	fx.In
	EmbeddedConfig EmbeddedConfig
	EnvFilePath    string `name:"envFilePath" optional:"true"`
}

// loadConfig loads configuration from the embedded YAML and environment
// variables. Intended to be called once during application startup.
func loadConfig(envFilePath string, embeddedConfig EmbeddedConfig) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			logger.Warnf(".env file (%s) not found or could not be loaded: %v", envFilePath, err)
		}
	} else {
		if err := godotenv.Load(); err != nil {
			logger.Debugf(".env file not found or could not be loaded: %v", err)
		}
	}

	cfg := NewConfig()

	var yamlConfig Config
	if err := yaml.Unmarshal(embeddedConfig, &yamlConfig); err != nil {
		return nil, exception.NewPipelineError(moduleName, "failed to unmarshal embedded config", err, false)
	}

	mergeConfig(cfg, &yamlConfig)

	// Environment variables take precedence over YAML values. Names follow
	// the yaml tags, e.g. MOVIEFLOW_SINK_DSN.
	if err := loadStructFromEnv(reflect.ValueOf(cfg).Elem(), ""); err != nil {
		return nil, exception.NewPipelineError(moduleName, "failed to load config from environment variables", err, false)
	}
	return cfg, nil
}

// NewConfigProvider is an Fx provider that loads and provides *Config. It
// merges defaults, embedded YAML and environment variables, then sets the
// global log level.
func NewConfigProvider(params ConfigParams) (*Config, error) {
	cfg, err := loadConfig(params.EnvFilePath, params.EmbeddedConfig)
	if err != nil {
		return nil, err
	}

	logger.SetLogLevel(cfg.Movieflow.System.Logging.Level)
	logger.Infof("Log level set to: %s", cfg.Movieflow.System.Logging.Level)

	if err := validate(cfg); err != nil {
		return nil, exception.NewPipelineError(moduleName, "configuration validation failed", err, false)
	}

	return cfg, nil
}

// LoadConfig loads configuration outside the Fx lifecycle (tests, tooling).
func LoadConfig(envFilePath string, embeddedConfig EmbeddedConfig) (*Config, error) {
	return loadConfig(envFilePath, embeddedConfig)
}

// validate checks settings that would otherwise fail deep inside a run.
func validate(cfg *Config) error {
	p := cfg.Movieflow.Pipeline
	if p.MovieCount <= 0 {
		return fmt.Errorf("pipeline.movie_count must be positive, got %d", p.MovieCount)
	}
	if p.RatingCount <= 0 {
		return fmt.Errorf("pipeline.rating_count must be positive, got %d", p.RatingCount)
	}
	s := cfg.Movieflow.Sink
	switch s.Type {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("sink.type must be one of postgres, mysql, sqlite; got %q", s.Type)
	}
	if s.Table == "" {
		return fmt.Errorf("sink.table must not be empty")
	}
	if s.BatchSize <= 0 {
		return fmt.Errorf("sink.batch_size must be positive, got %d", s.BatchSize)
	}
	return nil
}

// mergeConfig performs a merge from sourceConfig into destConfig. Non-zero
// values in sourceConfig overwrite the corresponding defaults.
func mergeConfig(destConfig, sourceConfig *Config) {
	dest, source := &destConfig.Movieflow, &sourceConfig.Movieflow

	if source.System.Timezone != "" {
		dest.System.Timezone = source.System.Timezone
	}
	if source.System.Logging.Level != "" {
		dest.System.Logging.Level = source.System.Logging.Level
	}

	if source.Pipeline.Name != "" {
		dest.Pipeline.Name = source.Pipeline.Name
	}
	if source.Pipeline.DataDir != "" {
		dest.Pipeline.DataDir = source.Pipeline.DataDir
	}
	if source.Pipeline.MovieCount != 0 {
		dest.Pipeline.MovieCount = source.Pipeline.MovieCount
	}
	if source.Pipeline.RatingCount != 0 {
		dest.Pipeline.RatingCount = source.Pipeline.RatingCount
	}
	if source.Pipeline.Seed != 0 {
		dest.Pipeline.Seed = source.Pipeline.Seed
	}
	if source.Pipeline.ParquetExport {
		dest.Pipeline.ParquetExport = true
	}
	if source.Pipeline.ChartPath != "" {
		dest.Pipeline.ChartPath = source.Pipeline.ChartPath
	}
	if source.Pipeline.StorageRef != "" {
		dest.Pipeline.StorageRef = source.Pipeline.StorageRef
	}

	if source.Sink.Type != "" {
		dest.Sink.Type = source.Sink.Type
	}
	if source.Sink.DSN != "" {
		dest.Sink.DSN = source.Sink.DSN
	}
	if source.Sink.Schema != "" {
		dest.Sink.Schema = source.Sink.Schema
	}
	if source.Sink.Table != "" {
		dest.Sink.Table = source.Sink.Table
	}
	if source.Sink.BatchSize != 0 {
		dest.Sink.BatchSize = source.Sink.BatchSize
	}

	if source.Metrics.Enabled {
		dest.Metrics.Enabled = true
	}
	if source.Metrics.Port != 0 {
		dest.Metrics.Port = source.Metrics.Port
	}
	if source.Metrics.TracingEnabled {
		dest.Metrics.TracingEnabled = true
	}
	if source.Metrics.OTLPEndpoint != "" {
		dest.Metrics.OTLPEndpoint = source.Metrics.OTLPEndpoint
	}
	if source.Metrics.ServiceName != "" {
		dest.Metrics.ServiceName = source.Metrics.ServiceName
	}

	if source.StorageConfigs != nil {
		if dest.StorageConfigs == nil {
			dest.StorageConfigs = make(map[string]interface{})
		}
		for key, value := range source.StorageConfigs {
			dest.StorageConfigs[key] = value
		}
	}
}

// loadStructFromEnv recursively loads configuration values into a struct
// from environment variables, using the yaml tag for naming.
func loadStructFromEnv(val reflect.Value, prefix string) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		yamlTag := fieldType.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		envVarName := strings.ToUpper(prefix + yamlTag)

		if field.Kind() == reflect.Struct {
			if err := loadStructFromEnv(field, envVarName+"_"); err != nil {
				return err
			}
			continue
		}

		envValue, exists := os.LookupEnv(envVarName)
		if !exists {
			continue
		}

		if err := setField(field, envValue); err != nil {
			return fmt.Errorf("failed to set field '%s' from env var '%s': %w", fieldType.Name, envVarName, err)
		}
	}
	return nil
}

// setField assigns a string environment value to a reflect field, converting
// to the field's kind.
func setField(field reflect.Value, value string) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Map, reflect.Slice:
		// Map and slice values are configured through YAML only.
	default:
		return fmt.Errorf("unsupported field kind: %s", field.Kind())
	}
	return nil
}

// Module provides the configuration to the Fx graph.
var Module = fx.Options(
	fx.Provide(NewConfigProvider),
)
