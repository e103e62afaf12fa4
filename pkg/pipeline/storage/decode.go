package storage

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	coreConfig "github.com/ananya923/movieflow/pkg/pipeline/config"
	storageConfig "github.com/ananya923/movieflow/pkg/pipeline/storage/config"
)

// DecodeNamedConfig extracts the storage configuration with the given name
// from the application configuration. The raw YAML map is decoded with the
// yaml tag names.
func DecodeNamedConfig(cfg *coreConfig.Config, name string) (storageConfig.StorageConfig, error) {
	var out storageConfig.StorageConfig

	namedConfig, ok := cfg.Movieflow.StorageConfigs[name]
	if !ok {
		return out, fmt.Errorf("storage configuration for name '%s' not found", name)
	}

	decoderConfig := &mapstructure.DecoderConfig{
		Result:  &out,
		TagName: "yaml",
	}
	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return out, fmt.Errorf("failed to create decoder for storage config '%s': %w", name, err)
	}
	if err := decoder.Decode(namedConfig); err != nil {
		return out, fmt.Errorf("failed to decode storage config for '%s': %w", name, err)
	}
	return out, nil
}
