package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"comfygen/logger"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Default returns the built-in configuration, with node ids matching the
// exported "4I2V Flow" base graph.
func Default() *Config {
	return &Config{
		ComfyUi: ComfyUiConfig{
			BaseWorkflow: "4I2V Flow.json",
			Nodes: NodesConfig{
				StartImages:  []int{142, 135},
				EndImages:    []int{680, 683},
				MotionVideo:  568,
				ControlNet:   125,
				MotionScale:  256,
				Preview:      53,
				Final:        205,
				Interpolated: 219,
				UpscaleModel: 272,
			},
		},
		Logging: logger.Config{
			Level:  logger.LevelInfo,
			Format: "text",
		},
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return validate.Struct(c)
}

// LoadConfig loads the configuration, starting from the built-in defaults and
// layering config.toml plus the optional files under settings/ on top. Every
// file is optional; a missing file keeps the defaults.
func LoadConfig() (*Config, error) {
	config := Default()
	configPath := "config.toml"

	if _, err := os.Stat(configPath); err == nil {
		absPath, absErr := filepath.Abs(configPath)
		if absErr != nil {
			absPath = configPath // fallback to relative path
		}

		if _, err := toml.DecodeFile(configPath, config); err != nil {
			return nil, fmt.Errorf("error parsing config file %s: %w", absPath, err)
		}
	}

	// Load service-specific configs
	if err := loadServiceConfigs(config); err != nil {
		return nil, fmt.Errorf("error loading service configs: %w", err)
	}

	// Validate the configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadServiceConfigs loads the individual overlay configuration files
func loadServiceConfigs(config *Config) error {
	serviceConfigs := map[string]interface{}{
		"settings/comfyui.toml": &config.ComfyUi,
		"settings/presets.toml": &config.Presets,
		"settings/logging.toml": &config.Logging,
	}

	for configPath, configStruct := range serviceConfigs {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			// This is not a fatal error, the defaults apply
			continue
		}

		if _, err := toml.DecodeFile(configPath, configStruct); err != nil {
			return fmt.Errorf("error parsing service config file %s: %w", configPath, err)
		}
	}

	return nil
}
