package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// CoverageOverride adjusts a staffing requirement's minimum counts on
// dates matching an RRULE (e.g. extra cover at weekends or on holidays)
type CoverageOverride struct {
	RRule          string `yaml:"rrule" validate:"required"`
	RequirementID  string `yaml:"requirementID" validate:"required"`
	MinWorkers     *int   `yaml:"minWorkers,omitempty" validate:"omitempty,min=0"`
	MinSupervisors *int   `yaml:"minSupervisors,omitempty" validate:"omitempty,min=0"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL       string             `yaml:"databaseURL" validate:"required"`
	DefaultStrategy   string             `yaml:"defaultStrategy,omitempty" validate:"omitempty,oneof=day-driven requirement-driven"`
	CoverageOverrides []CoverageOverride `yaml:"coverageOverrides,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for the given
// environment, looking for rota_config.<env>.yaml in the current
// directory first and then in the user's home directory
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, override := range cfg.CoverageOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in coverageOverrides[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for rota_config.<env>.yaml in the current
// directory and the home directory
func findConfigFile(env string) (string, error) {
	configFileName := fmt.Sprintf("rota_config.%s.yaml", env)

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
