// Package config defines the data structures related to configuration and
// includes functions for loading and checking the batch config.
package config

import (
	"fmt"
	"net/url"

	"github.com/iwvelando/finance-calculator/pkg/adapters"
	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/iwvelando/finance-calculator/pkg/params"
	"github.com/iwvelando/finance-calculator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for a finance-calculator batch run.
type Configuration struct {
	Calculations []Calculation
	Logging      LoggingConfig `yaml:"logging,omitempty"`
	Output       OutputConfig  `yaml:"output,omitempty"`
	BaseURL      string        `yaml:"baseURL,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// Calculation is one named calculator run. Params use the same keys as the
// calculator's query string.
type Calculation struct {
	Name       string
	Calculator string
	Active     bool
	Params     map[string]interface{}
}

// Values returns the calculation's params as query values.
func (c Calculation) Values() (url.Values, error) {
	values, err := params.FromMap(c.Params)
	if err != nil {
		return nil, fmt.Errorf("calculation %s: %w", c.Name, err)
	}
	return values, nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")
	viper.SetDefault("baseurl", constants.DefaultBaseURL)
	if err := viper.BindEnv("baseurl", "FINCALC_BASE_URL"); err != nil {
		return nil, fmt.Errorf("error binding environment, %s", err)
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var calculations []validation.CalculationConfig
	for _, calc := range c.Calculations {
		calculations = append(calculations, validation.CalculationConfig{
			Name:       calc.Name,
			Calculator: calc.Calculator,
			Active:     calc.Active,
		})
	}

	validator := &validation.ConfigValidator{
		Calculations: calculations,
		Known:        adapters.Names(),
	}
	warnings := validator.ValidateAll()

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	return warnings
}
