// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/structlab/hysteresis/internal/analysis"
	"github.com/structlab/hysteresis/pkg/constants"
	"github.com/structlab/hysteresis/pkg/ductility"
	"github.com/structlab/hysteresis/pkg/skeleton"
	"github.com/structlab/hysteresis/pkg/smoothing"
)

// Configuration holds all configuration for hysteresis.
type Configuration struct {
	Analysis AnalysisConfig `yaml:"analysis,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
}

// AnalysisConfig holds the pipeline options.
type AnalysisConfig struct {
	SkeletonMethod  string          `yaml:"skeletonMethod,omitempty"`  // outer_envelope, peak_points
	DuctilityMethod string          `yaml:"ductilityMethod,omitempty"` // geometric, energy, park, farthest, asce, eeep, elastic_yield
	Direction       string          `yaml:"direction,omitempty"`       // both, positive, negative
	FilterFirstLoop bool            `yaml:"filterFirstLoop,omitempty"`
	Smoothing       SmoothingConfig `yaml:"smoothing,omitempty"`
}

// SmoothingConfig holds the skeleton smoothing options.
type SmoothingConfig struct {
	Enabled   bool    `yaml:"enabled,omitempty"`
	Algorithm string  `yaml:"algorithm,omitempty"` // pchip, akima, bezier, bspline, savgol, spline, cubic
	Param     float64 `yaml:"param,omitempty"`
	Points    int     `yaml:"points,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path returns a default configuration.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if configPath == "" {
		return &Configuration{}, nil
	}

	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

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

// AnalysisParams translates the configuration strings into typed pipeline
// parameters. Empty fields take defaults; invalid values are an error.
func (conf *Configuration) AnalysisParams() (analysis.Params, error) {
	params := analysis.Params{
		FilterFirstLoop: conf.Analysis.FilterFirstLoop,
	}

	if conf.Analysis.SkeletonMethod != "" {
		method, err := skeleton.ParseMethod(conf.Analysis.SkeletonMethod)
		if err != nil {
			return params, err
		}
		params.SkeletonMethod = method
	}

	if conf.Analysis.DuctilityMethod != "" {
		method, err := ductility.ParseMethod(conf.Analysis.DuctilityMethod)
		if err != nil {
			return params, err
		}
		params.DuctilityMethod = method
	}

	if conf.Analysis.Direction != "" {
		direction, err := ductility.ParseDirection(conf.Analysis.Direction)
		if err != nil {
			return params, err
		}
		params.Direction = direction
	}

	params.Smoothing.Enabled = conf.Analysis.Smoothing.Enabled
	params.Smoothing.Param = conf.Analysis.Smoothing.Param
	params.Smoothing.Points = conf.Analysis.Smoothing.Points
	if params.Smoothing.Points <= 0 {
		params.Smoothing.Points = constants.DefaultInterpolationPoints
	}
	if conf.Analysis.Smoothing.Algorithm != "" {
		algo, err := smoothing.ParseAlgorithm(conf.Analysis.Smoothing.Algorithm)
		if err != nil {
			return params, err
		}
		params.Smoothing.Algorithm = algo
	}

	return params, nil
}

// ValidateConfiguration checks the configuration for problems that do not
// prevent a run and returns a warning message for each.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	switch conf.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		warnings = append(warnings, fmt.Sprintf("unknown logging level %q, using info", conf.Logging.Level))
	}

	switch conf.Logging.Format {
	case "", "json", "console":
	default:
		warnings = append(warnings, fmt.Sprintf("unknown logging format %q, using json", conf.Logging.Format))
	}

	switch conf.Output.Format {
	case "", constants.OutputFormatPretty, constants.OutputFormatCSV:
	default:
		warnings = append(warnings, fmt.Sprintf("unknown output format %q, using %s", conf.Output.Format, constants.OutputFormatPretty))
	}

	if conf.Analysis.Smoothing.Enabled && conf.Analysis.Smoothing.Param < 0 {
		warnings = append(warnings, fmt.Sprintf("negative smoothing parameter %g, treating as 0", conf.Analysis.Smoothing.Param))
	}

	return warnings
}
