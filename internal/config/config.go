// Package config loads aerostat settings from aerostat.yaml, a .env file and
// AEROSTAT_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/ChicagoDave/aerostat/pkg/spec"
)

const (
	EnvPrefix = "AEROSTAT"
	FileName  = "aerostat"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Presets  PresetsConfig  `mapstructure:"presets"`
	Pattern  PatternConfig  `mapstructure:"pattern"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
}

type ServerConfig struct {
	Port      int     `mapstructure:"port"`
	RateLimit float64 `mapstructure:"rate_limit"` // requests per second per client IP
	Burst     int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

type PresetsConfig struct {
	Path string `mapstructure:"path"`
}

type PatternConfig struct {
	Gores           int     `mapstructure:"gores"`
	SeamAllowanceMM float64 `mapstructure:"seam_allowance_mm"`
	FabricWidthMM   float64 `mapstructure:"fabric_width_mm"`
	GapMM           float64 `mapstructure:"gap_mm"`
}

type AnalysisConfig struct {
	StepM      float64 `mapstructure:"step_m"`
	MaxHeightM float64 `mapstructure:"max_height_m"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.rate_limit", 5)
	v.SetDefault("server.burst", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("presets.path", "presets.ini")
	v.SetDefault("pattern.gores", 12)
	v.SetDefault("pattern.seam_allowance_mm", 10)
	v.SetDefault("pattern.fabric_width_mm", 1500)
	v.SetDefault("pattern.gap_mm", 10)
	v.SetDefault("analysis.step_m", 500)
	v.SetDefault("analysis.max_height_m", 50000)
}

// Load reads the configuration. An empty path searches for aerostat.yaml
// in the working directory and $HOME/.aerostat; a missing file there is not
// an error. A .env file in the working directory is loaded first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.aerostat")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		log.WithField("file", v.ConfigFileUsed()).Debug("config loaded")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &c, nil
}

// SetupLogging applies the log level and format to the standard logrus
// logger.
func (c *Config) SetupLogging() error {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	log.SetLevel(level)
	switch strings.ToLower(c.Log.Format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	return nil
}

// PatternDefaults is the pattern section as spec defaults.
func (c *Config) PatternDefaults() spec.PatternDef {
	return spec.PatternDef{
		Gores:           c.Pattern.Gores,
		SeamAllowanceMM: c.Pattern.SeamAllowanceMM,
		FabricWidthMM:   c.Pattern.FabricWidthMM,
		GapMM:           c.Pattern.GapMM,
	}
}

// AnalysisDefaults is the analysis section as spec defaults.
func (c *Config) AnalysisDefaults() spec.AnalysisDef {
	return spec.AnalysisDef{StepM: c.Analysis.StepM, MaxHeightM: c.Analysis.MaxHeightM}
}

// Apply fills the unset pattern and analysis fields of s from c.
func (c *Config) Apply(s *spec.BalloonSpec) {
	s.Pattern = s.Pattern.Or(c.PatternDefaults())
	s.Analysis = s.Analysis.Or(c.AnalysisDefaults())
}
