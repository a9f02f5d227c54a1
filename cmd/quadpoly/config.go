package main

import (
	"os"

	"github.com/osuushi/quadpoly/geo2d"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Settings of a run, read from an optional YAML file. Command line flags
// override them. Abs works in the frame where both operands fit a unit box.
// PNGScale is in pixels per unit.
type settings struct {
	Precision    float64 `yaml:"precision"`
	ArcPrecision float64 `yaml:"arc_precision"`
	Abs          bool    `yaml:"abs"`
	LogLevel     string  `yaml:"log_level"`
	PNG          string  `yaml:"png"`
	PNGScale     float64 `yaml:"png_scale"`
	Xfig         string  `yaml:"xfig"`
}

func defaultSettings() settings {
	return settings{
		Precision:    geo2d.DefaultPrecision,
		ArcPrecision: geo2d.DefaultArcDetectionPrecision,
		LogLevel:     "warning",
		PNGScale:     100,
	}
}

func loadSettings(path string) (settings, error) {
	s := defaultSettings()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, errors.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, errors.Wrapf(err, "parsing config %s", path)
	}
	return s, nil
}

func (s settings) geometryConfig() (*geo2d.Config, error) {
	level, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.Level = level
	c := geo2d.DefaultConfig().WithPrecision(s.Precision, s.ArcPrecision).WithLogger(logger)
	if !(c.Precision > 0) || !(c.ArcDetectionPrecision > 0) {
		return nil, errors.Errorf("tolerances must be positive, got precision=%g arc=%g", c.Precision, c.ArcDetectionPrecision)
	}
	return c, nil
}
