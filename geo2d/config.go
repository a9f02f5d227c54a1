package geo2d

import (
	"io"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats/scalar"
)

// Config carries the tolerances used by every geometric test. It is passed
// explicitly so that independent computations can run concurrently with
// different settings. A Config must not be mutated while an operation using
// it is in flight.
type Config struct {
	// Two nodes closer than this are the same point.
	Precision float64
	// Coarser tolerance used to detect colinear or concentric carriers before
	// solving for intersections.
	ArcDetectionPrecision float64
	// Nil means discard.
	Logger *logrus.Logger
}

const (
	DefaultPrecision             = 1e-12
	DefaultArcDetectionPrecision = 1e-9
)

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	l.Level = logrus.PanicLevel
	return l
}()

func DefaultConfig() *Config {
	return &Config{
		Precision:             DefaultPrecision,
		ArcDetectionPrecision: DefaultArcDetectionPrecision,
	}
}

// Copy with another precision pair.
func (c *Config) WithPrecision(precision, arcDetection float64) *Config {
	r := *c
	r.Precision = precision
	r.ArcDetectionPrecision = arcDetection
	return &r
}

func (c *Config) WithLogger(l *logrus.Logger) *Config {
	r := *c
	r.Logger = l
	return &r
}

// Log is the configured logger, or one discarding everything.
func (c *Config) Log() *logrus.Logger {
	if c == nil || c.Logger == nil {
		return discardLogger
	}
	return c.Logger
}

// To compensate for imprecision in floats, equality is tolerance based.
func (c *Config) Equal(a, b float64) bool {
	return scalar.EqualWithinAbs(a, b, c.Precision)
}

func (c *Config) validate() {
	if c == nil {
		fatalf(InvalidInput, "nil configuration")
	}
	if !(c.Precision > 0) || !(c.ArcDetectionPrecision > 0) {
		fatalf(InvalidInput, "tolerances must be positive, got precision=%g arc=%g", c.Precision, c.ArcDetectionPrecision)
	}
}
