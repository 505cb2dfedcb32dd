package core

import (
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/toejough/strcalc/internal/delim"
)

// Exported constants.
const (
	// DefaultMaxValue is the largest value that still counts toward a sum.
	DefaultMaxValue = 1000
)

// Option configures a Calculator.
type Option func(*Calculator)

// WithDefaultDelimiters replaces the delimiters used for input without a header.
// An empty list, or one containing an empty delimiter, leaves the defaults in place.
func WithDefaultDelimiters(delimiters ...string) Option {
	return func(c *Calculator) {
		if len(delimiters) == 0 || slices.Contains(delimiters, "") {
			return
		}

		c.defaults = delim.Set(slices.Clone(delimiters))
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Calculator) {
		if log != nil {
			c.log = log
		}
	}
}

// WithMaxValue sets the largest value that counts toward a sum. Larger values are dropped.
func WithMaxValue(maxValue int) Option {
	return func(c *Calculator) {
		c.maxValue = maxValue
	}
}
