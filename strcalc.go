// Package strcalc sums integers written in a free-form, delimited string.
//
//	calc := strcalc.New()
//	sum, err := calc.Add("//[*][%]\n1*2%3") // 6
//
// Values are separated by commas or newlines unless the input starts with a
// delimiter header: "//;\n", "//[***]\n" or "//[*][%]\n". Values above 1000 are
// ignored and negative values are an error. Listeners registered with AddListener
// see every successful sum.
//
// This is the public API entry point. Implementation lives in internal/core.
package strcalc

import (
	"github.com/sirupsen/logrus"
	"github.com/toejough/strcalc/internal/core"
)

// Exported constants.
const (
	// DefaultMaxValue is the largest value that counts toward a sum unless WithMaxValue says otherwise.
	DefaultMaxValue = core.DefaultMaxValue
)

// Exported variables.
var (
	// ErrInvalidCallback is returned by AddListener for a nil listener.
	ErrInvalidCallback = core.ErrInvalidCallback
	// ErrInvalidHeader matches errors for malformed delimiter headers.
	ErrInvalidHeader = core.ErrInvalidHeader
	// ErrInvalidNumber matches every *InvalidNumberError.
	ErrInvalidNumber = core.ErrInvalidNumber
	// ErrNegativeNumber matches every *NegativeNumberError.
	ErrNegativeNumber = core.ErrNegativeNumber
)

// Calculator sums delimited integers, counts successful calls and notifies listeners.
type Calculator = core.Calculator

// InvalidNumberError reports a token that is not an integer literal.
type InvalidNumberError = core.InvalidNumberError

// Listener observes successful sums.
type Listener = core.Listener

// ListenerID identifies one listener registration.
type ListenerID = core.ListenerID

// NegativeNumberError lists every negative value found in one input.
type NegativeNumberError = core.NegativeNumberError

// Option configures a Calculator.
type Option = core.Option

// New creates a Calculator.
func New(opts ...Option) *Calculator {
	return core.NewCalculator(opts...)
}

// WithDefaultDelimiters replaces the comma and newline used for input without a header.
func WithDefaultDelimiters(delimiters ...string) Option {
	return core.WithDefaultDelimiters(delimiters...)
}

// WithLogger sets the logger used for debug and listener-failure entries.
func WithLogger(log logrus.FieldLogger) Option {
	return core.WithLogger(log)
}

// WithMaxValue sets the largest value that counts toward a sum.
func WithMaxValue(maxValue int) Option {
	return core.WithMaxValue(maxValue)
}
