package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/toejough/strcalc/internal/delim"
)

// Exported variables.
var (
	// ErrInvalidCallback is returned by AddListener for a nil listener.
	ErrInvalidCallback = errors.New("listener must be a non-nil function")
	// ErrInvalidHeader matches errors for malformed delimiter headers.
	ErrInvalidHeader = delim.ErrInvalidHeader
	// ErrInvalidNumber matches every *InvalidNumberError.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrNegativeNumber matches every *NegativeNumberError.
	ErrNegativeNumber = errors.New("negatives not allowed")
)

// InvalidNumberError reports a token that is not an integer literal.
type InvalidNumberError struct {
	Token string
	cause error
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidNumber, e.Token)
}

// Is reports whether target is ErrInvalidNumber.
func (e *InvalidNumberError) Is(target error) bool {
	return target == ErrInvalidNumber
}

// Unwrap returns the conversion failure behind the error.
func (e *InvalidNumberError) Unwrap() error {
	return e.cause
}

// NegativeNumberError lists every negative value found in one input, in input order.
type NegativeNumberError struct {
	Values []int
}

func (e *NegativeNumberError) Error() string {
	parts := make([]string, len(e.Values))
	for i, v := range e.Values {
		parts[i] = strconv.Itoa(v)
	}

	return ErrNegativeNumber.Error() + ": " + strings.Join(parts, ",")
}

// Is reports whether target is ErrNegativeNumber.
func (e *NegativeNumberError) Is(target error) bool {
	return target == ErrNegativeNumber
}
