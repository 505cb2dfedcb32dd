// Package match provides gomega matchers for strcalc errors.
// This package is designed to be dot-imported alongside gomega matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    . "github.com/toejough/strcalc/match"
//	)
//
//	_, err := calc.Add("1,-2,-3")
//	Expect(err).To(BeNegativeNumbers(-2, -3))
package match

import (
	"errors"
	"fmt"
	"slices"

	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"
	"github.com/toejough/strcalc/internal/core"
)

// errNotAnError is returned when a matcher is applied to something other than an error.
var errNotAnError = errors.New("expected an error")

// BeInvalidCallback matches errors returned for a nil listener.
func BeInvalidCallback() types.GomegaMatcher {
	return &sentinelMatcher{sentinel: core.ErrInvalidCallback}
}

// BeInvalidHeader matches errors for malformed delimiter headers.
func BeInvalidHeader() types.GomegaMatcher {
	return &sentinelMatcher{sentinel: core.ErrInvalidHeader}
}

// BeInvalidNumber matches an *InvalidNumberError for the given token.
func BeInvalidNumber(token string) types.GomegaMatcher {
	return &invalidNumberMatcher{token: token}
}

// BeNegativeNumbers matches a *NegativeNumberError listing exactly values, in order.
// With no values it matches any negative-number error.
func BeNegativeNumbers(values ...int) types.GomegaMatcher {
	return &negativesMatcher{values: values}
}

type invalidNumberMatcher struct {
	token string
}

func (m *invalidNumberMatcher) FailureMessage(actual any) string {
	return format.Message(actual, fmt.Sprintf("to be an invalid number error for token %q", m.token))
}

func (m *invalidNumberMatcher) Match(actual any) (bool, error) {
	err, matchErr := asError(actual)
	if err == nil {
		return false, matchErr
	}

	var invalid *core.InvalidNumberError
	if !errors.As(err, &invalid) {
		return false, nil
	}

	return invalid.Token == m.token, nil
}

func (m *invalidNumberMatcher) NegatedFailureMessage(actual any) string {
	return format.Message(actual, fmt.Sprintf("not to be an invalid number error for token %q", m.token))
}

type negativesMatcher struct {
	values []int
}

func (m *negativesMatcher) FailureMessage(actual any) string {
	return format.Message(actual, "to be a negative number error listing", m.values)
}

func (m *negativesMatcher) Match(actual any) (bool, error) {
	err, matchErr := asError(actual)
	if err == nil {
		return false, matchErr
	}

	var negative *core.NegativeNumberError
	if !errors.As(err, &negative) {
		return false, nil
	}

	if len(m.values) == 0 {
		return true, nil
	}

	return slices.Equal(negative.Values, m.values), nil
}

func (m *negativesMatcher) NegatedFailureMessage(actual any) string {
	return format.Message(actual, "not to be a negative number error listing", m.values)
}

type sentinelMatcher struct {
	sentinel error
}

func (m *sentinelMatcher) FailureMessage(actual any) string {
	return format.Message(actual, "to wrap", m.sentinel)
}

func (m *sentinelMatcher) Match(actual any) (bool, error) {
	err, matchErr := asError(actual)
	if err == nil {
		return false, matchErr
	}

	return errors.Is(err, m.sentinel), nil
}

func (m *sentinelMatcher) NegatedFailureMessage(actual any) string {
	return format.Message(actual, "not to wrap", m.sentinel)
}

// asError converts actual to an error. A nil actual is a plain mismatch.
func asError(actual any) (error, error) {
	if actual == nil {
		return nil, nil
	}

	err, ok := actual.(error)
	if !ok {
		return nil, fmt.Errorf("%w, got %T", errNotAnError, actual)
	}

	return err, nil
}
