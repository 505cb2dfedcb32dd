// Package core implements the string calculator: parsing, validation, summing,
// the call counter and listener notification.
package core

import (
	"strconv"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/toejough/strcalc/internal/delim"
)

// Calculator sums delimited integers. It is safe for concurrent use. Listeners run
// on the goroutine that called Add, after the lock is released.
type Calculator struct {
	maxValue int
	defaults delim.Set
	log      logrus.FieldLogger

	mu        sync.Mutex
	callCount int
	listeners listenerRegistry
}

// NewCalculator creates a Calculator with the default delimiters, a 1000 ceiling and the
// standard logrus logger, then applies opts.
func NewCalculator(opts ...Option) *Calculator {
	calc := &Calculator{
		maxValue: DefaultMaxValue,
		defaults: delim.Default,
		log:      logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(calc)
	}

	return calc
}

// Add returns the sum of the integers in input.
//
// Input may start with a delimiter header ("//;\n", "//[***]\n", "//[*][%]\n");
// otherwise commas and newlines separate values. Values above the ceiling are
// ignored. Any negative value fails the whole call with a *NegativeNumberError.
// On success the call count goes up by one and every listener is notified.
func (c *Calculator) Add(input string) (int, error) {
	values, err := c.parse(input)
	if err != nil {
		c.log.WithError(err).WithField("input", input).Debug("rejected input")

		return 0, err
	}

	result := c.sum(values)

	c.mu.Lock()
	c.callCount++
	count := c.callCount
	listeners := c.listeners.snapshot()
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{
		"input":  input,
		"result": result,
		"count":  count,
	}).Debug("computed sum")

	c.notify(listeners, input, result)

	return result, nil
}

// AddListener registers listener to run after every later successful Add. Listeners
// run in registration order; the same function may be registered more than once.
func (c *Calculator) AddListener(listener Listener) (ListenerID, error) {
	if listener == nil {
		return ListenerID{}, ErrInvalidCallback
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.listeners.add(listener), nil
}

// AddOptional is Add for callers whose input may be absent. A nil input counts as "".
func (c *Calculator) AddOptional(input *string) (int, error) {
	if input == nil {
		return c.Add("")
	}

	return c.Add(*input)
}

// CalledCount returns the number of successful Add calls.
func (c *Calculator) CalledCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.callCount
}

// RemoveListener removes the registration with the given id. It reports whether one was found.
func (c *Calculator) RemoveListener(id ListenerID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.listeners.remove(id)
}

// notify runs each listener in order. A panicking listener is logged and skipped.
func (c *Calculator) notify(listeners []registration, input string, result int) {
	for _, entry := range listeners {
		c.safeCall(entry, input, result)
	}
}

// parse converts input into integers, rejecting bad tokens and negatives.
func (c *Calculator) parse(input string) ([]int, error) {
	set, payload, err := delim.Parse(input, c.defaults)
	if err != nil {
		return nil, err
	}

	tokens := set.Split(payload)
	values := make([]int, 0, len(tokens))

	var negatives []int

	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		value, err := strconv.Atoi(token)
		if err != nil {
			return nil, &InvalidNumberError{
				Token: token,
				cause: pkgerrors.Wrapf(err, "token %q", token),
			}
		}

		if value < 0 {
			negatives = append(negatives, value)
		}

		values = append(values, value)
	}

	if len(negatives) > 0 {
		return nil, &NegativeNumberError{Values: negatives}
	}

	return values, nil
}

func (c *Calculator) safeCall(entry registration, input string, result int) {
	defer func() {
		if r := recover(); r != nil {
			c.log.WithFields(logrus.Fields{
				"listener": entry.id.String(),
				"panic":    r,
			}).Warn("listener panicked")
		}
	}()

	entry.listener(input, result)
}

// sum adds the values at or below the ceiling.
func (c *Calculator) sum(values []int) int {
	total := 0

	for _, v := range values {
		if v <= c.maxValue {
			total += v
		}
	}

	return total
}
