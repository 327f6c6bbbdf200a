// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package hp4192a

import (
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

const (
	impedanceQuery  = "F0 A2 C2 EX"
	admittanceQuery = "F0 A2 C3 EX"
	biasOffCommand  = "I0"
)

var ErrInvalidParameter = errors.New("invalid parameter")

// Transport is the link to the physical instrument.  Write sends a command
// and Query sends a command and returns the comma separated response tokens.
type Transport interface {
	Write(cmd string) error
	Query(cmd string) ([]string, error)
}

type Option interface {
	apply(a *Analyzer)
}

// Analyzer drives an HP 4192A LF impedance analyzer.  Every call is a single
// blocking exchange with the instrument; an Analyzer is not safe for
// concurrent use.
type Analyzer struct {
	t       Transport
	log     *zap.Logger
	clock   clock.Clock
	metrics *Metrics
}

// New makes a new Analyzer that talks over t.
func New(t Transport, opts ...Option) (*Analyzer, error) {
	if t == nil {
		return nil, ErrInvalidParameter
	}

	a := Analyzer{
		t:     t,
		log:   zap.NewNop(),
		clock: clock.New(),
	}

	for _, opt := range opts {
		opt.apply(&a)
	}

	return &a, nil
}

// Set validates, encodes and writes v to the property p.
func (a *Analyzer) Set(p Property, v float64) error {
	spec, ok := Lookup(p)
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownProperty, p)
	}

	if err := spec.validate(v); err != nil {
		a.metrics.observe(opSet, 0, err)
		a.log.Warn("rejected value", zap.String("property", string(p)), zap.Float64("value", v))
		return err
	}

	return a.write(opSet, spec.command(v))
}

// Get queries and decodes the value of the property p.
func (a *Analyzer) Get(p Property) (float64, error) {
	spec, ok := Lookup(p)
	if !ok {
		return 0, fmt.Errorf("%w: '%s'", ErrUnknownProperty, p)
	}

	var v float64
	err := a.query(opGet, spec.Query, func(tokens []string) (err error) {
		if len(tokens) != valueTokenCount {
			return fmt.Errorf("%w: expected %d tokens, got %d",
				ErrProtocol, valueTokenCount, len(tokens))
		}
		v, err = spec.Decode(tokens[valueTokenIndex])
		return err
	})
	return v, err
}

// Impedance measures the complex impedance in ohms.
func (a *Analyzer) Impedance() (complex128, error) {
	return a.measure(impedanceQuery)
}

// Admittance measures the complex admittance in siemens.
func (a *Analyzer) Admittance() (complex128, error) {
	return a.measure(admittanceQuery)
}

// BiasOff turns the DC bias output off.
func (a *Analyzer) BiasOff() error {
	return a.write(opBiasOff, biasOffCommand)
}

func (a *Analyzer) measure(cmd string) (complex128, error) {
	var z complex128
	err := a.query(opMeasure, cmd, func(tokens []string) (err error) {
		z, err = DecodeComplex(tokens)
		return err
	})
	return z, err
}

func (a *Analyzer) write(op, cmd string) error {
	start := a.clock.Now()
	err := a.t.Write(cmd)
	if err != nil {
		err = &TransportError{Command: cmd, Err: err}
	}
	a.done(op, cmd, start, err)
	return err
}

func (a *Analyzer) query(op, cmd string, decode func([]string) error) error {
	start := a.clock.Now()
	tokens, err := a.t.Query(cmd)
	if err != nil {
		err = &TransportError{Command: cmd, Err: err}
	} else if derr := decode(tokens); derr != nil {
		err = &ProtocolError{
			Command:  cmd,
			Response: tokens,
			Err:      derr,
		}
	}
	a.done(op, cmd, start, err)
	return err
}

func (a *Analyzer) done(op, cmd string, start time.Time, err error) {
	d := a.clock.Since(start)
	a.metrics.observe(op, d, err)

	if err != nil {
		a.log.Error("instrument exchange failed",
			zap.String("command", cmd),
			zap.Duration("duration", d),
			zap.Error(err))
		return
	}
	a.log.Debug("instrument exchange",
		zap.String("command", cmd),
		zap.Duration("duration", d))
}

// WithLogger sets the logger used.  The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(a *Analyzer) {
		if l != nil {
			a.log = l
		}
	})
}

// WithMetrics records each exchange in m.
func WithMetrics(m *Metrics) Option {
	return optionFunc(func(a *Analyzer) {
		a.metrics = m
	})
}

// UseClock provides a way to set the clock used.  This is used for testing.
func UseClock(c clock.Clock) Option {
	return &clockOption{clk: c}
}

type clockOption struct {
	clk clock.Clock
}

func (c clockOption) apply(a *Analyzer) {
	a.clock = c.clk
}

type optionFunc func(*Analyzer)

func (f optionFunc) apply(a *Analyzer) {
	f(a)
}
