// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

// Package sweep steps the analyzer's spot frequency across a range and
// measures at each point.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidConfig = errors.New("invalid sweep configuration")
)

const (
	Impedance  = "impedance"
	Admittance = "admittance"

	// MaxPoints bounds a single sweep.
	MaxPoints = 10_000
)

// Analyzer is the part of hp4192a.Analyzer a sweep needs.
type Analyzer interface {
	SetSpotFrequency(hz float64) error
	SetSpotBias(v float64) error
	BiasOff() error
	Impedance() (complex128, error)
	Admittance() (complex128, error)
}

// Config provides the sweep configuration options.
type Config struct {
	// Start, Stop and Step are in Hz; Stop is included when it lands on a step.
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop"`
	Step  float64 `yaml:"step"`

	// Settle is how long to wait after changing frequency before measuring.
	Settle time.Duration `yaml:"settle"`

	// Quantity is either "impedance" (the default) or "admittance".
	Quantity string `yaml:"quantity"`

	// Bias, when set, is applied as the spot bias for the sweep and turned
	// off afterwards.
	Bias *float64 `yaml:"bias"`
}

// Point is one measurement of the sweep.
type Point struct {
	Frequency float64   `json:"frequency"`
	Real      float64   `json:"real"`
	Imaginary float64   `json:"imaginary"`
	Time      time.Time `json:"time"`
}

// Complex returns the measurement as a complex number.
func (p Point) Complex() complex128 {
	return complex(p.Real, p.Imaginary)
}

type Option interface {
	apply(s *Sweep)
}

type Sweep struct {
	a           Analyzer
	cfg         Config
	frequencies []float64
	measure     func() (complex128, error)
	clock       clock.Clock
	log         *zap.Logger
}

// New makes a new sweep.
func New(a Analyzer, cfg Config, opts ...Option) (*Sweep, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: no analyzer", ErrInvalidConfig)
	}

	frequencies, err := cfg.Frequencies()
	if err != nil {
		return nil, err
	}

	s := Sweep{
		a:           a,
		cfg:         cfg,
		frequencies: frequencies,
		measure:     a.Impedance,
		clock:       clock.New(),
		log:         zap.NewNop(),
	}

	switch cfg.Quantity {
	case "", Impedance:
	case Admittance:
		s.measure = a.Admittance
	default:
		return nil, fmt.Errorf("%w: unknown quantity '%s'", ErrInvalidConfig, cfg.Quantity)
	}

	for _, opt := range opts {
		opt.apply(&s)
	}

	return &s, nil
}

// Frequencies lists the points of the sweep in Hz.  The points are computed
// in decimal so repeated steps do not accumulate rounding error.
func (c Config) Frequencies() ([]float64, error) {
	for _, v := range []float64{c.Start, c.Stop, c.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: start %g, stop %g, step %g", ErrInvalidConfig, c.Start, c.Stop, c.Step)
		}
	}
	if c.Step <= 0 || c.Start <= 0 || c.Stop < c.Start {
		return nil, fmt.Errorf("%w: start %g, stop %g, step %g", ErrInvalidConfig, c.Start, c.Stop, c.Step)
	}
	if c.Settle < 0 {
		return nil, fmt.Errorf("%w: negative settle time", ErrInvalidConfig)
	}

	start := decimal.NewFromFloat(c.Start)
	stop := decimal.NewFromFloat(c.Stop)
	step := decimal.NewFromFloat(c.Step)

	// Checked in decimal, the quotient may not fit in an int64.
	steps := stop.Sub(start).Div(step).Floor()
	if steps.GreaterThanOrEqual(decimal.NewFromInt(MaxPoints)) {
		return nil, fmt.Errorf("%w: %s points is more than %d", ErrInvalidConfig, steps.Add(decimal.NewFromInt(1)), MaxPoints)
	}
	count := steps.IntPart() + 1

	out := make([]float64, 0, count)
	for i := int64(0); i < count; i++ {
		f, _ := start.Add(step.Mul(decimal.NewFromInt(i))).Float64()
		out = append(out, f)
	}
	return out, nil
}

// Run performs the sweep.  The points measured before an error or
// cancellation are returned along with it.
func (s *Sweep) Run(ctx context.Context) (points []Point, err error) {
	if s.cfg.Bias != nil {
		if err = s.a.SetSpotBias(*s.cfg.Bias); err != nil {
			return nil, err
		}
		defer func() {
			if e := s.a.BiasOff(); e != nil && err == nil {
				err = e
			}
		}()
	}

	points = make([]Point, 0, len(s.frequencies))
	for _, f := range s.frequencies {
		if err = ctx.Err(); err != nil {
			return points, err
		}

		if err = s.a.SetSpotFrequency(f); err != nil {
			return points, fmt.Errorf("sweep at %g Hz: %w", f, err)
		}

		if s.cfg.Settle > 0 {
			select {
			case <-s.clock.After(s.cfg.Settle):
			case <-ctx.Done():
				return points, ctx.Err()
			}
		}

		var z complex128
		if z, err = s.measure(); err != nil {
			return points, fmt.Errorf("sweep at %g Hz: %w", f, err)
		}

		points = append(points, Point{
			Frequency: f,
			Real:      real(z),
			Imaginary: imag(z),
			Time:      s.clock.Now(),
		})
	}

	s.log.Info("sweep complete",
		zap.Int("points", len(points)),
		zap.Float64("start", s.cfg.Start),
		zap.Float64("stop", s.cfg.Stop))

	return points, nil
}

// UseClock provides a way to set the clock used.  This is used for testing.
func UseClock(c clock.Clock) Option {
	return &clockOption{clk: c}
}

type clockOption struct {
	clk clock.Clock
}

func (c clockOption) apply(s *Sweep) {
	s.clock = c.clk
}

// WithLogger sets the logger used.
func WithLogger(l *zap.Logger) Option {
	return &loggerOption{log: l}
}

type loggerOption struct {
	log *zap.Logger
}

func (o loggerOption) apply(s *Sweep) {
	if o.log != nil {
		s.log = o.log
	}
}
