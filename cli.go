// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/schmidtw/hp4192a/hp4192a"
	"github.com/schmidtw/hp4192a/sweep"
	"github.com/schmidtw/hp4192a/units"
	"go.uber.org/zap"
)

type CLI struct {
	Files    []string `short:"f" type:"existingfile" help:"Configuration file(s) to read."`
	Simulate bool     `help:"Talk to the built in simulator instead of an instrument."`
	Port     string   `help:"Serial port of the GPIB controller, overrides the configuration."`
	Address  int      `default:"-1" help:"GPIB address of the analyzer, overrides the configuration."`

	Get        GetCmd        `cmd:"" help:"Read a property."`
	Set        SetCmd        `cmd:"" help:"Write a property."`
	Measure    MeasureCmd    `cmd:"" help:"Measure impedance or admittance at the spot frequency."`
	BiasOff    BiasOffCmd    `cmd:"" name:"bias-off" help:"Turn the DC bias output off."`
	Sweep      SweepCmd      `cmd:"" help:"Step the spot frequency and measure at each point."`
	Serve      ServeCmd      `cmd:"" help:"Serve the HTTP control API and metrics."`
	Properties PropertiesCmd `cmd:"" help:"List the properties and their ranges."`
	Config     ConfigCmd     `cmd:"" help:"Print the resolved configuration."`
}

type GetCmd struct {
	Property string `arg:"" help:"Property to read, for example spot_frequency."`
}

func (c *GetCmd) Run(rt *runtime) error {
	p, err := hp4192a.ParseProperty(c.Property)
	if err != nil {
		return err
	}
	spec, _ := hp4192a.Lookup(p)

	v, err := rt.analyzer.Get(p)
	if err != nil {
		return err
	}

	fmt.Fprintf(rt.out, "%s %g (%s)\n", p, v, units.FormatValue(spec.Kind, v))
	return nil
}

type SetCmd struct {
	Property string `arg:"" help:"Property to write, for example spot_bias."`
	Value    string `arg:"" help:"Value with optional units, for example 1.5kHz or -350mV."`
}

func (c *SetCmd) Run(rt *runtime) error {
	p, err := hp4192a.ParseProperty(c.Property)
	if err != nil {
		return err
	}
	spec, _ := hp4192a.Lookup(p)

	v, err := units.ParseValue(spec.Kind, c.Value)
	if err != nil {
		return err
	}

	return rt.analyzer.Set(p, v)
}

type MeasureCmd struct {
	Quantity string `arg:"" enum:"impedance,admittance" help:"impedance or admittance."`
}

func (c *MeasureCmd) Run(rt *runtime) error {
	fn, unit := rt.analyzer.Impedance, "ohm"
	if c.Quantity == sweep.Admittance {
		fn, unit = rt.analyzer.Admittance, "S"
	}

	z, err := fn()
	if err != nil {
		return err
	}

	fmt.Fprintf(rt.out, "%s: %g %+gj %s (|%g| %s, %.3f deg)\n",
		c.Quantity, real(z), imag(z), unit, cmplx.Abs(z), unit, cmplx.Phase(z)*180/math.Pi)
	return nil
}

type BiasOffCmd struct{}

func (c *BiasOffCmd) Run(rt *runtime) error {
	return rt.analyzer.BiasOff()
}

type SweepCmd struct {
	Start    string        `help:"Start frequency, overrides the configuration."`
	Stop     string        `help:"Stop frequency, overrides the configuration."`
	Step     string        `help:"Step frequency, overrides the configuration."`
	Settle   time.Duration `help:"Wait after each frequency change, overrides the configuration."`
	Quantity string        `help:"impedance or admittance, overrides the configuration."`
	Bias     string        `help:"Spot bias to apply during the sweep."`
}

func (c *SweepCmd) config(base sweep.Config) (sweep.Config, error) {
	cfg := base

	for _, f := range []struct {
		in  string
		out *float64
	}{
		{in: c.Start, out: &cfg.Start},
		{in: c.Stop, out: &cfg.Stop},
		{in: c.Step, out: &cfg.Step},
	} {
		if f.in == "" {
			continue
		}
		v, err := units.ParseFrequency(f.in)
		if err != nil {
			return cfg, err
		}
		*f.out = v
	}

	if c.Bias != "" {
		v, err := units.ParseVoltage(c.Bias)
		if err != nil {
			return cfg, err
		}
		cfg.Bias = &v
	}
	if c.Settle != 0 {
		cfg.Settle = c.Settle
	}
	if c.Quantity != "" {
		cfg.Quantity = c.Quantity
	}
	return cfg, nil
}

func (c *SweepCmd) Run(rt *runtime) error {
	cfg, err := c.config(rt.cfg.Sweep)
	if err != nil {
		return err
	}

	s, err := sweep.New(rt.analyzer, cfg, sweep.WithLogger(rt.log.Named("sweep")))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	points, err := s.Run(ctx)

	w := tabwriter.NewWriter(rt.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "frequency\treal\timaginary")
	for _, p := range points {
		fmt.Fprintf(w, "%s\t%g\t%g\n", units.FormatFrequency(p.Frequency), p.Real, p.Imaginary)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

type ServeCmd struct{}

func (c *ServeCmd) Run(rt *runtime) error {
	rt.log.Info("serving until signaled")
	sig := <-rt.done
	rt.log.Info("shutting down", zap.Stringer("signal", sig))
	return nil
}

type PropertiesCmd struct{}

func (c *PropertiesCmd) Run(rt *runtime) error {
	w := tabwriter.NewWriter(rt.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "property\tkind\tmin\tmax")
	for _, p := range hp4192a.Properties() {
		spec, _ := hp4192a.Lookup(p)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p, spec.Kind,
			units.FormatValue(spec.Kind, spec.Min),
			units.FormatValue(spec.Kind, spec.Max))
	}
	return w.Flush()
}

type ConfigCmd struct{}

func (c *ConfigCmd) Run(rt *runtime) error {
	b, err := rt.gs.Marshal()
	if err != nil {
		return err
	}
	_, err = rt.out.Write(b)
	return err
}
