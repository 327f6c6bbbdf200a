// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

// Package simulator provides an in-memory stand in for an HP 4192A that
// speaks the same command grammar over the hp4192a.Transport interface.
package simulator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Config describes the device under test the simulator measures: a resistor
// in series with a capacitor.
type Config struct {
	Resistance  float64 `yaml:"resistance"`
	Capacitance float64 `yaml:"capacitance"`
}

const (
	defaultResistance  = 100.0
	defaultCapacitance = 1e-6

	// Display A/B contents echoed in front of a display C value.
	displayA = "NZFN+0.0000E+00"
	displayB = "NTDN+0.0000E+00"
)

// units marker per register
var registers = map[string]byte{
	"FR": 'K',
	"TF": 'K',
	"SF": 'K',
	"BI": 'V',
	"TB": 'V',
	"PB": 'V',
	"SB": 'V',
}

type Simulator struct {
	m       sync.Mutex
	r       float64
	c       float64
	values  map[string]string
	biasOn  bool
	history []string
}

// New makes a new Simulator.
func New(cfg Config) (*Simulator, error) {
	if cfg.Resistance == 0 {
		cfg.Resistance = defaultResistance
	}
	if cfg.Capacitance == 0 {
		cfg.Capacitance = defaultCapacitance
	}
	if cfg.Resistance < 0 || cfg.Capacitance < 0 {
		return nil, ErrInvalidParameter
	}

	return &Simulator{
		r: cfg.Resistance,
		c: cfg.Capacitance,
		values: map[string]string{
			"FR": "100.0000",
			"TF": "5.000000",
			"SF": "1.000000",
			"BI": "0",
			"TB": "0",
			"PB": "0",
			"SB": "0.01",
		},
	}, nil
}

// Write accepts "I0" and the "XX <value>EN" set commands.
func (s *Simulator) Write(cmd string) error {
	s.m.Lock()
	defer s.m.Unlock()

	s.history = append(s.history, cmd)

	if cmd == "I0" {
		s.biasOn = false
		return nil
	}

	reg, value, ok := parseSet(cmd)
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownCommand, cmd)
	}

	s.values[reg] = value
	if reg == "BI" {
		s.biasOn = true
	}
	return nil
}

// Query answers the "F1 XXR EX" register reads and the "F0 A2 C2 EX" /
// "F0 A2 C3 EX" measurements.
func (s *Simulator) Query(cmd string) ([]string, error) {
	s.m.Lock()
	defer s.m.Unlock()

	s.history = append(s.history, cmd)

	switch cmd {
	case "F0 A2 C2 EX":
		z := s.impedance()
		return []string{tagged("NZFN", real(z)), tagged("NXFN", imag(z))}, nil
	case "F0 A2 C3 EX":
		y := 1 / s.impedance()
		return []string{tagged("NYFN", real(y)), tagged("NBFN", imag(y))}, nil
	}

	fields := strings.Fields(cmd)
	if len(fields) == 3 && fields[0] == "F1" && fields[2] == "EX" &&
		len(fields[1]) == 3 && fields[1][2] == 'R' {
		reg := fields[1][:2]
		if marker, ok := registers[reg]; ok {
			return []string{displayA, displayB, reg + string(marker) + signed(s.values[reg])}, nil
		}
	}

	return nil, fmt.Errorf("%w: '%s'", ErrUnknownCommand, cmd)
}

// BiasEnabled reports if the DC bias output is on.
func (s *Simulator) BiasEnabled() bool {
	s.m.Lock()
	defer s.m.Unlock()
	return s.biasOn
}

// History returns every command received so far.
func (s *Simulator) History() []string {
	s.m.Lock()
	defer s.m.Unlock()
	return append([]string(nil), s.history...)
}

func (s *Simulator) impedance() complex128 {
	khz, _ := strconv.ParseFloat(s.values["FR"], 64)
	w := 2 * math.Pi * khz * 1000
	return complex(s.r, 0) + 1/complex(0, w*s.c)
}

func parseSet(cmd string) (reg, value string, ok bool) {
	if !strings.HasSuffix(cmd, "EN") || len(cmd) < 6 || cmd[2] != ' ' {
		return "", "", false
	}

	reg = cmd[:2]
	if _, known := registers[reg]; !known {
		return "", "", false
	}

	value = cmd[3 : len(cmd)-2]
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return "", "", false
	}
	return reg, value, true
}

func signed(v string) string {
	if strings.HasPrefix(v, "-") {
		return v
	}
	return "+" + v
}

func tagged(tag string, v float64) string {
	return tag + signed(strconv.FormatFloat(v, 'E', 4, 64))
}
