// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package hp4192a

import (
	"fmt"
	"strings"
)

// Property names a controllable quantity of the analyzer.
type Property string

const (
	SpotFrequency  Property = "spot_frequency"
	StartFrequency Property = "start_frequency"
	StopFrequency  Property = "stop_frequency"
	StepFrequency  Property = "step_frequency"
	SpotBias       Property = "spot_bias"
	StartBias      Property = "start_bias"
	StopBias       Property = "stop_bias"
	StepBias       Property = "step_bias"
)

// Kind groups properties by the physical unit they carry.
type Kind int

const (
	Frequency Kind = iota
	Bias
)

func (k Kind) String() string {
	switch k {
	case Frequency:
		return "frequency"
	case Bias:
		return "bias"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const (
	minFrequency     = 5.0
	minStepFrequency = 1.0
	maxFrequency     = 13_000_000.0
	maxBias          = 35.0
	minStepBias      = 0.01

	// Display C on, so the response carries three tokens and the value is
	// the last one.
	valueTokenCount = 3
	valueTokenIndex = 2
)

// PropertySpec binds a property to its commands, its allowed range and the
// functions that move values to and from the command grammar.
type PropertySpec struct {
	Name Property
	Kind Kind

	// Query is sent as is to read the value back.
	Query string

	// Set is a format string with a single %s verb for the encoded value.
	Set string

	// Min and Max are inclusive.
	Min float64
	Max float64

	Encode func(float64) string
	Decode func(string) (float64, error)
}

func (s PropertySpec) command(v float64) string {
	return fmt.Sprintf(s.Set, s.Encode(v))
}

func (s PropertySpec) validate(v float64) error {
	// Written this way so NaN is rejected too.
	if !(v >= s.Min && v <= s.Max) {
		return &RangeError{
			Property: s.Name,
			Value:    v,
			Min:      s.Min,
			Max:      s.Max,
		}
	}
	return nil
}

func frequencySpec(name Property, query, set string, lower float64) PropertySpec {
	return PropertySpec{
		Name:   name,
		Kind:   Frequency,
		Query:  query,
		Set:    set,
		Min:    lower,
		Max:    maxFrequency,
		Encode: EncodeFrequency,
		Decode: DecodeFrequency,
	}
}

func biasSpec(name Property, query, set string, lower float64) PropertySpec {
	return PropertySpec{
		Name:   name,
		Kind:   Bias,
		Query:  query,
		Set:    set,
		Min:    lower,
		Max:    maxBias,
		Encode: EncodeBias,
		Decode: DecodeBias,
	}
}

var specs = []PropertySpec{
	frequencySpec(SpotFrequency, "F1 FRR EX", "FR %sEN", minFrequency),
	frequencySpec(StartFrequency, "F1 TFR EX", "TF %sEN", minFrequency),
	frequencySpec(StopFrequency, "F1 TFR EX", "TF %sEN", minFrequency),
	frequencySpec(StepFrequency, "F1 SFR EX", "SF %sEN", minStepFrequency),
	biasSpec(SpotBias, "F1 BIR EX", "BI %sEN", -maxBias),
	biasSpec(StartBias, "F1 TBR EX", "TB %sEN", -maxBias),
	biasSpec(StopBias, "F1 PBR EX", "PB %sEN", -maxBias),
	biasSpec(StepBias, "F1 SBR EX", "SB %sEN", minStepBias),
}

var specsByName = func() map[Property]PropertySpec {
	m := make(map[Property]PropertySpec, len(specs))
	for _, s := range specs {
		m[s.Name] = s
	}
	return m
}()

// Properties returns the names of all the properties in a stable order.
func Properties() []Property {
	out := make([]Property, 0, len(specs))
	for _, s := range specs {
		out = append(out, s.Name)
	}
	return out
}

// Lookup returns the PropertySpec for the named property.
func Lookup(p Property) (PropertySpec, bool) {
	s, ok := specsByName[p]
	return s, ok
}

// ParseProperty accepts the property name in any case and with either
// dashes or underscores.
func ParseProperty(s string) (Property, error) {
	p := Property(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if _, ok := specsByName[p]; !ok {
		known := make([]string, 0, len(specs))
		for _, spec := range specs {
			known = append(known, string(spec.Name))
		}
		return "", fmt.Errorf("%w: '%s' valid: %s", ErrUnknownProperty, s, strings.Join(known, ", "))
	}
	return p, nil
}
