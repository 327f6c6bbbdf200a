// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package hp4192a

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var errUnplugged = errors.New("unplugged")

func TestNew(t *testing.T) {
	assert := assert.New(t)

	a, err := New(nil)
	assert.ErrorIs(err, ErrInvalidParameter)
	assert.Nil(a)

	a, err = New(new(mockTransport), WithLogger(nil), WithMetrics(nil))
	assert.NoError(err)
	assert.NotNil(a)
}

func TestSet(t *testing.T) {
	tests := []struct {
		description string
		property    Property
		value       float64
		command     string
		writeErr    error
		expectErr   error
	}{
		{
			description: "spot frequency low band",
			property:    SpotFrequency,
			value:       1234.567,
			command:     "FR 1.234567EN",
		}, {
			description: "spot frequency lower bound",
			property:    SpotFrequency,
			value:       5,
			command:     "FR 0.005000EN",
		}, {
			description: "start frequency upper bound",
			property:    StartFrequency,
			value:       13000000,
			command:     "TF 13000.000EN",
		}, {
			description: "stop frequency shares the start command",
			property:    StopFrequency,
			value:       123456.7,
			command:     "TF 123.4567EN",
		}, {
			description: "step frequency 1 Hz",
			property:    StepFrequency,
			value:       1,
			command:     "SF 0.001000EN",
		}, {
			description: "spot bias negative",
			property:    SpotBias,
			value:       -35,
			command:     "BI -35EN",
		}, {
			description: "start bias",
			property:    StartBias,
			value:       -0.01,
			command:     "TB -0.01EN",
		}, {
			description: "stop bias",
			property:    StopBias,
			value:       0,
			command:     "PB 0EN",
		}, {
			description: "step bias floor",
			property:    StepBias,
			value:       0.01,
			command:     "SB 0.01EN",
		}, {
			description: "frequency below range",
			property:    SpotFrequency,
			value:       4.999,
			expectErr:   ErrRange,
		}, {
			description: "frequency above range",
			property:    StopFrequency,
			value:       13000000.5,
			expectErr:   ErrRange,
		}, {
			description: "step frequency below 1 Hz",
			property:    StepFrequency,
			value:       0.001,
			expectErr:   ErrRange,
		}, {
			description: "step bias of zero",
			property:    StepBias,
			value:       0,
			expectErr:   ErrRange,
		}, {
			description: "bias above range",
			property:    SpotBias,
			value:       35.01,
			expectErr:   ErrRange,
		}, {
			description: "not a number",
			property:    SpotBias,
			value:       math.NaN(),
			expectErr:   ErrRange,
		}, {
			description: "unknown property",
			property:    Property("dc_current"),
			value:       1,
			expectErr:   ErrUnknownProperty,
		}, {
			description: "transport failure",
			property:    SpotFrequency,
			value:       1000,
			command:     "FR 1.000000EN",
			writeErr:    errUnplugged,
			expectErr:   ErrTransport,
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := new(mockTransport)
			if tc.command != "" {
				m.On("Write", tc.command).Return(tc.writeErr).Once()
			}

			a, err := New(m)
			require.NoError(err)

			err = a.Set(tc.property, tc.value)
			m.AssertExpectations(t)
			m.AssertNotCalled(t, "Query", mock.Anything)

			if tc.expectErr == nil {
				assert.NoError(err)
				return
			}

			assert.ErrorIs(err, tc.expectErr)
			if tc.writeErr != nil {
				assert.ErrorIs(err, tc.writeErr)
			}
			if tc.command == "" {
				m.AssertNotCalled(t, "Write", mock.Anything)
			}
		})
	}
}

func TestRangeErrorDetails(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	a, err := New(new(mockTransport))
	require.NoError(err)

	err = a.SetStepBias(0)

	var re *RangeError
	require.True(errors.As(err, &re))
	assert.Equal(StepBias, re.Property)
	assert.Equal(0.0, re.Value)
	assert.Equal(0.01, re.Min)
	assert.Equal(35.0, re.Max)
	assert.Contains(err.Error(), "step_bias")
}

func TestGet(t *testing.T) {
	display := func(c string) []string {
		return []string{"NZFN+1.000E+02", "NTDN+1.000E-03", c}
	}

	tests := []struct {
		description string
		property    Property
		query       string
		response    []string
		queryErr    error
		expect      float64
		expectErr   error
	}{
		{
			description: "spot frequency",
			property:    SpotFrequency,
			query:       "F1 FRR EX",
			response:    display("FRK+1.234567"),
			expect:      1234.567,
		}, {
			description: "start frequency",
			property:    StartFrequency,
			query:       "F1 TFR EX",
			response:    display("TFK+12345.670"),
			expect:      12345670,
		}, {
			description: "stop frequency",
			property:    StopFrequency,
			query:       "F1 TFR EX",
			response:    display("TFK+0.005000"),
			expect:      5,
		}, {
			description: "step frequency",
			property:    StepFrequency,
			query:       "F1 SFR EX",
			response:    display("SFK+0.001000"),
			expect:      1,
		}, {
			description: "spot bias",
			property:    SpotBias,
			query:       "F1 BIR EX",
			response:    display("BIV-0.01"),
			expect:      -0.01,
		}, {
			description: "start bias",
			property:    StartBias,
			query:       "F1 TBR EX",
			response:    display("TBV-35"),
			expect:      -35,
		}, {
			description: "stop bias",
			property:    StopBias,
			query:       "F1 PBR EX",
			response:    display("PBV+35"),
			expect:      35,
		}, {
			description: "step bias",
			property:    StepBias,
			query:       "F1 SBR EX",
			response:    display("SBV0.5"),
			expect:      0.5,
		}, {
			description: "too few tokens",
			property:    SpotFrequency,
			query:       "F1 FRR EX",
			response:    []string{"FRK+1.0"},
			expectErr:   ErrProtocol,
		}, {
			description: "garbage value",
			property:    SpotBias,
			query:       "F1 BIR EX",
			response:    display("BIVzz"),
			expectErr:   ErrProtocol,
		}, {
			description: "transport failure",
			property:    SpotBias,
			query:       "F1 BIR EX",
			queryErr:    errUnplugged,
			expectErr:   ErrTransport,
		}, {
			description: "unknown property",
			property:    Property("nope"),
			expectErr:   ErrUnknownProperty,
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := new(mockTransport)
			if tc.query != "" {
				m.On("Query", tc.query).Return(tc.response, tc.queryErr).Once()
			}

			a, err := New(m)
			require.NoError(err)

			got, err := a.Get(tc.property)
			m.AssertExpectations(t)
			m.AssertNotCalled(t, "Write", mock.Anything)

			if tc.expectErr == nil {
				assert.NoError(err)
				assert.Equal(tc.expect, got)
				return
			}

			assert.ErrorIs(err, tc.expectErr)
			assert.Zero(got)
		})
	}
}

func TestMeasure(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	m := new(mockTransport)
	m.On("Query", "F0 A2 C2 EX").Return([]string{"A2 -1.234E+02", "C2 5.678E+01"}, nil).Once()
	m.On("Query", "F0 A2 C3 EX").Return([]string{"NYFN+1.000E-02", "NBFN-2.000E-03"}, nil).Once()

	a, err := New(m)
	require.NoError(err)

	z, err := a.Impedance()
	assert.NoError(err)
	assert.Equal(complex(-123.4, 56.78), z)

	y, err := a.Admittance()
	assert.NoError(err)
	assert.Equal(complex(0.01, -0.002), y)

	m.AssertExpectations(t)
}

func TestMeasureProtocolError(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	m := new(mockTransport)
	m.On("Query", "F0 A2 C2 EX").Return([]string{"A2 -1.234E+02"}, nil).Once()

	a, err := New(m)
	require.NoError(err)

	_, err = a.Impedance()
	assert.ErrorIs(err, ErrProtocol)

	var pe *ProtocolError
	require.True(errors.As(err, &pe))
	assert.Equal("F0 A2 C2 EX", pe.Command)
	assert.Equal([]string{"A2 -1.234E+02"}, pe.Response)
}

func TestBiasOff(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	m := new(mockTransport)
	m.On("Write", "I0").Return(nil).Once()

	a, err := New(m)
	require.NoError(err)

	assert.NoError(a.BiasOff())
	m.AssertExpectations(t)
	m.AssertNumberOfCalls(t, "Write", 1)
	m.AssertNotCalled(t, "Query", mock.Anything)
}

func TestAccessors(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	m := new(mockTransport)
	a, err := New(m)
	require.NoError(err)

	setters := []struct {
		fn      func(float64) error
		value   float64
		command string
	}{
		{fn: a.SetSpotFrequency, value: 1000, command: "FR 1.000000EN"},
		{fn: a.SetStartFrequency, value: 20000, command: "TF 20.00000EN"},
		{fn: a.SetStopFrequency, value: 200000, command: "TF 200.0000EN"},
		{fn: a.SetStepFrequency, value: 2000000, command: "SF 2000.000EN"},
		{fn: a.SetSpotBias, value: 1.5, command: "BI 1.5EN"},
		{fn: a.SetStartBias, value: -1, command: "TB -1EN"},
		{fn: a.SetStopBias, value: 1, command: "PB 1EN"},
		{fn: a.SetStepBias, value: 0.1, command: "SB 0.1EN"},
	}
	for _, s := range setters {
		m.On("Write", s.command).Return(nil).Once()
		assert.NoError(s.fn(s.value))
	}

	getters := []struct {
		fn    func() (float64, error)
		query string
	}{
		{fn: a.SpotFrequency, query: "F1 FRR EX"},
		{fn: a.StartFrequency, query: "F1 TFR EX"},
		{fn: a.StopFrequency, query: "F1 TFR EX"},
		{fn: a.StepFrequency, query: "F1 SFR EX"},
		{fn: a.SpotBias, query: "F1 BIR EX"},
		{fn: a.StartBias, query: "F1 TBR EX"},
		{fn: a.StopBias, query: "F1 PBR EX"},
		{fn: a.StepBias, query: "F1 SBR EX"},
	}
	for _, g := range getters {
		m.On("Query", g.query).Return([]string{"A", "B", "XXK+1"}, nil).Once()
		_, err := g.fn()
		assert.NoError(err)
	}

	m.AssertExpectations(t)
}

func TestMetrics(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg, "testing")
	require.NoError(err)

	_, err = NewMetrics(reg, "testing")
	assert.Error(err, "registering twice must fail")

	mclock := clock.NewMock()
	m := new(mockTransport)
	m.On("Write", "FR 1.000000EN").Run(func(mock.Arguments) {
		mclock.Add(20 * time.Millisecond)
	}).Return(nil).Once()
	m.On("Write", "I0").Return(errUnplugged).Once()
	m.On("Query", "F0 A2 C2 EX").Return([]string{"junk"}, nil).Once()

	a, err := New(m, WithMetrics(metrics), UseClock(mclock))
	require.NoError(err)

	assert.NoError(a.SetSpotFrequency(1000))
	assert.Error(a.SetSpotFrequency(1))
	assert.Error(a.BiasOff())
	_, err = a.Impedance()
	assert.Error(err)

	assert.Equal(1.0, testutil.ToFloat64(metrics.commands.WithLabelValues(opSet, outcomeOK)))
	assert.Equal(1.0, testutil.ToFloat64(metrics.commands.WithLabelValues(opSet, outcomeRange)))
	assert.Equal(1.0, testutil.ToFloat64(metrics.commands.WithLabelValues(opBiasOff, outcomeTransport)))
	assert.Equal(1.0, testutil.ToFloat64(metrics.commands.WithLabelValues(opMeasure, outcomeProtocol)))
}

func TestLogging(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	core, logs := observer.New(zapcore.DebugLevel)

	m := new(mockTransport)
	m.On("Write", "FR 1.000000EN").Return(nil).Once()

	a, err := New(m, WithLogger(zap.New(core)))
	require.NoError(err)

	assert.NoError(a.SetSpotFrequency(1000))
	assert.Error(a.SetSpotFrequency(0))

	assert.Equal(1, logs.FilterMessage("instrument exchange").Len())
	assert.Equal(1, logs.FilterMessage("rejected value").Len())
}
