// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package hp4192a_test

import (
	"fmt"
	"testing"

	"github.com/schmidtw/hp4192a/hp4192a"
	"github.com/schmidtw/hp4192a/simulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	frequencies := []float64{5, 1234.567, 12345.67, 123456.7, 1234567, 12345670, 13000000}
	stepFrequencies := append([]float64{1}, frequencies...)
	biases := []float64{-35, -0.01, 0, 0.01, 35}

	tests := []struct {
		property hp4192a.Property
		values   []float64
	}{
		{property: hp4192a.SpotFrequency, values: frequencies},
		{property: hp4192a.StartFrequency, values: frequencies},
		{property: hp4192a.StopFrequency, values: frequencies},
		{property: hp4192a.StepFrequency, values: stepFrequencies},
		{property: hp4192a.SpotBias, values: biases},
		{property: hp4192a.StartBias, values: biases},
		{property: hp4192a.StopBias, values: biases},
		{property: hp4192a.StepBias, values: []float64{0.01, 0.5, 35}},
	}

	for _, tc := range tests {
		for _, v := range tc.values {
			t.Run(fmt.Sprintf("%s %g", tc.property, v), func(t *testing.T) {
				assert := assert.New(t)
				require := require.New(t)

				sim, err := simulator.New(simulator.Config{})
				require.NoError(err)
				a, err := hp4192a.New(sim)
				require.NoError(err)

				require.NoError(a.Set(tc.property, v))
				got, err := a.Get(tc.property)
				require.NoError(err)
				assert.Equal(v, got)
			})
		}
	}
}

func TestBiasOffAgainstSimulator(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sim, err := simulator.New(simulator.Config{})
	require.NoError(err)
	a, err := hp4192a.New(sim)
	require.NoError(err)

	require.NoError(a.SetSpotBias(1.5))
	assert.True(sim.BiasEnabled())

	require.NoError(a.BiasOff())
	assert.False(sim.BiasEnabled())
	assert.Equal([]string{"BI 1.5EN", "I0"}, sim.History())
}

func TestImpedanceAgainstSimulator(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sim, err := simulator.New(simulator.Config{Resistance: 50, Capacitance: 1e-6})
	require.NoError(err)
	a, err := hp4192a.New(sim)
	require.NoError(err)

	require.NoError(a.SetSpotFrequency(1000))

	z, err := a.Impedance()
	require.NoError(err)
	assert.InDelta(50.0, real(z), 1e-9)
	assert.InDelta(-159.15, imag(z), 1e-9)

	y, err := a.Admittance()
	require.NoError(err)
	assert.InDelta(1.0, real(y*z), 1e-3)
}
