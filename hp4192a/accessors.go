// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package hp4192a

// SpotFrequency returns the spot frequency in Hz.
func (a *Analyzer) SpotFrequency() (float64, error) { return a.Get(SpotFrequency) }

// SetSpotFrequency sets the spot frequency in Hz, 5 to 13000000.
func (a *Analyzer) SetSpotFrequency(hz float64) error { return a.Set(SpotFrequency, hz) }

// StartFrequency returns the sweep start frequency in Hz.
func (a *Analyzer) StartFrequency() (float64, error) { return a.Get(StartFrequency) }

// SetStartFrequency sets the sweep start frequency in Hz, 5 to 13000000.
func (a *Analyzer) SetStartFrequency(hz float64) error { return a.Set(StartFrequency, hz) }

// StopFrequency returns the sweep stop frequency in Hz.
func (a *Analyzer) StopFrequency() (float64, error) { return a.Get(StopFrequency) }

// SetStopFrequency sets the sweep stop frequency in Hz, 5 to 13000000.
func (a *Analyzer) SetStopFrequency(hz float64) error { return a.Set(StopFrequency, hz) }

// StepFrequency returns the sweep step frequency in Hz.
func (a *Analyzer) StepFrequency() (float64, error) { return a.Get(StepFrequency) }

// SetStepFrequency sets the sweep step frequency in Hz, 1 to 13000000.
func (a *Analyzer) SetStepFrequency(hz float64) error { return a.Set(StepFrequency, hz) }

// SpotBias returns the spot DC bias in volts.
func (a *Analyzer) SpotBias() (float64, error) { return a.Get(SpotBias) }

// SetSpotBias sets the spot DC bias in volts, -35 to 35.
func (a *Analyzer) SetSpotBias(v float64) error { return a.Set(SpotBias, v) }

// StartBias returns the sweep start DC bias in volts.
func (a *Analyzer) StartBias() (float64, error) { return a.Get(StartBias) }

// SetStartBias sets the sweep start DC bias in volts, -35 to 35.
func (a *Analyzer) SetStartBias(v float64) error { return a.Set(StartBias, v) }

// StopBias returns the sweep stop DC bias in volts.
func (a *Analyzer) StopBias() (float64, error) { return a.Get(StopBias) }

// SetStopBias sets the sweep stop DC bias in volts, -35 to 35.
func (a *Analyzer) SetStopBias(v float64) error { return a.Set(StopBias, v) }

// StepBias returns the sweep step DC bias in volts.
func (a *Analyzer) StepBias() (float64, error) { return a.Get(StepBias) }

// SetStepBias sets the sweep step DC bias in volts, 0.01 to 35.
func (a *Analyzer) SetStepBias(v float64) error { return a.Set(StepBias, v) }
