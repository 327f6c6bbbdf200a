// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"periph.io/x/conn/v3/physic"
)

// ParseFrequency returns the frequency in Hz represented by s.  A bare number
// is taken as Hz, otherwise an SI prefixed "Hz" unit is required, for example
// "1.5kHz" or "13MHz".
func ParseFrequency(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n, nil
	}

	var f physic.Frequency
	if err := f.Set(s); err != nil {
		return 0.0, fmt.Errorf("%w: '%s' %v", ErrInvalidUnit, s, err)
	}

	return float64(f) / float64(physic.Hertz), nil
}

// FormatFrequency formats hz with the most fitting SI prefix.
func FormatFrequency(hz float64) string {
	return physic.Frequency(math.Round(hz * float64(physic.Hertz))).String()
}
