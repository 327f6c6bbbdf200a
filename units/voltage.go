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

// ParseVoltage returns the electric potential in volts represented by s.  A
// bare number is taken as volts, otherwise an SI prefixed "V" unit is
// required, for example "-350mV".
func ParseVoltage(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n, nil
	}

	var v physic.ElectricPotential
	if err := v.Set(s); err != nil {
		return 0.0, fmt.Errorf("%w: '%s' %v", ErrInvalidUnit, s, err)
	}

	return float64(v) / float64(physic.Volt), nil
}

// FormatVoltage formats volts with the most fitting SI prefix.
func FormatVoltage(volts float64) string {
	return physic.ElectricPotential(math.Round(volts * float64(physic.Volt))).String()
}
