// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package units

import (
	"fmt"

	"github.com/schmidtw/hp4192a/hp4192a"
)

// ParseValue parses s as the unit carried by kind.
func ParseValue(kind hp4192a.Kind, s string) (float64, error) {
	switch kind {
	case hp4192a.Frequency:
		return ParseFrequency(s)
	case hp4192a.Bias:
		return ParseVoltage(s)
	}
	return 0.0, fmt.Errorf("%w: %s", ErrInvalidKind, kind)
}

// FormatValue formats v in the unit carried by kind.
func FormatValue(kind hp4192a.Kind, v float64) string {
	if kind == hp4192a.Frequency {
		return FormatFrequency(v)
	}
	return FormatVoltage(v)
}
