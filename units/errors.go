// SPDX-FileCopyrightText: 2022 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package units

import "errors"

var (
	ErrInvalidUnit = errors.New("invalid unit")
	ErrInvalidKind = errors.New("invalid kind")
)
