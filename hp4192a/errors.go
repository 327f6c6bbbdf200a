// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package hp4192a

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRange           = errors.New("value out of range")
	ErrTransport       = errors.New("transport failure")
	ErrProtocol        = errors.New("protocol error")
	ErrUnknownProperty = errors.New("unknown property")
)

// RangeError is returned when a value is outside of the bounds a property
// accepts.  Nothing is sent to the instrument when this happens.
type RangeError struct {
	Property Property
	Value    float64
	Min      float64
	Max      float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s %g not in [%g, %g]", ErrRange, e.Property, e.Value, e.Min, e.Max)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrRange
}

// TransportError wraps a failure reported by the Transport.
type TransportError struct {
	Command string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: '%s': %v", ErrTransport, e.Command, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// ProtocolError means the instrument answered with something that does not
// match the expected response shape.
type ProtocolError struct {
	Command  string
	Response []string
	Err      error
}

func (e *ProtocolError) Error() string {
	msg := fmt.Sprintf("'%s' -> [%s]: %v", e.Command, strings.Join(e.Response, ","), e.Err)
	if errors.Is(e.Err, ErrProtocol) {
		return msg
	}
	return ErrProtocol.Error() + ": " + msg
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func (e *ProtocolError) Is(target error) bool {
	return target == ErrProtocol
}
