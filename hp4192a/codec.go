// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package hp4192a

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	statusWidth      = 2
	valueTagWidth    = 3
	measureTagWidth  = 4
	measurementCount = 2
)

var kilo = decimal.New(1, 3)

// frequencyBands maps the upper (exclusive) bound of each band in Hz to the
// number of kHz decimal places the instrument accepts in that band.
var frequencyBands = []struct {
	below  float64
	places int32
}{
	{below: 10_000, places: 6},
	{below: 100_000, places: 5},
	{below: 1_000_000, places: 4},
}

const highBandPlaces = 3

// FrequencyPlaces returns how many decimal places in kHz are used when
// encoding the frequency f (Hz).
func FrequencyPlaces(f float64) int32 {
	for _, band := range frequencyBands {
		if f < band.below {
			return band.places
		}
	}
	return highBandPlaces
}

// FrequencyResolution returns the smallest step in Hz the encoding of f can
// represent.
func FrequencyResolution(f float64) float64 {
	r, _ := decimal.New(1, -FrequencyPlaces(f)).Mul(kilo).Float64()
	return r
}

// EncodeFrequency converts f (Hz) into the fixed-decimal kHz string the
// instrument expects, rounded to the resolution of the band f falls in.
// NaN and infinities have no such form and come back as "NaN", "+Inf" or
// "-Inf".
func EncodeFrequency(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	places := FrequencyPlaces(f)
	khz := decimal.NewFromFloat(f).Div(kilo).Round(places)
	return khz.StringFixed(places)
}

// DecodeFrequency converts a tagged kHz response token into Hz.
func DecodeFrequency(token string) (float64, error) {
	payload, err := stripTag(token, valueTagWidth)
	if err != nil {
		return 0, err
	}

	khz, err := decimal.NewFromString(strings.TrimPrefix(payload, "+"))
	if err != nil {
		return 0, fmt.Errorf("%w: frequency '%s' %v", ErrProtocol, token, err)
	}

	f, _ := khz.Mul(kilo).Float64()
	return f, nil
}

// EncodeBias formats v (volts) as the shortest decimal that parses back to
// the same value.
func EncodeBias(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// DecodeBias converts a tagged response token into volts.
func DecodeBias(token string) (float64, error) {
	payload, err := stripTag(token, valueTagWidth)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseFloat(payload, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bias '%s' %v", ErrProtocol, token, err)
	}
	return v, nil
}

// DecodeComplex converts a two token measurement response into a complex
// number.  Token 0 is the real part and token 1 the imaginary part.
func DecodeComplex(tokens []string) (complex128, error) {
	if len(tokens) != measurementCount {
		return 0, fmt.Errorf("%w: expected %d tokens, got %d",
			ErrProtocol, measurementCount, len(tokens))
	}

	var parts [measurementCount]float64
	for i, token := range tokens {
		payload, err := stripTag(token, measureTagWidth)
		if err != nil {
			return 0, err
		}
		parts[i], err = strconv.ParseFloat(payload, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: measurement '%s' %v", ErrProtocol, token, err)
		}
	}

	return complex(parts[0], parts[1]), nil
}

// stripTag removes the status and marker characters in front of the numeric
// payload.  The status is always removed; a marker character that starts a
// number is part of the payload and ends the tag early.
func stripTag(token string, width int) (string, error) {
	if len(token) <= statusWidth {
		return "", fmt.Errorf("%w: token '%s' too short", ErrProtocol, token)
	}

	i := statusWidth
	for ; i < width && i < len(token); i++ {
		if startsNumber(token[i]) {
			break
		}
	}

	payload := strings.TrimSpace(token[i:])
	if payload == "" {
		return "", fmt.Errorf("%w: token '%s' has no value", ErrProtocol, token)
	}
	return payload, nil
}

func startsNumber(c byte) bool {
	return c == '+' || c == '-' || c == '.' || ('0' <= c && c <= '9')
}
