// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/cmplx"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/schmidtw/hp4192a/hp4192a"
	"github.com/schmidtw/hp4192a/units"
	"go.uber.org/zap"
)

var (
	errMethodNotAllowed = errors.New("method not allowed")
	errNotFound         = errors.New("not found")
	errBadRequest       = errors.New("bad request")
)

// Analyzer is the part of hp4192a.Analyzer exposed over HTTP.
type Analyzer interface {
	Get(p hp4192a.Property) (float64, error)
	Set(p hp4192a.Property, v float64) error
	Impedance() (complex128, error)
	Admittance() (complex128, error)
	BiasOff() error
}

type handler struct {
	m   sync.Mutex
	a   Analyzer
	log *zap.Logger
	mux *http.ServeMux
}

type propertyInfo struct {
	Property string  `json:"property"`
	Kind     string  `json:"kind"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

type propertyValue struct {
	Property string  `json:"property"`
	Value    float64 `json:"value"`
	Display  string  `json:"display"`
}

type setRequest struct {
	Value float64 `mapstructure:"value"`
}

type measurement struct {
	Quantity  string  `json:"quantity"`
	Real      float64 `json:"real"`
	Imaginary float64 `json:"imaginary"`
	Magnitude float64 `json:"magnitude"`
	Phase     float64 `json:"phase"`
}

type errorBody struct {
	Error string `json:"error"`
}

// NewHandler returns the HTTP control surface for a.  Requests are
// serialized since the analyzer handles one exchange at a time.
func NewHandler(a Analyzer, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	h := handler{
		a:   a,
		log: log,
		mux: http.NewServeMux(),
	}

	h.mux.HandleFunc("/properties", h.properties)
	h.mux.HandleFunc("/properties/", h.property)
	h.mux.HandleFunc("/measurements/", h.measure)
	h.mux.HandleFunc("/bias/off", h.biasOff)

	return &h
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *handler) properties(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.fail(w, errMethodNotAllowed)
		return
	}

	list := make([]propertyInfo, 0, len(hp4192a.Properties()))
	for _, p := range hp4192a.Properties() {
		spec, _ := hp4192a.Lookup(p)
		list = append(list, propertyInfo{
			Property: string(p),
			Kind:     spec.Kind.String(),
			Min:      spec.Min,
			Max:      spec.Max,
		})
	}
	h.reply(w, http.StatusOK, list)
}

func (h *handler) property(w http.ResponseWriter, r *http.Request) {
	p, err := hp4192a.ParseProperty(strings.TrimPrefix(r.URL.Path, "/properties/"))
	if err != nil {
		h.fail(w, err)
		return
	}
	spec, _ := hp4192a.Lookup(p)

	switch r.Method {
	case http.MethodGet:
	case http.MethodPut:
		v, err := decodeValue(r, spec.Kind)
		if err != nil {
			h.fail(w, err)
			return
		}

		h.m.Lock()
		err = h.a.Set(p, v)
		h.m.Unlock()
		if err != nil {
			h.fail(w, err)
			return
		}
	default:
		h.fail(w, errMethodNotAllowed)
		return
	}

	h.m.Lock()
	v, err := h.a.Get(p)
	h.m.Unlock()
	if err != nil {
		h.fail(w, err)
		return
	}

	h.reply(w, http.StatusOK, propertyValue{
		Property: string(p),
		Value:    v,
		Display:  units.FormatValue(spec.Kind, v),
	})
}

func (h *handler) measure(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.fail(w, errMethodNotAllowed)
		return
	}

	quantity := strings.TrimPrefix(r.URL.Path, "/measurements/")

	var fn func() (complex128, error)
	switch quantity {
	case "impedance":
		fn = h.a.Impedance
	case "admittance":
		fn = h.a.Admittance
	default:
		h.fail(w, fmt.Errorf("%w: '%s'", errNotFound, quantity))
		return
	}

	h.m.Lock()
	z, err := fn()
	h.m.Unlock()
	if err != nil {
		h.fail(w, err)
		return
	}

	h.reply(w, http.StatusOK, measurement{
		Quantity:  quantity,
		Real:      real(z),
		Imaginary: imag(z),
		Magnitude: cmplx.Abs(z),
		Phase:     cmplx.Phase(z),
	})
}

func (h *handler) biasOff(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.fail(w, errMethodNotAllowed)
		return
	}

	h.m.Lock()
	err := h.a.BiasOff()
	h.m.Unlock()
	if err != nil {
		h.fail(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeValue accepts {"value": 1500} as well as {"value": "1.5kHz"}.
func decodeValue(r *http.Request, kind hp4192a.Kind) (float64, error) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return 0, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if _, ok := raw["value"]; !ok {
		return 0, fmt.Errorf("%w: missing value", errBadRequest)
	}

	var req setRequest
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: unitHook(kind),
		Result:     &req,
	})
	if err != nil {
		return 0, err
	}

	if err := dec.Decode(raw); err != nil {
		return 0, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return req.Value, nil
}

func unitHook(kind hp4192a.Kind) mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Float64 {
			return data, nil
		}
		return units.ParseValue(kind, data.(string))
	}
}

func (h *handler) reply(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Warn("unable to write response", zap.Error(err))
	}
}

func (h *handler) fail(w http.ResponseWriter, err error) {
	code := statusCode(err)
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
	}
	h.reply(w, code, errorBody{Error: err.Error()})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, errMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, errNotFound), errors.Is(err, hp4192a.ErrUnknownProperty):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest), errors.Is(err, hp4192a.ErrRange), errors.Is(err, units.ErrInvalidUnit):
		return http.StatusBadRequest
	case errors.Is(err, hp4192a.ErrTransport):
		return http.StatusServiceUnavailable
	case errors.Is(err, hp4192a.ErrProtocol):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
