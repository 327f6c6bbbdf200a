// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNotOpen          = errors.New("not open")
)

const maxGPIBAddress = 30

// Config provides the GPIB link configuration options.
type Config struct {
	// SerialPort is the virtual COM port of the Prologix GPIB-USB controller.
	SerialPort string `yaml:"serial_port"`

	// Address is the GPIB address of the analyzer, 0 to 30.
	Address int `yaml:"address"`

	// Clear sends a selected device clear when the link is opened.
	Clear bool `yaml:"clear"`
}

type Option interface {
	apply(p *Prologix)
}

// Prologix is a link to an instrument through a Prologix GPIB-USB
// controller.
type Prologix struct {
	m      sync.Mutex
	cfg    Config
	opener opener
	c      controller
	log    *zap.Logger
}

type controller interface {
	Command(cmd string) error
	Query(cmd string) (string, error)
	Close() error
}

type opener interface {
	Open(port string, addr int, clear bool) (controller, error)
}

// Open connects to the controller and addresses the instrument.
func Open(cfg Config, opts ...Option) (*Prologix, error) {
	if cfg.SerialPort == "" || cfg.Address < 0 || cfg.Address > maxGPIBAddress {
		return nil, ErrInvalidParameter
	}

	p := Prologix{
		cfg:    cfg,
		opener: &hwOpener{},
		log:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt.apply(&p)
	}

	c, err := p.opener.Open(cfg.SerialPort, cfg.Address, cfg.Clear)
	if err != nil {
		return nil, err
	}
	p.c = c

	p.log.Info("GPIB link open",
		zap.String("port", cfg.SerialPort),
		zap.Int("address", cfg.Address))

	return &p, nil
}

// Write sends cmd to the instrument.
func (p *Prologix) Write(cmd string) error {
	p.m.Lock()
	defer p.m.Unlock()

	if p.c == nil {
		return ErrNotOpen
	}

	return p.c.Command(cmd)
}

// Query sends cmd and returns the comma separated tokens of the response.
func (p *Prologix) Query(cmd string) ([]string, error) {
	p.m.Lock()
	defer p.m.Unlock()

	if p.c == nil {
		return nil, ErrNotOpen
	}

	resp, err := p.c.Query(cmd)
	// The controller reports EOF along with a complete line.
	if err != nil && !(errors.Is(err, io.EOF) && resp != "") {
		return nil, fmt.Errorf("query '%s': %w", cmd, err)
	}

	return SplitTokens(resp), nil
}

// Close releases the serial port.  Closing twice is not an error.
func (p *Prologix) Close() error {
	p.m.Lock()
	defer p.m.Unlock()

	if p.c == nil {
		return nil
	}

	err := p.c.Close()
	p.c = nil

	p.log.Info("GPIB link closed", zap.String("port", p.cfg.SerialPort))
	return err
}

// SplitTokens splits a response line on commas, trimming the space around
// each token and dropping empty ones.
func SplitTokens(resp string) []string {
	parts := strings.Split(resp, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// WithLogger sets the logger used.
func WithLogger(l *zap.Logger) Option {
	return &loggerOption{log: l}
}

type loggerOption struct {
	log *zap.Logger
}

func (o loggerOption) apply(p *Prologix) {
	if o.log != nil {
		p.log = o.log
	}
}
