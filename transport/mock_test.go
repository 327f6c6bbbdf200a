// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"github.com/stretchr/testify/mock"
)

type mockOpener struct {
	mock.Mock
}

func (m *mockOpener) Open(port string, addr int, clear bool) (controller, error) {
	a := m.Called(port, addr, clear)
	c, _ := a.Get(0).(controller)
	return c, a.Error(1)
}

type mockController struct {
	mock.Mock
}

func (m *mockController) Command(cmd string) error {
	a := m.Called(cmd)
	return a.Error(0)
}

func (m *mockController) Query(cmd string) (string, error) {
	a := m.Called(cmd)
	return a.String(0), a.Error(1)
}

func (m *mockController) Close() error {
	a := m.Called()
	return a.Error(0)
}

func useOpener(o opener) Option {
	return &openerOption{o: o}
}

type openerOption struct {
	o opener
}

func (o openerOption) apply(p *Prologix) {
	p.opener = o.o
}
