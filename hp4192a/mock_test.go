// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package hp4192a

import (
	"github.com/stretchr/testify/mock"
)

type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Write(cmd string) error {
	a := m.Called(cmd)
	return a.Error(0)
}

func (m *mockTransport) Query(cmd string) ([]string, error) {
	a := m.Called(cmd)
	tokens, _ := a.Get(0).([]string)
	return tokens, a.Error(1)
}
