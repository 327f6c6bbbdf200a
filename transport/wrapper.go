// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"github.com/gotmc/prologix"
	"github.com/gotmc/prologix/driver/vcp"
)

type hwOpener struct{}

func (hwOpener) Open(port string, addr int, clear bool) (controller, error) {
	vp, err := vcp.NewVCP(port)
	if err != nil {
		return nil, err
	}

	gpib, err := prologix.NewController(vp, addr, clear)
	if err != nil {
		_ = vp.Close()
		return nil, err
	}

	return &hwController{port: vp, gpib: gpib}, nil
}

type hwController struct {
	port *vcp.VCP
	gpib *prologix.Controller
}

func (h *hwController) Command(cmd string) error {
	return h.gpib.Command(cmd)
}

func (h *hwController) Query(cmd string) (string, error) {
	return h.gpib.Query(cmd)
}

// Close discards anything unread and then closes the port.
func (h *hwController) Close() error {
	err := h.port.Flush()
	if e := h.port.Close(); e != nil && err == nil {
		err = e
	}
	return err
}
