// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/xmidt-org/arrange/arrangetls"
	"github.com/xmidt-org/httpaux"
	serveraux "github.com/xmidt-org/httpaux/server"
)

var (
	ErrNoRoutes     = errors.New("no routes")
	ErrInvalidRoute = errors.New("invalid route")
)

type Config struct {
	// Address corresponds to http.Server.Addr
	Address string

	// Path is the prefix every route is mounted below.
	Path string

	// ReadTimeout corresponds to http.Server.ReadTimeout
	ReadTimeout time.Duration

	// ReadHeaderTimeout corresponds to http.Server.ReadHeaderTimeout
	ReadHeaderTimeout time.Duration

	// WriteTime corresponds to http.Server.WriteTimeout
	WriteTimeout time.Duration

	// IdleTimeout corresponds to http.Server.IdleTimeout
	IdleTimeout time.Duration

	// MaxHeaderBytes corresponds to http.Server.MaxHeaderBytes
	MaxHeaderBytes int

	// KeepAlive corresponds to net.ListenConfig.KeepAlive.  This value is
	// only used for listeners created via Listen.
	KeepAlive time.Duration

	// Header supplies HTTP headers to emit on every response from this server
	Headers http.Header

	// TLS is the optional unmarshaled TLS configuration.  If set, the resulting
	// server will use HTTPS.
	TLS *arrangetls.Config
}

// Route mounts Handler below Path.  The handler sees the request path with
// the mount point removed.
type Route struct {
	Path    string
	Handler http.Handler
}

func (c Config) Server(routes ...Route) (server *http.Server, err error) {
	if len(routes) == 0 {
		return nil, ErrNoRoutes
	}

	base := "/"
	if len(c.Path) > 0 {
		base = c.Path
	}

	// This bit converts the headers into the httpaux.Header list then decorates
	// the outgoing headers via a chained http.Handler
	headers := httpaux.NewHeader(c.Headers)
	decorate := serveraux.Header(headers.SetTo)

	mux := http.NewServeMux()
	seen := make(map[string]bool, len(routes))
	for _, r := range routes {
		mount := path.Join("/", base, r.Path)
		if seen[mount] || r.Handler == nil {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidRoute, mount)
		}
		seen[mount] = true

		h := decorate(r.Handler)
		if mount == "/" {
			mux.Handle(mount, h)
			continue
		}

		h = http.StripPrefix(mount, h)
		mux.Handle(mount, h)
		mux.Handle(mount+"/", h)
	}

	server = &http.Server{
		Addr:              c.Address,
		Handler:           mux,
		ReadTimeout:       c.ReadTimeout,
		ReadHeaderTimeout: c.ReadHeaderTimeout,
		WriteTimeout:      c.WriteTimeout,
		IdleTimeout:       c.IdleTimeout,
		MaxHeaderBytes:    c.MaxHeaderBytes,
	}

	server.TLSConfig, err = c.TLS.New()

	return
}
