// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package httpserver

import (
	"context"
	"net"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// In gathers everything New needs.  Routes are collected from every
// provider that adds to the "routes" value group.
type In struct {
	fx.In

	LC     fx.Lifecycle
	Config Config
	Routes []Route `group:"routes"`
	Log    *zap.Logger
}

func New(in In) (*http.Server, error) {
	srv, err := in.Config.Server(in.Routes...)
	if err != nil {
		return nil, err
	}
	log := in.Log
	in.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			lc := net.ListenConfig{
				KeepAlive: in.Config.KeepAlive,
			}
			ln, err := lc.Listen(ctx, "tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
			if srv.TLSConfig != nil {
				go srv.ServeTLS(ln, "", "")
			} else {
				go srv.Serve(ln)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server", zap.String("addr", srv.Addr))
			return srv.Shutdown(ctx)
		},
	})
	return srv, nil
}
