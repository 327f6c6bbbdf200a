// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goschtalt/goschtalt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/schmidtw/hp4192a/api"
	"github.com/schmidtw/hp4192a/hp4192a"
	"github.com/schmidtw/hp4192a/httpserver"
	"github.com/schmidtw/hp4192a/simulator"
	"github.com/schmidtw/hp4192a/transport"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runtime is what the commands get to work with.  Only the parts a command
// needs are built.
type runtime struct {
	out      io.Writer
	done     <-chan os.Signal
	cfg      Config
	gs       *goschtalt.Config
	log      *zap.Logger
	analyzer *hp4192a.Analyzer
}

func run(args []string, out io.Writer) (err error) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name(applicationName),
		kong.Description("Control an HP 4192A LF impedance analyzer."),
		kong.UsageOnError(),
		kong.Writers(out, out),
	)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	rt := runtime{out: out}
	opts := []fx.Option{
		fx.Supply(&cli),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Provide(
			provideGoschtalt,
			provideConfig,
			provideLogger,
			provideRegistry,
			provideMetrics,
			provideTransport,
			provideAnalyzer,
		),
		fx.Populate(&rt.cfg, &rt.gs, &rt.log),
	}

	command := strings.Fields(kctx.Command())[0]
	switch command {
	case "config", "properties":
	case "serve":
		opts = append(opts,
			fx.Populate(&rt.analyzer),
			fx.Provide(
				func(c Config) httpserver.Config { return c.Servers.HTTP },
				provideRoutes,
				httpserver.New,
			),
			fx.Invoke(func(*http.Server) {}),
		)
	default:
		opts = append(opts, fx.Populate(&rt.analyzer))
	}

	app := fx.New(opts...)
	if err = app.Err(); err != nil {
		return err
	}

	ctx := context.Background()
	if err = app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if e := app.Stop(ctx); e != nil && err == nil {
			err = e
		}
	}()

	rt.done = app.Done()
	return kctx.Run(&rt)
}

func provideLogger(cfg Config) (*zap.Logger, error) {
	return cfg.Logging.Build()
}

func provideRegistry() (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(prometheus.NewGoCollector()); err != nil {
		return nil, err
	}
	return reg, nil
}

func provideMetrics(cfg Config, reg *prometheus.Registry) (*hp4192a.Metrics, error) {
	return hp4192a.NewMetrics(reg, cfg.Metrics.Namespace)
}

func provideTransport(lc fx.Lifecycle, cli *CLI, cfg Config, log *zap.Logger) (hp4192a.Transport, error) {
	if cli.Simulate {
		log.Info("using the simulator")
		return simulator.New(cfg.Simulator)
	}

	if cli.Port != "" {
		cfg.Instrument.SerialPort = cli.Port
	}
	if cli.Address >= 0 {
		cfg.Instrument.Address = cli.Address
	}

	p, err := transport.Open(cfg.Instrument, transport.WithLogger(log))
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return p.Close()
		},
	})
	return p, nil
}

func provideAnalyzer(t hp4192a.Transport, m *hp4192a.Metrics, log *zap.Logger) (*hp4192a.Analyzer, error) {
	return hp4192a.New(t,
		hp4192a.WithLogger(log.Named("hp4192a")),
		hp4192a.WithMetrics(m),
	)
}

type routesOut struct {
	fx.Out

	API     httpserver.Route `group:"routes"`
	Metrics httpserver.Route `group:"routes"`
}

func provideRoutes(a *hp4192a.Analyzer, reg *prometheus.Registry, log *zap.Logger) routesOut {
	return routesOut{
		API: httpserver.Route{
			Path:    "/api",
			Handler: api.NewHandler(a, log.Named("api")),
		},
		Metrics: httpserver.Route{
			Path:    "/metrics",
			Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		},
	}
}

// absolute turns the file names into paths relative to the root of the
// file system, the form os.DirFS("/") expects.
func absolute(files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		if abs, err := filepath.Abs(f); err == nil {
			f = abs
		}
		out = append(out, strings.TrimPrefix(filepath.ToSlash(f), "/"))
	}
	return out
}
