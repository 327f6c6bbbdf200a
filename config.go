// SPDX-FileCopyrightText: 2026 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"time"

	"github.com/goschtalt/casemapper"
	"github.com/goschtalt/goschtalt"
	_ "github.com/goschtalt/yaml-decoder"
	_ "github.com/goschtalt/yaml-encoder"
	"github.com/schmidtw/hp4192a/httpserver"
	"github.com/schmidtw/hp4192a/simulator"
	"github.com/schmidtw/hp4192a/sweep"
	"github.com/schmidtw/hp4192a/transport"
	"github.com/xmidt-org/sallust"
)

const applicationName = "hp4192a"

// Config is the whole application configuration.  Keys are stored as
// two_words in the files.
type Config struct {
	Logging    sallust.Config
	Instrument transport.Config
	Simulator  simulator.Config
	Metrics    Metrics
	Servers    Servers
	Sweep      sweep.Config
}

type Metrics struct {
	Namespace string
}

type Servers struct {
	HTTP httpserver.Config
}

var defaultConfig = Config{
	Logging: sallust.Config{
		Level:            "warn",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	},
	Instrument: transport.Config{
		SerialPort: "/dev/ttyUSB0",
		Address:    17,
	},
	Metrics: Metrics{
		Namespace: applicationName,
	},
	Servers: Servers{
		HTTP: httpserver.Config{
			Address:           ":4192",
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       time.Minute,
		},
	},
	Sweep: sweep.Config{
		Start:    1000,
		Stop:     10000,
		Step:     1000,
		Settle:   100 * time.Millisecond,
		Quantity: sweep.Impedance,
	},
}

func provideGoschtalt(cli *CLI) (*goschtalt.Config, error) {
	return goschtalt.New(
		goschtalt.AddFiles(os.DirFS("/"), absolute(cli.Files)...),
		goschtalt.AddValue("built-in", goschtalt.Root, defaultConfig, goschtalt.AsDefault()),
		goschtalt.DefaultUnmarshalOptions(casemapper.ConfigStoredAs("two_words")),
		goschtalt.DefaultValueOptions(casemapper.ConfigStoredAs("two_words")),
		goschtalt.AutoCompile(),
	)
}

func provideConfig(g *goschtalt.Config) (Config, error) {
	return goschtalt.Unmarshal[Config](g, goschtalt.Root)
}
