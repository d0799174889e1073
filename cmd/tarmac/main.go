// cmd/tarmac/main.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Tarmac runs an authoritative airport-operations simulation: a
// tick-driven world of flights, ground vehicles, passenger queues, and
// contracts, advanced once per simulated second. The server exposes a
// stats page and pprof over HTTP and periodically snapshots the world
// to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tarmac-sim/tarmac/log"
	"github.com/tarmac-sim/tarmac/server"
	"github.com/tarmac-sim/tarmac/sim"
	"github.com/tarmac-sim/tarmac/wx"
)

var (
	logLevel     = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir       = flag.String("logdir", "", "log file directory")
	httpPort     = flag.Int("port", 8001, "base port for the status HTTP server")
	simRate      = flag.Float64("rate", 1, "simulation seconds per wall-clock second (1-20)")
	seed         = flag.Int64("seed", 0, "random seed; 0 seeds from the clock")
	restorePath  = flag.String("restore", "", "snapshot file to resume from")
	autosavePath = flag.String("autosave", "tarmac.snap.zst", "snapshot file to write periodically (empty disables)")
	autosaveRate = flag.Duration("autosaverate", 5*time.Minute, "interval between autosaves")
)

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir)
	defer lg.CatchAndReportCrash()

	var s *sim.Sim
	if *restorePath != "" {
		state, err := sim.LoadSnapshotFile(*restorePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", *restorePath, err)
			os.Exit(1)
		}
		s = sim.NewSimFromState(state, *seed, lg)
		lg.Infof("resumed from %s at sim time %s", *restorePath, state.SimTime)
	} else {
		s = sim.NewSim(time.Now(), *seed, lg)
	}
	s.SetSimRate(float32(*simRate))

	sm := server.NewSimManager(s, server.Config{
		HTTPPort:     *httpPort,
		AutosavePath: *autosavePath,
		AutosaveRate: *autosaveRate,
		WxProvider:   wx.MakeCachingProvider(&wx.StaticProvider{Wx: wx.Make(wx.Sunny, 22)}),
	}, lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sm.Run(ctx); err != nil && ctx.Err() == nil {
		lg.Errorf("server: %v", err)
		os.Exit(1)
	}
	lg.Info("shut down cleanly")
}
