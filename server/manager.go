// server/manager.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/tarmac-sim/tarmac/log"
	"github.com/tarmac-sim/tarmac/sim"
	"github.com/tarmac-sim/tarmac/util"
	"github.com/tarmac-sim/tarmac/wx"

	"golang.org/x/sync/errgroup"
)

// SimManager owns the authoritative Sim: it is the single component
// that drives Update() and the only holder of a mutable reference.
// Everything else goes through the Dispatcher's command methods or
// reads deep-copied state.
type SimManager struct {
	sim        *sim.Sim
	wxProvider wx.Provider
	lg         *log.Logger

	mu        util.LoggingMutex
	startTime time.Time

	httpPort     int
	autosavePath string
	autosaveRate time.Duration
}

type Config struct {
	HTTPPort     int
	AutosavePath string
	// Zero disables autosave.
	AutosaveRate time.Duration
	WxProvider   wx.Provider
}

func NewSimManager(s *sim.Sim, config Config, lg *log.Logger) *SimManager {
	return &SimManager{
		sim:          s,
		wxProvider:   config.WxProvider,
		lg:           lg,
		startTime:    time.Now(),
		httpPort:     config.HTTPPort,
		autosavePath: config.AutosavePath,
		autosaveRate: config.AutosaveRate,
	}
}

func (sm *SimManager) Sim() *sim.Sim { return sm.sim }

// Dispatcher returns the command surface handed to transports.
func (sm *SimManager) Dispatcher() *Dispatcher {
	return &Dispatcher{sm: sm}
}

// Run drives the simulation until the context is cancelled: the update
// loop, hourly weather observations, periodic autosaves, and the stats
// HTTP server. A final snapshot is written on the way out.
func (sm *SimManager) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return sm.runUpdateLoop(ctx) })
	eg.Go(func() error { return sm.runWeatherLoop(ctx) })
	if sm.autosavePath != "" && sm.autosaveRate > 0 {
		eg.Go(func() error { return sm.runAutosaveLoop(ctx) })
	}
	sm.launchHTTPServer()

	err := eg.Wait()
	if sm.autosavePath != "" {
		if serr := sm.saveSnapshot(); serr != nil {
			sm.lg.Errorf("final snapshot: %v", serr)
		}
	}
	return err
}

func (sm *SimManager) runUpdateLoop(ctx context.Context) error {
	defer sm.lg.CatchAndReportCrash()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			sm.sim.Update()
		}
	}
}

// runWeatherLoop feeds hourly observations from the weather provider
// into the sim, matching the coarse cadence of the upstream source.
func (sm *SimManager) runWeatherLoop(ctx context.Context) error {
	defer sm.lg.CatchAndReportCrash()

	if sm.wxProvider == nil {
		return nil
	}
	apply := func() {
		w, err := sm.wxProvider.Observation(sm.sim.CurrentTime())
		if err != nil {
			sm.lg.Warnf("weather observation: %v", err)
			return
		}
		sm.sim.UpdateWeather(w)
	}
	apply()

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			apply()
		}
	}
}

func (sm *SimManager) runAutosaveLoop(ctx context.Context) error {
	defer sm.lg.CatchAndReportCrash()

	ticker := time.NewTicker(sm.autosaveRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := sm.saveSnapshot(); err != nil {
				sm.lg.Errorf("autosave: %v", err)
			}
		}
	}
}

func (sm *SimManager) saveSnapshot() error {
	sm.mu.Lock(sm.lg)
	defer sm.mu.Unlock(sm.lg)

	state, err := sm.sim.CopyState()
	if err != nil {
		return err
	}
	if err := sim.SaveSnapshotFile(sm.autosavePath, state); err != nil {
		return err
	}
	sm.lg.Info("wrote snapshot", slog.String("path", sm.autosavePath),
		slog.Time("sim_time", state.SimTime))
	return nil
}
