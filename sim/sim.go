// sim/sim.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"log/slog"
	"time"

	"github.com/brunoga/deep"
	"github.com/tarmac-sim/tarmac/log"
	"github.com/tarmac-sim/tarmac/rand"
	"github.com/tarmac-sim/tarmac/util"
	"github.com/tarmac-sim/tarmac/wx"
)

var zeroTime time.Time

// Sim is the authoritative simulation. All mutation happens while mu
// is held: the periodic Update call and every command method lock it,
// so the world only ever changes under one goroutine at a time.
type Sim struct {
	State *State

	mu util.LoggingMutex

	Rand *rand.Rand
	lg   *log.Logger

	eventStream *EventStream

	// Sim seconds advanced per wall-clock second.
	SimRate    float32
	Paused     bool
	lastUpdate time.Time
	updateOnce bool
}

// NewSim starts a simulation at the given wall time. A zero seed gives
// a nondeterministic run; anything else is replayable.
func NewSim(start time.Time, seed int64, lg *log.Logger) *Sim {
	r := rand.Make()
	if seed != 0 {
		r = rand.MakeWithSeed(seed)
	}
	return &Sim{
		State:       NewState(start),
		Rand:        r,
		lg:          lg,
		eventStream: NewEventStream(lg),
		SimRate:     1,
	}
}

// NewSimFromState resumes from a restored snapshot.
func NewSimFromState(state *State, seed int64, lg *log.Logger) *Sim {
	s := NewSim(state.SimTime, seed, lg)
	s.State = state
	return s
}

func (s *Sim) Activate(lg *log.Logger) {
	s.lg = lg
	if s.eventStream == nil {
		s.eventStream = NewEventStream(lg)
	}
	if s.Rand == nil {
		s.Rand = rand.Make()
	}
	if s.SimRate == 0 {
		s.SimRate = 1
	}
}

// Update advances the simulation to catch up with wall-clock time,
// one simulated second per step. It is the only caller of Step outside
// of tests.
func (s *Sim) Update() {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	startUpdate := time.Now()
	defer func() {
		if d := time.Since(startUpdate); d > 200*time.Millisecond {
			s.lg.Warn("unexpectedly long Sim Update() call", slog.Duration("duration", d))
		}
	}()

	if !s.updateOnce {
		s.lastUpdate = time.Now()
		s.updateOnce = true
	}
	if s.Paused {
		s.lastUpdate = time.Now()
		return
	}

	elapsed := time.Since(s.lastUpdate)
	elapsed = time.Duration(s.SimRate * float32(elapsed))
	steps := int(elapsed / time.Second)
	for i := 0; i < steps; i++ {
		s.step()
	}
	// Keep the fractional remainder for the next call.
	s.lastUpdate = time.Now().Add(-(elapsed - time.Duration(steps)*time.Second))
}

// Step advances exactly n simulated seconds, for tests and fast-forward.
func (s *Sim) Step(n int) {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	for i := 0; i < n; i++ {
		s.step()
	}
}

// step is one simulated second: the phase pipeline, in a fixed order,
// ending with the flight state machine over this tick's idle pool.
func (s *Sim) step() {
	s.State.SimTime = s.State.SimTime.Add(tick)

	s.applyCalendar()
	s.generateRoutes()
	s.updatePassengerFlow()
	s.updateEnvironment()
	pool := s.State.buildVehiclePool(s.Rand)
	s.stepFlights(pool)
}

func (s *Sim) TogglePause() {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	s.Paused = !s.Paused
	s.lastUpdate = time.Now()
	s.postNotification(SeverityInfo, util.Select(s.Paused, "Simulation paused.", "Simulation resumed."))
}

func (s *Sim) SetSimRate(rate float32) {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	s.SimRate = util.Clamp(rate, 1, 20)
}

// CurrentTime returns the sim clock without blocking on a full update.
func (s *Sim) CurrentTime() time.Time {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	return s.State.SimTime
}

// Subscribe returns an event stream subscription for state-change
// fan-out to clients.
func (s *Sim) Subscribe() *EventsSubscription {
	return s.eventStream.Subscribe()
}

// CopyState returns a deep copy of the world for use outside the
// actor boundary; callers may inspect it freely without holding any
// lock.
func (s *Sim) CopyState() (*State, error) {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	return deep.Copy(s.State)
}

// UpdateWeather applies an external observation.
func (s *Sim) UpdateWeather(w wx.Weather) {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	s.State.Weather = w
	s.eventStream.Post(Event{Type: WeatherUpdatedEvent, Severity: SeverityInfo,
		Message: w.String(), SimTime: s.State.SimTime})
}

func (s *Sim) postNotification(sev Severity, msg string) {
	s.eventStream.Post(Event{
		Type:     NotificationEvent,
		Severity: sev,
		Message:  msg,
		SimTime:  s.State.SimTime,
	})
}

func (s *Sim) postFlightStatus(f *Flight) {
	s.eventStream.Post(Event{
		Type:     FlightStatusChangedEvent,
		Severity: SeverityInfo,
		FlightID: f.ID,
		Status:   f.Status,
		SimTime:  s.State.SimTime,
	})
}
