// sim/environment.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"

	"github.com/tarmac-sim/tarmac/rand"
	"github.com/tarmac-sim/tarmac/wx"
)

// updateEnvironment advances snow accumulation and clearing, expires
// the emergency runway block, and rolls the per-tick emergency lottery.
func (s *Sim) updateEnvironment() {
	s.updateSnow()
	s.expireRunwayBlock()
	s.rollEmergency()
}

func (s *Sim) updateSnow() {
	state := s.State
	now := state.SimTime

	if state.Weather.Condition == wx.Snowy && state.SnowplowClearingUntil.IsZero() {
		state.RunwaySnowDepth = min(MaxSnowDepth+1, state.RunwaySnowDepth+SnowAccumulationRate)
		if state.RunwaySnowDepth >= MaxSnowDepth && !state.RunwayBlocked && state.RunwayBlockedUntil.IsZero() {
			state.RunwayBlocked = true
			s.postNotification(SeverityError,
				"Runway closed due to heavy snow! Dispatch snowplows to clear it.")
			s.eventStream.Post(Event{Type: RunwayClosedEvent, Severity: SeverityError,
				Message: "runway closed: snow", SimTime: now})
		}
	}

	// A dispatched plow works through the cycle; the runway stays
	// closed until the cycle completes with the snow fully cleared.
	if !state.SnowplowClearingUntil.IsZero() {
		state.RunwaySnowDepth = max(0, state.RunwaySnowDepth-SnowClearingRate)
		if !now.Before(state.SnowplowClearingUntil) {
			state.SnowplowClearingUntil = zeroTime
			state.RunwaySnowDepth = 0
			if state.RunwayBlocked && state.RunwayBlockedUntil.IsZero() {
				state.RunwayBlocked = false
			}
			for _, v := range state.Vehicles {
				if v.Type == VehicleSnowplow && v.Busy {
					v.release()
					break
				}
			}
			s.postNotification(SeveritySuccess, "Runway has been cleared of snow.")
			s.eventStream.Post(Event{Type: RunwayReopenedEvent, Severity: SeveritySuccess,
				Message: "runway reopened: snow cleared", SimTime: now})
		}
	}
}

// expireRunwayBlock lifts the emergency closure window and releases the
// responding vehicles.
func (s *Sim) expireRunwayBlock() {
	state := s.State
	if state.RunwayBlockedUntil.IsZero() || state.SimTime.Before(state.RunwayBlockedUntil) {
		return
	}
	state.RunwayBlocked = false
	state.RunwayBlockedUntil = zeroTime
	for _, v := range state.Vehicles {
		if (v.Type == VehicleAmbulance || v.Type == VehicleFireTruck) && v.Busy {
			v.release()
		}
	}
	s.eventStream.Post(Event{Type: RunwayReopenedEvent, Severity: SeverityInfo,
		Message: "runway reopened: emergency cleared", SimTime: state.SimTime})
}

func (s *Sim) rollEmergency() {
	state := s.State
	if s.Rand.Float64() >= EmergencyProbability {
		return
	}
	idx := rand.SampleFiltered(s.Rand, state.Flights, func(f *Flight) bool {
		return f.Status == FlightInAir && f.Direction == DirectionArrival && !f.IsCargo
	})
	if idx == -1 {
		return
	}
	s.triggerEmergency(state.Flights[idx].ID)
}

// triggerEmergency declares an in-air arrival an emergency. Handling
// succeeds only if an ambulance and a fire truck are both idle; they
// are claimed together and the runway closes for the response window.
// Without them the flight is lost and reputation takes a heavy hit.
func (s *Sim) triggerEmergency(id FlightID) error {
	state := s.State
	f := state.FlightByID(id)
	if f == nil {
		return ErrNoMatchingFlight
	}
	if f.Status != FlightInAir {
		return ErrFlightNotInAir
	}

	pool := state.buildVehiclePool(s.Rand)
	if _, ok := pool.claimAll(emergencyServices, f.ID); ok {
		f.Status = FlightEmergencyLanding
		f.ArrivalTime = state.SimTime
		state.Money += EmergencyReward
		state.adjustReputation(EmergencyReputationBonus)
		state.RunwayBlocked = true
		state.RunwayBlockedUntil = state.SimTime.Add(EmergencyRunwayBlock)
		f.NextEventTime = state.RunwayBlockedUntil
		s.postNotification(SeveritySuccess,
			fmt.Sprintf("Emergency successfully handled for %s!", f.FlightNumber))
		s.eventStream.Post(Event{Type: EmergencyDeclaredEvent, Severity: SeverityWarning,
			FlightID: f.ID, Message: "emergency landing in progress", SimTime: state.SimTime})
		s.eventStream.Post(Event{Type: RunwayClosedEvent, Severity: SeverityWarning,
			Message: "runway closed: emergency response", SimTime: state.SimTime})
	} else {
		state.adjustReputation(-EmergencyReputationPenalty)
		s.postNotification(SeverityError,
			fmt.Sprintf("Failed to handle emergency for %s due to lack of vehicles! Catastrophic reputation loss.", f.FlightNumber))
		state.removeFlight(f)
	}
	return nil
}
