// sim/routes.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"time"

	"github.com/tarmac-sim/tarmac/rand"
	"github.com/tarmac-sim/tarmac/util"
)

// RouteProposal is an airline's offer of a recurring schedule, pending
// acceptance. Accepting converts it verbatim into an ActiveRoute.
type RouteProposal struct {
	ID          RouteID
	AirlineID   AirlineID
	RemoteCity  string
	PlaneModel  string
	PlaneSize   PlaneSize
	IsCargo     bool
	Popularity  int
	ContractID  ContractID
	DaysOfWeek  []time.Weekday
	ArrivalHour int
	ArrivalMin  int
	// Hours the aircraft spends on the ground, for display.
	TurnaroundHours int
}

// ActiveRoute is an accepted proposal plus the generation watermark
// that keeps recurring flight creation idempotent.
type ActiveRoute struct {
	RouteProposal
	LastGenerated time.Time
}

// routeFlightID is the idempotence key for generated flights: one per
// route per calendar day.
func routeFlightID(route RouteID, day time.Time) FlightID {
	return FlightID(fmt.Sprintf("F-%s-%s", route, day.Format("20060102")))
}

func randomFlightNumber(r *rand.Rand, airline AirlineID) string {
	prefix := string(airline)
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return fmt.Sprintf("%s%d", toUpper(prefix), 100+r.Intn(900))
}

func toUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// generateRoutes runs the proposal lottery for each airline contract
// and materializes flights for every active route whose watermark has
// gone stale.
func (s *Sim) generateRoutes() {
	s.generateProposals()

	state := s.State
	for _, route := range state.ActiveRoutes {
		if state.SimTime.Sub(route.LastGenerated) <= RouteRegenInterval {
			continue
		}
		generated := s.flightsFromRoute(route)
		state.Flights = append(state.Flights, generated...)
		route.LastGenerated = state.SimTime
	}
}

// flightsFromRoute creates the concrete arrivals for the lookahead
// window, skipping days whose flight already exists and times already
// in the past.
func (s *Sim) flightsFromRoute(route *ActiveRoute) []*Flight {
	state := s.State
	var out []*Flight
	startDay := startOfDay(state.SimTime)

	for i := 0; i < RouteLookaheadDays; i++ {
		day := startDay.AddDate(0, 0, i)
		if !containsWeekday(route.DaysOfWeek, day.Weekday()) {
			continue
		}
		id := routeFlightID(route.ID, day)
		if state.FlightByID(id) != nil {
			continue
		}
		arrival := day.Add(time.Duration(route.ArrivalHour)*time.Hour +
			time.Duration(route.ArrivalMin)*time.Minute)
		if arrival.Before(state.SimTime) {
			continue
		}
		out = append(out, &Flight{
			ID:           id,
			FlightNumber: randomFlightNumber(s.Rand, route.AirlineID),
			Direction:    DirectionArrival,
			AirlineID:    route.AirlineID,
			Origin:       route.RemoteCity,
			Destination:  HomeAirport,
			ArrivalTime:  arrival,
			Status:       FlightScheduled,
			PlaneModel:   route.PlaneModel,
			PlaneSize:    route.PlaneSize,
			IsCargo:      route.IsCargo,
			Popularity:   route.Popularity,
			ContractID:   route.ContractID,
			Passengers:   rollPassengers(s.Rand, route.PlaneSize, route.IsCargo),
		})
	}
	return out
}

func containsWeekday(days []time.Weekday, d time.Weekday) bool {
	for _, wd := range days {
		if wd == d {
			return true
		}
	}
	return false
}

// generateProposals rolls, per airline contract without a pending
// proposal or active route, a chance of a new offer scaled by the
// contract's satisfaction.
func (s *Sim) generateProposals() {
	state := s.State
	for _, contract := range state.contractsOfType(ContractAirline) {
		airline := Airlines[contract.AirlineID]
		if airline == nil || !state.hasAirline(contract.AirlineID) {
			continue
		}
		if s.hasProposalOrRoute(contract.ID) {
			continue
		}
		prob := ProposalProbability * float32(contract.Satisfaction) / 50
		if s.Rand.Float32() >= prob {
			continue
		}

		p := s.makeProposal(airline, contract)
		state.RouteProposals = append(state.RouteProposals, p)
		s.postNotification(SeverityInfo,
			fmt.Sprintf("New route proposal from %s.", airline.Name))
		s.eventStream.Post(Event{
			Type:     RouteProposalOfferedEvent,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("%s proposes a route to %s.", airline.Name, p.RemoteCity),
			SimTime:  state.SimTime,
		})
	}
}

func (s *Sim) hasProposalOrRoute(contract ContractID) bool {
	for _, p := range s.State.RouteProposals {
		if p.ContractID == contract {
			return true
		}
	}
	for _, r := range s.State.ActiveRoutes {
		if r.ContractID == contract {
			return true
		}
	}
	return false
}

func (s *State) servesCity(city string) bool {
	for _, r := range s.ActiveRoutes {
		if r.RemoteCity == city {
			return true
		}
	}
	return false
}

func (s *Sim) makeProposal(airline *Airline, contract *ActiveContract) *RouteProposal {
	r := s.Rand
	plane := rand.SampleSlice(r, airline.Fleet)
	numDays := 2 + r.Intn(3)
	seen := make(map[time.Weekday]interface{})
	for i := 0; i < numDays; i++ {
		seen[time.Weekday(r.Intn(7))] = nil
	}
	days := util.SortedMapKeys(seen)

	// Unserved destinations are three times as likely to be proposed.
	city := Cities[rand.SampleWeighted(r, Cities, func(c string) int {
		return util.Select(s.State.servesCity(c), 1, 3)
	})]

	return &RouteProposal{
		ID:              RouteID(fmt.Sprintf("R%d%06x", s.State.SimTime.Unix(), r.Uint32()&0xffffff)),
		AirlineID:       airline.ID,
		RemoteCity:      city,
		PlaneModel:      plane.Model,
		PlaneSize:       plane.Size,
		IsCargo:         airline.CargoOnly,
		Popularity:      30 + r.Intn(40) + int(s.State.Reputation/4),
		ContractID:      contract.ID,
		DaysOfWeek:      days,
		ArrivalHour:     r.Intn(24),
		ArrivalMin:      rand.Sample(r, 0, 15, 30, 45),
		TurnaroundHours: 2 + r.Intn(2),
	}
}

// inauguralFlight schedules the first arrival for a freshly signed
// airline contract, landing within the next 5-20 minutes at a high
// load factor.
func (s *Sim) inauguralFlight(airline *Airline, contract ContractID) *Flight {
	r := s.Rand
	plane := rand.SampleSlice(r, airline.Fleet)
	passengers := 0
	if !airline.CargoOnly {
		passengers = int(float32(passengersPerPlane[plane.Size]) * (0.9 + 0.1*r.Float32()))
	}
	s.State.NextFlightSeq++
	return &Flight{
		ID:           FlightID(fmt.Sprintf("F%d-inaugural", s.State.NextFlightSeq)),
		FlightNumber: randomFlightNumber(r, airline.ID),
		Direction:    DirectionArrival,
		AirlineID:    airline.ID,
		Origin:       rand.SampleSlice(r, Cities),
		Destination:  HomeAirport,
		ArrivalTime:  s.State.SimTime.Add(time.Duration(5+r.Intn(16)) * time.Minute),
		Status:       FlightScheduled,
		PlaneModel:   plane.Model,
		PlaneSize:    plane.Size,
		IsCargo:      airline.CargoOnly,
		Popularity:   80 + r.Intn(20),
		ContractID:   contract,
		Passengers:   passengers,
	}
}
