// sim/routes_test.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"testing"
	"time"
)

func testRoute(days ...time.Weekday) *ActiveRoute {
	return &ActiveRoute{
		RouteProposal: RouteProposal{
			ID:          "RTEST",
			AirlineID:   "wizzair",
			RemoteCity:  "Warsaw",
			PlaneModel:  "A320-200",
			PlaneSize:   PlaneMedium,
			Popularity:  60,
			ContractID:  "c1",
			DaysOfWeek:  days,
			ArrivalHour: 14,
		},
	}
}

func allWeekdays() []time.Weekday {
	return []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday}
}

func TestFlightsFromRouteLookahead(t *testing.T) {
	s := newTestSim(t)
	route := testRoute(allWeekdays()...)

	flights := s.flightsFromRoute(route)

	// 14:00 is after the noon start, so today's arrival is included
	// along with the six following days.
	if len(flights) != RouteLookaheadDays {
		t.Fatalf("%d flights, want %d", len(flights), RouteLookaheadDays)
	}
	for i, f := range flights {
		if f.ArrivalTime.Hour() != 14 {
			t.Errorf("flight %d arrives at %v, want 14:00", i, f.ArrivalTime)
		}
		if f.ArrivalTime.Before(s.State.SimTime) {
			t.Errorf("flight %d arrival %v is in the past", i, f.ArrivalTime)
		}
		if f.Status != FlightScheduled {
			t.Errorf("flight %d status %s, want Scheduled", i, f.Status)
		}
		if f.Origin != "Warsaw" || f.Destination != HomeAirport {
			t.Errorf("flight %d endpoints %s->%s", i, f.Origin, f.Destination)
		}
	}
}

func TestMakeProposal(t *testing.T) {
	s := newTestSim(t)
	if err := s.SignContract("c1"); err != nil {
		t.Fatal(err)
	}
	contract := s.State.ActiveContracts[0]
	airline := Airlines[contract.AirlineID]
	s.State.ActiveRoutes = append(s.State.ActiveRoutes, testRoute(allWeekdays()...))

	for i := 0; i < 32; i++ {
		p := s.makeProposal(airline, contract)
		if p.ArrivalMin%15 != 0 {
			t.Errorf("arrival minute %d not on a quarter hour", p.ArrivalMin)
		}
		found := false
		for _, c := range Cities {
			found = found || c == p.RemoteCity
		}
		if !found {
			t.Errorf("remote city %q not in the catalog", p.RemoteCity)
		}
		if n := len(p.DaysOfWeek); n < 1 || n > 4 {
			t.Errorf("%d weekdays in schedule", n)
		}
	}
	if !s.State.servesCity("Warsaw") || s.State.servesCity("nowhere") {
		t.Error("servesCity does not reflect active routes")
	}
}

// Calendar days are bounded by local midnight, not UTC midnight, so a
// sim clock in a non-UTC zone still schedules arrivals at the route's
// local hour.
func TestFlightsFromRouteLocalDayBoundary(t *testing.T) {
	loc := time.FixedZone("UTC+1", 3600)
	s := NewSim(time.Date(2025, time.March, 15, 12, 0, 0, 0, loc), 1, nil)
	route := testRoute(allWeekdays()...)

	flights := s.flightsFromRoute(route)

	if len(flights) != RouteLookaheadDays {
		t.Fatalf("%d flights, want %d", len(flights), RouteLookaheadDays)
	}
	for i, f := range flights {
		if h, m, _ := f.ArrivalTime.Clock(); h != 14 || m != 0 {
			t.Errorf("flight %d arrives at %v, want 14:00 local", i, f.ArrivalTime)
		}
	}
}

func TestFlightsFromRouteSkipsPastArrival(t *testing.T) {
	s := newTestSim(t)
	route := testRoute(allWeekdays()...)
	route.ArrivalHour = 6 // before the noon start

	flights := s.flightsFromRoute(route)
	if len(flights) != RouteLookaheadDays-1 {
		t.Fatalf("%d flights, want %d (today's 06:00 already past)",
			len(flights), RouteLookaheadDays-1)
	}
}

func TestFlightsFromRouteHonorsWeekdays(t *testing.T) {
	s := newTestSim(t)
	// The test clock starts on a Saturday.
	route := testRoute(time.Monday, time.Thursday)

	flights := s.flightsFromRoute(route)
	if len(flights) != 2 {
		t.Fatalf("%d flights, want 2", len(flights))
	}
	for _, f := range flights {
		wd := f.ArrivalTime.Weekday()
		if wd != time.Monday && wd != time.Thursday {
			t.Errorf("flight %s on %v", f.ID, wd)
		}
	}
}

func TestRouteGenerationIdempotent(t *testing.T) {
	s := newTestSim(t)
	route := testRoute(allWeekdays()...)
	s.State.ActiveRoutes = append(s.State.ActiveRoutes, route)

	s.Step(1)
	n := len(s.State.Flights)
	if n != RouteLookaheadDays {
		t.Fatalf("%d flights after first generation, want %d", n, RouteLookaheadDays)
	}

	// Force a regeneration pass well before the window rolls over: only
	// the ids not yet present may be created, which is none.
	route.LastGenerated = s.State.SimTime.Add(-RouteRegenInterval - time.Hour)
	s.Step(1)
	if len(s.State.Flights) != n {
		t.Errorf("%d flights after regeneration, want still %d", len(s.State.Flights), n)
	}
}

func TestRouteFlightIDKey(t *testing.T) {
	day := time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC)
	if id := routeFlightID("RTEST", day); id != "F-RTEST-20250316" {
		t.Errorf("id %q", id)
	}
}

func TestAcceptRouteProposal(t *testing.T) {
	s := newTestSim(t)
	p := &testRoute(allWeekdays()...).RouteProposal
	s.State.RouteProposals = append(s.State.RouteProposals, p)

	if err := s.AcceptRouteProposal(p.ID); err != nil {
		t.Fatalf("AcceptRouteProposal: %v", err)
	}
	if len(s.State.RouteProposals) != 0 {
		t.Error("proposal not consumed")
	}
	if len(s.State.ActiveRoutes) != 1 {
		t.Fatal("route not activated")
	}
	if len(s.State.Flights) == 0 {
		t.Error("no flights generated on acceptance")
	}
	if err := s.AcceptRouteProposal(p.ID); err != ErrNoMatchingProposal {
		t.Errorf("second accept: got %v", err)
	}
}

func TestRejectRouteProposal(t *testing.T) {
	s := newTestSim(t)
	p := &testRoute(allWeekdays()...).RouteProposal
	s.State.RouteProposals = append(s.State.RouteProposals, p)

	if err := s.RejectRouteProposal(p.ID); err != nil {
		t.Fatalf("RejectRouteProposal: %v", err)
	}
	if len(s.State.RouteProposals) != 0 {
		t.Error("proposal not consumed")
	}
	if want := float32(InitialReputation - RejectedProposalReputation); s.State.Reputation != want {
		t.Errorf("reputation %v, want %v", s.State.Reputation, want)
	}
	if err := s.RejectRouteProposal(p.ID); err != ErrNoMatchingProposal {
		t.Errorf("second reject: got %v", err)
	}
}
