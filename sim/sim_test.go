// sim/sim_test.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"testing"
	"time"
)

var testStart = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestSim(t *testing.T) *Sim {
	t.Helper()
	return NewSim(testStart, 1, nil)
}

func addTestFlight(s *Sim, id FlightID, arrival time.Time, isCargo bool) *Flight {
	f := &Flight{
		ID:           id,
		FlightNumber: "WZ100",
		Direction:    DirectionArrival,
		AirlineID:    "wizzair",
		Origin:       "Warsaw",
		Destination:  HomeAirport,
		ArrivalTime:  arrival,
		Status:       FlightScheduled,
		PlaneModel:   "A320-200",
		PlaneSize:    PlaneMedium,
		IsCargo:      isCargo,
		Popularity:   60,
		Passengers:   150,
	}
	s.State.Flights = append(s.State.Flights, f)
	return f
}

// checkStandLinks verifies the bidirectional stand/flight invariant:
// a flight holds a stand id iff exactly one stand references it back.
func checkStandLinks(t *testing.T, state *State) {
	t.Helper()
	allStands := append(append([]*Stand{}, state.Gates...), state.CargoBays...)

	for _, f := range state.Flights {
		var refs int
		for _, st := range allStands {
			if st.FlightID == f.ID {
				refs++
				if st.ID != f.StandID {
					t.Errorf("flight %s: stand %s references it but flight holds %q",
						f.ID, st.ID, f.StandID)
				}
			}
		}
		if f.StandID == "" && refs != 0 {
			t.Errorf("flight %s holds no stand but %d stands reference it", f.ID, refs)
		}
		if f.StandID != "" && refs != 1 {
			t.Errorf("flight %s holds stand %s but %d stands reference it", f.ID, f.StandID, refs)
		}
	}
	for _, st := range allStands {
		if st.Occupied != (st.FlightID != "") {
			t.Errorf("stand %s: occupied=%v but flight id %q", st.ID, st.Occupied, st.FlightID)
		}
	}
}

// checkVehicleClaims verifies no vehicle is idle while still holding a
// flight assignment.
func checkVehicleClaims(t *testing.T, state *State) {
	t.Helper()
	for _, v := range state.Vehicles {
		if !v.Busy && v.AssignedFlight != "" {
			t.Errorf("vehicle %s idle but assigned to %s", v.ID, v.AssignedFlight)
		}
	}
}

func checkClamped(t *testing.T, state *State) {
	t.Helper()
	if state.Reputation < 0 || state.Reputation > 100 {
		t.Errorf("reputation out of range: %v", state.Reputation)
	}
	if state.PassengerSatisfaction < 0 || state.PassengerSatisfaction > 100 {
		t.Errorf("satisfaction out of range: %v", state.PassengerSatisfaction)
	}
}

func TestScheduledFlightCancelledWithoutStand(t *testing.T) {
	s := newTestSim(t)
	addTestFlight(s, "FTEST1", testStart, false)

	s.Step(1)

	if f := s.State.FlightByID("FTEST1"); f != nil {
		t.Errorf("flight still present with status %s; expected removal", f.Status)
	}
	if want := float32(InitialReputation - CancelledFlightReputation); s.State.Reputation != want {
		t.Errorf("reputation %v, want %v", s.State.Reputation, want)
	}
	checkStandLinks(t, s.State)
}

func TestScheduledFlightActivatesWithStand(t *testing.T) {
	s := newTestSim(t)
	f := addTestFlight(s, "FTEST2", testStart.Add(time.Hour), false)
	if err := s.AssignStand(f.ID, "G1"); err != nil {
		t.Fatalf("AssignStand: %v", err)
	}

	s.Step(1)

	if f.Status != FlightInAir {
		t.Errorf("status %s, want InAir", f.Status)
	}
	if !f.NextEventTime.Equal(f.ArrivalTime) {
		t.Errorf("next event %v, want arrival %v", f.NextEventTime, f.ArrivalTime)
	}
	checkStandLinks(t, s.State)
}

func TestAssignStandErrors(t *testing.T) {
	s := newTestSim(t)
	f := addTestFlight(s, "FTEST3", testStart.Add(time.Hour), false)
	cargo := addTestFlight(s, "FCARGO", testStart.Add(time.Hour), true)

	if err := s.AssignStand("nosuch", "G1"); err != ErrNoMatchingFlight {
		t.Errorf("unknown flight: got %v", err)
	}
	if err := s.AssignStand(f.ID, "G99"); err != ErrUnknownStand {
		t.Errorf("unknown stand: got %v", err)
	}
	if err := s.AssignStand(cargo.ID, "G1"); err != ErrWrongStandKind {
		t.Errorf("cargo at gate: got %v", err)
	}
	if err := s.AssignStand(f.ID, "G1"); err != nil {
		t.Fatalf("AssignStand: %v", err)
	}
	f2 := addTestFlight(s, "FTEST4", testStart.Add(time.Hour), false)
	if err := s.AssignStand(f2.ID, "G1"); err != ErrStandOccupied {
		t.Errorf("occupied stand: got %v", err)
	}
	checkStandLinks(t, s.State)
}

func TestRunwayHoldAppliesSatisfactionPenalty(t *testing.T) {
	s := newTestSim(t)
	f := addTestFlight(s, "FHOLD", testStart, false)
	f.Status = FlightInAir
	s.State.RunwayBlocked = true
	sat := s.State.PassengerSatisfaction

	s.Step(1)

	if f.Status != FlightInAir {
		t.Errorf("status %s, want InAir hold", f.Status)
	}
	if want := s.State.SimTime.Add(RunwayHoldRetryDelay); !f.NextEventTime.Equal(want) {
		t.Errorf("retry at %v, want %v", f.NextEventTime, want)
	}
	if s.State.PassengerSatisfaction >= sat {
		t.Errorf("satisfaction %v not reduced from %v", s.State.PassengerSatisfaction, sat)
	}
}

func TestTurnaroundFlipsDirection(t *testing.T) {
	s := newTestSim(t)
	f := addTestFlight(s, "FTURN", testStart.Add(-time.Hour), false)
	if err := s.State.assignStand(f, s.State.Gates[0]); err != nil {
		t.Fatal(err)
	}
	f.Status = FlightServicing
	f.Origin, f.Destination = "Warsaw", HomeAirport

	s.Step(1)

	if f.Direction != DirectionDeparture {
		t.Errorf("direction %s, want departure", f.Direction)
	}
	if f.Origin != HomeAirport || f.Destination != "Warsaw" {
		t.Errorf("endpoints %s->%s, want swap", f.Origin, f.Destination)
	}
	if f.FlightNumber != "WI101" {
		t.Errorf("flight number %s, want WI101", f.FlightNumber)
	}
	lo, hi := int(float32(passengersPerPlane[PlaneMedium])*0.8), passengersPerPlane[PlaneMedium]
	if f.Passengers < lo || f.Passengers > hi {
		t.Errorf("passengers %d outside [%d,%d]", f.Passengers, lo, hi)
	}
	if want := s.State.SimTime.Add(BoardingDuration + PushbackDuration); !f.DepartureTime.Equal(want) {
		t.Errorf("departure time %v, want %v", f.DepartureTime, want)
	}
	checkStandLinks(t, s.State)
}

func TestFullArrivalDepartureCycle(t *testing.T) {
	s := newTestSim(t)
	state := s.State

	for _, vt := range []VehicleType{VehicleFollowMe, VehicleCatering, VehicleFuel,
		VehicleBaggage, VehicleStairs, VehiclePushback} {
		state.addVehicle(vt)
	}
	f := addTestFlight(s, "FCYCLE", testStart.Add(30*time.Minute), false)
	if err := s.AssignStand(f.ID, "G1"); err != nil {
		t.Fatal(err)
	}

	startMoney := state.Money
	// Half an hour to touchdown plus under two hours on the ground.
	s.Step(3 * 3600)

	if g := state.FlightByID("FCYCLE"); g != nil {
		t.Fatalf("flight still present as %s; expected full cycle and removal", g.Status)
	}
	if state.Money <= startMoney {
		t.Errorf("money %v did not increase from %v", state.Money, startMoney)
	}
	if state.Reputation <= InitialReputation {
		t.Errorf("reputation %v did not increase", state.Reputation)
	}
	if state.Gates[0].Occupied {
		t.Error("gate still occupied after departure")
	}
	for _, v := range state.Vehicles {
		if v.Busy {
			t.Errorf("vehicle %s (%s) still busy after cycle", v.ID, v.Type)
		}
	}
	checkStandLinks(t, state)
	checkVehicleClaims(t, state)
	checkClamped(t, state)
}

func TestServiceVehicleWearAfterTurnaround(t *testing.T) {
	s := newTestSim(t)
	state := s.State
	for _, vt := range passengerServices {
		state.addVehicle(vt)
	}
	f := addTestFlight(s, "FWEAR", testStart.Add(-time.Hour), false)
	if err := state.assignStand(f, state.Gates[0]); err != nil {
		t.Fatal(err)
	}
	f.Status = FlightArrivedAtGate

	s.Step(1)
	if f.Status != FlightServicing {
		t.Fatalf("status %s, want Servicing", f.Status)
	}
	s.Step(int(ServicingDuration/time.Second) + 1)

	if f.Status != FlightReadyForDeparture && f.Status != FlightBoarding {
		t.Fatalf("status %s after servicing window", f.Status)
	}
	for _, v := range state.Vehicles {
		if v.Health != 100-VehicleHealthDegradation {
			t.Errorf("vehicle %s health %v, want %v", v.ID, v.Health, 100-VehicleHealthDegradation)
		}
		if v.Busy {
			t.Errorf("vehicle %s still busy", v.ID)
		}
	}
}

func TestResourceShortageRetries(t *testing.T) {
	s := newTestSim(t)
	f := addTestFlight(s, "FSHORT", testStart.Add(-time.Hour), false)
	f.Status = FlightLanded
	rep := s.State.Reputation

	s.Step(1)

	if f.Status != FlightLanded {
		t.Errorf("status %s, want Landed retry", f.Status)
	}
	if want := s.State.SimTime.Add(ResourceRetryDelay); !f.NextEventTime.Equal(want) {
		t.Errorf("retry at %v, want %v", f.NextEventTime, want)
	}
	if s.State.Reputation >= rep {
		t.Errorf("reputation %v not reduced", s.State.Reputation)
	}
}

func TestPoolClaimAllIsAtomic(t *testing.T) {
	s := newTestSim(t)
	state := s.State
	state.addVehicle(VehicleCatering)
	state.addVehicle(VehicleFuel)
	// No baggage cart or stairs: the claim must take nothing.
	pool := state.buildVehiclePool(s.Rand)

	if _, ok := pool.claimAll(passengerServices, "F1"); ok {
		t.Fatal("claimAll succeeded with missing types")
	}
	for _, v := range state.Vehicles {
		if v.Busy {
			t.Errorf("vehicle %s claimed by failed claimAll", v.ID)
		}
	}

	state.addVehicle(VehicleBaggage)
	state.addVehicle(VehicleStairs)
	pool = state.buildVehiclePool(s.Rand)
	claimed, ok := pool.claimAll(passengerServices, "F1")
	if !ok || len(claimed) != len(passengerServices) {
		t.Fatalf("claimAll failed with all types present")
	}
	checkVehicleClaims(t, state)
}

func TestNoVehicleDoubleClaim(t *testing.T) {
	s := newTestSim(t)
	state := s.State
	state.addVehicle(VehicleFollowMe)

	f1 := addTestFlight(s, "FA", testStart.Add(-time.Hour), false)
	f2 := addTestFlight(s, "FB", testStart.Add(-time.Hour), false)
	f1.Status = FlightLanded
	f2.Status = FlightLanded

	s.Step(1)

	var claimedBy []FlightID
	for _, v := range state.Vehicles {
		if v.Busy {
			claimedBy = append(claimedBy, v.AssignedFlight)
		}
	}
	if len(claimedBy) != 1 {
		t.Fatalf("%d busy vehicles, want 1", len(claimedBy))
	}
	taxiing := 0
	for _, f := range []*Flight{f1, f2} {
		if f.Status == FlightTaxiing {
			taxiing++
		}
	}
	if taxiing != 1 {
		t.Errorf("%d flights taxiing, want exactly 1", taxiing)
	}
}

// The idle pool is shuffled per build, so repeated claims rotate
// through same-type vehicles rather than always taking the same one.
func TestPoolSpreadsClaimsAcrossFleet(t *testing.T) {
	s := newTestSim(t)
	state := s.State
	state.addVehicle(VehicleFollowMe)
	state.addVehicle(VehicleFollowMe)

	seen := make(map[VehicleID]int)
	for i := 0; i < 64; i++ {
		pool := state.buildVehiclePool(s.Rand)
		v := pool.claim(VehicleFollowMe, "FA")
		if v == nil {
			t.Fatal("claim failed with idle vehicles present")
		}
		seen[v.ID]++
		v.release()
	}
	if len(seen) != 2 {
		t.Errorf("64 claims went to %v, want both vehicles", seen)
	}
}

func TestCopyStateIsDetached(t *testing.T) {
	s := newTestSim(t)
	addTestFlight(s, "FCOPY", testStart.Add(time.Hour), false)

	copied, err := s.CopyState()
	if err != nil {
		t.Fatal(err)
	}
	copied.Money = -1
	copied.Flights[0].Status = FlightCancelled

	if s.State.Money == -1 {
		t.Error("mutating the copy changed the sim's money")
	}
	if s.State.Flights[0].Status == FlightCancelled {
		t.Error("mutating the copy changed the sim's flight")
	}
}

func TestSetSimRateClamps(t *testing.T) {
	s := newTestSim(t)
	s.SetSimRate(100)
	if s.SimRate != 20 {
		t.Errorf("rate %v, want clamp to 20", s.SimRate)
	}
	s.SetSimRate(0.1)
	if s.SimRate != 1 {
		t.Errorf("rate %v, want clamp to 1", s.SimRate)
	}
}
