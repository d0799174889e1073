// sim/save_test.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestSim(t)
	state := s.State
	if err := s.SignContract("c1"); err != nil {
		t.Fatal(err)
	}
	state.addVehicle(VehicleFollowMe).Health = 73.5
	f := state.Flights[0]
	if err := state.assignStand(f, state.Gates[0]); err != nil {
		t.Fatal(err)
	}
	f.NextEventTime = f.ArrivalTime

	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, state); err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}
	restored, err := DecodeSnapshot(&buf)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}

	if !restored.SimTime.Equal(state.SimTime) {
		t.Errorf("sim time %v, want %v", restored.SimTime, state.SimTime)
	}
	if restored.Money != state.Money {
		t.Errorf("money %v, want %v", restored.Money, state.Money)
	}
	if restored.Reputation != state.Reputation {
		t.Errorf("reputation %v, want %v", restored.Reputation, state.Reputation)
	}
	if len(restored.Flights) != 1 {
		t.Fatalf("%d flights, want 1", len(restored.Flights))
	}
	rf := restored.Flights[0]
	if rf.ID != f.ID || rf.Status != f.Status || rf.StandID != f.StandID {
		t.Errorf("flight %+v, want %+v", rf, f)
	}
	if !rf.NextEventTime.Equal(f.NextEventTime) {
		t.Errorf("next event %v, want %v", rf.NextEventTime, f.NextEventTime)
	}
	if len(restored.Vehicles) != 1 || restored.Vehicles[0].Health != 73.5 {
		t.Errorf("vehicles %+v", restored.Vehicles)
	}
	if restored.ContractByID("c1") == nil {
		t.Error("contract lost in round trip")
	}
	if !restored.hasAirline("wizzair") {
		t.Error("airline availability lost in round trip")
	}
	if st := restored.Stand(f.StandID); st == nil || st.FlightID != f.ID {
		t.Error("stand back-reference lost in round trip")
	}
}

func TestSnapshotFile(t *testing.T) {
	s := newTestSim(t)
	path := filepath.Join(t.TempDir(), "test.snap.zst")

	if err := SaveSnapshotFile(path, s.State); err != nil {
		t.Fatalf("SaveSnapshotFile: %v", err)
	}
	restored, err := LoadSnapshotFile(path)
	if err != nil {
		t.Fatalf("LoadSnapshotFile: %v", err)
	}
	if !restored.SimTime.Equal(s.State.SimTime) {
		t.Errorf("sim time %v, want %v", restored.SimTime, s.State.SimTime)
	}
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	if _, err := DecodeSnapshot(bytes.NewReader([]byte("not a snapshot"))); err == nil {
		t.Error("decode of garbage succeeded")
	}
}

func TestUpgradeStateBackfills(t *testing.T) {
	old := &State{
		SimTime: testStart,
		Money:   1000,
		Flights: []*Flight{{
			ID:          "FOLD",
			ArrivalTime: testStart.Add(time.Hour),
		}},
		ActiveContracts: []*ActiveContract{{
			ContractTemplate: *contractTemplate("c1"),
			SignedAt:         testStart,
			ExpiresAt:        testStart.Add(14 * 24 * time.Hour),
		}},
		Gates:     []*Stand{{ID: "G1", Kind: StandGate}, {ID: "G2", Kind: StandGate}},
		CargoBays: []*Stand{{ID: "C1", Kind: StandCargoBay}},
	}

	upgradeState(old)

	for _, role := range AllStaffRoles {
		if _, ok := old.Personnel[role]; !ok {
			t.Errorf("role %s missing from backfilled personnel", role)
		}
	}
	if old.NextStandSeq[StandGate] != 2 || old.NextStandSeq[StandCargoBay] != 1 {
		t.Errorf("stand seq %v, want counts of existing stands", old.NextStandSeq)
	}
	if old.MarketFuelPrice != InitialFuelPrice {
		t.Errorf("fuel price %v, want %v", old.MarketFuelPrice, InitialFuelPrice)
	}
	if !old.LastDayProcessed.Equal(testStart) || !old.LastSalaryPayment.Equal(testStart) {
		t.Error("calendar watermarks not backfilled to sim time")
	}
	if f := old.Flights[0]; !f.NextEventTime.Equal(f.ArrivalTime) {
		t.Errorf("next event %v, want arrival fallback", f.NextEventTime)
	}
	if !old.hasAirline("wizzair") {
		t.Error("available airlines not rebuilt from contracts")
	}
}

func TestUpgradeStateIdempotentOnCurrent(t *testing.T) {
	s := newTestSim(t)
	state := s.State
	state.PassengerSatisfaction = 42
	state.MarketFuelPrice = 3.1

	upgradeState(state)

	if state.PassengerSatisfaction != 42 {
		t.Errorf("satisfaction %v clobbered", state.PassengerSatisfaction)
	}
	if state.MarketFuelPrice != 3.1 {
		t.Errorf("fuel price %v clobbered", state.MarketFuelPrice)
	}
}

// Zero is a legitimate value for both satisfaction scores; restoring a
// copied state must reproduce it exactly, not reset it to the initial
// value.
func TestSetStatePreservesZeroSatisfaction(t *testing.T) {
	s := newTestSim(t)
	if err := s.SignContract("c1"); err != nil {
		t.Fatal(err)
	}
	s.State.PassengerSatisfaction = 0
	s.State.ActiveContracts[0].Satisfaction = 0

	copied, err := s.CopyState()
	if err != nil {
		t.Fatal(err)
	}
	s.SetState(copied)

	if got := s.State.PassengerSatisfaction; got != 0 {
		t.Errorf("restore rewrote passenger satisfaction to %v", got)
	}
	if got := s.State.ActiveContracts[0].Satisfaction; got != 0 {
		t.Errorf("restore rewrote contract satisfaction to %v", got)
	}
}
