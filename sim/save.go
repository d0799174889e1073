// sim/save.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshots are msgpack-encoded State wrapped in zstd. The format tag
// is bumped when a change cannot be covered by upgradeState's backfill.
const snapshotVersion = 1

type snapshot struct {
	Version int
	State   *State
}

// EncodeSnapshot serializes the state to the writer.
func EncodeSnapshot(w io.Writer, state *State) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(zw).Encode(snapshot{Version: snapshotVersion, State: state}); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// DecodeSnapshot reads a snapshot and migrates it to the current
// shape.
func DecodeSnapshot(r io.Reader) (*State, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var sn snapshot
	if err := msgpack.NewDecoder(zr).Decode(&sn); err != nil {
		return nil, err
	}
	if sn.Version != snapshotVersion {
		return nil, ErrUnknownSnapshotVersion
	}
	upgradeState(sn.State)
	return sn.State, nil
}

func SaveSnapshotFile(path string, state *State) error {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, state); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func LoadSnapshotFile(path string) (*State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeSnapshot(f)
}

// upgradeState backfills fields that older snapshots may lack so a
// restored world always has the current shape. Applying it to a
// current snapshot changes nothing.
func upgradeState(s *State) {
	if s.Personnel == nil {
		s.Personnel = make(map[StaffRole]int)
	}
	for _, role := range AllStaffRoles {
		if _, ok := s.Personnel[role]; !ok {
			s.Personnel[role] = 0
		}
	}
	if s.NextStandSeq == nil {
		s.NextStandSeq = map[StandKind]int{
			StandGate:     len(s.Gates),
			StandCargoBay: len(s.CargoBays),
		}
	}
	if s.MarketFuelPrice == 0 {
		s.MarketFuelPrice = InitialFuelPrice
	}
	if s.LastDayProcessed.IsZero() {
		s.LastDayProcessed = s.SimTime
	}
	if s.LastSalaryPayment.IsZero() {
		s.LastSalaryPayment = s.SimTime
	}
	for _, f := range s.Flights {
		// NextEventTime doubles as the state machine's timer; a zero
		// value from an old save falls back to the arrival time.
		if f.NextEventTime.IsZero() {
			f.NextEventTime = f.ArrivalTime
		}
	}
	s.rebuildAvailableAirlines()
}
