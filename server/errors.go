// server/errors.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package server

import (
	"errors"

	"github.com/tarmac-sim/tarmac/sim"
)

var (
	ErrInvalidSnapshot = errors.New("Invalid state snapshot")
	ErrRPCTimeout      = errors.New("RPC call timed out")
	ErrServerShutdown  = errors.New("Server is shutting down")
)

// errorStringToError lets transports map an error string from the wire
// back to the canonical value so clients can compare with errors.Is.
var errorStringToError = map[string]error{
	ErrInvalidSnapshot.Error(): ErrInvalidSnapshot,
	ErrRPCTimeout.Error():      ErrRPCTimeout,
	ErrServerShutdown.Error():  ErrServerShutdown,

	sim.ErrAmenityMaxLevel.Error():         sim.ErrAmenityMaxLevel,
	sim.ErrContractAlreadySigned.Error():   sim.ErrContractAlreadySigned,
	sim.ErrContractNotActive.Error():       sim.ErrContractNotActive,
	sim.ErrContractNotRenewable.Error():    sim.ErrContractNotRenewable,
	sim.ErrFlightNotInAir.Error():          sim.ErrFlightNotInAir,
	sim.ErrInsufficientFunds.Error():       sim.ErrInsufficientFunds,
	sim.ErrInsufficientStorage.Error():     sim.ErrInsufficientStorage,
	sim.ErrNoIdleSnowplow.Error():          sim.ErrNoIdleSnowplow,
	sim.ErrNoMatchingAmenity.Error():       sim.ErrNoMatchingAmenity,
	sim.ErrNoMatchingContract.Error():      sim.ErrNoMatchingContract,
	sim.ErrNoMatchingFlight.Error():        sim.ErrNoMatchingFlight,
	sim.ErrNoMatchingProposal.Error():      sim.ErrNoMatchingProposal,
	sim.ErrNoMatchingVehicle.Error():       sim.ErrNoMatchingVehicle,
	sim.ErrNoStaffToDismiss.Error():        sim.ErrNoStaffToDismiss,
	sim.ErrNothingToClear.Error():          sim.ErrNothingToClear,
	sim.ErrRequiresHRManager.Error():       sim.ErrRequiresHRManager,
	sim.ErrSnowplowAlreadyClearing.Error(): sim.ErrSnowplowAlreadyClearing,
	sim.ErrStandOccupied.Error():           sim.ErrStandOccupied,
	sim.ErrUnknownSnapshotVersion.Error():  sim.ErrUnknownSnapshotVersion,
	sim.ErrUnknownStand.Error():            sim.ErrUnknownStand,
	sim.ErrUpgradeMaxLevel.Error():         sim.ErrUpgradeMaxLevel,
	sim.ErrVehicleFullyRepaired.Error():    sim.ErrVehicleFullyRepaired,
	sim.ErrVehicleInUse.Error():            sim.ErrVehicleInUse,
	sim.ErrWrongStandKind.Error():          sim.ErrWrongStandKind,
}

// TryDecodeError returns the canonical error value for an error that
// has passed through a string round-trip, if there is one.
func TryDecodeError(e error) error {
	if e == nil {
		return nil
	}
	if err, ok := errorStringToError[e.Error()]; ok {
		return err
	}
	return e
}
