// sim/errors.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"errors"
)

var (
	ErrAmenityMaxLevel          = errors.New("Amenity is already at its maximum level")
	ErrContractAlreadySigned    = errors.New("Contract is already signed")
	ErrContractNotActive        = errors.New("No active contract with that id")
	ErrContractNotRenewable     = errors.New("Contract has no outstanding renewal offer")
	ErrFlightNotInAir           = errors.New("Flight is not in the air")
	ErrInsufficientFunds        = errors.New("Insufficient funds")
	ErrInsufficientStorage      = errors.New("Not enough storage capacity")
	ErrNoIdleSnowplow           = errors.New("No idle snowplow available")
	ErrNoMatchingAmenity        = errors.New("No matching amenity")
	ErrNoMatchingContract       = errors.New("No contract offer with that id")
	ErrNoMatchingFlight         = errors.New("No matching flight")
	ErrNoMatchingProposal       = errors.New("No matching route proposal")
	ErrNoMatchingVehicle        = errors.New("No matching vehicle")
	ErrNoStaffToDismiss         = errors.New("No staff of that role to dismiss")
	ErrNothingToClear           = errors.New("Runway has no snow to clear")
	ErrRequiresHRManager        = errors.New("An HR manager is required for automation")
	ErrSnowplowAlreadyClearing  = errors.New("A snowplow dispatch is already underway")
	ErrStandOccupied            = errors.New("Stand is already occupied")
	ErrUnknownSnapshotVersion   = errors.New("Unknown snapshot format version")
	ErrUnknownStand             = errors.New("Unknown gate or cargo bay id")
	ErrUpgradeMaxLevel          = errors.New("Already at maximum upgrade level")
	ErrVehicleInUse             = errors.New("Vehicle is currently in use")
	ErrVehicleFullyRepaired     = errors.New("Vehicle needs no repair")
	ErrWrongStandKind           = errors.New("Flight cannot use that kind of stand")
)
