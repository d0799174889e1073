// sim/fleet.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"

	"github.com/tarmac-sim/tarmac/rand"
)

type VehicleType int

const (
	VehicleFollowMe VehicleType = iota
	VehicleCatering
	VehicleFuel
	VehicleBaggage
	VehicleStairs
	VehicleCargoLoader
	VehicleCargoTransporter
	VehicleAmbulance
	VehicleFireTruck
	VehicleSnowplow
	VehicleForklift
	VehiclePushback
	VehicleDeicing
	NumVehicleTypes
)

func (t VehicleType) String() string {
	return [...]string{"follow-me car", "catering truck", "fuel truck", "baggage cart",
		"passenger stairs", "cargo loader", "cargo transporter", "ambulance",
		"fire truck", "snowplow", "forklift", "pushback tug", "de-icing truck"}[t]
}

// VehicleCost is the purchase price by type, before any administrator
// discount.
var VehicleCost = map[VehicleType]float64{
	VehicleFollowMe:         18000,
	VehicleCatering:         20000,
	VehicleFuel:             30000,
	VehicleBaggage:          15000,
	VehicleStairs:           25000,
	VehicleCargoLoader:      35000,
	VehicleCargoTransporter: 28000,
	VehicleAmbulance:        45000,
	VehicleFireTruck:        80000,
	VehicleSnowplow:         65000,
	VehicleForklift:         12000,
	VehiclePushback:         40000,
	VehicleDeicing:          75000,
}

// Ground service sets claimed all-or-nothing when a flight enters
// servicing, or for an emergency response.
var (
	passengerServices = []VehicleType{VehicleCatering, VehicleFuel, VehicleBaggage, VehicleStairs}
	cargoServices     = []VehicleType{VehicleFuel, VehicleCargoLoader, VehicleCargoTransporter}
	emergencyServices = []VehicleType{VehicleAmbulance, VehicleFireTruck}
)

type Vehicle struct {
	ID             VehicleID
	Type           VehicleType
	Busy           bool
	AssignedFlight FlightID
	Health         float64 // [0,100]
}

func (v *Vehicle) assign(f FlightID) {
	v.Busy = true
	v.AssignedFlight = f
}

func (v *Vehicle) release() {
	v.Busy = false
	v.AssignedFlight = ""
}

// SellValue is what the vehicle fetches on sale, scaled by remaining
// health.
func (v *Vehicle) SellValue() float64 {
	return VehicleCost[v.Type] * VehicleSellMultiplier * v.Health / 100
}

// RepairCost is the price of restoring the vehicle to full health.
func (v *Vehicle) RepairCost() float64 {
	return (100 - v.Health) * VehicleCost[v.Type] * VehicleRepairCostFactor
}

func (s *State) addVehicle(t VehicleType) *Vehicle {
	s.NextVehicleSeq++
	v := &Vehicle{
		ID:     VehicleID(fmt.Sprintf("V%d", s.NextVehicleSeq)),
		Type:   t,
		Health: 100,
	}
	s.Vehicles = append(s.Vehicles, v)
	return v
}

// vehiclePool partitions the currently idle fleet by type so that the
// flight step does constant-time claims instead of scanning the whole
// fleet at every transition. Claiming from the pool and marking the
// vehicle busy are a single operation; the pool is discarded at the end
// of the tick.
type vehiclePool struct {
	idle map[VehicleType][]*Vehicle
}

func (s *State) buildVehiclePool(r *rand.Rand) *vehiclePool {
	p := &vehiclePool{idle: make(map[VehicleType][]*Vehicle)}
	for _, v := range s.Vehicles {
		if !v.Busy {
			p.idle[v.Type] = append(p.idle[v.Type], v)
		}
	}
	// Shuffle so repeated claims spread wear across same-type vehicles
	// instead of always dispatching the same one.
	for _, vs := range p.idle {
		rand.ShuffleSlice(vs, r)
	}
	return p
}

func (p *vehiclePool) available(t VehicleType) int {
	return len(p.idle[t])
}

// claim takes one idle vehicle of the given type for the flight,
// marking it busy. Returns nil if none is idle.
func (p *vehiclePool) claim(t VehicleType, f FlightID) *Vehicle {
	vs := p.idle[t]
	if len(vs) == 0 {
		return nil
	}
	v := vs[len(vs)-1]
	p.idle[t] = vs[:len(vs)-1]
	v.assign(f)
	return v
}

// claimAll claims one vehicle of every listed type, or none at all.
func (p *vehiclePool) claimAll(types []VehicleType, f FlightID) ([]*Vehicle, bool) {
	for _, t := range types {
		if p.available(t) == 0 {
			return nil, false
		}
	}
	claimed := make([]*Vehicle, 0, len(types))
	for _, t := range types {
		claimed = append(claimed, p.claim(t, f))
	}
	return claimed, true
}

// releaseFlightVehicles frees every vehicle assigned to the flight,
// optionally degrading health for the service performed, and returns
// them to the pool.
func (s *State) releaseFlightVehicles(p *vehiclePool, f FlightID, degrade bool) {
	for _, v := range s.Vehicles {
		if v.AssignedFlight != f {
			continue
		}
		v.release()
		if degrade {
			v.Health = max(0, v.Health-VehicleHealthDegradation)
		}
		if p != nil {
			p.idle[v.Type] = append(p.idle[v.Type], v)
		}
	}
}
