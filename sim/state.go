// sim/state.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"time"

	"github.com/tarmac-sim/tarmac/util"
	"github.com/tarmac-sim/tarmac/wx"
)

type (
	FlightID   string
	VehicleID  string
	StandID    string
	ContractID string
	RouteID    string
	AirlineID  string
	AmenityID  string
)

// StandKind distinguishes passenger gates from cargo bays. A flight may
// only occupy a stand of the matching kind.
type StandKind int

const (
	StandGate StandKind = iota
	StandCargoBay
)

func (k StandKind) String() string {
	if k == StandGate {
		return "gate"
	}
	return "cargo bay"
}

// Stand is a parking position, either a passenger gate or a cargo bay.
// Occupied is redundant with FlightID but kept so snapshots read
// naturally; the two are always updated together.
type Stand struct {
	ID       StandID
	Kind     StandKind
	Occupied bool
	FlightID FlightID
}

type ParkingLot struct {
	Level    int
	Capacity int
	DailyFee float64
}

type FuelStorage struct {
	Level    int
	Capacity float64
}

type FuelDelivery struct {
	Amount    float64
	Cost      float64
	ArrivesAt time.Time
}

type CargoPackage struct {
	ID         string
	ArrivedAt  time.Time
	ContractID ContractID
}

type CargoWarehouse struct {
	Level    int
	Capacity int
	Packages []CargoPackage
}

// LogisticsTruck is for display only: it records that a pickup happened
// and lingers at the warehouse apron for a fixed interval.
type LogisticsTruck struct {
	ID         string
	ContractID ContractID
	DepartsAt  time.Time
}

type CheckInDesks struct {
	Level            int
	CapacityPerAgent int // passengers per agent per hour
}

type SecurityLanes struct {
	Level    int
	Capacity int // passengers per guard per hour
}

type AmenityType int

const (
	AmenityRetail AmenityType = iota
	AmenityFoodCourt
)

func (a AmenityType) String() string {
	if a == AmenityRetail {
		return "retail"
	}
	return "food court"
}

type Amenity struct {
	ID    AmenityID
	Type  AmenityType
	Level int
}

// State is the root aggregate. It is owned exclusively by the Sim; all
// mutation happens inside a locked command or tick. Everything here is
// plain data so that snapshots round-trip through msgpack.
type State struct {
	SimTime               time.Time
	Money                 float64
	Reputation            float32 // [0,100]
	PassengerSatisfaction float32 // [0,100]
	Weather               wx.Weather

	Flights   []*Flight
	Gates     []*Stand
	CargoBays []*Stand
	Vehicles  []*Vehicle

	AvailableAirlines []AirlineID
	ActiveContracts   []*ActiveContract
	RouteProposals    []*RouteProposal
	ActiveRoutes      []*ActiveRoute

	Personnel    map[StaffRole]int
	HRAutomation bool

	ParkingLot      ParkingLot
	FuelStorage     FuelStorage
	Fuel            float64
	FuelDeliveries  []FuelDelivery
	MarketFuelPrice float64

	CargoWarehouse      CargoWarehouse
	LogisticsTrucks     []LogisticsTruck
	LastLogisticsPickup time.Time

	RunwaySnowDepth       float64
	RunwayBlocked         bool
	RunwayBlockedUntil    time.Time
	SnowplowClearingUntil time.Time

	CheckInDesks  CheckInDesks
	SecurityLanes SecurityLanes
	CheckInQueue  float64
	SecurityQueue float64
	Amenities     []*Amenity

	LastDayProcessed  time.Time
	LastSalaryPayment time.Time

	// Monotonic counters for generated ids.
	NextFlightSeq  int
	NextVehicleSeq int
	NextStandSeq   map[StandKind]int
	NextTruckSeq   int
	NextAmenitySeq int
}

func NewState(start time.Time) *State {
	s := &State{
		SimTime:               start,
		Money:                 InitialMoney,
		Reputation:            InitialReputation,
		PassengerSatisfaction: InitialSatisfaction,
		Weather:               wx.Make(wx.Sunny, 22),
		Personnel:             make(map[StaffRole]int),
		ParkingLot:            ParkingLot{DailyFee: 25},
		FuelStorage:           FuelStorage{Capacity: 100_000},
		Fuel:                  InitialFuel,
		MarketFuelPrice:       InitialFuelPrice,
		LastDayProcessed:      start,
		LastSalaryPayment:     start,
		NextStandSeq:          make(map[StandKind]int),
	}
	for _, role := range AllStaffRoles {
		s.Personnel[role] = 0
	}
	s.Personnel[RoleAirTrafficController] = 2
	s.addStand(StandGate)
	s.addStand(StandGate)
	return s
}

func (s *State) addStand(kind StandKind) *Stand {
	s.NextStandSeq[kind]++
	prefix := util.Select(kind == StandGate, "G", "C")
	st := &Stand{
		ID:   StandID(fmt.Sprintf("%s%d", prefix, s.NextStandSeq[kind])),
		Kind: kind,
	}
	if kind == StandGate {
		s.Gates = append(s.Gates, st)
	} else {
		s.CargoBays = append(s.CargoBays, st)
	}
	return st
}

func (s *State) Stand(id StandID) *Stand {
	for _, st := range s.Gates {
		if st.ID == id {
			return st
		}
	}
	for _, st := range s.CargoBays {
		if st.ID == id {
			return st
		}
	}
	return nil
}

func (s *State) FlightByID(id FlightID) *Flight {
	for _, f := range s.Flights {
		if f.ID == id {
			return f
		}
	}
	return nil
}

func (s *State) VehicleByID(id VehicleID) *Vehicle {
	for _, v := range s.Vehicles {
		if v.ID == id {
			return v
		}
	}
	return nil
}

func (s *State) ContractByID(id ContractID) *ActiveContract {
	for _, c := range s.ActiveContracts {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *State) AmenityByID(id AmenityID) *Amenity {
	for _, a := range s.Amenities {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// assignStand links a flight and a stand in both directions. It is the
// only place an assignment is made, so the back-reference invariant
// cannot be violated by a call site forgetting one half.
func (s *State) assignStand(f *Flight, st *Stand) error {
	if st.Occupied {
		return ErrStandOccupied
	}
	wantKind := util.Select(f.IsCargo, StandCargoBay, StandGate)
	if st.Kind != wantKind {
		return ErrWrongStandKind
	}
	if f.StandID != "" {
		return ErrStandOccupied
	}
	st.Occupied = true
	st.FlightID = f.ID
	f.StandID = st.ID
	return nil
}

// releaseStand undoes assignStand. Safe to call when the flight holds
// no stand.
func (s *State) releaseStand(f *Flight) {
	if f.StandID == "" {
		return
	}
	if st := s.Stand(f.StandID); st != nil && st.FlightID == f.ID {
		st.Occupied = false
		st.FlightID = ""
	}
	f.StandID = ""
}

func (s *State) removeFlight(f *Flight) {
	s.releaseStand(f)
	for _, v := range s.Vehicles {
		if v.AssignedFlight == f.ID {
			v.release()
		}
	}
	s.Flights = util.FilterSliceInPlace(s.Flights,
		func(other *Flight) bool { return other.ID != f.ID })
}

func (s *State) adjustReputation(delta float32) {
	s.Reputation = util.Clamp(s.Reputation+delta, 0, 100)
}

func (s *State) adjustSatisfaction(delta float32) {
	s.PassengerSatisfaction = util.Clamp(s.PassengerSatisfaction+delta, 0, 100)
}

// purchaseDiscount is the administrator discount applied to vehicle and
// infrastructure purchases.
func (s *State) purchaseDiscount() float64 {
	d := float64(s.Personnel[RoleAdministrator]) * AdminDiscountPerHead
	return min(d, AdminDiscountCap)
}

func (s *State) discountedCost(base float64) float64 {
	return base * (1 - s.purchaseDiscount())
}

// spend deducts cost from the balance, failing without mutation when
// funds are short.
func (s *State) spend(cost float64) error {
	if s.Money < cost {
		return ErrInsufficientFunds
	}
	s.Money -= cost
	return nil
}

// ActiveFlightCount reports flights currently demanding controller
// attention: anything airborne or on the ground mid-cycle.
func (s *State) ActiveFlightCount() int {
	var n int
	for _, f := range s.Flights {
		switch f.Status {
		case FlightScheduled, FlightCancelled:
		default:
			n++
		}
	}
	return n
}

func (s *State) hasAirline(id AirlineID) bool {
	for _, a := range s.AvailableAirlines {
		if a == id {
			return true
		}
	}
	return false
}
