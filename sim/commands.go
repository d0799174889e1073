// sim/commands.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"time"

	"github.com/tarmac-sim/tarmac/util"
)

// The command surface. Each method is one externally-submitted action:
// it locks the sim, either applies fully or returns an error with the
// state unchanged, and posts any user-facing notifications. Resource
// shortages during a tick are not commands and never surface here;
// these are the player-initiated mutations only.

// AssignStand parks a scheduled flight at a gate or cargo bay and arms
// its activation timer.
func (s *Sim) AssignStand(flight FlightID, stand StandID) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	f := s.State.FlightByID(flight)
	if f == nil {
		return ErrNoMatchingFlight
	}
	st := s.State.Stand(stand)
	if st == nil {
		return ErrUnknownStand
	}
	if err := s.State.assignStand(f, st); err != nil {
		return err
	}
	if f.Status == FlightScheduled {
		f.NextEventTime = f.ArrivalTime.Add(-InboundActivationWindow)
	}
	return nil
}

// SignContract signs a catalog offer, paying the discounted cost. An
// airline contract unlocks the airline and schedules its inaugural
// flight; signing a fuel supplier displaces any previous supplier.
func (s *Sim) SignContract(id ContractID) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	tmpl := contractTemplate(id)
	if tmpl == nil {
		return ErrNoMatchingContract
	}
	if state.ContractByID(id) != nil {
		return ErrContractAlreadySigned
	}
	cost := state.discountedCost(tmpl.Cost)
	if err := state.spend(cost); err != nil {
		s.postNotification(SeverityError, fmt.Sprintf("Not enough funds to sign %s.", tmpl.Name))
		return err
	}

	if tmpl.Type == ContractFuelSupplier {
		state.ActiveContracts = util.FilterSliceInPlace(state.ActiveContracts,
			func(c *ActiveContract) bool { return c.Type != ContractFuelSupplier })
	}
	state.ActiveContracts = append(state.ActiveContracts, &ActiveContract{
		ContractTemplate: *tmpl,
		SignedAt:         state.SimTime,
		ExpiresAt:        state.SimTime.Add(tmpl.Duration),
		Satisfaction:     100,
	})

	msg := fmt.Sprintf("Contract signed with %s.", tmpl.Name)
	if tmpl.Type == ContractAirline && tmpl.AirlineID != "" {
		if airline := Airlines[tmpl.AirlineID]; airline != nil && !state.hasAirline(airline.ID) {
			state.AvailableAirlines = append(state.AvailableAirlines, airline.ID)
			state.Flights = append(state.Flights, s.inauguralFlight(airline, tmpl.ID))
			msg += " Their first flight is on its way!"
		}
	}
	s.postNotification(SeveritySuccess, msg)
	return nil
}

// TerminateContract ends a contract early for its penalty fee, with a
// reputation hit. The airline's unlocked routes stop generating.
func (s *Sim) TerminateContract(id ContractID) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	c := state.ContractByID(id)
	if c == nil {
		return ErrContractNotActive
	}
	if err := state.spend(c.Penalty); err != nil {
		s.postNotification(SeverityError, "Not enough funds for termination penalty.")
		return err
	}
	state.removeContract(id)
	state.adjustReputation(-TerminatedContractReputation)
	s.postNotification(SeverityWarning, fmt.Sprintf("Contract with %s terminated.", c.Name))
	return nil
}

// RenewContract accepts a pending renewal offer: a longer term at half
// the original cost, with contract satisfaction reset.
func (s *Sim) RenewContract(id ContractID) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	c := state.ContractByID(id)
	if c == nil {
		return ErrContractNotActive
	}
	if !c.RenewalOffered {
		return ErrContractNotRenewable
	}
	tmpl := contractTemplate(id)
	if tmpl == nil {
		return ErrNoMatchingContract
	}

	cost := tmpl.Cost * RenewalCostFactor
	if err := state.spend(cost); err != nil {
		s.postNotification(SeverityError, fmt.Sprintf("Not enough money to renew %s.", c.Name))
		return err
	}
	extension := time.Duration(float64(tmpl.Duration) * (RenewalDurationFactor - 1))
	c.ExpiresAt = c.ExpiresAt.Add(extension)
	c.Duration = time.Duration(float64(tmpl.Duration) * RenewalDurationFactor)
	c.Cost = cost
	c.RenewalOffered = false
	c.Satisfaction = 100
	s.postNotification(SeveritySuccess,
		fmt.Sprintf("Contract with %s renewed on favorable terms!", c.Name))
	return nil
}

// AcceptRouteProposal converts a proposal into an active route and
// generates its first window of flights immediately.
func (s *Sim) AcceptRouteProposal(id RouteID) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	for i, p := range state.RouteProposals {
		if p.ID != id {
			continue
		}
		route := &ActiveRoute{RouteProposal: *p, LastGenerated: state.SimTime}
		state.RouteProposals = append(state.RouteProposals[:i], state.RouteProposals[i+1:]...)
		state.ActiveRoutes = append(state.ActiveRoutes, route)
		state.Flights = append(state.Flights, s.flightsFromRoute(route)...)
		airline := Airlines[route.AirlineID]
		s.postNotification(SeveritySuccess,
			fmt.Sprintf("New route with %s accepted!", airline.Name))
		return nil
	}
	return ErrNoMatchingProposal
}

// RejectRouteProposal declines an offer, with a small reputation cost.
func (s *Sim) RejectRouteProposal(id RouteID) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	n := len(state.RouteProposals)
	state.RouteProposals = util.FilterSliceInPlace(state.RouteProposals,
		func(p *RouteProposal) bool { return p.ID != id })
	if len(state.RouteProposals) == n {
		return ErrNoMatchingProposal
	}
	state.adjustReputation(-RejectedProposalReputation)
	return nil
}

// PurchaseVehicle buys one ground vehicle at the discounted price.
func (s *Sim) PurchaseVehicle(t VehicleType) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	cost := state.discountedCost(VehicleCost[t])
	if err := state.spend(cost); err != nil {
		s.postNotification(SeverityError, "Not enough funds to purchase vehicle.")
		return err
	}
	state.addVehicle(t)
	s.postNotification(SeveritySuccess, fmt.Sprintf("Purchased new %s.", t))
	return nil
}

// SellVehicle disposes of an idle vehicle at its depreciated value.
func (s *Sim) SellVehicle(id VehicleID) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	v := state.VehicleByID(id)
	if v == nil {
		return ErrNoMatchingVehicle
	}
	if v.Busy {
		return ErrVehicleInUse
	}
	state.Money += v.SellValue()
	state.Vehicles = util.FilterSliceInPlace(state.Vehicles,
		func(other *Vehicle) bool { return other.ID != id })
	return nil
}

// RepairVehicle restores a vehicle to full health for a fee scaled by
// the missing health.
func (s *Sim) RepairVehicle(id VehicleID) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	v := state.VehicleByID(id)
	if v == nil {
		return ErrNoMatchingVehicle
	}
	if v.Health >= 100 {
		return ErrVehicleFullyRepaired
	}
	if err := state.spend(v.RepairCost()); err != nil {
		return err
	}
	v.Health = 100
	return nil
}

// ExpandInfrastructure builds one new gate or cargo bay.
func (s *Sim) ExpandInfrastructure(kind StandKind) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	base := util.Select(kind == StandGate, float64(GateExpansionCost), float64(CargoBayExpansionCost))
	if err := state.spend(state.discountedCost(base)); err != nil {
		return err
	}
	st := state.addStand(kind)
	s.postNotification(SeveritySuccess, fmt.Sprintf("New %s %s constructed.", kind, st.ID))
	return nil
}

var parkingLotUpgrades = []struct {
	Cost     float64
	Capacity int
}{
	{75000, 50}, {150000, 120}, {300000, 250}, {500000, 500},
}

func (s *Sim) UpgradeParkingLot() error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	if state.ParkingLot.Level >= len(parkingLotUpgrades) {
		return ErrUpgradeMaxLevel
	}
	up := parkingLotUpgrades[state.ParkingLot.Level]
	if err := state.spend(up.Cost); err != nil {
		return err
	}
	state.ParkingLot.Level++
	state.ParkingLot.Capacity = up.Capacity
	return nil
}

func (s *Sim) SetParkingFee(fee float64) {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	s.State.ParkingLot.DailyFee = max(0, fee)
}

var fuelStorageUpgrades = []struct {
	Cost     float64
	Capacity float64
}{
	{60000, 250_000}, {150000, 750_000}, {400000, 2_000_000},
}

func (s *Sim) UpgradeFuelStorage() error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	if state.FuelStorage.Level >= len(fuelStorageUpgrades) {
		return ErrUpgradeMaxLevel
	}
	up := fuelStorageUpgrades[state.FuelStorage.Level]
	if err := state.spend(up.Cost); err != nil {
		return err
	}
	state.FuelStorage.Level++
	state.FuelStorage.Capacity = up.Capacity
	return nil
}

// FuelDeliveryOption is a purchasable bulk order.
type FuelDeliveryOption struct {
	Amount       float64
	DeliveryTime time.Duration
}

var FuelDeliveryOptions = []FuelDeliveryOption{
	{25_000, 2 * time.Hour},
	{75_000, 4 * time.Hour},
	{200_000, 8 * time.Hour},
}

// OrderFuelDelivery buys fuel at the best contracted rate, arriving
// after the option's lead time. The order is refused when it would
// overflow storage.
func (s *Sim) OrderFuelDelivery(opt FuelDeliveryOption) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	if state.Fuel+opt.Amount > state.FuelStorage.Capacity {
		s.postNotification(SeverityError, "Not enough storage for fuel delivery.")
		return ErrInsufficientStorage
	}
	cost := opt.Amount * state.fuelPricePerLiter()
	if err := state.spend(cost); err != nil {
		return err
	}
	state.FuelDeliveries = append(state.FuelDeliveries, FuelDelivery{
		Amount:    opt.Amount,
		Cost:      cost,
		ArrivesAt: state.SimTime.Add(opt.DeliveryTime),
	})
	return nil
}

var cargoWarehouseUpgrades = []struct {
	Cost     float64
	Capacity int
}{
	{120000, 100}, {250000, 250}, {500000, 600},
}

func (s *Sim) UpgradeCargoWarehouse() error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	if state.CargoWarehouse.Level >= len(cargoWarehouseUpgrades) {
		return ErrUpgradeMaxLevel
	}
	up := cargoWarehouseUpgrades[state.CargoWarehouse.Level]
	if err := state.spend(up.Cost); err != nil {
		return err
	}
	state.CargoWarehouse.Level++
	state.CargoWarehouse.Capacity = up.Capacity
	return nil
}

var checkInUpgrades = []struct {
	Cost             float64
	CapacityPerAgent int
}{
	{50000, 20}, {100000, 35}, {200000, 50},
}

func (s *Sim) UpgradeCheckIn() error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	if state.CheckInDesks.Level >= len(checkInUpgrades) {
		return ErrUpgradeMaxLevel
	}
	up := checkInUpgrades[state.CheckInDesks.Level]
	if err := state.spend(up.Cost); err != nil {
		return err
	}
	state.CheckInDesks.Level++
	state.CheckInDesks.CapacityPerAgent = up.CapacityPerAgent
	return nil
}

var securityUpgrades = []struct {
	Cost     float64
	Capacity int
}{
	{80000, 100}, {160000, 220}, {320000, 450},
}

func (s *Sim) UpgradeSecurity() error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	if state.SecurityLanes.Level >= len(securityUpgrades) {
		return ErrUpgradeMaxLevel
	}
	up := securityUpgrades[state.SecurityLanes.Level]
	if err := state.spend(up.Cost); err != nil {
		return err
	}
	state.SecurityLanes.Level++
	state.SecurityLanes.Capacity = up.Capacity
	return nil
}

// BuildAmenity constructs a level-1 amenity of the given type.
func (s *Sim) BuildAmenity(t AmenityType) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	if err := state.spend(AmenityUpgrades[t][0].Cost); err != nil {
		return err
	}
	state.NextAmenitySeq++
	state.Amenities = append(state.Amenities, &Amenity{
		ID:    AmenityID(fmt.Sprintf("A%d", state.NextAmenitySeq)),
		Type:  t,
		Level: 1,
	})
	return nil
}

func (s *Sim) UpgradeAmenity(id AmenityID) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	a := state.AmenityByID(id)
	if a == nil {
		return ErrNoMatchingAmenity
	}
	if a.Level >= len(AmenityUpgrades[a.Type]) {
		return ErrAmenityMaxLevel
	}
	if err := state.spend(AmenityUpgrades[a.Type][a.Level].Cost); err != nil {
		return err
	}
	a.Level++
	return nil
}

// Hire adds one member of staff, paying the first month's salary up
// front.
func (s *Sim) Hire(role StaffRole) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	if err := state.spend(MonthlySalary[role]); err != nil {
		s.postNotification(SeverityError, fmt.Sprintf("Not enough funds to hire %s.", role))
		return err
	}
	state.Personnel[role]++
	return nil
}

func (s *Sim) Fire(role StaffRole) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	if state.Personnel[role] <= 0 {
		return ErrNoStaffToDismiss
	}
	state.Personnel[role]--
	return nil
}

func (s *Sim) ToggleHRAutomation() error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	if state.Personnel[RoleHRManager] == 0 {
		s.postNotification(SeverityWarning, "You must hire an HR Manager to enable automation.")
		return ErrRequiresHRManager
	}
	state.HRAutomation = !state.HRAutomation
	return nil
}

// DeclareEmergency is the external entry to the emergency path, used
// by drills and tests; the per-tick lottery calls the internal handler
// directly.
func (s *Sim) DeclareEmergency(id FlightID) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	return s.triggerEmergency(id)
}

// ClearRunway dispatches an idle snowplow. The runway stays closed
// while the plow works through its cycle; it reopens when the cycle
// completes with the snow fully cleared.
func (s *Sim) ClearRunway() error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	state := s.State

	if state.RunwaySnowDepth <= 0 {
		return ErrNothingToClear
	}
	if !state.SnowplowClearingUntil.IsZero() {
		return ErrSnowplowAlreadyClearing
	}
	pool := state.buildVehiclePool(s.Rand)
	v := pool.claim(VehicleSnowplow, "")
	if v == nil {
		return ErrNoIdleSnowplow
	}
	state.SnowplowClearingUntil = state.SimTime.Add(SnowplowDispatchDuration)
	return nil
}

// SetState replaces the world with a restored snapshot, running the
// migration that backfills fields absent from older saves.
func (s *Sim) SetState(state *State) {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)
	upgradeState(state)
	s.State = state
}
