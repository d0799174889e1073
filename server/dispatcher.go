// server/dispatcher.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package server

import (
	"github.com/tarmac-sim/tarmac/sim"
	"github.com/tarmac-sim/tarmac/wx"
)

// Dispatcher is the command surface the transports call into: one
// method per player action, with RPC-friendly argument structs. The
// methods are invoked from goroutines the transport spawns, so each
// one starts by arming crash capture.
type Dispatcher struct {
	sm *SimManager
}

type AssignStandArgs struct {
	Flight sim.FlightID
	Stand  sim.StandID
}

func (d *Dispatcher) AssignStand(args *AssignStandArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.AssignStand(args.Flight, args.Stand)
}

type SignContractArgs struct {
	Contract sim.ContractID
}

func (d *Dispatcher) SignContract(args *SignContractArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.SignContract(args.Contract)
}

func (d *Dispatcher) TerminateContract(args *SignContractArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.TerminateContract(args.Contract)
}

func (d *Dispatcher) RenewContract(args *SignContractArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.RenewContract(args.Contract)
}

type RouteProposalArgs struct {
	Proposal sim.RouteID
}

func (d *Dispatcher) AcceptRouteProposal(args *RouteProposalArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.AcceptRouteProposal(args.Proposal)
}

func (d *Dispatcher) RejectRouteProposal(args *RouteProposalArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.RejectRouteProposal(args.Proposal)
}

type PurchaseVehicleArgs struct {
	Type sim.VehicleType
}

func (d *Dispatcher) PurchaseVehicle(args *PurchaseVehicleArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.PurchaseVehicle(args.Type)
}

type VehicleArgs struct {
	Vehicle sim.VehicleID
}

func (d *Dispatcher) SellVehicle(args *VehicleArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.SellVehicle(args.Vehicle)
}

func (d *Dispatcher) RepairVehicle(args *VehicleArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.RepairVehicle(args.Vehicle)
}

type ExpandInfrastructureArgs struct {
	Kind sim.StandKind
}

func (d *Dispatcher) ExpandInfrastructure(args *ExpandInfrastructureArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.ExpandInfrastructure(args.Kind)
}

func (d *Dispatcher) UpgradeParkingLot(_ struct{}, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.UpgradeParkingLot()
}

type SetParkingFeeArgs struct {
	Fee float64
}

func (d *Dispatcher) SetParkingFee(args *SetParkingFeeArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	d.sm.sim.SetParkingFee(args.Fee)
	return nil
}

func (d *Dispatcher) UpgradeFuelStorage(_ struct{}, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.UpgradeFuelStorage()
}

type OrderFuelDeliveryArgs struct {
	Option sim.FuelDeliveryOption
}

func (d *Dispatcher) OrderFuelDelivery(args *OrderFuelDeliveryArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.OrderFuelDelivery(args.Option)
}

func (d *Dispatcher) UpgradeCargoWarehouse(_ struct{}, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.UpgradeCargoWarehouse()
}

func (d *Dispatcher) UpgradeCheckIn(_ struct{}, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.UpgradeCheckIn()
}

func (d *Dispatcher) UpgradeSecurity(_ struct{}, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.UpgradeSecurity()
}

type BuildAmenityArgs struct {
	Type sim.AmenityType
}

func (d *Dispatcher) BuildAmenity(args *BuildAmenityArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.BuildAmenity(args.Type)
}

type UpgradeAmenityArgs struct {
	Amenity sim.AmenityID
}

func (d *Dispatcher) UpgradeAmenity(args *UpgradeAmenityArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.UpgradeAmenity(args.Amenity)
}

type StaffArgs struct {
	Role sim.StaffRole
}

func (d *Dispatcher) Hire(args *StaffArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.Hire(args.Role)
}

func (d *Dispatcher) Fire(args *StaffArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.Fire(args.Role)
}

func (d *Dispatcher) ToggleHRAutomation(_ struct{}, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.ToggleHRAutomation()
}

type DeclareEmergencyArgs struct {
	Flight sim.FlightID
}

func (d *Dispatcher) DeclareEmergency(args *DeclareEmergencyArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.DeclareEmergency(args.Flight)
}

func (d *Dispatcher) ClearRunway(_ struct{}, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	return d.sm.sim.ClearRunway()
}

type UpdateWeatherArgs struct {
	Weather wx.Weather
}

func (d *Dispatcher) UpdateWeather(args *UpdateWeatherArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	d.sm.sim.UpdateWeather(args.Weather)
	return nil
}

func (d *Dispatcher) TogglePause(_ struct{}, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	d.sm.sim.TogglePause()
	return nil
}

type SetSimRateArgs struct {
	Rate float32
}

func (d *Dispatcher) SetSimRate(args *SetSimRateArgs, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	d.sm.sim.SetSimRate(args.Rate)
	return nil
}

// GetState hands the caller a deep copy of the world; mutating it has
// no effect on the sim.
func (d *Dispatcher) GetState(_ struct{}, state *sim.State) error {
	defer d.sm.lg.CatchAndReportCrash()
	copied, err := d.sm.sim.CopyState()
	if err != nil {
		return err
	}
	*state = *copied
	return nil
}

// SetState restores the world from a snapshot, migrating older shapes.
func (d *Dispatcher) SetState(state *sim.State, _ *struct{}) error {
	defer d.sm.lg.CatchAndReportCrash()
	if state == nil {
		return ErrInvalidSnapshot
	}
	d.sm.sim.SetState(state)
	return nil
}
