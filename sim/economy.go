// sim/economy.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"time"

	"github.com/tarmac-sim/tarmac/util"
)

// applyCalendar handles everything keyed to wall-calendar boundaries
// and slow periodic processes: daily income and reputation drift,
// monthly payroll, the fuel price walk, fuel deliveries, logistics
// pickups, passive vehicle repair, the controller capacity check, HR
// automation, and contract expiry.
func (s *Sim) applyCalendar() {
	s.processDaily()
	s.processPayroll()
	s.processFuelDeliveries()
	s.processLogisticsPickups()
	s.processMaintenance()
	s.processATCCapacity()
	s.processHRAutomation()
	s.processContractExpiry()
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (s *Sim) processDaily() {
	state := s.State
	today := startOfDay(state.SimTime)
	if !today.After(startOfDay(state.LastDayProcessed)) {
		return
	}

	var income float64
	var repDelta float32

	if state.ParkingLot.Level > 0 {
		income += float64(state.ParkingLot.Capacity) * state.ParkingLot.DailyFee * ParkingOccupancyFactor
	}
	for _, c := range state.ActiveContracts {
		repDelta += c.DailyReputationBonus
	}
	repDelta += float32(state.Personnel[RoleMarketingSpecialist]) * MarketingDailyReputation
	repDelta += float32(state.Personnel[RoleSecurityGuard]) * SecurityDailyReputation

	// Bounded random walk on the spot price.
	step := (s.Rand.Float64() - 0.5) * 2 * FuelPriceMaxDelta
	state.MarketFuelPrice = max(FuelPriceFloor, state.MarketFuelPrice+step)

	state.Money += income
	state.adjustReputation(repDelta)
	state.LastDayProcessed = today
}

func (s *Sim) processPayroll() {
	state := s.State
	if state.SimTime.Month() == state.LastSalaryPayment.Month() &&
		state.SimTime.Year() == state.LastSalaryPayment.Year() {
		return
	}

	total := state.monthlyPayroll()
	if state.Money < total {
		state.adjustReputation(-MissedSalaryReputation)
		s.postNotification(SeverityError, "Could not pay monthly staff salaries! Major reputation loss.")
	} else {
		state.Money -= total
		s.postNotification(SeverityInfo, fmt.Sprintf("Paid monthly salaries of $%.0f.", total))
	}
	state.LastSalaryPayment = state.SimTime
}

func (s *Sim) processFuelDeliveries() {
	state := s.State
	var arrived float64
	pending := state.FuelDeliveries[:0]
	for _, d := range state.FuelDeliveries {
		if !state.SimTime.Before(d.ArrivesAt) {
			arrived += d.Amount
		} else {
			pending = append(pending, d)
		}
	}
	if arrived > 0 {
		state.Fuel = min(state.FuelStorage.Capacity, state.Fuel+arrived)
		state.FuelDeliveries = pending
		s.postNotification(SeveritySuccess, fmt.Sprintf("%.0fL of fuel delivered.", arrived))
	}
}

// storePackages deposits a cargo turnaround's load into the warehouse,
// bounded by its capacity.
func (s *State) storePackages(f *Flight, now time.Time) {
	room := s.CargoWarehouse.Capacity - len(s.CargoWarehouse.Packages)
	n := min(cargoPackagesPerPlane[f.PlaneSize], room)
	for i := 0; i < n; i++ {
		s.CargoWarehouse.Packages = append(s.CargoWarehouse.Packages, CargoPackage{
			ID:         fmt.Sprintf("%s-p%d", f.ID, i),
			ArrivedAt:  now,
			ContractID: f.ContractID,
		})
	}
}

func (s *Sim) processLogisticsPickups() {
	state := s.State
	now := state.SimTime

	state.LogisticsTrucks = util.FilterSliceInPlace(state.LogisticsTrucks,
		func(t LogisticsTruck) bool { return t.DepartsAt.After(now) })

	contracts := state.contractsOfType(ContractLogistics)
	if len(contracts) == 0 || len(state.CargoWarehouse.Packages) == 0 {
		return
	}
	if now.Sub(state.LastLogisticsPickup) <= LogisticsPickupInterval {
		return
	}

	toCollect := LogisticsPickupPerOffer * len(contracts)
	forkliftBonus := 1 + float64(state.countVehicles(VehicleForklift))*ForkliftHandlingBonus
	warehouseBonus := 1 + float64(state.Personnel[RoleWarehouseOperative])*WarehouseOperativeBonus
	toCollect = int(float64(toCollect) * forkliftBonus * warehouseBonus)
	toCollect = min(toCollect, len(state.CargoWarehouse.Packages))

	if toCollect > 0 {
		state.CargoWarehouse.Packages = state.CargoWarehouse.Packages[toCollect:]

		var revenue float64
		logisticianBonus := 1 + float64(state.Personnel[RoleLogistician])*LogisticianRevenueBonus
		perContract := float64(toCollect) / float64(len(contracts))
		for _, c := range contracts {
			rate := c.PickupRatePerPackage
			if rate == 0 {
				rate = DefaultPickupRatePerPkg
			}
			revenue += rate * perContract * logisticianBonus
			state.NextTruckSeq++
			state.LogisticsTrucks = append(state.LogisticsTrucks, LogisticsTruck{
				ID:         fmt.Sprintf("T%d", state.NextTruckSeq),
				ContractID: c.ID,
				DepartsAt:  now.Add(LogisticsTruckLinger),
			})
		}
		state.Money += revenue
		s.postNotification(SeveritySuccess,
			fmt.Sprintf("Logistics partners picked up %d packages for $%.0f.", toCollect, revenue))
	}
	state.LastLogisticsPickup = now
}

func (s *State) countVehicles(t VehicleType) int {
	var n int
	for _, v := range s.Vehicles {
		if v.Type == t {
			n++
		}
	}
	return n
}

func (s *Sim) processMaintenance() {
	repair := float64(s.State.Personnel[RoleMaintenanceTechnician]) * MaintenanceRepairRate
	if repair == 0 {
		return
	}
	for _, v := range s.State.Vehicles {
		if !v.Busy && v.Health < 100 {
			v.Health = min(100, v.Health+repair)
		}
	}
}

func (s *Sim) processATCCapacity() {
	state := s.State
	var active int
	for _, f := range state.Flights {
		switch f.Status {
		case FlightInAir, FlightLanded, FlightTaxiing, FlightDeparting,
			FlightPushback, FlightDeicing, FlightEmergencyLanding:
			active++
		}
	}
	capacity := state.Personnel[RoleAirTrafficController] * FlightsPerController
	if active > capacity {
		state.adjustReputation(-ATCOverloadReputation)
		state.adjustSatisfaction(-ATCOverloadSatisfaction)
	}
}

// processHRAutomation keeps the controller headcount near one per two
// stands when an HR manager runs the department.
func (s *Sim) processHRAutomation() {
	state := s.State
	if !state.HRAutomation || state.Personnel[RoleHRManager] == 0 {
		return
	}
	target := (len(state.Gates) + len(state.CargoBays) + 1) / 2
	have := state.Personnel[RoleAirTrafficController]
	if have < target {
		// Hiring costs one month's salary up front, same as a manual hire.
		if state.Money >= MonthlySalary[RoleAirTrafficController] {
			state.Money -= MonthlySalary[RoleAirTrafficController]
			state.Personnel[RoleAirTrafficController]++
		}
	} else if have > target+1 {
		state.Personnel[RoleAirTrafficController]--
	}
}

// processContractExpiry offers renewals as contracts near their end and
// drops the ones that lapse.
func (s *Sim) processContractExpiry() {
	state := s.State
	now := state.SimTime
	var lapsed []ContractID

	for _, c := range state.ActiveContracts {
		if !c.RenewalOffered && now.After(c.ExpiresAt.Add(-RenewalOfferLeadTime)) && now.Before(c.ExpiresAt) {
			c.RenewalOffered = true
			s.postNotification(SeverityInfo,
				fmt.Sprintf("Contract %q expires soon. A renewal offer is on the table.", c.Name))
		}
		if now.After(c.ExpiresAt) {
			lapsed = append(lapsed, c.ID)
			s.postNotification(SeverityWarning,
				fmt.Sprintf("Contract %q has expired.", c.Name))
		}
	}
	for _, id := range lapsed {
		state.removeContract(id)
	}
}
