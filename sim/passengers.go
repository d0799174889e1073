// sim/passengers.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import "time"

// Terminal throughput is quoted per agent (or guard) per hour; queue
// math runs in fractional passengers per one-second tick.
const tick = time.Second

// updatePassengerFlow accumulates passengers into the check-in queue
// for every passenger departure inside its arrival window, drains both
// queues at the staffed rate, and settles the tick's queue penalty and
// amenity income.
func (s *Sim) updatePassengerFlow() {
	state := s.State
	now := state.SimTime

	var arriving float64
	for _, f := range state.Flights {
		if f.Direction != DirectionDeparture || f.IsCargo || f.DepartureTime.IsZero() {
			continue
		}
		windowStart := f.DepartureTime.Add(-PassengerArrivalWindow)
		windowEnd := f.DepartureTime.Add(-PassengerArrivalCutoff)
		if !now.Before(windowStart) && now.Before(windowEnd) {
			window := windowEnd.Sub(windowStart)
			arriving += float64(f.Passengers) * float64(tick) / float64(window)
		}
	}
	state.CheckInQueue += arriving

	checkInPerHour := float64(state.Personnel[RoleCheckInAgent] * state.CheckInDesks.CapacityPerAgent)
	checkedIn := min(state.CheckInQueue, checkInPerHour/3600)
	state.CheckInQueue -= checkedIn
	state.SecurityQueue += checkedIn

	securityPerHour := float64(state.Personnel[RoleSecurityGuard] * state.SecurityLanes.Capacity)
	cleared := min(state.SecurityQueue, securityPerHour/3600)
	state.SecurityQueue -= cleared

	penalty := (state.CheckInQueue + state.SecurityQueue) * QueueSatisfactionPenalty
	state.adjustSatisfaction(-float32(penalty))

	if cleared > 0 {
		s.applyAmenityIncome(cleared)
	}
}

func (s *Sim) applyAmenityIncome(cleared float64) {
	state := s.State
	var income float64
	var satBonus float32
	for _, a := range state.Amenities {
		def := amenityLevel(a.Type, a.Level)
		if def == nil {
			continue
		}
		income += cleared * def.IncomePerPassenger
		satBonus += def.SatisfactionBonus
	}
	state.Money += income
	state.adjustSatisfaction(satBonus)
}

type AmenityLevel struct {
	Cost               float64
	IncomePerPassenger float64
	SatisfactionBonus  float32
}

var AmenityUpgrades = map[AmenityType][]AmenityLevel{
	AmenityRetail: {
		{Cost: 90000, IncomePerPassenger: 5, SatisfactionBonus: 0.001},
		{Cost: 180000, IncomePerPassenger: 12, SatisfactionBonus: 0.002},
		{Cost: 350000, IncomePerPassenger: 25, SatisfactionBonus: 0.004},
	},
	AmenityFoodCourt: {
		{Cost: 120000, IncomePerPassenger: 8, SatisfactionBonus: 0.002},
		{Cost: 240000, IncomePerPassenger: 18, SatisfactionBonus: 0.004},
		{Cost: 480000, IncomePerPassenger: 35, SatisfactionBonus: 0.008},
	},
}

// amenityLevel returns the definition for an amenity's current level,
// or nil if the level is out of range.
func amenityLevel(t AmenityType, level int) *AmenityLevel {
	levels := AmenityUpgrades[t]
	if level < 1 || level > len(levels) {
		return nil
	}
	return &levels[level-1]
}
