// sim/contracts.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"time"

	"github.com/tarmac-sim/tarmac/util"
)

type ContractType int

const (
	ContractAirline ContractType = iota
	ContractFuelSupplier
	ContractTransport
	ContractLogistics
)

func (t ContractType) String() string {
	return [...]string{"airline", "fuel supplier", "transport", "logistics"}[t]
}

type AircraftModel struct {
	Model string
	Size  PlaneSize
}

type Airline struct {
	ID        AirlineID
	Name      string
	CargoOnly bool
	Fleet     []AircraftModel
}

// Airlines is the static roster; contracts unlock entries for route
// generation.
var Airlines = map[AirlineID]*Airline{
	"ryanair": {ID: "ryanair", Name: "Ryanair", Fleet: []AircraftModel{
		{"B737-800", PlaneMedium}, {"B737 MAX 8", PlaneMedium}, {"A320", PlaneMedium}}},
	"lufthansa": {ID: "lufthansa", Name: "Lufthansa", Fleet: []AircraftModel{
		{"A320neo", PlaneMedium}, {"A321neo", PlaneMedium}, {"A350-900", PlaneLarge}, {"B747-8", PlaneLarge}}},
	"emirates": {ID: "emirates", Name: "Emirates", Fleet: []AircraftModel{
		{"A380-800", PlaneLarge}, {"B777-300ER", PlaneLarge}}},
	"wizzair": {ID: "wizzair", Name: "Wizz Air", Fleet: []AircraftModel{
		{"A320-200", PlaneMedium}, {"A321neo", PlaneMedium}}},
	"fedex": {ID: "fedex", Name: "FedEx Express", CargoOnly: true, Fleet: []AircraftModel{
		{"ATR 72", PlaneSmall}, {"B757-200F", PlaneMedium}, {"MD-11F", PlaneLarge}, {"B777F", PlaneLarge}}},
	"delta": {ID: "delta", Name: "Delta Air Lines", Fleet: []AircraftModel{
		{"A220-300", PlaneSmall}, {"A321", PlaneMedium}, {"A350-900", PlaneLarge}}},
	"american": {ID: "american", Name: "American Airlines", Fleet: []AircraftModel{
		{"B737-800", PlaneMedium}, {"B787-9", PlaneLarge}}},
	"klm": {ID: "klm", Name: "KLM", Fleet: []AircraftModel{
		{"E195-E2", PlaneSmall}, {"B737-800", PlaneMedium}, {"B787-10", PlaneLarge}}},
	"dhl": {ID: "dhl", Name: "DHL Aviation", CargoOnly: true, Fleet: []AircraftModel{
		{"B757-200PCF", PlaneMedium}, {"B767-300F", PlaneMedium}, {"A330-200F", PlaneLarge}}},
}

// Cities are candidate endpoints for generated routes.
var Cities = []string{
	"New York", "London", "Paris", "Tokyo", "Sydney", "Dubai", "Singapore",
	"Los Angeles", "Chicago", "Hong Kong", "Frankfurt", "Warsaw", "Dublin",
	"Budapest", "Amsterdam", "Atlanta", "Dallas",
}

// ContractTemplate is a static offer from the catalog.
type ContractTemplate struct {
	ID                   ContractID
	Type                 ContractType
	Name                 string
	Cost                 float64
	Duration             time.Duration
	ReputationRequired   float32
	AirlineID            AirlineID
	Penalty              float64
	BasePricePerLiter    float64
	DailyReputationBonus float32
	PickupRatePerPackage float64
}

func days(n int) time.Duration { return time.Duration(n) * 24 * time.Hour }

var ContractCatalog = []ContractTemplate{
	{ID: "c1", Type: ContractAirline, Name: "Wizz Air Agreement", Cost: 15000, Duration: days(14), ReputationRequired: 0, AirlineID: "wizzair", Penalty: 5000},
	{ID: "c2", Type: ContractAirline, Name: "Ryanair Partnership", Cost: 30000, Duration: days(30), ReputationRequired: 25, AirlineID: "ryanair", Penalty: 15000},
	{ID: "c3", Type: ContractAirline, Name: "FedEx Cargo Hub", Cost: 60000, Duration: days(30), ReputationRequired: 40, AirlineID: "fedex", Penalty: 30000},
	{ID: "c4", Type: ContractAirline, Name: "Lufthansa Alliance", Cost: 120000, Duration: days(30), ReputationRequired: 65, AirlineID: "lufthansa", Penalty: 50000},
	{ID: "c5", Type: ContractAirline, Name: "Emirates Luxury Routes", Cost: 250000, Duration: days(60), ReputationRequired: 80, AirlineID: "emirates", Penalty: 100000},
	{ID: "c6", Type: ContractAirline, Name: "Delta Domestic Hub", Cost: 80000, Duration: days(30), ReputationRequired: 50, AirlineID: "delta", Penalty: 40000},
	{ID: "c7", Type: ContractAirline, Name: "American Airlines Routes", Cost: 95000, Duration: days(30), ReputationRequired: 55, AirlineID: "american", Penalty: 45000},
	{ID: "c8", Type: ContractAirline, Name: "KLM European Gateway", Cost: 70000, Duration: days(30), ReputationRequired: 45, AirlineID: "klm", Penalty: 35000},
	{ID: "c9", Type: ContractAirline, Name: "DHL Global Cargo", Cost: 150000, Duration: days(45), ReputationRequired: 60, AirlineID: "dhl", Penalty: 70000},

	{ID: "fs1", Type: ContractFuelSupplier, Name: "FuelFast Standard Contract", Duration: days(30), ReputationRequired: 10, BasePricePerLiter: 2.30},
	{ID: "fs2", Type: ContractFuelSupplier, Name: "PetroGlobal Bulk Agreement", Duration: days(60), ReputationRequired: 45, BasePricePerLiter: 2.15},
	{ID: "fs3", Type: ContractFuelSupplier, Name: "EcoFuel Green Initiative", Cost: 10000, Duration: days(30), ReputationRequired: 30, BasePricePerLiter: 2.40, DailyReputationBonus: 0.2},

	{ID: "t1", Type: ContractTransport, Name: "City Bus Connection", Cost: 40000, Duration: days(30), ReputationRequired: 40, DailyReputationBonus: 0.5},
	{ID: "t2", Type: ContractTransport, Name: "Airport Express Train", Cost: 250000, Duration: days(60), ReputationRequired: 70, DailyReputationBonus: 1.5},

	{ID: "l1", Type: ContractLogistics, Name: "InPost Parcel Service", Cost: 10000, Duration: days(30), ReputationRequired: 20, Penalty: 2000, PickupRatePerPackage: 250},
	{ID: "l2", Type: ContractLogistics, Name: "UPS Ground Contract", Cost: 45000, Duration: days(60), ReputationRequired: 50, Penalty: 10000, PickupRatePerPackage: 320},
}

func contractTemplate(id ContractID) *ContractTemplate {
	for i := range ContractCatalog {
		if ContractCatalog[i].ID == id {
			return &ContractCatalog[i]
		}
	}
	return nil
}

// ActiveContract is a signed catalog entry with its runtime terms.
// Satisfaction tracks how reliably the airport has honored the
// contract's flights; it drives proposal frequency and renewal value.
type ActiveContract struct {
	ContractTemplate
	SignedAt       time.Time
	ExpiresAt      time.Time
	Satisfaction   float32 // [0,100]
	RenewalOffered bool
}

func (c *ActiveContract) adjustSatisfaction(delta float32) {
	c.Satisfaction = util.Clamp(c.Satisfaction+delta, 0, 100)
}

func (s *State) contractsOfType(t ContractType) []*ActiveContract {
	return util.FilterSlice(s.ActiveContracts, func(c *ActiveContract) bool { return c.Type == t })
}

// fuelPricePerLiter is the best contracted rate, or the market spot
// price with no supplier under contract.
func (s *State) fuelPricePerLiter() float64 {
	price := s.MarketFuelPrice
	for _, c := range s.contractsOfType(ContractFuelSupplier) {
		if c.BasePricePerLiter > 0 && c.BasePricePerLiter < price {
			price = c.BasePricePerLiter
		}
	}
	return price
}

func (s *State) removeContract(id ContractID) {
	s.ActiveContracts = util.FilterSliceInPlace(s.ActiveContracts,
		func(c *ActiveContract) bool { return c.ID != id })
	s.rebuildAvailableAirlines()
}

// rebuildAvailableAirlines recomputes the unlocked airline set from the
// active airline contracts.
func (s *State) rebuildAvailableAirlines() {
	s.AvailableAirlines = s.AvailableAirlines[:0]
	for _, c := range s.contractsOfType(ContractAirline) {
		if c.AirlineID != "" && !s.hasAirline(c.AirlineID) {
			s.AvailableAirlines = append(s.AvailableAirlines, c.AirlineID)
		}
	}
}
