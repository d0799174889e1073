// sim/constants.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import "time"

// The home field. All arrivals terminate here and all departures leave
// from here; remote cities are flavor text on the other end of the route.
const HomeAirport = "EPKK"

// Ground-operation durations, in simulation time.
const (
	TaxiingDuration         = 5 * time.Minute
	ServicingDuration       = 45 * time.Minute
	BoardingDuration        = 20 * time.Minute
	PushbackDuration        = 3 * time.Minute
	DeicingDuration         = 7 * time.Minute
	DepartedCleanupDelay    = 5 * time.Minute
	RunwayHoldRetryDelay    = 5 * time.Minute
	ResourceRetryDelay      = 1 * time.Minute
	InboundActivationWindow = 2 * time.Hour
)

// Money.
const (
	InitialMoney      = 2_000_000
	FlightRevenueBase = 8000
	FlightCostBase    = 2000
	CargoRevenueBonus = 2000

	GateExpansionCost     = 150_000
	CargoBayExpansionCost = 180_000

	VehicleSellMultiplier   = 0.6
	VehicleRepairCostFactor = 0.004 // of purchase cost, per health point

	EmergencyReward = 100_000
)

// Reputation and satisfaction adjustments. Both scores are clamped to
// [0, 100] after every change.
const (
	InitialReputation            = 50
	InitialSatisfaction          = 80
	CompletedFlightReputation    = 0.1
	CancelledFlightReputation    = 2
	MissedFollowMeReputation     = 0.01
	RejectedProposalReputation   = 0.2
	TerminatedContractReputation = 5
	MissedSalaryReputation       = 10
	EmergencyReputationBonus     = 5
	EmergencyReputationPenalty   = 15

	ContractSatisfactionBonus   = 1.5
	ContractSatisfactionPenalty = 3

	DelaySatisfactionPenalty = 0.1
	// Penalty per queued passenger, applied every tick.
	QueueSatisfactionPenalty = 0.0001
)

// Passenger terminal.
const (
	PassengerArrivalWindow = 3 * time.Hour
	// Passengers stop showing up at the terminal this close to departure.
	PassengerArrivalCutoff = 30 * time.Minute
)

// Fuel market.
const (
	InitialFuelPrice  = 2.5
	FuelPriceFloor    = 1.0
	FuelPriceMaxDelta = 0.05 // daily random walk bound, either direction
	InitialFuel       = 50_000
)

// Environment.
const (
	SnowAccumulationRate     = 0.5 // cm per tick while snowing
	SnowClearingRate         = 2.5 // cm per tick while a snowplow works
	MaxSnowDepth             = 10  // cm; runway closes at this depth
	SnowplowDispatchDuration = 15 * time.Minute
	EmergencyRunwayBlock     = 30 * time.Minute
	// Chance per tick that some in-air passenger arrival declares an
	// emergency. The original tuning was per-minute; this is the
	// per-second equivalent.
	EmergencyProbability = 0.005 / 60
)

// Vehicles.
const (
	VehicleHealthDegradation = 2    // health lost per service performed
	MaintenanceRepairRate    = 0.05 // health per technician per tick, idle vehicles only
)

// Cargo logistics.
const (
	LogisticsPickupInterval  = 2 * time.Hour
	LogisticsPickupPerOffer  = 15 // packages per contract per pickup
	LogisticsTruckLinger     = 15 * time.Minute
	ForkliftHandlingBonus    = 0.15
	WarehouseOperativeBonus  = 0.10
	LogisticianRevenueBonus  = 0.05
	DefaultPickupRatePerPkg  = 250
)

// Staffing effects.
const (
	FlightsPerController      = 2
	ATCOverloadReputation     = 0.01
	ATCOverloadSatisfaction   = 0.02
	MarketingDailyReputation  = 0.05
	SecurityDailyReputation   = 0.02
	PassengerAgentBonus       = 0.005 // revenue multiplier per agent
	BaggageHandlerBonus       = 0.02  // boarding-penalty reduction per handler
	AdminDiscountPerHead      = 0.005
	AdminDiscountCap          = 0.25
)

// Route generation.
const (
	RouteLookaheadDays = 7
	RouteRegenInterval = 24 * time.Hour
	// Base chance per tick of a proposal per airline contract, before
	// satisfaction scaling; per-second equivalent of the original
	// per-minute tuning.
	ProposalProbability = 0.005 / 60
)

// Parking.
const ParkingOccupancyFactor = 0.8

// Contracts.
const (
	RenewalOfferLeadTime   = 5 * 24 * time.Hour
	RenewalDurationFactor  = 1.25
	RenewalCostFactor      = 0.5
)
