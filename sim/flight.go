// sim/flight.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tarmac-sim/tarmac/rand"
)

type FlightStatus int

const (
	FlightScheduled FlightStatus = iota
	FlightInAir
	FlightLanded
	FlightTaxiing
	FlightArrivedAtGate
	FlightServicing
	FlightReadyForDeparture
	FlightBoarding
	FlightPushback
	FlightDeicing
	FlightDeparting
	FlightCancelled
	FlightEmergencyLanding
)

func (s FlightStatus) String() string {
	return [...]string{"Scheduled", "InAir", "Landed", "Taxiing", "ArrivedAtGate",
		"Servicing", "ReadyForDeparture", "Boarding", "Pushback", "Deicing",
		"Departing", "Cancelled", "EmergencyLanding"}[s]
}

type FlightDirection int

const (
	DirectionArrival FlightDirection = iota
	DirectionDeparture
)

func (d FlightDirection) String() string {
	if d == DirectionArrival {
		return "arrival"
	}
	return "departure"
}

type PlaneSize int

const (
	PlaneSmall PlaneSize = iota
	PlaneMedium
	PlaneLarge
)

func (p PlaneSize) String() string {
	return [...]string{"small", "medium", "large"}[p]
}

func (p PlaneSize) RevenueMultiplier() float64 {
	return [...]float64{1, 1.5, 2.5}[p]
}

var passengersPerPlane = map[PlaneSize]int{
	PlaneSmall:  50,
	PlaneMedium: 180,
	PlaneLarge:  400,
}

var cargoPackagesPerPlane = map[PlaneSize]int{
	PlaneSmall:  10,
	PlaneMedium: 25,
	PlaneLarge:  50,
}

// Flight is one aircraft visit: it arrives, turns around at a stand,
// and departs as the return leg of the same Flight value. NextEventTime
// is the lazy timer for the state machine; a tick before it leaves the
// flight untouched. It is serialized with the flight so that restored
// snapshots resume mid-transition.
type Flight struct {
	ID           FlightID
	FlightNumber string
	Direction    FlightDirection
	AirlineID    AirlineID
	Origin       string
	Destination  string
	ArrivalTime  time.Time
	// Zero until the turnaround sets it.
	DepartureTime      time.Time
	GateOccupancyStart time.Time
	Status             FlightStatus
	StandID            StandID
	PlaneModel         string
	PlaneSize          PlaneSize
	IsCargo            bool
	Popularity         int // 0-100
	ContractID         ContractID
	Passengers         int
	NextEventTime      time.Time
}

func (f *Flight) requiredServices() []VehicleType {
	if f.IsCargo {
		return cargoServices
	}
	return passengerServices
}

// rollPassengers picks a load at 80-100% of the airframe's capacity.
func rollPassengers(r *rand.Rand, size PlaneSize, isCargo bool) int {
	if isCargo {
		return 0
	}
	return int(float32(passengersPerPlane[size]) * (0.8 + 0.2*r.Float32()))
}

// nextFlightNumber increments the numeric part for the return leg.
func nextFlightNumber(airline AirlineID, current string) string {
	digits := strings.Map(func(c rune) rune {
		if c >= '0' && c <= '9' {
			return c
		}
		return -1
	}, current)
	n, err := strconv.Atoi(digits)
	if err != nil {
		n = 100
	}
	prefix := strings.ToUpper(string(airline))
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return fmt.Sprintf("%s%d", prefix, n+1)
}

// stepFlights runs the lifecycle state machine for every flight, using
// the tick's idle-vehicle pool for claims. Flights marked for removal
// are filtered at the end so that indices stay stable during the walk.
func (s *Sim) stepFlights(pool *vehiclePool) {
	state := s.State
	now := state.SimTime
	var removed []*Flight

	for _, f := range state.Flights {
		if f.Status != FlightScheduled && now.Before(f.NextEventTime) {
			continue
		}

		switch f.Status {
		case FlightScheduled:
			if now.After(f.ArrivalTime) && f.StandID == "" {
				s.cancelFlight(f)
				removed = append(removed, f)
			} else if f.StandID != "" && now.After(f.ArrivalTime.Add(-InboundActivationWindow)) {
				f.Status = FlightInAir
				f.NextEventTime = f.ArrivalTime
				s.postFlightStatus(f)
			}

		case FlightInAir:
			if f.Direction == DirectionDeparture {
				// Departed and past the cleanup delay.
				removed = append(removed, f)
				break
			}
			if state.RunwayBlocked {
				f.NextEventTime = now.Add(RunwayHoldRetryDelay)
				state.adjustSatisfaction(-DelaySatisfactionPenalty)
			} else {
				f.Status = FlightLanded
				f.NextEventTime = now
				s.postFlightStatus(f)
			}

		case FlightLanded:
			if v := pool.claim(VehicleFollowMe, f.ID); v != nil {
				f.Status = FlightTaxiing
				f.NextEventTime = now.Add(TaxiingDuration)
				s.postFlightStatus(f)
			} else {
				state.adjustReputation(-MissedFollowMeReputation)
				f.NextEventTime = now.Add(ResourceRetryDelay)
			}

		case FlightTaxiing:
			f.Status = FlightArrivedAtGate
			f.GateOccupancyStart = now
			state.releaseFlightVehicles(pool, f.ID, false)
			f.NextEventTime = now
			s.postFlightStatus(f)

		case FlightArrivedAtGate:
			if _, ok := pool.claimAll(f.requiredServices(), f.ID); ok {
				f.Status = FlightServicing
				f.NextEventTime = now.Add(ServicingDuration)
				s.postFlightStatus(f)
			} else {
				f.NextEventTime = now.Add(ResourceRetryDelay)
			}

		case FlightServicing:
			s.turnaround(f, pool)

		case FlightReadyForDeparture:
			f.Status = FlightBoarding
			f.NextEventTime = now.Add(BoardingDuration + s.boardingPenalty(f))
			s.postFlightStatus(f)

		case FlightBoarding:
			if f.StandID == "" {
				break
			}
			if v := pool.claim(VehiclePushback, f.ID); v != nil {
				f.Status = FlightPushback
				f.NextEventTime = now.Add(PushbackDuration)
				s.postFlightStatus(f)
			} else {
				state.adjustSatisfaction(-DelaySatisfactionPenalty)
				f.NextEventTime = now.Add(ResourceRetryDelay)
			}

		case FlightPushback:
			state.releaseFlightVehicles(pool, f.ID, false)
			if !state.Weather.DeicingRequired() {
				f.Status = FlightDeparting
				f.NextEventTime = now
				s.postFlightStatus(f)
			} else if v := pool.claim(VehicleDeicing, f.ID); v != nil {
				f.Status = FlightDeicing
				f.NextEventTime = now.Add(DeicingDuration)
				s.postFlightStatus(f)
			} else {
				state.adjustSatisfaction(-2 * DelaySatisfactionPenalty)
				f.NextEventTime = now.Add(ResourceRetryDelay)
			}

		case FlightDeicing:
			state.releaseFlightVehicles(pool, f.ID, false)
			f.Status = FlightDeparting
			f.NextEventTime = now
			s.postFlightStatus(f)

		case FlightDeparting:
			s.depart(f)

		case FlightEmergencyLanding:
			if now.After(state.RunwayBlockedUntil) {
				removed = append(removed, f)
			}
		}
	}

	for _, f := range removed {
		state.removeFlight(f)
	}
}

// cancelFlight marks a scheduled flight that never got a stand and
// applies the reputation and contract penalties.
func (s *Sim) cancelFlight(f *Flight) {
	f.Status = FlightCancelled
	s.State.adjustReputation(-CancelledFlightReputation)
	if c := s.State.ContractByID(f.ContractID); c != nil {
		c.adjustSatisfaction(-ContractSatisfactionPenalty)
	}
	s.postNotification(SeverityError,
		fmt.Sprintf("Flight %s cancelled (no gate assigned).", f.FlightNumber))
	s.postFlightStatus(f)
}

// turnaround converts a serviced arrival into its return departure:
// direction flips, endpoints swap, the flight number increments, and a
// fresh passenger load is rolled. Service vehicles are released with
// wear applied.
func (s *Sim) turnaround(f *Flight, pool *vehiclePool) {
	now := s.State.SimTime
	f.Direction = DirectionDeparture
	f.Origin, f.Destination = f.Destination, f.Origin
	f.FlightNumber = nextFlightNumber(f.AirlineID, f.FlightNumber)
	f.Status = FlightReadyForDeparture
	f.DepartureTime = now.Add(BoardingDuration + PushbackDuration)
	f.Passengers = rollPassengers(s.Rand, f.PlaneSize, f.IsCargo)
	s.State.releaseFlightVehicles(pool, f.ID, true)
	f.NextEventTime = now

	if f.IsCargo {
		s.State.storePackages(f, now)
	}
	s.postFlightStatus(f)
}

// boardingPenalty extends boarding when the terminal cannot process the
// passenger load, less a baggage-handler efficiency bonus. The bonus is
// bounded so the penalty can shrink but never invert.
func (s *Sim) boardingPenalty(f *Flight) time.Duration {
	if f.IsCargo {
		return 0
	}
	state := s.State
	checkIn := state.Personnel[RoleCheckInAgent] * max(state.CheckInDesks.CapacityPerAgent, 20)
	security := state.Personnel[RoleSecurityGuard] * state.SecurityLanes.Capacity

	var penalty time.Duration
	if min(checkIn, security) < f.Passengers {
		penalty = ServicingDuration / 2
		state.adjustSatisfaction(-2 * DelaySatisfactionPenalty)
	}
	bonus := time.Duration(float64(penalty) * float64(state.Personnel[RoleBaggageHandler]) * BaggageHandlerBonus)
	return penalty - min(bonus, 3*ServicingDuration/10)
}

// depart settles the flight's economics, releases its stand, and sends
// it back into the air with a short cleanup watermark before removal.
func (s *Sim) depart(f *Flight) {
	state := s.State
	sizeMult := f.PlaneSize.RevenueMultiplier()
	popularity := 1 + float64(f.Popularity-50)/100

	serviceBonus := 1.0
	if !f.IsCargo {
		serviceBonus = 1 + float64(state.Personnel[RolePassengerServiceAgent])*PassengerAgentBonus +
			float64(state.PassengerSatisfaction)/1000
	}

	revenue := (FlightRevenueBase + float64(CargoRevenueBonus)*boolToFloat(f.IsCargo)) *
		sizeMult * popularity * serviceBonus
	cost := FlightCostBase * sizeMult
	state.Money += revenue - cost
	state.adjustReputation(CompletedFlightReputation)

	if c := state.ContractByID(f.ContractID); c != nil {
		c.adjustSatisfaction(ContractSatisfactionBonus)
	}

	state.releaseStand(f)
	f.GateOccupancyStart = time.Time{}
	f.Status = FlightInAir
	f.NextEventTime = state.SimTime.Add(DepartedCleanupDelay)
	s.postNotification(SeveritySuccess,
		fmt.Sprintf("Flight %s departed to %s, net $%.0f.", f.FlightNumber, f.Destination, revenue-cost))
	s.postFlightStatus(f)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
