// sim/personnel.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

type StaffRole int

const (
	RoleAirTrafficController StaffRole = iota
	RoleMaintenanceTechnician
	RoleCheckInAgent
	RoleBaggageHandler
	RolePassengerServiceAgent
	RoleSecurityGuard
	RoleWarehouseOperative
	RoleLogistician
	RoleMarketingSpecialist
	RoleAdministrator
	RoleHRManager
	NumStaffRoles
)

func (r StaffRole) String() string {
	return [...]string{"air traffic controller", "maintenance technician", "check-in agent",
		"baggage handler", "passenger service agent", "security guard",
		"warehouse operative", "logistician", "marketing specialist",
		"administrator", "HR manager"}[r]
}

var AllStaffRoles = []StaffRole{
	RoleAirTrafficController, RoleMaintenanceTechnician, RoleCheckInAgent,
	RoleBaggageHandler, RolePassengerServiceAgent, RoleSecurityGuard,
	RoleWarehouseOperative, RoleLogistician, RoleMarketingSpecialist,
	RoleAdministrator, RoleHRManager,
}

var MonthlySalary = map[StaffRole]float64{
	RoleAirTrafficController:  8000,
	RoleMaintenanceTechnician: 5000,
	RoleCheckInAgent:          3000,
	RoleBaggageHandler:        3000,
	RolePassengerServiceAgent: 4000,
	RoleSecurityGuard:         3200,
	RoleWarehouseOperative:    3500,
	RoleLogistician:           7000,
	RoleMarketingSpecialist:   6000,
	RoleAdministrator:         7500,
	RoleHRManager:             9000,
}

// monthlyPayroll sums salary obligations across the current headcount.
func (s *State) monthlyPayroll() float64 {
	var total float64
	for role, n := range s.Personnel {
		total += MonthlySalary[role] * float64(n)
	}
	return total
}
