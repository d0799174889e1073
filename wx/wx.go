// wx/wx.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package wx models the little weather the simulation cares about: a
// current condition and temperature, decoded from the WMO weather codes
// that the external observation feed reports.
package wx

import (
	"fmt"
)

type Condition int

const (
	Sunny Condition = iota
	Cloudy
	Rainy
	Stormy
	Foggy
	Snowy
)

func (c Condition) String() string {
	return [...]string{"Sunny", "Cloudy", "Rainy", "Stormy", "Foggy", "Snowy"}[c]
}

// Weather is the observation consumed by the sim; it never fetches
// anything itself, the observation arrives via an UpdateWeather command.
type Weather struct {
	Condition    Condition
	TemperatureC int
	// DelayChance is the per-operation probability of a weather delay,
	// derived from the condition.
	DelayChance float32
}

func Make(c Condition, tempC int) Weather {
	return Weather{Condition: c, TemperatureC: tempC, DelayChance: DelayChance(c)}
}

func DelayChance(c Condition) float32 {
	switch c {
	case Sunny:
		return 0.05
	case Cloudy:
		return 0.1
	case Rainy:
		return 0.3
	case Stormy:
		return 0.8
	case Foggy:
		return 0.6
	case Snowy:
		return 0.7
	default:
		return 0.05
	}
}

// DeicingRequired reports whether departures must be de-iced before
// takeoff: cold plus any form of precipitation or fog.
func (w Weather) DeicingRequired() bool {
	if w.TemperatureC > 3 {
		return false
	}
	switch w.Condition {
	case Rainy, Snowy, Foggy:
		return true
	default:
		return false
	}
}

// DecodeWMO maps a WMO 4677 present-weather code from the observation
// feed to a Condition.  Codes not in the table decode as Cloudy.
func DecodeWMO(code int) Condition {
	switch code {
	case 0:
		return Sunny
	case 1, 2, 3:
		return Cloudy
	case 45, 48:
		return Foggy
	case 51, 53, 55, 56, 57, 61, 63, 65, 66, 67, 80, 81, 82:
		return Rainy
	case 71, 73, 75, 77, 85, 86:
		return Snowy
	case 95, 96, 99:
		return Stormy
	default:
		return Cloudy
	}
}

func (w Weather) String() string {
	return fmt.Sprintf("%s %d°C", w.Condition, w.TemperatureC)
}
