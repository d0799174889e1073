// server/http.go
// Copyright(c) 2025 tarmac contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package server

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"net/http/pprof"
	"runtime"
	"strconv"
	"text/template"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

type serverStats struct {
	Uptime           time.Duration
	AllocMemory      uint64
	TotalAllocMemory uint64
	SysMemory        uint64
	NumGC            uint32
	NumGoRoutines    int
	CPUUsage         int

	Airport airportStatus
}

///////////////////////////////////////////////////////////////////////////
// Status / statistics via HTTP...

func (sm *SimManager) launchHTTPServer() {
	mux := http.NewServeMux()

	mux.HandleFunc("/sup", func(w http.ResponseWriter, r *http.Request) {
		sm.statsHandler(w, r)
		sm.lg.Infof("%s: served stats request", r.URL.String())
	})

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	var listener net.Listener
	var err error
	for i := 0; i < 10; i++ {
		port := sm.httpPort + i
		if listener, err = net.Listen("tcp", ":"+strconv.Itoa(port)); err == nil {
			sm.httpPort = port
			fmt.Printf("Launching HTTP server on port %d\n", port)
			break
		}
	}

	if err != nil {
		sm.lg.Warnf("Unable to start HTTP server")
	} else {
		go func() {
			if err := http.Serve(listener, mux); err != nil {
				sm.lg.Errorf("HTTP server error: %v", err)
			}
		}()
	}
}

type airportStatus struct {
	SimTime       string
	Money         string
	Reputation    float32
	Satisfaction  float32
	Weather       string
	Flights       int
	ActiveFlights int
	Gates         int
	CargoBays     int
	Vehicles      int
	Contracts     int
	Routes        int
	SnowDepth     float64
	RunwayOpen    bool
}

func (sm *SimManager) getAirportStatus() airportStatus {
	state, err := sm.sim.CopyState()
	if err != nil {
		sm.lg.Errorf("status state copy: %v", err)
		return airportStatus{}
	}
	return airportStatus{
		SimTime:       state.SimTime.Format(time.RFC1123),
		Money:         fmt.Sprintf("$%.0f", state.Money),
		Reputation:    state.Reputation,
		Satisfaction:  state.PassengerSatisfaction,
		Weather:       state.Weather.String(),
		Flights:       len(state.Flights),
		ActiveFlights: state.ActiveFlightCount(),
		Gates:         len(state.Gates),
		CargoBays:     len(state.CargoBays),
		Vehicles:      len(state.Vehicles),
		Contracts:     len(state.ActiveContracts),
		Routes:        len(state.ActiveRoutes),
		SnowDepth:     state.RunwaySnowDepth,
		RunwayOpen:    !state.RunwayBlocked,
	}
}

var statsTemplate = template.Must(template.New("").Parse(`
<!DOCTYPE html>
<html>
<head>
<title>tarmac tower</title>
</head>
<style>
table {
  border-collapse: collapse;
  width: 100%;
}

th, td {
  border: 1px solid #dddddd;
  padding: 8px;
  text-align: left;
}

tr:nth-child(even) {
  background-color: #f2f2f2;
}
</style>
<body>
<h1>Server Status</h1>
<ul>
  <li>Uptime: {{.Uptime}}</li>
  <li>CPU usage: {{.CPUUsage}}%</li>
  <li>Allocated memory: {{.AllocMemory}} MB</li>
  <li>Total allocated memory: {{.TotalAllocMemory}} MB</li>
  <li>System memory: {{.SysMemory}} MB</li>
  <li>Garbage collection passes: {{.NumGC}}</li>
  <li>Running goroutines: {{.NumGoRoutines}}</li>
</ul>

<h1>Airport Status</h1>
<table>
  <tr><th>Sim Time</th><td>{{.Airport.SimTime}}</td></tr>
  <tr><th>Money</th><td>{{.Airport.Money}}</td></tr>
  <tr><th>Reputation</th><td>{{printf "%.1f" .Airport.Reputation}}</td></tr>
  <tr><th>Passenger Satisfaction</th><td>{{printf "%.1f" .Airport.Satisfaction}}</td></tr>
  <tr><th>Weather</th><td>{{.Airport.Weather}}</td></tr>
  <tr><th>Flights (active)</th><td>{{.Airport.Flights}} ({{.Airport.ActiveFlights}})</td></tr>
  <tr><th>Gates / Cargo Bays</th><td>{{.Airport.Gates}} / {{.Airport.CargoBays}}</td></tr>
  <tr><th>Vehicles</th><td>{{.Airport.Vehicles}}</td></tr>
  <tr><th>Active Contracts</th><td>{{.Airport.Contracts}}</td></tr>
  <tr><th>Active Routes</th><td>{{.Airport.Routes}}</td></tr>
  <tr><th>Runway Snow</th><td>{{printf "%.1f" .Airport.SnowDepth}} cm</td></tr>
  <tr><th>Runway Open</th><td>{{.Airport.RunwayOpen}}</td></tr>
</table>

</body>
</html>
`))

func (sm *SimManager) statsHandler(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	usage, _ := cpu.Percent(time.Second, false)
	var cpuUsage int
	if len(usage) > 0 {
		cpuUsage = int(math.Round(usage[0]))
	}

	stats := serverStats{
		Uptime:           time.Since(sm.startTime).Round(time.Second),
		AllocMemory:      m.Alloc / (1024 * 1024),
		TotalAllocMemory: m.TotalAlloc / (1024 * 1024),
		SysMemory:        m.Sys / (1024 * 1024),
		NumGC:            m.NumGC,
		NumGoRoutines:    runtime.NumGoroutine(),
		CPUUsage:         cpuUsage,

		Airport: sm.getAirportStatus(),
	}

	statsTemplate.Execute(w, stats)
}
