// Package snapshot converts a running simulator's live state into
// plain, JSON-friendly read views for external consumers: the HTTP/WS
// API in internal/api and the standalone viewer in cmd/evviewer. A
// snapshot is a copy, never a reference into the simulator's own maps,
// so a consumer holding one is immune to the kernel mutating state out
// from under it.
package snapshot

import (
	"github.com/stickysnack/ev-fleet-sim/internal/config"
	"github.com/stickysnack/ev-fleet-sim/internal/core"
	"github.com/stickysnack/ev-fleet-sim/internal/stats"
)

// VehicleView is one vehicle's externally visible state.
type VehicleView struct {
	ID             core.VehicleID `json:"id"`
	X              float64        `json:"x"`
	Y              float64        `json:"y"`
	Arrival        core.Minute    `json:"arrival"`
	Departure      core.Minute    `json:"departure"`
	CurrentEnergy  float64        `json:"current_energy"`
	RequiredEnergy float64        `json:"required_energy"`
	Priority       float64        `json:"priority"`
	Status         string         `json:"status"`
	AssignedRobot  core.RobotID   `json:"assigned_robot,omitempty"`
}

// RobotView is one robot's externally visible state.
type RobotView struct {
	ID            core.RobotID   `json:"id"`
	X             float64        `json:"x"`
	Y             float64        `json:"y"`
	HeldBattery   core.BatteryID `json:"held_battery,omitempty"`
	TargetVehicle core.VehicleID `json:"target_vehicle,omitempty"`
	Status        string         `json:"status"`
}

// BatteryView is one battery's externally visible state.
type BatteryView struct {
	ID            core.BatteryID `json:"id"`
	X             float64        `json:"x"`
	Y             float64        `json:"y"`
	CurrentCharge float64        `json:"current_charge"`
	Status        string         `json:"status"`
}

// Snapshot is a point-in-time read view of the whole simulation,
// everything an external viewer needs to render one frame.
type Snapshot struct {
	RunID      string        `json:"run_id"`
	Policy     config.Policy `json:"policy"`
	Minute     core.Minute   `json:"minute"`
	Vehicles   []VehicleView `json:"vehicles"`
	Robots     []RobotView   `json:"robots"`
	Batteries  []BatteryView `json:"batteries"`
	Stats      stats.Final   `json:"stats"`
}

// Source is the read-only subset of Simulator a snapshot needs; kept
// narrow so internal/api and internal/snapshot don't import each
// other's concrete types.
type Source interface {
	RunID() string
	PolicyName() config.Policy
	CurrentTime() core.Minute
	Vehicles() []*core.Vehicle
	Robots() []*core.Robot
	Batteries() []*core.Battery
	Stats() stats.Final
}

// Of builds a Snapshot from a live source.
func Of(s Source) Snapshot {
	vs := make([]VehicleView, 0, len(s.Vehicles()))
	for _, v := range s.Vehicles() {
		vs = append(vs, VehicleView{
			ID:             v.ID,
			X:              v.Pos.X,
			Y:              v.Pos.Y,
			Arrival:        v.Arrival,
			Departure:      v.Departure,
			CurrentEnergy:  v.CurrentEnergy,
			RequiredEnergy: v.RequiredEnergy,
			Priority:       v.Priority,
			Status:         v.Status.String(),
			AssignedRobot:  v.AssignedRobot,
		})
	}

	rs := make([]RobotView, 0, len(s.Robots()))
	for _, r := range s.Robots() {
		rs = append(rs, RobotView{
			ID:            r.ID,
			X:             r.Pos.X,
			Y:             r.Pos.Y,
			HeldBattery:   r.HeldBattery,
			TargetVehicle: r.TargetVehicle,
			Status:        r.Status.String(),
		})
	}

	bs := make([]BatteryView, 0, len(s.Batteries()))
	for _, b := range s.Batteries() {
		bs = append(bs, BatteryView{
			ID:            b.ID,
			X:             b.Pos.X,
			Y:             b.Pos.Y,
			CurrentCharge: b.CurrentCharge,
			Status:        b.Status.String(),
		})
	}

	return Snapshot{
		RunID:     s.RunID(),
		Policy:    s.PolicyName(),
		Minute:    s.CurrentTime(),
		Vehicles:  vs,
		Robots:    rs,
		Batteries: bs,
		Stats:     s.Stats(),
	}
}
