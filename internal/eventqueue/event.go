// Package eventqueue implements the kernel's min-heap of timestamped
// simulation events, with deterministic tie-breaking so that replaying the
// same seed produces the same event order.
package eventqueue

import "github.com/stickysnack/ev-fleet-sim/internal/core"

// Kind identifies the handler an event dispatches to.
type Kind int

// Event kinds in the fixed tie-break order authoritative at equal
// timestamps: update_status, update_priorities, vehicle_arrival,
// task_completion, battery_charged, vehicle_departure, assign_tasks.
const (
	KindUpdateStatus Kind = iota
	KindUpdatePriorities
	KindVehicleArrival
	KindTaskCompletion
	KindBatteryCharged
	KindVehicleDeparture
	KindAssignTasks
)

func (k Kind) String() string {
	switch k {
	case KindUpdateStatus:
		return "update_status"
	case KindUpdatePriorities:
		return "update_priorities"
	case KindVehicleArrival:
		return "vehicle_arrival"
	case KindTaskCompletion:
		return "task_completion"
	case KindBatteryCharged:
		return "battery_charged"
	case KindVehicleDeparture:
		return "vehicle_departure"
	case KindAssignTasks:
		return "assign_tasks"
	default:
		return "unknown"
	}
}

// kindOrder gives each kind's rank in the tie-break order; lower sorts
// first.
var kindOrder = map[Kind]int{
	KindUpdateStatus:     0,
	KindUpdatePriorities: 1,
	KindVehicleArrival:   2,
	KindTaskCompletion:   3,
	KindBatteryCharged:   4,
	KindVehicleDeparture: 5,
	KindAssignTasks:      6,
}

// Event is a single entry in the kernel's schedule.
type Event struct {
	Time    core.Minute
	Kind    Kind
	Vehicle core.VehicleID // payload for vehicle_arrival/departure
	Robot   core.RobotID   // payload for task_completion
	Battery core.BatteryID // payload for battery_charged

	seq   int64 // insertion order, for stable tie-break
	index int   // heap.Interface bookkeeping
}
