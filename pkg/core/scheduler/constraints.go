package scheduler

import (
	"slices"
	"time"
)

// Policy constants consulted by the constraint predicates. These are
// fixed workload rules, not configuration.
const (
	// MaxWeeklyHours caps the hours any employee may work per calendar week
	MaxWeeklyHours = 40.0

	// MaxConsecutiveDays caps the number of working days without a day off
	MaxConsecutiveDays = 4

	// MinRestHours is the minimum rest required before a new shift
	MinRestHours = 8.0
)

// The predicates below are pure: they read state and inputs, never
// mutate them, and never fail.

// ExceedsWeeklyHourLimit reports whether adding a shift of the given
// duration would push the employee past the weekly-hour cap
func ExceedsWeeklyHourLimit(state *EmployeeState, shiftDurationHours float64) bool {
	return state.WeeklyHours+shiftDurationHours > MaxWeeklyHours
}

// IsPatternAdherent reports whether the employee can work another day
// without breaking the consecutive-days cap. This models pattern
// adherence as a simple run-length rule; it does not yet understand
// specific pattern shapes such as 4x10.
func IsPatternAdherent(state *EmployeeState) bool {
	return state.ConsecutiveDaysWorked < MaxConsecutiveDays
}

// IsAlreadyAssignedOnDate reports whether the employee already holds an
// assignment (or time off) on the given date
func IsAlreadyAssignedOnDate(state *EmployeeState, date time.Time) bool {
	_, ok := state.AssignedShifts[dateKey(date)]
	return ok
}

// HasSufficientRest reports whether enough time has passed since the
// employee's last recorded day off for them to start the candidate
// shift. With no day off on record the employee is always eligible.
// This is a simplified stand-in for a full rest-period policy.
func HasSufficientRest(state *EmployeeState, shiftStart time.Time) bool {
	if state.LastDayOff == nil {
		return true
	}
	return shiftStart.Sub(*state.LastDayOff).Hours() >= MinRestHours
}

// IsQualified reports whether the employee holds every qualification the
// shift requires. A shift with no requirements accepts anyone.
func IsQualified(employee Employee, shift Shift) bool {
	for _, q := range shift.RequiredQualifications {
		if !slices.Contains(employee.Qualifications, q) {
			return false
		}
	}
	return true
}

// IsAvailable reports whether at least one of the employee's
// availability windows fully contains the shift
func IsAvailable(employee Employee, shift Shift) bool {
	for _, window := range employee.Availability {
		if window.Contains(shift.StartTime) && window.Contains(shift.EndTime) {
			return true
		}
	}
	return false
}
