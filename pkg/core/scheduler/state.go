package scheduler

import "time"

// timeOffShiftID marks a date blocked by time off in AssignedShifts.
// Real shift IDs are always positive.
const timeOffShiftID = 0

// EmployeeState tracks one employee's accumulated scheduling state over
// a single run. Created zeroed at the start of a run, mutated only as
// the engine commits assignments, and discarded at the end.
type EmployeeState struct {
	WeeklyHours           float64
	ConsecutiveDaysWorked int
	LastDayOff            *time.Time

	// AssignedShifts maps date keys ("2006-01-02") to the shift ID
	// assigned on that date
	AssignedShifts map[string]int
}

// InitStates creates zeroed scheduling state for every employee
func InitStates(employees []Employee) map[string]*EmployeeState {
	states := make(map[string]*EmployeeState, len(employees))
	for _, e := range employees {
		states[e.ID] = &EmployeeState{
			AssignedShifts: make(map[string]int),
		}
	}
	return states
}

// RecordAssignment commits one assignment into the state
func (s *EmployeeState) RecordAssignment(date time.Time, shiftID int, durationHours float64) {
	s.AssignedShifts[dateKey(date)] = shiftID
	s.WeeklyHours += durationHours
	s.ConsecutiveDaysWorked++
}

// RolloverDay closes out a day. A day with no work resets the
// consecutive-days counter and records the day off.
func (s *EmployeeState) RolloverDay(date time.Time, workedToday bool) {
	if !workedToday {
		s.ConsecutiveDaysWorked = 0
		dayOff := truncateDay(date)
		s.LastDayOff = &dayOff
	}
}

// ResetWeeklyHoursIfNewWeek zeroes the weekly-hours accumulator when date
// begins a new calendar week. Weeks start on Sunday. The engine applies
// this to every employee at the same point in the day loop so no
// employee's week is skewed.
func (s *EmployeeState) ResetWeeklyHoursIfNewWeek(date time.Time) {
	if date.Weekday() == time.Sunday {
		s.WeeklyHours = 0
	}
}

// BlockTimeOff marks every date in the request's inclusive range as
// occupied so the employee is never considered for those days.
// Requests for unknown employees are ignored.
func BlockTimeOff(states map[string]*EmployeeState, requests []TimeOffRequest) {
	for _, req := range requests {
		state, ok := states[req.EmployeeID]
		if !ok {
			continue
		}
		for d := truncateDay(req.StartDate); !d.After(truncateDay(req.EndDate)); d = d.AddDate(0, 0, 1) {
			state.AssignedShifts[dateKey(d)] = timeOffShiftID
		}
	}
}
