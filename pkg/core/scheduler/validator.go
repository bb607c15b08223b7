package scheduler

import (
	"fmt"
	"time"
)

// ValidationError describes one rule violation found in a generated
// schedule
type ValidationError struct {
	Date        string
	Rule        string
	Description string
}

// ValidateSchedule replays a schedule against the inputs it was
// generated from and reports every violation found: assignments outside
// the date range, unqualified or unavailable employees, double bookings,
// workload-cap breaches, insufficient rest, and coverage shortfalls
// against the day-driven contract. An empty slice means the schedule is
// clean.
func ValidateSchedule(input Input, schedule *Schedule) []ValidationError {
	var errs []ValidationError

	compiled, err := validateInput(input)
	if err != nil {
		return []ValidationError{{Rule: "input", Description: err.Error()}}
	}

	employeesByID := make(map[string]Employee, len(input.Employees))
	for _, e := range input.Employees {
		employeesByID[e.ID] = e
	}
	shiftsByID := make(map[int]Shift, len(input.Shifts))
	for _, s := range input.Shifts {
		shiftsByID[s.ID] = s
	}

	start := truncateDay(schedule.StartDate)
	end := truncateDay(schedule.EndDate)

	// byEmployeeDay and byShiftDay index the assignments for the replay
	// and coverage passes below
	byEmployeeDay := make(map[string]map[string]Shift)
	byShiftDay := make(map[string][]Employee)

	for _, a := range schedule.Assignments {
		day := truncateDay(a.Date)
		key := dateKey(day)

		if day.Before(start) || day.After(end) {
			errs = append(errs, ValidationError{
				Date: key, Rule: "date-range",
				Description: fmt.Sprintf("assignment for employee %s is outside the schedule range", a.EmployeeID),
			})
		}

		employee, knownEmployee := employeesByID[a.EmployeeID]
		if !knownEmployee {
			errs = append(errs, ValidationError{
				Date: key, Rule: "unknown-employee",
				Description: fmt.Sprintf("assignment references unknown employee %s", a.EmployeeID),
			})
			continue
		}
		shift, knownShift := shiftsByID[a.ShiftID]
		if !knownShift {
			errs = append(errs, ValidationError{
				Date: key, Rule: "unknown-shift",
				Description: fmt.Sprintf("assignment references unknown shift %d", a.ShiftID),
			})
			continue
		}

		if !IsQualified(employee, shift) {
			errs = append(errs, ValidationError{
				Date: key, Rule: "qualification",
				Description: fmt.Sprintf("employee %s lacks a qualification required by shift %s", employee.ID, shift.Name),
			})
		}
		if !IsAvailable(employee, shift) {
			errs = append(errs, ValidationError{
				Date: key, Rule: "availability",
				Description: fmt.Sprintf("employee %s is not available for shift %s", employee.ID, shift.Name),
			})
		}

		if byEmployeeDay[a.EmployeeID] == nil {
			byEmployeeDay[a.EmployeeID] = make(map[string]Shift)
		}
		if _, dup := byEmployeeDay[a.EmployeeID][key]; dup {
			errs = append(errs, ValidationError{
				Date: key, Rule: "double-booking",
				Description: fmt.Sprintf("employee %s is assigned more than one shift", employee.ID),
			})
		}
		byEmployeeDay[a.EmployeeID][key] = shift
		byShiftDay[shiftDayKey(a.ShiftID, day)] = append(byShiftDay[shiftDayKey(a.ShiftID, day)], employee)
	}

	errs = append(errs, replayWorkloadRules(input, byEmployeeDay, start, end)...)
	errs = append(errs, checkCoverage(input, compiled, byShiftDay, start, end)...)

	return errs
}

// replayWorkloadRules rebuilds each employee's scheduling state day by
// day and checks the workload predicates at every assignment
func replayWorkloadRules(input Input, byEmployeeDay map[string]map[string]Shift, start, end time.Time) []ValidationError {
	var errs []ValidationError

	states := InitStates(input.Employees)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := dateKey(day)
		for _, e := range input.Employees {
			state := states[e.ID]
			state.ResetWeeklyHoursIfNewWeek(day)

			shift, worked := byEmployeeDay[e.ID][key]
			if worked {
				if !IsPatternAdherent(state) {
					errs = append(errs, ValidationError{
						Date: key, Rule: "consecutive-days",
						Description: fmt.Sprintf("employee %s exceeds %d consecutive working days", e.ID, MaxConsecutiveDays),
					})
				}
				if ExceedsWeeklyHourLimit(state, shift.DurationHours) {
					errs = append(errs, ValidationError{
						Date: key, Rule: "weekly-hours",
						Description: fmt.Sprintf("employee %s exceeds %v weekly hours", e.ID, MaxWeeklyHours),
					})
				}
				if !HasSufficientRest(state, shiftStartOn(day, shift)) {
					errs = append(errs, ValidationError{
						Date: key, Rule: "rest",
						Description: fmt.Sprintf("employee %s has less than %v hours rest before shift %s", e.ID, MinRestHours, shift.Name),
					})
				}
				state.RecordAssignment(day, shift.ID, shift.DurationHours)
			}
			state.RolloverDay(day, worked)
		}
	}

	return errs
}

// checkCoverage verifies the day-driven coverage contract: on every day,
// each requirement with a matching shift has at least its minimum worker
// and supervisor counts assigned
func checkCoverage(input Input, compiled []compiledRequirement, byShiftDay map[string][]Employee, start, end time.Time) []ValidationError {
	var errs []ValidationError

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		for _, cr := range compiled {
			var shift Shift
			matched := false
			for _, s := range input.Shifts {
				if clockOf(s.StartTime) == cr.start {
					shift = s
					matched = true
					break
				}
			}
			if !matched {
				continue
			}

			workers, supervisors := 0, 0
			for _, e := range byShiftDay[shiftDayKey(shift.ID, day)] {
				switch e.Role {
				case RoleWorker:
					workers++
				case RoleSupervisor:
					supervisors++
				}
			}

			if workers < cr.req.MinWorkers {
				errs = append(errs, ValidationError{
					Date: dateKey(day), Rule: "coverage",
					Description: fmt.Sprintf("%s: %d of %d worker(s) assigned", cr.req.PeriodName, workers, cr.req.MinWorkers),
				})
			}
			if supervisors < cr.req.MinSupervisors {
				errs = append(errs, ValidationError{
					Date: dateKey(day), Rule: "coverage",
					Description: fmt.Sprintf("%s: %d of %d supervisor(s) assigned", cr.req.PeriodName, supervisors, cr.req.MinSupervisors),
				})
			}
		}
	}

	return errs
}

func shiftDayKey(shiftID int, day time.Time) string {
	return fmt.Sprintf("%d/%s", shiftID, dateKey(day))
}

// shiftStartOn projects the shift's start time of day onto the given date
func shiftStartOn(day time.Time, shift Shift) time.Time {
	c := clockOf(shift.StartTime)
	return time.Date(day.Year(), day.Month(), day.Day(), c.hour, c.minute, c.second, 0, time.UTC)
}
