package scheduler

import "fmt"

// generateRequirementDriven walks the requirements once, matching each
// against the shift occurrence with the same start and end time of day,
// and assigns up to MinStaff candidates on the start date. An employee
// is used at most once across the whole pass. Kept as a named strategy
// because some consumers depend on its gap-reporting shape.
func generateRequirementDriven(input Input, compiled []compiledRequirement, observer Observer) *Schedule {
	start := truncateDay(input.StartDate)
	end := truncateDay(input.EndDate)

	assignments := []ShiftAssignment{}
	gaps := newGapRecorder(observer)
	assigned := make(map[string]bool)

	for _, cr := range compiled {
		shift, ok := matchShiftByPeriod(input.Shifts, cr)
		if !ok {
			// A requirement nothing can satisfy is a configuration
			// problem, surfaced as a gap so the run still completes
			gaps.Record(cr.req.ID, cr.req.MinStaff, fmt.Sprintf(
				"no shift matches requirement %s (%s %s-%s); check shift and requirement configuration",
				cr.req.ID, cr.req.PeriodName, cr.req.StartTime, cr.req.EndTime))
			continue
		}

		assignedCount := 0
		for _, e := range input.Employees {
			if assignedCount == cr.req.MinStaff {
				break
			}
			if assigned[e.ID] {
				continue
			}
			if !IsQualified(e, shift) {
				continue
			}
			if !IsAvailable(e, shift) {
				continue
			}

			assignment := ShiftAssignment{EmployeeID: e.ID, ShiftID: shift.ID, Date: start}
			assignments = append(assignments, assignment)
			observer.Assigned(assignment, shift.Name)
			assigned[e.ID] = true
			assignedCount++
		}

		if assignedCount < cr.req.MinStaff {
			gaps.Record(cr.req.ID, cr.req.MinStaff-assignedCount, fmt.Sprintf(
				"%s: could only find %d of %d required staff",
				cr.req.PeriodName, assignedCount, cr.req.MinStaff))
		}
	}

	return &Schedule{
		StartDate:   start,
		EndDate:     end,
		Assignments: assignments,
		Gaps:        gaps.gaps,
	}
}

// matchShiftByPeriod finds the first shift whose start and end times of
// day both equal the requirement's period
func matchShiftByPeriod(shifts []Shift, cr compiledRequirement) (Shift, bool) {
	for _, shift := range shifts {
		if clockOf(shift.StartTime) == cr.start && clockOf(shift.EndTime) == cr.end {
			return shift, true
		}
	}
	return Shift{}, false
}
