package scheduler

import (
	"fmt"
	"time"
)

// Strategy names an assignment policy
type Strategy string

const (
	// StrategyDayDriven walks the date range day by day, filling every
	// matching shift slot. This is the default and the reference
	// behaviour for conformance.
	StrategyDayDriven Strategy = "day-driven"

	// StrategyRequirementDriven walks the requirements once, matching
	// each against a shift occurrence on the start date
	StrategyRequirementDriven Strategy = "requirement-driven"
)

// Input carries everything one generation run needs. Callers must pass
// independent snapshots: the engine never retains references across calls.
type Input struct {
	Employees    []Employee
	Shifts       []Shift
	Requirements []StaffingRequirement
	TimeOff      []TimeOffRequest
	StartDate    time.Time
	EndDate      time.Time

	// Overrides adjust requirement minimums on matching dates.
	// Consulted by the day-driven strategy only.
	Overrides []RequirementOverride

	// Strategy selects the assignment policy. Empty means day-driven.
	Strategy Strategy

	// Observer receives the decision trace. Nil means no tracing.
	Observer Observer
}

// RequirementOverride customizes a requirement's minimum counts on the
// dates its predicate matches (e.g. weekend or holiday cover)
type RequirementOverride struct {
	RequirementID string

	// AppliesTo reports whether the override is in force on a date
	AppliesTo func(date time.Time) bool

	MinWorkers     *int
	MinSupervisors *int
}

// clock is a parsed "HH:MM:SS" time-of-day
type clock struct {
	hour, minute, second int
}

func parseClock(s string) (clock, error) {
	var c clock
	n, err := fmt.Sscanf(s, "%d:%d:%d", &c.hour, &c.minute, &c.second)
	if err != nil || n != 3 {
		return clock{}, fmt.Errorf("invalid time of day %q: want HH:MM:SS", s)
	}
	if c.hour < 0 || c.hour > 23 || c.minute < 0 || c.minute > 59 || c.second < 0 || c.second > 59 {
		return clock{}, fmt.Errorf("invalid time of day %q: out of range", s)
	}
	return c, nil
}

func clockOf(t time.Time) clock {
	return clock{hour: t.Hour(), minute: t.Minute(), second: t.Second()}
}

// compiledRequirement pairs a requirement with its parsed period times
type compiledRequirement struct {
	req   StaffingRequirement
	start clock
	end   clock
}

// Generate runs the assignment algorithm and returns the schedule.
// Unstaffable slots become gaps, never errors; only input-contract
// violations fail, and they fail before any computation starts.
func Generate(input Input) (*Schedule, error) {
	compiled, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	observer := input.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	switch input.Strategy {
	case StrategyDayDriven, "":
		return generateDayDriven(input, compiled, observer), nil
	case StrategyRequirementDriven:
		return generateRequirementDriven(input, compiled, observer), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", input.Strategy)
	}
}

// validateInput enforces the input contract and pre-parses requirement
// period times
func validateInput(input Input) ([]compiledRequirement, error) {
	if input.StartDate.After(input.EndDate) {
		return nil, fmt.Errorf("start date %s is after end date %s",
			dateKey(input.StartDate), dateKey(input.EndDate))
	}

	for i, e := range input.Employees {
		if e.ID == "" {
			return nil, fmt.Errorf("employee at index %d has no ID", i)
		}
		if !e.Role.IsValid() {
			return nil, fmt.Errorf("employee %s has invalid role %q", e.ID, e.Role)
		}
	}

	for i, s := range input.Shifts {
		if s.ID <= 0 {
			return nil, fmt.Errorf("shift at index %d has invalid ID %d", i, s.ID)
		}
		if s.DurationHours <= 0 {
			return nil, fmt.Errorf("shift %d has non-positive duration %v", s.ID, s.DurationHours)
		}
	}

	compiled := make([]compiledRequirement, 0, len(input.Requirements))
	for i, req := range input.Requirements {
		if req.ID == "" {
			return nil, fmt.Errorf("requirement at index %d has no ID", i)
		}
		if req.MinStaff < 0 || req.MinWorkers < 0 || req.MinSupervisors < 0 {
			return nil, fmt.Errorf("requirement %s has negative minimum staff counts", req.ID)
		}
		start, err := parseClock(req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("requirement %s: %w", req.ID, err)
		}
		end, err := parseClock(req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("requirement %s: %w", req.ID, err)
		}
		compiled = append(compiled, compiledRequirement{req: req, start: start, end: end})
	}

	return compiled, nil
}

// generateDayDriven is the reference policy: greedy, first-fit, single
// pass. For each day and each shift in input order, the first employees
// passing every check are committed, so identical inputs always produce
// identical output.
func generateDayDriven(input Input, compiled []compiledRequirement, observer Observer) *Schedule {
	states := InitStates(input.Employees)
	BlockTimeOff(states, input.TimeOff)

	assignments := []ShiftAssignment{}
	gaps := newGapRecorder(observer)

	start := truncateDay(input.StartDate)
	end := truncateDay(input.EndDate)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		observer.DayStarted(day)

		// Week boundary applies to everyone before any assignment
		for _, state := range states {
			state.ResetWeeklyHoursIfNewWeek(day)
		}

		for _, shift := range input.Shifts {
			req, ok := matchRequirementByStart(compiled, shift)
			if !ok {
				// No coverage rule for this shift: required count is zero
				continue
			}
			req = applyOverrides(req, day, input.Overrides)

			missingWorkers := fillSlots(input.Employees, states, shift, day, RoleWorker, req.MinWorkers, &assignments, observer)
			missingSupervisors := fillSlots(input.Employees, states, shift, day, RoleSupervisor, req.MinSupervisors, &assignments, observer)

			if missing := missingWorkers + missingSupervisors; missing > 0 {
				gaps.Record(req.ID, missing, fmt.Sprintf(
					"%s %s: missing %d of %d worker(s) and %d of %d supervisor(s)",
					dateKey(day), req.PeriodName,
					missingWorkers, req.MinWorkers,
					missingSupervisors, req.MinSupervisors))
			}
		}

		for _, e := range input.Employees {
			state := states[e.ID]
			state.RolloverDay(day, IsAlreadyAssignedOnDate(state, day))
		}
	}

	return &Schedule{
		StartDate:   start,
		EndDate:     end,
		Assignments: assignments,
		Gaps:        gaps.gaps,
	}
}

// fillSlots assigns up to needed employees of the given role to the
// shift on day, walking the employee list in input order (the documented
// tie-break rule). Returns the number of slots left unfilled.
func fillSlots(
	employees []Employee,
	states map[string]*EmployeeState,
	shift Shift,
	day time.Time,
	role Role,
	needed int,
	assignments *[]ShiftAssignment,
	observer Observer,
) int {
	missing := 0

	for slot := 0; slot < needed; slot++ {
		filled := false

		for _, e := range employees {
			if e.Role != role {
				continue
			}
			state := states[e.ID]
			if IsAlreadyAssignedOnDate(state, day) {
				continue
			}
			if !IsQualified(e, shift) {
				continue
			}
			if !IsAvailable(e, shift) {
				continue
			}
			if !IsPatternAdherent(state) {
				continue
			}
			if ExceedsWeeklyHourLimit(state, shift.DurationHours) {
				continue
			}

			state.RecordAssignment(day, shift.ID, shift.DurationHours)
			assignment := ShiftAssignment{EmployeeID: e.ID, ShiftID: shift.ID, Date: day}
			*assignments = append(*assignments, assignment)
			observer.Assigned(assignment, shift.Name)
			filled = true
			break
		}

		if !filled {
			observer.SlotUnfilled(day, shift.Name, role)
			missing++
		}
	}

	return missing
}

// applyOverrides returns the requirement with any overrides in force on
// the given date applied, in input order
func applyOverrides(req StaffingRequirement, day time.Time, overrides []RequirementOverride) StaffingRequirement {
	for _, o := range overrides {
		if o.RequirementID != req.ID || o.AppliesTo == nil || !o.AppliesTo(day) {
			continue
		}
		if o.MinWorkers != nil {
			req.MinWorkers = *o.MinWorkers
		}
		if o.MinSupervisors != nil {
			req.MinSupervisors = *o.MinSupervisors
		}
	}
	return req
}

// matchRequirementByStart finds the first requirement whose period start
// equals the shift's start time of day. Comparing time-of-day components
// rather than absolute timestamps keeps overnight shifts matchable.
func matchRequirementByStart(compiled []compiledRequirement, shift Shift) (StaffingRequirement, bool) {
	shiftStart := clockOf(shift.StartTime)
	for _, cr := range compiled {
		if cr.start == shiftStart {
			return cr.req, true
		}
	}
	return StaffingRequirement{}, false
}
