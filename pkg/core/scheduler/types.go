package scheduler

import "time"

// Role classifies an employee for staffing purposes
type Role string

const (
	RoleWorker        Role = "worker"
	RoleSupervisor    Role = "supervisor"
	RoleAdministrator Role = "administrator"
)

func (r Role) IsValid() bool {
	return r == RoleWorker || r == RoleSupervisor || r == RoleAdministrator
}

// Interval is a closed availability window
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the interval (inclusive bounds)
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && !t.After(i.End)
}

// Employee is a member of staff available for scheduling.
// Inputs are treated as immutable for the duration of one run.
type Employee struct {
	ID   string
	Name string
	Role Role

	// Pattern is the employee's assigned shift pattern (e.g. "4x10").
	// Informational only - pattern adherence is modelled as a
	// consecutive-days cap, not as specific pattern shapes.
	Pattern string

	Qualifications []string
	Availability   []Interval

	// Preferences lists preferred shift IDs. Part of the input contract
	// but not consulted by either strategy.
	Preferences []int
}

// Shift is a single occurrence of a work period
type Shift struct {
	ID                     int
	Name                   string
	StartTime              time.Time
	EndTime                time.Time
	DurationHours          float64
	RequiredQualifications []string
}

// StaffingRequirement is a recurring coverage rule for a period of the day.
// Start and end times are "HH:MM:SS" strings matched against a shift's
// time-of-day components, so the rule is not tied to any one date.
type StaffingRequirement struct {
	ID             string
	PeriodName     string
	StartTime      string
	EndTime        string
	MinStaff       int
	MinWorkers     int
	MinSupervisors int
}

// TimeOffRequest blocks an employee out for an inclusive date range
type TimeOffRequest struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
}

// ShiftAssignment is the atomic output unit: one employee working one
// shift on one date. Immutable once produced.
type ShiftAssignment struct {
	EmployeeID string
	ShiftID    int
	Date       time.Time
}

// StaffingGap records a shortfall where a requirement's minimum could
// not be met for a period/day
type StaffingGap struct {
	RequirementID string
	MissingStaff  int
	Details       string
}

// Schedule is the engine's output aggregate
type Schedule struct {
	StartDate   time.Time
	EndDate     time.Time
	Assignments []ShiftAssignment
	Gaps        []StaffingGap
}

// dateKey normalizes a timestamp to a date-only map key
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// truncateDay normalizes a timestamp to midnight UTC
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
