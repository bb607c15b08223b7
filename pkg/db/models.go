package db

import "time"

// Employee is a roster member as stored
type Employee struct {
	ID             string
	FirstName      string
	LastName       string
	Role           string
	Pattern        string
	Qualifications []string
	Preferences    []int64
	Availability   []AvailabilityWindow
}

// AvailabilityWindow is one availability interval for an employee
type AvailabilityWindow struct {
	ID         string
	EmployeeID string
	StartAt    time.Time
	EndAt      time.Time
}

// Shift is one stored shift occurrence
type Shift struct {
	ID                     int
	Name                   string
	StartAt                time.Time
	EndAt                  time.Time
	DurationHours          float64
	RequiredQualifications []string
}

// StaffingRequirement is a stored coverage rule
type StaffingRequirement struct {
	ID             string
	PeriodName     string
	StartTime      string
	EndTime        string
	MinStaff       int
	MinWorkers     int
	MinSupervisors int
}

// TimeOffRequest is a stored approved time-off range
type TimeOffRequest struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
}

// Schedule is the stored header row for one generation run
type Schedule struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	Strategy  string
	CreatedAt time.Time
}

// Assignment is one stored shift assignment. Position preserves the
// engine's output order.
type Assignment struct {
	ID         string
	ScheduleID string
	EmployeeID string
	ShiftID    int
	ShiftDate  time.Time
	Position   int
}

// Gap is one stored staffing gap. Position preserves discovery order.
type Gap struct {
	ID            string
	ScheduleID    string
	RequirementID string
	MissingStaff  int
	Details       string
	Position      int
}
