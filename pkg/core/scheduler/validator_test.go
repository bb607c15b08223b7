package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validatorInput() Input {
	return Input{
		Employees: []Employee{
			testWorker("e1", "Dispatcher"),
			testWorker("e2", "Dispatcher"),
		},
		Shifts:       []Shift{dayShift()},
		Requirements: []StaffingRequirement{dayRequirement(2, 0)},
		StartDate:    testDate(4),
		EndDate:      testDate(5),
	}
}

func rulesOf(errs []ValidationError) []string {
	rules := make([]string, len(errs))
	for i, e := range errs {
		rules[i] = e.Rule
	}
	return rules
}

func TestValidateSchedule_CleanSchedulePasses(t *testing.T) {
	input := validatorInput()
	schedule, err := Generate(input)
	require.NoError(t, err)

	assert.Empty(t, ValidateSchedule(input, schedule))
}

func TestValidateSchedule_InputContractViolation(t *testing.T) {
	input := validatorInput()
	input.StartDate = testDate(10)

	errs := ValidateSchedule(input, &Schedule{})
	require.Len(t, errs, 1)
	assert.Equal(t, "input", errs[0].Rule)
}

func TestValidateSchedule_AssignmentOutsideRange(t *testing.T) {
	input := validatorInput()
	schedule, err := Generate(input)
	require.NoError(t, err)

	schedule.Assignments = append(schedule.Assignments, ShiftAssignment{
		EmployeeID: "e1", ShiftID: 1, Date: testDate(20),
	})

	errs := ValidateSchedule(input, schedule)
	assert.Contains(t, rulesOf(errs), "date-range")
}

func TestValidateSchedule_UnknownReferences(t *testing.T) {
	input := validatorInput()
	schedule, err := Generate(input)
	require.NoError(t, err)

	schedule.Assignments = append(schedule.Assignments,
		ShiftAssignment{EmployeeID: "ghost", ShiftID: 1, Date: testDate(4)},
		ShiftAssignment{EmployeeID: "e1", ShiftID: 99, Date: testDate(5)},
	)

	rules := rulesOf(ValidateSchedule(input, schedule))
	assert.Contains(t, rules, "unknown-employee")
	assert.Contains(t, rules, "unknown-shift")
}

func TestValidateSchedule_UnqualifiedAssignment(t *testing.T) {
	input := validatorInput()
	input.Employees = append(input.Employees, testWorker("e3", "Receptionist"))

	schedule, err := Generate(input)
	require.NoError(t, err)
	schedule.Assignments = append(schedule.Assignments, ShiftAssignment{
		EmployeeID: "e3", ShiftID: 1, Date: testDate(5),
	})

	assert.Contains(t, rulesOf(ValidateSchedule(input, schedule)), "qualification")
}

func TestValidateSchedule_DoubleBooking(t *testing.T) {
	input := validatorInput()
	schedule, err := Generate(input)
	require.NoError(t, err)

	// Duplicate e1's first assignment on the same date
	schedule.Assignments = append(schedule.Assignments, schedule.Assignments[0])

	assert.Contains(t, rulesOf(ValidateSchedule(input, schedule)), "double-booking")
}

func TestValidateSchedule_ConsecutiveDaysBreach(t *testing.T) {
	input := validatorInput()
	input.Employees = input.Employees[:1]
	input.Requirements = []StaffingRequirement{dayRequirement(1, 0)}
	input.StartDate = testDate(4)
	input.EndDate = testDate(8)

	// Hand-built schedule working all five days straight
	schedule := &Schedule{StartDate: testDate(4), EndDate: testDate(8)}
	for day := 4; day <= 8; day++ {
		schedule.Assignments = append(schedule.Assignments, ShiftAssignment{
			EmployeeID: "e1", ShiftID: 1, Date: testDate(day),
		})
	}

	assert.Contains(t, rulesOf(ValidateSchedule(input, schedule)), "consecutive-days")
}

func TestValidateSchedule_WeeklyHoursBreach(t *testing.T) {
	longShift := dayShift()
	longShift.EndTime = time.Date(2025, 8, 4, 20, 0, 0, 0, time.UTC)
	longShift.DurationHours = 12

	requirement := dayRequirement(1, 0)
	requirement.EndTime = "20:00:00"

	input := Input{
		Employees:    []Employee{testWorker("e1", "Dispatcher")},
		Shifts:       []Shift{longShift},
		Requirements: []StaffingRequirement{requirement},
		StartDate:    testDate(4),
		EndDate:      testDate(7),
	}

	// Four 12-hour days in one week is 48 hours
	schedule := &Schedule{StartDate: testDate(4), EndDate: testDate(7)}
	for day := 4; day <= 7; day++ {
		schedule.Assignments = append(schedule.Assignments, ShiftAssignment{
			EmployeeID: "e1", ShiftID: 1, Date: testDate(day),
		})
	}

	assert.Contains(t, rulesOf(ValidateSchedule(input, schedule)), "weekly-hours")
}

func TestValidateSchedule_CoverageShortfall(t *testing.T) {
	input := validatorInput()
	schedule, err := Generate(input)
	require.NoError(t, err)

	// Drop one assignment: the day it covered is now short a worker
	schedule.Assignments = schedule.Assignments[:len(schedule.Assignments)-1]

	errs := ValidateSchedule(input, schedule)
	require.NotEmpty(t, errs)
	assert.Contains(t, rulesOf(errs), "coverage")
	found := false
	for _, e := range errs {
		if e.Rule == "coverage" {
			assert.Contains(t, e.Description, "1 of 2 worker(s)")
			found = true
		}
	}
	assert.True(t, found)
}
