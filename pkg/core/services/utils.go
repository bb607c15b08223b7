package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/tobyhaynes/dispatch-rota/internal/config"
	"github.com/tobyhaynes/dispatch-rota/pkg/core/scheduler"
	"github.com/tobyhaynes/dispatch-rota/pkg/db"
)

// convertEmployees converts stored employee records to engine employees
func convertEmployees(records []db.Employee) ([]scheduler.Employee, error) {
	employees := make([]scheduler.Employee, len(records))
	for i, rec := range records {
		role := scheduler.Role(rec.Role)
		if !role.IsValid() {
			return nil, fmt.Errorf("employee %s has unknown role %q", rec.ID, rec.Role)
		}

		availability := make([]scheduler.Interval, len(rec.Availability))
		for j, w := range rec.Availability {
			availability[j] = scheduler.Interval{Start: w.StartAt, End: w.EndAt}
		}

		preferences := make([]int, len(rec.Preferences))
		for j, p := range rec.Preferences {
			preferences[j] = int(p)
		}

		employees[i] = scheduler.Employee{
			ID:             rec.ID,
			Name:           rec.FirstName + " " + rec.LastName,
			Role:           role,
			Pattern:        rec.Pattern,
			Qualifications: rec.Qualifications,
			Availability:   availability,
			Preferences:    preferences,
		}
	}
	return employees, nil
}

func convertShifts(records []db.Shift) []scheduler.Shift {
	shifts := make([]scheduler.Shift, len(records))
	for i, rec := range records {
		shifts[i] = scheduler.Shift{
			ID:                     rec.ID,
			Name:                   rec.Name,
			StartTime:              rec.StartAt,
			EndTime:                rec.EndAt,
			DurationHours:          rec.DurationHours,
			RequiredQualifications: rec.RequiredQualifications,
		}
	}
	return shifts
}

func convertRequirements(records []db.StaffingRequirement) []scheduler.StaffingRequirement {
	requirements := make([]scheduler.StaffingRequirement, len(records))
	for i, rec := range records {
		requirements[i] = scheduler.StaffingRequirement{
			ID:             rec.ID,
			PeriodName:     rec.PeriodName,
			StartTime:      rec.StartTime,
			EndTime:        rec.EndTime,
			MinStaff:       rec.MinStaff,
			MinWorkers:     rec.MinWorkers,
			MinSupervisors: rec.MinSupervisors,
		}
	}
	return requirements
}

func convertTimeOff(records []db.TimeOffRequest) []scheduler.TimeOffRequest {
	requests := make([]scheduler.TimeOffRequest, len(records))
	for i, rec := range records {
		requests[i] = scheduler.TimeOffRequest{
			EmployeeID: rec.EmployeeID,
			StartDate:  rec.StartDate,
			EndDate:    rec.EndDate,
		}
	}
	return requests
}

// convertCoverageOverrides converts config coverage overrides to engine
// requirement overrides. RRule strings are parsed and turned into
// date-matching predicates over the schedule range.
func convertCoverageOverrides(
	configOverrides []config.CoverageOverride,
	startDate, endDate time.Time,
	logger *zap.Logger,
) ([]scheduler.RequirementOverride, error) {
	result := make([]scheduler.RequirementOverride, 0, len(configOverrides))

	for i, override := range configOverrides {
		rule, err := rrule.StrToRRule(override.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for override %d: %w", i, err)
		}

		// Capture by value to avoid closure issues
		ruleForClosure := rule
		appliesTo := func(date time.Time) bool {
			// Small buffer either side so boundary occurrences match
			searchStart := startDate.AddDate(0, 0, -7)
			searchEnd := endDate.AddDate(0, 0, 7)
			ruleForClosure.DTStart(searchStart)

			dateStr := date.Format("2006-01-02")
			for _, occurrence := range ruleForClosure.Between(searchStart, searchEnd, true) {
				if occurrence.Format("2006-01-02") == dateStr {
					return true
				}
			}
			return false
		}

		result = append(result, scheduler.RequirementOverride{
			RequirementID:  override.RequirementID,
			AppliesTo:      appliesTo,
			MinWorkers:     override.MinWorkers,
			MinSupervisors: override.MinSupervisors,
		})

		logger.Debug("Converted coverage override",
			zap.Int("index", i),
			zap.String("rrule", override.RRule),
			zap.String("requirement_id", override.RequirementID))
	}

	return result, nil
}

// convertToDBSchedule converts an engine schedule to storage records
func convertToDBSchedule(scheduleID string, strategy scheduler.Strategy, schedule *scheduler.Schedule) (db.Schedule, []db.Assignment, []db.Gap) {
	header := db.Schedule{
		ID:        scheduleID,
		StartDate: schedule.StartDate,
		EndDate:   schedule.EndDate,
		Strategy:  string(strategy),
	}

	assignments := make([]db.Assignment, len(schedule.Assignments))
	for i, a := range schedule.Assignments {
		assignments[i] = db.Assignment{
			ID:         uuid.New().String(),
			ScheduleID: scheduleID,
			EmployeeID: a.EmployeeID,
			ShiftID:    a.ShiftID,
			ShiftDate:  a.Date,
			Position:   i,
		}
	}

	gaps := make([]db.Gap, len(schedule.Gaps))
	for i, g := range schedule.Gaps {
		gaps[i] = db.Gap{
			ID:            uuid.New().String(),
			ScheduleID:    scheduleID,
			RequirementID: g.RequirementID,
			MissingStaff:  g.MissingStaff,
			Details:       g.Details,
			Position:      i,
		}
	}

	return header, assignments, gaps
}
