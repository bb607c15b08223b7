package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tobyhaynes/dispatch-rota/pkg/core/scheduler"
	"github.com/tobyhaynes/dispatch-rota/pkg/db"
)

// ValidateScheduleStore defines the database operations needed for
// validating a stored schedule
type ValidateScheduleStore interface {
	GetSchedule(ctx context.Context, scheduleID string) (*db.Schedule, []db.Assignment, []db.Gap, error)
	GetEmployees(ctx context.Context) ([]db.Employee, error)
	GetShifts(ctx context.Context) ([]db.Shift, error)
	GetStaffingRequirements(ctx context.Context) ([]db.StaffingRequirement, error)
	GetTimeOffRequests(ctx context.Context) ([]db.TimeOffRequest, error)
}

// ValidateScheduleResult contains the validation outcome for one stored
// schedule
type ValidateScheduleResult struct {
	ScheduleID string
	Valid      bool
	Errors     []scheduler.ValidationError
}

// ValidateSchedule replays a stored schedule against the current roster
// inputs and reports any constraint or coverage violations. Useful after
// manual edits or roster changes since generation.
func ValidateSchedule(
	ctx context.Context,
	store ValidateScheduleStore,
	logger *zap.Logger,
	scheduleID string,
) (*ValidateScheduleResult, error) {
	logger.Info("Validating schedule", zap.String("schedule_id", scheduleID))

	header, assignments, gaps, err := store.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	logger.Debug("Loaded schedule",
		zap.Int("assignments", len(assignments)),
		zap.Int("gaps", len(gaps)))

	dbEmployees, err := store.GetEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	dbShifts, err := store.GetShifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}
	dbRequirements, err := store.GetStaffingRequirements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staffing requirements: %w", err)
	}
	dbTimeOff, err := store.GetTimeOffRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time off requests: %w", err)
	}

	employees, err := convertEmployees(dbEmployees)
	if err != nil {
		return nil, err
	}

	input := scheduler.Input{
		Employees:    employees,
		Shifts:       convertShifts(dbShifts),
		Requirements: convertRequirements(dbRequirements),
		TimeOff:      convertTimeOff(dbTimeOff),
		StartDate:    header.StartDate,
		EndDate:      header.EndDate,
	}

	schedule := &scheduler.Schedule{
		StartDate:   header.StartDate,
		EndDate:     header.EndDate,
		Assignments: make([]scheduler.ShiftAssignment, len(assignments)),
		Gaps:        make([]scheduler.StaffingGap, len(gaps)),
	}
	for i, a := range assignments {
		schedule.Assignments[i] = scheduler.ShiftAssignment{
			EmployeeID: a.EmployeeID,
			ShiftID:    a.ShiftID,
			Date:       a.ShiftDate,
		}
	}
	for i, g := range gaps {
		schedule.Gaps[i] = scheduler.StaffingGap{
			RequirementID: g.RequirementID,
			MissingStaff:  g.MissingStaff,
			Details:       g.Details,
		}
	}

	errs := scheduler.ValidateSchedule(input, schedule)
	for _, verr := range errs {
		logger.Warn("Validation error",
			zap.String("date", verr.Date),
			zap.String("rule", verr.Rule),
			zap.String("description", verr.Description))
	}

	return &ValidateScheduleResult{
		ScheduleID: scheduleID,
		Valid:      len(errs) == 0,
		Errors:     errs,
	}, nil
}
