package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tobyhaynes/dispatch-rota/internal/config"
	"github.com/tobyhaynes/dispatch-rota/pkg/core/scheduler"
	"github.com/tobyhaynes/dispatch-rota/pkg/db"
)

// GenerateScheduleStore defines the database operations needed for
// generating a schedule
type GenerateScheduleStore interface {
	GetEmployees(ctx context.Context) ([]db.Employee, error)
	GetShifts(ctx context.Context) ([]db.Shift, error)
	GetStaffingRequirements(ctx context.Context) ([]db.StaffingRequirement, error)
	GetTimeOffRequests(ctx context.Context) ([]db.TimeOffRequest, error)
	InsertSchedule(ctx context.Context, schedule db.Schedule, assignments []db.Assignment, gaps []db.Gap) error
}

// GenerateScheduleParams carries the caller's request
type GenerateScheduleParams struct {
	Start    string // "2006-01-02"
	End      string // "2006-01-02"
	Strategy string // empty means config default, then day-driven
	DryRun   bool
}

// GenerateScheduleResult contains the generation results
type GenerateScheduleResult struct {
	ScheduleID string
	Strategy   scheduler.Strategy
	Schedule   *scheduler.Schedule
	Saved      bool
}

// GenerateSchedule loads the roster inputs, runs the assignment engine
// over the requested date range, and stores the resulting schedule
// unless dryRun is set. Staffing gaps never abort the run; they are part
// of the result.
func GenerateSchedule(
	ctx context.Context,
	store GenerateScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	params GenerateScheduleParams,
) (*GenerateScheduleResult, error) {
	startDate, err := time.Parse("2006-01-02", params.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", params.Start, err)
	}
	endDate, err := time.Parse("2006-01-02", params.End)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", params.End, err)
	}

	strategy, err := resolveStrategy(params.Strategy, cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("Generating schedule",
		zap.String("start", params.Start),
		zap.String("end", params.End),
		zap.String("strategy", string(strategy)),
		zap.Bool("dry_run", params.DryRun))

	logger.Debug("Fetching employees")
	dbEmployees, err := store.GetEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	logger.Debug("Found employees", zap.Int("count", len(dbEmployees)))

	logger.Debug("Fetching shifts")
	dbShifts, err := store.GetShifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}
	logger.Debug("Found shifts", zap.Int("count", len(dbShifts)))

	logger.Debug("Fetching staffing requirements")
	dbRequirements, err := store.GetStaffingRequirements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staffing requirements: %w", err)
	}
	logger.Debug("Found staffing requirements", zap.Int("count", len(dbRequirements)))

	logger.Debug("Fetching time off requests")
	dbTimeOff, err := store.GetTimeOffRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time off requests: %w", err)
	}
	logger.Debug("Found time off requests", zap.Int("count", len(dbTimeOff)))

	employees, err := convertEmployees(dbEmployees)
	if err != nil {
		return nil, err
	}

	overrides, err := convertCoverageOverrides(cfg.CoverageOverrides, startDate, endDate, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to convert coverage overrides: %w", err)
	}

	input := scheduler.Input{
		Employees:    employees,
		Shifts:       convertShifts(dbShifts),
		Requirements: convertRequirements(dbRequirements),
		TimeOff:      convertTimeOff(dbTimeOff),
		StartDate:    startDate,
		EndDate:      endDate,
		Overrides:    overrides,
		Strategy:     strategy,
		Observer:     scheduler.NewZapObserver(logger),
	}

	logger.Info("Running assignment engine")
	schedule, err := scheduler.Generate(input)
	if err != nil {
		return nil, fmt.Errorf("schedule generation failed: %w", err)
	}

	logger.Info("Schedule generated",
		zap.Int("assignments", len(schedule.Assignments)),
		zap.Int("gaps", len(schedule.Gaps)))

	for _, gap := range schedule.Gaps {
		logger.Warn("Staffing gap in generated schedule",
			zap.String("requirement_id", gap.RequirementID),
			zap.Int("missing_staff", gap.MissingStaff),
			zap.String("details", gap.Details))
	}

	result := &GenerateScheduleResult{
		ScheduleID: uuid.New().String(),
		Strategy:   strategy,
		Schedule:   schedule,
	}

	if params.DryRun {
		logger.Info("Dry run mode - schedule not saved")
		return result, nil
	}

	header, assignments, gaps := convertToDBSchedule(result.ScheduleID, strategy, schedule)
	if err := store.InsertSchedule(ctx, header, assignments, gaps); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}
	result.Saved = true
	logger.Info("Schedule saved", zap.String("schedule_id", result.ScheduleID))

	return result, nil
}

// resolveStrategy picks the strategy from the explicit parameter, the
// config default, then the engine default, in that order
func resolveStrategy(param string, cfg *config.Config) (scheduler.Strategy, error) {
	name := param
	if name == "" {
		name = cfg.DefaultStrategy
	}
	switch scheduler.Strategy(name) {
	case "":
		return scheduler.StrategyDayDriven, nil
	case scheduler.StrategyDayDriven, scheduler.StrategyRequirementDriven:
		return scheduler.Strategy(name), nil
	default:
		return "", fmt.Errorf("unknown strategy %q", name)
	}
}
