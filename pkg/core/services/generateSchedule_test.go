package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tobyhaynes/dispatch-rota/internal/config"
	"github.com/tobyhaynes/dispatch-rota/pkg/core/scheduler"
	"github.com/tobyhaynes/dispatch-rota/pkg/db"
)

// mockGenerateScheduleStore implements GenerateScheduleStore for testing
type mockGenerateScheduleStore struct {
	employees    []db.Employee
	shifts       []db.Shift
	requirements []db.StaffingRequirement
	timeOff      []db.TimeOffRequest

	insertedSchedule    *db.Schedule
	insertedAssignments []db.Assignment
	insertedGaps        []db.Gap

	getEmployeesErr    error
	getShiftsErr       error
	getRequirementsErr error
	getTimeOffErr      error
	insertScheduleErr  error
}

func (m *mockGenerateScheduleStore) GetEmployees(ctx context.Context) ([]db.Employee, error) {
	if m.getEmployeesErr != nil {
		return nil, m.getEmployeesErr
	}
	return m.employees, nil
}

func (m *mockGenerateScheduleStore) GetShifts(ctx context.Context) ([]db.Shift, error) {
	if m.getShiftsErr != nil {
		return nil, m.getShiftsErr
	}
	return m.shifts, nil
}

func (m *mockGenerateScheduleStore) GetStaffingRequirements(ctx context.Context) ([]db.StaffingRequirement, error) {
	if m.getRequirementsErr != nil {
		return nil, m.getRequirementsErr
	}
	return m.requirements, nil
}

func (m *mockGenerateScheduleStore) GetTimeOffRequests(ctx context.Context) ([]db.TimeOffRequest, error) {
	if m.getTimeOffErr != nil {
		return nil, m.getTimeOffErr
	}
	return m.timeOff, nil
}

func (m *mockGenerateScheduleStore) InsertSchedule(ctx context.Context, schedule db.Schedule, assignments []db.Assignment, gaps []db.Gap) error {
	if m.insertScheduleErr != nil {
		return m.insertScheduleErr
	}
	m.insertedSchedule = &schedule
	m.insertedAssignments = append(m.insertedAssignments, assignments...)
	m.insertedGaps = append(m.insertedGaps, gaps...)
	return nil
}

func rosterStore() *mockGenerateScheduleStore {
	window := db.AvailabilityWindow{
		StartAt: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	return &mockGenerateScheduleStore{
		employees: []db.Employee{
			{
				ID: "e1", FirstName: "Alice", LastName: "Smith", Role: "worker",
				Qualifications: []string{"Dispatcher"},
				Availability:   []db.AvailabilityWindow{window},
			},
			{
				ID: "e2", FirstName: "Bob", LastName: "Jones", Role: "worker",
				Qualifications: []string{"Dispatcher"},
				Availability:   []db.AvailabilityWindow{window},
			},
		},
		shifts: []db.Shift{
			{
				ID: 1, Name: "Day Shift",
				StartAt:                time.Date(2025, 8, 4, 8, 0, 0, 0, time.UTC),
				EndAt:                  time.Date(2025, 8, 4, 16, 0, 0, 0, time.UTC),
				DurationHours:          8,
				RequiredQualifications: []string{"Dispatcher"},
			},
		},
		requirements: []db.StaffingRequirement{
			{
				ID: "req-day", PeriodName: "Day Coverage",
				StartTime: "08:00:00", EndTime: "16:00:00",
				MinStaff: 2, MinWorkers: 2, MinSupervisors: 0,
			},
		},
	}
}

func TestGenerateSchedule_SavesGeneratedSchedule(t *testing.T) {
	store := rosterStore()
	cfg := &config.Config{DatabaseURL: "postgres://test"}

	result, err := GenerateSchedule(context.Background(), store, cfg, zap.NewNop(), GenerateScheduleParams{
		Start: "2025-08-04",
		End:   "2025-08-05",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ScheduleID)
	assert.Equal(t, scheduler.StrategyDayDriven, result.Strategy)
	assert.True(t, result.Saved)

	// Both workers on both days
	assert.Len(t, result.Schedule.Assignments, 4)
	assert.Empty(t, result.Schedule.Gaps)

	require.NotNil(t, store.insertedSchedule)
	assert.Equal(t, result.ScheduleID, store.insertedSchedule.ID)
	assert.Equal(t, "day-driven", store.insertedSchedule.Strategy)
	require.Len(t, store.insertedAssignments, 4)
	for i, a := range store.insertedAssignments {
		assert.Equal(t, result.ScheduleID, a.ScheduleID)
		assert.Equal(t, i, a.Position)
	}
}

func TestGenerateSchedule_DryRunSkipsSave(t *testing.T) {
	store := rosterStore()
	cfg := &config.Config{DatabaseURL: "postgres://test"}

	result, err := GenerateSchedule(context.Background(), store, cfg, zap.NewNop(), GenerateScheduleParams{
		Start:  "2025-08-04",
		End:    "2025-08-04",
		DryRun: true,
	})
	require.NoError(t, err)

	assert.False(t, result.Saved)
	assert.Nil(t, store.insertedSchedule)
	assert.Len(t, result.Schedule.Assignments, 2)
}

func TestGenerateSchedule_GapsAreNotErrors(t *testing.T) {
	store := rosterStore()
	store.employees = store.employees[:1]
	cfg := &config.Config{DatabaseURL: "postgres://test"}

	result, err := GenerateSchedule(context.Background(), store, cfg, zap.NewNop(), GenerateScheduleParams{
		Start: "2025-08-04",
		End:   "2025-08-04",
	})
	require.NoError(t, err)

	assert.True(t, result.Saved)
	assert.Len(t, result.Schedule.Assignments, 1)
	require.Len(t, result.Schedule.Gaps, 1)
	require.Len(t, store.insertedGaps, 1)
	assert.Equal(t, "req-day", store.insertedGaps[0].RequirementID)
	assert.Equal(t, 1, store.insertedGaps[0].MissingStaff)
}

func TestGenerateSchedule_AppliesCoverageOverrides(t *testing.T) {
	store := rosterStore()
	one := 1
	cfg := &config.Config{
		DatabaseURL: "postgres://test",
		CoverageOverrides: []config.CoverageOverride{
			{
				// Sundays only need a single worker
				RRule:         "FREQ=WEEKLY;BYDAY=SU",
				RequirementID: "req-day",
				MinWorkers:    &one,
			},
		},
	}

	// Saturday the 9th and Sunday the 10th
	result, err := GenerateSchedule(context.Background(), store, cfg, zap.NewNop(), GenerateScheduleParams{
		Start: "2025-08-09",
		End:   "2025-08-10",
	})
	require.NoError(t, err)

	assert.Len(t, result.Schedule.Assignments, 3)
	assert.Empty(t, result.Schedule.Gaps)
}

func TestGenerateSchedule_InvalidInputs(t *testing.T) {
	cfg := &config.Config{DatabaseURL: "postgres://test"}

	tests := []struct {
		name        string
		params      GenerateScheduleParams
		errContains string
	}{
		{
			name:        "malformed start date",
			params:      GenerateScheduleParams{Start: "04/08/2025", End: "2025-08-05"},
			errContains: "invalid start date",
		},
		{
			name:        "malformed end date",
			params:      GenerateScheduleParams{Start: "2025-08-04", End: "tomorrow"},
			errContains: "invalid end date",
		},
		{
			name:        "unknown strategy",
			params:      GenerateScheduleParams{Start: "2025-08-04", End: "2025-08-05", Strategy: "round-robin"},
			errContains: "unknown strategy",
		},
		{
			name:        "start after end",
			params:      GenerateScheduleParams{Start: "2025-08-10", End: "2025-08-04"},
			errContains: "after end date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := GenerateSchedule(context.Background(), rosterStore(), cfg, zap.NewNop(), tt.params)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestGenerateSchedule_StoreErrors(t *testing.T) {
	cfg := &config.Config{DatabaseURL: "postgres://test"}
	params := GenerateScheduleParams{Start: "2025-08-04", End: "2025-08-05"}

	tests := []struct {
		name        string
		mutate      func(*mockGenerateScheduleStore)
		errContains string
	}{
		{
			name:        "employees fetch fails",
			mutate:      func(m *mockGenerateScheduleStore) { m.getEmployeesErr = errors.New("boom") },
			errContains: "failed to fetch employees",
		},
		{
			name:        "shifts fetch fails",
			mutate:      func(m *mockGenerateScheduleStore) { m.getShiftsErr = errors.New("boom") },
			errContains: "failed to fetch shifts",
		},
		{
			name:        "requirements fetch fails",
			mutate:      func(m *mockGenerateScheduleStore) { m.getRequirementsErr = errors.New("boom") },
			errContains: "failed to fetch staffing requirements",
		},
		{
			name:        "time off fetch fails",
			mutate:      func(m *mockGenerateScheduleStore) { m.getTimeOffErr = errors.New("boom") },
			errContains: "failed to fetch time off requests",
		},
		{
			name:        "save fails",
			mutate:      func(m *mockGenerateScheduleStore) { m.insertScheduleErr = errors.New("boom") },
			errContains: "failed to save schedule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := rosterStore()
			tt.mutate(store)

			result, err := GenerateSchedule(context.Background(), store, cfg, zap.NewNop(), params)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestResolveStrategy(t *testing.T) {
	tests := []struct {
		name          string
		param         string
		configDefault string
		expected      scheduler.Strategy
		wantErr       bool
	}{
		{"engine default", "", "", scheduler.StrategyDayDriven, false},
		{"config default", "", "requirement-driven", scheduler.StrategyRequirementDriven, false},
		{"param wins over config", "day-driven", "requirement-driven", scheduler.StrategyDayDriven, false},
		{"unknown param", "genetic", "", "", true},
		{"unknown config default", "", "genetic", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{DatabaseURL: "postgres://test", DefaultStrategy: tt.configDefault}
			strategy, err := resolveStrategy(tt.param, cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, strategy)
		})
	}
}
