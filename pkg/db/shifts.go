package db

import (
	"context"
	"fmt"
)

// GetShifts retrieves all shift occurrences in ID order
func (db *DB) GetShifts(ctx context.Context) ([]Shift, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, name, start_at, end_at, duration_hours, required_qualifications
		FROM shifts
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []Shift
	for rows.Next() {
		var s Shift
		if err := rows.Scan(&s.ID, &s.Name, &s.StartAt, &s.EndAt, &s.DurationHours, &s.RequiredQualifications); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shifts: %w", err)
	}

	return shifts, nil
}

// GetStaffingRequirements retrieves all coverage rules in ID order
func (db *DB) GetStaffingRequirements(ctx context.Context) ([]StaffingRequirement, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, period_name, start_time, end_time, min_staff, min_workers, min_supervisors
		FROM staffing_requirements
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staffing requirements: %w", err)
	}
	defer rows.Close()

	var requirements []StaffingRequirement
	for rows.Next() {
		var r StaffingRequirement
		if err := rows.Scan(&r.ID, &r.PeriodName, &r.StartTime, &r.EndTime, &r.MinStaff, &r.MinWorkers, &r.MinSupervisors); err != nil {
			return nil, fmt.Errorf("failed to scan staffing requirement: %w", err)
		}
		requirements = append(requirements, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read staffing requirements: %w", err)
	}

	return requirements, nil
}
