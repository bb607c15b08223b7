package db

import (
	"context"
	"fmt"
)

// InsertSchedule stores a schedule header with its assignments and gaps
// in one transaction, so a failed run never leaves partial output behind
func (db *DB) InsertSchedule(ctx context.Context, schedule Schedule, assignments []Assignment, gaps []Gap) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO schedules (id, start_date, end_date, strategy)
		VALUES ($1, $2, $3, $4)
	`, schedule.ID, schedule.StartDate, schedule.EndDate, schedule.Strategy)
	if err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}

	for _, a := range assignments {
		_, err = tx.Exec(ctx, `
			INSERT INTO shift_assignments (id, schedule_id, employee_id, shift_id, shift_date, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, a.ID, a.ScheduleID, a.EmployeeID, a.ShiftID, a.ShiftDate, a.Position)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	for _, g := range gaps {
		_, err = tx.Exec(ctx, `
			INSERT INTO staffing_gaps (id, schedule_id, requirement_id, missing_staff, details, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, g.ID, g.ScheduleID, g.RequirementID, g.MissingStaff, g.Details, g.Position)
		if err != nil {
			return fmt.Errorf("failed to insert gap: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit schedule: %w", err)
	}
	return nil
}

// GetSchedule retrieves a stored schedule with its assignments and gaps
// in their original order
func (db *DB) GetSchedule(ctx context.Context, scheduleID string) (*Schedule, []Assignment, []Gap, error) {
	var schedule Schedule
	err := db.pool.QueryRow(ctx, `
		SELECT id, start_date, end_date, strategy, created_at
		FROM schedules WHERE id = $1
	`, scheduleID).Scan(&schedule.ID, &schedule.StartDate, &schedule.EndDate, &schedule.Strategy, &schedule.CreatedAt)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get schedule %s: %w", scheduleID, err)
	}

	rows, err := db.pool.Query(ctx, `
		SELECT id, schedule_id, employee_id, shift_id, shift_date, position
		FROM shift_assignments WHERE schedule_id = $1 ORDER BY position
	`, scheduleID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.ScheduleID, &a.EmployeeID, &a.ShiftID, &a.ShiftDate, &a.Position); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read assignments: %w", err)
	}

	gapRows, err := db.pool.Query(ctx, `
		SELECT id, schedule_id, requirement_id, missing_staff, details, position
		FROM staffing_gaps WHERE schedule_id = $1 ORDER BY position
	`, scheduleID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to query gaps: %w", err)
	}
	defer gapRows.Close()

	var gaps []Gap
	for gapRows.Next() {
		var g Gap
		if err := gapRows.Scan(&g.ID, &g.ScheduleID, &g.RequirementID, &g.MissingStaff, &g.Details, &g.Position); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to scan gap: %w", err)
		}
		gaps = append(gaps, g)
	}
	if err := gapRows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read gaps: %w", err)
	}

	return &schedule, assignments, gaps, nil
}
