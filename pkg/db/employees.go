package db

import (
	"context"
	"fmt"
)

// GetEmployees retrieves all employees with their availability windows,
// ordered by last then first name so scheduling input order is stable
func (db *DB) GetEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, first_name, last_name, role, pattern, qualifications, preferences
		FROM employees
		ORDER BY last_name, first_name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	index := make(map[string]int)
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Role, &e.Pattern, &e.Qualifications, &e.Preferences); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		index[e.ID] = len(employees)
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	availRows, err := db.pool.Query(ctx, `
		SELECT id, employee_id, start_at, end_at
		FROM employee_availability
		ORDER BY employee_id, start_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer availRows.Close()

	for availRows.Next() {
		var w AvailabilityWindow
		if err := availRows.Scan(&w.ID, &w.EmployeeID, &w.StartAt, &w.EndAt); err != nil {
			return nil, fmt.Errorf("failed to scan availability window: %w", err)
		}
		if i, ok := index[w.EmployeeID]; ok {
			employees[i].Availability = append(employees[i].Availability, w)
		}
	}
	if err := availRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read availability: %w", err)
	}

	return employees, nil
}

// GetTimeOffRequests retrieves all stored time-off requests
func (db *DB) GetTimeOffRequests(ctx context.Context) ([]TimeOffRequest, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, employee_id, start_date, end_date
		FROM time_off_requests
		ORDER BY start_date, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query time off requests: %w", err)
	}
	defer rows.Close()

	var requests []TimeOffRequest
	for rows.Next() {
		var r TimeOffRequest
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.StartDate, &r.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan time off request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read time off requests: %w", err)
	}

	return requests, nil
}
