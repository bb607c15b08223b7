package scheduler

import (
	"time"

	"go.uber.org/zap"
)

// Observer receives a trace of engine decisions as they are made, so the
// "why was X assigned" trail can be surfaced without the engine writing
// to process-wide output. Implementations must not mutate engine inputs.
type Observer interface {
	DayStarted(date time.Time)
	Assigned(assignment ShiftAssignment, shiftName string)
	SlotUnfilled(date time.Time, shiftName string, role Role)
	GapRecorded(gap StaffingGap)
}

type nopObserver struct{}

func (nopObserver) DayStarted(time.Time)                 {}
func (nopObserver) Assigned(ShiftAssignment, string)     {}
func (nopObserver) SlotUnfilled(time.Time, string, Role) {}
func (nopObserver) GapRecorded(StaffingGap)              {}

// ZapObserver adapts a zap logger to the Observer interface
type ZapObserver struct {
	logger *zap.Logger
}

// NewZapObserver creates an Observer that logs engine decisions at debug
// level and gaps at warn level
func NewZapObserver(logger *zap.Logger) *ZapObserver {
	return &ZapObserver{logger: logger}
}

func (o *ZapObserver) DayStarted(date time.Time) {
	o.logger.Debug("Scheduling day", zap.String("date", dateKey(date)))
}

func (o *ZapObserver) Assigned(assignment ShiftAssignment, shiftName string) {
	o.logger.Debug("Assigned shift",
		zap.String("employee_id", assignment.EmployeeID),
		zap.Int("shift_id", assignment.ShiftID),
		zap.String("shift_name", shiftName),
		zap.String("date", dateKey(assignment.Date)))
}

func (o *ZapObserver) SlotUnfilled(date time.Time, shiftName string, role Role) {
	o.logger.Debug("No eligible candidate for slot",
		zap.String("date", dateKey(date)),
		zap.String("shift_name", shiftName),
		zap.String("role", string(role)))
}

func (o *ZapObserver) GapRecorded(gap StaffingGap) {
	o.logger.Warn("Staffing gap",
		zap.String("requirement_id", gap.RequirementID),
		zap.Int("missing_staff", gap.MissingStaff),
		zap.String("details", gap.Details))
}
