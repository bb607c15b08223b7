package scheduler

// gapRecorder accumulates staffing gaps in discovery order. Gaps are
// never deduplicated: the same requirement can fall short on several
// days and each shortfall carries day-specific detail.
type gapRecorder struct {
	gaps     []StaffingGap
	observer Observer
}

func newGapRecorder(observer Observer) *gapRecorder {
	return &gapRecorder{
		gaps:     []StaffingGap{},
		observer: observer,
	}
}

func (r *gapRecorder) Record(requirementID string, missingStaff int, details string) {
	gap := StaffingGap{
		RequirementID: requirementID,
		MissingStaff:  missingStaff,
		Details:       details,
	}
	r.gaps = append(r.gaps, gap)
	r.observer.GapRecorded(gap)
}
