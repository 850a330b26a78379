package schedule

import (
	"errors"
	"time"
)

// ClassDuration is fixed for every class; the end of a class window is always
// derived from its start.
const ClassDuration = 90 * time.Minute

var ErrInvalidWindow = errors.New("window end must be after start")

// TimeWindow is a half-open interval [Start, End). Two windows that touch at
// an endpoint do not overlap.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// NewTimeWindow builds a window and checks the end comes after the start.
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if !end.After(start) {
		return TimeWindow{}, ErrInvalidWindow
	}
	return TimeWindow{Start: start, End: end}, nil
}

// NewClassWindow derives the fixed-duration window of a class from its start.
func NewClassWindow(start time.Time) TimeWindow {
	return TimeWindow{Start: start, End: start.Add(ClassDuration)}
}

// Overlaps reports whether two half-open windows intersect. This predicate is
// the single source of truth for every conflict check in the system.
func Overlaps(a, b TimeWindow) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// ClockWindow is a time-of-day interval in minutes since midnight, half-open
// like TimeWindow. Used for recurring weekly availability, where no date is
// attached.
type ClockWindow struct {
	StartMin int
	EndMin   int
}

const minutesPerDay = 24 * 60

// NewClockWindow validates a time-of-day interval.
func NewClockWindow(startMin, endMin int) (ClockWindow, error) {
	if startMin < 0 || endMin > minutesPerDay || endMin <= startMin {
		return ClockWindow{}, ErrInvalidWindow
	}
	return ClockWindow{StartMin: startMin, EndMin: endMin}, nil
}

// ClockOverlaps mirrors Overlaps for time-of-day windows.
func ClockOverlaps(a, b ClockWindow) bool {
	return a.StartMin < b.EndMin && b.StartMin < a.EndMin
}
