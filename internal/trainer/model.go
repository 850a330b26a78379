package trainer

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Trainer struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AvailabilityWindow is a recurring weekly time-of-day window during which the
// trainer has declared themselves willing to work. It is advisory only: class
// scheduling does not consult it.
type AvailabilityWindow struct {
	ID        int          `db:"id" json:"id"`
	TrainerID int          `db:"trainer_id" json:"trainer_id"`
	DayOfWeek time.Weekday `db:"day_of_week" json:"day_of_week"`
	StartMin  int          `db:"start_min" json:"-"`
	EndMin    int          `db:"end_min" json:"-"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}

func (w AvailabilityWindow) StartClock() string { return minutesToClock(w.StartMin) }
func (w AvailabilityWindow) EndClock() string   { return minutesToClock(w.EndMin) }

type CreateTrainerRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type AddAvailabilityRequest struct {
	DayOfWeek string `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"` // "HH:MM"
	EndTime   string `json:"end_time" binding:"required"`   // "HH:MM"
}

type AvailabilityResponse struct {
	ID        int    `json:"id"`
	TrainerID int    `json:"trainer_id"`
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func ToAvailabilityResponse(w *AvailabilityWindow) AvailabilityResponse {
	return AvailabilityResponse{
		ID:        w.ID,
		TrainerID: w.TrainerID,
		DayOfWeek: w.DayOfWeek.String(),
		StartTime: w.StartClock(),
		EndTime:   w.EndClock(),
	}
}

var ErrInvalidDayOfWeek = errors.New("invalid day of week")
var ErrInvalidClockTime = errors.New("invalid time, expected HH:MM")

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func ParseDayOfWeek(s string) (time.Weekday, error) {
	day, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, ErrInvalidDayOfWeek
	}
	return day, nil
}

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, ErrInvalidClockTime
	}
	return t.Hour()*60 + t.Minute(), nil
}

func minutesToClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
