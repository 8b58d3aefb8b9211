package calendar

import (
	"fmt"
	"time"

	"github.com/ManuelV2/Ing-software-grupo-13/cmd/models"
	"github.com/ManuelV2/Ing-software-grupo-13/cmd/utils"
)

// A slot stores a symbolic weekday plus "HH:MM"; turning that into a
// concrete timestamp needs a week to anchor it. Two anchorings exist
// and they disagree across week boundaries, so each is a separate
// function and every call site picks one deliberately:
//
//   - ResolveInWeek pins the weekday inside an exact ISO week. Use it
//     for appointments, which carry their (week_number, year).
//   - ResolveNextOccurrence finds the nearest occurrence of the
//     weekday at or after today. Use it for undated slot templates.

func parseClock(startTime string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", startTime)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start time %q: %w", startTime, err)
	}
	return t.Hour(), t.Minute(), nil
}

// ResolveInWeek returns the timestamp of day+startTime within the
// given ISO (week, year), in loc.
func ResolveInWeek(day, startTime string, week, year int, loc *time.Location) (time.Time, error) {
	dayIdx := models.DayIndex(day)
	if dayIdx == 0 {
		return time.Time{}, fmt.Errorf("unknown weekday %q", day)
	}

	hour, minute, err := parseClock(startTime)
	if err != nil {
		return time.Time{}, err
	}

	monday := utils.MondayOfISOWeek(year, week, loc)
	date := monday.AddDate(0, 0, dayIdx-1)
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc), nil
}

// ResolveNextOccurrence returns the timestamp of the next occurrence
// of day+startTime relative to now. Today counts as an occurrence even
// when the clock time has already passed.
func ResolveNextOccurrence(day, startTime string, now time.Time) (time.Time, error) {
	dayIdx := models.DayIndex(day)
	if dayIdx == 0 {
		return time.Time{}, fmt.Errorf("unknown weekday %q", day)
	}

	hour, minute, err := parseClock(startTime)
	if err != nil {
		return time.Time{}, err
	}

	todayIdx := int(now.Weekday())
	if todayIdx == 0 {
		todayIdx = 7
	}

	daysToAdd := dayIdx - todayIdx
	if daysToAdd < 0 {
		daysToAdd += 7
	}

	date := now.AddDate(0, 0, daysToAdd)
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, now.Location()), nil
}
