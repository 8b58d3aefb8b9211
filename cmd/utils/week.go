package utils

import "time"

// ISO-8601 week numbering: weeks start on Monday and week 1 is the week
// containing the year's first Thursday. Both functions work by shifting
// the date to the Thursday of its own week; the week-year is the
// calendar year of that Thursday, which is what makes the edges right
// (Jan 1, 2023 is a Sunday and belongs to week 52 of 2022).

// isoWeekday returns 1 (Monday) through 7 (Sunday).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return wd
}

// thursdayOf shifts t to the Thursday of the ISO week t falls in.
func thursdayOf(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return t.AddDate(0, 0, 4-isoWeekday(t))
}

// WeekNumber returns the ISO-8601 week number (1-53) of t.
func WeekNumber(t time.Time) int {
	return (thursdayOf(t).YearDay() + 6) / 7
}

// WeekYear returns the ISO-8601 week-year of t. At year boundaries this
// can differ from t.Year() by one in either direction.
func WeekYear(t time.Time) int {
	return thursdayOf(t).Year()
}

// MondayOfISOWeek returns the date (midnight in loc) of the Monday that
// starts the given ISO week. It walks from January 4th, which by
// definition always lies in week 1 of its year.
func MondayOfISOWeek(year, week int, loc *time.Location) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	week1Monday := jan4.AddDate(0, 0, 1-isoWeekday(jan4))
	return week1Monday.AddDate(0, 0, (week-1)*7)
}
