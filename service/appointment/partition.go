package appointment

import (
	"sort"

	"github.com/ManuelV2/Ing-software-grupo-13/cmd/models"
)

// Partition splits a user's full appointment history around the
// current ISO week. Upcoming holds the current week and everything
// after it; History holds strictly earlier weeks. Every input row lands
// in exactly one side, cancelled rows included, so history stays
// auditable.
type Partition struct {
	Upcoming []models.Appointment
	History  []models.Appointment
}

// PartitionByWeek orders appointments by recency (year desc, week
// desc, then day and start time ascending within a week) and splits
// them against the given current (week, year).
func PartitionByWeek(appointments []models.Appointment, currentWeek, currentYear int) Partition {
	sorted := make([]models.Appointment, len(appointments))
	copy(sorted, appointments)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.WeekNumber != b.WeekNumber {
			return a.WeekNumber > b.WeekNumber
		}
		if models.DayIndex(a.Day) != models.DayIndex(b.Day) {
			return models.DayIndex(a.Day) < models.DayIndex(b.Day)
		}
		return a.StartTime < b.StartTime
	})

	var p Partition
	for _, apt := range sorted {
		if apt.Year < currentYear || (apt.Year == currentYear && apt.WeekNumber < currentWeek) {
			p.History = append(p.History, apt)
		} else {
			p.Upcoming = append(p.Upcoming, apt)
		}
	}
	return p
}

// SplitByStatus separates confirmed from cancelled appointments for
// independent display. Anything with an unexpected status ends up in
// neither list.
func SplitByStatus(appointments []models.Appointment) (active, cancelled []models.Appointment) {
	for _, apt := range appointments {
		switch apt.Status {
		case models.StatusConfirmed:
			active = append(active, apt)
		case models.StatusCancelled:
			cancelled = append(cancelled, apt)
		}
	}
	return active, cancelled
}
