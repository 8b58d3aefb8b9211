package appointment

import (
	"testing"

	"github.com/ManuelV2/Ing-software-grupo-13/cmd/models"
	"gorm.io/gorm"
)

func makeAppointment(id uint, year, week int, day, startTime, status string) models.Appointment {
	return models.Appointment{
		Model:           gorm.Model{ID: id},
		SlotID:          id,
		StudentID:       1,
		ProfessorID:     2,
		Day:             day,
		StartTime:       startTime,
		DurationMinutes: 45,
		Modality:        models.ModalityInPerson,
		Status:          status,
		WeekNumber:      week,
		Year:            year,
	}
}

func ids(appointments []models.Appointment) []uint {
	out := make([]uint, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, a.ID)
	}
	return out
}

func equalIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPartitionEmpty(t *testing.T) {
	p := PartitionByWeek(nil, 10, 2025)
	if len(p.Upcoming) != 0 || len(p.History) != 0 {
		t.Errorf("expected empty partition, got %d upcoming / %d history", len(p.Upcoming), len(p.History))
	}
}

func TestPartitionSplit(t *testing.T) {
	appointments := []models.Appointment{
		makeAppointment(1, 2025, 9, "Monday", "09:00", models.StatusConfirmed),  // last week
		makeAppointment(2, 2025, 10, "Tuesday", "10:00", models.StatusConfirmed), // this week
		makeAppointment(3, 2025, 11, "Monday", "09:00", models.StatusConfirmed),  // next week
		makeAppointment(4, 2024, 50, "Friday", "15:00", models.StatusCancelled),  // last year
		makeAppointment(5, 2026, 2, "Wednesday", "11:00", models.StatusConfirmed), // next year
	}

	p := PartitionByWeek(appointments, 10, 2025)

	if !equalIDs(ids(p.Upcoming), []uint{5, 3, 2}) {
		t.Errorf("upcoming = %v, want [5 3 2]", ids(p.Upcoming))
	}
	if !equalIDs(ids(p.History), []uint{1, 4}) {
		t.Errorf("history = %v, want [1 4]", ids(p.History))
	}

	// Completeness: every input appears in exactly one side.
	if len(p.Upcoming)+len(p.History) != len(appointments) {
		t.Errorf("partition lost rows: %d + %d != %d", len(p.Upcoming), len(p.History), len(appointments))
	}
	seen := make(map[uint]bool)
	for _, id := range append(ids(p.Upcoming), ids(p.History)...) {
		if seen[id] {
			t.Errorf("appointment %d appears twice", id)
		}
		seen[id] = true
	}
}

// Current week belongs to upcoming, not history, even when the week's
// days have mostly passed.
func TestPartitionCurrentWeekIsUpcoming(t *testing.T) {
	appointments := []models.Appointment{
		makeAppointment(1, 2025, 10, "Monday", "09:00", models.StatusConfirmed),
	}
	p := PartitionByWeek(appointments, 10, 2025)
	if len(p.Upcoming) != 1 || len(p.History) != 0 {
		t.Errorf("current-week appointment should be upcoming, got %d upcoming / %d history", len(p.Upcoming), len(p.History))
	}
}

// A week number that is higher in an earlier year must still be
// history: week 52 of 2024 is older than week 1 of 2025.
func TestPartitionYearTakesPrecedence(t *testing.T) {
	appointments := []models.Appointment{
		makeAppointment(1, 2024, 52, "Monday", "09:00", models.StatusConfirmed),
	}
	p := PartitionByWeek(appointments, 1, 2025)
	if len(p.History) != 1 {
		t.Errorf("week 52/2024 should be history relative to week 1/2025")
	}
}

func TestPartitionOrderingWithinWeek(t *testing.T) {
	appointments := []models.Appointment{
		makeAppointment(1, 2025, 10, "Friday", "09:00", models.StatusConfirmed),
		makeAppointment(2, 2025, 10, "Monday", "14:00", models.StatusConfirmed),
		makeAppointment(3, 2025, 10, "Monday", "09:00", models.StatusConfirmed),
	}
	p := PartitionByWeek(appointments, 10, 2025)
	if !equalIDs(ids(p.Upcoming), []uint{3, 2, 1}) {
		t.Errorf("within-week order = %v, want [3 2 1]", ids(p.Upcoming))
	}
}

func TestSplitByStatus(t *testing.T) {
	appointments := []models.Appointment{
		makeAppointment(1, 2025, 10, "Monday", "09:00", models.StatusConfirmed),
		makeAppointment(2, 2025, 10, "Tuesday", "10:00", models.StatusCancelled),
		makeAppointment(3, 2025, 10, "Friday", "11:00", models.StatusConfirmed),
	}
	active, cancelled := SplitByStatus(appointments)
	if !equalIDs(ids(active), []uint{1, 3}) {
		t.Errorf("active = %v, want [1 3]", ids(active))
	}
	if !equalIDs(ids(cancelled), []uint{2}) {
		t.Errorf("cancelled = %v, want [2]", ids(cancelled))
	}
}
