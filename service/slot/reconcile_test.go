package slot

import (
	"reflect"
	"testing"

	"github.com/ManuelV2/Ing-software-grupo-13/cmd/models"
	"gorm.io/gorm"
)

func makeSlot(id uint, day, startTime string) models.AvailableSlot {
	return models.AvailableSlot{
		Model:           gorm.Model{ID: id},
		ProfessorID:     100,
		Day:             day,
		StartTime:       startTime,
		DurationMinutes: 45,
		Modalities:      []string{models.ModalityInPerson, models.ModalityOnline},
		Location:        "Office 301, Building A",
	}
}

func flagsOf(statuses []SlotStatus) map[uint][3]bool {
	out := make(map[uint][3]bool, len(statuses))
	for _, s := range statuses {
		out[s.ID] = [3]bool{s.IsBooked, s.IsUnavailable, s.BookedByOthers}
	}
	return out
}

func TestReconcileNoBookings(t *testing.T) {
	slots := []models.AvailableSlot{makeSlot(1, "Monday", "09:00"), makeSlot(2, "Tuesday", "10:00")}

	statuses := Reconcile(slots, nil, 7)
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	for _, s := range statuses {
		if s.IsBooked || s.IsUnavailable || s.BookedByOthers {
			t.Errorf("slot %d: expected all flags false, got %+v", s.ID, s)
		}
	}
}

func TestReconcileBookedByCaller(t *testing.T) {
	slots := []models.AvailableSlot{makeSlot(1, "Monday", "09:00")}
	bookings := []BookingRef{{SlotID: 1, StudentID: 7}}

	statuses := Reconcile(slots, bookings, 7)
	if !statuses[0].IsBooked {
		t.Error("expected IsBooked = true for caller's own booking")
	}
	if !statuses[0].IsUnavailable {
		t.Error("expected IsUnavailable = true when any confirmed booking exists")
	}
	if statuses[0].BookedByOthers {
		t.Error("expected BookedByOthers = false for caller's own booking")
	}
}

func TestReconcileBookedByOther(t *testing.T) {
	slots := []models.AvailableSlot{makeSlot(1, "Monday", "09:00")}
	bookings := []BookingRef{{SlotID: 1, StudentID: 99}}

	statuses := Reconcile(slots, bookings, 7)
	if statuses[0].IsBooked {
		t.Error("expected IsBooked = false for another student's booking")
	}
	if !statuses[0].IsUnavailable || !statuses[0].BookedByOthers {
		t.Errorf("expected unavailable and booked-by-others, got %+v", statuses[0])
	}
}

func TestReconcileAnonymousViewer(t *testing.T) {
	slots := []models.AvailableSlot{makeSlot(1, "Monday", "09:00"), makeSlot(2, "Tuesday", "10:00")}
	bookings := []BookingRef{{SlotID: 1, StudentID: 7}}

	statuses := Reconcile(slots, bookings, 0)
	got := flagsOf(statuses)
	if got[1] != [3]bool{false, true, true} {
		t.Errorf("anonymous viewer, booked slot: got %v", got[1])
	}
	if got[2] != [3]bool{false, false, false} {
		t.Errorf("anonymous viewer, free slot: got %v", got[2])
	}
}

// More than one confirmed booking per slot per week violates the
// storage invariant, but reconciliation must still just say
// "unavailable" rather than assume exactly one row.
func TestReconcileToleratesDuplicateBookings(t *testing.T) {
	slots := []models.AvailableSlot{makeSlot(1, "Monday", "09:00")}
	bookings := []BookingRef{
		{SlotID: 1, StudentID: 99},
		{SlotID: 1, StudentID: 7},
	}

	statuses := Reconcile(slots, bookings, 7)
	if !statuses[0].IsBooked || !statuses[0].IsUnavailable || statuses[0].BookedByOthers {
		t.Errorf("duplicate bookings: got %+v", statuses[0])
	}
}

func TestReconcileIdempotent(t *testing.T) {
	slots := []models.AvailableSlot{makeSlot(1, "Monday", "09:00"), makeSlot(2, "Friday", "16:00")}
	bookings := []BookingRef{{SlotID: 2, StudentID: 3}}

	first := Reconcile(slots, bookings, 3)
	second := Reconcile(slots, bookings, 3)
	if !reflect.DeepEqual(first, second) {
		t.Error("reconciling the same input twice produced different flags")
	}
}
