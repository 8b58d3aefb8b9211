package slot

import (
	"github.com/ManuelV2/Ing-software-grupo-13/cmd/models"
)

// BookingRef is the slice of an appointment row that reconciliation
// needs: which slot it holds and who holds it. Only confirmed
// appointments for the week under view should be passed in; cancelled
// ones do not block a slot.
type BookingRef struct {
	SlotID    uint
	StudentID uint
}

// SlotStatus is a slot enriched with the viewer-dependent booking flags
// the browse view renders.
type SlotStatus struct {
	models.AvailableSlot
	IsBooked       bool `json:"is_booked"`
	IsUnavailable  bool `json:"is_unavailable"`
	BookedByOthers bool `json:"booked_by_others"`
}

// Reconcile cross-references slots with the week's confirmed bookings.
// actingUserID 0 means an anonymous viewer: IsBooked stays false
// everywhere and only IsUnavailable/BookedByOthers carry information.
//
// The unique index on appointments means a slot should never have more
// than one confirmed booking per week, but the flags are computed over
// "one or more" so a violated assumption degrades to an unavailable
// slot instead of a wrong one.
func Reconcile(slots []models.AvailableSlot, bookings []BookingRef, actingUserID uint) []SlotStatus {
	bySlot := make(map[uint][]BookingRef)
	for _, b := range bookings {
		bySlot[b.SlotID] = append(bySlot[b.SlotID], b)
	}

	statuses := make([]SlotStatus, 0, len(slots))
	for _, s := range slots {
		slotBookings := bySlot[s.ID]

		bookedByCaller := false
		if actingUserID != 0 {
			for _, b := range slotBookings {
				if b.StudentID == actingUserID {
					bookedByCaller = true
					break
				}
			}
		}
		bookedByAnyone := len(slotBookings) > 0

		statuses = append(statuses, SlotStatus{
			AvailableSlot:  s,
			IsBooked:       bookedByCaller,
			IsUnavailable:  bookedByAnyone,
			BookedByOthers: bookedByAnyone && !bookedByCaller,
		})
	}

	return statuses
}
