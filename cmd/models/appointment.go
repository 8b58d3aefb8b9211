package models

import (
	"gorm.io/gorm"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Appointment is one dated booking of a slot for a specific ISO week.
// SlotID is a weak reference: the originating slot may be edited or
// deleted later without invalidating booking history, so the slot's
// day/time/location are copied onto the appointment at booking time.
// Rows are never deleted; cancellation flips Status.
//
// The partial unique index enforces the booking invariant: at most one
// confirmed appointment per (slot, ISO week, ISO year). Losing booking
// attempts surface as duplicate-key errors on insert.
type Appointment struct {
	gorm.Model
	SlotID          uint   `gorm:"column:slot_id;not null;uniqueIndex:uniq_confirmed_slot_week,where:status = 'confirmed'" json:"slot_id"`
	StudentID       uint   `gorm:"column:student_id;not null;index" json:"student_id"`
	ProfessorID     uint   `gorm:"column:professor_id;not null;index" json:"professor_id"`
	Day             string `gorm:"column:day;size:20;not null" json:"day"`
	StartTime       string `gorm:"column:start_time;size:5;not null" json:"start_time"`
	DurationMinutes int    `gorm:"column:duration;not null" json:"duration"`
	Modality        string `gorm:"column:modality;size:20;not null" json:"modality"`
	Location        string `gorm:"column:location;size:255" json:"location"`
	Status          string `gorm:"column:status;size:20;not null;default:confirmed" json:"status"`
	Notes           string `gorm:"column:notes;type:text" json:"notes,omitempty"`
	WeekNumber      int    `gorm:"column:week_number;not null;uniqueIndex:uniq_confirmed_slot_week,where:status = 'confirmed'" json:"week_number"`
	Year            int    `gorm:"column:year;not null;uniqueIndex:uniq_confirmed_slot_week,where:status = 'confirmed'" json:"year"`

	Student   *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Professor *User `gorm:"foreignKey:ProfessorID" json:"professor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
