package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	ModalityInPerson = "in-person"
	ModalityOnline   = "online"
)

// AvailableSlot is a professor's recurring weekly consultation block.
// It is a template, not a dated occurrence: the same slot repeats every
// week until the professor deletes it.
type AvailableSlot struct {
	gorm.Model
	ProfessorID     uint           `gorm:"column:professor_id;not null;index" json:"professor_id"`
	Day             string         `gorm:"column:day;size:20;not null" json:"day"`
	StartTime       string         `gorm:"column:start_time;size:5;not null" json:"start_time"`
	DurationMinutes int            `gorm:"column:duration;not null" json:"duration"`
	Modalities      pq.StringArray `gorm:"column:modalities;type:text[];not null" json:"modalities"`
	Location        string         `gorm:"column:location;size:255" json:"location"`

	Professor *User `gorm:"foreignKey:ProfessorID" json:"professor,omitempty"`
}

func (AvailableSlot) TableName() string {
	return "available_slots"
}

var weekdayIndex = map[string]int{
	"Monday":    1,
	"Tuesday":   2,
	"Wednesday": 3,
	"Thursday":  4,
	"Friday":    5,
}

// DayIndex returns 1..5 for Monday..Friday and 0 for anything else.
// Used both for validation and for chronological ordering within a week.
func DayIndex(day string) int {
	return weekdayIndex[day]
}

// ValidModality reports whether m is a delivery mode slots may offer.
func ValidModality(m string) bool {
	return m == ModalityInPerson || m == ModalityOnline
}

// HasModality reports whether the slot offers modality m.
func (s *AvailableSlot) HasModality(m string) bool {
	for _, mod := range s.Modalities {
		if mod == m {
			return true
		}
	}
	return false
}
