package calendar

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/ManuelV2/Ing-software-grupo-13/cmd/models"
	"github.com/ManuelV2/Ing-software-grupo-13/cmd/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type CalendarHandler struct {
	db *gorm.DB
}

func NewCalendarHandler(db *gorm.DB) *CalendarHandler {
	return &CalendarHandler{db: db}
}

func (h *CalendarHandler) RegisterRoutes(router *mux.Router) {
	router.Handle("/calendar/export", utils.AuthMiddleware(http.HandlerFunc(h.ExportWeek))).Methods("GET")
}

// ExportWeek serves the caller's confirmed appointments for the
// current ISO week as an .ics download. The caller's role decides
// which side of the appointment filters: students export what they
// booked, professors export what was booked with them. Days of the
// week that already passed are left out.
func (h *CalendarHandler) ExportWeek(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		http.Error(w, "Profile not found", http.StatusUnauthorized)
		return
	}

	ownerColumn := "student_id"
	if user.Role == models.RoleProfessor {
		ownerColumn = "professor_id"
	}

	now := time.Now()
	currentWeek := utils.WeekNumber(now)
	currentYear := utils.WeekYear(now)

	var appointments []models.Appointment
	if err := h.db.
		Where(ownerColumn+" = ? AND status = ? AND week_number = ? AND year = ?",
			userID, models.StatusConfirmed, currentWeek, currentYear).
		Find(&appointments).Error; err != nil {
		http.Error(w, "Error retrieving appointments", http.StatusInternalServerError)
		return
	}

	// Keep today and later; earlier days of this week already happened.
	todayIdx := int(now.Weekday())
	if todayIdx == 0 {
		todayIdx = 7
	}
	remaining := appointments[:0]
	for _, apt := range appointments {
		if models.DayIndex(apt.Day) >= todayIdx {
			remaining = append(remaining, apt)
		}
	}

	if len(remaining) == 0 {
		http.Error(w, "No confirmed appointments left to export this week", http.StatusNotFound)
		return
	}

	sort.SliceStable(remaining, func(i, j int) bool {
		if models.DayIndex(remaining[i].Day) != models.DayIndex(remaining[j].Day) {
			return models.DayIndex(remaining[i].Day) < models.DayIndex(remaining[j].Day)
		}
		return remaining[i].StartTime < remaining[j].StartTime
	})

	counterpartNames, err := h.resolveCounterparts(remaining, user.Role)
	if err != nil {
		http.Error(w, "Error resolving profiles", http.StatusInternalServerError)
		return
	}

	events := make([]Event, 0, len(remaining))
	for _, apt := range remaining {
		// Pinned-week resolution: the appointment already carries its
		// ISO week, so the export date never drifts across a week
		// boundary relative to when the file is generated.
		start, err := ResolveInWeek(apt.Day, apt.StartTime, apt.WeekNumber, apt.Year, time.Local)
		if err != nil {
			log.Printf("Skipping appointment %d in export: %v", apt.ID, err)
			continue
		}
		end := start.Add(time.Duration(apt.DurationMinutes) * time.Minute)

		title := fmt.Sprintf("Consultation - %s", apt.Modality)
		if user.Role == models.RoleStudent {
			name := counterpartNames[apt.ProfessorID]
			if name == "" {
				name = "Professor"
			}
			title = fmt.Sprintf("Consultation with Prof. %s", name)
		}

		events = append(events, Event{
			ID:          apt.ID,
			Title:       title,
			Description: fmt.Sprintf("Modality: %s\nDuration: %d min\nNotes: %s", apt.Modality, apt.DurationMinutes, apt.Notes),
			Location:    apt.Location,
			Start:       start,
			End:         end,
			Status:      apt.Status,
		})
	}

	filename := fmt.Sprintf("consultas-week%02d-%d.ics", currentWeek, currentYear)
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write([]byte(GenerateICS(events, time.Now())))
}

// resolveCounterparts batch-loads the display names on the other side
// of each appointment (professors for a student export, students for a
// professor export) in a single query.
func (h *CalendarHandler) resolveCounterparts(appointments []models.Appointment, role string) (map[uint]string, error) {
	idSet := make(map[uint]bool)
	for _, apt := range appointments {
		if role == models.RoleStudent {
			idSet[apt.ProfessorID] = true
		} else {
			idSet[apt.StudentID] = true
		}
	}

	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var users []models.User
	if err := h.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Username
	}
	return names, nil
}
