package appointment

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/ManuelV2/Ing-software-grupo-13/cmd/models"
	"github.com/ManuelV2/Ing-software-grupo-13/cmd/utils"
	"github.com/ManuelV2/Ing-software-grupo-13/service/notification"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type AppointmentHandler struct {
	db     *gorm.DB
	mailer *notification.Mailer
}

// NewAppointmentHandler wires the booking write path. mailer may be
// nil; bookings then succeed without confirmation mail.
func NewAppointmentHandler(db *gorm.DB, mailer *notification.Mailer) *AppointmentHandler {
	return &AppointmentHandler{db: db, mailer: mailer}
}

func (h *AppointmentHandler) RegisterRoutes(router *mux.Router) {
	router.Handle("/appointments/book", utils.AuthMiddleware(http.HandlerFunc(h.BookAppointment))).Methods("POST")
	router.Handle("/appointments/mine", utils.AuthMiddleware(http.HandlerFunc(h.GetMyAppointments))).Methods("GET")
	router.Handle("/appointments/professor", utils.AuthMiddleware(http.HandlerFunc(h.GetProfessorAppointments))).Methods("GET")
	router.Handle("/appointments/{id}/cancel", utils.AuthMiddleware(http.HandlerFunc(h.CancelAppointment))).Methods("PATCH")
	router.Handle("/appointments/{id}/notes", utils.AuthMiddleware(http.HandlerFunc(h.UpdateNotes))).Methods("PATCH")
}

// BookAppointment creates a confirmed appointment for the current ISO
// week. There is no availability pre-check here: the partial unique
// index on appointments is the authority, and a duplicate-key error on
// insert means another student won the slot.
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	studentID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var bookingRequest struct {
		SlotID   uint   `json:"slot_id"`
		Modality string `json:"modality"`
		Notes    string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&bookingRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var student models.User
	if err := h.db.First(&student, studentID).Error; err != nil {
		http.Error(w, "Profile not found", http.StatusUnauthorized)
		return
	}
	if student.Role != models.RoleStudent {
		http.Error(w, "Only students can book consultations", http.StatusForbidden)
		return
	}

	var slot models.AvailableSlot
	if err := h.db.Preload("Professor").First(&slot, bookingRequest.SlotID).Error; err != nil {
		http.Error(w, "Slot not found", http.StatusNotFound)
		return
	}

	if !slot.HasModality(bookingRequest.Modality) {
		http.Error(w, "Slot does not offer the requested modality", http.StatusBadRequest)
		return
	}

	now := time.Now()
	appointment := models.Appointment{
		SlotID:          slot.ID,
		StudentID:       studentID,
		ProfessorID:     slot.ProfessorID,
		Day:             slot.Day,
		StartTime:       slot.StartTime,
		DurationMinutes: slot.DurationMinutes,
		Modality:        bookingRequest.Modality,
		Location:        slot.Location,
		Status:          models.StatusConfirmed,
		Notes:           bookingRequest.Notes,
		WeekNumber:      utils.WeekNumber(now),
		Year:            utils.WeekYear(now),
	}

	if err := h.db.Create(&appointment).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			http.Error(w, "Slot already booked for this week", http.StatusConflict)
			return
		}
		http.Error(w, "Error creating appointment", http.StatusInternalServerError)
		return
	}

	// Post-commit hook: confirmation mail must never undo a booking.
	if h.mailer != nil && slot.Professor != nil {
		details := notification.BookingDetails{
			StudentEmail:    student.Email,
			ProfessorEmail:  slot.Professor.Email,
			StudentName:     student.Username,
			ProfessorName:   slot.Professor.Username,
			Day:             appointment.Day,
			StartTime:       appointment.StartTime,
			DurationMinutes: appointment.DurationMinutes,
			Modality:        appointment.Modality,
			Location:        appointment.Location,
		}
		go func() {
			if err := h.mailer.SendBookingEmails(details); err != nil {
				log.Printf("Error sending booking emails for appointment %d: %v", appointment.ID, err)
			}
		}()
	}

	h.db.Preload("Student").Preload("Professor").First(&appointment, appointment.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(appointment)
}

// GetMyAppointments returns the caller's full booking history split
// into current/upcoming vs. past ISO weeks, each side further split by
// status. A student with no bookings gets empty lists.
func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	studentID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var appointments []models.Appointment
	if err := h.db.Preload("Professor").
		Where("student_id = ?", studentID).
		Find(&appointments).Error; err != nil {
		http.Error(w, "Error retrieving appointments", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	currentWeek := utils.WeekNumber(now)
	currentYear := utils.WeekYear(now)

	p := PartitionByWeek(appointments, currentWeek, currentYear)
	upcomingActive, upcomingCancelled := SplitByStatus(p.Upcoming)
	historyActive, historyCancelled := SplitByStatus(p.History)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"week_number": currentWeek,
		"year":        currentYear,
		"upcoming": map[string]interface{}{
			"active":    emptyIfNil(upcomingActive),
			"cancelled": emptyIfNil(upcomingCancelled),
		},
		"history": map[string]interface{}{
			"active":    emptyIfNil(historyActive),
			"cancelled": emptyIfNil(historyCancelled),
		},
	})
}

// GetProfessorAppointments lists the bookings students made against
// the calling professor's slots for the current ISO week, with the
// students' profiles resolved for display.
func (h *AppointmentHandler) GetProfessorAppointments(w http.ResponseWriter, r *http.Request) {
	professorID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var professor models.User
	if err := h.db.First(&professor, professorID).Error; err != nil {
		http.Error(w, "Profile not found", http.StatusUnauthorized)
		return
	}
	if professor.Role != models.RoleProfessor {
		http.Error(w, "Only professors can view received bookings", http.StatusForbidden)
		return
	}

	now := time.Now()
	currentWeek := utils.WeekNumber(now)
	currentYear := utils.WeekYear(now)

	var appointments []models.Appointment
	if err := h.db.Preload("Student").
		Where("professor_id = ? AND week_number = ? AND year = ?", professorID, currentWeek, currentYear).
		Find(&appointments).Error; err != nil {
		http.Error(w, "Error retrieving appointments", http.StatusInternalServerError)
		return
	}

	// PartitionByWeek doubles as the in-week sort (day, start time).
	sorted := PartitionByWeek(appointments, currentWeek, currentYear)
	active, cancelled := SplitByStatus(sorted.Upcoming)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"week_number": currentWeek,
		"year":        currentYear,
		"active":      emptyIfNil(active),
		"cancelled":   emptyIfNil(cancelled),
	})
}

// CancelAppointment flips a confirmed appointment to cancelled. The
// transition is one-way and the row is kept; either the booking
// student or the professor on the appointment may cancel.
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid appointment ID", http.StatusBadRequest)
		return
	}

	var appointment models.Appointment
	if err := h.db.First(&appointment, appointmentID).Error; err != nil {
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return
	}

	if appointment.StudentID != userID && appointment.ProfessorID != userID {
		http.Error(w, "You can only cancel your own appointments", http.StatusForbidden)
		return
	}

	if appointment.Status == models.StatusCancelled {
		http.Error(w, "Appointment is already cancelled", http.StatusConflict)
		return
	}

	if err := h.db.Model(&appointment).Update("status", models.StatusCancelled).Error; err != nil {
		http.Error(w, "Error cancelling appointment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Appointment cancelled successfully",
	})
}

// UpdateNotes edits the free-text notes on a booking. Notes belong to
// the student who made the booking.
func (h *AppointmentHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid appointment ID", http.StatusBadRequest)
		return
	}

	var notesUpdate struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&notesUpdate); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var appointment models.Appointment
	if err := h.db.First(&appointment, appointmentID).Error; err != nil {
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return
	}

	if appointment.StudentID != userID {
		http.Error(w, "You can only edit notes on your own appointments", http.StatusForbidden)
		return
	}

	if err := h.db.Model(&appointment).Update("notes", notesUpdate.Notes).Error; err != nil {
		http.Error(w, "Error updating notes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appointment)
}

func emptyIfNil(appointments []models.Appointment) []models.Appointment {
	if appointments == nil {
		return []models.Appointment{}
	}
	return appointments
}
