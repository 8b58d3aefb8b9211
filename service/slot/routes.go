package slot

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/ManuelV2/Ing-software-grupo-13/cmd/models"
	"github.com/ManuelV2/Ing-software-grupo-13/cmd/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type SlotHandler struct {
	db *gorm.DB
}

func NewSlotHandler(db *gorm.DB) *SlotHandler {
	return &SlotHandler{db: db}
}

func (h *SlotHandler) RegisterRoutes(router *mux.Router) {
	router.Handle("/professors/{professorId}/slots", utils.AuthMiddleware(http.HandlerFunc(h.CreateSlot))).Methods("POST")
	router.HandleFunc("/professors/{professorId}/slots", h.GetProfessorSlots).Methods("GET")
	router.Handle("/professors/{professorId}/slots/{id}", utils.AuthMiddleware(http.HandlerFunc(h.UpdateSlot))).Methods("PUT")
	router.Handle("/professors/{professorId}/slots/{id}", utils.AuthMiddleware(http.HandlerFunc(h.DeleteSlot))).Methods("DELETE")
	router.Handle("/slots", utils.OptionalAuthMiddleware(http.HandlerFunc(h.BrowseSlots))).Methods("GET")
}

// requireOwner checks that the authenticated caller is the professor
// named in the URL. Slots are mutated only by their owner.
func (h *SlotHandler) requireOwner(r *http.Request, professorID uint) (int, string) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		return http.StatusUnauthorized, "Unauthorized"
	}
	if userID != professorID {
		return http.StatusForbidden, "You can only manage your own slots"
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return http.StatusUnauthorized, "Profile not found"
	}
	if user.Role != models.RoleProfessor {
		return http.StatusForbidden, "Only professors can manage slots"
	}
	return 0, ""
}

func validateSlot(s *models.AvailableSlot) string {
	if models.DayIndex(s.Day) == 0 {
		return "Day must be a weekday (Monday through Friday)"
	}
	if _, err := time.Parse("15:04", s.StartTime); err != nil {
		return "Start time must be in HH:MM format"
	}
	if s.DurationMinutes <= 0 {
		return "Duration must be positive"
	}
	if len(s.Modalities) == 0 {
		return "At least one modality is required"
	}
	for _, m := range s.Modalities {
		if !models.ValidModality(m) {
			return "Unknown modality: " + m
		}
	}
	return ""
}

func sortSlots(slots []models.AvailableSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if models.DayIndex(slots[i].Day) != models.DayIndex(slots[j].Day) {
			return models.DayIndex(slots[i].Day) < models.DayIndex(slots[j].Day)
		}
		return slots[i].StartTime < slots[j].StartTime
	})
}

func (h *SlotHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	professorID, err := strconv.ParseUint(vars["professorId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid professor ID", http.StatusBadRequest)
		return
	}

	if status, msg := h.requireOwner(r, uint(professorID)); status != 0 {
		http.Error(w, msg, status)
		return
	}

	var slot models.AvailableSlot
	if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if msg := validateSlot(&slot); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	slot.ProfessorID = uint(professorID)

	if err := h.db.Create(&slot).Error; err != nil {
		http.Error(w, "Error creating slot", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(slot)
}

// GetProfessorSlots lists a professor's weekly blocks ordered by day
// then start time. No slots is an empty list, not an error.
func (h *SlotHandler) GetProfessorSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	professorID, err := strconv.ParseUint(vars["professorId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid professor ID", http.StatusBadRequest)
		return
	}

	var slots []models.AvailableSlot
	if err := h.db.Where("professor_id = ?", professorID).Find(&slots).Error; err != nil {
		http.Error(w, "Error retrieving slots", http.StatusInternalServerError)
		return
	}
	sortSlots(slots)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(slots)
}

func (h *SlotHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	professorID, err := strconv.ParseUint(vars["professorId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid professor ID", http.StatusBadRequest)
		return
	}

	slotID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid slot ID", http.StatusBadRequest)
		return
	}

	if status, msg := h.requireOwner(r, uint(professorID)); status != 0 {
		http.Error(w, msg, status)
		return
	}

	var updateData models.AvailableSlot
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if msg := validateSlot(&updateData); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	var slot models.AvailableSlot
	if err := h.db.Where("id = ? AND professor_id = ?", slotID, professorID).First(&slot).Error; err != nil {
		http.Error(w, "Slot not found", http.StatusNotFound)
		return
	}

	slot.Day = updateData.Day
	slot.StartTime = updateData.StartTime
	slot.DurationMinutes = updateData.DurationMinutes
	slot.Modalities = updateData.Modalities
	slot.Location = updateData.Location

	if err := h.db.Save(&slot).Error; err != nil {
		http.Error(w, "Error updating slot", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(slot)
}

// DeleteSlot removes the weekly template. Existing appointments keep
// their copied day/time data, so history survives the deletion.
func (h *SlotHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	professorID, err := strconv.ParseUint(vars["professorId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid professor ID", http.StatusBadRequest)
		return
	}

	slotID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid slot ID", http.StatusBadRequest)
		return
	}

	if status, msg := h.requireOwner(r, uint(professorID)); status != 0 {
		http.Error(w, msg, status)
		return
	}

	result := h.db.Where("id = ? AND professor_id = ?", slotID, professorID).Delete(&models.AvailableSlot{})
	if result.Error != nil {
		http.Error(w, "Error deleting slot", http.StatusInternalServerError)
		return
	}

	if result.RowsAffected == 0 {
		http.Error(w, "Slot not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Slot deleted successfully",
	})
}

// BrowseSlots is the student-facing availability view: every slot in
// the system cross-referenced with this ISO week's confirmed bookings.
// Flags are recomputed from the database on every call; nothing about
// availability is trusted from a previous load since another student
// may have booked in between.
func (h *SlotHandler) BrowseSlots(w http.ResponseWriter, r *http.Request) {
	// Anonymous browsing is allowed; userID stays 0 without a token.
	userID, _ := utils.GetUserIDFromContext(r)

	now := time.Now()
	currentWeek := utils.WeekNumber(now)
	currentYear := utils.WeekYear(now)

	query := h.db.Model(&models.AvailableSlot{}).Preload("Professor")
	if day := r.URL.Query().Get("day"); day != "" {
		query = query.Where("day = ?", day)
	}
	if professorID := r.URL.Query().Get("professor_id"); professorID != "" {
		query = query.Where("professor_id = ?", professorID)
	}

	var slots []models.AvailableSlot
	if err := query.Find(&slots).Error; err != nil {
		http.Error(w, "Error retrieving slots", http.StatusInternalServerError)
		return
	}
	sortSlots(slots)

	slotIDs := make([]uint, 0, len(slots))
	for _, s := range slots {
		slotIDs = append(slotIDs, s.ID)
	}

	var bookings []BookingRef
	if len(slotIDs) > 0 {
		if err := h.db.Model(&models.Appointment{}).
			Select("slot_id", "student_id").
			Where("slot_id IN ? AND week_number = ? AND year = ? AND status = ?",
				slotIDs, currentWeek, currentYear, models.StatusConfirmed).
			Find(&bookings).Error; err != nil {
			http.Error(w, "Error retrieving bookings", http.StatusInternalServerError)
			return
		}
	}

	statuses := Reconcile(slots, bookings, userID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"week_number": currentWeek,
		"year":        currentYear,
		"slots":       statuses,
	})
}
