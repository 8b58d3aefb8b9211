package notification

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	mailer *Mailer
}

// NewNotificationHandler accepts a nil mailer; requests then fail with
// a configuration error instead of the server refusing to start, so
// the booking API stays usable when mail is not set up.
func NewNotificationHandler(mailer *Mailer) *NotificationHandler {
	return &NotificationHandler{mailer: mailer}
}

func (h *NotificationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/notifications/booking", h.SendBookingNotification).Methods("POST")
}

// SendBookingNotification dispatches the two confirmation mails for a
// booking. Missing recipient addresses are a client error; a missing
// mail relay configuration is a server error.
func (h *NotificationHandler) SendBookingNotification(w http.ResponseWriter, r *http.Request) {
	var details BookingDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if details.StudentEmail == "" || details.ProfessorEmail == "" {
		http.Error(w, "Student and professor email addresses are required", http.StatusBadRequest)
		return
	}

	if h.mailer == nil {
		http.Error(w, "Mail configuration incomplete", http.StatusInternalServerError)
		return
	}

	if err := h.mailer.SendBookingEmails(details); err != nil {
		log.Printf("Error sending booking emails: %v", err)
		http.Error(w, "Error sending booking emails", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ok": true,
	})
}
