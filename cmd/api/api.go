package api

import (
	"log"
	"net/http"
	"os"

	"github.com/ManuelV2/Ing-software-grupo-13/service/appointment"
	"github.com/ManuelV2/Ing-software-grupo-13/service/calendar"
	"github.com/ManuelV2/Ing-software-grupo-13/service/notification"
	"github.com/ManuelV2/Ing-software-grupo-13/service/slot"
	"github.com/ManuelV2/Ing-software-grupo-13/service/user"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type APIServer struct {
	address string
	db      *gorm.DB
}

func NewApiServer(address string, db *gorm.DB) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
	}
}

func (s *APIServer) Run() error {
	router := mux.NewRouter()
	subrouter := router.PathPrefix("/api/v1").Subrouter()

	// SMTP credentials are optional at startup; booking still works
	// without them, the confirmation emails are just skipped.
	mailer, err := notification.NewMailerFromEnv()
	if err != nil {
		log.Printf("Mailer disabled: %v", err)
		mailer = nil
	}

	userHandler := user.NewHandler(s.db)
	userHandler.RegisterRoutes(subrouter)

	slotHandler := slot.NewSlotHandler(s.db)
	slotHandler.RegisterRoutes(subrouter)

	appointmentHandler := appointment.NewAppointmentHandler(s.db, mailer)
	appointmentHandler.RegisterRoutes(subrouter)

	calendarHandler := calendar.NewCalendarHandler(s.db)
	calendarHandler.RegisterRoutes(subrouter)

	notificationHandler := notification.NewNotificationHandler(mailer)
	notificationHandler.RegisterRoutes(subrouter)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{corsOrigin()}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Println("Server running at", s.address)
	return http.ListenAndServe(s.address, handlers.LoggingHandler(os.Stdout, cors(router)))
}

func corsOrigin() string {
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		return origin
	}
	return "*"
}
