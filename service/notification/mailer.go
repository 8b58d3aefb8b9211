package notification

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer sends booking confirmation mail through the configured SMTP
// relay. Construct it once at startup; a missing configuration is a
// startup error, not something to discover per request.
type Mailer struct {
	host     string
	port     int
	user     string
	pass     string
	fromName string
}

func NewMailerFromEnv() (*Mailer, error) {
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")

	if host == "" || portStr == "" || user == "" || pass == "" {
		return nil, fmt.Errorf("incomplete mail configuration: SMTP_HOST, SMTP_PORT, SMTP_USER and SMTP_PASS are required")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port: %v", err)
	}

	fromName := os.Getenv("MAIL_FROM_NAME")
	if fromName == "" {
		fromName = "University Booking System"
	}

	return &Mailer{host: host, port: port, user: user, pass: pass, fromName: fromName}, nil
}

// BookingDetails carries everything the two confirmation mails mention.
type BookingDetails struct {
	StudentEmail    string `json:"studentEmail"`
	ProfessorEmail  string `json:"professorEmail"`
	StudentName     string `json:"studentName,omitempty"`
	ProfessorName   string `json:"professorName,omitempty"`
	Day             string `json:"day"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"duration"`
	Modality        string `json:"modality"`
	Location        string `json:"location"`
}

func (d BookingDetails) summary() string {
	return fmt.Sprintf("Day: %s\nTime: %s\nDuration: %d minutes\nModality: %s\nLocation / link: %s",
		d.Day, d.StartTime, d.DurationMinutes, d.Modality, d.Location)
}

// SendBookingEmails sends the student-facing and professor-facing
// confirmation mails for one booking. Both go out in a single SMTP
// session.
func (m *Mailer) SendBookingEmails(d BookingDetails) error {
	studentName := d.StudentName
	if studentName == "" {
		studentName = "student"
	}
	professorName := d.ProfessorName
	if professorName == "" {
		professorName = "your professor"
	}

	from := fmt.Sprintf("%s <%s>", m.fromName, m.user)

	toStudent := gomail.NewMessage()
	toStudent.SetHeader("From", from)
	toStudent.SetHeader("To", d.StudentEmail)
	toStudent.SetHeader("Subject", "Consultation booking confirmed")
	toStudent.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYour consultation with %s has been confirmed.\n\n%s\n\nIf you cannot attend, please cancel the booking in the system.",
		studentName, professorName, d.summary()))

	toProfessor := gomail.NewMessage()
	toProfessor.SetHeader("From", from)
	toProfessor.SetHeader("To", d.ProfessorEmail)
	toProfessor.SetHeader("Subject", "New consultation booking")
	toProfessor.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nStudent %s has booked a consultation with you.\n\n%s\n\nYou can review and manage it from your professor dashboard.",
		professorName, studentName, d.summary()))

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return dialer.DialAndSend(toStudent, toProfessor)
}
