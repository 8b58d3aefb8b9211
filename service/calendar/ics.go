package calendar

import (
	"fmt"
	"strings"
	"time"
)

// uidNamespace suffixes every event UID so exports from this system
// never collide with events from other calendars.
const uidNamespace = "reservas-consultas.app"

// Event is a fully resolved calendar entry, ready to serialize. Start
// and End are concrete timestamps; Description and Location may be
// empty, in which case their lines are omitted from the output.
type Event struct {
	ID          uint
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Status      string
}

// formatICSTime renders a timestamp in the UTC form iCalendar expects.
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeText escapes the characters the iCalendar TEXT type reserves:
// backslashes, literal newlines, commas and semicolons. Backslashes go
// first so the escapes themselves are not re-escaped.
func escapeText(text string) string {
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, "\n", "\\n")
	text = strings.ReplaceAll(text, ",", "\\,")
	text = strings.ReplaceAll(text, ";", "\\;")
	return text
}

// GenerateICS serializes events into a single VCALENDAR document with
// CRLF line terminators and a 15-minute display reminder per event.
// now becomes each event's DTSTAMP; everything else is a pure function
// of the input.
func GenerateICS(events []Event, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Sistema Reserva Consultas//ES",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:Consultas Universitarias",
		"X-WR-TIMEZONE:America/Santiago",
		"X-WR-CALDESC:Horarios de consultas con profesores",
	}

	for _, event := range events {
		status := strings.ToUpper(event.Status)
		if status == "" {
			status = "CONFIRMED"
		}

		lines = append(lines,
			"BEGIN:VEVENT",
			fmt.Sprintf("UID:appointment-%d@%s", event.ID, uidNamespace),
			"DTSTAMP:"+formatICSTime(now),
			"DTSTART:"+formatICSTime(event.Start),
			"DTEND:"+formatICSTime(event.End),
			"SUMMARY:"+escapeText(event.Title),
		)
		if event.Description != "" {
			lines = append(lines, "DESCRIPTION:"+escapeText(event.Description))
		}
		if event.Location != "" {
			lines = append(lines, "LOCATION:"+escapeText(event.Location))
		}
		lines = append(lines,
			"STATUS:"+status,
			"TRANSP:OPAQUE",
			"BEGIN:VALARM",
			"ACTION:DISPLAY",
			"DESCRIPTION:Consultation reminder in 15 minutes",
			"TRIGGER:-PT15M",
			"END:VALARM",
			"END:VEVENT",
		)
	}

	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n")
}
