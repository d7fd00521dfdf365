// Package output renders CLI results as aligned tables or indented JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/events"
	"github.com/nfrund/clubportal/internal/registration"
)

// Supported formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// CheckFormat rejects formats other than table and json.
func CheckFormat(format string) error {
	switch format {
	case FormatTable, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format '%s'. Use 'table' or 'json'", format)
	}
}

// EventRow is how one catalog entry is displayed.
type EventRow struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Location string `json:"location"`
	Seats    string `json:"seats"`
	Full     bool   `json:"full"`
}

func eventRow(ev backend.EventSummary) EventRow {
	return EventRow{
		ID:       ev.ID,
		Title:    ev.Title,
		Date:     events.DisplayDate(ev.Date),
		Category: ev.Category,
		Location: ev.Location,
		Seats:    fmt.Sprintf("%d/%d", ev.Attendees, ev.Capacity),
		Full:     events.IsFull(ev),
	}
}

// Events writes list in the given format.
func Events(w io.Writer, format string, list []backend.EventSummary) error {
	rows := make([]EventRow, len(list))
	for i, ev := range list {
		rows[i] = eventRow(ev)
	}

	if format == FormatJSON {
		return writeJSON(w, struct {
			Events []EventRow `json:"events"`
			Count  int        `json:"count"`
		}{Events: rows, Count: len(rows)})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDATE\tCATEGORY\tLOCATION\tSEATS")
	fmt.Fprintln(tw, "--\t-----\t----\t--------\t--------\t-----")
	if len(rows) == 0 {
		fmt.Fprintln(tw, "No events found")
	}
	for _, r := range rows {
		seats := r.Seats
		if r.Full {
			seats += " (Full)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, truncate(r.Title, 40), r.Date, r.Category, truncate(r.Location, 30), seats)
	}
	return tw.Flush()
}

// StatusView is how a registration status is displayed.
type StatusView struct {
	Subject string `json:"subject,omitempty"`
	Status  string `json:"status"`
}

// Status writes st in the given format. label names the subject in table output.
func Status(w io.Writer, format, label string, st registration.Status) error {
	view := StatusView{Subject: st.Subject, Status: st.Mode.String()}
	if format == FormatJSON {
		return writeJSON(w, view)
	}
	subject := view.Subject
	if subject == "" {
		subject = "-"
	}
	_, err := fmt.Fprintf(w, "%-8s %s\nStatus:  %s\n", label+":", subject, view.Status)
	return err
}

// Message writes a feedback message returned by a submission.
func Message(w io.Writer, format string, success bool, text string) error {
	if format == FormatJSON {
		return writeJSON(w, struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}{success, text})
	}
	mark := "✅"
	if !success {
		mark = "❌"
	}
	_, err := fmt.Fprintf(w, "%s %s\n", mark, text)
	return err
}

// Service is one registry key with the type it resolves to.
type Service struct {
	Key  string `json:"key"`
	Type string `json:"type"`
}

// Services writes the registry keys in the given format.
func Services(w io.Writer, format string, services []Service) error {
	if format == FormatJSON {
		return writeJSON(w, struct {
			Services []Service `json:"services"`
		}{services})
	}
	if len(services) == 0 {
		_, err := fmt.Fprintln(w, "No services found in the registry.")
		return err
	}
	fmt.Fprintln(w, "Available Services in the Registry:")
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "KEY\tTYPE")
	fmt.Fprintln(tw, "---\t----")
	for _, s := range services {
		fmt.Fprintf(tw, "%s\t%s\n", s.Key, s.Type)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
