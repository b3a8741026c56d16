// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// AppointmentEvent is published when an admin creates or edits a court time
// slot.  It carries enough for downstream consumers to log or notify without
// querying the primary database.
type AppointmentEvent struct {
	Action        string   `json:"action"` // "created" or "updated"
	AppointmentID string   `json:"appointment_id"`
	Court         string   `json:"court"`
	Date          string   `json:"date"`
	Begin         string   `json:"begin"`
	End           string   `json:"end"`
	PeopleNumber  int      `json:"peoplenumber"`
	Height        string   `json:"height"`
	Info          []string `json:"info"`
	Online        bool     `json:"online"`
	OccurredAt    string   `json:"occurred_at"`
}
