// Package queue defines message payloads exchanged over the message broker.
package queue

// DiagramReconciledEvent is published after a seat-diagram
// configuration reconciliation commits.  It carries enough information
// for downstream consumers to log, audit or refresh derived views
// without querying the primary database.
type DiagramReconciledEvent struct {
	EventID          string `json:"event_id"`
	SeatDiagramID    uint64 `json:"seat_diagram_id"`
	SeatsCreated     int    `json:"seats_created"`
	SeatsUpdated     int    `json:"seats_updated"`
	SeatsDeactivated int    `json:"seats_deactivated"`
	TotalActiveSeats int    `json:"total_active_seats"`
	ReconciledAt     string `json:"reconciled_at"`
}
