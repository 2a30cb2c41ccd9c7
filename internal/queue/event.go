// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// TicketBookedEvent is published when a seat is successfully issued.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type TicketBookedEvent struct {
	TicketID      uint64 `json:"ticket_id"`
	TrainNumber   string `json:"train_number"`
	Username      string `json:"username"`
	PassengerName string `json:"passenger_name"`
	Gender        string `json:"gender"`
	Class         string `json:"class"`
	Price         uint32 `json:"price"`
	BookedAt      string `json:"booked_at"`
}
