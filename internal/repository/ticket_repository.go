package repository

import (
	"context"
	"database/sql"

	"github.com/cecosrail/reservation/internal/model"
)

// TicketRepo provides read access to issued tickets.  Ticket creation and
// deletion go through the booking engine's store so that the admission
// invariant is enforced in one place; this repo only serves listings.
type TicketRepo struct{ db *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

const ticketColumns = "id, train_number, username, passenger_name, gender, class, price, created_at"

// ListAll returns every issued ticket, newest first.  Admin-only view.
func (r *TicketRepo) ListAll(ctx context.Context) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+ticketColumns+" FROM tickets ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// ListByOwner returns the tickets booked by one account, newest first.
func (r *TicketRepo) ListByOwner(ctx context.Context, username string) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE username=? ORDER BY created_at DESC, id DESC",
		username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows *sql.Rows) ([]model.Ticket, error) {
	tickets := make([]model.Ticket, 0)
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.TrainNumber, &t.Username, &t.PassengerName,
			&t.Gender, &t.Class, &t.Price, &t.CreatedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
