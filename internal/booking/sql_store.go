package booking

import (
	"context"
	"database/sql"

	"github.com/cecosrail/reservation/internal/model"
)

// SQLStore is the MySQL-backed Store used in production.  InsertTicket
// re-checks the pair count inside its own locking transaction, so the
// capacity invariant holds even when several server processes share the
// database; the engine's per-pair mutex only orders writers within one
// process.
type SQLStore struct{ db *sql.DB }

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) CountByTrainClass(ctx context.Context, trainNumber, class string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tickets WHERE train_number=? AND class=?",
		trainNumber, class).Scan(&n)
	return n, err
}

// InsertTicket inserts one ticket, but only after re-counting the pair
// under FOR UPDATE in the same transaction.  The row lock on the pair's
// tickets holds until commit, so two transactions cannot both see
// count = capacity-1; the loser of the race gets ErrClassFull.
func (s *SQLStore) InsertTicket(ctx context.Context, t *model.Ticket, capacity int) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var n int
	if err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tickets WHERE train_number=? AND class=? FOR UPDATE",
		t.TrainNumber, t.Class).Scan(&n); err != nil {
		return err
	}
	if n >= capacity {
		err = ErrClassFull
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO tickets (train_number, username, passenger_name, gender, class, price)
		 VALUES (?,?,?,?,?,?)`,
		t.TrainNumber, t.Username, t.PassengerName, t.Gender, t.Class, t.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	// Query back the row to populate the DB-assigned timestamp.
	return tx.QueryRowContext(ctx,
		"SELECT created_at FROM tickets WHERE id=?", t.ID).Scan(&t.CreatedAt)
}

func (s *SQLStore) DeleteTickets(ctx context.Context, trainNumber, passengerName, owner string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if owner == "" {
		res, err = s.db.ExecContext(ctx,
			"DELETE FROM tickets WHERE train_number=? AND passenger_name=?",
			trainNumber, passengerName)
	} else {
		res, err = s.db.ExecContext(ctx,
			"DELETE FROM tickets WHERE train_number=? AND passenger_name=? AND username=?",
			trainNumber, passengerName, owner)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
