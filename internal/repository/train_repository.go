package repository

import (
	"context"
	"database/sql"

	"github.com/cecosrail/reservation/internal/model"
)

// TrainRepo provides catalog operations over the trains table.  The catalog
// is deliberately thin: create, list and delete.  There is no update; a
// record changes only by delete and re-add.
type TrainRepo struct{ db *sql.DB }

func NewTrainRepo(db *sql.DB) *TrainRepo { return &TrainRepo{db: db} }

// Create inserts a train record and populates its generated ID.
func (r *TrainRepo) Create(ctx context.Context, t *model.Train) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO trains (train_number, train_name, travel_date, travel_time, origin, destination)
		 VALUES (?,?,?,?,?,?)`,
		t.Number, t.Name, t.Date, t.Time, t.Origin, t.Destination)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// List returns all trains ordered by creation time, newest first.
func (r *TrainRepo) List(ctx context.Context) ([]model.Train, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, train_number, train_name, travel_date, travel_time, origin, destination, created_at
		 FROM trains ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	trains := make([]model.Train, 0)
	for rows.Next() {
		var t model.Train
		if err := rows.Scan(&t.ID, &t.Number, &t.Name, &t.Date, &t.Time,
			&t.Origin, &t.Destination, &t.CreatedAt); err != nil {
			return nil, err
		}
		trains = append(trains, t)
	}
	return trains, rows.Err()
}

// ExistsByNumber reports whether at least one train with the given number
// exists.  Train numbers carry no uniqueness constraint, mirroring the
// source schema; handlers use this to warn about duplicates.
func (r *TrainRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM trains WHERE train_number=? LIMIT 1", number).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByNumber removes every train record with the given number.  It
// returns ErrTrainNotFound when no rows matched.
func (r *TrainRepo) DeleteByNumber(ctx context.Context, number string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM trains WHERE train_number=?", number)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrTrainNotFound
	}
	return n, nil
}
