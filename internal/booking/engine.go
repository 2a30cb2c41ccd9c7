// Package booking implements seat admission control: counting issued
// tickets per (train, class) pair, enforcing the fixed class capacities,
// pricing, and committing reservations atomically relative to the count.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cecosrail/reservation/internal/model"
)

// ErrClassFull is returned when the requested travel class has no seats
// left on the train.  No state changes on this error.
var ErrClassFull = errors.New("travel class is full")

// ErrValidation is the base error for rejected input.  Callers match it
// with errors.Is; the wrapped message names the offending field.
var ErrValidation = errors.New("validation failed")

// Store is the durable ticket state the engine decides against.  Every
// admission decision is computed fresh from the store's current counts,
// making it the single source of truth for the capacity invariant.  The
// SQL implementation lives in this package; tests inject an in-memory one.
type Store interface {
	// CountByTrainClass returns the number of live tickets for the pair.
	CountByTrainClass(ctx context.Context, trainNumber, class string) (int, error)
	// InsertTicket durably records a ticket and populates its generated
	// ID.  A store shared between processes must re-check the pair count
	// against capacity inside its own transaction and return ErrClassFull
	// when another writer filled the class first.
	InsertTicket(ctx context.Context, t *model.Ticket, capacity int) error
	// DeleteTickets removes tickets matching train number and passenger
	// name.  When owner is non-empty the deletion is additionally scoped
	// to that account.  Returns the number of rows removed.
	DeleteTickets(ctx context.Context, trainNumber, passengerName, owner string) (int64, error)
}

// BookRequest carries the validated-shaped input for one booking attempt.
// Username is the authenticated session identity; the resulting ticket is
// always bound to it.
type BookRequest struct {
	TrainNumber   string
	PassengerName string
	Gender        string
	Class         string
	Username      string
}

// Engine serializes the read-count-then-insert sequence per
// (train number, travel class) pair.  Two concurrent bookings against the
// same pair can therefore never both observe count = capacity-1 and both
// insert; the invariant count <= capacity holds under concurrent load.
type Engine struct {
	store Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex // one mutex per (train, class) pair
}

func NewEngine(store Store) *Engine {
	if store == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{store: store, locks: make(map[string]*sync.Mutex)}
}

// pairLock returns the mutex guarding one (train, class) pair, creating it
// on first use.  Locks are never discarded; the map is bounded by the
// number of distinct pairs ever booked.
func (e *Engine) pairLock(trainNumber, class string) *sync.Mutex {
	key := trainNumber + "\x00" + class
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[key]
	if !ok {
		l = &sync.Mutex{}
		e.locks[key] = l
	}
	return l
}

// Book admits or rejects one seat request.  On success exactly one new
// ticket exists, bound to req.Username and priced by the class table; the
// post-count for the pair is the pre-count plus one and never exceeds the
// class capacity.  On ErrClassFull nothing changes.
func (e *Engine) Book(ctx context.Context, req BookRequest) (*model.Ticket, error) {
	// Normalize before pricing and locking so that padded input cannot
	// split one (train, class) pair into phantom keys or strand a ticket
	// that cancellation can never match.
	req.TrainNumber = strings.TrimSpace(req.TrainNumber)
	req.PassengerName = strings.TrimSpace(req.PassengerName)
	if err := validate(req); err != nil {
		return nil, err
	}

	price := model.PriceFor(req.Class)
	capacity := model.Capacity(req.Class)

	l := e.pairLock(req.TrainNumber, req.Class)
	l.Lock()
	defer l.Unlock()

	booked, err := e.store.CountByTrainClass(ctx, req.TrainNumber, req.Class)
	if err != nil {
		return nil, fmt.Errorf("count tickets: %w", err)
	}
	if booked >= capacity {
		return nil, ErrClassFull
	}

	t := &model.Ticket{
		TrainNumber:   req.TrainNumber,
		Username:      req.Username,
		PassengerName: req.PassengerName,
		Gender:        req.Gender,
		Class:         req.Class,
		Price:         price,
	}
	if err := e.store.InsertTicket(ctx, t, capacity); err != nil {
		if errors.Is(err, ErrClassFull) {
			// Another process won the last seat between our count and
			// the store's own transactional re-check.
			return nil, ErrClassFull
		}
		return nil, fmt.Errorf("insert ticket: %w", err)
	}
	return t, nil
}

// Cancel removes tickets matching (trainNumber, passengerName).  An admin
// cancellation is not owner-scoped and may remove several rows when
// different accounts booked the same passenger name on the same train; a
// regular user's cancellation only removes that user's own rows.  The
// returned count is zero when nothing matched; callers treat that as an
// informational not-found, not a failure.
func (e *Engine) Cancel(ctx context.Context, trainNumber, passengerName, requester string, isAdmin bool) (int64, error) {
	trainNumber = strings.TrimSpace(trainNumber)
	passengerName = strings.TrimSpace(passengerName)
	if trainNumber == "" {
		return 0, fmt.Errorf("%w: train number is required", ErrValidation)
	}
	if passengerName == "" {
		return 0, fmt.Errorf("%w: passenger name is required", ErrValidation)
	}
	owner := requester
	if isAdmin {
		owner = "" // admin cancellation matches every owner
	} else if owner == "" {
		return 0, fmt.Errorf("%w: requester identity is required", ErrValidation)
	}
	return e.store.DeleteTickets(ctx, trainNumber, passengerName, owner)
}

// Availability reports the booked count and capacity for one pair, for
// display next to the booking form.
func (e *Engine) Availability(ctx context.Context, trainNumber, class string) (booked, capacity int, err error) {
	capacity = model.Capacity(class)
	if capacity == 0 {
		return 0, 0, fmt.Errorf("%w: unknown travel class %q", ErrValidation, class)
	}
	booked, err = e.store.CountByTrainClass(ctx, trainNumber, class)
	return booked, capacity, err
}

// validate runs after Book has trimmed the free-text fields, so the
// emptiness checks here see the normalized values.
func validate(req BookRequest) error {
	if req.TrainNumber == "" {
		return fmt.Errorf("%w: train number is required", ErrValidation)
	}
	if req.PassengerName == "" {
		return fmt.Errorf("%w: passenger name is required", ErrValidation)
	}
	if req.Gender != model.GenderMale && req.Gender != model.GenderFemale {
		return fmt.Errorf("%w: gender must be Male or Female", ErrValidation)
	}
	if req.Class != model.ClassEconomy && req.Class != model.ClassBusiness {
		return fmt.Errorf("%w: class must be Economy or Business", ErrValidation)
	}
	if req.Username == "" {
		return fmt.Errorf("%w: requester identity is required", ErrValidation)
	}
	return nil
}
