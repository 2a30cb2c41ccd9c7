package booking_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecosrail/reservation/internal/booking"
	"github.com/cecosrail/reservation/internal/model"
)

// memStore is an in-memory booking.Store.  Its mutex only protects the
// slice; it deliberately does NOT serialize count-then-insert sequences and
// ignores the capacity passed to InsertTicket, so any overrun under
// concurrency is the engine's fault.  Setting insertErr makes InsertTicket
// fail, standing in for a concurrent writer in another process.
type memStore struct {
	mu        sync.Mutex
	nextID    uint64
	tickets   []model.Ticket
	insertErr error
}

func (m *memStore) CountByTrainClass(_ context.Context, trainNumber, class string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tickets {
		if t.TrainNumber == trainNumber && t.Class == class {
			n++
		}
	}
	return n, nil
}

func (m *memStore) InsertTicket(_ context.Context, t *model.Ticket, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.nextID++
	t.ID = m.nextID
	m.tickets = append(m.tickets, *t)
	return nil
}

func (m *memStore) DeleteTickets(_ context.Context, trainNumber, passengerName, owner string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.tickets[:0]
	var removed int64
	for _, t := range m.tickets {
		match := t.TrainNumber == trainNumber && t.PassengerName == passengerName &&
			(owner == "" || t.Username == owner)
		if match {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	m.tickets = kept
	return removed, nil
}

func newEngine() (*booking.Engine, *memStore) {
	st := &memStore{}
	return booking.NewEngine(st), st
}

func bookReq(train, passenger, class, user string) booking.BookRequest {
	return booking.BookRequest{
		TrainNumber:   train,
		PassengerName: passenger,
		Gender:        model.GenderMale,
		Class:         class,
		Username:      user,
	}
}

func TestBookPricesByClass(t *testing.T) {
	e, _ := newEngine()
	ctx := context.Background()

	eco, err := e.Book(ctx, bookReq("101", "Ali", model.ClassEconomy, "zara"))
	require.NoError(t, err)
	assert.Equal(t, uint32(1000), eco.Price)

	biz, err := e.Book(ctx, bookReq("101", "Ali", model.ClassBusiness, "zara"))
	require.NoError(t, err)
	assert.Equal(t, uint32(2000), biz.Price)
}

func TestBookBindsTicketToRequester(t *testing.T) {
	e, _ := newEngine()

	tk, err := e.Book(context.Background(), bookReq("101", "Ali", model.ClassEconomy, "zara"))
	require.NoError(t, err)
	assert.Equal(t, "zara", tk.Username)
	assert.Equal(t, "101", tk.TrainNumber)
	assert.NotZero(t, tk.ID)
}

func TestBookNormalizesPaddedInput(t *testing.T) {
	e, st := newEngine()
	ctx := context.Background()

	tk, err := e.Book(ctx, bookReq(" 101 ", " Ali ", model.ClassEconomy, "zara"))
	require.NoError(t, err)
	assert.Equal(t, "101", tk.TrainNumber)
	assert.Equal(t, "Ali", tk.PassengerName)

	// The padded booking counts against the real pair, not a phantom one.
	n, _ := st.CountByTrainClass(ctx, "101", model.ClassEconomy)
	assert.Equal(t, 1, n)

	// The owner can cancel with either the padded or the clean spelling.
	removed, err := e.Cancel(ctx, " 101 ", " Ali ", "zara", false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Empty(t, st.tickets)
}

func TestBookRejectsInvalidInput(t *testing.T) {
	e, st := newEngine()
	ctx := context.Background()

	cases := []booking.BookRequest{
		{TrainNumber: "", PassengerName: "Ali", Gender: model.GenderMale, Class: model.ClassEconomy, Username: "u"},
		{TrainNumber: "101", PassengerName: "", Gender: model.GenderMale, Class: model.ClassEconomy, Username: "u"},
		{TrainNumber: "101", PassengerName: "Ali", Gender: "Other", Class: model.ClassEconomy, Username: "u"},
		{TrainNumber: "101", PassengerName: "Ali", Gender: model.GenderFemale, Class: "First", Username: "u"},
		{TrainNumber: "101", PassengerName: "Ali", Gender: model.GenderFemale, Class: model.ClassEconomy, Username: ""},
	}
	for _, req := range cases {
		_, err := e.Book(ctx, req)
		assert.ErrorIs(t, err, booking.ErrValidation, "request %+v", req)
	}
	assert.Empty(t, st.tickets, "rejected requests must not write state")
}

func TestEconomyFillsAtThirty(t *testing.T) {
	e, st := newEngine()
	ctx := context.Background()

	for i := 0; i < model.CapacityEconomy; i++ {
		tk, err := e.Book(ctx, bookReq("101", fmt.Sprintf("p%02d", i), model.ClassEconomy, "zara"))
		require.NoError(t, err, "booking %d", i)
		assert.Equal(t, uint32(1000), tk.Price)
	}

	_, err := e.Book(ctx, bookReq("101", "late", model.ClassEconomy, "zara"))
	assert.ErrorIs(t, err, booking.ErrClassFull)

	n, _ := st.CountByTrainClass(ctx, "101", model.ClassEconomy)
	assert.Equal(t, model.CapacityEconomy, n)
}

func TestClassesAndTrainsFillIndependently(t *testing.T) {
	e, _ := newEngine()
	ctx := context.Background()

	for i := 0; i < model.CapacityBusiness; i++ {
		_, err := e.Book(ctx, bookReq("101", fmt.Sprintf("b%02d", i), model.ClassBusiness, "zara"))
		require.NoError(t, err)
	}
	_, err := e.Book(ctx, bookReq("101", "late", model.ClassBusiness, "zara"))
	assert.ErrorIs(t, err, booking.ErrClassFull)

	// A full Business class leaves Economy on the same train untouched,
	// and Business on another train untouched.
	_, err = e.Book(ctx, bookReq("101", "eco", model.ClassEconomy, "zara"))
	assert.NoError(t, err)
	_, err = e.Book(ctx, bookReq("202", "biz", model.ClassBusiness, "zara"))
	assert.NoError(t, err)
}

func TestConcurrentBookingNeverExceedsCapacity(t *testing.T) {
	e, st := newEngine()
	ctx := context.Background()

	const extra = 15
	attempts := model.CapacityEconomy + extra

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.Book(ctx, bookReq("101", fmt.Sprintf("p%03d", i), model.ClassEconomy, "zara"))
		}(i)
	}
	wg.Wait()

	admitted, rejected := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, booking.ErrClassFull):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, model.CapacityEconomy, admitted)
	assert.Equal(t, extra, rejected)

	n, _ := st.CountByTrainClass(ctx, "101", model.ClassEconomy)
	assert.Equal(t, model.CapacityEconomy, n)
}

func TestBookSurfacesStoreCapacityRejection(t *testing.T) {
	// When the store's own transactional re-check loses the last seat to a
	// writer in another process, the caller sees a plain ErrClassFull.
	e, st := newEngine()
	st.insertErr = booking.ErrClassFull

	_, err := e.Book(context.Background(), bookReq("101", "Ali", model.ClassEconomy, "zara"))
	assert.ErrorIs(t, err, booking.ErrClassFull)
	assert.Empty(t, st.tickets)
}

func TestUserCancelIsOwnerScoped(t *testing.T) {
	e, st := newEngine()
	ctx := context.Background()

	_, err := e.Book(ctx, bookReq("101", "Ali", model.ClassEconomy, "zara"))
	require.NoError(t, err)
	_, err = e.Book(ctx, bookReq("101", "Ali", model.ClassEconomy, "omar"))
	require.NoError(t, err)

	// omar cannot remove zara's ticket for the same train and passenger.
	n, err := e.Cancel(ctx, "101", "Ali", "omar", false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	remaining, _ := st.CountByTrainClass(ctx, "101", model.ClassEconomy)
	assert.Equal(t, 1, remaining)
	assert.Equal(t, "zara", st.tickets[0].Username)
}

func TestAdminCancelRemovesAllMatchingRows(t *testing.T) {
	e, st := newEngine()
	ctx := context.Background()

	// Two different users each booked a passenger named Ali on train 101.
	_, err := e.Book(ctx, bookReq("101", "Ali", model.ClassEconomy, "zara"))
	require.NoError(t, err)
	_, err = e.Book(ctx, bookReq("101", "Ali", model.ClassBusiness, "omar"))
	require.NoError(t, err)

	n, err := e.Cancel(ctx, "101", "Ali", "admin", true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Empty(t, st.tickets)
}

func TestCancelZeroMatchesIsInformational(t *testing.T) {
	e, _ := newEngine()

	n, err := e.Cancel(context.Background(), "101", "nobody", "zara", false)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestCancelFreesSeatForRebooking(t *testing.T) {
	e, _ := newEngine()
	ctx := context.Background()

	for i := 0; i < model.CapacityBusiness; i++ {
		_, err := e.Book(ctx, bookReq("303", fmt.Sprintf("p%02d", i), model.ClassBusiness, "zara"))
		require.NoError(t, err)
	}
	_, err := e.Book(ctx, bookReq("303", "late", model.ClassBusiness, "zara"))
	require.ErrorIs(t, err, booking.ErrClassFull)

	n, err := e.Cancel(ctx, "303", "p00", "zara", false)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	_, err = e.Book(ctx, bookReq("303", "late", model.ClassBusiness, "zara"))
	assert.NoError(t, err)
}

func TestAvailability(t *testing.T) {
	e, _ := newEngine()
	ctx := context.Background()

	booked, capacity, err := e.Availability(ctx, "101", model.ClassEconomy)
	require.NoError(t, err)
	assert.Zero(t, booked)
	assert.Equal(t, model.CapacityEconomy, capacity)

	_, err = e.Book(ctx, bookReq("101", "Ali", model.ClassEconomy, "zara"))
	require.NoError(t, err)

	booked, capacity, err = e.Availability(ctx, "101", model.ClassEconomy)
	require.NoError(t, err)
	assert.Equal(t, 1, booked)
	assert.Equal(t, model.CapacityEconomy, capacity)

	_, _, err = e.Availability(ctx, "101", "First")
	assert.ErrorIs(t, err, booking.ErrValidation)
}
