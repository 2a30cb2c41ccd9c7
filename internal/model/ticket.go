package model

import "time"

// Travel classes and their fixed seat capacities per train.  A ticket can
// only ever be issued while the count of live tickets for its
// (train, class) pair is below the class capacity.
const (
	ClassEconomy  = "Economy"
	ClassBusiness = "Business"

	CapacityEconomy  = 30
	CapacityBusiness = 20
)

// Ticket prices are a pure function of travel class, captured at booking
// time and never recomputed.
const (
	PriceEconomy  = 1000
	PriceBusiness = 2000
)

// Genders accepted on a booking request.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// Ticket records one issued seat.  A ticket is immutable between creation
// and deletion; cancellation is the only way to remove it.  Username is the
// account that booked the ticket and is always the identity of the session
// that created it — tickets are not transferable.
//
// Fields:
//
//	ID            – primary key identifier.
//	TrainNumber   – train the seat is issued for (logical FK to trains).
//	Username      – owning account identifier.
//	PassengerName – traveller the seat was booked for.
//	Gender        – passenger gender (Male/Female).
//	Class         – Economy or Business.
//	Price         – price captured at booking time.
//	CreatedAt     – booking timestamp.
type Ticket struct {
	ID            uint64    `json:"id"`             // tickets.id
	TrainNumber   string    `json:"train_number"`   // tickets.train_number
	Username      string    `json:"username"`       // tickets.username
	PassengerName string    `json:"passenger_name"` // tickets.passenger_name
	Gender        string    `json:"gender"`         // tickets.gender
	Class         string    `json:"class"`          // tickets.class
	Price         uint32    `json:"price"`          // tickets.price
	CreatedAt     time.Time `json:"created_at"`     // tickets.created_at
}

// Capacity returns the seat capacity for a travel class, or 0 when the
// class is unknown.
func Capacity(class string) int {
	switch class {
	case ClassEconomy:
		return CapacityEconomy
	case ClassBusiness:
		return CapacityBusiness
	}
	return 0
}

// PriceFor returns the fixed ticket price for a travel class, or 0 when the
// class is unknown.
func PriceFor(class string) uint32 {
	switch class {
	case ClassEconomy:
		return PriceEconomy
	case ClassBusiness:
		return PriceBusiness
	}
	return 0
}
