package model

import "time"

// Train represents a scheduled train service in the catalog.  Trains are
// created and deleted only by administrators; there is no update operation,
// a record changes only by delete and re-add.  The train number is expected
// to be unique but is not enforced as a constraint; TrainRepo exposes an
// existence check so callers can surface duplicates.
//
// Fields:
//
//	ID          – primary key identifier.
//	Number      – public train number used for booking and cancellation.
//	Name        – display name of the service.
//	Date        – travel date as entered by the administrator.
//	Time        – departure time as entered by the administrator.
//	Origin      – departure station.
//	Destination – arrival station.
//	CreatedAt   – creation timestamp.
type Train struct {
	ID          uint64    `json:"id"`           // trains.id
	Number      string    `json:"train_number"` // trains.train_number
	Name        string    `json:"train_name"`   // trains.train_name
	Date        string    `json:"date"`         // trains.travel_date
	Time        string    `json:"time"`         // trains.travel_time
	Origin      string    `json:"origin"`       // trains.origin
	Destination string    `json:"destination"`  // trains.destination
	CreatedAt   time.Time `json:"created_at"`   // trains.created_at
}
