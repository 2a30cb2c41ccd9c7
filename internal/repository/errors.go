// Package repository implements raw-SQL data access for accounts, trains,
// tickets and refresh tokens.  Sentinel values defined here let handlers
// distinguish failure scenarios without string matching: ErrUsernameExists
// maps to HTTP 409, ErrTrainNotFound and ErrTicketNotFound to 404.
package repository

import "errors"

// ErrUsernameExists is returned when signup collides with an existing
// account identifier.  No state changes on this error.
var ErrUsernameExists = errors.New("username already exists")

// ErrTrainNotFound is returned when a delete matched no train record.
var ErrTrainNotFound = errors.New("train not found")

// ErrTicketNotFound is returned when a cancellation matched no ticket rows.
// The source system did not distinguish 0-row deletes from success; here
// the distinction is surfaced as an informational outcome.
var ErrTicketNotFound = errors.New("ticket not found")
