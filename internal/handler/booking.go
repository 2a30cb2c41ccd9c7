package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cecosrail/reservation/internal/booking"
	"github.com/cecosrail/reservation/internal/model"
	"github.com/cecosrail/reservation/internal/queue"
	"github.com/cecosrail/reservation/internal/repository"
	queue_publisher "github.com/cecosrail/reservation/internal/service"
)

// BookingHandler exposes ticket booking, listing and cancellation.  All
// methods assume JWT authentication and role validation have already been
// performed by middleware; the admission decision itself is delegated to
// the booking engine, the single serialization point for seat capacity.
type BookingHandler struct {
	Engine  *booking.Engine
	Tickets *repository.TicketRepo
}

func NewBookingHandler(engine *booking.Engine, tickets *repository.TicketRepo) *BookingHandler {
	if engine == nil || tickets == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Engine: engine, Tickets: tickets}
}

type bookReq struct {
	TrainNumber   string `json:"train_number"`
	PassengerName string `json:"passenger_name"`
	Gender        string `json:"gender"`
	Class         string `json:"class"`
}

type cancelReq struct {
	TrainNumber   string `json:"train_number"`
	PassengerName string `json:"passenger_name"`
}

// Book handles POST /v1/tickets.  It admits or rejects the seat request
// against the class capacity and, on success, publishes a ticket.booked
// event.  Publishing is best effort: a broker outage never fails a
// committed booking.
func (h *BookingHandler) Book(c echo.Context) error {
	username, err := getUsername(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	t, err := h.Engine.Book(c.Request().Context(), booking.BookRequest{
		TrainNumber:   req.TrainNumber,
		PassengerName: req.PassengerName,
		Gender:        req.Gender,
		Class:         req.Class,
		Username:      username,
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, booking.ErrClassFull):
			return c.JSON(http.StatusConflict, echo.Map{"error": req.Class + " class is full"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
		}
	}

	go func(t model.Ticket) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishTicketBooked(ctx, queue.TicketBookedEvent{
			TicketID:      t.ID,
			TrainNumber:   t.TrainNumber,
			Username:      t.Username,
			PassengerName: t.PassengerName,
			Gender:        t.Gender,
			Class:         t.Class,
			Price:         t.Price,
			BookedAt:      time.Now().UTC().Format(time.RFC3339),
		})
	}(*t)

	return c.JSON(http.StatusCreated, echo.Map{"ticket": t})
}

// Availability handles GET /v1/trains/:number/availability?class=Economy.
// It reports the booked count against the class capacity, the numbers the
// booking form shows before an attempt.
func (h *BookingHandler) Availability(c echo.Context) error {
	trainNumber := c.Param("number")
	class := c.QueryParam("class")

	booked, capacity, err := h.Engine.Availability(c.Request().Context(), trainNumber, class)
	if err != nil {
		if errors.Is(err, booking.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"train_number": trainNumber,
		"class":        class,
		"booked":       booked,
		"capacity":     capacity,
	})
}

// MyTickets handles GET /v1/tickets and lists the caller's own bookings.
func (h *BookingHandler) MyTickets(c echo.Context) error {
	username, err := getUsername(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tickets, err := h.Tickets.ListByOwner(c.Request().Context(), username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"tickets": tickets})
}

// Cancel handles DELETE /v1/tickets.  A user's cancellation is scoped to
// their own bookings matching (train_number, passenger_name); it can never
// remove another account's ticket.  A zero match is informational, not an
// error state.
func (h *BookingHandler) Cancel(c echo.Context) error {
	username, err := getUsername(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req cancelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	n, err := h.Engine.Cancel(c.Request().Context(), req.TrainNumber, req.PassengerName, username, false)
	if err != nil {
		if errors.Is(err, booking.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no matching tickets", "cancelled": 0})
	}
	return c.JSON(http.StatusOK, echo.Map{"cancelled": n})
}

// AdminTickets handles GET /v1/admin/tickets and lists every issued ticket.
func (h *BookingHandler) AdminTickets(c echo.Context) error {
	tickets, err := h.Tickets.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"tickets": tickets})
}

// AdminCancel handles DELETE /v1/admin/tickets.  Admin cancellation is not
// owner-scoped: every ticket matching (train_number, passenger_name) is
// removed, possibly across several accounts.  This mirrors the original
// system's unfiltered delete and is documented behavior.
func (h *BookingHandler) AdminCancel(c echo.Context) error {
	var req cancelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	n, err := h.Engine.Cancel(c.Request().Context(), req.TrainNumber, req.PassengerName, "", true)
	if err != nil {
		if errors.Is(err, booking.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no matching tickets", "cancelled": 0})
	}
	return c.JSON(http.StatusOK, echo.Map{"cancelled": n})
}
