package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cecosrail/reservation/internal/model"
	"github.com/cecosrail/reservation/internal/repository"
)

// CatalogHandler exposes the train catalog: listing for every
// authenticated account, add and delete for administrators.
type CatalogHandler struct {
	Trains *repository.TrainRepo
}

func NewCatalogHandler(trains *repository.TrainRepo) *CatalogHandler {
	if trains == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Trains: trains}
}

type addTrainReq struct {
	Number      string `json:"train_number"`
	Name        string `json:"train_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// ListTrains handles GET /v1/trains.
func (h *CatalogHandler) ListTrains(c echo.Context) error {
	trains, err := h.Trains.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"trains": trains})
}

// AddTrain handles POST /v1/admin/trains.  All fields are required but
// train numbers are not unique: the original schema never enforced
// uniqueness, so a duplicate is surfaced as a warning rather than
// rejected.
func (h *CatalogHandler) AddTrain(c echo.Context) error {
	var req addTrainReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Number = strings.TrimSpace(req.Number)
	if req.Number == "" || strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Time) == "" ||
		strings.TrimSpace(req.Origin) == "" || strings.TrimSpace(req.Destination) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "all train fields are required"})
	}

	ctx := c.Request().Context()
	duplicate, err := h.Trains.ExistsByNumber(ctx, req.Number)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	t := model.Train{
		Number:      req.Number,
		Name:        strings.TrimSpace(req.Name),
		Date:        strings.TrimSpace(req.Date),
		Time:        strings.TrimSpace(req.Time),
		Origin:      strings.TrimSpace(req.Origin),
		Destination: strings.TrimSpace(req.Destination),
	}
	if err := h.Trains.Create(ctx, &t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create train failed"})
	}

	resp := echo.Map{"train": t}
	if duplicate {
		resp["warning"] = "a train with this number already exists"
	}
	return c.JSON(http.StatusCreated, resp)
}

// DeleteTrain handles DELETE /v1/admin/trains/:number.  Every record with
// the given number is removed; existing tickets are untouched, matching
// the original system.
func (h *CatalogHandler) DeleteTrain(c echo.Context) error {
	number := strings.TrimSpace(c.Param("number"))
	if number == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "train number is required"})
	}

	n, err := h.Trains.DeleteByNumber(c.Request().Context(), number)
	if err != nil {
		if errors.Is(err, repository.ErrTrainNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete train failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}
