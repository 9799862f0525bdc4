package handler // handler package contains bus handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/veloxbus/fleet-inventory/internal/database"
	"github.com/veloxbus/fleet-inventory/internal/model"
	"github.com/veloxbus/fleet-inventory/internal/repository"
)

// CreateBus handles POST /v1/buses.  The referenced seat diagram must
// be a factory-default template: the bus never shares it, instead a
// private instance (diagram row plus all seat rows) is cloned from the
// template inside one transaction with the bus insert.
func (h *InventoryHandler) CreateBus(c echo.Context) error {
	var body struct {
		TransporterID uint64  `json:"transporterId"`
		SeatDiagramID uint64  `json:"seatDiagramId"` // template to clone
		Plate         string  `json:"plate"`
		InternalCode  *string `json:"internalCode"`
		Brand         string  `json:"brand"`
		Model         string  `json:"model"`
		Year          int     `json:"year"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Plate = strings.ToUpper(strings.TrimSpace(body.Plate))
	if body.TransporterID == 0 || body.SeatDiagramID == 0 || body.Plate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "transporterId, seatDiagramId and plate are required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Transporters.GetByID(ctx, body.TransporterID); err != nil {
		if errors.Is(err, repository.ErrTransporterNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "transporter not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	template, err := h.Diagrams.GetByID(ctx, body.SeatDiagramID)
	if err != nil {
		if errors.Is(err, repository.ErrSeatDiagramNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat diagram not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !template.IsFactoryDefault {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat diagram is not a factory template"})
	}

	bus := &model.Bus{
		TransporterID: body.TransporterID,
		Plate:         body.Plate,
		InternalCode:  body.InternalCode,
		Brand:         strings.TrimSpace(body.Brand),
		Model:         strings.TrimSpace(body.Model),
		Year:          body.Year,
		IsActive:      true,
	}
	err = database.WithinTx(ctx, h.DB, func(tx *sql.Tx) error {
		instance := &model.SeatDiagram{
			Name:          template.Name + " / " + bus.Plate,
			Description:   template.Description,
			MaxCapacity:   template.MaxCapacity,
			NumFloors:     template.NumFloors,
			SeatsPerFloor: template.SeatsPerFloor,
			TotalSeats:    template.TotalSeats,
			IsActive:      true,
		}
		if err := h.Diagrams.CreateTx(ctx, tx, instance); err != nil {
			return err
		}
		if err := h.Seats.CopyFromDiagramTx(ctx, tx, template.ID, instance.ID); err != nil {
			return err
		}
		bus.SeatDiagramID = instance.ID
		return h.Buses.CreateTx(ctx, tx, bus)
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create bus"})
	}
	return c.JSON(http.StatusCreated, bus)
}

// UpdateBus handles PUT/PATCH /v1/buses/:id.  Transporter and diagram
// links are fixed at creation and cannot be changed here.
func (h *InventoryHandler) UpdateBus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cur, err := h.Buses.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBusNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	var body struct {
		Plate        *string `json:"plate"`
		InternalCode *string `json:"internalCode"`
		Brand        *string `json:"brand"`
		Model        *string `json:"model"`
		Year         *int    `json:"year"`
		IsActive     *bool   `json:"isActive"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Plate != nil && strings.TrimSpace(*body.Plate) != "" {
		cur.Plate = strings.ToUpper(strings.TrimSpace(*body.Plate))
	}
	if body.InternalCode != nil {
		s := strings.TrimSpace(*body.InternalCode)
		if s == "" {
			cur.InternalCode = nil
		} else {
			cur.InternalCode = &s
		}
	}
	if body.Brand != nil && strings.TrimSpace(*body.Brand) != "" {
		cur.Brand = strings.TrimSpace(*body.Brand)
	}
	if body.Model != nil && strings.TrimSpace(*body.Model) != "" {
		cur.Model = strings.TrimSpace(*body.Model)
	}
	if body.Year != nil {
		cur.Year = *body.Year
	}
	if body.IsActive != nil {
		cur.IsActive = *body.IsActive
	}

	if err := h.Buses.Update(c.Request().Context(), cur); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, cur)
}

// DeleteBus handles DELETE /v1/buses/:id.  The bus and its private
// seat diagram instance are soft-deleted together.
func (h *InventoryHandler) DeleteBus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Buses.SoftDelete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrBusNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
