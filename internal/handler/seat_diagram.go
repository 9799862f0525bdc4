package handler // handler package contains seat-diagram handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/veloxbus/fleet-inventory/internal/model"
	"github.com/veloxbus/fleet-inventory/internal/repository"
	"github.com/veloxbus/fleet-inventory/internal/seatconfig"
	"github.com/veloxbus/fleet-inventory/internal/validation"
)

// CreateSeatDiagram handles POST /v1/seat-diagrams.  New diagrams start
// with zero seats; the layout is populated afterwards through the
// configuration endpoint.
func (h *InventoryHandler) CreateSeatDiagram(c echo.Context) error {
	var body struct {
		Name             string              `json:"name"`
		Description      *string             `json:"description"`
		MaxCapacity      int                 `json:"maxCapacity"`
		NumFloors        int                 `json:"numFloors"`
		SeatsPerFloor    []model.FloorLayout `json:"seatsPerFloor"`
		IsFactoryDefault bool                `json:"isFactoryDefault"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" || body.NumFloors < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and numFloors are required"})
	}
	if len(body.SeatsPerFloor) != body.NumFloors {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seatsPerFloor must declare one layout per floor"})
	}
	for _, fl := range body.SeatsPerFloor {
		if fl.FloorNumber < 1 || fl.FloorNumber > body.NumFloors || fl.NumRows < 1 || fl.SeatsLeft < 0 || fl.SeatsRight < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor layout"})
		}
	}

	d := &model.SeatDiagram{
		Name:             strings.TrimSpace(body.Name),
		Description:      body.Description,
		MaxCapacity:      body.MaxCapacity,
		NumFloors:        body.NumFloors,
		SeatsPerFloor:    body.SeatsPerFloor,
		IsFactoryDefault: body.IsFactoryDefault,
		IsActive:         true,
	}
	if err := h.Diagrams.Create(c.Request().Context(), d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create seat diagram"})
	}
	return c.JSON(http.StatusCreated, d)
}

// UpdateSeatDiagram handles PUT/PATCH /v1/seat-diagrams/:id.  Only the
// descriptive fields are editable here; seats move through the
// configuration endpoint.  is_modified flips only when a submitted
// value actually differs from the stored one.
func (h *InventoryHandler) UpdateSeatDiagram(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cur, err := h.Diagrams.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSeatDiagramNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat diagram not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		MaxCapacity *int    `json:"maxCapacity"`
		IsActive    *bool   `json:"isActive"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	changed := false
	if body.Name != nil && strings.TrimSpace(*body.Name) != "" && strings.TrimSpace(*body.Name) != cur.Name {
		cur.Name = strings.TrimSpace(*body.Name)
		changed = true
	}
	if body.Description != nil {
		s := strings.TrimSpace(*body.Description)
		switch {
		case s == "" && cur.Description != nil:
			cur.Description = nil
			changed = true
		case s != "" && (cur.Description == nil || *cur.Description != s):
			cur.Description = &s
			changed = true
		}
	}
	if body.MaxCapacity != nil && *body.MaxCapacity != cur.MaxCapacity {
		if *body.MaxCapacity < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "maxCapacity must be greater than zero"})
		}
		cur.MaxCapacity = *body.MaxCapacity
		changed = true
	}
	if body.IsActive != nil && *body.IsActive != cur.IsActive {
		cur.IsActive = *body.IsActive
		changed = true
	}
	if changed {
		cur.IsModified = true
	}

	if err := h.Diagrams.UpdateFields(c.Request().Context(), cur); err != nil {
		if errors.Is(err, repository.ErrSeatDiagramNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat diagram not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, cur)
}

// DeleteSeatDiagram handles DELETE /v1/seat-diagrams/:id.  The diagram
// is soft-deleted and its seat rows deactivated; nothing is removed.
func (h *InventoryHandler) DeleteSeatDiagram(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Diagrams.SoftDelete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrSeatDiagramNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat diagram not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateSeatConfiguration handles PUT /v1/seat-diagrams/:id/configuration,
// the reconciliation endpoint.  The payload is the complete desired seat
// list; seats absent from it are deactivated.  Validation failures come
// back as 400 with every collected violation, a missing diagram as 404.
func (h *InventoryHandler) UpdateSeatConfiguration(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Seats []seatconfig.SeatInput `json:"seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	result, err := h.SeatConfig.UpdateConfiguration(c.Request().Context(), id, body.Seats)
	if err != nil {
		if errors.Is(err, repository.ErrSeatDiagramNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat diagram not found"})
		}
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"errors": verr.Violations})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "configuration update failed"})
	}
	if uid, err := getUserID(c); err == nil {
		h.Log.Info("seat configuration updated",
			zap.Uint64("diagram_id", id),
			zap.Uint64("user_id", uid),
			zap.Int("total_active", result.TotalActiveSeats),
		)
	}
	return c.JSON(http.StatusOK, result)
}
