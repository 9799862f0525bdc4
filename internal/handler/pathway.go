package handler // handler package contains pathway and pathway-option handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/veloxbus/fleet-inventory/internal/model"
	"github.com/veloxbus/fleet-inventory/internal/pathopt"
	"github.com/veloxbus/fleet-inventory/internal/repository"
	"github.com/veloxbus/fleet-inventory/internal/validation"
)

// tollInput is one toll stop in an option payload.  Sequence and pass
// time are derived server-side, so clients only send the node and the
// distance from the origin.
type tollInput struct {
	TollNodeID           uint64  `json:"tollNodeId"`
	DistanceFromOriginKm float64 `json:"distanceFromOriginKm"`
}

func tollsFromInput(in []tollInput) []model.TollPass {
	tolls := make([]model.TollPass, 0, len(in))
	for _, t := range in {
		tolls = append(tolls, model.TollPass{
			TollNodeID:           t.TollNodeID,
			DistanceFromOriginKm: t.DistanceFromOriginKm,
		})
	}
	return tolls
}

// optionError maps pathopt service errors onto HTTP responses shared
// by every option endpoint.
func optionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, pathopt.ErrOptionInUse):
		return c.JSON(http.StatusConflict, echo.Map{"error": "pathway option is in use"})
	case errors.Is(err, repository.ErrPathwayOptionNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "pathway option not found"})
	case errors.Is(err, repository.ErrPathwayNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "pathway not found"})
	}
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": verr.Violations})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "operation failed"})
}

// CreatePathway handles POST /v1/pathways.
func (h *InventoryHandler) CreatePathway(c echo.Context) error {
	var body struct {
		Name              string  `json:"name"`
		OriginNodeID      uint64  `json:"originNodeId"`
		DestinationNodeID uint64  `json:"destinationNodeId"`
		DistanceKm        float64 `json:"distanceKm"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" || body.OriginNodeID == 0 || body.DestinationNodeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, originNodeId and destinationNodeId are required"})
	}
	if body.OriginNodeID == body.DestinationNodeID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "origin and destination must differ"})
	}
	ctx := c.Request().Context()
	for _, nodeID := range []uint64{body.OriginNodeID, body.DestinationNodeID} {
		if _, err := h.Nodes.GetByID(ctx, nodeID); err != nil {
			if errors.Is(err, repository.ErrNodeNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "node not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}

	p := &model.Pathway{
		Name:              strings.TrimSpace(body.Name),
		OriginNodeID:      body.OriginNodeID,
		DestinationNodeID: body.DestinationNodeID,
		DistanceKm:        body.DistanceKm,
		IsActive:          true,
	}
	if err := h.Pathways.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create pathway"})
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdatePathway handles PUT/PATCH /v1/pathways/:id.
func (h *InventoryHandler) UpdatePathway(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cur, err := h.Pathways.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPathwayNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pathway not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	var body struct {
		Name       *string  `json:"name"`
		DistanceKm *float64 `json:"distanceKm"`
		IsActive   *bool    `json:"isActive"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
		cur.Name = strings.TrimSpace(*body.Name)
	}
	if body.DistanceKm != nil {
		if *body.DistanceKm <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "distanceKm must be greater than zero"})
		}
		cur.DistanceKm = *body.DistanceKm
	}
	if body.IsActive != nil {
		cur.IsActive = *body.IsActive
	}

	if err := h.Pathways.Update(c.Request().Context(), cur); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pathway not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, cur)
}

// DeletePathway handles DELETE /v1/pathways/:id.  Rejected with 409
// while any of the pathway's options is in use.
func (h *InventoryHandler) DeletePathway(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Pathways.SoftDelete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "pathway has options in use"})
		case errors.Is(err, repository.ErrPathwayNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pathway not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// CreatePathwayOption handles POST /v1/pathways/:id/options.  Average
// speed and toll pass times are derived before the option and its
// tolls are persisted in one transaction.
func (h *InventoryHandler) CreatePathwayOption(c echo.Context) error {
	pathwayID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name        string      `json:"name"`
		DistanceKm  float64     `json:"distanceKm"`
		DurationMin float64     `json:"durationMin"`
		Tolls       []tollInput `json:"tolls"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	o := &model.PathwayOption{
		PathwayID:   pathwayID,
		Name:        strings.TrimSpace(body.Name),
		DistanceKm:  body.DistanceKm,
		DurationMin: body.DurationMin,
		IsActive:    true,
	}
	tolls := tollsFromInput(body.Tolls)
	if err := h.PathOpt.Create(c.Request().Context(), o, tolls); err != nil {
		return optionError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"option": o, "tolls": tolls})
}

// UpdatePathwayOption handles PUT/PATCH /v1/pathway-options/:id.  In-use
// options are locked (409); metric changes rewrite the toll pass times.
func (h *InventoryHandler) UpdatePathwayOption(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name        *string  `json:"name"`
		DistanceKm  *float64 `json:"distanceKm"`
		DurationMin *float64 `json:"durationMin"`
		IsActive    *bool    `json:"isActive"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	upd := pathopt.MetricsUpdate{
		Name:        body.Name,
		DistanceKm:  body.DistanceKm,
		DurationMin: body.DurationMin,
		IsActive:    body.IsActive,
	}
	o, err := h.PathOpt.UpdateMetrics(c.Request().Context(), id, upd)
	if err != nil {
		return optionError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// ReplaceOptionTolls handles PUT /v1/pathway-options/:id/tolls.
func (h *InventoryHandler) ReplaceOptionTolls(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Tolls []tollInput `json:"tolls"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	tolls, err := h.PathOpt.ReplaceTolls(c.Request().Context(), id, tollsFromInput(body.Tolls))
	if err != nil {
		return optionError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tolls": tolls})
}

// SetOptionLock handles PUT /v1/pathway-options/:id/lock.  Schedule
// management calls this when it starts or stops referencing an option.
func (h *InventoryHandler) SetOptionLock(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		InUse bool `json:"inUse"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.PathOpt.SetInUse(c.Request().Context(), id, body.InUse); err != nil {
		return optionError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "inUse": body.InUse})
}

// DeletePathwayOption handles DELETE /v1/pathway-options/:id.
func (h *InventoryHandler) DeletePathwayOption(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.PathOpt.Delete(c.Request().Context(), id); err != nil {
		return optionError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
