package handler // handler package contains network node handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/veloxbus/fleet-inventory/internal/model"
	"github.com/veloxbus/fleet-inventory/internal/repository"
)

func validNodeKind(kind string) bool {
	switch kind {
	case model.NodeKindTerminal, model.NodeKindStop, model.NodeKindToll, model.NodeKindDepot:
		return true
	}
	return false
}

// CreateNode handles POST /v1/nodes.
func (h *InventoryHandler) CreateNode(c echo.Context) error {
	var body struct {
		Name    string   `json:"name"`
		Kind    string   `json:"kind"`
		Address *string  `json:"address"`
		Lat     *float64 `json:"lat"`
		Lng     *float64 `json:"lng"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Kind = strings.ToUpper(strings.TrimSpace(body.Kind))
	if strings.TrimSpace(body.Name) == "" || !validNodeKind(body.Kind) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and a valid kind are required"})
	}

	n := &model.Node{
		Name:     strings.TrimSpace(body.Name),
		Kind:     body.Kind,
		Address:  trimmedPtr(body.Address),
		Lat:      body.Lat,
		Lng:      body.Lng,
		IsActive: true,
	}
	if err := h.Nodes.Create(c.Request().Context(), n); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create node"})
	}
	return c.JSON(http.StatusCreated, n)
}

// UpdateNode handles PUT/PATCH /v1/nodes/:id.
func (h *InventoryHandler) UpdateNode(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cur, err := h.Nodes.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNodeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "node not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	var body struct {
		Name     *string  `json:"name"`
		Kind     *string  `json:"kind"`
		Address  *string  `json:"address"`
		Lat      *float64 `json:"lat"`
		Lng      *float64 `json:"lng"`
		IsActive *bool    `json:"isActive"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
		cur.Name = strings.TrimSpace(*body.Name)
	}
	if body.Kind != nil {
		kind := strings.ToUpper(strings.TrimSpace(*body.Kind))
		if !validNodeKind(kind) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid kind"})
		}
		cur.Kind = kind
	}
	if body.Address != nil {
		cur.Address = trimmedPtr(body.Address)
	}
	if body.Lat != nil {
		cur.Lat = body.Lat
	}
	if body.Lng != nil {
		cur.Lng = body.Lng
	}
	if body.IsActive != nil {
		cur.IsActive = *body.IsActive
	}

	if err := h.Nodes.Update(c.Request().Context(), cur); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "node not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, cur)
}

// DeleteNode handles DELETE /v1/nodes/:id.  Rejected with 409 while a
// pathway endpoint or a toll pass still references the node.
func (h *InventoryHandler) DeleteNode(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Nodes.SoftDelete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "node is referenced by pathways or tolls"})
		case errors.Is(err, repository.ErrNodeNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "node not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
