package handler // handler package contains transporter handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/veloxbus/fleet-inventory/internal/model"
	"github.com/veloxbus/fleet-inventory/internal/repository"
)

// trimmedPtr normalizes an optional string field: nil stays nil,
// whitespace-only collapses to nil, anything else is trimmed.
func trimmedPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}

// CreateTransporter handles POST /v1/transporters.
func (h *InventoryHandler) CreateTransporter(c echo.Context) error {
	var body struct {
		Name         string  `json:"name"`
		TaxID        string  `json:"taxId"`
		ContactName  *string `json:"contactName"`
		ContactPhone *string `json:"contactPhone"`
		ContactEmail *string `json:"contactEmail"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.TaxID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and taxId are required"})
	}

	t := &model.Transporter{
		Name:         strings.TrimSpace(body.Name),
		TaxID:        strings.TrimSpace(body.TaxID),
		ContactName:  trimmedPtr(body.ContactName),
		ContactPhone: trimmedPtr(body.ContactPhone),
		ContactEmail: trimmedPtr(body.ContactEmail),
		IsActive:     true,
	}
	if err := h.Transporters.Create(c.Request().Context(), t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create transporter"})
	}
	return c.JSON(http.StatusCreated, t)
}

// UpdateTransporter handles PUT/PATCH /v1/transporters/:id.
func (h *InventoryHandler) UpdateTransporter(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cur, err := h.Transporters.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTransporterNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "transporter not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	var body struct {
		Name         *string `json:"name"`
		TaxID        *string `json:"taxId"`
		ContactName  *string `json:"contactName"`
		ContactPhone *string `json:"contactPhone"`
		ContactEmail *string `json:"contactEmail"`
		IsActive     *bool   `json:"isActive"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
		cur.Name = strings.TrimSpace(*body.Name)
	}
	if body.TaxID != nil && strings.TrimSpace(*body.TaxID) != "" {
		cur.TaxID = strings.TrimSpace(*body.TaxID)
	}
	if body.ContactName != nil {
		cur.ContactName = trimmedPtr(body.ContactName)
	}
	if body.ContactPhone != nil {
		cur.ContactPhone = trimmedPtr(body.ContactPhone)
	}
	if body.ContactEmail != nil {
		cur.ContactEmail = trimmedPtr(body.ContactEmail)
	}
	if body.IsActive != nil {
		cur.IsActive = *body.IsActive
	}

	if err := h.Transporters.Update(c.Request().Context(), cur); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "transporter not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, cur)
}

// DeleteTransporter handles DELETE /v1/transporters/:id.  Rejected
// with 409 while the transporter still has alive buses.
func (h *InventoryHandler) DeleteTransporter(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Transporters.SoftDelete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "transporter still has buses"})
		case errors.Is(err, repository.ErrTransporterNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "transporter not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
