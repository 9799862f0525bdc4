// Package handler exposes HTTP handlers for both authenticated and public
// endpoints.  This file defines the public browsing API: unauthenticated
// reads over seat diagrams, the fleet and the pathway network.  Sensitive
// fields are filtered from responses and the routes sit behind the Redis
// response cache.

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/veloxbus/fleet-inventory/internal/model"
	"github.com/veloxbus/fleet-inventory/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
type PublicHandler struct {
	Diagrams     *repository.SeatDiagramRepo
	Seats        *repository.BusSeatRepo
	Buses        *repository.BusRepo
	Transporters *repository.TransporterRepo
	Nodes        *repository.NodeRepo
	Pathways     *repository.PathwayRepo
	Options      *repository.PathwayOptionRepo
}

// PublicDiagram is a seat diagram exposed via the public API.
type PublicDiagram struct {
	ID               uint64              `json:"id"`
	Name             string              `json:"name"`
	MaxCapacity      int                 `json:"maxCapacity"`
	NumFloors        int                 `json:"numFloors"`
	SeatsPerFloor    []model.FloorLayout `json:"seatsPerFloor"`
	TotalSeats       int                 `json:"totalSeats"`
	IsFactoryDefault bool                `json:"isFactoryDefault"`
	IsActive         bool                `json:"isActive"`
}

func publicDiagram(d *model.SeatDiagram) PublicDiagram {
	return PublicDiagram{
		ID:               d.ID,
		Name:             d.Name,
		MaxCapacity:      d.MaxCapacity,
		NumFloors:        d.NumFloors,
		SeatsPerFloor:    d.SeatsPerFloor,
		TotalSeats:       d.TotalSeats,
		IsFactoryDefault: d.IsFactoryDefault,
		IsActive:         d.IsActive,
	}
}

// GetSeatDiagrams handles GET /v1/seat-diagrams.  The optional
// ?factoryDefault=true|false query filters templates vs instances.
func (h *PublicHandler) GetSeatDiagrams(c echo.Context) error {
	var factoryDefault *bool
	if raw := c.QueryParam("factoryDefault"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid factoryDefault"})
		}
		factoryDefault = &v
	}
	diagrams, err := h.Diagrams.List(c.Request().Context(), factoryDefault)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicDiagram, 0, len(diagrams))
	for i := range diagrams {
		out = append(out, publicDiagram(&diagrams[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetSeatDiagram handles GET /v1/seat-diagrams/:id.
func (h *PublicHandler) GetSeatDiagram(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.Diagrams.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSeatDiagramNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat diagram not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, publicDiagram(d))
}

// GetDiagramSeats handles GET /v1/seat-diagrams/:id/seats: the flat
// seat list.  ?active=true|false filters on the seat's active flag.
func (h *PublicHandler) GetDiagramSeats(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Diagrams.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSeatDiagramNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat diagram not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	seats, err := h.Seats.GetByDiagram(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if raw := c.QueryParam("active"); raw != "" {
		want, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid active"})
		}
		filtered := seats[:0]
		for _, s := range seats {
			if s.IsActive == want {
				filtered = append(filtered, s)
			}
		}
		seats = filtered
	}
	if seats == nil {
		seats = []model.BusSeat{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": seats})
}

// layoutCell is one grid cell in the grouped layout response.
type layoutCell struct {
	X          int      `json:"x"`
	SpaceType  string   `json:"spaceType"`
	SeatNumber *string  `json:"seatNumber,omitempty"`
	SeatType   *string  `json:"seatType,omitempty"`
	Amenities  []string `json:"amenities,omitempty"`
}

type layoutRow struct {
	Y     int          `json:"y"`
	Cells []layoutCell `json:"cells"`
}

type layoutFloor struct {
	FloorNumber int         `json:"floorNumber"`
	Rows        []layoutRow `json:"rows"`
}

// GetDiagramSeatLayout handles GET /v1/seat-diagrams/:id/seats/layout.
// Active seats are grouped per floor and row so clients can render the
// grid without re-sorting.  Rows come back in floor/y/x order because
// the repository already orders the query that way.
func (h *PublicHandler) GetDiagramSeatLayout(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Diagrams.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSeatDiagramNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat diagram not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	seats, err := h.Seats.GetActiveByDiagram(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	floors := []layoutFloor{}
	for _, s := range seats {
		if len(floors) == 0 || floors[len(floors)-1].FloorNumber != s.FloorNumber {
			floors = append(floors, layoutFloor{FloorNumber: s.FloorNumber})
		}
		f := &floors[len(floors)-1]
		if len(f.Rows) == 0 || f.Rows[len(f.Rows)-1].Y != s.PosY {
			f.Rows = append(f.Rows, layoutRow{Y: s.PosY})
		}
		row := &f.Rows[len(f.Rows)-1]
		row.Cells = append(row.Cells, layoutCell{
			X:          s.PosX,
			SpaceType:  s.SpaceType,
			SeatNumber: s.SeatNumber,
			SeatType:   s.SeatType,
			Amenities:  s.Amenities,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"floors": floors})
}

// GetPathways handles GET /v1/pathways.
func (h *PublicHandler) GetPathways(c echo.Context) error {
	pathways, err := h.Pathways.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": pathways})
}

// publicOption is an option plus its toll list in one response item.
type publicOption struct {
	model.PathwayOption
	Tolls []model.TollPass `json:"tolls"`
}

// GetPathwayOptions handles GET /v1/pathways/:id/options, embedding
// each option's toll passes.
func (h *PublicHandler) GetPathwayOptions(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Pathways.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPathwayNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pathway not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	options, err := h.Options.ListByPathway(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]publicOption, 0, len(options))
	for _, o := range options {
		tolls, err := h.Options.GetTolls(ctx, o.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if tolls == nil {
			tolls = []model.TollPass{}
		}
		out = append(out, publicOption{PathwayOption: o, Tolls: tolls})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetNodes handles GET /v1/nodes with an optional ?kind= filter.
func (h *PublicHandler) GetNodes(c echo.Context) error {
	kind := strings.ToUpper(strings.TrimSpace(c.QueryParam("kind")))
	if kind != "" && !validNodeKind(kind) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid kind"})
	}
	nodes, err := h.Nodes.List(c.Request().Context(), kind)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": nodes})
}

// GetTransporters handles GET /v1/transporters.
func (h *PublicHandler) GetTransporters(c echo.Context) error {
	transporters, err := h.Transporters.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": transporters})
}

// GetBuses handles GET /v1/buses with an optional ?transporterId= filter.
func (h *PublicHandler) GetBuses(c echo.Context) error {
	var transporterID uint64
	if raw := c.QueryParam("transporterId"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid transporterId"})
		}
		transporterID = v
	}
	buses, err := h.Buses.List(c.Request().Context(), transporterID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": buses})
}
