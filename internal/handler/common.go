package handler // handler defines http handlers

import (
	"database/sql"
	"errors"  // errors provides sentinel values used in getUserID
	"strconv" // strconv converts strings to numeric types

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"

	"github.com/veloxbus/fleet-inventory/internal/pathopt"
	"github.com/veloxbus/fleet-inventory/internal/repository"
	"github.com/veloxbus/fleet-inventory/internal/seatconfig"
)

// InventoryHandler bundles the repositories and services behind the
// protected fleet-inventory endpoints.  DB is held directly for the
// multi-repository transactions (bus creation clones a diagram).
type InventoryHandler struct {
	DB           *sql.DB
	Diagrams     *repository.SeatDiagramRepo
	Seats        *repository.BusSeatRepo
	Buses        *repository.BusRepo
	Transporters *repository.TransporterRepo
	Nodes        *repository.NodeRepo
	Pathways     *repository.PathwayRepo
	Options      *repository.PathwayOptionRepo
	SeatConfig   *seatconfig.Service
	PathOpt      *pathopt.Service
	Log          *zap.Logger
}

// NewInventoryHandler constructs an InventoryHandler and panics if any
// dependency is nil.
func NewInventoryHandler(
	db *sql.DB,
	diagrams *repository.SeatDiagramRepo,
	seats *repository.BusSeatRepo,
	buses *repository.BusRepo,
	transporters *repository.TransporterRepo,
	nodes *repository.NodeRepo,
	pathways *repository.PathwayRepo,
	options *repository.PathwayOptionRepo,
	seatConfig *seatconfig.Service,
	pathOpt *pathopt.Service,
	log *zap.Logger,
) *InventoryHandler {
	if db == nil || diagrams == nil || seats == nil || buses == nil || transporters == nil ||
		nodes == nil || pathways == nil || options == nil || seatConfig == nil || pathOpt == nil {
		panic("nil dependency passed to NewInventoryHandler")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &InventoryHandler{
		DB:           db,
		Diagrams:     diagrams,
		Seats:        seats,
		Buses:        buses,
		Transporters: transporters,
		Nodes:        nodes,
		Pathways:     pathways,
		Options:      options,
		SeatConfig:   seatConfig,
		PathOpt:      pathOpt,
		Log:          log,
	}
}

// getUserID extracts the user_id from echo.Context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the named path parameter as an unsigned id.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
