package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veloxbus/fleet-inventory/internal/queue"
	"github.com/veloxbus/fleet-inventory/internal/repository"
	"github.com/veloxbus/fleet-inventory/internal/seatconfig"
)

func setupInventoryHandler(t *testing.T) (*InventoryHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	diagrams := repository.NewSeatDiagramRepo(db)
	seats := repository.NewBusSeatRepo(db)
	svc := seatconfig.NewService(db, diagrams, seats, zap.NewNop(),
		func(ctx context.Context, ev queue.DiagramReconciledEvent) error { return nil })

	h := &InventoryHandler{
		DB:         db,
		Diagrams:   diagrams,
		Seats:      seats,
		SeatConfig: svc,
		Log:        zap.NewNop(),
	}
	return h, mock, func() { _ = db.Close() }
}

func configRequest(t *testing.T, id, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/v1/seat-diagrams/"+id+"/configuration", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/seat-diagrams/:id/configuration")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

const testDiagramLayout = `[{"floorNumber":1,"numRows":2,"seatsLeft":1,"seatsRight":1}]`

var testDiagramColumns = []string{
	"id", "name", "description", "max_capacity", "num_floors", "seats_per_floor",
	"total_seats", "is_factory_default", "is_modified", "is_active",
	"created_at", "updated_at", "deleted_at",
}

func testDiagramRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(testDiagramColumns).
		AddRow(42, "City Shuttle", nil, 10, 1, []byte(testDiagramLayout), 0, false, false, true, now, now, nil)
}

func TestUpdateSeatConfiguration_OK(t *testing.T) {
	h, mock, cleanup := setupInventoryHandler(t)
	defer cleanup()

	seatCols := []string{
		"id", "seat_diagram_id", "floor_number", "pos_x", "pos_y", "space_type",
		"seat_number", "seat_type", "amenities", "is_active", "created_at", "updated_at",
	}

	mock.ExpectQuery(`FROM seat_diagrams`).WithArgs(42).WillReturnRows(testDiagramRows())
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(42).WillReturnRows(testDiagramRows())
	mock.ExpectQuery(`FROM bus_seats`).WithArgs(42).WillReturnRows(sqlmock.NewRows(seatCols))
	mock.ExpectExec(`INSERT INTO bus_seats`).WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectExec(`UPDATE seat_diagrams SET total_seats`).WithArgs(2, 42).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT COUNT`).WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(2))

	body := `{"seats":[
		{"seatNumber":"1A","floorNumber":1,"position":{"x":0,"y":1}},
		{"seatNumber":"1B","floorNumber":1,"position":{"x":2,"y":1}}
	]}`
	c, rec := configRequest(t, "42", body)

	require.NoError(t, h.UpdateSeatConfiguration(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var result seatconfig.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, seatconfig.Result{SeatsCreated: 2, TotalActiveSeats: 2}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSeatConfiguration_NotFound(t *testing.T) {
	h, mock, cleanup := setupInventoryHandler(t)
	defer cleanup()

	mock.ExpectQuery(`FROM seat_diagrams`).WithArgs(99).WillReturnError(sql.ErrNoRows)

	c, rec := configRequest(t, "99", `{"seats":[]}`)
	require.NoError(t, h.UpdateSeatConfiguration(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSeatConfiguration_ValidationErrors(t *testing.T) {
	h, mock, cleanup := setupInventoryHandler(t)
	defer cleanup()

	mock.ExpectQuery(`FROM seat_diagrams`).WithArgs(42).WillReturnRows(testDiagramRows())

	// Floor out of range and a SEAT cell without a number.
	body := `{"seats":[
		{"seatNumber":"9A","floorNumber":9,"position":{"x":0,"y":1}},
		{"floorNumber":1,"position":{"x":0,"y":1},"spaceType":"SEAT"}
	]}`
	c, rec := configRequest(t, "42", body)

	require.NoError(t, h.UpdateSeatConfiguration(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{
		"Invalid floor number 9. Must be between 1 and 1",
		"Seat number is required for SEAT space at floor 1, position (0, 1)",
	}, resp.Errors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSeatConfiguration_BadID(t *testing.T) {
	h, _, cleanup := setupInventoryHandler(t)
	defer cleanup()

	c, rec := configRequest(t, "abc", `{"seats":[]}`)
	require.NoError(t, h.UpdateSeatConfiguration(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
