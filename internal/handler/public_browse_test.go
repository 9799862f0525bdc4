package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloxbus/fleet-inventory/internal/repository"
)

func setupPublicHandler(t *testing.T) (*PublicHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	h := &PublicHandler{
		Diagrams: repository.NewSeatDiagramRepo(db),
		Seats:    repository.NewBusSeatRepo(db),
	}
	return h, mock, func() { _ = db.Close() }
}

func layoutRequest(t *testing.T, id string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/public/seat-diagrams/"+id+"/seats/layout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/public/seat-diagrams/:id/seats/layout")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestGetDiagramSeatLayout_GroupsByFloorAndRow(t *testing.T) {
	h, mock, cleanup := setupPublicHandler(t)
	defer cleanup()

	now := time.Now()
	seatCols := []string{
		"id", "seat_diagram_id", "floor_number", "pos_x", "pos_y", "space_type",
		"seat_number", "seat_type", "amenities", "is_active", "created_at", "updated_at",
	}
	// Already in floor/y/x order, the way the repository returns them.
	seats := sqlmock.NewRows(seatCols).
		AddRow(1, 42, 1, 0, 1, "SEAT", "1A", "REGULAR", []byte(`["usb"]`), true, now, now).
		AddRow(2, 42, 1, 1, 1, "AISLE", nil, nil, nil, true, now, now).
		AddRow(3, 42, 1, 0, 2, "SEAT", "2A", nil, nil, true, now, now).
		AddRow(4, 42, 2, 0, 1, "SEAT", "21A", nil, nil, true, now, now)

	mock.ExpectQuery(`FROM seat_diagrams`).WithArgs(42).WillReturnRows(testDiagramRows())
	mock.ExpectQuery(`FROM bus_seats`).WithArgs(42).WillReturnRows(seats)

	c, rec := layoutRequest(t, "42")
	require.NoError(t, h.GetDiagramSeatLayout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Floors []struct {
			FloorNumber int `json:"floorNumber"`
			Rows        []struct {
				Y     int `json:"y"`
				Cells []struct {
					X          int     `json:"x"`
					SpaceType  string  `json:"spaceType"`
					SeatNumber *string `json:"seatNumber"`
				} `json:"cells"`
			} `json:"rows"`
		} `json:"floors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Floors, 2)
	assert.Equal(t, 1, resp.Floors[0].FloorNumber)
	require.Len(t, resp.Floors[0].Rows, 2)
	require.Len(t, resp.Floors[0].Rows[0].Cells, 2)
	assert.Equal(t, 1, resp.Floors[0].Rows[0].Y)
	assert.Equal(t, "1A", *resp.Floors[0].Rows[0].Cells[0].SeatNumber)
	assert.Equal(t, "AISLE", resp.Floors[0].Rows[0].Cells[1].SpaceType)
	assert.Equal(t, 2, resp.Floors[0].Rows[1].Y)

	assert.Equal(t, 2, resp.Floors[1].FloorNumber)
	require.Len(t, resp.Floors[1].Rows, 1)
	assert.Equal(t, "21A", *resp.Floors[1].Rows[0].Cells[0].SeatNumber)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDiagramSeatLayout_NotFound(t *testing.T) {
	h, mock, cleanup := setupPublicHandler(t)
	defer cleanup()

	mock.ExpectQuery(`FROM seat_diagrams`).WithArgs(99).
		WillReturnRows(sqlmock.NewRows(testDiagramColumns))

	c, rec := layoutRequest(t, "99")
	require.NoError(t, h.GetDiagramSeatLayout(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
