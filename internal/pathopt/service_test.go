package pathopt

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veloxbus/fleet-inventory/internal/model"
	"github.com/veloxbus/fleet-inventory/internal/repository"
)

func setupService(t *testing.T) (*Service, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	svc := NewService(db,
		repository.NewPathwayRepo(db),
		repository.NewPathwayOptionRepo(db),
		zap.NewNop(),
	)
	return svc, mock, func() { _ = db.Close() }
}

var optionColumns = []string{
	"id", "pathway_id", "name", "distance_km", "duration_min", "avg_speed_kmh",
	"in_use", "is_active", "created_at", "updated_at",
}

// optionRow is option 5 on pathway 2: 100 km in 120 min, 50 km/h.
func optionRow(inUse bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(optionColumns).
		AddRow(5, 2, "Express", 100.0, 120.0, 50.0, inUse, true, now, now)
}

func pathwayRow() *sqlmock.Rows {
	now := time.Now()
	cols := []string{"id", "name", "origin_node_id", "destination_node_id", "distance_km",
		"is_active", "created_at", "updated_at", "deleted_at"}
	return sqlmock.NewRows(cols).AddRow(2, "North Corridor", 1, 2, 100.0, true, now, now, nil)
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(s string) *string     { return &s }

func TestCreate_DerivesSpeedAndPassTimes(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	mock.ExpectQuery(`FROM pathways`).WithArgs(2).WillReturnRows(pathwayRow())
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO pathway_options`).WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(`DELETE FROM toll_passes`).WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO toll_passes`).
		WithArgs(5, 9, 1, 30.0, 36.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	o := &model.PathwayOption{PathwayID: 2, Name: "Express", DistanceKm: 100, DurationMin: 120, IsActive: true}
	tolls := []model.TollPass{toll(9, 30)}

	require.NoError(t, svc.Create(context.Background(), o, tolls))
	assert.Equal(t, uint64(5), o.ID)
	assert.Equal(t, 50.0, o.AvgSpeedKmh)
	assert.Equal(t, 1, tolls[0].Sequence)
	assert.Equal(t, 36.0, tolls[0].PassTimeMin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_InvalidMetricsRejectedBeforeWrites(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	mock.ExpectQuery(`FROM pathways`).WithArgs(2).WillReturnRows(pathwayRow())

	o := &model.PathwayOption{PathwayID: 2, Name: "Express", DistanceKm: -3, DurationMin: 120}
	err := svc.Create(context.Background(), o, nil)
	got := violations(t, err)
	assert.Equal(t, []string{"Invalid distance -3.00 km. Must be greater than 0"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMetrics_RewritesTollsInSameTx(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	tollCols := []string{"id", "pathway_option_id", "toll_node_id", "sequence",
		"distance_from_origin_km", "pass_time_min"}

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(5).WillReturnRows(optionRow(false))
	mock.ExpectQuery(`FROM toll_passes`).WithArgs(5).
		WillReturnRows(sqlmock.NewRows(tollCols).AddRow(11, 5, 9, 1, 30.0, 36.0))
	mock.ExpectExec(`DELETE FROM toll_passes`).WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 1))
	// 90 km in 120 min is 45 km/h; 30 km at 45 km/h is a 40 min pass.
	mock.ExpectExec(`INSERT INTO toll_passes`).
		WithArgs(5, 9, 1, 30.0, 40.0).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec(`UPDATE pathway_options`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	out, err := svc.UpdateMetrics(context.Background(), 5, MetricsUpdate{DistanceKm: floatPtr(90)})
	require.NoError(t, err)
	assert.Equal(t, 90.0, out.DistanceKm)
	assert.Equal(t, 45.0, out.AvgSpeedKmh)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMetrics_NameOnlyLeavesTollsAlone(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(5).WillReturnRows(optionRow(false))
	mock.ExpectExec(`UPDATE pathway_options`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	out, err := svc.UpdateMetrics(context.Background(), 5, MetricsUpdate{Name: strPtr("Express v2")})
	require.NoError(t, err)
	assert.Equal(t, "Express v2", out.Name)
	assert.Equal(t, 50.0, out.AvgSpeedKmh)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMetrics_SameValuesSkipRecalc(t *testing.T) {
	// Submitting the stored distance again is not a metrics change.
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(5).WillReturnRows(optionRow(false))
	mock.ExpectExec(`UPDATE pathway_options`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	out, err := svc.UpdateMetrics(context.Background(), 5, MetricsUpdate{DistanceKm: floatPtr(100)})
	require.NoError(t, err)
	assert.Equal(t, 50.0, out.AvgSpeedKmh)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMetrics_InUse(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(5).WillReturnRows(optionRow(true))
	mock.ExpectRollback()

	_, err := svc.UpdateMetrics(context.Background(), 5, MetricsUpdate{DistanceKm: floatPtr(90)})
	assert.ErrorIs(t, err, ErrOptionInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceTolls_InUse(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(5).WillReturnRows(optionRow(true))
	mock.ExpectRollback()

	_, err := svc.ReplaceTolls(context.Background(), 5, []model.TollPass{toll(9, 30)})
	assert.ErrorIs(t, err, ErrOptionInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_InUse(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(5).WillReturnRows(optionRow(true))
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrOptionInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_RemovesOptionAndTolls(t *testing.T) {
	svc, mock, cleanup := setupService(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(5).WillReturnRows(optionRow(false))
	mock.ExpectExec(`DELETE FROM toll_passes`).WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM pathway_options`).WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
