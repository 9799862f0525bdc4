package pathopt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloxbus/fleet-inventory/internal/model"
	"github.com/veloxbus/fleet-inventory/internal/validation"
)

func violations(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	var verr *validation.ValidationError
	require.True(t, errors.As(err, &verr))
	return verr.Violations
}

func toll(nodeID uint64, distance float64) model.TollPass {
	return model.TollPass{TollNodeID: nodeID, DistanceFromOriginKm: distance}
}

func TestAverageSpeed(t *testing.T) {
	assert.Equal(t, 50.0, AverageSpeed(100, 120))
	assert.Equal(t, 200.0, AverageSpeed(10, 3))
	// 1 km in 7 min is 8.5714... km/h, kept at two decimals.
	assert.Equal(t, 8.57, AverageSpeed(1, 7))
}

func TestValidateMetrics(t *testing.T) {
	assert.NoError(t, ValidateMetrics(100, 120))

	got := violations(t, ValidateMetrics(0, -5))
	assert.Equal(t, []string{
		"Invalid distance 0.00 km. Must be greater than 0",
		"Invalid duration -5.00 min. Must be greater than 0",
	}, got)
}

func TestValidateTolls_Valid(t *testing.T) {
	tolls := []model.TollPass{toll(1, 20), toll(2, 55.5), toll(3, 100)}
	assert.NoError(t, ValidateTolls(100, tolls))
	assert.NoError(t, ValidateTolls(100, nil))
}

func TestValidateTolls_NonPositiveDistance(t *testing.T) {
	got := violations(t, ValidateTolls(100, []model.TollPass{toll(1, 0), toll(2, 50)}))
	assert.Equal(t, []string{
		"Invalid toll distance 0.00 km at sequence 1. Must be greater than 0",
	}, got)
}

func TestValidateTolls_OutOfOrder(t *testing.T) {
	got := violations(t, ValidateTolls(100, []model.TollPass{toll(1, 60), toll(2, 40)}))
	assert.Equal(t, []string{
		"Toll distance 40.00 km at sequence 2 is before the previous toll",
	}, got)
}

func TestValidateTolls_ExceedsOptionDistance(t *testing.T) {
	got := violations(t, ValidateTolls(100, []model.TollPass{toll(1, 120.5)}))
	assert.Equal(t, []string{
		"Toll distance 120.50 km at sequence 1 exceeds option distance 100.00 km",
	}, got)
}

func TestValidateTolls_CollectsEverything(t *testing.T) {
	tolls := []model.TollPass{toll(1, -1), toll(2, 80), toll(3, 30), toll(4, 150)}
	got := violations(t, ValidateTolls(100, tolls))
	assert.Equal(t, []string{
		"Invalid toll distance -1.00 km at sequence 1. Must be greater than 0",
		"Toll distance 30.00 km at sequence 3 is before the previous toll",
		"Toll distance 150.00 km at sequence 4 exceeds option distance 100.00 km",
	}, got)
}

func TestRecalcPassTimes(t *testing.T) {
	tolls := []model.TollPass{
		{TollNodeID: 1, Sequence: 9, DistanceFromOriginKm: 30},
		{TollNodeID: 2, Sequence: 4, DistanceFromOriginKm: 45},
	}
	RecalcPassTimes(45, tolls)

	// Sequence renumbered from 1 in slice order.
	assert.Equal(t, 1, tolls[0].Sequence)
	assert.Equal(t, 2, tolls[1].Sequence)
	// pass_time_min = distance / speed * 60, two decimals.
	assert.Equal(t, 40.0, tolls[0].PassTimeMin)
	assert.Equal(t, 60.0, tolls[1].PassTimeMin)

	// A speed change rewrites every pass time.
	RecalcPassTimes(90, tolls)
	assert.Equal(t, 20.0, tolls[0].PassTimeMin)
	assert.Equal(t, 30.0, tolls[1].PassTimeMin)
}
