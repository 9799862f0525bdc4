// Package pathopt implements the pathway-option metrics engine: it
// derives an option's average speed from its distance and duration,
// keeps the dependent toll pass-times in sync when the metrics change
// and enforces the usage-locking rule that shields in-use options from
// edits.
package pathopt

import (
	"fmt"
	"math"

	"github.com/veloxbus/fleet-inventory/internal/model"
	"github.com/veloxbus/fleet-inventory/internal/validation"
)

// round2 keeps derived metrics at two decimals so repeated
// recalculations are stable.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AverageSpeed derives km/h from a distance in kilometres and a
// duration in minutes.  Inputs must both be positive; the caller is
// expected to have run ValidateMetrics first.
func AverageSpeed(distanceKm, durationMin float64) float64 {
	return round2(distanceKm / durationMin * 60)
}

// ValidateMetrics collects every violation in the option's raw
// metrics.  Violations are aggregated, not fail-fast, so the caller
// sees all offending fields at once.
func ValidateMetrics(distanceKm, durationMin float64) error {
	var errs validation.Errors
	if distanceKm <= 0 {
		errs.Add(fmt.Sprintf("Invalid distance %.2f km. Must be greater than 0", distanceKm))
	}
	if durationMin <= 0 {
		errs.Add(fmt.Sprintf("Invalid duration %.2f min. Must be greater than 0", durationMin))
	}
	return errs.Err()
}

// ValidateTolls checks the toll list against the option's distance:
// distances must be positive, must not decrease along the sequence and
// must not exceed the option's total distance.  All violations are
// collected across the whole list.
func ValidateTolls(optionDistanceKm float64, tolls []model.TollPass) error {
	var errs validation.Errors
	prev := 0.0
	for i, t := range tolls {
		if t.DistanceFromOriginKm <= 0 {
			errs.Add(fmt.Sprintf("Invalid toll distance %.2f km at sequence %d. Must be greater than 0", t.DistanceFromOriginKm, i+1))
			continue
		}
		if t.DistanceFromOriginKm < prev {
			errs.Add(fmt.Sprintf("Toll distance %.2f km at sequence %d is before the previous toll", t.DistanceFromOriginKm, i+1))
		}
		if t.DistanceFromOriginKm > optionDistanceKm {
			errs.Add(fmt.Sprintf("Toll distance %.2f km at sequence %d exceeds option distance %.2f km", t.DistanceFromOriginKm, i+1, optionDistanceKm))
		}
		prev = t.DistanceFromOriginKm
	}
	return errs.Err()
}

// RecalcPassTimes rewrites the derived pass_time_min on every toll
// from the option's average speed and renumbers the sequence.  Called
// whenever the option's metrics change so the persisted pass times
// never drift from the speed they were derived from.
func RecalcPassTimes(avgSpeedKmh float64, tolls []model.TollPass) {
	for i := range tolls {
		tolls[i].Sequence = i + 1
		tolls[i].PassTimeMin = round2(tolls[i].DistanceFromOriginKm / avgSpeedKmh * 60)
	}
}
