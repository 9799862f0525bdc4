package pathopt

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/veloxbus/fleet-inventory/internal/database"
	"github.com/veloxbus/fleet-inventory/internal/model"
	"github.com/veloxbus/fleet-inventory/internal/repository"
)

// ErrOptionInUse is returned when an edit or delete targets an option
// that a schedule currently references.  Handlers translate it into
// an HTTP 409 response.
var ErrOptionInUse = errors.New("pathway option is in use")

// Service runs pathway-option mutations that touch derived state.
type Service struct {
	db       *sql.DB
	pathways *repository.PathwayRepo
	options  *repository.PathwayOptionRepo
	log      *zap.Logger
}

// NewService constructs the pathway-option service.
func NewService(db *sql.DB, pathways *repository.PathwayRepo, options *repository.PathwayOptionRepo, log *zap.Logger) *Service {
	if db == nil || pathways == nil || options == nil {
		panic("nil dependency passed to pathopt.NewService")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, pathways: pathways, options: options, log: log}
}

// Create validates the raw metrics and toll list, derives the average
// speed and pass times, and persists the option with its tolls in one
// transaction.
func (s *Service) Create(ctx context.Context, o *model.PathwayOption, tolls []model.TollPass) error {
	if _, err := s.pathways.GetByID(ctx, o.PathwayID); err != nil {
		return err
	}
	if err := ValidateMetrics(o.DistanceKm, o.DurationMin); err != nil {
		return err
	}
	if err := ValidateTolls(o.DistanceKm, tolls); err != nil {
		return err
	}
	o.AvgSpeedKmh = AverageSpeed(o.DistanceKm, o.DurationMin)
	RecalcPassTimes(o.AvgSpeedKmh, tolls)

	return database.WithinTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.options.CreateTx(ctx, tx, o); err != nil {
			return err
		}
		return s.options.ReplaceTollsTx(ctx, tx, o.ID, tolls)
	})
}

// MetricsUpdate carries the editable option fields; nil pointers leave
// the current value in place.
type MetricsUpdate struct {
	Name        *string
	DistanceKm  *float64
	DurationMin *float64
	IsActive    *bool
}

// UpdateMetrics applies a metrics change to an option that is not in
// use.  When distance or duration changes the average speed is
// re-derived and every dependent toll pass-time is rewritten inside
// the same transaction, so readers never observe a speed and pass
// times from different generations.
func (s *Service) UpdateMetrics(ctx context.Context, id uint64, upd MetricsUpdate) (*model.PathwayOption, error) {
	var out *model.PathwayOption
	err := database.WithinTx(ctx, s.db, func(tx *sql.Tx) error {
		o, err := s.options.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if o.InUse {
			return ErrOptionInUse
		}

		if upd.Name != nil {
			o.Name = *upd.Name
		}
		if upd.IsActive != nil {
			o.IsActive = *upd.IsActive
		}
		metricsChanged := false
		if upd.DistanceKm != nil && *upd.DistanceKm != o.DistanceKm {
			o.DistanceKm = *upd.DistanceKm
			metricsChanged = true
		}
		if upd.DurationMin != nil && *upd.DurationMin != o.DurationMin {
			o.DurationMin = *upd.DurationMin
			metricsChanged = true
		}
		if err := ValidateMetrics(o.DistanceKm, o.DurationMin); err != nil {
			return err
		}

		if metricsChanged {
			o.AvgSpeedKmh = AverageSpeed(o.DistanceKm, o.DurationMin)
			tolls, err := s.options.GetTolls(ctx, id)
			if err != nil {
				return err
			}
			if err := ValidateTolls(o.DistanceKm, tolls); err != nil {
				return err
			}
			RecalcPassTimes(o.AvgSpeedKmh, tolls)
			if err := s.options.ReplaceTollsTx(ctx, tx, id, tolls); err != nil {
				return err
			}
		}
		if err := s.options.UpdateTx(ctx, tx, o); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("pathway option updated",
		zap.Uint64("option_id", out.ID),
		zap.Float64("avg_speed_kmh", out.AvgSpeedKmh),
	)
	return out, nil
}

// ReplaceTolls swaps the option's toll list.  The option must not be
// in use; pass times are derived from the option's current average
// speed.
func (s *Service) ReplaceTolls(ctx context.Context, id uint64, tolls []model.TollPass) ([]model.TollPass, error) {
	err := database.WithinTx(ctx, s.db, func(tx *sql.Tx) error {
		o, err := s.options.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if o.InUse {
			return ErrOptionInUse
		}
		if err := ValidateTolls(o.DistanceKm, tolls); err != nil {
			return err
		}
		RecalcPassTimes(o.AvgSpeedKmh, tolls)
		return s.options.ReplaceTollsTx(ctx, tx, id, tolls)
	})
	if err != nil {
		return nil, err
	}
	return tolls, nil
}

// Delete removes an option and its tolls unless it is in use.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	err := s.options.Delete(ctx, id)
	if errors.Is(err, repository.ErrConflict) {
		return ErrOptionInUse
	}
	return err
}

// SetInUse flips the usage lock.  Locking is how schedule management
// marks an option as referenced; unlocking re-opens it for edits.
func (s *Service) SetInUse(ctx context.Context, id uint64, inUse bool) error {
	return s.options.SetInUse(ctx, id, inUse)
}
