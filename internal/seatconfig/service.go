package seatconfig

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veloxbus/fleet-inventory/internal/database"
	"github.com/veloxbus/fleet-inventory/internal/queue"
	"github.com/veloxbus/fleet-inventory/internal/repository"
)

// Publisher delivers a reconciliation event to the message broker.
// Delivery is best effort: a failure is logged, never surfaced to the
// API caller, because the database state is already committed.
type Publisher func(ctx context.Context, ev queue.DiagramReconciledEvent) error

// Service runs seat-diagram configuration reconciliations.
type Service struct {
	db       *sql.DB
	diagrams *repository.SeatDiagramRepo
	seats    *repository.BusSeatRepo
	log      *zap.Logger
	publish  Publisher
}

// NewService constructs the reconciliation service.  publish may be
// nil when no broker is configured.
func NewService(db *sql.DB, diagrams *repository.SeatDiagramRepo, seats *repository.BusSeatRepo, log *zap.Logger, publish Publisher) *Service {
	if db == nil || diagrams == nil || seats == nil {
		panic("nil dependency passed to seatconfig.NewService")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, diagrams: diagrams, seats: seats, log: log, publish: publish}
}

// UpdateConfiguration reconciles the desired seat list against the
// persisted layout of the diagram.
//
// Validation (geometry, duplicates) runs strictly before any write and
// rejects the call wholesale.  The seat mutations and the diagram's
// counter update then commit in one transaction holding a row lock on
// the diagram, so concurrent reconciliations of the same diagram
// serialize instead of interleaving.  On any failure inside the
// transaction everything rolls back and the underlying error is
// returned unchanged.
func (s *Service) UpdateConfiguration(ctx context.Context, diagramID uint64, inputs []SeatInput) (*Result, error) {
	diagram, err := s.diagrams.GetByID(ctx, diagramID)
	if err != nil {
		return nil, err
	}
	if err := validateGeometry(diagram, inputs); err != nil {
		return nil, err
	}
	if err := validateDuplicates(inputs); err != nil {
		return nil, err
	}

	var result Result
	err = database.WithinTx(ctx, s.db, func(tx *sql.Tx) error {
		// Re-read under the row lock; the pre-validation read was
		// only for failing fast without touching the transaction.
		if _, err := s.diagrams.GetByIDForUpdate(ctx, tx, diagramID); err != nil {
			return err
		}
		existing, err := s.seats.GetByDiagramTx(ctx, tx, diagramID)
		if err != nil {
			return err
		}

		p := reconcile(diagramID, existing, inputs)

		if err := s.seats.CreateBulkTx(ctx, tx, p.toCreate); err != nil {
			return err
		}
		for i := range p.toUpdate {
			if err := s.seats.UpdateTx(ctx, tx, &p.toUpdate[i]); err != nil {
				return err
			}
		}
		if err := s.seats.DeactivateTx(ctx, tx, p.toDeactivate); err != nil {
			return err
		}

		result = Result{
			SeatsCreated:     len(p.toCreate),
			SeatsUpdated:     len(p.toUpdate),
			SeatsDeactivated: len(p.toDeactivate),
			TotalActiveSeats: len(p.toCreate) + len(p.toUpdate),
		}
		return s.diagrams.UpdateAggregatesTx(ctx, tx, diagramID, result.TotalActiveSeats)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("seat diagram reconciled",
		zap.Uint64("diagram_id", diagramID),
		zap.Int("created", result.SeatsCreated),
		zap.Int("updated", result.SeatsUpdated),
		zap.Int("deactivated", result.SeatsDeactivated),
		zap.Int("total_active", result.TotalActiveSeats),
	)

	// The cached counter and the seat rows commit together, so the live
	// count must agree with it; a mismatch means writes bypassed the
	// diagram row lock.
	if n, err := s.seats.CountActiveByDiagram(ctx, diagramID); err == nil && n != result.TotalActiveSeats {
		s.log.Warn("cached seat total drifted from live count",
			zap.Uint64("diagram_id", diagramID),
			zap.Int("cached", result.TotalActiveSeats),
			zap.Int("live", n),
		)
	}

	if s.publish != nil {
		ev := queue.DiagramReconciledEvent{
			EventID:          uuid.NewString(),
			SeatDiagramID:    diagramID,
			SeatsCreated:     result.SeatsCreated,
			SeatsUpdated:     result.SeatsUpdated,
			SeatsDeactivated: result.SeatsDeactivated,
			TotalActiveSeats: result.TotalActiveSeats,
			ReconciledAt:     time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.publish(ctx, ev); err != nil {
			s.log.Warn("diagram.reconciled publish failed",
				zap.Uint64("diagram_id", diagramID), zap.Error(err))
		}
	}
	return &result, nil
}
