package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"bitbucket.org/crgw/booking-engine/internal/schema"
)

type IntentStatus string

const (
	IntentStatusPending   IntentStatus = "PENDING"
	IntentStatusConfirmed IntentStatus = "CONFIRMED"
	IntentStatusFailed    IntentStatus = "FAILED"
)

// Intent is one booking submission that passed validation and is on its way
// through payment capture.
type Intent struct {
	Reference   string
	VehicleId   string
	PickUpDate  time.Time
	DropOffDate time.Time
	Email       string
	Total       schema.Amount
	Currency    string
}

type Store interface {
	CreateIntent(ctx context.Context, intent Intent) error
	UpdateStatus(ctx context.Context, reference string, status IntentStatus) error
}

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateIntent(ctx context.Context, intent Intent) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO booking_intents (
            reference, vehicle_id, pickup_date, dropoff_date, email,
            total, currency, status
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		intent.Reference,
		intent.VehicleId,
		intent.PickUpDate,
		intent.DropOffDate,
		intent.Email,
		intent.Total,
		intent.Currency,
		IntentStatusPending,
	)
	if err != nil {
		return fmt.Errorf("insert booking intent: %w", err)
	}

	return nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, reference string, status IntentStatus) error {
	_, err := s.db.Exec(ctx, `
        UPDATE booking_intents
        SET status = $2, updated_at = now()
        WHERE reference = $1`,
		reference,
		status,
	)
	if err != nil {
		return fmt.Errorf("update booking intent status: %w", err)
	}

	return nil
}
