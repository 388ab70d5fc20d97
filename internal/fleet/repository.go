// Package fleet loads vehicle pricing and policy records for the evaluator.
package fleet

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bitbucket.org/crgw/booking-engine/internal/schema"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

type Repository interface {
	RequirementsFor(ctx context.Context, vehicleId string) (*schema.VehicleRequirements, error)
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) RequirementsFor(ctx context.Context, vehicleId string) (*schema.VehicleRequirements, error) {
	query := `
        SELECT id, price_per_day, currency, require_driver_license, minimum_driver_age,
               minimum_driving_experience, minimum_rental_days, require_damage_deposit,
               damage_deposit_amount
        FROM vehicles
        WHERE id = $1`

	var requirements schema.VehicleRequirements
	err := r.db.QueryRow(ctx, query, vehicleId).Scan(
		&requirements.VehicleId,
		&requirements.PricePerDay,
		&requirements.Currency,
		&requirements.RequireDriverLicense,
		&requirements.MinimumDriverAge,
		&requirements.MinimumDrivingExperience,
		&requirements.MinimumRentalDays,
		&requirements.RequireDamageDeposit,
		&requirements.DamageDepositAmount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("query vehicle requirements: %w", err)
	}

	return &requirements, nil
}
