package db

import (
	"context"

	"airport-booking/internal/models"
)

// Reference checks used by the scheduling service before inserts. The FK
// constraints remain the backstop; these exist to surface clean not-found
// errors.

func (d *DB) AirportExists(ctx context.Context, id string) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Airport)(nil)).
		Where("id = ?", id).
		Exists(ctx)
}

func (d *DB) AirplaneExists(ctx context.Context, id string) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Airplane)(nil)).
		Where("id = ?", id).
		Exists(ctx)
}

func (d *DB) RouteExists(ctx context.Context, id string) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Route)(nil)).
		Where("id = ?", id).
		Exists(ctx)
}

func (d *DB) CrewExists(ctx context.Context, id string) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Crew)(nil)).
		Where("id = ?", id).
		Exists(ctx)
}
