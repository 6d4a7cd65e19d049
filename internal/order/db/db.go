package db

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	"airport-booking/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ---------------- ORDERS ----------------

func (d *DB) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := d.Bun.NewSelect().
		Model(&order).
		Relation("Tickets").
		Where("\"order\".id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (d *DB) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := d.Bun.NewSelect().
		Model(&orders).
		Relation("Tickets").
		Where("\"order\".user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrderWithTickets persists the order header and every ticket in a
// single transaction. Any insert failure rolls back the whole set, so a
// partial order is never observable. The unique index on
// (flight_id, row, seat) is the final arbiter against concurrent
// submissions racing for the same seat.
func (d *DB) CreateOrderWithTickets(ctx context.Context, order models.Order, tickets []models.Ticket) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&order).Exec(ctx); err != nil {
			return err
		}
		for i := range tickets {
			if _, err := tx.NewInsert().Model(&tickets[i]).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteOrder cascades to the order's tickets, inside one transaction.
// Not routed over HTTP; administrative maintenance path only.
func (d *DB) DeleteOrder(ctx context.Context, id string) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*models.Ticket)(nil)).
			Where("order_id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}

		_, err = tx.NewDelete().
			Model((*models.Order)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
}

// ---------------- TICKETS / FLIGHTS ----------------

// GetFlightWithAirplane loads the flight and its airplane layout for seat
// bound checks.
func (d *DB) GetFlightWithAirplane(ctx context.Context, flightID string) (*models.Flight, error) {
	var flight models.Flight
	err := d.Bun.NewSelect().
		Model(&flight).
		Relation("Airplane").
		Where("flight.id = ?", flightID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

// SeatTaken reports whether a committed ticket already holds the given
// (flight, row, seat) triple.
func (d *DB) SeatTaken(ctx context.Context, flightID string, row, seat int) (bool, error) {
	return d.Bun.NewSelect().
		Model((*models.Ticket)(nil)).
		Where("flight_id = ?", flightID).
		Where("\"row\" = ?", row).
		Where("seat = ?", seat).
		Exists(ctx)
}

func (d *DB) CountTicketsForFlight(ctx context.Context, flightID string) (int, error) {
	return d.Bun.NewSelect().
		Model((*models.Ticket)(nil)).
		Where("flight_id = ?", flightID).
		Count(ctx)
}
