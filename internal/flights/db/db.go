package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"

	"airport-booking/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// freeSeatsExpr computes the derived free-seats figure at query time.
// Never cached: it must reflect every committed ticket at the instant of
// the read.
const freeSeatsExpr = `(airplane.rows * airplane.seats_in_row) - ` +
	`(SELECT COUNT(*) FROM tickets AS t WHERE t.flight_id = flight.id)`

// ---------------- ROUTES ----------------

type RouteFilter struct {
	Source      string
	Destination string
	OrderBy     string
}

func (d *DB) CreateRoute(ctx context.Context, route models.Route) error {
	_, err := d.Bun.NewInsert().Model(&route).Exec(ctx)
	return err
}

func (d *DB) GetRouteByID(ctx context.Context, id string) (*models.Route, error) {
	var route models.Route
	err := d.Bun.NewSelect().
		Model(&route).
		Relation("Source").
		Relation("Destination").
		Where("route.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (d *DB) ListRoutes(ctx context.Context, filter RouteFilter) ([]models.Route, error) {
	q := d.Bun.NewSelect().
		Model((*models.Route)(nil)).
		Relation("Source").
		Relation("Destination")

	if filter.Source != "" {
		q = q.Where("LOWER(source.name) LIKE LOWER(?)", "%"+filter.Source+"%")
	}
	if filter.Destination != "" {
		q = q.Where("LOWER(destination.name) LIKE LOWER(?)", "%"+filter.Destination+"%")
	}

	switch filter.OrderBy {
	case "source":
		q = q.OrderExpr("source.name ASC")
	case "destination":
		q = q.OrderExpr("destination.name ASC")
	case "distance":
		q = q.Order("distance ASC")
	default:
		q = q.OrderExpr("source.name ASC")
	}

	var routes []models.Route
	if err := q.Scan(ctx, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

func (d *DB) DeleteRoute(ctx context.Context, id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Route)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// ---------------- FLIGHTS ----------------

type FlightFilter struct {
	Source      string
	Destination string
	// DepartureDate and ArrivalDate match flights within the given
	// calendar day.
	DepartureDate time.Time
	ArrivalDate   time.Time
	OrderBy       string
}

// Name lookups for ordering flights by endpoint airport. Subqueries keep
// the generated SQL independent of relation join aliases.
const (
	sourceNameExpr = `(SELECT a.name FROM routes AS r JOIN airports AS a ON a.id = r.source_id ` +
		`WHERE r.id = flight.route_id)`
	destinationNameExpr = `(SELECT a.name FROM routes AS r JOIN airports AS a ON a.id = r.destination_id ` +
		`WHERE r.id = flight.route_id)`
)

// CreateFlight inserts the flight and its crew assignments in one
// transaction.
func (d *DB) CreateFlight(ctx context.Context, flight models.Flight, crewIDs []string) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&flight).Exec(ctx); err != nil {
			return err
		}
		return insertFlightCrew(ctx, tx, flight.ID, crewIDs)
	})
}

func (d *DB) GetFlightByID(ctx context.Context, id string) (*models.Flight, error) {
	var flight models.Flight
	err := d.Bun.NewSelect().
		Model(&flight).
		ColumnExpr("flight.*").
		ColumnExpr(freeSeatsExpr+" AS free_seats").
		Relation("Route").
		Relation("Route.Source").
		Relation("Route.Destination").
		Relation("Airplane").
		Relation("Airplane.AirplaneType").
		Relation("Crew").
		Where("flight.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (d *DB) ListFlights(ctx context.Context, filter FlightFilter) ([]models.Flight, error) {
	q := d.Bun.NewSelect().
		Model((*models.Flight)(nil)).
		ColumnExpr("flight.*").
		ColumnExpr(freeSeatsExpr+" AS free_seats").
		Relation("Route").
		Relation("Route.Source").
		Relation("Route.Destination").
		Relation("Airplane")

	if filter.Source != "" {
		q = q.Where(
			`EXISTS (SELECT 1 FROM routes AS r JOIN airports AS a ON a.id = r.source_id `+
				`WHERE r.id = flight.route_id AND LOWER(a.name) LIKE LOWER(?))`,
			"%"+filter.Source+"%")
	}
	if filter.Destination != "" {
		q = q.Where(
			`EXISTS (SELECT 1 FROM routes AS r JOIN airports AS a ON a.id = r.destination_id `+
				`WHERE r.id = flight.route_id AND LOWER(a.name) LIKE LOWER(?))`,
			"%"+filter.Destination+"%")
	}
	if !filter.DepartureDate.IsZero() {
		start, end := dayBounds(filter.DepartureDate)
		q = q.Where("flight.departure_time >= ? AND flight.departure_time < ?", start, end)
	}
	if !filter.ArrivalDate.IsZero() {
		start, end := dayBounds(filter.ArrivalDate)
		q = q.Where("flight.arrival_time >= ? AND flight.arrival_time < ?", start, end)
	}

	switch filter.OrderBy {
	case "arrival_time":
		q = q.Order("arrival_time ASC")
	case "source":
		q = q.OrderExpr(sourceNameExpr + " ASC")
	case "destination":
		q = q.OrderExpr(destinationNameExpr + " ASC")
	default:
		q = q.Order("departure_time ASC")
	}

	var flights []models.Flight
	if err := q.Scan(ctx, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// SetFlightCrew replaces a flight's crew assignment. The old set is
// dropped and the new one inserted in the same transaction.
func (d *DB) SetFlightCrew(ctx context.Context, flightID string, crewIDs []string) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*models.FlightCrew)(nil)).
			Where("flight_id = ?", flightID).
			Exec(ctx)
		if err != nil {
			return err
		}
		return insertFlightCrew(ctx, tx, flightID, crewIDs)
	})
}

func (d *DB) DeleteFlight(ctx context.Context, id string) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*models.FlightCrew)(nil)).
			Where("flight_id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}

		_, err = tx.NewDelete().
			Model((*models.Flight)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

func insertFlightCrew(ctx context.Context, tx bun.Tx, flightID string, crewIDs []string) error {
	if len(crewIDs) == 0 {
		return nil
	}
	assignments := make([]models.FlightCrew, len(crewIDs))
	for i, crewID := range crewIDs {
		assignments[i] = models.FlightCrew{FlightID: flightID, CrewID: crewID}
	}
	_, err := tx.NewInsert().Model(&assignments).Exec(ctx)
	return err
}
