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

// ---------------- COUNTRIES ----------------

func (d *DB) CreateCountry(ctx context.Context, country models.Country) error {
	_, err := d.Bun.NewInsert().Model(&country).Exec(ctx)
	return err
}

func (d *DB) GetCountryByID(ctx context.Context, id string) (*models.Country, error) {
	var country models.Country
	err := d.Bun.NewSelect().
		Model(&country).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &country, nil
}

func (d *DB) ListCountries(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	err := d.Bun.NewSelect().
		Model(&countries).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return countries, nil
}

// DeleteCountry removes a country with its cities. Airports pointing at
// those cities keep existing with the reference nulled, all inside one
// transaction.
func (d *DB) DeleteCountry(ctx context.Context, id string) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().
			Model((*models.Airport)(nil)).
			Set("closest_city_id = NULL").
			Where("closest_city_id IN (SELECT id FROM cities WHERE country_id = ?)", id).
			Exec(ctx)
		if err != nil {
			return err
		}

		_, err = tx.NewDelete().
			Model((*models.City)(nil)).
			Where("country_id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}

		_, err = tx.NewDelete().
			Model((*models.Country)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
}

// ---------------- CITIES ----------------

type CityFilter struct {
	Name    string
	Country string
}

func (d *DB) CreateCity(ctx context.Context, city models.City) error {
	_, err := d.Bun.NewInsert().Model(&city).Exec(ctx)
	return err
}

func (d *DB) GetCityByID(ctx context.Context, id string) (*models.City, error) {
	var city models.City
	err := d.Bun.NewSelect().
		Model(&city).
		Relation("Country").
		Where("city.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (d *DB) ListCities(ctx context.Context, filter CityFilter) ([]models.City, error) {
	q := d.Bun.NewSelect().
		Model((*models.City)(nil)).
		Relation("Country").
		Order("city.name ASC")
	if filter.Name != "" {
		q = q.Where("LOWER(city.name) LIKE LOWER(?)", "%"+filter.Name+"%")
	}
	if filter.Country != "" {
		q = q.Where("LOWER(country.name) LIKE LOWER(?)", "%"+filter.Country+"%")
	}

	var cities []models.City
	if err := q.Scan(ctx, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// DeleteCity nulls dependent airport references instead of cascading, so
// airport records survive their city.
func (d *DB) DeleteCity(ctx context.Context, id string) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().
			Model((*models.Airport)(nil)).
			Set("closest_city_id = NULL").
			Where("closest_city_id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}

		_, err = tx.NewDelete().
			Model((*models.City)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
}

// ---------------- AIRPORTS ----------------

type AirportFilter struct {
	Name string
	City string
}

func (d *DB) CreateAirport(ctx context.Context, airport models.Airport) error {
	_, err := d.Bun.NewInsert().Model(&airport).Exec(ctx)
	return err
}

func (d *DB) GetAirportByID(ctx context.Context, id string) (*models.Airport, error) {
	var airport models.Airport
	err := d.Bun.NewSelect().
		Model(&airport).
		Relation("ClosestCity").
		Relation("ClosestCity.Country").
		Where("airport.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &airport, nil
}

func (d *DB) ListAirports(ctx context.Context, filter AirportFilter) ([]models.Airport, error) {
	q := d.Bun.NewSelect().
		Model((*models.Airport)(nil)).
		Relation("ClosestCity").
		Order("airport.name ASC")
	if filter.Name != "" {
		q = q.Where("LOWER(airport.name) LIKE LOWER(?)", "%"+filter.Name+"%")
	}
	if filter.City != "" {
		q = q.Where("LOWER(closest_city.name) LIKE LOWER(?)", "%"+filter.City+"%")
	}

	var airports []models.Airport
	if err := q.Scan(ctx, &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

func (d *DB) DeleteAirport(ctx context.Context, id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Airport)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// ---------------- AIRPLANE TYPES ----------------

func (d *DB) CreateAirplaneType(ctx context.Context, airplaneType models.AirplaneType) error {
	_, err := d.Bun.NewInsert().Model(&airplaneType).Exec(ctx)
	return err
}

func (d *DB) GetAirplaneTypeByID(ctx context.Context, id string) (*models.AirplaneType, error) {
	var airplaneType models.AirplaneType
	err := d.Bun.NewSelect().
		Model(&airplaneType).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &airplaneType, nil
}

func (d *DB) ListAirplaneTypes(ctx context.Context) ([]models.AirplaneType, error) {
	var types []models.AirplaneType
	err := d.Bun.NewSelect().
		Model(&types).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return types, nil
}

// ---------------- AIRPLANES ----------------

type AirplaneFilter struct {
	Name string
	Type string
}

func (d *DB) CreateAirplane(ctx context.Context, airplane models.Airplane) error {
	_, err := d.Bun.NewInsert().Model(&airplane).Exec(ctx)
	return err
}

func (d *DB) GetAirplaneByID(ctx context.Context, id string) (*models.Airplane, error) {
	var airplane models.Airplane
	err := d.Bun.NewSelect().
		Model(&airplane).
		Relation("AirplaneType").
		Where("airplane.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &airplane, nil
}

func (d *DB) ListAirplanes(ctx context.Context, filter AirplaneFilter) ([]models.Airplane, error) {
	q := d.Bun.NewSelect().
		Model((*models.Airplane)(nil)).
		Relation("AirplaneType").
		Order("airplane.name ASC")
	if filter.Name != "" {
		q = q.Where("LOWER(airplane.name) LIKE LOWER(?)", "%"+filter.Name+"%")
	}
	if filter.Type != "" {
		q = q.Where("LOWER(airplane_type.name) LIKE LOWER(?)", "%"+filter.Type+"%")
	}

	var airplanes []models.Airplane
	if err := q.Scan(ctx, &airplanes); err != nil {
		return nil, err
	}
	return airplanes, nil
}

// ---------------- CREWS ----------------

func (d *DB) CreateCrew(ctx context.Context, crew models.Crew) error {
	_, err := d.Bun.NewInsert().Model(&crew).Exec(ctx)
	return err
}

func (d *DB) GetCrewByID(ctx context.Context, id string) (*models.Crew, error) {
	var crew models.Crew
	err := d.Bun.NewSelect().
		Model(&crew).
		Relation("Flights").
		Where("crew.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &crew, nil
}

func (d *DB) ListCrews(ctx context.Context, search string) ([]models.Crew, error) {
	q := d.Bun.NewSelect().
		Model((*models.Crew)(nil)).
		Relation("Flights").
		Order("last_name ASC", "first_name ASC")
	if search != "" {
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("LOWER(first_name) LIKE LOWER(?)", "%"+search+"%").
				WhereOr("LOWER(last_name) LIKE LOWER(?)", "%"+search+"%")
		})
	}

	var crews []models.Crew
	if err := q.Scan(ctx, &crews); err != nil {
		return nil, err
	}
	return crews, nil
}
