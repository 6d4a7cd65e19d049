package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"airport-booking/internal/apperr"
	"airport-booking/internal/catalog/db"
	"airport-booking/internal/models"
)

type DBLayer interface {
	CreateCountry(ctx context.Context, country models.Country) error
	GetCountryByID(ctx context.Context, id string) (*models.Country, error)
	ListCountries(ctx context.Context) ([]models.Country, error)
	DeleteCountry(ctx context.Context, id string) error

	CreateCity(ctx context.Context, city models.City) error
	GetCityByID(ctx context.Context, id string) (*models.City, error)
	ListCities(ctx context.Context, filter db.CityFilter) ([]models.City, error)
	DeleteCity(ctx context.Context, id string) error

	CreateAirport(ctx context.Context, airport models.Airport) error
	GetAirportByID(ctx context.Context, id string) (*models.Airport, error)
	ListAirports(ctx context.Context, filter db.AirportFilter) ([]models.Airport, error)
	DeleteAirport(ctx context.Context, id string) error

	CreateAirplaneType(ctx context.Context, airplaneType models.AirplaneType) error
	GetAirplaneTypeByID(ctx context.Context, id string) (*models.AirplaneType, error)
	ListAirplaneTypes(ctx context.Context) ([]models.AirplaneType, error)

	CreateAirplane(ctx context.Context, airplane models.Airplane) error
	GetAirplaneByID(ctx context.Context, id string) (*models.Airplane, error)
	ListAirplanes(ctx context.Context, filter db.AirplaneFilter) ([]models.Airplane, error)

	CreateCrew(ctx context.Context, crew models.Crew) error
	GetCrewByID(ctx context.Context, id string) (*models.Crew, error)
	ListCrews(ctx context.Context, search string) ([]models.Crew, error)
}

type Service struct {
	DB DBLayer
}

func NewService(db DBLayer) *Service {
	return &Service{DB: db}
}

// ---------------- COUNTRIES ----------------

func (s *Service) CreateCountry(ctx context.Context, req models.CountryRequest) (*models.Country, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.NewValidation("name", "name must not be empty")
	}

	country := models.Country{ID: uuid.NewString(), Name: req.Name}
	if err := s.DB.CreateCountry(ctx, country); err != nil {
		return nil, apperr.FromDB(err, "country")
	}
	return &country, nil
}

func (s *Service) ListCountries(ctx context.Context) ([]models.Country, error) {
	return s.DB.ListCountries(ctx)
}

func (s *Service) GetCountry(ctx context.Context, id string) (*models.Country, error) {
	country, err := s.DB.GetCountryByID(ctx, id)
	if err != nil {
		return nil, apperr.NewNotFound("country", id)
	}
	return country, nil
}

func (s *Service) DeleteCountry(ctx context.Context, id string) error {
	if _, err := s.DB.GetCountryByID(ctx, id); err != nil {
		return apperr.NewNotFound("country", id)
	}
	if err := s.DB.DeleteCountry(ctx, id); err != nil {
		return fmt.Errorf("failed to delete country %s: %w", id, err)
	}
	return nil
}

// ---------------- CITIES ----------------

func (s *Service) CreateCity(ctx context.Context, req models.CityRequest) (*models.City, error) {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name must not be empty"
	}
	if req.CountryID == "" {
		fields["country_id"] = "country reference is required"
	}
	if len(fields) > 0 {
		return nil, &apperr.ValidationError{Fields: fields}
	}

	if _, err := s.DB.GetCountryByID(ctx, req.CountryID); err != nil {
		return nil, apperr.NewNotFound("country", req.CountryID)
	}

	city := models.City{ID: uuid.NewString(), Name: req.Name, CountryID: req.CountryID}
	if err := s.DB.CreateCity(ctx, city); err != nil {
		return nil, apperr.FromDB(err, "city")
	}
	return &city, nil
}

func (s *Service) ListCities(ctx context.Context, filter db.CityFilter) ([]models.City, error) {
	return s.DB.ListCities(ctx, filter)
}

func (s *Service) GetCity(ctx context.Context, id string) (*models.City, error) {
	city, err := s.DB.GetCityByID(ctx, id)
	if err != nil {
		return nil, apperr.NewNotFound("city", id)
	}
	return city, nil
}

func (s *Service) DeleteCity(ctx context.Context, id string) error {
	if _, err := s.DB.GetCityByID(ctx, id); err != nil {
		return apperr.NewNotFound("city", id)
	}
	if err := s.DB.DeleteCity(ctx, id); err != nil {
		return fmt.Errorf("failed to delete city %s: %w", id, err)
	}
	return nil
}

// ---------------- AIRPORTS ----------------

func (s *Service) CreateAirport(ctx context.Context, req models.AirportRequest) (*models.Airport, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.NewValidation("name", "name must not be empty")
	}

	if req.ClosestCityID != nil {
		if _, err := s.DB.GetCityByID(ctx, *req.ClosestCityID); err != nil {
			return nil, apperr.NewNotFound("city", *req.ClosestCityID)
		}
	}

	airport := models.Airport{
		ID:            uuid.NewString(),
		Name:          req.Name,
		ClosestCityID: req.ClosestCityID,
	}
	if err := s.DB.CreateAirport(ctx, airport); err != nil {
		return nil, apperr.FromDB(err, "airport")
	}
	return &airport, nil
}

func (s *Service) ListAirports(ctx context.Context, filter db.AirportFilter) ([]models.Airport, error) {
	return s.DB.ListAirports(ctx, filter)
}

func (s *Service) GetAirport(ctx context.Context, id string) (*models.Airport, error) {
	airport, err := s.DB.GetAirportByID(ctx, id)
	if err != nil {
		return nil, apperr.NewNotFound("airport", id)
	}
	return airport, nil
}

func (s *Service) DeleteAirport(ctx context.Context, id string) error {
	if _, err := s.DB.GetAirportByID(ctx, id); err != nil {
		return apperr.NewNotFound("airport", id)
	}
	if err := s.DB.DeleteAirport(ctx, id); err != nil {
		return fmt.Errorf("failed to delete airport %s: %w", id, err)
	}
	return nil
}

// ---------------- AIRPLANE TYPES ----------------

func (s *Service) CreateAirplaneType(ctx context.Context, req models.AirplaneTypeRequest) (*models.AirplaneType, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.NewValidation("name", "name must not be empty")
	}

	airplaneType := models.AirplaneType{ID: uuid.NewString(), Name: req.Name}
	if err := s.DB.CreateAirplaneType(ctx, airplaneType); err != nil {
		return nil, apperr.FromDB(err, "airplane type")
	}
	return &airplaneType, nil
}

func (s *Service) ListAirplaneTypes(ctx context.Context) ([]models.AirplaneType, error) {
	return s.DB.ListAirplaneTypes(ctx)
}

func (s *Service) GetAirplaneType(ctx context.Context, id string) (*models.AirplaneType, error) {
	airplaneType, err := s.DB.GetAirplaneTypeByID(ctx, id)
	if err != nil {
		return nil, apperr.NewNotFound("airplane type", id)
	}
	return airplaneType, nil
}

// ---------------- AIRPLANES ----------------

func (s *Service) CreateAirplane(ctx context.Context, req models.AirplaneRequest) (*models.Airplane, error) {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "name must not be empty"
	}
	if req.Rows <= 0 {
		fields["rows"] = "rows must be a positive integer"
	}
	if req.SeatsInRow <= 0 {
		fields["seats_in_row"] = "seats_in_row must be a positive integer"
	}
	if req.AirplaneTypeID == "" {
		fields["airplane_type_id"] = "airplane type reference is required"
	}
	if len(fields) > 0 {
		return nil, &apperr.ValidationError{Fields: fields}
	}

	if _, err := s.DB.GetAirplaneTypeByID(ctx, req.AirplaneTypeID); err != nil {
		return nil, apperr.NewNotFound("airplane type", req.AirplaneTypeID)
	}

	airplane := models.Airplane{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Rows:           req.Rows,
		SeatsInRow:     req.SeatsInRow,
		AirplaneTypeID: req.AirplaneTypeID,
	}
	if err := s.DB.CreateAirplane(ctx, airplane); err != nil {
		return nil, apperr.FromDB(err, "airplane")
	}
	return &airplane, nil
}

func (s *Service) ListAirplanes(ctx context.Context, filter db.AirplaneFilter) ([]models.Airplane, error) {
	return s.DB.ListAirplanes(ctx, filter)
}

func (s *Service) GetAirplane(ctx context.Context, id string) (*models.Airplane, error) {
	airplane, err := s.DB.GetAirplaneByID(ctx, id)
	if err != nil {
		return nil, apperr.NewNotFound("airplane", id)
	}
	return airplane, nil
}

// ---------------- CREWS ----------------

func (s *Service) CreateCrew(ctx context.Context, req models.CrewRequest) (*models.Crew, error) {
	fields := map[string]string{}
	if strings.TrimSpace(req.FirstName) == "" {
		fields["first_name"] = "first_name must not be empty"
	}
	if strings.TrimSpace(req.LastName) == "" {
		fields["last_name"] = "last_name must not be empty"
	}
	if len(fields) > 0 {
		return nil, &apperr.ValidationError{Fields: fields}
	}

	crew := models.Crew{ID: uuid.NewString(), FirstName: req.FirstName, LastName: req.LastName}
	if err := s.DB.CreateCrew(ctx, crew); err != nil {
		return nil, apperr.FromDB(err, "crew")
	}
	return &crew, nil
}

func (s *Service) ListCrews(ctx context.Context, search string) ([]models.Crew, error) {
	return s.DB.ListCrews(ctx, search)
}

func (s *Service) GetCrew(ctx context.Context, id string) (*models.Crew, error) {
	crew, err := s.DB.GetCrewByID(ctx, id)
	if err != nil {
		return nil, apperr.NewNotFound("crew", id)
	}
	return crew, nil
}
