package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Crew struct {
	bun.BaseModel `bun:"table:crews"`

	ID        string `bun:"id,pk" json:"id"`
	FirstName string `bun:"first_name,notnull" json:"first_name"`
	LastName  string `bun:"last_name,notnull" json:"last_name"`

	Flights []Flight `bun:"m2m:flight_crews,join:Crew=Flight" json:"flights,omitempty"`
}

type CrewRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CrewListView flattens the assigned flights to their identifiers.
type CrewListView struct {
	ID        string   `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Flights   []string `json:"flights"`
}

func (c *Crew) ToListView() CrewListView {
	view := CrewListView{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Flights:   make([]string, len(c.Flights)),
	}
	for i := range c.Flights {
		view.Flights[i] = c.Flights[i].ID
	}
	return view
}

type Flight struct {
	bun.BaseModel `bun:"table:flights"`

	ID            string    `bun:"id,pk" json:"id"`
	RouteID       string    `bun:"route_id,notnull" json:"route_id"`
	AirplaneID    string    `bun:"airplane_id,notnull" json:"airplane_id"`
	DepartureTime time.Time `bun:"departure_time,notnull" json:"departure_time"`
	ArrivalTime   time.Time `bun:"arrival_time,notnull" json:"arrival_time"`

	Route    *Route    `bun:"rel:belongs-to,join:route_id=id" json:"route,omitempty"`
	Airplane *Airplane `bun:"rel:belongs-to,join:airplane_id=id" json:"airplane,omitempty"`
	Crew     []Crew    `bun:"m2m:flight_crews,join:Flight=Crew" json:"crew,omitempty"`

	// FreeSeats is a query-time projection, never persisted.
	FreeSeats int `bun:"free_seats,scanonly" json:"free_seats"`
}

// FlightCrew is the m2m join table between flights and crew members.
type FlightCrew struct {
	bun.BaseModel `bun:"table:flight_crews"`

	FlightID string `bun:"flight_id,pk"`
	CrewID   string `bun:"crew_id,pk"`

	Flight *Flight `bun:"rel:belongs-to,join:flight_id=id"`
	Crew   *Crew   `bun:"rel:belongs-to,join:crew_id=id"`
}

type FlightRequest struct {
	RouteID       string    `json:"route_id"`
	AirplaneID    string    `json:"airplane_id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CrewIDs       []string  `json:"crew_ids"`
}

type FlightCrewRequest struct {
	CrewIDs []string `json:"crew_ids"`
}

type FlightListView struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination"`
	Airplane      string    `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	FreeSeats     int       `json:"free_seats"`
}

func (f *Flight) ToListView() FlightListView {
	view := FlightListView{
		ID:            f.ID,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		FreeSeats:     f.FreeSeats,
	}
	if f.Route != nil {
		if f.Route.Source != nil {
			view.Source = f.Route.Source.Name
		}
		if f.Route.Destination != nil {
			view.Destination = f.Route.Destination.Name
		}
	}
	if f.Airplane != nil {
		view.Airplane = f.Airplane.Name
	}
	return view
}
