package models

import (
	"github.com/uptrace/bun"
)

type Airport struct {
	bun.BaseModel `bun:"table:airports"`

	ID            string  `bun:"id,pk" json:"id"`
	Name          string  `bun:"name,notnull,unique" json:"name"`
	ClosestCityID *string `bun:"closest_city_id,nullzero" json:"closest_city_id,omitempty"`

	ClosestCity *City `bun:"rel:belongs-to,join:closest_city_id=id" json:"closest_city,omitempty"`
}

type AirportRequest struct {
	Name          string  `json:"name"`
	ClosestCityID *string `json:"closest_city_id"`
}

type AirportListView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ClosestCity string `json:"closest_city,omitempty"`
}

func (a *Airport) ToListView() AirportListView {
	view := AirportListView{ID: a.ID, Name: a.Name}
	if a.ClosestCity != nil {
		view.ClosestCity = a.ClosestCity.Name
	}
	return view
}
