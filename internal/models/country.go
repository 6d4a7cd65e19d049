package models

import (
	"github.com/uptrace/bun"
)

type Country struct {
	bun.BaseModel `bun:"table:countries"`

	ID   string `bun:"id,pk" json:"id"`
	Name string `bun:"name,notnull,unique" json:"name"`
}

type CountryRequest struct {
	Name string `json:"name"`
}

type City struct {
	bun.BaseModel `bun:"table:cities"`

	ID        string `bun:"id,pk" json:"id"`
	Name      string `bun:"name,notnull" json:"name"`
	CountryID string `bun:"country_id,notnull" json:"country_id"`

	Country *Country `bun:"rel:belongs-to,join:country_id=id" json:"country,omitempty"`
}

type CityRequest struct {
	Name      string `json:"name"`
	CountryID string `json:"country_id"`
}

// CityListView resolves the country reference to its name for list responses.
type CityListView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

func (c *City) ToListView() CityListView {
	view := CityListView{ID: c.ID, Name: c.Name}
	if c.Country != nil {
		view.Country = c.Country.Name
	}
	return view
}
