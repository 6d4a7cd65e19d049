package models

import (
	"github.com/uptrace/bun"
)

type AirplaneType struct {
	bun.BaseModel `bun:"table:airplane_types"`

	ID   string `bun:"id,pk" json:"id"`
	Name string `bun:"name,notnull,unique" json:"name"`
}

type AirplaneTypeRequest struct {
	Name string `json:"name"`
}

type Airplane struct {
	bun.BaseModel `bun:"table:airplanes"`

	ID             string `bun:"id,pk" json:"id"`
	Name           string `bun:"name,notnull" json:"name"`
	Rows           int    `bun:"rows,notnull" json:"rows"`
	SeatsInRow     int    `bun:"seats_in_row,notnull" json:"seats_in_row"`
	AirplaneTypeID string `bun:"airplane_type_id,notnull" json:"airplane_type_id"`

	AirplaneType *AirplaneType `bun:"rel:belongs-to,join:airplane_type_id=id" json:"airplane_type,omitempty"`
}

// Capacity is derived, never stored.
func (a *Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

type AirplaneRequest struct {
	Name           string `json:"name"`
	Rows           int    `json:"rows"`
	SeatsInRow     int    `json:"seats_in_row"`
	AirplaneTypeID string `json:"airplane_type_id"`
}

type AirplaneListView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	AirplaneType string `json:"airplane_type"`
	Capacity     int    `json:"capacity"`
}

func (a *Airplane) ToListView() AirplaneListView {
	view := AirplaneListView{
		ID:         a.ID,
		Name:       a.Name,
		Rows:       a.Rows,
		SeatsInRow: a.SeatsInRow,
		Capacity:   a.Capacity(),
	}
	if a.AirplaneType != nil {
		view.AirplaneType = a.AirplaneType.Name
	}
	return view
}
