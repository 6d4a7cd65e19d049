package models

import (
	"github.com/uptrace/bun"
)

type Route struct {
	bun.BaseModel `bun:"table:routes"`

	ID            string `bun:"id,pk" json:"id"`
	SourceID      string `bun:"source_id,notnull" json:"source_id"`
	DestinationID string `bun:"destination_id,notnull" json:"destination_id"`
	Distance      int    `bun:"distance,notnull" json:"distance"`

	Source      *Airport `bun:"rel:belongs-to,join:source_id=id" json:"source,omitempty"`
	Destination *Airport `bun:"rel:belongs-to,join:destination_id=id" json:"destination,omitempty"`
}

type RouteRequest struct {
	SourceID      string `json:"source_id"`
	DestinationID string `json:"destination_id"`
	Distance      int    `json:"distance"`
}

type RouteListView struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
}

func (r *Route) ToListView() RouteListView {
	view := RouteListView{ID: r.ID, Distance: r.Distance}
	if r.Source != nil {
		view.Source = r.Source.Name
	}
	if r.Destination != nil {
		view.Destination = r.Destination.Name
	}
	return view
}
