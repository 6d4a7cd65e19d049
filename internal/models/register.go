package models

import "github.com/uptrace/bun"

// RegisterModels registers join tables with bun. Must run before any
// query that traverses the flight↔crew m2m relation.
func RegisterModels(db *bun.DB) {
	db.RegisterModel((*FlightCrew)(nil))
}
