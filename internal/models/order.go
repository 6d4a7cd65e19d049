package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID        string    `bun:"id,pk" json:"id"`
	UserID    string    `bun:"user_id,notnull" json:"user_id"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`

	Tickets []Ticket `bun:"rel:has-many,join:id=order_id" json:"tickets,omitempty"`
}

type Ticket struct {
	bun.BaseModel `bun:"table:tickets"`

	ID       string    `bun:"id,pk" json:"id"`
	Row      int       `bun:"row,notnull" json:"row"`
	Seat     int       `bun:"seat,notnull" json:"seat"`
	FlightID string    `bun:"flight_id,notnull" json:"flight_id"`
	OrderID  string    `bun:"order_id,notnull" json:"order_id"`
	QRCode   []byte    `bun:"qr_code" json:"qr_code,omitempty"`
	IssuedAt time.Time `bun:"issued_at,notnull" json:"issued_at"`

	Flight *Flight `bun:"rel:belongs-to,join:flight_id=id" json:"flight,omitempty"`
}

// TicketSpec is one requested seat inside an order submission.
type TicketSpec struct {
	Row      int    `json:"row"`
	Seat     int    `json:"seat"`
	FlightID string `json:"flight"`
}

type OrderRequest struct {
	Tickets []TicketSpec `json:"tickets"`
}

type TicketView struct {
	ID       string `json:"id"`
	Row      int    `json:"row"`
	Seat     int    `json:"seat"`
	FlightID string `json:"flight"`
}

type OrderResponse struct {
	OrderID   string       `json:"order_id"`
	UserID    string       `json:"user_id"`
	CreatedAt time.Time    `json:"created_at"`
	Tickets   []TicketView `json:"tickets"`
}
