package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Subscriber struct {
	bun.BaseModel `bun:"table:newsletter"`

	Email     string    `bun:"email,pk" json:"email"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type ContactMessage struct {
	bun.BaseModel `bun:"table:contact_messages"`

	ID        string    `bun:"id,pk" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Email     string    `bun:"email,notnull" json:"email"`
	Subject   string    `bun:"subject" json:"subject"`
	Message   string    `bun:"message,notnull" json:"message"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type Payment struct {
	bun.BaseModel `bun:"table:payments"`

	ID         string    `bun:"id,pk" json:"id"`
	BookingRef string    `bun:"booking_ref,notnull" json:"booking_ref"`
	Amount     float64   `bun:"amount,notnull" json:"amount"`
	Currency   string    `bun:"currency,notnull" json:"currency"`
	Status     string    `bun:"status,notnull" json:"status"`
	IntentID   string    `bun:"intent_id,nullzero" json:"intent_id,omitempty"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}
