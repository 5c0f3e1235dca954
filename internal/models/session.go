package models

import "time"

// Session is the state of one open order form
type Session struct {
	ID        string    `json:"id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionOrderRequest is an order submitted against a session; quantity comes from the session
type SessionOrderRequest struct {
	Name            string `json:"name"`
	HasWhippedCream bool   `json:"whippedCream"`
	HasChocolate    bool   `json:"chocolate"`
	Email           string `json:"email,omitempty"`
}
