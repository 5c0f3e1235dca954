package models

import "github.com/Lixing-Zhang/just-java/internal/mail"

// OrderRequest represents a submitted order form
type OrderRequest struct {
	Name            string `json:"name" validate:"required,max=100,singleline"`
	Quantity        int    `json:"quantity" validate:"gte=1,lte=100"`
	HasWhippedCream bool   `json:"whippedCream"`
	HasChocolate    bool   `json:"chocolate"`
	// Email optionally addresses the order mail
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

// Order represents a priced order, created per submission and never stored
type Order struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Quantity        int    `json:"quantity"`
	HasWhippedCream bool   `json:"whippedCream"`
	HasChocolate    bool   `json:"chocolate"`
	Price           int    `json:"price"`
}

// OrderConfirmation is returned after a submission. Either Mail or Notice is set.
type OrderConfirmation struct {
	Order   Order         `json:"order"`
	Summary string        `json:"summary"`
	Subject string        `json:"subject"`
	Mail    *mail.Receipt `json:"mail,omitempty"`
	Notice  string        `json:"notice,omitempty"`
}
