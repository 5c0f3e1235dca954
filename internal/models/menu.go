package models

// Topping is an optional per-cup addition
type Topping struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Menu lists what can be ordered and the quantity bounds
type Menu struct {
	Currency    string    `json:"currency"`
	BasePrice   int       `json:"basePrice"`
	Toppings    []Topping `json:"toppings"`
	MinQuantity int       `json:"minQuantity"`
	MaxQuantity int       `json:"maxQuantity"`
}

// PriceQuote is the price of a prospective order
type PriceQuote struct {
	Quantity        int    `json:"quantity"`
	HasWhippedCream bool   `json:"whippedCream"`
	HasChocolate    bool   `json:"chocolate"`
	UnitPrice       int    `json:"unitPrice"`
	Price           int    `json:"price"`
	Formatted       string `json:"formatted"`
}
