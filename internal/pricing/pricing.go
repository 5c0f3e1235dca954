// Package pricing computes the total price of a coffee order.
package pricing

// Per-cup prices in whole currency units.
const (
	BasePrice         = 5
	WhippedCreamPrice = 1
	ChocolatePrice    = 2
)

// UnitPrice returns the price of a single cup with the given toppings.
func UnitPrice(hasWhippedCream, hasChocolate bool) int {
	pricePerCup := BasePrice

	if hasWhippedCream {
		pricePerCup += WhippedCreamPrice
	}
	if hasChocolate {
		pricePerCup += ChocolatePrice
	}

	return pricePerCup
}

// CalculatePrice returns the total price for quantity cups.
// Callers are expected to have bounded quantity already.
func CalculatePrice(quantity int, hasWhippedCream, hasChocolate bool) int {
	return quantity * UnitPrice(hasWhippedCream, hasChocolate)
}
