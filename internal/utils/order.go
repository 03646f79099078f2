package utils

import (
	"github.com/parasxparkash/pyBackTester/internal/execution/commission"
)

// CalculateMaxQuantity calculates the largest whole-share quantity whose
// cost, including commission, fits within the given balance.
func CalculateMaxQuantity(balance float64, price float64, fee commission.Fee) int64 {
	// Handle edge cases
	if price <= 0 || balance <= 0 {
		return 0
	}

	// Initial estimate ignoring fees, then walk down until the all-in
	// cost fits. Converges in very few steps for realistic fee models.
	quantity := int64(balance / price)

	for quantity > 0 {
		totalCost := float64(quantity)*price + fee.Calculate(quantity)
		if totalCost <= balance {
			break
		}

		quantity--
	}

	return quantity
}

// CalculateOrderQuantityByPercentage calculates the order quantity that
// commits the given percentage of the balance.
func CalculateOrderQuantityByPercentage(balance float64, price float64, fee commission.Fee, percentage float64) int64 {
	if percentage <= 0 {
		return 0
	}

	if percentage > 1 {
		percentage = 1
	}

	return CalculateMaxQuantity(balance*percentage, price, fee)
}
