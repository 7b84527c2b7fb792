package utils

import (
	"fmt"
	"math"
)

// RoundMoney snaps a computed amount to whole cents.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
