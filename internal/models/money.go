package models

import "github.com/shopspring/decimal"

// MoneyPlaces is the fixed-point precision of every stored amount.
const MoneyPlaces = 2

// MaxAmount is the exclusive upper bound of a decimal(10,2) column.
var MaxAmount = decimal.New(1, 8)

func init() {
	// Amounts are JSON numbers on the wire (45.5), not strings ("45.5").
	decimal.MarshalJSONWithoutQuotes = true
}

// IsMoney reports whether d is representable with MoneyPlaces decimal places.
func IsMoney(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyPlaces))
}
