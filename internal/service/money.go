package service

import "github.com/shopspring/decimal"

// Money columns are decimal(12,2): at most two decimals, magnitude below 10^10.
var maxMoney = decimal.New(1, 10)

// checkMoney rejects amounts the money columns would round or overflow.
func checkMoney(amount decimal.Decimal, field string) error {
	if !amount.Equal(amount.Round(2)) {
		return invalidInput(field + " admite como máximo dos decimales")
	}
	if amount.Abs().GreaterThanOrEqual(maxMoney) {
		return invalidInput(field + " excede el monto máximo permitido")
	}
	return nil
}
