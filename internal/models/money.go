package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point monetary amount. It serializes as a decimal string
// with exactly two fractional digits ("20.00"), which is what every view in
// the API exposes for subtotals, taxes and line prices.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{d}
}

func MoneyFromFloat(f float64) Money {
	return Money{decimal.NewFromFloat(f)}
}

func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}

	return Money{d}, nil
}

func ZeroMoney() Money {
	return Money{decimal.Zero}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.StringFixed(2))), nil
}

func (m Money) AddMoney(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

func (m Money) MulInt(n int) Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(int64(n)))}
}

func (m Money) IsNegative() bool {
	return m.Decimal.IsNegative()
}
