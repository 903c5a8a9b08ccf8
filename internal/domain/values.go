package domain

// Money is an amount in integer cents. Value semantics; arithmetic returns
// new values.
type Money struct {
	Cents int64 `json:"cents"`
}

func NewMoney(cents int64) Money {
	return Money{Cents: cents}
}

func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}

// Mul scales the amount by a whole multiplier (days, hours, kilometers).
func (m Money) Mul(n int64) Money {
	return Money{Cents: m.Cents * n}
}

func (m Money) IsZero() bool {
	return m.Cents == 0
}

// Kilometers is a non-negative travelled distance.
type Kilometers struct {
	Value int64 `json:"value"`
}

func NewKilometers(v int64) Kilometers {
	return Kilometers{Value: v}
}

func (k Kilometers) Add(other Kilometers) Kilometers {
	return Kilometers{Value: k.Value + other.Value}
}

// FuelLevel is a tank fraction between 0.0 and 1.0.
type FuelLevel struct {
	Value float64 `json:"value"`
}

func NewFuelLevel(v float64) FuelLevel {
	return FuelLevel{Value: v}
}

// ChargeItem is one priced line on an invoice.
type ChargeItem struct {
	Description string `json:"description"`
	Amount      Money  `json:"amount"`
}
