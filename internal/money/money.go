// Package money represents soles as integer céntimos. Prices come out of
// Postgres as NUMERIC text and are parsed exactly with shopspring/decimal,
// so sums and products never drift.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const scale = 2

var (
	ErrInvalidAmount = errors.New("invalid money amount")

	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// Money is an amount in céntimos (1/100 sol).
type Money int64

const Zero Money = 0

// MaxStored is the largest amount a NUMERIC(12,2) column accepts.
const MaxStored Money = 999_999_999_999

func FromCents(cents int64) Money { return Money(cents) }

// Parse accepts "85", "85.5", "85.50" or "85.500"; anything finer than a
// céntimo is rejected instead of rounded.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d)
}

func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func FromDecimal(d decimal.Decimal) (Money, error) {
	if !d.Equal(d.Truncate(scale)) {
		return 0, fmt.Errorf("%w: %s has more than %d decimals", ErrInvalidAmount, d.String(), scale)
	}
	cents := d.Shift(scale)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, fmt.Errorf("%w: %s out of range", ErrInvalidAmount, d.String())
	}
	return Money(cents.IntPart()), nil
}

func (m Money) Cents() int64 { return int64(m) }

func (m Money) Add(o Money) Money { return m + o }

func (m Money) Mul(qty int) Money { return m * Money(qty) }

func (m Money) IsPositive() bool { return m > 0 }

func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -scale)
}

// String renders the amount with exactly two decimals, e.g. "310.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(scale)
}

// Sum adds amounts in order; used for subtotals.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total += a
	}
	return total
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value lets pgx bind Money into NUMERIC columns as exact text.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}
