// internal/pkg/money/money.go
package money

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Cents is a money amount in minor currency units (US cents).
//
// Gateway amounts are arbitrary-precision integers on the wire and can
// exceed the safe integer range of JSON consumers, so Cents always
// serializes as a decimal string and accepts both string and number
// forms when decoding.
type Cents int64

// FromDollars converts a major-unit dollar amount to cents,
// rounding half up on the cent boundary.
func FromDollars(dollars float64) Cents {
	d := decimal.NewFromFloat(dollars).Mul(decimal.NewFromInt(100)).Round(0)
	return Cents(d.IntPart())
}

// FromDecimal converts a decimal dollar amount to cents,
// rounding half up on the cent boundary.
func FromDecimal(dollars decimal.Decimal) Cents {
	return Cents(dollars.Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// Dollars returns the amount as a decimal dollar value.
func (c Cents) Dollars() decimal.Decimal {
	return decimal.NewFromInt(int64(c)).Div(decimal.NewFromInt(100))
}

// String formats the amount as a dollar string, e.g. "80.00".
func (c Cents) String() string {
	return c.Dollars().StringFixed(2)
}

// MarshalJSON encodes the amount as a decimal string of cents.
func (c Cents) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(c), 10))
}

// UnmarshalJSON accepts both string and number encodings.
func (c *Cents) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("invalid money amount %s: %w", s, err)
		}
		s = str
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	*c = Cents(v)
	return nil
}
