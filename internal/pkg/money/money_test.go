package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDollars(t *testing.T) {
	tests := []struct {
		name    string
		dollars float64
		want    Cents
	}{
		{"whole dollars", 80, 8000},
		{"cents preserved", 42.50, 4250},
		{"rounds half up", 19.995, 2000},
		{"rounds down below half", 19.994, 1999},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromDollars(tt.dollars))
		})
	}
}

func TestFromDecimal(t *testing.T) {
	d := decimal.RequireFromString("42.505")
	assert.Equal(t, Cents(4251), FromDecimal(d))
}

func TestDollarsRoundTrip(t *testing.T) {
	c := Cents(4250)
	assert.Equal(t, "42.50", c.String())
	assert.Equal(t, c, FromDecimal(c.Dollars()))
}

func TestMarshalJSON_EncodesAsString(t *testing.T) {
	// Large totals must survive consumers without 64-bit integers.
	c := Cents(9007199254740993)
	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `"9007199254740993"`, string(data))
}

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Cents
		ok    bool
	}{
		{"string form", `"8000"`, 8000, true},
		{"number form", `8000`, 8000, true},
		{"large value", `"9007199254740993"`, 9007199254740993, true},
		{"garbage", `"abc"`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cents
			err := json.Unmarshal([]byte(tt.input), &c)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}
}
