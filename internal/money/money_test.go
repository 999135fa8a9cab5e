package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		in   string
		want Money
	}{
		{"85", 8500},
		{"85.5", 8550},
		{"85.00", 8500},
		{" 130.00 ", 13000},
		{"0.01", 1},
		{"10.000", 1000},
		{"-3.10", -310},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "abc", "1.005", "1e400", "12,50"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "310.00", FromCents(31000).String())
	assert.Equal(t, "0.05", FromCents(5).String())
	assert.Equal(t, "0.00", Zero.String())
	assert.Equal(t, "-1.50", FromCents(-150).String())
	assert.Equal(t, "9999999999.99", MaxStored.String())
}

func TestArithmetic_NoDrift(t *testing.T) {
	price := MustParse("0.10")
	var total Money
	for range 1000 {
		total = total.Add(price)
	}
	assert.Equal(t, "100.00", total.String())
	assert.Equal(t, MustParse("170.00"), MustParse("85.00").Mul(2))
	assert.Equal(t, MustParse("300.00"), Sum(MustParse("170.00"), MustParse("130.00")))
}

func TestJSON(t *testing.T) {
	type payload struct {
		Total Money `json:"total"`
	}
	raw, err := json.Marshal(payload{Total: MustParse("310")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":"310.00"}`, string(raw))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"total":"12.30"}`), &p))
	assert.Equal(t, FromCents(1230), p.Total)

	require.NoError(t, json.Unmarshal([]byte(`{"total":7.5}`), &p))
	assert.Equal(t, FromCents(750), p.Total)
}

func TestValue(t *testing.T) {
	v, err := MustParse("85").Value()
	require.NoError(t, err)
	assert.Equal(t, "85.00", v)
}
