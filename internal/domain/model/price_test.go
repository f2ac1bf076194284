package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/common"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want Price
	}{
		{"9.99", 999},
		{"29", 2900},
		{"0.5", 50},
		{".75", 75},
		{"1.", 100},
		{" 12.30 ", 1230},
		{"+3", 300},
		{"1e2", 10000},
		{"9.99e0", 999},
		{"0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePrice_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "-1", "1.999", "1.2.3", ".", "12a", "NaN", "99999999999999999999", "1.999e0", "0.001E0", "1e-3"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePrice(in)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestPriceFromFloat(t *testing.T) {
	p, err := PriceFromFloat(9.99)
	require.NoError(t, err)
	assert.Equal(t, Price(999), p)

	for _, f := range []float64{math.NaN(), math.Inf(1), -0.01, 1e18} {
		_, err := PriceFromFloat(f)
		assert.ErrorIs(t, err, common.ErrValidation)
	}
}

func TestPrice_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Price Price `json:"price"`
	}{Price: 999})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":9.99}`, string(b))

	var fromNumber struct {
		Price *Price `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price":29.9}`), &fromNumber))
	require.NotNil(t, fromNumber.Price)
	assert.Equal(t, Price(2990), *fromNumber.Price)

	var fromString struct {
		Price *Price `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price":"15"}`), &fromString))
	assert.Equal(t, Price(1500), *fromString.Price)

	var missing struct {
		Price *Price `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price":null}`), &missing))
	assert.Nil(t, missing.Price)

	var bad struct {
		Price *Price `json:"price"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"price":-4}`), &bad))
}

func TestPrice_String(t *testing.T) {
	assert.Equal(t, "0.05", Price(5).String())
	assert.Equal(t, "120.00", Price(12000).String())
}
