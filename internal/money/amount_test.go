package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerengine/internal/money"
)

func TestFromScaledPreservesValue(t *testing.T) {
	assert.Equal(t, int64(123456), money.FromScaled(123456).Scaled())
}

func TestFromFloatConvertsCorrectly(t *testing.T) {
	assert.Equal(t, money.FromScaled(1_000_000), money.FromFloat(100.0))
	assert.Equal(t, money.FromScaled(15_000), money.FromFloat(1.5))
	assert.Equal(t, money.FromScaled(1), money.FromFloat(0.0001))
}

func TestFromFloatHandlesNegative(t *testing.T) {
	assert.Equal(t, money.FromScaled(-502_500), money.FromFloat(-50.25))
}

func TestFromStringRounding(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1.23456", 12346},
		{"1.23454", 12345},
		{"100.0", 1_000_000},
		{"0.0001", 1},
		{"-50.25", -502_500},
		{"100", 1_000_000},
		{"0", 0},
	}
	for _, tt := range tests {
		got, err := money.FromString(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got.Scaled(), tt.in)
	}
}

func TestFromStringRejectsGarbage(t *testing.T) {
	_, err := money.FromString("not-a-number")
	assert.Error(t, err)

	_, err = money.FromString("")
	assert.Error(t, err)
}

func TestDisplayFormatsPositiveAndNegative(t *testing.T) {
	assert.Equal(t, "100.0000", money.FromScaled(1_000_000).String())
	assert.Equal(t, "1.5000", money.FromScaled(15_000).String())
	assert.Equal(t, "0.0001", money.FromScaled(1).String())
	assert.Equal(t, "0.0000", money.FromScaled(0).String())
	assert.Equal(t, "-50.2500", money.FromScaled(-502_500).String())
	assert.Equal(t, "-0.0001", money.FromScaled(-1).String())
}

func TestRoundTripLaw(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 123456, -123456, 1_000_000, -999_999_999} {
		v := money.FromScaled(n)
		parsed, err := money.FromString(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, parsed, "round trip for %d", n)
	}
}

func TestZeroIsDefault(t *testing.T) {
	var a money.Amount
	assert.True(t, a.IsZero())
	assert.Equal(t, money.Zero, a)
}

func TestArithmetic(t *testing.T) {
	a := money.FromScaled(100)
	b := money.FromScaled(50)
	assert.Equal(t, money.FromScaled(150), a.Add(b))
	assert.Equal(t, money.FromScaled(50), a.Sub(b))

	a.Increment(b)
	assert.Equal(t, money.FromScaled(150), a)
	a.Decrement(money.FromScaled(30))
	assert.Equal(t, money.FromScaled(120), a)
}

func TestOrdering(t *testing.T) {
	small := money.FromScaled(100)
	large := money.FromScaled(200)
	assert.True(t, small.LessThan(large))
	assert.Equal(t, -1, small.Compare(large))
	assert.Equal(t, 1, large.Compare(small))
	assert.Equal(t, 0, small.Compare(small))
}

func TestNegativeOrdering(t *testing.T) {
	negative := money.FromScaled(-100)
	zero := money.Zero
	positive := money.FromScaled(100)
	assert.True(t, negative.LessThan(zero))
	assert.True(t, zero.LessThan(positive))
	assert.True(t, negative.LessThan(positive))
}
