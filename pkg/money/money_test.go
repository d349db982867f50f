package money

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDigits(t *testing.T) {
	testCases := []struct {
		raw  string
		want string
	}{
		{"10000", "100,00"},
		{"", "0,00"},
		{"5", "0,05"},
		{"0000123", "1,23"},
		{"R$ 1,00", "1,00"},
		{"123456", "1.234,56"},
		{"99999999", "999.999,99"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, FormatDigits(tc.raw), tc.raw)
	}
}

func TestFormatDigits_IgnoresKeystrokesPastLimit(t *testing.T) {
	full := "100000000000000"
	require.Len(t, full, maxDigits)
	assert.Equal(t, int64(100000000000000), CentsFromDigits(full))
	assert.Equal(t, CentsFromDigits(full), CentsFromDigits(full+"1"))
	assert.Equal(t, FormatDigits(full), FormatDigits(full+"1"))
	assert.Equal(t, "1.000.000.000.000,00", FormatDigits(full+"1"))

	// leading zeros do not use up the limit
	assert.Equal(t, int64(100000000000000), CentsFromDigits("000"+full))
}

func TestParse(t *testing.T) {
	v, err := Parse("100,00")
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)

	v, err = Parse("R$ 1.234,56")
	require.NoError(t, err)
	assert.Equal(t, 1234.56, v)

	_, err = Parse("")
	assert.Error(t, err)

	_, err = Parse("doze reais")
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	check := func(c int64) {
		display := FormatCents(c)

		v, err := Parse(display)
		require.NoError(t, err, display)
		assert.Equal(t, float64(c)/100, v, display)

		cents, err := ParseCents(display)
		require.NoError(t, err, display)
		assert.Equal(t, c, cents, display)
	}

	for _, c := range []int64{0, 1, 99, 100, 1000, 99999, 100000, 123456, 9999999, 99999999} {
		check(c)
	}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		check(rng.Int63n(100000000))
	}
}

func TestParseCents_Errors(t *testing.T) {
	_, err := ParseCents("1,234")
	assert.Error(t, err)

	_, err = ParseCents("  ")
	assert.Error(t, err)

	c, err := ParseCents("-2,5")
	require.NoError(t, err)
	assert.Equal(t, int64(-250), c)
}

func TestWireValue(t *testing.T) {
	assert.Equal(t, "100.00", WireValue(10000))
	assert.Equal(t, "0.05", WireValue(5))
	assert.Equal(t, "-1.50", WireValue(-150))
}

func TestFromFloat(t *testing.T) {
	assert.Equal(t, int64(10000), FromFloat(100))
	assert.Equal(t, int64(1999), FromFloat(19.99))
	assert.Equal(t, int64(-150), FromFloat(-1.5))
}
