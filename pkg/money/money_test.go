package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "10.00", Format(10_000_000))
	assert.Equal(t, "0.50", Format(500_000))
	assert.Equal(t, "1.23", Format(1_234_567))
	assert.Equal(t, "-2.50", Format(-2_500_000))
	assert.Equal(t, "0.00", Format(0))
}

func TestFormatExact(t *testing.T) {
	assert.Equal(t, "10.003177", FormatExact(10_003_177))
	assert.Equal(t, "1.000000", FormatExact(1_000_000))
	assert.Equal(t, "0.000001", FormatExact(1))
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"10", 10_000_000},
		{"10.5", 10_500_000},
		{"0.25", 250_000},
		{" 3 ", 3_000_000},
		{"1.000001", 1_000_001},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "abc", "-1", "+2", "0", "0.0", "1.2345678", "1.2.3"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidAmount, bad)
	}
}

func TestParseWhole(t *testing.T) {
	got, err := ParseWhole("25")
	require.NoError(t, err)
	assert.Equal(t, int64(25_000_000), got)

	for _, bad := range []string{"10.5", "0", "-3", "x"} {
		_, err := ParseWhole(bad)
		assert.ErrorIs(t, err, ErrInvalidAmount, bad)
	}
}
