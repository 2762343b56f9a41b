package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStarRating(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *int
	}{
		{name: "label five", in: "FIVE", want: intPtr(5)},
		{name: "label one", in: "ONE", want: intPtr(1)},
		{name: "plain int", in: 3, want: intPtr(3)},
		{name: "json float", in: float64(4), want: intPtr(4)},
		{name: "fractional float", in: 3.5, want: nil},
		{name: "out of range int", in: 9, want: nil},
		{name: "zero", in: 0, want: nil},
		{name: "unknown label", in: "SIX", want: nil},
		{name: "lowercase label", in: "five", want: nil},
		{name: "nil", in: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeStarRating(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestParseGoogleTime(t *testing.T) {
	rfc := ParseGoogleTime("2025-01-02T10:30:00Z")
	require.NotNil(t, rfc)
	assert.Equal(t, 2025, rfc.Year())

	zoneless := ParseGoogleTime("2025-01-02T10:30:00")
	require.NotNil(t, zoneless)
	assert.Equal(t, 10, zoneless.Hour())

	assert.Nil(t, ParseGoogleTime(""))
	assert.Nil(t, ParseGoogleTime("02.01.2025"))
	assert.Nil(t, ParseGoogleTime("garbage"))
}

func intPtr(v int) *int {
	return &v
}
