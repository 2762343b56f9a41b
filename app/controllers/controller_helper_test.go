package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStoreID(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{in: "accounts/1/locations/7", want: "accounts/1/locations/7", valid: true},
		{in: "accounts%2F1%2Flocations%2F7", want: "accounts/1/locations/7", valid: true},
		{in: "  accounts/1/locations/7  ", want: "accounts/1/locations/7", valid: true},
		{in: "", valid: false},
		{in: "locations/7", valid: false},
		{in: "%zz", valid: false},
	}

	for _, tt := range tests {
		got, ok := parseStoreID(tt.in)
		assert.Equal(t, tt.valid, ok, "parseStoreID(%q)", tt.in)
		if tt.valid {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestCustomerSentiment(t *testing.T) {
	assert.Equal(t, "negative", customerSentiment(4.5, 0.6), "mostly negative history wins")
	assert.Equal(t, "neutral", customerSentiment(3.2, 0.1))
	assert.Equal(t, "positive", customerSentiment(4.4, 0.0))
}
