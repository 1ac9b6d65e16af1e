package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinParse(t *testing.T) {
	tests := []struct {
		name   string
		parsed Address
		joined string
	}{
		{
			name:   "Full address",
			parsed: Address{Street: "12 Kauri Street", Suburb: "Ponsonby", City: "Auckland", Postcode: "1011"},
			joined: "12 Kauri Street, Ponsonby, Auckland 1011",
		},
		{
			name:   "City with spaces",
			parsed: Address{Street: "4 Beach Road", Suburb: "Sumner", City: "Christ Church", Postcode: "8081"},
			joined: "4 Beach Road, Sumner, Christ Church 8081",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.joined, Join(tt.parsed))
			assert.Equal(t, tt.parsed, Parse(tt.joined))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Address
	}{
		{"Empty", "", Address{}},
		{"Only city", "Wellington", Address{City: "Wellington"}},
		{"Street and city", "1 Queen St, Auckland 1010", Address{Street: "1 Queen St", City: "Auckland", Postcode: "1010"}},
		{"Unit line kept with street", "Flat 2, 9 Oak Ave, Remuera, Auckland 1050",
			Address{Street: "Flat 2, 9 Oak Ave", Suburb: "Remuera", City: "Auckland", Postcode: "1050"}},
		{"Postcode only last part", "5 Elm Rd, Hamilton, 3204", Address{Street: "5 Elm Rd", Suburb: "Hamilton", Postcode: "3204"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.input))
		})
	}
}

func TestComplete(t *testing.T) {
	assert.True(t, Address{Street: "a", Suburb: "b", City: "c", Postcode: "1"}.Complete())
	assert.False(t, Address{Street: "a", Suburb: " ", City: "c", Postcode: "1"}.Complete())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "12 kauri street, ponsonby", Normalize("  12  Kauri Street,\tPonsonby "))
}
