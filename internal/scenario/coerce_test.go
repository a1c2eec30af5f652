package scenario

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"84,5", num(84.5)},
		{"84.5", num(84.5)},
		{" 12 ", num(12)},
		{"-42", num(-42)},
		{"0", num(0)},
		{"1e3", num(1000)},
		{"", nil},
		{"   ", nil},
		{"abc", nil},
		{"12%", nil},
		{"1.234,5", nil},
		{"NaN", nil},
		{"inf", nil},
		{"-Infinity", nil},
		{"0x1p3", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseNumber(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestParseBool(t *testing.T) {
	truthyTokens := []string{"true", "TRUE", "1", "yes", "Y", "on", "ja", "J", "an", " Ja "}
	for _, tok := range truthyTokens {
		got := parseBool(tok)
		require.NotNil(t, got, tok)
		assert.True(t, *got, tok)
	}

	falsyTokens := []string{"false", "0", "no", "N", "off", "nein", "NEIN", "aus"}
	for _, tok := range falsyTokens {
		got := parseBool(tok)
		require.NotNil(t, got, tok)
		assert.False(t, *got, tok)
	}

	for _, tok := range []string{"", "maybe", "2", "wahr", "-"} {
		assert.Nil(t, parseBool(tok), tok)
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ONLINE", "online"},
		{"Kritisch", "critical"},
		{"beschädigt", "damaged"},
		{"beschaedigt", "damaged"},
		{" Ausgefallen ", "offline"},
		{"AUS", "offline"},
		{"Warnung", "warning"},
		{"hoch", "high"},
		{"Niedrig", "low"},
		{"Reparatur", "repairing"},
		{"Hyperspace", "hyperspace"},
		{"In Progress", "in progress"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeStatus(tt.in), tt.in)
	}

	for alias, canonical := range statusAliases {
		_, chained := statusAliases[canonical]
		assert.False(t, chained, "alias %q maps onto another alias %q", alias, canonical)
		assert.Equal(t, strings.ToLower(alias), alias, "alias keys are lowercase")
	}
}
