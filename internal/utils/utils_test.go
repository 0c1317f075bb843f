package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sortetech/recarga-sorte-backend/internal/drawcal"
)

func TestParseBrazilTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "brazilian wall clock read as UTC-3",
			input: "02/06/2025 19:45:00",
			want:  drawcal.FromLocalFields(2025, time.June, 2, 19, 45, 0),
		},
		{
			name:  "wall clock without seconds",
			input: "02/06/2025 19:45",
			want:  drawcal.FromLocalFields(2025, time.June, 2, 19, 45, 0),
		},
		{
			name:  "date only",
			input: "02/06/2025",
			want:  drawcal.FromLocalFields(2025, time.June, 2, 0, 0, 0),
		},
		{
			name:  "iso wall clock read as UTC-3",
			input: "2025-06-02 19:45:00",
			want:  drawcal.FromLocalFields(2025, time.June, 2, 19, 45, 0),
		},
		{
			name:  "rfc3339 keeps its explicit offset",
			input: "2025-06-02T19:45:00-03:00",
			want:  drawcal.FromLocalFields(2025, time.June, 2, 19, 45, 0),
		},
		{
			name:  "utc timestamp is not reinterpreted as wall clock",
			input: "2025-06-02T22:45:00Z",
			want:  drawcal.FromLocalFields(2025, time.June, 2, 19, 45, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBrazilTime(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestParseBrazilTimeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "whitespace only", input: "   "},
		{name: "garbage", input: "not-a-date"},
		{name: "american format", input: "06-02-2025 19:45:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBrazilTime(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestParseChosenNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{name: "comma separated", input: "04, 12, 33", want: []int{4, 12, 33}},
		{name: "dash separated", input: "04-12-33", want: []int{4, 12, 33}},
		{name: "semicolon separated", input: "4;12;33", want: []int{4, 12, 33}},
		{name: "space separated", input: "4 12 33", want: []int{4, 12, 33}},
		{name: "skips non numeric fields", input: "4, x, 33", want: []int{4, 33}},
		{name: "empty", input: "", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseChosenNumbers(tt.input))
		})
	}
}

func TestMaskGameID(t *testing.T) {
	assert.Equal(t, "55******01", MaskGameID("5511999990001"))
	assert.Equal(t, "******", MaskGameID("551"))
	assert.Equal(t, "******", MaskGameID(""))
}
