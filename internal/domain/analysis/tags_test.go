package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        []string
	}{
		{
			name:        "no matches",
			description: "An abstract pattern of gray rectangles.",
			want:        []string{},
		},
		{
			name:        "case insensitive",
			description: "A PERSON standing near Water.",
			want:        []string{"person", "water"},
		},
		{
			name: "vocabulary order, not appearance order",
			description: "Bright sky over a vehicle parked by an animal " +
				"enclosure in an urban landscape.",
			want: []string{"landscape", "urban", "animal", "vehicle", "sky"},
		},
		{
			name: "capped at five",
			// seven vocabulary words appear; only the first five in
			// vocabulary order survive
			description: "A person walks a plant-lined street under the sky, " +
				"past a building, a vehicle, and a food stall near water.",
			want: []string{"person", "food", "vehicle", "building", "sky"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTags(tt.description))
			// deterministic across calls
			assert.Equal(t, tt.want, ExtractTags(tt.description))
		})
	}
}
