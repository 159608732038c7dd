package services

import (
	"testing"

	"photogigs-server/models"

	"github.com/stretchr/testify/assert"
)

func TestMatchRegion(t *testing.T) {
	tests := []struct {
		name    string
		city    string
		state   string
		want    models.Region
		matched bool
	}{
		{
			name:    "lowercase match",
			city:    "austin",
			state:   "tx",
			want:    models.Region{City: "austin", State: "tx"},
			matched: true,
		},
		{
			name:    "mixed case and whitespace normalized",
			city:    "  Austin ",
			state:   "TX",
			want:    models.Region{City: "austin", State: "tx"},
			matched: true,
		},
		{
			name:  "unsupported city in supported state",
			city:  "el paso",
			state: "tx",
		},
		{
			name:  "unsupported state",
			city:  "fargo",
			state: "nd",
		},
		{
			name:  "empty city",
			city:  "",
			state: "tx",
		},
		{
			name:  "empty state",
			city:  "austin",
			state: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchRegion(tt.city, tt.state)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStateNamePattern(t *testing.T) {
	tests := []struct {
		name  string
		state string
		want  string
	}{
		{name: "two letter code", state: "tx", want: "^(tx|texas)$"},
		{name: "uppercase code", state: "TX", want: "^(tx|texas)$"},
		{name: "full name resolves to same pattern", state: "Texas", want: "^(tx|texas)$"},
		{name: "unknown state falls back to exact", state: "zz", want: "^zz$"},
		{name: "unknown full name falls back to exact", state: "atlantis", want: "^atlantis$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateNamePattern(tt.state))
		})
	}
}

func TestSupportedRegions(t *testing.T) {
	regions := SupportedRegions()
	assert.NotEmpty(t, regions)

	// Ordered by state, then city.
	for i := 1; i < len(regions); i++ {
		prev, cur := regions[i-1], regions[i]
		if prev.State == cur.State {
			assert.Less(t, prev.City, cur.City)
		} else {
			assert.Less(t, prev.State, cur.State)
		}
	}

	assert.Contains(t, regions, models.Region{City: "austin", State: "tx"})
}
