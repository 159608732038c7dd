package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildEventFilterDefaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)

	filter, err := BuildEventFilter(EventSearchInput{}, now)
	require.NoError(t, err)

	assert.Equal(t, false, filter["isDeleted"])
	assert.Equal(t, false, filter["isFulfilled"])
	assert.Equal(t, bson.M{"$gte": now}, filter["date"])
	assert.NotContains(t, filter, "$text")
	assert.NotContains(t, filter, "hourlyRate")
}

func TestBuildEventFilterKeywordAndLocation(t *testing.T) {
	now := time.Now()

	filter, err := BuildEventFilter(EventSearchInput{
		Keyword: " wedding ",
		City:    "Austin",
		State:   "TX",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, bson.M{"$search": "wedding"}, filter["$text"])

	city, ok := filter["location.city"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "^austin$", city.Pattern)
	assert.Equal(t, "i", city.Options)

	state, ok := filter["location.state"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "^tx$", state.Pattern)
}

func TestBuildEventFilterRateRange(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		minRate float64
		maxRate float64
		want    interface{}
	}{
		{
			name:    "closed range applies both bounds",
			minRate: 50,
			maxRate: 150,
			want:    bson.M{"$gte": 50.0, "$lte": 150.0},
		},
		{
			name:    "min only",
			minRate: 75,
			want:    bson.M{"$gte": 75.0},
		},
		{
			name:    "max only",
			maxRate: 120,
			want:    bson.M{"$lte": 120.0},
		},
		{
			name:    "max at ceiling means unbounded",
			minRate: 30,
			maxRate: 200,
			want:    bson.M{"$gte": 30.0},
		},
		{
			name: "no bounds omits the clause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := BuildEventFilter(EventSearchInput{
				MinRate: tt.minRate,
				MaxRate: tt.maxRate,
			}, now)
			require.NoError(t, err)

			if tt.want == nil {
				assert.NotContains(t, filter, "hourlyRate")
				return
			}
			assert.Equal(t, tt.want, filter["hourlyRate"])
		})
	}
}

func TestBuildEventFilterDateWindow(t *testing.T) {
	now := time.Now()

	filter, err := BuildEventFilter(EventSearchInput{Date: "2025-07-04"}, now)
	require.NoError(t, err)

	window, ok := filter["date"].(bson.M)
	require.True(t, ok)

	start := time.Date(2025, 7, 4, 0, 0, 0, 0, time.Local)
	assert.Equal(t, start, window["$gte"])
	assert.Equal(t, start.AddDate(0, 0, 1), window["$lt"])
}

func TestBuildEventFilterRFC3339Date(t *testing.T) {
	now := time.Now()

	stamp := time.Date(2025, 7, 4, 15, 30, 0, 0, time.Local)
	filter, err := BuildEventFilter(EventSearchInput{Date: stamp.Format(time.RFC3339)}, now)
	require.NoError(t, err)

	window, ok := filter["date"].(bson.M)
	require.True(t, ok)

	start := time.Date(2025, 7, 4, 0, 0, 0, 0, time.Local)
	assert.Equal(t, start, window["$gte"])
}

func TestBuildEventFilterInvalidDate(t *testing.T) {
	_, err := BuildEventFilter(EventSearchInput{Date: "next tuesday"}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidDate)
}
