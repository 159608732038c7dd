package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPhotographerSearchNoFiltersShortCircuits(t *testing.T) {
	// No collection wired: the empty-input path must return before any query.
	svc := NewPhotographerSearch(PhotographerSearchArgs{Log: logrus.New()})

	result, err := svc.Search(context.Background(), PhotographerSearchInput{Page: 3, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, result.Photographers)
	assert.Zero(t, result.TotalResults)
	assert.Zero(t, result.TotalPages)
}

func TestPhotographerSearchInputHasFilters(t *testing.T) {
	tests := []struct {
		name  string
		input PhotographerSearchInput
		want  bool
	}{
		{name: "empty", input: PhotographerSearchInput{}, want: false},
		{name: "pagination only", input: PhotographerSearchInput{Page: 2, Limit: 30}, want: false},
		{name: "whitespace name", input: PhotographerSearchInput{Name: "   "}, want: false},
		{name: "name", input: PhotographerSearchInput{Name: "ava"}, want: true},
		{name: "city", input: PhotographerSearchInput{City: "austin"}, want: true},
		{name: "min rate", input: PhotographerSearchInput{MinRate: 10}, want: true},
		{name: "max rate at ceiling ignored", input: PhotographerSearchInput{MaxRate: 200}, want: false},
		{name: "max rate below ceiling", input: PhotographerSearchInput{MaxRate: 199}, want: true},
		{name: "rating", input: PhotographerSearchInput{Rating: 4}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.hasFilters())
		})
	}
}

func TestBuildPhotographerFilterName(t *testing.T) {
	filter, err := BuildPhotographerFilter(PhotographerSearchInput{Name: "Ram"})
	require.NoError(t, err)

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)

	first := or[0].(bson.M)["firstName"].(primitive.Regex)
	assert.Equal(t, "Ram", first.Pattern)
	assert.Equal(t, "i", first.Options)

	last := or[1].(bson.M)["lastName"].(primitive.Regex)
	assert.Equal(t, "Ram", last.Pattern)
}

func TestBuildPhotographerFilterRegion(t *testing.T) {
	filter, err := BuildPhotographerFilter(PhotographerSearchInput{City: "Austin", State: "Texas"})
	require.NoError(t, err)

	elem, ok := filter["regions"].(bson.M)
	require.True(t, ok)
	region, ok := elem["$elemMatch"].(bson.M)
	require.True(t, ok)

	city := region["city"].(primitive.Regex)
	assert.Equal(t, "^austin$", city.Pattern)

	// Full state name and the two-letter code match the same stored values.
	state := region["state"].(primitive.Regex)
	assert.Equal(t, "^(tx|texas)$", state.Pattern)
	assert.Equal(t, "i", state.Options)
}

func TestBuildPhotographerFilterAvailability(t *testing.T) {
	filter, err := BuildPhotographerFilter(PhotographerSearchInput{Availability: "2025-08-09"})
	require.NoError(t, err)

	assert.Equal(t, bson.M{"$nin": bson.A{"2025-08-09"}}, filter["availability"])
}

func TestBuildPhotographerFilterInvalidAvailability(t *testing.T) {
	_, err := BuildPhotographerFilter(PhotographerSearchInput{Availability: "09/08/2025"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestBuildPhotographerFilterGearAndRating(t *testing.T) {
	filter, err := BuildPhotographerFilter(PhotographerSearchInput{
		Gear:    "canon",
		Rating:  4.5,
		MinRate: 40,
		MaxRate: 90,
	})
	require.NoError(t, err)

	assert.Equal(t, "canon", filter["gear"])
	assert.Equal(t, bson.M{"$gte": 4.5}, filter["rating"])
	assert.Equal(t, bson.M{"$gte": 40.0, "$lte": 90.0}, filter["hourlyRate"])
}
