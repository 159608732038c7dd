package services

import (
	"testing"

	"photogigs-server/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func eventBy(author primitive.ObjectID, title string) models.Event {
	return models.Event{ID: primitive.NewObjectID(), AuthorID: author, Title: title}
}

func TestRankByFavoritesStablePartition(t *testing.T) {
	favAuthor := primitive.NewObjectID()
	otherA := primitive.NewObjectID()
	otherB := primitive.NewObjectID()

	e1 := eventBy(otherA, "first")
	e2 := eventBy(favAuthor, "second")
	e3 := eventBy(otherB, "third")
	e4 := eventBy(favAuthor, "fourth")

	ranked := RankByFavorites(
		[]models.Event{e1, e2, e3, e4},
		NewFavoriteSet(favAuthor.Hex()),
	)

	// Promoted events keep their relative order, then the rest keep theirs.
	assert.Equal(t, []string{"second", "fourth", "first", "third"}, titles(ranked))
}

func TestRankByFavoritesNoFavorites(t *testing.T) {
	events := []models.Event{
		eventBy(primitive.NewObjectID(), "a"),
		eventBy(primitive.NewObjectID(), "b"),
	}

	ranked := RankByFavorites(events, NewFavoriteSet())
	assert.Equal(t, []string{"a", "b"}, titles(ranked))
}

func TestRankByFavoritesAllFavorited(t *testing.T) {
	author := primitive.NewObjectID()
	events := []models.Event{eventBy(author, "a"), eventBy(author, "b")}

	ranked := RankByFavorites(events, NewFavoriteSet(author.Hex()))
	assert.Equal(t, []string{"a", "b"}, titles(ranked))
}

func TestRankByFavoritesEmptyPage(t *testing.T) {
	ranked := RankByFavorites(nil, NewFavoriteSet(primitive.NewObjectID().Hex()))
	assert.Empty(t, ranked)
}

func titles(events []models.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Title
	}
	return out
}
