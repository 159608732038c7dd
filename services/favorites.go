package services

import (
	"context"
	"fmt"

	"photogigs-server/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FavoriteSet is an explicit set of photographer ids. The persisted form is a
// map keyed by id with a truthy value; this type is the in-memory view the
// feed ranker consumes.
type FavoriteSet map[string]struct{}

func NewFavoriteSet(ids ...string) FavoriteSet {
	s := make(FavoriteSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s FavoriteSet) Add(id string)    { s[id] = struct{}{} }
func (s FavoriteSet) Remove(id string) { delete(s, id) }

func (s FavoriteSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

func (s FavoriteSet) Len() int { return len(s) }

func (s FavoriteSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}

// FavoritesStore manages the per-photographer favorites relation. Toggles are
// single-document $set/$unset updates, so concurrent toggles cannot lose each
// other and repeating an operation is a no-op success.
type FavoritesStore struct {
	photographers *mongo.Collection
	log           *logrus.Logger
}

// FavoritesStoreArgs are the mandatory arguments for a FavoritesStore.
type FavoritesStoreArgs struct {
	Photographers *mongo.Collection
	Log           *logrus.Logger
}

func NewFavoritesStore(args FavoritesStoreArgs) *FavoritesStore {
	return &FavoritesStore{photographers: args.Photographers, log: args.Log}
}

func favoriteKey(targetID string) string {
	return "favorites." + targetID
}

// Add marks target as a favorite of viewer. Adding an existing favorite is a
// no-op success.
func (s *FavoritesStore) Add(ctx context.Context, viewerID, targetID string) error {
	viewerOID, targetOID, err := parseIDPair(viewerID, targetID)
	if err != nil {
		return err
	}

	// The target must exist; favoriting a deleted photographer would leave a
	// dangling boost in the feed.
	if err := s.photographers.FindOne(ctx, bson.M{"_id": targetOID},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return fmt.Errorf("checking favorite target: %w", err)
	}

	res, err := s.photographers.UpdateByID(ctx, viewerOID,
		bson.M{"$set": bson.M{favoriteKey(targetID): true}})
	if err != nil {
		s.log.WithError(err).WithField("op", "favorites.add").Error("favorite add failed")
		return fmt.Errorf("adding favorite: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Remove unmarks target as a favorite of viewer. Removing an absent favorite
// is a no-op success.
func (s *FavoritesStore) Remove(ctx context.Context, viewerID, targetID string) error {
	viewerOID, _, err := parseIDPair(viewerID, targetID)
	if err != nil {
		return err
	}

	res, err := s.photographers.UpdateByID(ctx, viewerOID,
		bson.M{"$unset": bson.M{favoriteKey(targetID): ""}})
	if err != nil {
		s.log.WithError(err).WithField("op", "favorites.remove").Error("favorite remove failed")
		return fmt.Errorf("removing favorite: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IsFavorite reports whether viewer has favorited target.
func (s *FavoritesStore) IsFavorite(ctx context.Context, viewerID, targetID string) (bool, error) {
	set, err := s.Set(ctx, viewerID)
	if err != nil {
		return false, err
	}
	return set.Contains(targetID), nil
}

// Set loads the viewer's favorites as a FavoriteSet.
func (s *FavoritesStore) Set(ctx context.Context, viewerID string) (FavoriteSet, error) {
	viewerOID, err := primitive.ObjectIDFromHex(viewerID)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc struct {
		Favorites map[string]bool `bson:"favorites"`
	}
	err = s.photographers.FindOne(ctx, bson.M{"_id": viewerOID},
		options.FindOne().SetProjection(bson.M{"favorites": 1})).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading favorites: %w", err)
	}

	set := make(FavoriteSet, len(doc.Favorites))
	for id, favorited := range doc.Favorites {
		if favorited {
			set.Add(id)
		}
	}
	return set, nil
}

// List returns the favorited photographers. Storage failures degrade to an
// empty list so a profile fetch never fails on its favorites sidebar; the
// error is logged instead.
func (s *FavoritesStore) List(ctx context.Context, viewerID string) []models.Photographer {
	set, err := s.Set(ctx, viewerID)
	if err != nil {
		s.log.WithError(err).WithField("op", "favorites.list").Warn("favorites lookup degraded to empty")
		return []models.Photographer{}
	}
	if set.Len() == 0 {
		return []models.Photographer{}
	}

	oids := make([]primitive.ObjectID, 0, set.Len())
	for _, id := range set.IDs() {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}

	cursor, err := s.photographers.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		s.log.WithError(err).WithField("op", "favorites.list").Warn("favorites fetch degraded to empty")
		return []models.Photographer{}
	}
	photographers := []models.Photographer{}
	if err := cursor.All(ctx, &photographers); err != nil {
		s.log.WithError(err).WithField("op", "favorites.list").Warn("favorites decode degraded to empty")
		return []models.Photographer{}
	}
	for i := range photographers {
		photographers[i].Password = ""
	}
	return photographers
}

func parseIDPair(viewerID, targetID string) (primitive.ObjectID, primitive.ObjectID, error) {
	viewerOID, err := primitive.ObjectIDFromHex(viewerID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, ErrNotFound
	}
	targetOID, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, ErrNotFound
	}
	return viewerOID, targetOID, nil
}
