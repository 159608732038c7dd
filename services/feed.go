package services

import (
	"context"
	"fmt"
	"time"

	"photogigs-server/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Feed assembles the viewer's event feed: region-scoped, newest first, with
// events by favorited photographers promoted to the top of each page.
type Feed struct {
	events        *mongo.Collection
	photographers *mongo.Collection
	log           *logrus.Logger
	nowFunc       func() time.Time
}

// FeedArgs are the mandatory arguments for a Feed.
type FeedArgs struct {
	Events        *mongo.Collection
	Photographers *mongo.Collection
	Log           *logrus.Logger
}

// FeedOpt is an optional argument for building a Feed.
type FeedOpt = func(*Feed)

// WithFeedNowFunc overrides the clock. Useful for testing.
func WithFeedNowFunc(nowFunc func() time.Time) FeedOpt {
	return func(f *Feed) {
		f.nowFunc = nowFunc
	}
}

func NewFeed(args FeedArgs, opts ...FeedOpt) *Feed {
	f := &Feed{
		events:        args.Events,
		photographers: args.Photographers,
		log:           args.Log,
		nowFunc:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type FeedInput struct {
	ViewerID string
	Page     int
	Limit    int
	// RestrictToRegions scopes the feed to the viewer's saved regions. When
	// disabled the favorites boost is also skipped and the page comes back in
	// plain date order.
	RestrictToRegions bool
}

// Page returns one feed page for the viewer.
func (f *Feed) Page(ctx context.Context, input FeedInput) (*EventSearchResult, error) {
	viewerOID, err := primitive.ObjectIDFromHex(input.ViewerID)
	if err != nil {
		return nil, ErrNotFound
	}

	var viewer models.Photographer
	if err := f.photographers.FindOne(ctx, bson.M{"_id": viewerOID}).Decode(&viewer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		f.log.WithError(err).WithField("op", "feed.viewer").Error("viewer lookup failed")
		return nil, fmt.Errorf("loading viewer: %w", err)
	}

	filter := bson.M{
		"isDeleted":   false,
		"isFulfilled": false,
		"date":        bson.M{"$gte": f.nowFunc()},
	}
	if input.RestrictToRegions && len(viewer.Regions) > 0 {
		clauses := make(bson.A, 0, len(viewer.Regions))
		for _, r := range viewer.Regions {
			// Regions are stored lowercased, so exact matches suffice here.
			clauses = append(clauses, bson.M{"location.city": r.City, "location.state": r.State})
		}
		filter["$or"] = clauses
	}

	page, limit := NormalizePagination(input.Page, input.Limit)

	total, err := f.events.CountDocuments(ctx, filter)
	if err != nil {
		f.log.WithError(err).WithField("op", "feed.count").Error("feed count failed")
		return nil, fmt.Errorf("counting feed events: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := f.events.Find(ctx, filter, opts)
	if err != nil {
		f.log.WithError(err).WithField("op", "feed.find").Error("feed query failed")
		return nil, fmt.Errorf("querying feed events: %w", err)
	}
	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		f.log.WithError(err).WithField("op", "feed.decode").Error("feed decode failed")
		return nil, fmt.Errorf("decoding feed events: %w", err)
	}

	favorites := FavoriteSet{}
	if input.RestrictToRegions {
		favorites = NewFavoriteSet(viewer.FavoriteIDs()...)
	}

	return &EventSearchResult{
		Events:       RankByFavorites(events, favorites),
		TotalResults: total,
		TotalPages:   TotalPages(total, limit),
	}, nil
}

// AuthorFeed lists one photographer's own events, newest first, without
// region scoping or favorites ranking. Fulfilled events stay visible to their
// author; soft-deleted ones never do.
func (f *Feed) AuthorFeed(ctx context.Context, authorID string, page, limit int) (*EventSearchResult, error) {
	authorOID, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return nil, ErrNotFound
	}

	filter := bson.M{"authorID": authorOID, "isDeleted": false}

	page, limit = NormalizePagination(page, limit)

	total, err := f.events.CountDocuments(ctx, filter)
	if err != nil {
		f.log.WithError(err).WithField("op", "feed.author.count").Error("author feed count failed")
		return nil, fmt.Errorf("counting author events: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := f.events.Find(ctx, filter, opts)
	if err != nil {
		f.log.WithError(err).WithField("op", "feed.author.find").Error("author feed query failed")
		return nil, fmt.Errorf("querying author events: %w", err)
	}
	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		f.log.WithError(err).WithField("op", "feed.author.decode").Error("author feed decode failed")
		return nil, fmt.Errorf("decoding author events: %w", err)
	}

	return &EventSearchResult{
		Events:       events,
		TotalResults: total,
		TotalPages:   TotalPages(total, limit),
	}, nil
}

// RankByFavorites stably partitions a page of events: events authored by a
// favorited photographer first, everything else after, each side keeping its
// arrival order. It is not a re-sort.
func RankByFavorites(events []models.Event, favorites FavoriteSet) []models.Event {
	if favorites.Len() == 0 || len(events) == 0 {
		return events
	}

	promoted := make([]models.Event, 0, len(events))
	rest := make([]models.Event, 0, len(events))
	for _, event := range events {
		if favorites.Contains(event.AuthorID.Hex()) {
			promoted = append(promoted, event)
		} else {
			rest = append(rest, event)
		}
	}
	return append(promoted, rest...)
}
