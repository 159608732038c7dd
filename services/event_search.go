package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"photogigs-server/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// maxRateCeiling is the hourly-rate ceiling assumed by the client slider; a
// max at or above it means "no upper bound requested".
const maxRateCeiling = 200

// EventSearch runs filtered, paginated event queries.
type EventSearch struct {
	events  *mongo.Collection
	log     *logrus.Logger
	nowFunc func() time.Time
}

// EventSearchArgs are the mandatory arguments for an EventSearch.
type EventSearchArgs struct {
	Events *mongo.Collection
	Log    *logrus.Logger
}

// EventSearchOpt is an optional argument for building an EventSearch.
type EventSearchOpt = func(*EventSearch)

// WithEventSearchNowFunc overrides the clock. Useful for testing.
func WithEventSearchNowFunc(nowFunc func() time.Time) EventSearchOpt {
	return func(s *EventSearch) {
		s.nowFunc = nowFunc
	}
}

func NewEventSearch(args EventSearchArgs, opts ...EventSearchOpt) *EventSearch {
	s := &EventSearch{
		events:  args.Events,
		log:     args.Log,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type EventSearchInput struct {
	Keyword string
	City    string
	State   string
	MinRate float64
	MaxRate float64
	// Date restricts results to a single calendar day (YYYY-MM-DD or
	// RFC 3339). Empty means future events only.
	Date  string
	Page  int
	Limit int
}

type EventSearchResult struct {
	Events       []models.Event `json:"events"`
	TotalResults int64          `json:"totalResults"`
	TotalPages   int            `json:"totalPages"`
}

// Search returns one page of matching events, newest date first.
func (s *EventSearch) Search(ctx context.Context, input EventSearchInput) (*EventSearchResult, error) {
	filter, err := BuildEventFilter(input, s.nowFunc())
	if err != nil {
		return nil, err
	}

	page, limit := NormalizePagination(input.Page, input.Limit)

	total, err := s.events.CountDocuments(ctx, filter)
	if err != nil {
		s.log.WithError(err).WithField("op", "event_search.count").Error("event count failed")
		return nil, fmt.Errorf("counting events: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.events.Find(ctx, filter, opts)
	if err != nil {
		s.log.WithError(err).WithField("op", "event_search.find").Error("event query failed")
		return nil, fmt.Errorf("querying events: %w", err)
	}

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		s.log.WithError(err).WithField("op", "event_search.decode").Error("event decode failed")
		return nil, fmt.Errorf("decoding events: %w", err)
	}

	return &EventSearchResult{
		Events:       events,
		TotalResults: total,
		TotalPages:   TotalPages(total, limit),
	}, nil
}

// BuildEventFilter translates the search input into a query document.
// Soft-deleted and fulfilled events are always excluded. The min/max rate
// bounds are applied together as a closed range.
func BuildEventFilter(input EventSearchInput, now time.Time) (bson.M, error) {
	filter := bson.M{
		"isDeleted":   false,
		"isFulfilled": false,
	}

	if keyword := strings.TrimSpace(input.Keyword); keyword != "" {
		filter["$text"] = bson.M{"$search": keyword}
	}
	if city := strings.TrimSpace(input.City); city != "" {
		filter["location.city"] = caseInsensitiveExact(city)
	}
	if state := strings.TrimSpace(input.State); state != "" {
		filter["location.state"] = caseInsensitiveExact(state)
	}

	rate := bson.M{}
	if input.MinRate > 0 {
		rate["$gte"] = input.MinRate
	}
	if input.MaxRate > 0 && input.MaxRate < maxRateCeiling {
		rate["$lte"] = input.MaxRate
	}
	if len(rate) > 0 {
		filter["hourlyRate"] = rate
	}

	if input.Date != "" {
		dayStart, err := parseDay(input.Date)
		if err != nil {
			return nil, err
		}
		filter["date"] = bson.M{"$gte": dayStart, "$lt": dayStart.AddDate(0, 0, 1)}
	} else {
		filter["date"] = bson.M{"$gte": now}
	}

	return filter, nil
}

// parseDay resolves a date string to the start of that calendar day in
// server-local time.
func parseDay(value string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		local := t.Local()
		return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

func caseInsensitiveExact(value string) primitive.Regex {
	return primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(strings.ToLower(strings.TrimSpace(value))) + "$",
		Options: "i",
	}
}

func caseInsensitiveSubstring(value string) primitive.Regex {
	return primitive.Regex{
		Pattern: regexp.QuoteMeta(strings.TrimSpace(value)),
		Options: "i",
	}
}
