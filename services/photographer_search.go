package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"photogigs-server/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PhotographerSearch runs filtered, paginated photographer queries.
type PhotographerSearch struct {
	photographers *mongo.Collection
	log           *logrus.Logger
}

// PhotographerSearchArgs are the mandatory arguments for a PhotographerSearch.
type PhotographerSearchArgs struct {
	Photographers *mongo.Collection
	Log           *logrus.Logger
}

func NewPhotographerSearch(args PhotographerSearchArgs) *PhotographerSearch {
	return &PhotographerSearch{photographers: args.Photographers, log: args.Log}
}

type PhotographerSearchInput struct {
	Name  string
	City  string
	State string
	// Availability excludes photographers already booked on this day
	// (YYYY-MM-DD).
	Availability string
	Gear         string
	MinRate      float64
	MaxRate      float64
	Rating       float64
	Page         int
	Limit        int
}

// hasFilters reports whether any filter field is set. Pagination fields do
// not count.
func (in PhotographerSearchInput) hasFilters() bool {
	return strings.TrimSpace(in.Name) != "" ||
		strings.TrimSpace(in.City) != "" ||
		strings.TrimSpace(in.State) != "" ||
		strings.TrimSpace(in.Availability) != "" ||
		strings.TrimSpace(in.Gear) != "" ||
		in.MinRate > 0 ||
		(in.MaxRate > 0 && in.MaxRate < maxRateCeiling) ||
		in.Rating > 0
}

type PhotographerSearchResult struct {
	Photographers []models.Photographer `json:"photographers"`
	TotalPages    int                   `json:"totalPages"`
	TotalResults  int64                 `json:"totalResults"`
}

// Search returns one page of matching photographers. A request with no
// filters at all short-circuits to an empty result instead of scanning the
// whole collection.
func (s *PhotographerSearch) Search(ctx context.Context, input PhotographerSearchInput) (*PhotographerSearchResult, error) {
	if !input.hasFilters() {
		return &PhotographerSearchResult{Photographers: []models.Photographer{}}, nil
	}

	filter, err := BuildPhotographerFilter(input)
	if err != nil {
		return nil, err
	}

	page, limit := NormalizePagination(input.Page, input.Limit)

	total, err := s.photographers.CountDocuments(ctx, filter)
	if err != nil {
		s.log.WithError(err).WithField("op", "photographer_search.count").Error("photographer count failed")
		return nil, fmt.Errorf("counting photographers: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.photographers.Find(ctx, filter, opts)
	if err != nil {
		s.log.WithError(err).WithField("op", "photographer_search.find").Error("photographer query failed")
		return nil, fmt.Errorf("querying photographers: %w", err)
	}

	photographers := []models.Photographer{}
	if err := cursor.All(ctx, &photographers); err != nil {
		s.log.WithError(err).WithField("op", "photographer_search.decode").Error("photographer decode failed")
		return nil, fmt.Errorf("decoding photographers: %w", err)
	}
	for i := range photographers {
		photographers[i].Password = ""
	}

	return &PhotographerSearchResult{
		Photographers: photographers,
		TotalPages:    TotalPages(total, limit),
		TotalResults:  total,
	}, nil
}

// BuildPhotographerFilter translates the search input into a query document.
func BuildPhotographerFilter(input PhotographerSearchInput) (bson.M, error) {
	filter := bson.M{}

	if name := strings.TrimSpace(input.Name); name != "" {
		pattern := caseInsensitiveSubstring(name)
		filter["$or"] = bson.A{
			bson.M{"firstName": pattern},
			bson.M{"lastName": pattern},
		}
	}

	// A photographer matches a location when at least one of their saved
	// regions does. State accepts both the two-letter code and the full name.
	region := bson.M{}
	if city := strings.TrimSpace(input.City); city != "" {
		region["city"] = caseInsensitiveExact(city)
	}
	if state := strings.TrimSpace(input.State); state != "" {
		region["state"] = primitive.Regex{Pattern: StateNamePattern(state), Options: "i"}
	}
	if len(region) > 0 {
		filter["regions"] = bson.M{"$elemMatch": region}
	}

	if avail := strings.TrimSpace(input.Availability); avail != "" {
		if _, err := time.ParseInLocation("2006-01-02", avail, time.Local); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, avail)
		}
		filter["availability"] = bson.M{"$nin": bson.A{avail}}
	}

	if gear := strings.TrimSpace(input.Gear); gear != "" {
		filter["gear"] = gear
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

	if input.Rating > 0 {
		filter["rating"] = bson.M{"$gte": input.Rating}
	}

	return filter, nil
}
