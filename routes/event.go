package routes

import (
	"fmt"
	"time"

	"photogigs-server/models"
	"photogigs-server/services"
	"photogigs-server/storage"
	"photogigs-server/utils"

	"github.com/kataras/iris/v12"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func CreateEvent(ctx iris.Context) {
	authorID := ctx.Values().GetString("photographerID")
	authorOID, oidErr := primitive.ObjectIDFromHex(authorID)
	if oidErr != nil {
		utils.CreateUnauthorized(ctx)
		return
	}

	var input CreateEventInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	region, ok := services.MatchRegion(input.City, input.State)
	if !ok {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			fmt.Sprintf("unsupported region: %s, %s", input.City, input.State), ctx)
		return
	}

	date, dateErr := parseEventDate(input.Date)
	if dateErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", dateErr.Error(), ctx)
		return
	}

	now := time.Now()
	event := models.Event{
		AuthorID:    authorOID,
		Title:       input.Title,
		Description: input.Description,
		Location:    region,
		Date:        date,
		HourlyRate:  input.HourlyRate,
		Comments:    []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, insertErr := storage.Events.InsertOne(ctx.Request().Context(), &event)
	if insertErr != nil {
		utils.Logger.WithError(insertErr).Error("event insert failed")
		utils.CreateInternalServerError(ctx)
		return
	}
	event.ID = res.InsertedID.(primitive.ObjectID)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(event)
}

// GetEvent returns an event with its author profile and live comments.
// Soft-deleted events answer 404 for everyone.
func GetEvent(ctx iris.Context) {
	event := getEventByID(ctx.Params().Get("id"), ctx)
	if event == nil {
		return
	}
	if event.IsDeleted {
		utils.CreateNotFound(ctx)
		return
	}

	author := getPhotographerByID(event.AuthorID.Hex(), ctx)
	if author == nil {
		return
	}
	author.Password = ""

	reqCtx := ctx.Request().Context()
	comments := []models.EventComment{}
	cursor, findErr := storage.EventComments.Find(reqCtx,
		bson.M{"eventID": event.ID, "isDeleted": false})
	if findErr == nil {
		if decodeErr := cursor.All(reqCtx, &comments); decodeErr != nil {
			utils.Logger.WithError(decodeErr).Warn("comment decode failed, returning event without comments")
			comments = []models.EventComment{}
		}
	} else {
		utils.Logger.WithError(findErr).Warn("comment fetch failed, returning event without comments")
	}

	ctx.JSON(iris.Map{
		"event":    event,
		"author":   author,
		"comments": comments,
	})
}

func UpdateEvent(ctx iris.Context) {
	event := mustOwnEvent(ctx)
	if event == nil {
		return
	}

	var input UpdateEventInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.Title != "" {
		update["title"] = input.Title
	}
	if input.Description != "" {
		update["description"] = input.Description
	}
	if input.City != "" || input.State != "" {
		region, ok := services.MatchRegion(input.City, input.State)
		if !ok {
			utils.CreateError(iris.StatusBadRequest, "Validation Error",
				fmt.Sprintf("unsupported region: %s, %s", input.City, input.State), ctx)
			return
		}
		update["location"] = region
	}
	if input.Date != "" {
		date, dateErr := parseEventDate(input.Date)
		if dateErr != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", dateErr.Error(), ctx)
			return
		}
		update["date"] = date
	}
	if input.HourlyRate > 0 {
		update["hourlyRate"] = input.HourlyRate
	}

	if _, updateErr := storage.Events.UpdateByID(ctx.Request().Context(), event.ID,
		bson.M{"$set": update}); updateErr != nil {
		utils.Logger.WithError(updateErr).Error("event update failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

// DeleteEvent soft-deletes: the record stays but drops out of every feed and
// search result.
func DeleteEvent(ctx iris.Context) {
	event := mustOwnEvent(ctx)
	if event == nil {
		return
	}

	if _, updateErr := storage.Events.UpdateByID(ctx.Request().Context(), event.ID,
		bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now()}}); updateErr != nil {
		utils.Logger.WithError(updateErr).Error("event soft delete failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

func FulfillEvent(ctx iris.Context) {
	event := mustOwnEvent(ctx)
	if event == nil {
		return
	}

	if _, updateErr := storage.Events.UpdateByID(ctx.Request().Context(), event.ID,
		bson.M{"$set": bson.M{"isFulfilled": true, "updatedAt": time.Now()}}); updateErr != nil {
		utils.Logger.WithError(updateErr).Error("event fulfill failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

func getEventByID(id string, ctx iris.Context) *models.Event {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.CreateNotFound(ctx)
		return nil
	}

	var event models.Event
	findErr := storage.Events.FindOne(ctx.Request().Context(), bson.M{"_id": oid}).Decode(&event)
	if findErr == mongo.ErrNoDocuments {
		utils.CreateNotFound(ctx)
		return nil
	}
	if findErr != nil {
		utils.Logger.WithError(findErr).Error("event lookup failed")
		utils.CreateInternalServerError(ctx)
		return nil
	}
	return &event
}

// mustOwnEvent resolves the {id} event and checks the requester authored it.
func mustOwnEvent(ctx iris.Context) *models.Event {
	event := getEventByID(ctx.Params().Get("id"), ctx)
	if event == nil {
		return nil
	}
	if event.AuthorID.Hex() != ctx.Values().GetString("photographerID") {
		ctx.StatusCode(iris.StatusForbidden)
		return nil
	}
	return event
}

func parseEventDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

type CreateEventInput struct {
	Title       string  `json:"title" validate:"required,max=256"`
	Description string  `json:"description" validate:"required"`
	City        string  `json:"city" validate:"required"`
	State       string  `json:"state" validate:"required"`
	Date        string  `json:"date" validate:"required"`
	HourlyRate  float64 `json:"hourlyRate"`
}

type UpdateEventInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Date        string  `json:"date"`
	HourlyRate  float64 `json:"hourlyRate"`
}
