package routes

import (
	"time"

	"photogigs-server/models"
	"photogigs-server/services"
	"photogigs-server/storage"
	"photogigs-server/utils"

	"github.com/kataras/iris/v12"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func notificationService() *services.NotificationService {
	return services.NewNotificationService(services.NotificationServiceArgs{
		Photographers: storage.Photographers,
		Log:           utils.Logger,
	})
}

// CreateComment inserts the comment and appends its id to the parent event
// with a single $push, so concurrent commenters cannot lose each other's
// entries.
func CreateComment(ctx iris.Context) {
	authorID := ctx.Values().GetString("photographerID")
	authorOID, oidErr := primitive.ObjectIDFromHex(authorID)
	if oidErr != nil {
		utils.CreateUnauthorized(ctx)
		return
	}

	event := getEventByID(ctx.Params().Get("id"), ctx)
	if event == nil {
		return
	}
	if event.IsDeleted {
		utils.CreateNotFound(ctx)
		return
	}

	var input CreateCommentInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	now := time.Now()
	comment := models.EventComment{
		EventID:   event.ID,
		AuthorID:  authorOID,
		Text:      input.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	reqCtx := ctx.Request().Context()
	res, insertErr := storage.EventComments.InsertOne(reqCtx, &comment)
	if insertErr != nil {
		utils.Logger.WithError(insertErr).Error("comment insert failed")
		utils.CreateInternalServerError(ctx)
		return
	}
	comment.ID = res.InsertedID.(primitive.ObjectID)

	if _, pushErr := storage.Events.UpdateByID(reqCtx, event.ID,
		bson.M{"$push": bson.M{"comments": comment.ID}}); pushErr != nil {
		utils.Logger.WithError(pushErr).Error("comment link failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	if event.AuthorID != authorOID {
		// A failed push must not fail the comment.
		notificationService().NotifyPhotographer(reqCtx, event.AuthorID,
			"New comment", "Someone commented on "+event.Title,
			map[string]string{"type": "comment", "eventID": event.ID.Hex()})
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(comment)
}

// GetEventComments lists an event's live comments, oldest first.
func GetEventComments(ctx iris.Context) {
	event := getEventByID(ctx.Params().Get("id"), ctx)
	if event == nil {
		return
	}
	if event.IsDeleted {
		utils.CreateNotFound(ctx)
		return
	}

	reqCtx := ctx.Request().Context()
	cursor, findErr := storage.EventComments.Find(reqCtx,
		bson.M{"eventID": event.ID, "isDeleted": false},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if findErr != nil {
		utils.Logger.WithError(findErr).Error("comment fetch failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	comments := []models.EventComment{}
	if err := cursor.All(reqCtx, &comments); err != nil {
		utils.Logger.WithError(err).Error("comment decode failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"comments": comments})
}

// DeleteComment soft-deletes a comment and pulls its id from the parent
// event, keeping the event's comment list equal to its live comments.
func DeleteComment(ctx iris.Context) {
	viewerID := ctx.Values().GetString("photographerID")

	commentOID, oidErr := primitive.ObjectIDFromHex(ctx.Params().Get("commentID"))
	if oidErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	reqCtx := ctx.Request().Context()
	var comment models.EventComment
	findErr := storage.EventComments.FindOne(reqCtx, bson.M{"_id": commentOID}).Decode(&comment)
	if findErr == mongo.ErrNoDocuments {
		utils.CreateNotFound(ctx)
		return
	}
	if findErr != nil {
		utils.Logger.WithError(findErr).Error("comment lookup failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	var event models.Event
	if err := storage.Events.FindOne(reqCtx, bson.M{"_id": comment.EventID}).Decode(&event); err != nil {
		utils.Logger.WithError(err).Error("comment event lookup failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	// Only the comment author or the event owner may remove it.
	if comment.AuthorID.Hex() != viewerID && event.AuthorID.Hex() != viewerID {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	if _, updateErr := storage.EventComments.UpdateByID(reqCtx, comment.ID,
		bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now()}}); updateErr != nil {
		utils.Logger.WithError(updateErr).Error("comment soft delete failed")
		utils.CreateInternalServerError(ctx)
		return
	}
	if _, pullErr := storage.Events.UpdateByID(reqCtx, event.ID,
		bson.M{"$pull": bson.M{"comments": comment.ID}}); pullErr != nil {
		utils.Logger.WithError(pullErr).Error("comment unlink failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

type CreateCommentInput struct {
	Text string `json:"text" validate:"required,max=2048"`
}
