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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateMessage starts a thread by sending an event proposal to another
// photographer. The proposal details ride on the root message itself so the
// inbox can render without extra lookups.
func CreateMessage(ctx iris.Context) {
	senderID := ctx.Values().GetString("photographerID")
	senderOID, oidErr := primitive.ObjectIDFromHex(senderID)
	if oidErr != nil {
		utils.CreateUnauthorized(ctx)
		return
	}

	var input CreateMessageInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	recipient := getPhotographerByID(input.RecipientID, ctx)
	if recipient == nil {
		return
	}
	if recipient.ID == senderOID {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"cannot message yourself", ctx)
		return
	}

	region, ok := services.MatchRegion(input.EventCity, input.EventState)
	if !ok {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			fmt.Sprintf("unsupported region: %s, %s", input.EventCity, input.EventState), ctx)
		return
	}

	date, dateErr := parseEventDate(input.EventDate)
	if dateErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", dateErr.Error(), ctx)
		return
	}

	now := time.Now()
	message := models.Message{
		SenderID:          senderOID,
		RecipientID:       recipient.ID,
		Body:              input.Body,
		EventTitle:        input.EventTitle,
		EventType:         input.EventType,
		EventLocation:     region,
		EventDescription:  input.EventDescription,
		EventDate:         date,
		Replies:           []primitive.ObjectID{},
		LastReply:         now,
		UnreadByRecipient: true,
		CreatedAt:         now,
	}

	reqCtx := ctx.Request().Context()
	res, insertErr := storage.Messages.InsertOne(reqCtx, &message)
	if insertErr != nil {
		utils.Logger.WithError(insertErr).Error("message insert failed")
		utils.CreateInternalServerError(ctx)
		return
	}
	message.ID = res.InsertedID.(primitive.ObjectID)

	notificationService().NotifyPhotographer(reqCtx, recipient.ID,
		"New message", message.EventTitle,
		map[string]string{"type": "message", "messageID": message.ID.Hex()})

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(message)
}

// ReplyMessage appends a reply to a thread. The root's reply list, lastReply
// stamp and the other side's unread flag move in one atomic update.
func ReplyMessage(ctx iris.Context) {
	senderID := ctx.Values().GetString("photographerID")
	senderOID, oidErr := primitive.ObjectIDFromHex(senderID)
	if oidErr != nil {
		utils.CreateUnauthorized(ctx)
		return
	}

	root := getRootMessage(ctx.Params().Get("id"), ctx)
	if root == nil {
		return
	}
	if root.SenderID != senderOID && root.RecipientID != senderOID {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	var input ReplyMessageInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	recipientOID := root.SenderID
	unreadField := "unreadBySender"
	if senderOID == root.SenderID {
		recipientOID = root.RecipientID
		unreadField = "unreadByRecipient"
	}

	now := time.Now()
	rootID := root.ID
	reply := models.Message{
		SenderID:    senderOID,
		RecipientID: recipientOID,
		Body:        input.Body,
		ReplyTo:     &rootID,
		Replies:     []primitive.ObjectID{},
		CreatedAt:   now,
	}

	reqCtx := ctx.Request().Context()
	res, insertErr := storage.Messages.InsertOne(reqCtx, &reply)
	if insertErr != nil {
		utils.Logger.WithError(insertErr).Error("reply insert failed")
		utils.CreateInternalServerError(ctx)
		return
	}
	reply.ID = res.InsertedID.(primitive.ObjectID)

	if _, updateErr := storage.Messages.UpdateByID(reqCtx, root.ID, bson.M{
		"$push": bson.M{"replies": reply.ID},
		"$set":  bson.M{"lastReply": now, unreadField: true},
	}); updateErr != nil {
		utils.Logger.WithError(updateErr).Error("reply link failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	notificationService().NotifyPhotographer(reqCtx, recipientOID,
		"New reply", root.EventTitle,
		map[string]string{"type": "message", "messageID": root.ID.Hex()})

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(reply)
}

// GetInbox lists the viewer's thread roots, most recently active first.
func GetInbox(ctx iris.Context) {
	viewerID := ctx.Values().GetString("photographerID")
	viewerOID, oidErr := primitive.ObjectIDFromHex(viewerID)
	if oidErr != nil {
		utils.CreateUnauthorized(ctx)
		return
	}

	page, limit := services.NormalizePagination(
		ctx.URLParamIntDefault("page", 1),
		ctx.URLParamIntDefault("limit", 0))

	filter := bson.M{
		"replyTo": bson.M{"$exists": false},
		"$or": []bson.M{
			{"senderID": viewerOID},
			{"recipientID": viewerOID},
		},
	}

	reqCtx := ctx.Request().Context()
	total, countErr := storage.Messages.CountDocuments(reqCtx, filter)
	if countErr != nil {
		utils.Logger.WithError(countErr).Error("inbox count failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "lastReply", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, findErr := storage.Messages.Find(reqCtx, filter, opts)
	if findErr != nil {
		utils.Logger.WithError(findErr).Error("inbox fetch failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	messages := []models.Message{}
	if err := cursor.All(reqCtx, &messages); err != nil {
		utils.Logger.WithError(err).Error("inbox decode failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, messages, page, limit, total)
}

// GetThread returns a root message with its replies in send order.
func GetThread(ctx iris.Context) {
	viewerID := ctx.Values().GetString("photographerID")

	root := getRootMessage(ctx.Params().Get("id"), ctx)
	if root == nil {
		return
	}
	if root.SenderID.Hex() != viewerID && root.RecipientID.Hex() != viewerID {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	reqCtx := ctx.Request().Context()
	replies := []models.Message{}
	cursor, findErr := storage.Messages.Find(reqCtx,
		bson.M{"replyTo": root.ID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if findErr != nil {
		utils.Logger.WithError(findErr).Error("thread fetch failed")
		utils.CreateInternalServerError(ctx)
		return
	}
	if err := cursor.All(reqCtx, &replies); err != nil {
		utils.Logger.WithError(err).Error("thread decode failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"message": root,
		"replies": replies,
	})
}

// MarkMessageRead clears the viewer's unread flag on a thread root.
func MarkMessageRead(ctx iris.Context) {
	viewerID := ctx.Values().GetString("photographerID")

	root := getRootMessage(ctx.Params().Get("id"), ctx)
	if root == nil {
		return
	}

	var unreadField string
	switch viewerID {
	case root.SenderID.Hex():
		unreadField = "unreadBySender"
	case root.RecipientID.Hex():
		unreadField = "unreadByRecipient"
	default:
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	if _, updateErr := storage.Messages.UpdateByID(ctx.Request().Context(), root.ID,
		bson.M{"$set": bson.M{unreadField: false}}); updateErr != nil {
		utils.Logger.WithError(updateErr).Error("message read update failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

// getRootMessage resolves a message id and rejects replies, which are only
// reachable through their thread.
func getRootMessage(id string, ctx iris.Context) *models.Message {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.CreateNotFound(ctx)
		return nil
	}

	var message models.Message
	findErr := storage.Messages.FindOne(ctx.Request().Context(), bson.M{"_id": oid}).Decode(&message)
	if findErr == mongo.ErrNoDocuments {
		utils.CreateNotFound(ctx)
		return nil
	}
	if findErr != nil {
		utils.Logger.WithError(findErr).Error("message lookup failed")
		utils.CreateInternalServerError(ctx)
		return nil
	}
	if message.ReplyTo != nil {
		utils.CreateNotFound(ctx)
		return nil
	}
	return &message
}

type CreateMessageInput struct {
	RecipientID      string `json:"recipientID" validate:"required"`
	Body             string `json:"body" validate:"required,max=4096"`
	EventTitle       string `json:"eventTitle" validate:"required,max=256"`
	EventType        string `json:"eventType" validate:"required"`
	EventCity        string `json:"eventCity" validate:"required"`
	EventState       string `json:"eventState" validate:"required"`
	EventDescription string `json:"eventDescription"`
	EventDate        string `json:"eventDate" validate:"required"`
}

type ReplyMessageInput struct {
	Body string `json:"body" validate:"required,max=4096"`
}
