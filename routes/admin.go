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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminListPhotographers pages through all accounts, newest first. An email
// query narrows by substring match.
func AdminListPhotographers(ctx iris.Context) {
	page, limit := services.NormalizePagination(
		ctx.URLParamIntDefault("page", 1),
		ctx.URLParamIntDefault("limit", 0))

	filter := bson.M{}
	if email := ctx.URLParam("email"); email != "" {
		filter["email"] = bson.M{"$regex": email, "$options": "i"}
	}

	reqCtx := ctx.Request().Context()
	total, countErr := storage.Photographers.CountDocuments(reqCtx, filter)
	if countErr != nil {
		utils.Logger.WithError(countErr).Error("admin photographer count failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"password": 0})

	cursor, findErr := storage.Photographers.Find(reqCtx, filter, opts)
	if findErr != nil {
		utils.Logger.WithError(findErr).Error("admin photographer list failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	photographers := []models.Photographer{}
	if err := cursor.All(reqCtx, &photographers); err != nil {
		utils.Logger.WithError(err).Error("admin photographer decode failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, photographers, page, limit, total)
}

func AdminGetPhotographer(ctx iris.Context) {
	photographer := getPhotographerByID(ctx.Params().Get("id"), ctx)
	if photographer == nil {
		return
	}
	photographer.Password = ""
	ctx.JSON(photographer)
}

// AdminDeletePhotographer hard-deletes an account and soft-deletes its
// events. This is the only hard delete in the system, so the full record is
// written to the audit log first.
func AdminDeletePhotographer(ctx iris.Context) {
	photographer := getPhotographerByID(ctx.Params().Get("id"), ctx)
	if photographer == nil {
		return
	}
	photographer.Password = ""

	reqCtx := ctx.Request().Context()
	if _, deleteErr := storage.Photographers.DeleteOne(reqCtx,
		bson.M{"_id": photographer.ID}); deleteErr != nil {
		utils.Logger.WithError(deleteErr).Error("admin photographer delete failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	if _, updateErr := storage.Events.UpdateMany(reqCtx,
		bson.M{"authorID": photographer.ID},
		bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now()}}); updateErr != nil {
		utils.Logger.WithError(updateErr).Error("admin event cleanup failed")
	}

	utils.Audit(ctx, "photographer.delete", "photographer", photographer.ID.Hex(), photographer, nil)

	ctx.StatusCode(iris.StatusNoContent)
}

// AdminListEvents pages through events including soft-deleted and fulfilled
// ones, which regular search and feeds never show.
func AdminListEvents(ctx iris.Context) {
	page, limit := services.NormalizePagination(
		ctx.URLParamIntDefault("page", 1),
		ctx.URLParamIntDefault("limit", 0))

	filter := bson.M{}
	if ctx.URLParamBoolDefault("deletedOnly", false) {
		filter["isDeleted"] = true
	}
	if authorID := ctx.URLParam("authorID"); authorID != "" {
		oid, err := primitive.ObjectIDFromHex(authorID)
		if err != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid authorID", ctx)
			return
		}
		filter["authorID"] = oid
	}

	reqCtx := ctx.Request().Context()
	total, countErr := storage.Events.CountDocuments(reqCtx, filter)
	if countErr != nil {
		utils.Logger.WithError(countErr).Error("admin event count failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, findErr := storage.Events.Find(reqCtx, filter, opts)
	if findErr != nil {
		utils.Logger.WithError(findErr).Error("admin event list failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	events := []models.Event{}
	if err := cursor.All(reqCtx, &events); err != nil {
		utils.Logger.WithError(err).Error("admin event decode failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, events, page, limit, total)
}

// AdminRestoreEvent clears a soft-deleted event's flag, returning it to
// feeds and search.
func AdminRestoreEvent(ctx iris.Context) {
	event := getEventByID(ctx.Params().Get("id"), ctx)
	if event == nil {
		return
	}

	if _, updateErr := storage.Events.UpdateByID(ctx.Request().Context(), event.ID,
		bson.M{"$set": bson.M{"isDeleted": false, "updatedAt": time.Now()}}); updateErr != nil {
		utils.Logger.WithError(updateErr).Error("admin event restore failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "event.restore", "event", event.ID.Hex(), event, nil)

	ctx.StatusCode(iris.StatusNoContent)
}

// AdminListAuditLogs pages through the audit trail, newest first.
func AdminListAuditLogs(ctx iris.Context) {
	page, limit := services.NormalizePagination(
		ctx.URLParamIntDefault("page", 1),
		ctx.URLParamIntDefault("limit", 0))

	filter := bson.M{}
	if action := ctx.URLParam("action"); action != "" {
		filter["action"] = action
	}

	reqCtx := ctx.Request().Context()
	total, countErr := storage.AuditLogs.CountDocuments(reqCtx, filter)
	if countErr != nil {
		utils.Logger.WithError(countErr).Error("audit log count failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, findErr := storage.AuditLogs.Find(reqCtx, filter, opts)
	if findErr != nil {
		utils.Logger.WithError(findErr).Error("audit log list failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	logs := []models.AuditLog{}
	if err := cursor.All(reqCtx, &logs); err != nil {
		utils.Logger.WithError(err).Error("audit log decode failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, logs, page, limit, total)
}
