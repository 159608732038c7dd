package routes

import (
	"errors"

	"photogigs-server/services"
	"photogigs-server/utils"

	"github.com/kataras/iris/v12"
)

// AlterFavorites toggles a favorite. Both directions are idempotent: adding
// an existing favorite or removing an absent one succeeds without change.
func AlterFavorites(ctx iris.Context) {
	viewerID := ctx.Params().Get("id")

	var input AlterFavoritesInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	store := favoritesStore()
	reqCtx := ctx.Request().Context()

	var opErr error
	switch input.Op {
	case "add":
		opErr = store.Add(reqCtx, viewerID, input.PhotographerID)
	case "remove":
		opErr = store.Remove(reqCtx, viewerID, input.PhotographerID)
	default:
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "op must be add or remove", ctx)
		return
	}

	if opErr != nil {
		if errors.Is(opErr, services.ErrNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

// GetFavorites lists the viewer's favorited photographers.
func GetFavorites(ctx iris.Context) {
	viewerID := ctx.Params().Get("id")

	favorites := favoritesStore().List(ctx.Request().Context(), viewerID)
	ctx.JSON(iris.Map{"favorites": favorites})
}

// IsFavorite reports whether the viewer has favorited the given photographer.
func IsFavorite(ctx iris.Context) {
	viewerID := ctx.Values().GetString("photographerID")
	targetID := ctx.Params().Get("targetID")

	favorited, err := favoritesStore().IsFavorite(ctx.Request().Context(), viewerID, targetID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"favorited": favorited})
}

type AlterFavoritesInput struct {
	PhotographerID string `json:"photographerID" validate:"required"`
	Op             string `json:"op" validate:"required"`
}
