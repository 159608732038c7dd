package routes

import (
	"errors"

	"photogigs-server/services"
	"photogigs-server/storage"
	"photogigs-server/utils"

	"github.com/kataras/iris/v12"
)

func feedService() *services.Feed {
	return services.NewFeed(services.FeedArgs{
		Events:        storage.Events,
		Photographers: storage.Photographers,
		Log:           utils.Logger,
	})
}

// GetFeed returns the viewer's region-scoped feed with favorited
// photographers' events promoted on each page. allRegions=true lifts the
// region restriction (and with it the favorites boost).
func GetFeed(ctx iris.Context) {
	viewerID := ctx.Values().GetString("photographerID")
	if viewerID == "" {
		utils.CreateUnauthorized(ctx)
		return
	}

	input := services.FeedInput{
		ViewerID:          viewerID,
		Page:              ctx.URLParamIntDefault("page", 1),
		Limit:             ctx.URLParamIntDefault("limit", 0),
		RestrictToRegions: !ctx.URLParamBoolDefault("allRegions", false),
	}

	result, err := feedService().Page(ctx.Request().Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(result)
}

// GetAuthorFeed lists one photographer's own events, no region scoping.
func GetAuthorFeed(ctx iris.Context) {
	authorID := ctx.Params().Get("id")

	result, err := feedService().AuthorFeed(ctx.Request().Context(), authorID,
		ctx.URLParamIntDefault("page", 1),
		ctx.URLParamIntDefault("limit", 0))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(result)
}
