package routes

import (
	"errors"

	"photogigs-server/services"
	"photogigs-server/storage"
	"photogigs-server/utils"

	"github.com/kataras/iris/v12"
)

// SearchPhotographers handles photographer search with multiple filters.
// With no filters at all it answers an empty page instead of scanning the
// whole collection.
func SearchPhotographers(ctx iris.Context) {
	input := services.PhotographerSearchInput{
		Name:         ctx.URLParam("name"),
		City:         ctx.URLParam("city"),
		State:        ctx.URLParam("state"),
		Availability: ctx.URLParam("availability"),
		Gear:         ctx.URLParam("gear"),
		MinRate:      ctx.URLParamFloat64Default("minRate", 0),
		MaxRate:      ctx.URLParamFloat64Default("maxRate", 0),
		Rating:       ctx.URLParamFloat64Default("rating", 0),
		Page:         ctx.URLParamIntDefault("page", 1),
		Limit:        ctx.URLParamIntDefault("limit", 0),
	}

	svc := services.NewPhotographerSearch(services.PhotographerSearchArgs{
		Photographers: storage.Photographers,
		Log:           utils.Logger,
	})

	result, err := svc.Search(ctx.Request().Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", err.Error(), ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(result)
}
