package routes

import (
	"errors"

	"photogigs-server/services"
	"photogigs-server/storage"
	"photogigs-server/utils"

	"github.com/kataras/iris/v12"
)

// SearchEvents handles event search with keyword, location, rate and date
// filters. Soft-deleted and fulfilled events never show up.
func SearchEvents(ctx iris.Context) {
	input := services.EventSearchInput{
		Keyword: ctx.URLParam("keyword"),
		City:    ctx.URLParam("city"),
		State:   ctx.URLParam("state"),
		MinRate: ctx.URLParamFloat64Default("minRate", 0),
		MaxRate: ctx.URLParamFloat64Default("maxRate", 0),
		Date:    ctx.URLParam("date"),
		Page:    ctx.URLParamIntDefault("page", 1),
		Limit:   ctx.URLParamIntDefault("limit", 0),
	}

	svc := services.NewEventSearch(services.EventSearchArgs{
		Events: storage.Events,
		Log:    utils.Logger,
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
