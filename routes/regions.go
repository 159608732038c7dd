package routes

import (
	"photogigs-server/services"

	"github.com/kataras/iris/v12"
)

// GetSupportedRegions returns every city/state pair the platform operates in.
func GetSupportedRegions(ctx iris.Context) {
	ctx.JSON(iris.Map{"regions": services.SupportedRegions()})
}
