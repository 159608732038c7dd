package main

import (
	"os"

	"photogigs-server/routes"
	"photogigs-server/storage"
	"photogigs-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	// JWT verifiers
	resetTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("EMAIL_TOKEN_SECRET")))
	resetTokenVerifier.WithDefaultBlocklist()
	resetTokenVerifierMiddleware := resetTokenVerifier.Verify(func() interface{} {
		return new(utils.ForgotPasswordToken)
	})

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	photographer := app.Party("/api/photographer")
	{
		photographer.Post("/register", routes.Register)
		photographer.Post("/login", routes.Login)
		photographer.Post("/google", routes.GoogleLoginOrSignUp)
		photographer.Post("/apple", routes.AppleLoginOrSignUp)
		photographer.Post("/forgotpassword", routes.ForgotPassword)
		photographer.Post("/resetpassword", resetTokenVerifierMiddleware, routes.ResetPassword)
		photographer.Get("/search", routes.SearchPhotographers)
		photographer.Get("/{id}", routes.GetPhotographer)
		photographer.Patch("/{id}/profile", accessTokenVerifierMiddleware, utils.PhotographerIDMiddleware, routes.UpdateProfile)
		photographer.Patch("/{id}/pushtoken", accessTokenVerifierMiddleware, utils.PhotographerIDMiddleware, routes.AlterPushToken)
		photographer.Patch("/{id}/settings/notifications", accessTokenVerifierMiddleware, utils.PhotographerIDMiddleware, routes.AllowsNotifications)
		photographer.Post("/{id}/portfolio", accessTokenVerifierMiddleware, utils.PhotographerIDMiddleware, routes.AddPortfolioImage)
		photographer.Delete("/{id}/portfolio", accessTokenVerifierMiddleware, utils.PhotographerIDMiddleware, routes.DeletePortfolioImage)
		photographer.Get("/{id}/availability", routes.GetAvailability)
		photographer.Put("/{id}/availability", accessTokenVerifierMiddleware, utils.PhotographerIDMiddleware, routes.SetAvailability)
		photographer.Get("/{id}/favorites", accessTokenVerifierMiddleware, utils.PhotographerIDMiddleware, routes.GetFavorites)
		photographer.Patch("/{id}/favorites", accessTokenVerifierMiddleware, utils.PhotographerIDMiddleware, routes.AlterFavorites)
		photographer.Get("/favorites/{targetID}", accessTokenVerifierMiddleware, utils.PhotographerIDFromTokenMiddleware, routes.IsFavorite)
	}

	event := app.Party("/api/event")
	{
		event.Get("/search", routes.SearchEvents)
		event.Post("/", accessTokenVerifierMiddleware, utils.PhotographerIDFromTokenMiddleware, routes.CreateEvent)
		event.Get("/{id}", routes.GetEvent)
		event.Patch("/{id}", accessTokenVerifierMiddleware, utils.PhotographerIDFromTokenMiddleware, routes.UpdateEvent)
		event.Delete("/{id}", accessTokenVerifierMiddleware, utils.PhotographerIDFromTokenMiddleware, routes.DeleteEvent)
		event.Post("/{id}/fulfill", accessTokenVerifierMiddleware, utils.PhotographerIDFromTokenMiddleware, routes.FulfillEvent)
		event.Post("/{id}/comment", accessTokenVerifierMiddleware, utils.PhotographerIDFromTokenMiddleware, routes.CreateComment)
		event.Get("/{id}/comments", routes.GetEventComments)
		event.Delete("/{id}/comment/{commentID}", accessTokenVerifierMiddleware, utils.PhotographerIDFromTokenMiddleware, routes.DeleteComment)
	}

	feed := app.Party("/api/feed")
	{
		feed.Get("/", accessTokenVerifierMiddleware, utils.PhotographerIDFromTokenMiddleware, routes.GetFeed)
		feed.Get("/author/{id}", routes.GetAuthorFeed)
	}

	messages := app.Party("/api/messages", accessTokenVerifierMiddleware, utils.PhotographerIDFromTokenMiddleware)
	{
		messages.Post("/", routes.CreateMessage)
		messages.Get("/", routes.GetInbox)
		messages.Get("/{id}", routes.GetThread)
		messages.Post("/{id}/reply", routes.ReplyMessage)
		messages.Post("/{id}/read", routes.MarkMessageRead)
	}

	regions := app.Party("/api/regions")
	{
		regions.Get("/", routes.GetSupportedRegions)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/photographers", routes.AdminListPhotographers)
		admin.Get("/photographers/{id}", routes.AdminGetPhotographer)
		admin.Delete("/photographers/{id}", routes.AdminDeletePhotographer)
		admin.Get("/events", routes.AdminListEvents)
		admin.Post("/events/{id}/restore", routes.AdminRestoreEvent)
		admin.Get("/audit", routes.AdminListAuditLogs)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	utils.Logger.WithField("addr", addr).Info("starting server")

	if err := app.Listen(addr); err != nil {
		utils.Logger.WithError(err).Fatal("server failed")
	}
}
