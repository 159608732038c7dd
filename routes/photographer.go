package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"photogigs-server/models"
	"photogigs-server/services"
	"photogigs-server/storage"
	"photogigs-server/utils"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

func favoritesStore() *services.FavoritesStore {
	return services.NewFavoritesStore(services.FavoritesStoreArgs{
		Photographers: storage.Photographers,
		Log:           utils.Logger,
	})
}

func Register(ctx iris.Context) {
	var input RegisterPhotographerInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var newPhotographer models.Photographer
	exists, existsErr := getAndHandlePhotographerExists(ctx, &newPhotographer, input.Email)
	if existsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if exists {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(input.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	now := time.Now()
	newPhotographer = models.Photographer{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Email:           strings.ToLower(input.Email),
		Password:        hashedPassword,
		SocialLogin:     false,
		Role:            "photographer",
		Regions:         []models.Region{},
		PortfolioImages: []string{},
		Availability:    []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	res, insertErr := storage.Photographers.InsertOne(ctx.Request().Context(), &newPhotographer)
	if insertErr != nil {
		utils.Logger.WithError(insertErr).Error("photographer insert failed")
		utils.CreateInternalServerError(ctx)
		return
	}
	newPhotographer.ID = res.InsertedID.(primitive.ObjectID)

	returnPhotographer(newPhotographer, ctx)
}

func Login(ctx iris.Context) {
	var input LoginPhotographerInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existing models.Photographer
	errorMsg := "Invalid email or password."
	exists, existsErr := getAndHandlePhotographerExists(ctx, &existing, input.Email)
	if existsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !exists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	if existing.SocialLogin {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Social Login Account", ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existing.Password), []byte(input.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	returnPhotographer(existing, ctx)
}

func GoogleLoginOrSignUp(ctx iris.Context) {
	var input SocialTokenInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	endpoint := "https://www.googleapis.com/userinfo/v2/me"

	client := &http.Client{}
	req, _ := http.NewRequest("GET", endpoint, nil)
	req.Header.Set("Authorization", "Bearer "+input.AccessToken)
	res, googleErr := client.Do(req)
	if googleErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	defer res.Body.Close()

	body, bodyErr := io.ReadAll(res.Body)
	if bodyErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var googleBody GoogleUserRes
	json.Unmarshal(body, &googleBody)

	if googleBody.Email == "" {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid access token.", ctx)
		return
	}

	socialLoginOrSignUp(ctx, googleBody.GivenName, googleBody.FamilyName, googleBody.Email, "Google")
}

func AppleLoginOrSignUp(ctx iris.Context) {
	var input AppleIdentityInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	res, httpErr := http.Get("https://appleid.apple.com/auth/keys")
	if httpErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	defer res.Body.Close()

	body, bodyErr := io.ReadAll(res.Body)
	if bodyErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	jwks, jwksErr := keyfunc.NewJSON(body)
	// JWKS.Keyfunc selects the key with the matching kid and returns its
	// public key as the correct Go type.
	token, tokenErr := jwt.Parse(input.IdentityToken, jwks.Keyfunc)
	if jwksErr != nil || tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !token.Valid {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid identity token.", ctx)
		return
	}

	email := fmt.Sprint(token.Claims.(jwt.MapClaims)["email"])
	if email == "" {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Token carries no email.", ctx)
		return
	}

	socialLoginOrSignUp(ctx, "", "", email, "Apple")
}

func socialLoginOrSignUp(ctx iris.Context, firstName, lastName, email, provider string) {
	var photographer models.Photographer
	exists, existsErr := getAndHandlePhotographerExists(ctx, &photographer, email)
	if existsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !exists {
		now := time.Now()
		photographer = models.Photographer{
			FirstName:       firstName,
			LastName:        lastName,
			Email:           strings.ToLower(email),
			SocialLogin:     true,
			SocialProvider:  provider,
			Role:            "photographer",
			Regions:         []models.Region{},
			PortfolioImages: []string{},
			Availability:    []string{},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		res, insertErr := storage.Photographers.InsertOne(ctx.Request().Context(), &photographer)
		if insertErr != nil {
			utils.Logger.WithError(insertErr).Error("social photographer insert failed")
			utils.CreateInternalServerError(ctx)
			return
		}
		photographer.ID = res.InsertedID.(primitive.ObjectID)

		returnPhotographer(photographer, ctx)
		return
	}

	if photographer.SocialLogin && photographer.SocialProvider == provider {
		returnPhotographer(photographer, ctx)
		return
	}

	utils.CreateEmailAlreadyRegistered(ctx)
}

func ForgotPassword(ctx iris.Context) {
	var input EmailRegisteredInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var photographer models.Photographer
	exists, existsErr := getAndHandlePhotographerExists(ctx, &photographer, input.Email)
	if existsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Always answer 200 so the endpoint cannot be used to probe registered
	// emails.
	if exists && !photographer.SocialLogin {
		resetToken, tokenErr := utils.CreateForgotPasswordToken(photographer.ID.Hex(), photographer.Email)
		if tokenErr != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		utils.Logger.WithField("photographerID", photographer.ID.Hex()).Info("password reset token issued")
		sendPasswordResetEmail(photographer.Email, resetToken)
	}

	ctx.JSON(iris.Map{"message": "If that email is registered, a reset link is on the way."})
}

// sendPasswordResetEmail hands the token to the configured mailer webhook.
// Without MAILER_WEBHOOK_URL the reset link only appears in the logs, which
// is how development works.
func sendPasswordResetEmail(email, token string) {
	webhook := os.Getenv("MAILER_WEBHOOK_URL")
	if webhook == "" {
		utils.Logger.WithField("email", email).Debug("no mailer configured, skipping reset email")
		return
	}
	payload, _ := json.Marshal(map[string]string{"email": email, "resetToken": token})
	res, err := http.Post(webhook, "application/json", strings.NewReader(string(payload)))
	if err != nil {
		utils.Logger.WithError(err).Error("reset email webhook failed")
		return
	}
	res.Body.Close()
}

func ResetPassword(ctx iris.Context) {
	var input ResetPasswordInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	claims := jsonWT.Get(ctx).(*utils.ForgotPasswordToken)
	oid, oidErr := primitive.ObjectIDFromHex(claims.ID)
	if oidErr != nil {
		utils.CreateNotFound(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(input.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	res, updateErr := storage.Photographers.UpdateByID(ctx.Request().Context(), oid,
		bson.M{"$set": bson.M{"password": hashedPassword, "updatedAt": time.Now()}})
	if updateErr != nil {
		utils.Logger.WithError(updateErr).Error("password reset failed")
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.MatchedCount == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Password updated."})
}

// GetPhotographer returns a public profile, including the resolved list of
// favorited photographers. The favorites lookup degrades to an empty list on
// storage failure rather than failing the whole fetch.
func GetPhotographer(ctx iris.Context) {
	id := ctx.Params().Get("id")

	photographer := getPhotographerByID(id, ctx)
	if photographer == nil {
		return
	}
	photographer.Password = ""

	favorites := favoritesStore().List(ctx.Request().Context(), id)

	ctx.JSON(iris.Map{
		"photographer": photographer,
		"favorites":    favorites,
	})
}

func UpdateProfile(ctx iris.Context) {
	id := ctx.Params().Get("id")

	photographer := getPhotographerByID(id, ctx)
	if photographer == nil {
		return
	}

	var input UpdateProfileInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// Saved regions are restricted to the supported set; anything the
	// matcher rejects is a validation error, not a silent drop.
	regions := make([]models.Region, 0, len(input.Regions))
	for _, r := range input.Regions {
		region, ok := services.MatchRegion(r.City, r.State)
		if !ok {
			utils.CreateError(iris.StatusBadRequest, "Validation Error",
				fmt.Sprintf("unsupported region: %s, %s", r.City, r.State), ctx)
			return
		}
		regions = append(regions, region)
	}

	update := bson.M{
		"firstName":  input.FirstName,
		"lastName":   input.LastName,
		"bio":        input.Bio,
		"gear":       input.Gear,
		"hourlyRate": input.HourlyRate,
		"avatarURL":  input.AvatarURL,
		"regions":    regions,
		"updatedAt":  time.Now(),
	}
	if input.PhoneNumber != "" {
		if !utils.ValidatePhoneNumber(input.PhoneNumber) {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid phone number", ctx)
			return
		}
		update["phoneNumber"] = utils.NormalizePhoneNumber(input.PhoneNumber)
	}

	if _, updateErr := storage.Photographers.UpdateByID(ctx.Request().Context(), photographer.ID,
		bson.M{"$set": update}); updateErr != nil {
		utils.Logger.WithError(updateErr).Error("profile update failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

func AlterPushToken(ctx iris.Context) {
	id := ctx.Params().Get("id")

	photographer := getPhotographerByID(id, ctx)
	if photographer == nil {
		return
	}

	var input AlterPushTokenInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var update bson.M
	switch input.Op {
	case "add":
		update = bson.M{"$addToSet": bson.M{"pushTokens": input.Token}}
	case "remove":
		update = bson.M{"$pull": bson.M{"pushTokens": input.Token}}
	default:
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "op must be add or remove", ctx)
		return
	}

	if _, updateErr := storage.Photographers.UpdateByID(ctx.Request().Context(), photographer.ID, update); updateErr != nil {
		utils.Logger.WithError(updateErr).Error("push token update failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

func AllowsNotifications(ctx iris.Context) {
	id := ctx.Params().Get("id")

	photographer := getPhotographerByID(id, ctx)
	if photographer == nil {
		return
	}

	var input AllowsNotificationsInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if _, updateErr := storage.Photographers.UpdateByID(ctx.Request().Context(), photographer.ID,
		bson.M{"$set": bson.M{"allowsNotifications": input.AllowsNotifications}}); updateErr != nil {
		utils.Logger.WithError(updateErr).Error("notification setting update failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

func AddPortfolioImage(ctx iris.Context) {
	id := ctx.Params().Get("id")

	photographer := getPhotographerByID(id, ctx)
	if photographer == nil {
		return
	}

	var input PortfolioImageInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	publicID := id + "-" + utils.GenerateShortToken(8)
	hostedURL, uploadErr := storage.UploadBase64Image(input.Image, publicID)
	if uploadErr != nil {
		utils.Logger.WithError(uploadErr).Error("portfolio upload failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	if _, updateErr := storage.Photographers.UpdateByID(ctx.Request().Context(), photographer.ID,
		bson.M{"$push": bson.M{"portfolioImages": hostedURL}}); updateErr != nil {
		utils.Logger.WithError(updateErr).Error("portfolio update failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"url": hostedURL})
}

func DeletePortfolioImage(ctx iris.Context) {
	id := ctx.Params().Get("id")

	photographer := getPhotographerByID(id, ctx)
	if photographer == nil {
		return
	}

	var input DeletePortfolioImageInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if deleteErr := storage.DeleteImage(input.URL); deleteErr != nil {
		utils.Logger.WithError(deleteErr).Warn("image host deletion failed, removing reference anyway")
	}

	if _, updateErr := storage.Photographers.UpdateByID(ctx.Request().Context(), photographer.ID,
		bson.M{"$pull": bson.M{"portfolioImages": input.URL}}); updateErr != nil {
		utils.Logger.WithError(updateErr).Error("portfolio removal failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

func GetAvailability(ctx iris.Context) {
	id := ctx.Params().Get("id")

	photographer := getPhotographerByID(id, ctx)
	if photographer == nil {
		return
	}

	ctx.JSON(iris.Map{"availability": photographer.Availability})
}

// SetAvailability replaces the photographer's booked dates.
func SetAvailability(ctx iris.Context) {
	id := ctx.Params().Get("id")

	photographer := getPhotographerByID(id, ctx)
	if photographer == nil {
		return
	}

	var input SetAvailabilityInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	for _, day := range input.Availability {
		if _, parseErr := time.Parse("2006-01-02", day); parseErr != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error",
				fmt.Sprintf("invalid date %q, want YYYY-MM-DD", day), ctx)
			return
		}
	}

	if _, updateErr := storage.Photographers.UpdateByID(ctx.Request().Context(), photographer.ID,
		bson.M{"$set": bson.M{"availability": input.Availability, "updatedAt": time.Now()}}); updateErr != nil {
		utils.Logger.WithError(updateErr).Error("availability update failed")
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

func getAndHandlePhotographerExists(ctx iris.Context, photographer *models.Photographer, email string) (bool, error) {
	err := storage.Photographers.FindOne(ctx.Request().Context(),
		bson.M{"email": strings.ToLower(email)}).Decode(photographer)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func hashAndSaltPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func getPhotographerByID(id string, ctx iris.Context) *models.Photographer {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.CreateNotFound(ctx)
		return nil
	}

	var photographer models.Photographer
	findErr := storage.Photographers.FindOne(ctx.Request().Context(), bson.M{"_id": oid}).Decode(&photographer)
	if findErr == mongo.ErrNoDocuments {
		utils.CreateNotFound(ctx)
		return nil
	}
	if findErr != nil {
		utils.Logger.WithError(findErr).Error("photographer lookup failed")
		utils.CreateInternalServerError(ctx)
		return nil
	}
	return &photographer
}

func returnPhotographer(photographer models.Photographer, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(photographer.ID.Hex(), photographer.Role)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":                  photographer.ID.Hex(),
		"firstName":           photographer.FirstName,
		"lastName":            photographer.LastName,
		"email":               photographer.Email,
		"phoneNumber":         photographer.PhoneNumber,
		"regions":             photographer.Regions,
		"favorites":           photographer.FavoriteIDs(),
		"allowsNotifications": photographer.AllowsNotifications,
		"accessToken":         string(tokenPair.AccessToken),
		"refreshToken":        string(tokenPair.RefreshToken),
	})
}

type RegisterPhotographerInput struct {
	FirstName string `json:"firstName" validate:"required,max=256"`
	LastName  string `json:"lastName" validate:"required,max=256"`
	Email     string `json:"email" validate:"required,max=256,email"`
	Password  string `json:"password" validate:"required,min=8,max=256"`
}

type LoginPhotographerInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SocialTokenInput struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

type AppleIdentityInput struct {
	IdentityToken string `json:"identityToken" validate:"required"`
}

type GoogleUserRes struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

type EmailRegisteredInput struct {
	Email string `json:"email" validate:"required"`
}

type ResetPasswordInput struct {
	Password string `json:"password" validate:"required,min=8,max=256"`
}

type UpdateProfileInput struct {
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	AvatarURL   string          `json:"avatarURL"`
	PhoneNumber string          `json:"phoneNumber"`
	Bio         string          `json:"bio"`
	Gear        string          `json:"gear"`
	HourlyRate  float64         `json:"hourlyRate"`
	Regions     []models.Region `json:"regions"`
}

type AlterPushTokenInput struct {
	Token string `json:"token" validate:"required"`
	Op    string `json:"op" validate:"required"`
}

type AllowsNotificationsInput struct {
	AllowsNotifications *bool `json:"allowsNotifications" validate:"required"`
}

type PortfolioImageInput struct {
	Image string `json:"image" validate:"required"`
}

type DeletePortfolioImageInput struct {
	URL string `json:"url" validate:"required"`
}

type SetAvailabilityInput struct {
	Availability []string `json:"availability" validate:"required"`
}
