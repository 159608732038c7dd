package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"photogigs-server/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const expoPushURL = "https://exp.host/--/api/v2/push/send"

// NotificationService sends Expo push notifications. All sends are
// request-triggered; there is no queue or retry.
type NotificationService struct {
	photographers *mongo.Collection
	log           *logrus.Logger
}

// NotificationServiceArgs are the mandatory arguments for a NotificationService.
type NotificationServiceArgs struct {
	Photographers *mongo.Collection
	Log           *logrus.Logger
}

func NewNotificationService(args NotificationServiceArgs) *NotificationService {
	return &NotificationService{photographers: args.Photographers, log: args.Log}
}

type expoPushMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
	Sound string            `json:"sound"`
}

// NotifyPhotographer pushes to every registered device of the recipient.
// Recipients who opted out or have no tokens are skipped silently; a delivery
// failure is logged and returned but callers generally ignore it, since a
// failed push must not fail the request that triggered it.
func (ns *NotificationService) NotifyPhotographer(ctx context.Context, photographerID primitive.ObjectID, title, body string, data map[string]string) error {
	var recipient models.Photographer
	if err := ns.photographers.FindOne(ctx, bson.M{"_id": photographerID}).Decode(&recipient); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return fmt.Errorf("loading notification recipient: %w", err)
	}

	if recipient.AllowsNotifications == nil || !*recipient.AllowsNotifications || len(recipient.PushTokens) == 0 {
		return nil
	}

	messages := make([]expoPushMessage, 0, len(recipient.PushTokens))
	for _, token := range recipient.PushTokens {
		messages = append(messages, expoPushMessage{
			To:    token,
			Title: title,
			Body:  body,
			Data:  data,
			Sound: "default",
		})
	}

	payload, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encoding push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", expoPushURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		ns.log.WithError(err).WithField("op", "notifications.send").Error("push delivery failed")
		return fmt.Errorf("sending push: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		ns.log.WithFields(logrus.Fields{
			"op":     "notifications.send",
			"status": res.StatusCode,
		}).Error("push rejected by expo")
		return fmt.Errorf("expo push failed with status %d", res.StatusCode)
	}
	return nil
}
