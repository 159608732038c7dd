package utils

import (
	"encoding/json"
	"net"
	"time"

	"photogigs-server/models"
	"photogigs-server/storage"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit records an admin action. Failures are logged, never surfaced: an
// audit write must not fail the operation it describes.
func Audit(ctx iris.Context, action, resourceType, resourceID string, before interface{}, after interface{}) {
	var beforeStr, afterStr string
	if before != nil {
		if b, err := json.Marshal(before); err == nil {
			beforeStr = string(b)
		}
	}
	if after != nil {
		if a, err := json.Marshal(after); err == nil {
			afterStr = string(a)
		}
	}
	var adminID primitive.ObjectID
	if tok := jsonWT.Get(ctx); tok != nil {
		if at, ok := tok.(*AccessToken); ok {
			if oid, err := primitive.ObjectIDFromHex(at.ID); err == nil {
				adminID = oid
			}
		}
	}
	entry := models.AuditLog{
		AdminID:      adminID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		BeforeJSON:   beforeStr,
		AfterJSON:    afterStr,
		IPAddress:    clientIP(ctx),
		CreatedAt:    time.Now(),
	}
	if _, err := storage.AuditLogs.InsertOne(ctx.Request().Context(), entry); err != nil {
		Logger.WithError(err).WithField("action", action).Error("failed to write audit log")
	}
}

func clientIP(ctx iris.Context) string {
	if ip := ctx.GetHeader("X-Forwarded-For"); ip != "" {
		return ip
	}
	ip, _, _ := net.SplitHostPort(ctx.RemoteAddr())
	return ip
}
