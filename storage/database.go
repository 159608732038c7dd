package storage

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	DB            *mongo.Database
	Photographers *mongo.Collection
	Events        *mongo.Collection
	EventComments *mongo.Collection
	Messages      *mongo.Collection
	AuditLogs     *mongo.Collection
)

func InitializeDB() {
	// Only load .env in development (when RENDER env var is not set)
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		log.Panic("MONGODB_URI environment variable is required")
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "photogigs"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Panic("error connecting to db: " + err.Error())
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Panic("could not reach db: " + err.Error())
	}

	DB = client.Database(dbName)
	Photographers = DB.Collection("photographers")
	Events = DB.Collection("events")
	EventComments = DB.Collection("eventComments")
	Messages = DB.Collection("messages")
	AuditLogs = DB.Collection("auditLogs")

	ensureIndexes(ctx)
}

func ensureIndexes(ctx context.Context) {
	// Keyword search runs over title+description through this text index.
	_, err := Events.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}}},
		{Keys: bson.D{{Key: "location.state", Value: 1}, {Key: "location.city", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "authorID", Value: 1}}},
	})
	if err != nil {
		log.Println("Warning: could not create event indexes:", err)
	}

	_, err = Photographers.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "regions.state", Value: 1}, {Key: "regions.city", Value: 1}}},
	})
	if err != nil {
		log.Println("Warning: could not create photographer indexes:", err)
	}

	_, err = Messages.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "recipientID", Value: 1}, {Key: "lastReply", Value: -1}}},
		{Keys: bson.D{{Key: "senderID", Value: 1}, {Key: "lastReply", Value: -1}}},
	})
	if err != nil {
		log.Println("Warning: could not create message indexes:", err)
	}

	_, err = EventComments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "eventID", Value: 1}},
	})
	if err != nil {
		log.Println("Warning: could not create comment index:", err)
	}
}
