package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureMenuIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("menuitems").Indexes()

	itemNumberIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "itemNumber", Value: 1}},
		Options: options.Index().
			SetName("itemNumber_unique").
			SetUnique(true),
	}

	log.Println("EnsureMenuIndexes: creating itemNumber_unique index")
	_, err := indexes.CreateOne(ctx, itemNumberIndex)
	if err != nil {
		log.Println("EnsureMenuIndexes: itemNumber index error:", err)
		return err
	}
	log.Println("EnsureMenuIndexes: itemNumber_unique index created")
	return nil
}

// EnsureSessionIndexes backs the idempotency of session getOrCreate: two
// concurrent first contacts for the same visitor cannot both insert.
func EnsureSessionIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("sessions").Indexes()

	sessionIDIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "sessionId", Value: 1}},
		Options: options.Index().
			SetName("sessionId_unique").
			SetUnique(true),
	}

	log.Println("EnsureSessionIndexes: creating sessionId_unique index")
	_, err := indexes.CreateOne(ctx, sessionIDIndex)
	if err != nil {
		log.Println("EnsureSessionIndexes: sessionId index error:", err)
		return err
	}
	log.Println("EnsureSessionIndexes: sessionId_unique index created")
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	sessionIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "sessionId", Value: 1}},
		Options: options.Index().SetName("sessionId_index"),
	}

	referenceIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "paymentReference", Value: 1}},
		Options: options.Index().
			SetName("paymentReference_unique").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"paymentReference": bson.M{
					"$exists": true,
				},
			}),
	}

	log.Println("EnsureOrderIndexes: creating sessionId_index index")
	if _, err := indexes.CreateOne(ctx, sessionIDIndex); err != nil {
		log.Println("EnsureOrderIndexes: sessionId index error:", err)
		return err
	}

	log.Println("EnsureOrderIndexes: creating paymentReference_unique index")
	if _, err := indexes.CreateOne(ctx, referenceIndex); err != nil {
		log.Println("EnsureOrderIndexes: paymentReference index error:", err)
		return err
	}
	log.Println("EnsureOrderIndexes: order indexes created")
	return nil
}
