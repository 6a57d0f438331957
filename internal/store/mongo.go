package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ibraheembello/Restaurant-Chatbot/internal/models"
)

const (
	menuCollection    = "menuitems"
	orderCollection   = "orders"
	sessionCollection = "sessions"
)

type MongoMenuStore struct {
	db *mongo.Database
}

func NewMongoMenuStore(db *mongo.Database) *MongoMenuStore {
	return &MongoMenuStore{db: db}
}

func (s *MongoMenuStore) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "category", Value: 1},
		{Key: "itemNumber", Value: 1},
	})

	cursor, err := s.db.Collection(menuCollection).Find(ctx, bson.M{"available": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MongoMenuStore) FindByNumber(ctx context.Context, itemNumber int) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.Collection(menuCollection).FindOne(
		ctx,
		bson.M{"itemNumber": itemNumber, "available": true},
	).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

type MongoOrderStore struct {
	db *mongo.Database
}

func NewMongoOrderStore(db *mongo.Database) *MongoOrderStore {
	return &MongoOrderStore{db: db}
}

func (s *MongoOrderStore) Insert(ctx context.Context, order *models.Order) error {
	res, err := s.db.Collection(orderCollection).InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

func (s *MongoOrderStore) Update(ctx context.Context, order *models.Order) error {
	res, err := s.db.Collection(orderCollection).UpdateByID(ctx, order.ID, orderUpdateDoc(order))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// orderUpdateDoc builds the update for order mutations. An empty payment
// reference is unset rather than written: the paymentReference_unique partial
// index matches any existing value, empty string included, so writing "" on
// two orders would collide.
func orderUpdateDoc(order *models.Order) bson.M {
	updateSet := bson.M{
		"items":       order.Items,
		"totalAmount": order.TotalAmount,
		"status":      order.Status,
		"updatedAt":   order.UpdatedAt,
	}
	updateUnset := bson.M{}

	if order.ScheduledFor != nil {
		updateSet["scheduledFor"] = order.ScheduledFor
	} else {
		updateUnset["scheduledFor"] = ""
	}
	if order.PaymentReference != "" {
		updateSet["paymentReference"] = order.PaymentReference
	} else {
		updateUnset["paymentReference"] = ""
	}

	update := bson.M{"$set": updateSet}
	if len(updateUnset) > 0 {
		update["$unset"] = updateUnset
	}
	return update
}

func (s *MongoOrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return s.findOne(ctx, bson.M{"_id": id}, nil)
}

func (s *MongoOrderStore) FindPending(ctx context.Context, sessionID string) (*models.Order, error) {
	return s.findOne(ctx, bson.M{
		"sessionId": sessionID,
		"status":    models.OrderStatusPending,
	}, nil)
}

func (s *MongoOrderStore) FindMostRecentPlaced(ctx context.Context, sessionID string) (*models.Order, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.findOne(ctx, bson.M{
		"sessionId": sessionID,
		"status":    models.OrderStatusPlaced,
	}, opts)
}

func (s *MongoOrderStore) FindBySessionAndStatuses(ctx context.Context, sessionID string, statuses []string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.db.Collection(orderCollection).Find(ctx, bson.M{
		"sessionId": sessionID,
		"status":    bson.M{"$in": statuses},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *MongoOrderStore) FindByPaymentReference(ctx context.Context, reference string) (*models.Order, error) {
	return s.findOne(ctx, bson.M{"paymentReference": reference}, nil)
}

func (s *MongoOrderStore) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*models.Order, error) {
	var order models.Order
	var err error
	if opts != nil {
		err = s.db.Collection(orderCollection).FindOne(ctx, filter, opts).Decode(&order)
	} else {
		err = s.db.Collection(orderCollection).FindOne(ctx, filter).Decode(&order)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

type MongoSessionStore struct {
	db *mongo.Database
}

func NewMongoSessionStore(db *mongo.Database) *MongoSessionStore {
	return &MongoSessionStore{db: db}
}

// GetOrCreate upserts by sessionId so concurrent first contacts for the same
// visitor cannot create duplicates; the unique index backs this up.
func (s *MongoSessionStore) GetOrCreate(ctx context.Context, sessionID string) (*models.Session, error) {
	now := time.Now()
	filter := bson.M{"sessionId": sessionID}
	update := bson.M{"$setOnInsert": bson.M{
		"sessionId": sessionID,
		"state":     models.StateIdle,
		"createdAt": now,
		"updatedAt": now,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var session models.Session
	err := s.db.Collection(sessionCollection).
		FindOneAndUpdate(ctx, filter, update, opts).
		Decode(&session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *MongoSessionStore) SetState(ctx context.Context, sessionID, state string) error {
	_, err := s.db.Collection(sessionCollection).UpdateOne(
		ctx,
		bson.M{"sessionId": sessionID},
		bson.M{"$set": bson.M{"state": state, "updatedAt": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *MongoSessionStore) SetCurrentOrder(ctx context.Context, sessionID string, orderID *primitive.ObjectID) error {
	_, err := s.db.Collection(sessionCollection).UpdateOne(
		ctx,
		bson.M{"sessionId": sessionID},
		bson.M{"$set": bson.M{"currentOrder": orderID, "updatedAt": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}
