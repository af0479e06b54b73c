package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"
	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const tripsCollection = "trips"

type tripDocument struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Trip models.SavedTrip   `bson:",inline"`
}

// MongoTripStore keeps trips in the "trips" collection. Ids are the hex form
// of the document ObjectID.
type MongoTripStore struct {
	DB  *mongo.Database
	Now func() time.Time
}

func (r MongoTripStore) collection() (*mongo.Collection, error) {
	if r.DB == nil {
		return nil, domain.InternalError{Msg: "trip store has no database"}
	}
	return r.DB.Collection(tripsCollection), nil
}

func (r MongoTripStore) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// EnsureIndexes creates the owner + created-at index used by ListByOwner.
func (r MongoTripStore) EnsureIndexes(ctx context.Context) error {
	coll, err := r.collection()
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("owner_created"),
	})
	if err != nil {
		return fmt.Errorf("create trips index: %w", err)
	}
	return nil
}

func (r MongoTripStore) Create(ctx context.Context, trip models.SavedTrip) (string, error) {
	coll, err := r.collection()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(trip.UserID) == "" {
		return "", domain.ValidationError{Field: "userId", Msg: "owner is required"}
	}

	trip.ID = ""
	trip.CreatedAt = r.now().UTC().Truncate(time.Millisecond)
	res, err := coll.InsertOne(ctx, tripDocument{Trip: trip})
	if err != nil {
		return "", fmt.Errorf("insert trip: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", domain.InternalError{Msg: "unexpected trip id type"}
	}
	return oid.Hex(), nil
}

func (r MongoTripStore) ListByOwner(ctx context.Context, ownerID string) ([]models.SavedTrip, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := coll.Find(ctx, bson.M{"userId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer cur.Close(ctx)

	var docs []tripDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode trips: %w", err)
	}

	out := make([]models.SavedTrip, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromDocument(d))
	}
	return out, nil
}

func (r MongoTripStore) GetByID(ctx context.Context, id string) (*models.SavedTrip, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		// ids that are not ObjectIDs cannot exist in this store
		return nil, nil
	}
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	var doc tripDocument
	err = coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get trip: %w", err)
	}
	trip := fromDocument(doc)
	return &trip, nil
}

func fromDocument(d tripDocument) models.SavedTrip {
	trip := d.Trip
	trip.ID = d.ID.Hex()
	trip.CreatedAt = trip.CreatedAt.UTC()
	ensureSlices(&trip)
	return trip
}
