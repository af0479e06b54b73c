package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

type UserAccount struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	DisplayName  string             `bson:"displayName"`
	PhotoURL     string             `bson:"photoUrl,omitempty"`
	PasswordHash string             `bson:"passwordHash"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// UserRepository stores cloud accounts in the "users" collection.
type UserRepository struct {
	DB *mongo.Database
}

func (r UserRepository) collection() (*mongo.Collection, error) {
	if r.DB == nil {
		return nil, domain.InternalError{Msg: "user store has no database"}
	}
	return r.DB.Collection(usersCollection), nil
}

// EnsureIndexes makes email unique.
func (r UserRepository) EnsureIndexes(ctx context.Context) error {
	coll, err := r.collection()
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	return err
}

// FindByEmail returns domain.NotFoundError when no account matches.
func (r UserRepository) FindByEmail(ctx context.Context, email string) (UserAccount, error) {
	coll, err := r.collection()
	if err != nil {
		return UserAccount{}, err
	}

	var acc UserAccount
	err = coll.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&acc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return UserAccount{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return UserAccount{}, fmt.Errorf("find user: %w", err)
	}
	return acc, nil
}

// Create inserts acc and returns it with its id; a taken email is a conflict.
func (r UserRepository) Create(ctx context.Context, acc UserAccount) (UserAccount, error) {
	coll, err := r.collection()
	if err != nil {
		return UserAccount{}, err
	}

	acc.Email = strings.ToLower(strings.TrimSpace(acc.Email))
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = time.Now().UTC()
	}
	res, err := coll.InsertOne(ctx, acc)
	if mongo.IsDuplicateKeyError(err) {
		return UserAccount{}, domain.ConflictError{Resource: "user", Msg: "email already registered", Err: err}
	}
	if err != nil {
		return UserAccount{}, fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		acc.ID = oid
	}
	return acc, nil
}
