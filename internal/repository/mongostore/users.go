package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/isdelr/reelreview-be/internal/database"
	"github.com/isdelr/reelreview-be/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type userDoc struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name,omitempty"`
	Username     string        `bson:"username"`
	PasswordHash string        `bson:"passwordHash"`
	CreatedAt    time.Time     `bson:"createdAt"`
}

func (d userDoc) model() models.User {
	return models.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

// UserStore implements repository.UserRepository.
type UserStore struct {
	coll *mongo.Collection
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection(database.UsersCollection)}
}

// Create inserts a user. The unique index on username rejects duplicates.
func (s *UserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	doc := userDoc{
		ID:           bson.NewObjectID(),
		Name:         user.Name,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", translate(err))
	}
	return doc.model(), nil
}

// FindByUsername retrieves a user, including the password hash.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var doc userDoc
	if err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		return models.User{}, translate(err)
	}
	return doc.model(), nil
}

// FindByID retrieves a single user by id.
func (s *UserStore) FindByID(ctx context.Context, id string) (models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.User{}, err
	}
	var doc userDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return models.User{}, translate(err)
	}
	return doc.model(), nil
}
