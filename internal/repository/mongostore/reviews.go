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

type reviewDoc struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	MovieID    bson.ObjectID `bson:"movieId"`
	Username   string        `bson:"username"`
	Rating     float64       `bson:"rating"`
	ReviewText string        `bson:"reviewText"`
	CreatedAt  time.Time     `bson:"createdAt"`
}

func (d reviewDoc) model() models.Review {
	return models.Review{
		ID:         d.ID.Hex(),
		MovieID:    d.MovieID.Hex(),
		Username:   d.Username,
		Rating:     d.Rating,
		ReviewText: d.ReviewText,
		CreatedAt:  d.CreatedAt,
	}
}

// ReviewStore implements repository.ReviewRepository.
type ReviewStore struct {
	coll *mongo.Collection
}

// NewReviewStore creates a new ReviewStore.
func NewReviewStore(db *mongo.Database) *ReviewStore {
	return &ReviewStore{coll: db.Collection(database.ReviewsCollection)}
}

func (s *ReviewStore) find(ctx context.Context, filter any) ([]models.Review, error) {
	cur, err := s.coll.Find(ctx, filter, insertionOrder)
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[reviewDoc](ctx, cur)
	if err != nil {
		return nil, err
	}
	reviews := make([]models.Review, 0, len(docs))
	for _, d := range docs {
		reviews = append(reviews, d.model())
	}
	return reviews, nil
}

// Create inserts a review.
func (s *ReviewStore) Create(ctx context.Context, review models.Review) (models.Review, error) {
	movieID, err := bson.ObjectIDFromHex(review.MovieID)
	if err != nil {
		return models.Review{}, fmt.Errorf("movie id %q: %w", review.MovieID, err)
	}
	doc := reviewDoc{
		ID:         bson.NewObjectID(),
		MovieID:    movieID,
		Username:   review.Username,
		Rating:     review.Rating,
		ReviewText: review.ReviewText,
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return models.Review{}, fmt.Errorf("insert review: %w", translate(err))
	}
	return doc.model(), nil
}

// List returns every review in insertion order.
func (s *ReviewStore) List(ctx context.Context) ([]models.Review, error) {
	return s.find(ctx, bson.D{})
}

// ListByMovieIDs returns the reviews referencing any of movieIDs.
// Ids that are not valid ObjectIDs cannot be referenced and are skipped.
func (s *ReviewStore) ListByMovieIDs(ctx context.Context, movieIDs ...string) ([]models.Review, error) {
	filter, ok := movieIDsFilter(movieIDs)
	if !ok {
		return []models.Review{}, nil
	}
	return s.find(ctx, filter)
}

// movieIDsFilter matches reviews of the given movies. ok is false when no id is usable.
func movieIDsFilter(movieIDs []string) (filter bson.M, ok bool) {
	oids := make(bson.A, 0, len(movieIDs))
	for _, id := range movieIDs {
		if oid, err := bson.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, false
	}
	return bson.M{"movieId": bson.M{"$in": oids}}, true
}
