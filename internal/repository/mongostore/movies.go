package mongostore

import (
	"context"
	"fmt"
	"regexp"

	"github.com/isdelr/reelreview-be/internal/database"
	"github.com/isdelr/reelreview-be/internal/models"
	"github.com/isdelr/reelreview-be/internal/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type actorDoc struct {
	ActorName     string `bson:"actorName"`
	CharacterName string `bson:"characterName"`
}

type movieDoc struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	ReleaseYear int           `bson:"releaseYear"`
	Genre       string        `bson:"genre"`
	Actors      []actorDoc    `bson:"actors"`
	ImageURL    string        `bson:"imageUrl,omitempty"`
}

func newMovieDoc(m models.Movie) movieDoc {
	doc := movieDoc{
		Title:       m.Title,
		ReleaseYear: m.ReleaseYear,
		Genre:       string(m.Genre),
		Actors:      make([]actorDoc, 0, len(m.Actors)),
		ImageURL:    m.ImageURL,
	}
	for _, a := range m.Actors {
		doc.Actors = append(doc.Actors, actorDoc{ActorName: a.ActorName, CharacterName: a.CharacterName})
	}
	return doc
}

func (d movieDoc) model() models.Movie {
	m := models.Movie{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		ReleaseYear: d.ReleaseYear,
		Genre:       models.Genre(d.Genre),
		Actors:      make([]models.Actor, 0, len(d.Actors)),
		ImageURL:    d.ImageURL,
	}
	for _, a := range d.Actors {
		m.Actors = append(m.Actors, models.Actor{ActorName: a.ActorName, CharacterName: a.CharacterName})
	}
	return m
}

// MovieStore implements repository.MovieRepository.
type MovieStore struct {
	coll *mongo.Collection
}

// NewMovieStore creates a new MovieStore.
func NewMovieStore(db *mongo.Database) *MovieStore {
	return &MovieStore{coll: db.Collection(database.MoviesCollection)}
}

func (s *MovieStore) find(ctx context.Context, filter any) ([]models.Movie, error) {
	cur, err := s.coll.Find(ctx, filter, insertionOrder)
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[movieDoc](ctx, cur)
	if err != nil {
		return nil, err
	}
	movies := make([]models.Movie, 0, len(docs))
	for _, d := range docs {
		movies = append(movies, d.model())
	}
	return movies, nil
}

func (s *MovieStore) findOne(ctx context.Context, filter any) (models.Movie, error) {
	var doc movieDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return models.Movie{}, translate(err)
	}
	return doc.model(), nil
}

// List returns all movies in insertion order.
func (s *MovieStore) List(ctx context.Context) ([]models.Movie, error) {
	return s.find(ctx, bson.D{})
}

// FindByID retrieves a single movie by id.
func (s *MovieStore) FindByID(ctx context.Context, id string) (models.Movie, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Movie{}, err
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

// FindByTitle retrieves a single movie through the unique title index.
func (s *MovieStore) FindByTitle(ctx context.Context, title string) (models.Movie, error) {
	return s.findOne(ctx, bson.M{"title": title})
}

// Create inserts a movie. The unique index on title rejects duplicates.
func (s *MovieStore) Create(ctx context.Context, movie models.Movie) (models.Movie, error) {
	doc := newMovieDoc(movie)
	doc.ID = bson.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return models.Movie{}, fmt.Errorf("insert movie: %w", translate(err))
	}
	return doc.model(), nil
}

// Update replaces every field of an existing movie.
func (s *MovieStore) Update(ctx context.Context, movie models.Movie) (models.Movie, error) {
	oid, err := objectID(movie.ID)
	if err != nil {
		return models.Movie{}, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated movieDoc
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, replaceFields(movie), opts).Decode(&updated); err != nil {
		return models.Movie{}, fmt.Errorf("update movie %s: %w", movie.ID, translate(err))
	}
	return updated.model(), nil
}

// replaceFields overwrites every stored field except _id.
func replaceFields(movie models.Movie) bson.M {
	doc := newMovieDoc(movie)
	return bson.M{"$set": bson.M{
		"title":       doc.Title,
		"releaseYear": doc.ReleaseYear,
		"genre":       doc.Genre,
		"actors":      doc.Actors,
		"imageUrl":    doc.ImageURL,
	}}
}

// Delete removes a movie. Its reviews are left in place.
func (s *MovieStore) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Search returns movies whose title or any actor name contains query, ignoring case.
// The query is matched literally.
func (s *MovieStore) Search(ctx context.Context, query string) ([]models.Movie, error) {
	return s.find(ctx, searchFilter(query))
}

func searchFilter(query string) bson.M {
	pattern := bson.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"actors.actorName": pattern},
	}}
}
