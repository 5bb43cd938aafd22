// Package mongostore implements the repositories on MongoDB.
package mongostore

import (
	"context"
	"errors"

	"github.com/isdelr/reelreview-be/internal/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// insertionOrder sorts by _id, which grows with creation time.
var insertionOrder = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

// objectID parses a hex id. Ids that cannot exist in the store yield ErrNotFound.
func objectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, repository.ErrNotFound
	}
	return oid, nil
}

// translate maps driver errors onto repository sentinels.
func translate(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	}
	return err
}

func decodeAll[T any](ctx context.Context, cur *mongo.Cursor) ([]T, error) {
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
