// Package mongodb is the document-store adapter of the Entity Store. Each
// entity lives in its own collection keyed by a string _id.
package mongodb

import (
	"context"
	"errors"
	"regexp"

	"ai-calling-agent/internal/domain/apperr"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	companiesCollection        = "companies"
	doctorsCollection          = "doctors"
	vacanciesCollection        = "vacancies"
	ordersCollection           = "orders"
	appointmentsCollection     = "appointments"
	feedbackCollection         = "feedback"
	usersCollection            = "users"
	conversationLogsCollection = "conversation_logs"
)

func newID() string {
	return uuid.NewString()
}

// findOne decodes the first match into out, mapping ErrNoDocuments to NotFound.
func findOne(ctx context.Context, c *mongo.Collection, filter bson.M, out any, entityName, id string) error {
	err := c.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.NotFound(entityName, id)
	}
	return err
}

func findAll[T any](ctx context.Context, c *mongo.Collection, filter bson.M, sort bson.D) ([]T, error) {
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	cur, err := c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func insert(ctx context.Context, c *mongo.Collection, doc any, entityName, field, value string) error {
	if _, err := c.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Duplicate(entityName, field, value)
		}
		return err
	}
	return nil
}

// replace swaps the stored document for doc, failing with NotFound when no
// document has the id.
func replace(ctx context.Context, c *mongo.Collection, id string, doc any, entityName string) error {
	res, err := c.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound(entityName, id)
	}
	return nil
}

func setFields(ctx context.Context, c *mongo.Collection, id string, set bson.M, entityName string) error {
	res, err := c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound(entityName, id)
	}
	return nil
}

func deleteByID(ctx context.Context, c *mongo.Collection, id string) (bool, error) {
	res, err := c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// equalFold matches a whole string case-insensitively.
func equalFold(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}
