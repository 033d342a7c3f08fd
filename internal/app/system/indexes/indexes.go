// Package indexes ensures the MongoDB indexes the stores rely on.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureRegistrations(ctx, db); err != nil {
		problems = append(problems, "workshop_registrations: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureUsers enforces unique emails and supports the admin list sort.
func ensureUsers(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("users")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_desc"),
		},
	})
	if err != nil {
		return err
	}
	zap.L().Info("indexes ensured", zap.String("collection", "users"))
	return nil
}

// ensureRegistrations backs the allocator: the unique index on team_number
// turns the read-max-then-insert race into a retryable duplicate-key error.
func ensureRegistrations(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("workshop_registrations")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "team_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_team_number"),
		},
		{
			Keys:    bson.D{{Key: "registered_at", Value: -1}},
			Options: options.Index().SetName("registered_at_desc"),
		},
	})
	if err != nil {
		return err
	}
	zap.L().Info("indexes ensured", zap.String("collection", "workshop_registrations"))
	return nil
}
