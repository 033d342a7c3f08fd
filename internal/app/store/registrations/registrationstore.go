package registrationstore

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/corsit/clubsite/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no registration matches the given id.
	ErrNotFound = errors.New("registration not found")
	// ErrDuplicateTeamNumber signals the unique index rejected an insert
	// because another request claimed the same team number first. The
	// allocator recomputes the maximum and retries.
	ErrDuplicateTeamNumber = errors.New("team number already allocated")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("workshop_registrations")}
}

// MaxTeamNumber returns the highest allocated team number as an integer,
// or 0 when no registrations exist. The descending string sort is correct
// only while every stored number shares the two-digit width; past 99 teams
// the collection would need a numeric mirror field.
func (s *Store) MaxTeamNumber(ctx context.Context) (int, error) {
	var doc struct {
		TeamNumber string `bson:"team_number"`
	}
	err := s.c.FindOne(ctx, bson.M{},
		options.FindOne().
			SetSort(bson.D{{Key: "team_number", Value: -1}}).
			SetProjection(bson.M{"team_number": 1}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}
	n, err := strconv.Atoi(doc.TeamNumber)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Insert persists a new registration. RegisteredAt is set here, once;
// the record is never updated by the registrant afterwards.
func (s *Store) Insert(ctx context.Context, reg *models.WorkshopRegistration) error {
	reg.ID = primitive.NewObjectID()
	reg.RegisteredAt = time.Now()

	if _, err := s.c.InsertOne(ctx, reg); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateTeamNumber
		}
		return err
	}
	return nil
}

// List returns all registrations sorted by registration time, newest first.
func (s *Store) List(ctx context.Context) ([]models.WorkshopRegistration, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "registered_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var regs []models.WorkshopRegistration
	if err := cur.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// FindByID loads a single registration.
func (s *Store) FindByID(ctx context.Context, id primitive.ObjectID) (*models.WorkshopRegistration, error) {
	var reg models.WorkshopRegistration
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&reg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reg, nil
}

// SetVerified updates exactly the payment.verified flag on exactly one
// record and returns the updated registration. Unknown id -> ErrNotFound,
// no write performed.
func (s *Store) SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) (*models.WorkshopRegistration, error) {
	var reg models.WorkshopRegistration
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"payment.verified": verified}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&reg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reg, nil
}

// Delete removes a registration by id. Returns ErrNotFound when nothing
// matched. Team numbers are never reused.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
