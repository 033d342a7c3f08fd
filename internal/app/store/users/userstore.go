package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/corsit/clubsite/internal/app/system/normalize"
	"github.com/corsit/clubsite/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrNotFound is returned when no user matches the given id.
	ErrNotFound = errors.New("user not found")

	errMissingName  = errors.New("name is required")
	errMissingEmail = errors.New("email is required")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing core fields. The caller is
// responsible for hashing the password; new users are never created with
// admin privileges or team-page visibility.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.Email = normalize.Email(u.Email)
	u.AdminAuthenticated = false
	u.IsAdmin = false

	if u.Name == "" {
		return models.User{}, errMissingName
	}
	if u.Email == "" {
		return models.User{}, errMissingEmail
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// List returns all users sorted by creation time, newest first.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListVisible returns the users shown on the public team page.
func (s *Store) ListVisible(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"admin_authenticated": true}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ProfileUpdate holds the fields a member can change through self-service
// edits. Admin-only flags are deliberately absent.
type ProfileUpdate struct {
	Name               string
	Phone              string
	USN                string
	Year               string
	Designation        string
	Description        string
	GitHub             string
	LinkedIn           string
	Instagram          string
	ProjectDescription string
	AbacusURL          string
}

// UpdateProfile applies a self-service profile edit and returns the
// updated user.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	set := bson.M{
		"name":                normalize.Name(upd.Name),
		"phone":               upd.Phone,
		"usn":                 upd.USN,
		"year":                upd.Year,
		"designation":         upd.Designation,
		"description":         upd.Description,
		"github":              upd.GitHub,
		"linkedin":            upd.LinkedIn,
		"instagram":           upd.Instagram,
		"project_description": upd.ProjectDescription,
		"abacus_url":          upd.AbacusURL,
		"updated_at":          time.Now(),
	}
	return s.findOneAndSet(ctx, id, set)
}

// AdminUpdate holds the fields an admin can change on any user.
type AdminUpdate struct {
	Name               string
	Designation        string
	AdminAuthenticated bool
	IsAdmin            bool
}

// UpdateByAdmin applies an admin edit and returns the updated user.
func (s *Store) UpdateByAdmin(ctx context.Context, id primitive.ObjectID, upd AdminUpdate) (*models.User, error) {
	set := bson.M{
		"name":                normalize.Name(upd.Name),
		"designation":         upd.Designation,
		"admin_authenticated": upd.AdminAuthenticated,
		"is_admin":            upd.IsAdmin,
		"updated_at":          time.Now(),
	}
	return s.findOneAndSet(ctx, id, set)
}

// SetPassword replaces the stored password hash.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := s.findOneAndSet(ctx, id, bson.M{
		"password_hash": hash,
		"updated_at":    time.Now(),
	})
	return err
}

// SetPhotoURL stores the profile photo URL returned by the media store.
func (s *Store) SetPhotoURL(ctx context.Context, id primitive.ObjectID, url string) (*models.User, error) {
	return s.findOneAndSet(ctx, id, bson.M{
		"photo_url":  url,
		"updated_at": time.Now(),
	})
}

// SetProjectPhotoURL stores the project photo URL returned by the media store.
func (s *Store) SetProjectPhotoURL(ctx context.Context, id primitive.ObjectID, url string) (*models.User, error) {
	return s.findOneAndSet(ctx, id, bson.M{
		"project_photo_url": url,
		"updated_at":        time.Now(),
	})
}

// Delete removes a user by id. Returns ErrNotFound when nothing matched.
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

func (s *Store) findOneAndSet(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &u, nil
}
