// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a club member profile.
//
// AdminAuthenticated controls whether the profile is shown on the public
// team page; it is toggled only by admins. IsAdmin grants access to the
// administrative endpoints and is never settable through self-service
// profile edits.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`

	Phone       string `bson:"phone,omitempty" json:"phone,omitempty"`
	USN         string `bson:"usn,omitempty" json:"usn,omitempty"`
	Year        string `bson:"year,omitempty" json:"year,omitempty"`
	Designation string `bson:"designation,omitempty" json:"designation,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`

	// Social links shown on the public team page.
	GitHub    string `bson:"github,omitempty" json:"github,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`

	// Media URLs returned by the media-storage collaborator.
	PhotoURL           string `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	ProjectPhotoURL    string `bson:"project_photo_url,omitempty" json:"project_photo_url,omitempty"`
	ProjectDescription string `bson:"project_description,omitempty" json:"project_description,omitempty"`
	AbacusURL          string `bson:"abacus_url,omitempty" json:"abacus_url,omitempty"`

	AdminAuthenticated bool `bson:"admin_authenticated" json:"admin_authenticated"`
	IsAdmin            bool `bson:"is_admin" json:"is_admin"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
