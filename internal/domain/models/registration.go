// internal/domain/models/registration.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus is the self-reported payment state of a registration.
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

// IsValidPaymentStatus reports whether s is a known payment status.
func IsValidPaymentStatus(s PaymentStatus) bool {
	return s == PaymentPaid || s == PaymentUnpaid
}

// TeamMember holds the five identity fields collected for every
// participant, leader and additional members alike.
type TeamMember struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
	USN   string `bson:"usn" json:"usn"`
	Year  string `bson:"year" json:"year"`
}

// Complete reports whether all five identity fields are filled in.
// A member slot counts toward the team only when it is complete.
func (m TeamMember) Complete() bool {
	return m.Name != "" && m.Email != "" && m.Phone != "" && m.USN != "" && m.Year != ""
}

// Payment groups the payment-proof fields of a registration.
// Verified is toggled only through the admin verification endpoint.
type Payment struct {
	Status        PaymentStatus `bson:"status" json:"status"`
	Verified      bool          `bson:"verified" json:"verified"`
	UTR           string        `bson:"utr,omitempty" json:"utr,omitempty"`
	ScreenshotURL string        `bson:"screenshot_url,omitempty" json:"screenshot_url,omitempty"`
}

// WorkshopRegistration is one team's workshop signup.
//
// TeamNumber is the persisted, sequentially allocated two-digit identifier
// assigned exactly once at creation. Members holds only the additional
// members (slots 2-4) that were fully filled in, in slot order; absent or
// partially filled slots are not stored at all.
type WorkshopRegistration struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	Leader  TeamMember   `bson:"leader" json:"leader"`
	Members []TeamMember `bson:"members" json:"members"`

	// MembersCount = 1 (leader) + len(Members), bounded to [1,4].
	MembersCount int `bson:"members_count" json:"members_count"`

	TeamNumber string  `bson:"team_number" json:"team_number"`
	Payment    Payment `bson:"payment" json:"payment"`

	RegisteredAt time.Time `bson:"registered_at" json:"registered_at"`
}
