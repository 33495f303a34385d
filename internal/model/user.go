package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account.
// The verification token is an opaque random string set at sign-up and rotated
// whenever a password reset is requested or completed.
type User struct {
	ID                bson.ObjectID `bson:"_id,omitempty"`
	Name              string        `bson:"name,omitempty"`
	Email             string        `bson:"email"`
	PasswordHash      string        `bson:"password"`
	VerificationToken string        `bson:"token"`
	Verified          bool          `bson:"verified"`
	UploadCount       int64         `bson:"upload_count"`
	DownloadCount     int64         `bson:"download_count"`
	CreatedAt         time.Time     `bson:"created_at"`
	UpdatedAt         time.Time     `bson:"updated_at"`
}
