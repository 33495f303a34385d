package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Placeholder values applied when an upload omits the descriptive fields.
const (
	DefaultVideoTitle       = "Title of the video"
	DefaultVideoDescription = "Default description of the video"
	DefaultThumbnailURL     = "https://media.geeksforgeeks.org/wp-content/cdn-uploads/20200214165928/Web-Development-Course-Thumbnail.jpg"
)

// Video represents a catalog record describing an uploaded video. The binary
// itself lives in object storage, addressed by Key; Path is the fetchable URL.
type Video struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	Path        string        `bson:"path"`
	Key         string        `bson:"key"`
	Thumbnail   string        `bson:"thumbnail"`
	UploadedBy  bson.ObjectID `bson:"uploaded_by"`
	IsPrivate   bool          `bson:"is_private"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}
