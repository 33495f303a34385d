package payload

import (
	"time"

	"github.com/sharevid/video-share-api/internal/model"
)

// UpdateVideoRequest is the JSON body of PUT /aws/video/update/:videoId when
// no new binary is attached. All fields are optional partial updates.
type UpdateVideoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsPrivate   *bool   `json:"isPrivate"`
}

// Uploader is the owner reference resolved for display.
type Uploader struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

// VideoResponse is the public view of a video catalog record. Storage
// credentials and the raw owner id stay internal.
type VideoResponse struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Path        string    `json:"path"`
	Thumbnail   string    `json:"thumbNail"`
	UploadedBy  Uploader  `json:"uploadedBy"`
	IsPrivate   bool      `json:"isPrivate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Pagination carries listing metadata for paginated video queries.
type Pagination struct {
	CurrentPage int64 `json:"currentPage"`
	TotalPages  int64 `json:"totalPages"`
	TotalVideos int64 `json:"totalVideos"`
}

// NewVideoResponse maps a video document and its resolved uploader email to
// the public view.
func NewVideoResponse(video *model.Video, uploaderEmail string) VideoResponse {
	return VideoResponse{
		ID:          video.ID.Hex(),
		Title:       video.Title,
		Description: video.Description,
		Path:        video.Path,
		Thumbnail:   video.Thumbnail,
		UploadedBy:  Uploader{ID: video.UploadedBy.Hex(), Email: uploaderEmail},
		IsPrivate:   video.IsPrivate,
		CreatedAt:   video.CreatedAt,
		UpdatedAt:   video.UpdatedAt,
	}
}
