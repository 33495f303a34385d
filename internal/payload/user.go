package payload

import (
	"time"

	"github.com/sharevid/video-share-api/internal/model"
)

// UpdateProfileRequest is the body of POST /user/update-profile.
type UpdateProfileRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// UserResponse is the public view of a user record. The password hash is
// never serialized.
type UserResponse struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name,omitempty"`
	Email         string    `json:"email"`
	Verified      bool      `json:"verified"`
	UploadCount   int64     `json:"uploadCount"`
	DownloadCount int64     `json:"downloadCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewUserResponse maps a user document to its public view.
func NewUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:            user.ID.Hex(),
		Name:          user.Name,
		Email:         user.Email,
		Verified:      user.Verified,
		UploadCount:   user.UploadCount,
		DownloadCount: user.DownloadCount,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
