package usecase

import (
	"context"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/sharevid/video-share-api/internal/model"
	"github.com/sharevid/video-share-api/internal/repository"
	"github.com/sharevid/video-share-api/internal/storage"
)

// VideoUsecase defines the media catalog use cases.
type VideoUsecase interface {
	Upload(ctx context.Context, params UploadParams) (*VideoView, error)
	ListPublic(ctx context.Context, page, limit int64) ([]VideoView, error)
	ListMine(ctx context.Context, ownerID string, page, limit int64) ([]VideoView, *ListMeta, error)
	Get(ctx context.Context, id, requesterID string) (*VideoView, error)
	Update(ctx context.Context, id, requesterID string, params UpdateParams) (*VideoView, error)
	Delete(ctx context.Context, id, requesterID string) error
	Download(ctx context.Context, id, requesterID string) (*DownloadResult, error)
	Search(ctx context.Context, query string) ([]VideoView, error)
}

// FileUpload is one incoming multipart file.
type FileUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// UploadParams defines the parameters for uploading a new video.
type UploadParams struct {
	OwnerID     string
	Title       string
	Description string
	IsPrivate   bool
	Video       *FileUpload
	Thumbnail   *FileUpload
}

// UpdateParams defines the optional parameters for updating a video. Scalar
// fields that are nil are left untouched; a non-nil file replaces the stored
// binary reference.
type UpdateParams struct {
	Title       *string
	Description *string
	IsPrivate   *bool
	Video       *FileUpload
	Thumbnail   *FileUpload
}

// VideoView is a catalog record with the uploader's email resolved for display.
type VideoView struct {
	Video         *model.Video
	UploaderEmail string
}

// ListMeta carries pagination metadata for "my videos" listings.
type ListMeta struct {
	CurrentPage int64
	TotalPages  int64
	TotalVideos int64
}

// DownloadResult is a streamable binary plus the attachment filename derived
// from the video title and the stored path's extension.
type DownloadResult struct {
	Filename      string
	ContentType   string
	ContentLength int64
	Body          io.ReadCloser
}

// Default page sizes for the public and per-user listings.
const (
	DefaultPublicPageSize = 6
	DefaultMinePageSize   = 7
)

// Multipart field names accepted by upload and update.
const (
	FieldVideo     = "video"
	FieldThumbnail = "thumbnail"
)

var (
	ErrVideoNotFound = errors.New("video not found")
	ErrNotOwner      = errors.New("not the owner of this video")
	ErrFileRequired  = errors.New("a video file is required")
)

type videoUsecase struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	store     storage.ObjectStorage
	logger    *zerolog.Logger
}

// NewVideoUsecase creates a new VideoUsecase instance.
func NewVideoUsecase(
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
	store storage.ObjectStorage,
	logger *zerolog.Logger,
) VideoUsecase {
	return &videoUsecase{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		store:     store,
		logger:    logger,
	}
}

func (u *videoUsecase) Upload(ctx context.Context, params UploadParams) (*VideoView, error) {
	if params.Video == nil {
		return nil, ErrFileRequired
	}

	owner, err := u.userRepo.GetUser(ctx, params.OwnerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	title := params.Title
	if title == "" {
		title = titleFromFilename(params.Video.Filename)
	}

	// The binary must be durably stored before the catalog record can
	// reference it.
	uploaded, err := u.store.Put(ctx, FieldVideo, params.Video.Filename, params.Video.ContentType, params.Video.Body)
	if err != nil {
		return nil, err
	}

	thumbnail := ""
	if params.Thumbnail != nil {
		result, err := u.store.Put(ctx, FieldThumbnail, params.Thumbnail.Filename, params.Thumbnail.ContentType, params.Thumbnail.Body)
		if err != nil {
			return nil, err
		}
		thumbnail = result.Path
	}

	video, err := u.videoRepo.CreateVideo(ctx, &model.Video{
		Title:       title,
		Description: params.Description,
		Path:        uploaded.Path,
		Key:         uploaded.Key,
		Thumbnail:   thumbnail,
		UploadedBy:  owner.ID,
		IsPrivate:   params.IsPrivate,
	})
	if err != nil {
		return nil, err
	}

	// Counter drift is tolerated: a failed increment never fails the upload.
	if err := u.userRepo.IncrementUploadCount(ctx, params.OwnerID); err != nil {
		u.logger.Warn().Err(err).Str("user_id", params.OwnerID).Msg("failed to increment upload count")
	}

	return &VideoView{Video: video, UploaderEmail: owner.Email}, nil
}

func (u *videoUsecase) ListPublic(ctx context.Context, page, limit int64) ([]VideoView, error) {
	if limit <= 0 {
		limit = DefaultPublicPageSize
	}

	videos, err := u.videoRepo.ListPublicVideos(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return u.resolveUploaders(ctx, videos)
}

func (u *videoUsecase) ListMine(ctx context.Context, ownerID string, page, limit int64) ([]VideoView, *ListMeta, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultMinePageSize
	}

	videos, total, err := u.videoRepo.ListVideosByOwner(ctx, ownerID, page, limit)
	if err != nil {
		return nil, nil, err
	}

	views, err := u.resolveUploaders(ctx, videos)
	if err != nil {
		return nil, nil, err
	}

	meta := &ListMeta{
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
		TotalVideos: total,
	}

	return views, meta, nil
}

func (u *videoUsecase) Get(ctx context.Context, id, requesterID string) (*VideoView, error) {
	video, err := u.getVideo(ctx, id)
	if err != nil {
		return nil, err
	}

	// Private metadata is only visible to the owner; everyone else gets the
	// same answer as for a missing video.
	if video.IsPrivate && video.UploadedBy.Hex() != requesterID {
		return nil, ErrVideoNotFound
	}

	return u.withUploader(ctx, video)
}

func (u *videoUsecase) Update(ctx context.Context, id, requesterID string, params UpdateParams) (*VideoView, error) {
	video, err := u.getVideo(ctx, id)
	if err != nil {
		return nil, err
	}

	if video.UploadedBy.Hex() != requesterID {
		return nil, ErrNotOwner
	}

	update := repository.UpdateVideoParams{
		Title:       params.Title,
		Description: params.Description,
		IsPrivate:   params.IsPrivate,
	}

	if params.Video != nil {
		uploaded, err := u.store.Put(ctx, FieldVideo, params.Video.Filename, params.Video.ContentType, params.Video.Body)
		if err != nil {
			return nil, err
		}
		update.Path = &uploaded.Path
		update.Key = &uploaded.Key
	}

	if params.Thumbnail != nil {
		uploaded, err := u.store.Put(ctx, FieldThumbnail, params.Thumbnail.Filename, params.Thumbnail.ContentType, params.Thumbnail.Body)
		if err != nil {
			return nil, err
		}
		update.Thumbnail = &uploaded.Path
	}

	updated, err := u.videoRepo.UpdateVideo(ctx, id, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVideoNotFound
		}

		return nil, err
	}

	return u.withUploader(ctx, updated)
}

func (u *videoUsecase) Delete(ctx context.Context, id, requesterID string) error {
	video, err := u.getVideo(ctx, id)
	if err != nil {
		return err
	}

	if video.UploadedBy.Hex() != requesterID {
		return ErrNotOwner
	}

	deleted, err := u.videoRepo.DeleteVideo(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrVideoNotFound
		}

		return err
	}

	// The binary stays in object storage; surface the orphaned key so the
	// leak is visible.
	u.logger.Info().Str("video_id", id).Str("key", deleted.Key).Msg("catalog record deleted, binary retained in object storage")

	return nil
}

func (u *videoUsecase) Download(ctx context.Context, id, requesterID string) (*DownloadResult, error) {
	video, err := u.getVideo(ctx, id)
	if err != nil {
		return nil, err
	}

	obj, err := u.store.Get(ctx, video.Key)
	if err != nil {
		return nil, err
	}

	if requesterID != "" {
		if err := u.userRepo.IncrementDownloadCount(ctx, requesterID); err != nil {
			u.logger.Warn().Err(err).Str("user_id", requesterID).Msg("failed to increment download count")
		}
	}

	return &DownloadResult{
		Filename:      video.Title + extensionFromPath(video.Path),
		ContentType:   obj.ContentType,
		ContentLength: obj.ContentLength,
		Body:          obj.Body,
	}, nil
}

func (u *videoUsecase) Search(ctx context.Context, query string) ([]VideoView, error) {
	videos, err := u.videoRepo.SearchPublicVideos(ctx, query)
	if err != nil {
		return nil, err
	}

	return u.resolveUploaders(ctx, videos)
}

func (u *videoUsecase) getVideo(ctx context.Context, id string) (*model.Video, error) {
	video, err := u.videoRepo.GetVideo(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVideoNotFound
		}

		return nil, err
	}

	return video, nil
}

func (u *videoUsecase) withUploader(ctx context.Context, video *model.Video) (*VideoView, error) {
	views, err := u.resolveUploaders(ctx, []*model.Video{video})
	if err != nil {
		return nil, err
	}

	return &views[0], nil
}

// resolveUploaders performs the read-only join from videos to their owners'
// emails, looking each owner up once.
func (u *videoUsecase) resolveUploaders(ctx context.Context, videos []*model.Video) ([]VideoView, error) {
	emails := make(map[string]string)
	views := make([]VideoView, 0, len(videos))

	for _, video := range videos {
		ownerID := video.UploadedBy.Hex()

		email, ok := emails[ownerID]
		if !ok {
			owner, err := u.userRepo.GetUser(ctx, ownerID)
			if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
				return nil, err
			}
			if owner != nil {
				email = owner.Email
			}
			emails[ownerID] = email
		}

		views = append(views, VideoView{Video: video, UploaderEmail: email})
	}

	return views, nil
}

// titleFromFilename strips the extension from an uploaded filename.
func titleFromFilename(filename string) string {
	base := path.Base(filename)
	return strings.TrimSuffix(base, path.Ext(base))
}

// extensionFromPath parses the original file extension out of the stored
// path/URL, ignoring any query string.
func extensionFromPath(storedPath string) string {
	if parsed, err := url.Parse(storedPath); err == nil && parsed.Path != "" {
		return path.Ext(parsed.Path)
	}

	return path.Ext(storedPath)
}
