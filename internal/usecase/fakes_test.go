package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/sharevid/video-share-api/internal/model"
	"github.com/sharevid/video-share-api/internal/repository"
	"github.com/sharevid/video-share-api/internal/storage"
)

func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key error"}},
	}
}

// memUserRepo is an in-memory repository.UserRepository.
type memUserRepo struct {
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

func (r *memUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, duplicateKeyError()
		}
	}

	now := time.Now()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID.Hex()] = user

	return user, nil
}

func (r *memUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

func (r *memUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memUserRepo) GetUserByToken(_ context.Context, token string) (*model.User, error) {
	for _, user := range r.users {
		if user.VerificationToken == token {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memUserRepo) UpdateUser(_ context.Context, id string, params repository.UpdateUserParams) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	if params.VerificationToken != nil {
		user.VerificationToken = *params.VerificationToken
	}
	if params.Verified != nil {
		user.Verified = *params.Verified
	}
	user.UpdatedAt = time.Now()

	return user, nil
}

func (r *memUserRepo) IncrementUploadCount(_ context.Context, id string) error {
	user, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.UploadCount++
	return nil
}

func (r *memUserRepo) IncrementDownloadCount(_ context.Context, id string) error {
	user, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.DownloadCount++
	return nil
}

// memVideoRepo is an in-memory repository.VideoRepository.
type memVideoRepo struct {
	videos map[string]*model.Video
}

func newMemVideoRepo() *memVideoRepo {
	return &memVideoRepo{videos: make(map[string]*model.Video)}
}

func (r *memVideoRepo) CreateVideo(_ context.Context, video *model.Video) (*model.Video, error) {
	now := time.Now()
	video.ID = bson.NewObjectID()
	video.CreatedAt = now
	video.UpdatedAt = now

	if video.Title == "" {
		video.Title = model.DefaultVideoTitle
	}
	if video.Description == "" {
		video.Description = model.DefaultVideoDescription
	}
	if video.Thumbnail == "" {
		video.Thumbnail = model.DefaultThumbnailURL
	}

	r.videos[video.ID.Hex()] = video

	return video, nil
}

func (r *memVideoRepo) GetVideo(_ context.Context, id string) (*model.Video, error) {
	video, ok := r.videos[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return video, nil
}

func (r *memVideoRepo) UpdateVideo(_ context.Context, id string, params repository.UpdateVideoParams) (*model.Video, error) {
	video, ok := r.videos[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Title != nil {
		video.Title = *params.Title
	}
	if params.Description != nil {
		video.Description = *params.Description
	}
	if params.IsPrivate != nil {
		video.IsPrivate = *params.IsPrivate
	}
	if params.Path != nil {
		video.Path = *params.Path
	}
	if params.Key != nil {
		video.Key = *params.Key
	}
	if params.Thumbnail != nil {
		video.Thumbnail = *params.Thumbnail
	}
	video.UpdatedAt = time.Now()

	return video, nil
}

func (r *memVideoRepo) DeleteVideo(_ context.Context, id string) (*model.Video, error) {
	video, ok := r.videos[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(r.videos, id)
	return video, nil
}

func (r *memVideoRepo) ListPublicVideos(_ context.Context, page, limit int64) ([]*model.Video, error) {
	var public []*model.Video
	for _, video := range r.videos {
		if !video.IsPrivate {
			public = append(public, video)
		}
	}

	return paginate(newestFirst(public), page, limit), nil
}

func (r *memVideoRepo) ListVideosByOwner(_ context.Context, ownerID string, page, limit int64) ([]*model.Video, int64, error) {
	var owned []*model.Video
	for _, video := range r.videos {
		if video.UploadedBy.Hex() == ownerID {
			owned = append(owned, video)
		}
	}

	return paginate(newestFirst(owned), page, limit), int64(len(owned)), nil
}

func (r *memVideoRepo) SearchPublicVideos(_ context.Context, query string) ([]*model.Video, error) {
	needle := strings.ToLower(query)

	var matched []*model.Video
	for _, video := range r.videos {
		if video.IsPrivate {
			continue
		}
		if strings.Contains(strings.ToLower(video.Title), needle) ||
			strings.Contains(strings.ToLower(video.Description), needle) {
			matched = append(matched, video)
		}
	}

	return newestFirst(matched), nil
}

func newestFirst(videos []*model.Video) []*model.Video {
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].CreatedAt.After(videos[j].CreatedAt)
	})
	return videos
}

func paginate(videos []*model.Video, page, limit int64) []*model.Video {
	if page < 1 {
		page = 1
	}

	start := (page - 1) * limit
	if start >= int64(len(videos)) {
		return nil
	}

	end := start + limit
	if end > int64(len(videos)) {
		end = int64(len(videos))
	}

	return videos[start:end]
}

// fakeStorage is an in-memory storage.ObjectStorage recording uploads.
type fakeStorage struct {
	objects map[string][]byte
	puts    int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) Put(_ context.Context, fieldName, filename, _ string, r io.Reader) (*storage.UploadResult, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	s.puts++
	ext := path.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	key := fmt.Sprintf("video-share/%s-%d-%s%s", base, s.puts, fieldName, ext)
	s.objects[key] = content

	return &storage.UploadResult{
		Key:  key,
		Path: "https://bucket.s3.amazonaws.com/" + key,
	}, nil
}

func (s *fakeStorage) Get(_ context.Context, key string) (*storage.Object, error) {
	content, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such object %s", key)
	}

	return &storage.Object{
		Body:          io.NopCloser(bytes.NewReader(content)),
		ContentType:   "video/mp4",
		ContentLength: int64(len(content)),
	}, nil
}

// fakeSender records outbound emails instead of dialing SMTP.
type fakeSender struct {
	emails []sentEmail
	err    error
}

type sentEmail struct {
	to      []string
	subject string
	body    string
}

func (s *fakeSender) SendHTML(to []string, subject, htmlBody string) error {
	if s.err != nil {
		return s.err
	}
	s.emails = append(s.emails, sentEmail{to: to, subject: subject, body: htmlBody})
	return nil
}
