package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sharevid/video-share-api/internal/model"
)

// VideoRepository defines the interface for video catalog operations.
type VideoRepository interface {
	CreateVideo(ctx context.Context, video *model.Video) (*model.Video, error)
	GetVideo(ctx context.Context, id string) (*model.Video, error)
	UpdateVideo(ctx context.Context, id string, params UpdateVideoParams) (*model.Video, error)
	DeleteVideo(ctx context.Context, id string) (*model.Video, error)
	ListPublicVideos(ctx context.Context, page, limit int64) ([]*model.Video, error)
	ListVideosByOwner(ctx context.Context, ownerID string, page, limit int64) ([]*model.Video, int64, error)
	SearchPublicVideos(ctx context.Context, query string) ([]*model.Video, error)
}

// UpdateVideoParams defines the optional parameters for updating a video.
// Only the fields that are not nil will be updated.
type UpdateVideoParams struct {
	Title       *string
	Description *string
	IsPrivate   *bool
	Path        *string
	Key         *string
	Thumbnail   *string
}

const videoCollection = "videos"

type videoMongoRepository struct {
	db *mongo.Database
}

// NewVideoMongoRepository creates a MongoDB repository for videos and ensures
// the secondary index on the owner reference used by "my videos" queries.
func NewVideoMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) VideoRepository {
	collection := db.Collection(videoCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "uploaded_by", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create video indexes")
	}

	return &videoMongoRepository{db: db}
}

func (r *videoMongoRepository) CreateVideo(ctx context.Context, video *model.Video) (*model.Video, error) {
	now := time.Now()
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

	result, err := r.db.Collection(videoCollection).InsertOne(ctx, video)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		video.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return video, nil
}

func (r *videoMongoRepository) GetVideo(ctx context.Context, id string) (*model.Video, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(videoCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var video model.Video
	if err := result.Decode(&video); err != nil {
		return nil, err
	}

	return &video, nil
}

func (r *videoMongoRepository) UpdateVideo(
	ctx context.Context,
	id string,
	params UpdateVideoParams,
) (*model.Video, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	// Build update query
	updateMap := bson.M{}
	if params.Title != nil {
		updateMap["title"] = *params.Title
	}
	if params.Description != nil {
		updateMap["description"] = *params.Description
	}
	if params.IsPrivate != nil {
		updateMap["is_private"] = *params.IsPrivate
	}
	if params.Path != nil {
		updateMap["path"] = *params.Path
	}
	if params.Key != nil {
		updateMap["key"] = *params.Key
	}
	if params.Thumbnail != nil {
		updateMap["thumbnail"] = *params.Thumbnail
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no video fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(videoCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var video model.Video
	if err := result.Decode(&video); err != nil {
		return nil, err
	}

	return &video, nil
}

func (r *videoMongoRepository) DeleteVideo(ctx context.Context, id string) (*model.Video, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(videoCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var video model.Video
	if err := result.Decode(&video); err != nil {
		return nil, err
	}

	return &video, nil
}

func (r *videoMongoRepository) ListPublicVideos(ctx context.Context, page, limit int64) ([]*model.Video, error) {
	return r.find(ctx, bson.M{"is_private": false}, page, limit)
}

func (r *videoMongoRepository) ListVideosByOwner(
	ctx context.Context,
	ownerID string,
	page, limit int64,
) ([]*model.Video, int64, error) {
	objectID, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, 0, err
	}

	filter := bson.M{"uploaded_by": objectID}

	videos, err := r.find(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.db.Collection(videoCollection).CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

func (r *videoMongoRepository) SearchPublicVideos(ctx context.Context, query string) ([]*model.Video, error) {
	pattern := regexp.QuoteMeta(query)
	regex := bson.M{"$regex": pattern, "$options": "i"}

	filter := bson.M{
		"is_private": false,
		"$or": bson.A{
			bson.M{"title": regex},
			bson.M{"description": regex},
		},
	}

	return r.find(ctx, filter, 1, 50)
}

func (r *videoMongoRepository) find(ctx context.Context, filter bson.M, page, limit int64) ([]*model.Video, error) {
	if page < 1 {
		page = 1
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.db.Collection(videoCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var videos []*model.Video
	for cursor.Next(ctx) {
		var video model.Video
		if err := cursor.Decode(&video); err != nil {
			return nil, err
		}
		videos = append(videos, &video)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return videos, nil
}
