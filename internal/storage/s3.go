package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/sharevid/video-share-api/internal/config"
)

// UploadResult is the durable reference returned after a successful upload.
// Key is the storage-internal identifier used for later retrieval; Path is the
// fetchable URL handed to clients.
type UploadResult struct {
	Key  string
	Path string
}

// Object is a readable byte stream for a stored binary plus its metadata.
type Object struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// ObjectStorage is the gateway to remote object storage.
type ObjectStorage interface {
	Put(ctx context.Context, fieldName, filename, contentType string, r io.Reader) (*UploadResult, error)
	Get(ctx context.Context, key string) (*Object, error)
}

// S3Storage implements ObjectStorage backed by an S3-compatible service.
type S3Storage struct {
	uploader *manager.Uploader
	client   *s3.Client
	bucket   string
	folder   string
	baseURL  string
	nowFunc  func() time.Time
}

// NewS3Storage configures a client and managed uploader targeting the provided
// object store.
func NewS3Storage(ctx context.Context, cfg config.StorageConfig) (*S3Storage, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 storage: bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	if strings.TrimSpace(cfg.Endpoint) != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == s3.ServiceID {
				return aws.Endpoint{
					URL:           cfg.Endpoint,
					SigningRegion: cfg.Region,
				}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024
		u.LeavePartsOnError = false
	})

	return &S3Storage{
		uploader: uploader,
		client:   client,
		bucket:   cfg.Bucket,
		folder:   cfg.Folder,
		baseURL:  strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		nowFunc:  time.Now,
	}, nil
}

// Put uploads the content under a namespaced key with a private ACL and
// returns the durable reference.
func (s *S3Storage) Put(ctx context.Context, fieldName, filename, contentType string, r io.Reader) (*UploadResult, error) {
	key := ObjectKey(s.folder, fieldName, filename, s.nowFunc())

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 storage upload %s: %w", key, err)
	}

	return &UploadResult{Key: key, Path: s.publicPath(key)}, nil
}

// Get returns a readable stream for the object. I/O errors from the backend
// are propagated to the caller.
func (s *S3Storage) Get(ctx context.Context, key string) (*Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 storage get %s: %w", key, err)
	}

	obj := &Object{Body: out.Body}
	if out.ContentType != nil {
		obj.ContentType = *out.ContentType
	}
	if out.ContentLength != nil {
		obj.ContentLength = *out.ContentLength
	}

	return obj, nil
}

func (s *S3Storage) publicPath(key string) string {
	if s.baseURL == "" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
	}

	return fmt.Sprintf("%s/%s", s.baseURL, key)
}

// ObjectKey builds the namespaced storage key
// <folder>/<basename>-<timestamp>-<fieldName><extension>.
func ObjectKey(folder, fieldName, filename string, now time.Time) string {
	extension := path.Ext(filename)
	baseName := strings.TrimSuffix(path.Base(filename), extension)

	return fmt.Sprintf("%s/%s-%d-%s%s", folder, baseName, now.UnixMilli(), fieldName, extension)
}
