// README: Media service: profile picture and order image uploads.
package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"omaga/internal/types"
)

var (
	ErrBadRequest      = errors.New("invalid upload")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrNotFound        = errors.New("record not found")
)

// MaxImageBytes caps uploads at 5 MiB, matching the bucket policy.
const MaxImageBytes = 5 << 20

// extByType doubles as the allow-list.
var extByType = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ObjectStore is the bucket-facing half, implemented by S3Objects.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key, contentType string, data []byte) error
	PublicURL(bucket, key string) string
}

// Store persists the database side of an upload.
type Store interface {
	SetProfilePicture(ctx context.Context, userID types.ID, url string) error
	CreateOrderImage(ctx context.Context, img *OrderImage) error
}

type Buckets struct {
	Profile string
	Order   string
}

type Service struct {
	objects ObjectStore
	store   Store
	buckets Buckets
}

func NewService(objects ObjectStore, store Store, buckets Buckets) *Service {
	return &Service{objects: objects, store: store, buckets: buckets}
}

// UploadProfilePicture overwrites the user's single picture slot and records
// the public URL on the user row.
func (s *Service) UploadProfilePicture(ctx context.Context, userID types.ID, contentType string, data []byte) (string, error) {
	ext, err := checkImage(contentType, data)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/profile.%s", userID, ext)
	if err := s.objects.Put(ctx, s.buckets.Profile, key, contentType, data); err != nil {
		return "", fmt.Errorf("put profile picture: %w", err)
	}
	url := s.objects.PublicURL(s.buckets.Profile, key)
	if err := s.store.SetProfilePicture(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}

// UploadOrderImage appends a timestamped object under the order's prefix.
func (s *Service) UploadOrderImage(ctx context.Context, orderID, userID types.ID, contentType string, data []byte) (*OrderImage, error) {
	ext, err := checkImage(contentType, data)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	key := fmt.Sprintf("%s/%d.%s", orderID, now.UnixMilli(), ext)
	if err := s.objects.Put(ctx, s.buckets.Order, key, contentType, data); err != nil {
		return nil, fmt.Errorf("put order image: %w", err)
	}
	img := &OrderImage{
		ID:        types.ID(uuid.NewString()),
		OrderID:   orderID,
		UserID:    userID,
		URL:       s.objects.PublicURL(s.buckets.Order, key),
		CreatedAt: now,
	}
	if err := s.store.CreateOrderImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func checkImage(contentType string, data []byte) (string, error) {
	if len(data) == 0 || len(data) > MaxImageBytes {
		return "", ErrBadRequest
	}
	ext, ok := extByType[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}
	return ext, nil
}
