// README: Media service tests over in-memory doubles.
package media

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"omaga/internal/types"
)

type memObjects struct {
	mu   sync.Mutex
	puts map[string][]byte // "bucket/key" -> data
}

func newMemObjects() *memObjects { return &memObjects{puts: make(map[string][]byte)} }

func (m *memObjects) Put(_ context.Context, bucket, key, _ string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts[bucket+"/"+key] = data
	return nil
}

func (m *memObjects) PublicURL(bucket, key string) string {
	return "https://cdn.test/" + bucket + "/" + key
}

type memStore struct {
	mu       sync.Mutex
	pictures map[types.ID]string
	images   []OrderImage
}

func newMemStore() *memStore { return &memStore{pictures: make(map[types.ID]string)} }

func (m *memStore) SetProfilePicture(_ context.Context, userID types.ID, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pictures[userID] = url
	return nil
}

func (m *memStore) CreateOrderImage(_ context.Context, img *OrderImage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images = append(m.images, *img)
	return nil
}

func newTestService() (*Service, *memObjects, *memStore) {
	objects := newMemObjects()
	store := newMemStore()
	svc := NewService(objects, store, Buckets{Profile: "profile-pictures", Order: "order-images"})
	return svc, objects, store
}

func TestUploadProfilePicture(t *testing.T) {
	svc, objects, store := newTestService()
	data := []byte{0xFF, 0xD8, 0xFF}

	url, err := svc.UploadProfilePicture(context.Background(), "u1", "image/jpeg", data)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://cdn.test/profile-pictures/u1/profile.jpg" {
		t.Fatalf("unexpected url %q", url)
	}
	if store.pictures["u1"] != url {
		t.Fatalf("user row not updated, got %q", store.pictures["u1"])
	}
	if !bytes.Equal(objects.puts["profile-pictures/u1/profile.jpg"], data) {
		t.Fatal("object body mismatch")
	}
}

func TestUploadProfilePictureOverwritesSlot(t *testing.T) {
	svc, objects, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.UploadProfilePicture(ctx, "u1", "image/png", []byte{1}); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if _, err := svc.UploadProfilePicture(ctx, "u1", "image/png", []byte{2}); err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if len(objects.puts) != 1 {
		t.Fatalf("expected one object slot, got %d", len(objects.puts))
	}
}

func TestUploadOrderImage(t *testing.T) {
	svc, _, store := newTestService()

	img, err := svc.UploadOrderImage(context.Background(), "o1", "u1", "image/webp", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if img.OrderID != "o1" || img.UserID != "u1" {
		t.Fatalf("unexpected image record %+v", img)
	}
	if !strings.HasPrefix(img.URL, "https://cdn.test/order-images/o1/") || !strings.HasSuffix(img.URL, ".webp") {
		t.Fatalf("unexpected url %q", img.URL)
	}
	if len(store.images) != 1 {
		t.Fatalf("expected 1 order_images row, got %d", len(store.images))
	}
}

func TestUploadRejectsBadInput(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.UploadProfilePicture(ctx, "u1", "image/jpeg", nil); err != ErrBadRequest {
		t.Fatalf("empty body: expected ErrBadRequest, got %v", err)
	}
	if _, err := svc.UploadProfilePicture(ctx, "u1", "image/gif", []byte{1}); err != ErrUnsupportedType {
		t.Fatalf("gif: expected ErrUnsupportedType, got %v", err)
	}
	if _, err := svc.UploadProfilePicture(ctx, "u1", "image/jpeg", make([]byte, MaxImageBytes+1)); err != ErrBadRequest {
		t.Fatalf("oversized: expected ErrBadRequest, got %v", err)
	}
}
