package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

// 1x1 transparent PNG.
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func newTestStorage(t *testing.T, maxBytes int64) service.ImageStorage {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	return NewBlobImageStorage(bucket, maxBytes, "/api/auth/uploads/")
}

func TestSaveAndOpenProfileImage(t *testing.T) {
	store := newTestStorage(t, 2*1024*1024)
	ctx := context.Background()
	userID := uuid.New()

	ref, err := store.SaveProfileImage(ctx, userID, &service.ImageUpload{
		Filename: "avatar.png",
		Size:     int64(len(pngPixel)),
		Content:  bytes.NewReader(pngPixel),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/api/auth/uploads/profile-images/"+userID.String()+"-"))
	assert.True(t, strings.HasSuffix(ref, ".png"))

	name := ref[strings.LastIndex(ref, "/")+1:]
	rc, contentType, err := store.OpenProfileImage(ctx, name)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, pngPixel, got)
	assert.Equal(t, "image/png", contentType)
}

func TestSaveProfileImage_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("not an image", func(t *testing.T) {
		store := newTestStorage(t, 1024)
		_, err := store.SaveProfileImage(ctx, uuid.New(), &service.ImageUpload{
			Filename: "avatar.png",
			Content:  strings.NewReader("plain text pretending to be a png"),
		})
		assert.ErrorIs(t, err, domainerrors.ErrNotAnImage)
	})

	t.Run("declared size too large", func(t *testing.T) {
		store := newTestStorage(t, 16)
		_, err := store.SaveProfileImage(ctx, uuid.New(), &service.ImageUpload{
			Size:    17,
			Content: bytes.NewReader(pngPixel),
		})
		assert.ErrorIs(t, err, domainerrors.ErrImageTooLarge)
	})

	t.Run("actual size too large", func(t *testing.T) {
		store := newTestStorage(t, 16)
		_, err := store.SaveProfileImage(ctx, uuid.New(), &service.ImageUpload{
			Content: bytes.NewReader(pngPixel),
		})
		assert.ErrorIs(t, err, domainerrors.ErrImageTooLarge)
	})

	t.Run("missing content", func(t *testing.T) {
		store := newTestStorage(t, 16)
		_, err := store.SaveProfileImage(ctx, uuid.New(), nil)
		assert.ErrorIs(t, err, domainerrors.ErrNotAnImage)
	})
}

func TestOpenProfileImage_NotFound(t *testing.T) {
	store := newTestStorage(t, 1024)
	ctx := context.Background()

	for _, name := range []string{"missing.png", "../secret", "a/b.png", "", ".hidden"} {
		_, _, err := store.OpenProfileImage(ctx, name)
		assert.ErrorIs(t, err, domainerrors.ErrNotFound, name)
	}
}

func TestDeleteProfileImage(t *testing.T) {
	store := newTestStorage(t, 2*1024*1024)
	ctx := context.Background()

	ref, err := store.SaveProfileImage(ctx, uuid.New(), &service.ImageUpload{
		Size:    int64(len(pngPixel)),
		Content: bytes.NewReader(pngPixel),
	})
	require.NoError(t, err)
	name := ref[strings.LastIndex(ref, "/")+1:]

	require.NoError(t, store.DeleteProfileImage(ctx, ref))

	_, _, err = store.OpenProfileImage(ctx, name)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	assert.NoError(t, store.DeleteProfileImage(ctx, ref), "already deleted")
	assert.NoError(t, store.DeleteProfileImage(ctx, "https://cdn.example.com/ada.png"), "not issued by this storage")
	assert.NoError(t, store.DeleteProfileImage(ctx, ""))
}
