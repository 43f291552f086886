// Package storage keeps profile images in a gocloud.dev bucket.
package storage

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"identity/config"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"
	"identity/internal/errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

const profileImageDir = "profile-images"

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Params defines the dependencies of the image storage.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type blobImageStorage struct {
	bucket       *blob.Bucket
	maxBytes     int64
	publicPrefix string
}

// New opens the configured bucket and closes it when the app stops.
func New(params Params) (service.ImageStorage, error) {
	bucket, err := blob.OpenBucket(context.Background(), params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %q", params.Config.Storage.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("Image storage ready", slog.String("bucket", params.Config.Storage.BucketURL))

	return NewBlobImageStorage(bucket, params.Config.Storage.MaxImageBytes, params.Config.Storage.PublicPrefix), nil
}

// NewBlobImageStorage stores images in bucket under profile-images/.
func NewBlobImageStorage(bucket *blob.Bucket, maxBytes int64, publicPrefix string) service.ImageStorage {
	return &blobImageStorage{
		bucket:       bucket,
		maxBytes:     maxBytes,
		publicPrefix: strings.TrimSuffix(publicPrefix, "/"),
	}
}

// SaveProfileImage sniffs the content, rejects non-images and oversize files,
// and returns the public path of the stored object.
func (s *blobImageStorage) SaveProfileImage(ctx context.Context, userID uuid.UUID, upload *service.ImageUpload) (string, error) {
	if upload == nil || upload.Content == nil {
		return "", domainerrors.ErrNotAnImage
	}
	if s.maxBytes > 0 && upload.Size > s.maxBytes {
		return "", domainerrors.ErrImageTooLarge
	}

	content := upload.Content
	if s.maxBytes > 0 {
		content = io.LimitReader(content, s.maxBytes+1)
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return "", domainerrors.ErrStorageFailed.WrapMessage(err.Error())
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", domainerrors.ErrImageTooLarge
	}

	mtype := mimetype.Detect(data)
	if !allowedImageTypes[baseMIME(mtype.String())] {
		return "", domainerrors.ErrNotAnImage
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", domainerrors.ErrStorageFailed.WrapMessage(err.Error())
	}
	name := userID.String() + "-" + id.String() + mtype.Extension()

	err = s.bucket.WriteAll(ctx, path.Join(profileImageDir, name), data, &blob.WriterOptions{
		ContentType: mtype.String(),
	})
	if err != nil {
		return "", domainerrors.ErrStorageFailed.WrapMessage(err.Error())
	}

	return s.publicPrefix + "/" + profileImageDir + "/" + name, nil
}

// OpenProfileImage returns a reader for a stored image and its content type.
func (s *blobImageStorage) OpenProfileImage(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if name == "" || name != path.Base(name) || strings.HasPrefix(name, ".") {
		return nil, "", domainerrors.ErrNotFound
	}

	reader, err := s.bucket.NewReader(ctx, path.Join(profileImageDir, name), nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", domainerrors.ErrNotFound
		}

		return nil, "", domainerrors.ErrStorageFailed.WrapMessage(err.Error())
	}

	return reader, reader.ContentType(), nil
}

// DeleteProfileImage removes a stored image by its public reference path.
func (s *blobImageStorage) DeleteProfileImage(ctx context.Context, ref string) error {
	name, ok := strings.CutPrefix(ref, s.publicPrefix+"/"+profileImageDir+"/")
	if !ok || name == "" || name != path.Base(name) || strings.HasPrefix(name, ".") {
		return nil
	}

	if err := s.bucket.Delete(ctx, path.Join(profileImageDir, name)); err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return domainerrors.ErrStorageFailed.WrapMessage(err.Error())
	}

	return nil
}

func baseMIME(m string) string {
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = m[:i]
	}

	return strings.TrimSpace(m)
}
