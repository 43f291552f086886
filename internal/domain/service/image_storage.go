package service

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// ImageUpload is a profile image received from a client.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ImageStorage persists profile images and returns a reference path for them.
type ImageStorage interface {
	// SaveProfileImage stores the image and returns its public reference path.
	SaveProfileImage(ctx context.Context, userID uuid.UUID, upload *ImageUpload) (string, error)

	// OpenProfileImage streams a stored image by its object name.
	OpenProfileImage(ctx context.Context, name string) (io.ReadCloser, string, error)

	// DeleteProfileImage removes an image by the reference SaveProfileImage returned.
	// References this storage did not issue, and objects already gone, are ignored.
	DeleteProfileImage(ctx context.Context, ref string) error
}
