// Package media integrates the external media host that durably stores
// uploaded plant images.  The rest of the service only ever sees the public
// URL the host returns; nothing here is re-read or validated afterwards.
package media

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CloudinaryStore uploads files to a Cloudinary account.  Credentials come
// from process configuration; a misconfigured account fails at startup, not
// per request.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore builds a store from account credentials.
func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

// Upload sends the file at path to the given destination folder and returns
// the durable public URL.  Each asset gets a fresh UUID as its public ID so
// concurrent uploads of identically named files never collide.
func (s *CloudinaryStore) Upload(ctx context.Context, path, folder string) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, path, uploader.UploadParams{
		Folder:   folder,
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}
