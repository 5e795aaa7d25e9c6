package media

import (
	"context"
	"fmt"
	"io"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/takeyours/takeyours-backend/internal/config"
)

type cloudinaryStore struct {
	cld    *cld.Cloudinary
	folder string
}

// NewCloudinaryStore creates a Store backed by Cloudinary.
func NewCloudinaryStore(cfg *config.CloudinaryConfig) (Store, error) {
	client, err := cld.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &cloudinaryStore{cld: client, folder: cfg.Folder}, nil
}

func (s *cloudinaryStore) Upload(ctx context.Context, r io.Reader, kind Kind) (*Asset, error) {
	publicID := fmt.Sprintf("%s_%s", kind, uuid.NewString())
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     publicID,
		ResourceType: kind.ResourceType(),
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	return &Asset{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (s *cloudinaryStore) Delete(ctx context.Context, publicID string, kind Kind) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: kind.ResourceType(),
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy failed: %w", err)
	}
	return nil
}
