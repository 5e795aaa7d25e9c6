package media

import (
	"context"
	"errors"
	"io"
)

// Kind identifies which profile asset an upload or delete refers to; it
// determines the hosting provider's resource type.
type Kind string

const (
	KindIDFront       Kind = "id_front"
	KindIDBack        Kind = "id_back"
	KindLivenessVideo Kind = "liveness_video"
	KindProfilePhoto  Kind = "profile_photo"
	KindProfileVideo  Kind = "profile_video"
)

// ResourceType maps a kind to the provider resource type used for both
// upload and delete. Deleting with the wrong type silently orphans the
// asset.
func (k Kind) ResourceType() string {
	switch k {
	case KindLivenessVideo, KindProfileVideo:
		return "video"
	default:
		return "image"
	}
}

// Asset is a hosted file: the URL that gets rendered and the provider
// public id required to delete it later.
type Asset struct {
	URL      string
	PublicID string
}

// Store abstracts the third-party asset host.
type Store interface {
	Upload(ctx context.Context, r io.Reader, kind Kind) (*Asset, error)
	Delete(ctx context.Context, publicID string, kind Kind) error
}

type disabledStore struct{}

// NewDisabledStore returns a Store that fails every call. Used when no
// hosting credentials are configured so the rest of the app still boots.
func NewDisabledStore() Store {
	return disabledStore{}
}

func (disabledStore) Upload(context.Context, io.Reader, Kind) (*Asset, error) {
	return nil, errors.New("media store not configured")
}

func (disabledStore) Delete(context.Context, string, Kind) error {
	return errors.New("media store not configured")
}
