// Package gcs stores song media on Google Cloud Storage.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
	"github.com/oksasatya/go-music-catalog/internal/domain/repository"
	"github.com/oksasatya/go-music-catalog/pkg/helpers"
)

// AssetStore uses the object path as the asset id.
type AssetStore struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewAssetStore(client *storage.Client, bucket, baseURL string) *AssetStore {
	return &AssetStore{client: client, bucket: bucket, baseURL: baseURL}
}

func (s *AssetStore) configured() error {
	if s == nil || s.client == nil || s.bucket == "" {
		return fmt.Errorf("gcs not configured: %w", errs.ErrUpstream)
	}
	return nil
}

// ObjectPath builds a collision-free object name inside folder, keeping the upload's extension.
func ObjectPath(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(folder, uuid.NewString()+ext)
}

func (s *AssetStore) Upload(ctx context.Context, r io.Reader, contentType, folder, filename string) (entity.Asset, error) {
	if err := s.configured(); err != nil {
		return entity.Asset{}, err
	}
	objectPath := ObjectPath(folder, filename)
	if _, err := helpers.UploadObject(ctx, s.client, s.bucket, objectPath, contentType, r); err != nil {
		return entity.Asset{}, fmt.Errorf("upload %s: %v: %w", objectPath, err, errs.ErrUpstream)
	}
	return entity.Asset{URL: helpers.PublicURL(s.baseURL, s.bucket, objectPath), AssetID: objectPath}, nil
}

// Destroy deletes the object; an object that is already gone counts as deleted.
func (s *AssetStore) Destroy(ctx context.Context, assetID string) error {
	if assetID == "" {
		return nil
	}
	if err := s.configured(); err != nil {
		return err
	}
	err := s.client.Bucket(s.bucket).Object(assetID).Delete(ctx)
	if err == nil || errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return fmt.Errorf("destroy %s: %v: %w", assetID, err, errs.ErrUpstream)
}

var _ repository.AssetStore = (*AssetStore)(nil)
