package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"quicknotes/config"
	"quicknotes/utils"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaStore holds note attachments in an S3-compatible bucket. Objects
// are keyed <resource-type>/<folder>/<name>; the delivery URL embeds a
// version segment so the resolver can recover the key from a stored URL.
type MediaStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
	folder  string
}

func NewMediaStore(cfg config.MediaConfig) (*MediaStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create media store client: %w", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MediaStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
		folder:  cfg.Folder,
	}, nil
}

// Upload stores an attachment and returns its delivery URL and media kind.
// The caller must not persist a note referencing the attachment until this
// returns successfully.
func (s *MediaStore) Upload(ctx context.Context, data []byte, contentType string) (string, string, error) {
	kind, err := KindFromContentType(contentType)
	if err != nil {
		return "", "", err
	}

	resourceType := ResourceTypeForKind(kind)
	publicID := s.folder + "/" + utils.GenerateID()
	key := resourceType + "/" + publicID

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload media: %w", err)
	}

	url := fmt.Sprintf("%s/%s/upload/v%d/%s%s",
		s.baseURL, resourceType, time.Now().Unix(), publicID, extensionFor(contentType))
	return url, kind, nil
}

// Delete removes the object behind a public ID. Removing a key that does
// not exist (wrong category, already gone) is a no-op at the store.
func (s *MediaStore) Delete(ctx context.Context, publicID string, resourceType string) error {
	key := resourceType + "/" + publicID
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// BestEffortDelete releases the attachment behind a stored URL. Failures
// are logged and swallowed: the note record is the source of truth and its
// mutation must never be blocked by attachment cleanup.
func (s *MediaStore) BestEffortDelete(mediaURL string, mediaKind string) {
	if s == nil || mediaURL == "" {
		return
	}

	publicID, err := PublicIDFromURL(mediaURL)
	if err != nil {
		log.Printf("Media delete skipped: %v", err)
		return
	}

	resourceType := ResourceTypeForKind(mediaKind)
	if err := s.Delete(context.Background(), publicID, resourceType); err != nil {
		log.Printf("Media delete failed for %s: %v", publicID, err)
		return
	}
	log.Printf("Deleted media %s", publicID)
}
