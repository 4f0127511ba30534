package helpers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// UploadObject streams r into bucket/objectPath and returns the number of bytes written.
func UploadObject(ctx context.Context, client *storage.Client, bucket, objectPath, contentType string, r io.Reader) (int64, error) {
	wc := client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // single request; uploads are capped well below chunking sizes
	n, err := io.Copy(wc, r)
	if err != nil {
		_ = wc.Close()
		return n, err
	}
	return n, wc.Close()
}

// PublicURL builds a public URL for an object. baseURL overrides the
// storage.googleapis.com host, e.g. for a CDN in front of the bucket.
func PublicURL(baseURL, bucket, objectPath string) string {
	if baseURL != "" {
		return strings.TrimRight(baseURL, "/") + "/" + objectPath
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}
