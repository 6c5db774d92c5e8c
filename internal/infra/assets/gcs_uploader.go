package assets

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	productuc "example.com/storefront/internal/usecase/product"
)

const objectPrefix = "products/"

// GCSUploader stores product images as public objects in a GCS bucket and
// hands back their durable URLs.
type GCSUploader struct {
	client *storage.Client
	bucket string
}

func NewGCSUploader(client *storage.Client, bucket string) *GCSUploader {
	return &GCSUploader{client: client, bucket: bucket}
}

func (u *GCSUploader) Upload(ctx context.Context, b productuc.Blob) (string, error) {
	object := objectPrefix + uuid.NewString() + extensionFor(b.ContentType)

	w := u.client.Bucket(u.bucket).Object(object).NewWriter(ctx)
	if b.ContentType != "" {
		w.ContentType = b.ContentType
	}
	if _, err := w.Write(b.Data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object %s: %w", object, err)
	}

	return publicURL(u.bucket, object), nil
}

// Remove deletes the object behind a URL produced by Upload. URLs that do
// not point into the bucket are ignored.
func (u *GCSUploader) Remove(ctx context.Context, rawURL string) error {
	bucket, object, ok := parseObjectURL(rawURL)
	if !ok || bucket != u.bucket {
		return nil
	}
	if err := u.client.Bucket(bucket).Object(object).Delete(ctx); err != nil {
		return fmt.Errorf("delete object %s: %w", object, err)
	}
	return nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}

func publicURL(bucket, object string) string {
	segments := strings.Split(object, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, strings.Join(segments, "/"))
}

func parseObjectURL(raw string) (string, string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", false
	}
	host := strings.ToLower(parsed.Host)
	if host != "storage.googleapis.com" && host != "storage.cloud.google.com" {
		return "", "", false
	}

	p := strings.TrimLeft(parsed.EscapedPath(), "/")
	parts := strings.SplitN(p, "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}

	object, err := url.PathUnescape(parts[1])
	if err != nil {
		return "", "", false
	}
	return parts[0], object, true
}
