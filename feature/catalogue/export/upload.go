package export

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"vehicle-catalogue/core/storage"

	"github.com/minio/minio-go/v7"
)

// Uploader publishes exported files to a bucket under a key prefix.
type Uploader struct {
	client storage.Client
	bucket string
	prefix string
}

// NewUploader creates an uploader for bucket/prefix.
func NewUploader(client storage.Client, bucket, prefix string) *Uploader {
	return &Uploader{client: client, bucket: bucket, prefix: prefix}
}

// Upload removes previously exported objects under the prefix and uploads
// files in their place. It returns the uploaded object keys.
func (u *Uploader) Upload(ctx context.Context, files []string) ([]string, error) {
	if err := u.removeStale(ctx); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(files))
	for _, file := range files {
		key, err := u.put(ctx, file)
		if err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (u *Uploader) put(ctx context.Context, file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	key := storage.ObjectKey(u.prefix, filepath.Base(file))
	_, err = u.client.PutObject(ctx, u.bucket, key, f, info.Size(), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}

func (u *Uploader) removeStale(ctx context.Context) error {
	listPrefix := storage.ObjectKey(u.prefix, "Exported-")

	var stale []minio.ObjectInfo
	for obj := range u.client.ListObjects(ctx, u.bucket, minio.ListObjectsOptions{Prefix: listPrefix}) {
		if obj.Err != nil {
			return fmt.Errorf("failed to list exports: %w", obj.Err)
		}
		if isExportName(path.Base(obj.Key)) {
			stale = append(stale, obj)
		}
	}
	if len(stale) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(stale))
	for _, obj := range stale {
		objectsCh <- obj
	}
	close(objectsCh)

	var errors []string
	for err := range u.client.RemoveObjects(ctx, u.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if err.Err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", err.ObjectName, err.Err))
		}
	}
	if len(errors) > 0 {
		return fmt.Errorf("removing previous exports had %d errors: %v", len(errors), errors)
	}
	return nil
}

func isExportName(name string) bool {
	if !strings.HasSuffix(name, ".csv") {
		return false
	}
	return strings.HasPrefix(name, "Exported-WotBuiltIn-") || strings.HasPrefix(name, "Exported-WotData-")
}
