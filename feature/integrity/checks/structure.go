package checks

import (
	"context"
	"fmt"

	"vehicle-catalogue/core/storage"

	"github.com/minio/minio-go/v7"
)

// RequiredPrefixes lists the file name prefixes that must occur at least
// once under the data prefix of the bucket.
var RequiredPrefixes = []string{
	"WotBuiltIn-", "WotGameVersion-",
}

// CheckStructure returns the required file kinds missing from the bucket.
func CheckStructure(ctx context.Context, client storage.Client, bucket, prefix string) ([]string, error) {
	var missing []string

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	for _, required := range RequiredPrefixes {
		opts := minio.ListObjectsOptions{
			Prefix:    storage.ObjectKey(prefix, required),
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err != nil {
				return nil, fmt.Errorf("failed to list %s: %w", opts.Prefix, obj.Err)
			}
			found = true
			break
		}

		if !found {
			missing = append(missing, required)
		}
	}

	return missing, nil
}
