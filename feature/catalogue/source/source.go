package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"vehicle-catalogue/core/storage"

	"github.com/minio/minio-go/v7"
)

// Source lists and opens data files by bare file name.
type Source interface {
	List(ctx context.Context) ([]string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	String() string
}

// DirSource reads data files from a local directory.
type DirSource struct {
	Dir string
}

// NewDirSource creates a source over dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

// List returns the names of the regular files in the directory.
func (s *DirSource) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list data directory %s: %w", s.Dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// Open opens one file of the directory.
func (s *DirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid data file name %q", name)
	}
	return os.Open(filepath.Join(s.Dir, name))
}

func (s *DirSource) String() string {
	return s.Dir
}

// BucketSource reads data files stored under a key prefix of a bucket.
type BucketSource struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucketSource creates a source over bucket/prefix.
func NewBucketSource(client storage.Client, bucket, prefix string) *BucketSource {
	return &BucketSource{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// List returns the names of the objects directly under the prefix.
func (s *BucketSource) List(ctx context.Context) ([]string, error) {
	listPrefix := ""
	if s.prefix != "" {
		listPrefix = s.prefix + "/"
	}

	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: listPrefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list bucket %s: %w", s.bucket, obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, listPrefix)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Open fetches one object.
func (s *BucketSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if name != path.Base(name) {
		return nil, fmt.Errorf("invalid data file name %q", name)
	}
	obj, err := s.client.GetObject(ctx, s.bucket, storage.ObjectKey(s.prefix, name), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
	}
	return obj, nil
}

func (s *BucketSource) String() string {
	return "s3://" + path.Join(s.bucket, s.prefix)
}

// ReadAll opens name and reads it completely.
func ReadAll(ctx context.Context, src Source, name string) ([]byte, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}
