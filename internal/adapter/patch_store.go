package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	m "github.com/mouse-blink/gorald/internal/model"
)

// PatchStore persists generated patches.
type PatchStore interface {
	// Save stores a patch under name and returns where it was stored.
	Save(ctx context.Context, name string, content []byte) (string, error)
}

// LocalPatchStore writes patches into a directory.
type LocalPatchStore struct {
	fs  SourceFSAdapter
	dir m.Path
}

// NewLocalPatchStore constructs a store writing below dir.
func NewLocalPatchStore(fs SourceFSAdapter, dir m.Path) *LocalPatchStore {
	return &LocalPatchStore{fs: fs, dir: dir}
}

// Dir returns the directory patches are written to.
func (s *LocalPatchStore) Dir() m.Path {
	return s.dir
}

// Save writes the patch as <dir>/<name>.
func (s *LocalPatchStore) Save(_ context.Context, name string, content []byte) (string, error) {
	path := s.fs.JoinPath(string(s.dir), name)
	if err := s.fs.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write patch %s: %w", path, err)
	}

	return string(path), nil
}

// S3Config holds the connection settings of an S3-compatible bucket.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// S3PatchStore uploads patches to an S3-compatible bucket. Objects are keyed
// <prefix>/<runID>/<name>.
type S3PatchStore struct {
	client     *minio.Client
	bucketName string
	region     string
	prefix     string
	runID      string
	initOnce   sync.Once
	initErr    error
}

// NewS3PatchStore validates cfg and creates the client. No request is made
// until the first Save.
func NewS3PatchStore(cfg S3Config, runID string) (*S3PatchStore, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("s3 endpoint is required")
	}

	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)

	if access == "" || secret == "" {
		return nil, errors.New("s3 access key and secret key are required")
	}

	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &S3PatchStore{
		client:     client,
		bucketName: bucket,
		region:     region,
		prefix:     strings.Trim(strings.TrimSpace(cfg.Prefix), "/"),
		runID:      strings.TrimSpace(runID),
	}, nil
}

func (s *S3PatchStore) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucketName)
		if err != nil {
			s.initErr = err
			return
		}

		if exists {
			return
		}

		s.initErr = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: s.region})
	})

	return s.initErr
}

// Save uploads the patch and returns its s3:// location.
func (s *S3PatchStore) Save(ctx context.Context, name string, content []byte) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", fmt.Errorf("ensure bucket: %w", err)
	}

	key := s.objectKey(name)

	_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/x-diff",
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return "s3://" + s.bucketName + "/" + key, nil
}

func (s *S3PatchStore) objectKey(name string) string {
	parts := make([]string, 0, 3)

	for _, p := range []string{s.prefix, s.runID, strings.TrimLeft(name, "/")} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, "/")
}

// MirroredPatchStore saves to a primary store and copies every patch to mirrors.
// The location reported is the primary's.
type MirroredPatchStore struct {
	Primary PatchStore
	Mirrors []PatchStore
}

// Save implements PatchStore.
func (s *MirroredPatchStore) Save(ctx context.Context, name string, content []byte) (string, error) {
	location, err := s.Primary.Save(ctx, name, content)
	if err != nil {
		return "", err
	}

	for _, mirror := range s.Mirrors {
		if _, err := mirror.Save(ctx, name, content); err != nil {
			return location, fmt.Errorf("failed to mirror patch %s: %w", name, err)
		}
	}

	return location, nil
}
