package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/teamcbatch1/conceptclarity/server/config"
)

// AvatarStore keeps profile images in an S3-compatible bucket; the user row
// stores only the object URL.
type AvatarStore struct {
	client   *minio.Client
	bucket   string
	endpoint string
}

func NewAvatarStore(cfg config.Config) (*AvatarStore, error) {
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: false,
		},
	)
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(context.Background(), cfg.MinIOBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &AvatarStore{client: client, bucket: cfg.MinIOBucket, endpoint: cfg.MinIOEndpoint}, nil
}

// UploadAvatar stores the image under a per-user key, replacing any previous
// avatar, and returns the public object URL.
func (s *AvatarStore) UploadAvatar(ctx context.Context, userID int, reader io.Reader, size int64, contentType string) (string, error) {
	key := path.Join("users", fmt.Sprintf("%d", userID), "avatar")

	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("http://%s/%s/%s", s.endpoint, s.bucket, key), nil
}
