package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BlobStore keeps uploaded image bytes in MinIO. Only the object URL ends up
// in the images table.
type BlobStore struct {
	client *minio.Client
	bucket string
}

func NewBlobStore(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*BlobStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	// Ensure bucket exists
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	return &BlobStore{client: client, bucket: bucket}, nil
}

// UploadImage stores image bytes under a fresh object key and returns the
// key with the object's URL. The original filename contributes only its
// extension.
func (s *BlobStore) UploadImage(ctx context.Context, filename string, data []byte, contentType string) (string, string, error) {
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(filename))
	}
	key := uuid.New().String() + path.Ext(filename)

	reader := bytes.NewReader(data)
	info, err := s.client.PutObject(ctx, s.bucket, key, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("minio upload: %w", err)
	}

	url := s.client.EndpointURL().JoinPath(info.Bucket, info.Key).String()
	return key, url, nil
}

// DownloadImage retrieves the object bytes and content type for a key.
func (s *BlobStore) DownloadImage(ctx context.Context, key string) ([]byte, string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("minio get: %w", err)
	}
	defer obj.Close()

	stat, err := obj.Stat()
	if err != nil {
		return nil, "", fmt.Errorf("minio stat: %w", err)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, "", fmt.Errorf("minio read: %w", err)
	}
	return data, stat.ContentType, nil
}

// RemoveImage deletes an object.
func (s *BlobStore) RemoveImage(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
