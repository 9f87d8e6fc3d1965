// Package objectstore выдаёт presigned-ссылки для загрузки фотографий отходов.
package objectstore

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/config"
)

// uploadTTL - время жизни presigned-ссылки на загрузку.
const uploadTTL = 15 * time.Minute

// PhotoStore - S3-совместимое хранилище фотографий заявок.
type PhotoStore struct {
	client *minio.Client
	bucket string
}

// Upload - presigned PUT для загрузки файла клиентом напрямую в хранилище.
type Upload struct {
	UploadURL string
	PhotoURL  string
	ObjectKey string
}

// NewPhotoStore создаёт клиент MinIO и при необходимости bucket.
func NewPhotoStore(ctx context.Context, cfg config.ObjectStoreConfig) (*PhotoStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client failed: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("bucket check failed: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("creating bucket failed: %w", err)
		}
	}

	return &PhotoStore{client: client, bucket: cfg.Bucket}, nil
}

// PresignUpload выдаёт presigned PUT для нового объекта.
// Имя объекта генерируется сервером, расширение берётся из имени файла клиента.
func (s *PhotoStore) PresignUpload(ctx context.Context, fileName string) (Upload, error) {
	key := uuid.NewString() + path.Ext(fileName)

	uploadURL, err := s.client.PresignedPutObject(ctx, s.bucket, key, uploadTTL)
	if err != nil {
		return Upload{}, fmt.Errorf("presign failed: %w", err)
	}

	photoURL := url.URL{
		Scheme: uploadURL.Scheme,
		Host:   uploadURL.Host,
		Path:   "/" + s.bucket + "/" + key,
	}

	return Upload{
		UploadURL: uploadURL.String(),
		PhotoURL:  photoURL.String(),
		ObjectKey: key,
	}, nil
}
