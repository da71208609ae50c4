package infra

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tnqbao/gau-bakery-service/config"
	"github.com/tnqbao/gau-bakery-service/entity"
	"github.com/tnqbao/gau-bakery-service/utils"
)

// MinioClient stores assets as objects in a single bucket.
type MinioClient struct {
	Client   *minio.Client
	Endpoint string
	Bucket   string
}

func InitMinioClient(cfg *config.EnvConfig) *MinioClient {
	endpoint := cfg.Minio.Endpoint
	if endpoint == "" {
		panic("MinIO endpoint is not configured")
	}

	rootUser := cfg.Minio.RootUser
	if rootUser == "" {
		panic("MinIO root user is not configured")
	}

	rootPassword := cfg.Minio.RootPassword
	if rootPassword == "" {
		panic("MinIO root password is not configured")
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(rootUser, rootPassword, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	client := &MinioClient{
		Client:   minioClient,
		Endpoint: endpoint,
		Bucket:   cfg.Asset.Bucket,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.EnsureBucket(ctx); err != nil {
		log.Printf("Failed to prepare MinIO bucket %s: %v", client.Bucket, err)
		return nil
	}

	return client
}

// EnsureBucket creates the asset bucket when it does not exist yet.
func (m *MinioClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.Client.BucketExists(ctx, m.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}

	if err := m.Client.MakeBucket(ctx, m.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, errBucketExists := m.Client.BucketExists(ctx, m.Bucket)
		if errBucketExists == nil && exists {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (m *MinioClient) Save(ctx context.Context, data []byte, originalName, contentType string) (string, error) {
	name := utils.NewAssetName(originalName, contentType, time.Now())

	_, err := m.Client.PutObject(ctx, m.Bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return name, nil
}

// Delete removes the object. S3 semantics already treat a missing key as success.
func (m *MinioClient) Delete(ctx context.Context, filename string) error {
	if !utils.ValidAssetName(filename) {
		return fmt.Errorf("invalid asset name %q", filename)
	}
	if err := m.Client.RemoveObject(ctx, m.Bucket, filename, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", filename, err)
	}
	return nil
}

func (m *MinioClient) List(ctx context.Context) ([]entity.Asset, error) {
	objectsCh := m.Client.ListObjects(ctx, m.Bucket, minio.ListObjectsOptions{
		Recursive: true,
	})

	assets := make([]entity.Asset, 0)
	for object := range objectsCh {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", object.Err)
		}
		assets = append(assets, entity.Asset{
			Name:    object.Key,
			Size:    object.Size,
			ModTime: object.LastModified,
		})
	}
	return assets, nil
}
