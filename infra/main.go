package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/tnqbao/gau-bakery-service/config"
	"github.com/tnqbao/gau-bakery-service/entity"
	"github.com/tnqbao/gau-bakery-service/infra/produce"
)

// AssetBackend is implemented by DiskAssetStore, MinioClient and S3Client.
type AssetBackend interface {
	Save(ctx context.Context, data []byte, originalName, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
	List(ctx context.Context) ([]entity.Asset, error)
}

type Infra struct {
	Redis     *RedisClient
	Postgres  *PostgresClient
	Logger    *LoggerClient
	RabbitMQ  *RabbitMQClient
	Produce   *produce.Produce
	Telemetry *TelemetryClient
	Disk      *DiskAssetStore
	Minio     *MinioClient
	S3        *S3Client
	Assets    AssetBackend
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	telemetry := InitTelemetryClient(cfg.EnvConfig)
	if telemetry == nil {
		panic("Failed to initialize Telemetry service")
	}

	infraInstance = &Infra{
		Postgres:  postgres,
		Logger:    logger,
		Telemetry: telemetry,
	}

	// Redis and RabbitMQ are optional
	if cfg.EnvConfig.Redis.RedisHost != "" {
		infraInstance.Redis = InitRedisClient(cfg.EnvConfig)
		if infraInstance.Redis == nil {
			panic("Failed to initialize Redis service")
		}
	}

	if cfg.EnvConfig.RabbitMQ.Host != "" {
		infraInstance.RabbitMQ = InitRabbitMQClient(cfg.EnvConfig)
		if infraInstance.RabbitMQ == nil {
			panic("Failed to initialize RabbitMQ service")
		}
		infraInstance.Produce = produce.InitProduce(infraInstance.RabbitMQ.Channel)
	}

	switch cfg.EnvConfig.Asset.Driver {
	case "disk":
		infraInstance.Disk = InitDiskAssetStore(cfg.EnvConfig)
		if infraInstance.Disk == nil {
			panic("Failed to initialize disk asset store")
		}
		infraInstance.Assets = infraInstance.Disk
	case "minio":
		infraInstance.Minio = InitMinioClient(cfg.EnvConfig)
		if infraInstance.Minio == nil {
			panic("Failed to initialize MinIO service")
		}
		infraInstance.Assets = infraInstance.Minio
	case "s3":
		infraInstance.S3 = InitS3Client(cfg.EnvConfig)
		if infraInstance.S3 == nil {
			panic("Failed to initialize S3 service")
		}
		infraInstance.Assets = infraInstance.S3
	default:
		panic(fmt.Sprintf("Unknown asset driver %q", cfg.EnvConfig.Asset.Driver))
	}

	return infraInstance
}

func GetClient() *Infra {
	if infraInstance == nil {
		panic("Infra not initialized. Call InitInfra() first.")
	}
	return infraInstance
}

// Close releases connections and flushes telemetry.
func (i *Infra) Close(ctx context.Context) error {
	var errs []error
	if i.RabbitMQ != nil {
		errs = append(errs, i.RabbitMQ.Close())
	}
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	if i.Postgres != nil {
		errs = append(errs, i.Postgres.Close())
	}
	if i.Telemetry != nil {
		errs = append(errs, i.Telemetry.Shutdown(ctx))
	}
	if i.Logger != nil {
		errs = append(errs, i.Logger.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
