package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type EnvConfig struct {
	Postgres struct {
		HOST     string
		Database string
		Username string
		Password string
		Port     string
		SSLMode  string
	}
	CORS struct {
		AllowDomains string
		GlobalDomain string
	}
	Redis struct {
		Password  string
		Database  int
		RedisHost string
		RedisPort string
		ListTTL   time.Duration
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	Asset struct {
		Driver        string // disk, minio or s3
		Dir           string
		PublicPath    string
		Bucket        string
		MaxUploadSize int64
		MaxImageWidth uint
	}
	Minio struct {
		Endpoint     string
		RootUser     string
		RootPassword string
		UseSSL       bool
	}
	S3 struct {
		Region    string
		Endpoint  string
		AccessKey string
		SecretKey string
	}
	Reconcile struct {
		Interval time.Duration
		Grace    time.Duration
	}
	Grafana struct {
		OTLPEndpoint string
		ServiceName  string
	}
	Environment struct {
		Mode  string
		Group string
	}
	HTTPPort string
}

func LoadEnvConfig() *EnvConfig {
	var config EnvConfig

	// Postgres
	config.Postgres.HOST = os.Getenv("PGPOOL_HOST")
	config.Postgres.Database = os.Getenv("PGPOOL_DB")
	config.Postgres.Username = os.Getenv("PGPOOL_USER")
	config.Postgres.Password = os.Getenv("PGPOOL_PASSWORD")
	config.Postgres.Port = getEnv("PGPOOL_PORT", "5432")
	config.Postgres.SSLMode = getEnv("PGPOOL_SSLMODE", "disable")

	config.CORS.AllowDomains = os.Getenv("ALLOWED_DOMAINS")
	config.CORS.GlobalDomain = os.Getenv("GLOBAL_DOMAIN")

	// Redis is optional, an empty host disables the list cache
	config.Redis.Password = os.Getenv("REDIS_PASSWORD")
	config.Redis.Database, _ = strconv.Atoi(os.Getenv("REDIS_DB"))
	config.Redis.RedisHost = os.Getenv("REDIS_HOST")
	config.Redis.RedisPort = getEnv("REDIS_PORT", "6379")
	config.Redis.ListTTL = getSeconds("LIST_CACHE_TTL", 60)

	// RabbitMQ is optional, an empty host disables the cleanup queue
	config.RabbitMQ.Host = os.Getenv("RABBITMQ_HOST")
	config.RabbitMQ.Port = getEnv("RABBITMQ_PORT", "5672")
	config.RabbitMQ.Username = getEnv("RABBITMQ_USER", "guest")
	config.RabbitMQ.Password = getEnv("RABBITMQ_PASSWORD", "guest")

	config.Asset.Driver = strings.ToLower(getEnv("ASSET_DRIVER", "disk"))
	config.Asset.Dir = getEnv("ASSET_DIR", "public/assets")
	config.Asset.PublicPath = getEnv("ASSET_PUBLIC_PATH", "/assets")
	config.Asset.Bucket = getEnv("ASSET_BUCKET", "bakery-assets")
	config.Asset.MaxUploadSize = 10 << 20
	if val := os.Getenv("MAX_UPLOAD_BYTES"); val != "" {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil && size > 0 {
			config.Asset.MaxUploadSize = size
		}
	}
	if val := os.Getenv("IMAGE_MAX_WIDTH"); val != "" {
		if width, err := strconv.ParseUint(val, 10, 32); err == nil {
			config.Asset.MaxImageWidth = uint(width)
		}
	}

	config.Minio.Endpoint = os.Getenv("MINIO_ENDPOINT")
	config.Minio.RootUser = os.Getenv("MINIO_ROOT_USER")
	config.Minio.RootPassword = os.Getenv("MINIO_ROOT_PASSWORD")
	config.Minio.UseSSL = os.Getenv("MINIO_USE_SSL") == "true"

	config.S3.Region = getEnv("S3_REGION", "us-east-1")
	config.S3.Endpoint = os.Getenv("S3_ENDPOINT")
	config.S3.AccessKey = os.Getenv("S3_ACCESS_KEY")
	config.S3.SecretKey = os.Getenv("S3_SECRET_KEY")

	config.Reconcile.Interval = getSeconds("RECONCILE_INTERVAL", 0)
	config.Reconcile.Grace = getSeconds("RECONCILE_GRACE", 3600)

	// Grafana/OpenTelemetry, empty endpoint keeps everything local
	grafanaEndpoint := os.Getenv("GRAFANA_OTLP_ENDPOINT")
	// Remove protocol for OpenTelemetry client to avoid duplicate protocols
	if strings.HasPrefix(grafanaEndpoint, "https://") {
		config.Grafana.OTLPEndpoint = strings.TrimPrefix(grafanaEndpoint, "https://")
	} else if strings.HasPrefix(grafanaEndpoint, "http://") {
		config.Grafana.OTLPEndpoint = strings.TrimPrefix(grafanaEndpoint, "http://")
	} else {
		config.Grafana.OTLPEndpoint = grafanaEndpoint
	}
	config.Grafana.ServiceName = getEnv("SERVICE_NAME", "gau-bakery-service")

	config.Environment.Mode = getEnv("DEPLOY_ENV", "development")
	config.Environment.Group = getEnv("GROUP_NAME", "local")

	config.HTTPPort = getEnv("HTTP_PORT", "8080")

	return &config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getSeconds(key string, defaultSeconds int) time.Duration {
	seconds := defaultSeconds
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed >= 0 {
			seconds = parsed
		}
	}
	return time.Duration(seconds) * time.Second
}
