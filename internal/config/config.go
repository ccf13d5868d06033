package config

// Header constants.
const (
	HEADER_KEY_X_USER_ID   = "X-User-Id"
	HEADER_KEY_X_CLIENT_ID = "X-Client-Id"
)

// Environment variable keys.
const (
	ENV_KEY_APP_ENV   = "APP_ENV"
	ENV_KEY_PORT      = "PORT"
	ENV_KEY_LOG_LEVEL = "LOG_LEVEL"
	ENV_KEY_CLIENT_ID = "CLIENT_ID"

	ENV_KEY_DB_DATABASE             = "DB_DATABASE"
	ENV_KEY_DB_PASSWORD             = "DB_PASSWORD"
	ENV_KEY_DB_USER                 = "DB_USER"
	ENV_KEY_DB_PORT                 = "DB_PORT"
	ENV_KEY_DB_HOST                 = "DB_HOST"
	ENV_KEY_DB_MAX_OPEN_CONNECTIONS = "DB_MAX_OPEN_CONNECTIONS"

	ENV_KEY_REDIS_HOST     = "REDIS_HOST"
	ENV_KEY_REDIS_PORT     = "REDIS_PORT"
	ENV_KEY_REDIS_PASSWORD = "REDIS_PASSWORD"

	ENV_KEY_WORKER_CONCURRENCY = "WORKER_CONCURRENCY"
	ENV_KEY_SWEEP_CRON         = "SWEEP_CRON"

	ENV_KEY_FILE_STORAGE_PROVIDER = "FILE_STORAGE_PROVIDER"
	ENV_KEY_S3_BUCKET             = "S3_BUCKET"
	ENV_KEY_S3_TEMP_PATH          = "S3_TEMP_PATH"
	ENV_KEY_MINIO_BUCKET          = "MINIO_BUCKET"
	ENV_KEY_MINIO_TEMP_PATH       = "MINIO_TEMP_PATH"
	ENV_KEY_MINIO_PUBLIC_PATH     = "MINIO_PUBLIC_PATH"
	ENV_KEY_MINIO_ENDPOINT        = "MINIO_ENDPOINT"
	ENV_KEY_MINIO_ACCESS_KEY      = "MINIO_ACCESS_KEY"
	ENV_KEY_MINIO_SECRET_KEY      = "MINIO_SECRET_KEY"
)

const (
	// PRESIGN_URL_EXPIRE_MINUTES is the lifetime of presigned upload URLs.
	PRESIGN_URL_EXPIRE_MINUTES = 15

	// METRICS_CACHE_TTL_SECONDS is how long dashboard metrics stay cached.
	METRICS_CACHE_TTL_SECONDS = 300
)

type ContextKey uint

const (
	_ ContextKey = iota
	CTX_KEY_USER_ID
	CTX_KEY_USER_ROLE
)
