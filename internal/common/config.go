package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	Worker   WorkerConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Upload   UploadConfig
	Stream   StreamConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
	HealthTimeout   time.Duration
}

// HTTPConfig holds the front-service HTTP configuration
type HTTPConfig struct {
	Addr               string
	CORSAllowedOrigins string
}

// WorkerConfig holds the worker service and execution engine configuration
type WorkerConfig struct {
	GRPCAddr        string        // listen address for workerd
	DialAddr        string        // address docstreamd dials for dispatch
	DispatchTimeout time.Duration // hard deadline on StartProcessing from ingest
	PageDelay       time.Duration // simulated per-page work
	PageCount       int           // simulated page count when no extractor is wired
}

// RedisConfig holds the event channel configuration
type RedisConfig struct {
	URL string
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// UploadConfig holds upload validation configuration
type UploadConfig struct {
	MaxBytes int64
}

// StreamConfig holds progress-stream bridge configuration
type StreamConfig struct {
	HeartbeatInterval time.Duration
	MaxLifetime       time.Duration
	RetryMillis       int
	SubscriberBuffer  int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			HealthTimeout:   getEnvAsDuration("DB_HEALTH_TIMEOUT", 3*time.Second),
		},
		HTTP: HTTPConfig{
			Addr:               getEnv("HTTP_ADDR", ":8080"),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Worker: WorkerConfig{
			GRPCAddr:        getEnv("GRPC_ADDR", ":9090"),
			DialAddr:        getEnv("WORKER_ADDR", "localhost:9090"),
			DispatchTimeout: getEnvAsDuration("DISPATCH_TIMEOUT", 10*time.Second),
			PageDelay:       getEnvAsDuration("PAGE_DELAY", 400*time.Millisecond),
			PageCount:       getEnvAsInt("PAGE_COUNT", 12),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		},
		Storage: StorageConfig{
			Endpoint:  getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:    getEnv("STORAGE_BUCKET", "docstream"),
			UseSSL:    getEnvAsBool("STORAGE_USE_SSL", false),
		},
		Upload: UploadConfig{
			MaxBytes: getEnvAsInt64("UPLOAD_MAX_BYTES", 50<<20),
		},
		Stream: StreamConfig{
			HeartbeatInterval: getEnvAsDuration("STREAM_HEARTBEAT_INTERVAL", 25*time.Second),
			MaxLifetime:       getEnvAsDuration("STREAM_MAX_LIFETIME", 5*time.Minute),
			RetryMillis:       getEnvAsInt("STREAM_RETRY_MILLIS", 3000),
			SubscriberBuffer:  getEnvAsInt("STREAM_SUBSCRIBER_BUFFER", 64),
		},
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Redis.URL == "" {
		return NewAppError("CONFIG_ERROR", "REDIS_URL is required", ErrInvalidInput)
	}
	if c.Upload.MaxBytes <= 0 {
		return NewAppError("CONFIG_ERROR", "UPLOAD_MAX_BYTES must be positive", ErrInvalidInput)
	}
	if c.Worker.PageCount <= 0 {
		return NewAppError("CONFIG_ERROR", "PAGE_COUNT must be positive", ErrInvalidInput)
	}
	if c.Stream.SubscriberBuffer < 64 {
		// 64 is the floor the bridge is tuned against; smaller buffers make
		// slow-subscriber teardown trigger on ordinary bursts.
		return NewAppError("CONFIG_ERROR", "STREAM_SUBSCRIBER_BUFFER must be at least 64", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
