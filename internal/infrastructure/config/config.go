package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all configuration for the fraud alert service and scan worker.
type Config struct {
	HTTPPort    string `validate:"required,numeric"`
	GRPCPort    string `validate:"required,numeric"`
	Environment string
	ServiceName string `validate:"required"`
	LogLevel    string `validate:"oneof=debug info warn error"`
	LogFormat   string `validate:"oneof=json text"`

	// Audit trail. Empty disables recording.
	DatabaseURL string `validate:"omitempty,url"`
	DBMaxConns  int32  `validate:"gte=0"`

	KafkaBrokers         []string
	KafkaGroup           string `validate:"required"`
	KafkaSubmittedTopic  string `validate:"required"`
	KafkaAssessmentTopic string `validate:"required"`
	KafkaTLS             bool
	KafkaSASLMechanism   string `validate:"omitempty,oneof=PLAIN SCRAM-SHA-256 SCRAM-SHA-512"`
	KafkaSASLUsername    string
	KafkaSASLPassword    string

	OCRServiceURL string `validate:"omitempty,url"`
	OCRAPIKey     string
	OCRTimeout    time.Duration `validate:"gt=0"`

	MLModelURL string        `validate:"omitempty,url"`
	MLWeight   float64       `validate:"gte=0,lte=1"`
	MLTimeout  time.Duration `validate:"gt=0"`

	MaxUploadBytes int64 `validate:"gt=0"`
	MaxTextBytes   int   `validate:"gt=0"`

	// Per-client requests per second. Zero disables rate limiting.
	RateLimit float64 `validate:"gte=0"`
	RateBurst int     `validate:"gte=1"`

	// Shared limit across replicas, in requests per minute per client.
	RedisAddr        string
	RedisGlobalLimit int `validate:"gte=0"`

	JWTSecret        string
	JWTPublicKeyFile string
	JWTIssuer        string

	GRPCTLSCertFile string `validate:"required_with=GRPCTLSKeyFile"`
	GRPCTLSKeyFile  string `validate:"required_with=GRPCTLSCertFile"`
	GRPCReflection  bool

	OTLPEndpoint    string
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		HTTPPort:    getEnv("HTTP_PORT", "9090"),
		GRPCPort:    getEnv("GRPC_PORT", "9091"),
		Environment: getEnv("ENVIRONMENT", "development"),
		ServiceName: getEnv("SERVICE_NAME", "fraudalert"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "json")),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBMaxConns:  int32(getEnvInt("DB_MAX_CONNS", 10)),

		KafkaBrokers:         getEnvList("KAFKA_BROKERS"),
		KafkaGroup:           getEnv("KAFKA_GROUP", "fraudalert-scanworker"),
		KafkaSubmittedTopic:  getEnv("KAFKA_SUBMITTED_TOPIC", "job-posts.submitted"),
		KafkaAssessmentTopic: getEnv("KAFKA_ASSESSMENT_TOPIC", "fraud.assessments"),
		KafkaTLS:             getEnvBool("KAFKA_TLS", false),
		KafkaSASLMechanism:   getEnv("KAFKA_SASL_MECHANISM", ""),
		KafkaSASLUsername:    getEnv("KAFKA_SASL_USERNAME", ""),
		KafkaSASLPassword:    getEnv("KAFKA_SASL_PASSWORD", ""),

		OCRServiceURL: getEnv("OCR_SERVICE_URL", ""),
		OCRAPIKey:     getEnv("OCR_API_KEY", ""),
		OCRTimeout:    getEnvDuration("OCR_TIMEOUT", 30*time.Second),

		MLModelURL: getEnv("ML_MODEL_URL", ""),
		MLWeight:   getEnvFloat("ML_WEIGHT", 0),
		MLTimeout:  getEnvDuration("ML_TIMEOUT", 2*time.Second),

		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		MaxTextBytes:   getEnvInt("MAX_TEXT_BYTES", 64<<10),

		RateLimit: getEnvFloat("RATE_LIMIT", 10),
		RateBurst: getEnvInt("RATE_BURST", 20),

		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisGlobalLimit: getEnvInt("REDIS_GLOBAL_LIMIT", 600),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTPublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
		JWTIssuer:        getEnv("JWT_ISSUER", ""),

		GRPCTLSCertFile: getEnv("GRPC_TLS_CERT_FILE", ""),
		GRPCTLSKeyFile:  getEnv("GRPC_TLS_KEY_FILE", ""),
		GRPCReflection:  getEnvBool("GRPC_REFLECTION", false),

		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

// Validate rejects missing or out-of-range values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.KafkaSASLMechanism != "" && c.KafkaSASLUsername == "" {
		return fmt.Errorf("invalid configuration: KAFKA_SASL_USERNAME is required with KAFKA_SASL_MECHANISM")
	}
	return nil
}

// AuditEnabled reports whether assessments are recorded in PostgreSQL.
func (c *Config) AuditEnabled() bool { return c.DatabaseURL != "" }

// KafkaEnabled reports whether events go to Kafka instead of the log.
func (c *Config) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

// AuthEnabled reports whether API calls require a bearer token.
func (c *Config) AuthEnabled() bool { return c.JWTSecret != "" || c.JWTPublicKeyFile != "" }

// GRPCTLSEnabled reports whether the gRPC server terminates TLS.
func (c *Config) GRPCTLSEnabled() bool { return c.GRPCTLSCertFile != "" }

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
