package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	RedisAddr               string
	KafkaBrokers            []string
	KafkaDeliveryTopic      string
	KafkaGroupID            string
	QueueDriver             string // memory or kafka
	QueueWorkers            int
	QueueBuffer             int
	FanoutConcurrency       int
	SyncFollowers           bool
	EventsPerPage           int
	LikesPerPage            int
	NotificationsPerPage    int
	Location                *time.Location
	JWTSecret               string
	OTLPEndpoint            string
	LogLevel                string
	LogFormat               string
}

// Load reads the configuration from the environment, after loading .env if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "hooly"),
		RedisAddr:               getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:            splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaDeliveryTopic:      getEnv("KAFKA_DELIVERY_TOPIC", "hooly.deliveries"),
		KafkaGroupID:            getEnv("KAFKA_GROUP_ID", "hooly-delivery"),
		QueueDriver:             getEnv("QUEUE_DRIVER", "memory"),
		QueueWorkers:            getEnvInt("QUEUE_WORKERS", 4),
		QueueBuffer:             getEnvInt("QUEUE_BUFFER", 1024),
		FanoutConcurrency:       getEnvInt("FANOUT_CONCURRENCY", 8),
		SyncFollowers:           getEnvBool("SYNC_FOLLOWERS", false),
		EventsPerPage:           getEnvInt("EVENTS_PER_PAGE", 3),
		LikesPerPage:            getEnvInt("LIKES_PER_PAGE", 10),
		NotificationsPerPage:    getEnvInt("NOTIFICATIONS_PER_PAGE", 20),
		Location:                getEnvLocation("TIMEZONE", time.UTC),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		OTLPEndpoint:            getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFormat:               getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n < 1 {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvLocation(key string, defaultValue *time.Location) *time.Location {
	name := os.Getenv(key)
	if name == "" {
		return defaultValue
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Unknown %s %q, falling back to %s", key, name, defaultValue)
		return defaultValue
	}
	return loc
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
