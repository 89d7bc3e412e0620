package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPPort string

	WorkerPoolName     string
	WorkerPoolSize     int
	DedicatedPoolName  string
	DedicatedPoolSize  int
	WorkerMaxExecution time.Duration

	EventsURL       string
	OrderExchange   string
	OrderQueue      string
	DeadLetterQueue string
	DelayExchange   string
	MaxPriority     int
}

func LoadConfig() *Config {
	return &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		WorkerPoolName:     getEnv("WORKER_POOL_NAME", "worker-pool"),
		WorkerPoolSize:     getEnvInt("WORKER_POOL_SIZE", 10),
		DedicatedPoolName:  getEnv("DEDICATED_POOL_NAME", "worker-pool-dedicated"),
		DedicatedPoolSize:  getEnvInt("DEDICATED_POOL_SIZE", 15),
		WorkerMaxExecution: time.Duration(getEnvInt("WORKER_MAX_EXECUTE_MS", 60000)) * time.Millisecond,

		// 为空时禁用事件发布
		EventsURL:       getEnvFromFile("EVENTS_URL_FILE", "EVENTS_URL", ""),
		OrderExchange:   getEnv("ORDER_EXCHANGE", "orders_exchange"),
		OrderQueue:      getEnv("ORDER_QUEUE", "orders_queue"),
		DeadLetterQueue: getEnv("DEAD_LETTER_QUEUE", "dead_letter_queue"),
		DelayExchange:   getEnv("DELAY_EXCHANGE", "delay_exchange"),
		MaxPriority:     10, // 优先级队列最大优先级
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFromFile(fileKey, envKey, defaultValue string) string {
	if filePath := os.Getenv(fileKey); filePath != "" {
		if content, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return getEnv(envKey, defaultValue)
}
