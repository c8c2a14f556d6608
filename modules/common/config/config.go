package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config 구조체 - 모든 환경변수를 담음
type Config struct {
	// Redis
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisUseTLS   bool

	// Gemini API
	GeminiAPIKey     string
	GeminiExtraKeys  []string
	GeminiTextModel  string
	GeminiImageModel string
	GeminiTimeout    int // 호출당 타임아웃 (초)

	// Server
	Port string

	// Export
	WebPQuality float32

	// Session
	SessionTTLMinutes int
}

var globalConfig *Config

// LoadConfig - 환경변수 로드
func LoadConfig() (*Config, error) {
	// .env 파일 로드 (있으면)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	// Redis UseTLS 파싱
	useTLS := false
	if tlsStr := os.Getenv("REDIS_USE_TLS"); tlsStr != "" {
		if parsed, err := strconv.ParseBool(tlsStr); err == nil {
			useTLS = parsed
		}
	}

	// Gemini 호출 타임아웃 파싱
	timeout := 120
	if timeoutStr := os.Getenv("GEMINI_TIMEOUT_SECONDS"); timeoutStr != "" {
		if parsed, err := strconv.Atoi(timeoutStr); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	// WebP 품질 파싱
	quality := float32(90)
	if qualityStr := os.Getenv("WEBP_QUALITY"); qualityStr != "" {
		if parsed, err := strconv.ParseFloat(qualityStr, 32); err == nil && parsed > 0 && parsed <= 100 {
			quality = float32(parsed)
		}
	}

	// 세션 TTL 파싱
	sessionTTL := 120
	if ttlStr := os.Getenv("SESSION_TTL_MINUTES"); ttlStr != "" {
		if parsed, err := strconv.Atoi(ttlStr); err == nil && parsed > 0 {
			sessionTTL = parsed
		}
	}

	globalConfig = &Config{
		// Redis
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisUsername: getEnv("REDIS_USERNAME", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisUseTLS:   useTLS,

		// Gemini API
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiExtraKeys:  splitKeys(os.Getenv("GEMINI_API_KEYS")),
		GeminiTextModel:  getEnv("GEMINI_TEXT_MODEL", "gemini-3-flash-preview"),
		GeminiImageModel: getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		GeminiTimeout:    timeout,

		// Server
		Port: getEnv("PORT", "8080"),

		// Export
		WebPQuality: quality,

		// Session
		SessionTTLMinutes: sessionTTL,
	}

	// 필수 환경변수 검증
	if err := globalConfig.validate(); err != nil {
		return nil, err
	}

	log.Println("✅ Configuration loaded successfully")
	log.Printf("   Redis: %s:%s (TLS: %v)", globalConfig.RedisHost, globalConfig.RedisPort, globalConfig.RedisUseTLS)
	log.Printf("   Gemini text model: %s", globalConfig.GeminiTextModel)
	log.Printf("   Gemini image model: %s", globalConfig.GeminiImageModel)
	log.Printf("   Gemini API keys: %d", len(globalConfig.AllGeminiKeys()))

	return globalConfig, nil
}

// GetConfig - 로드된 설정 가져오기
func GetConfig() *Config {
	if globalConfig == nil {
		log.Fatal("❌ Config not loaded. Call LoadConfig() first.")
	}
	return globalConfig
}

// validate - 필수 환경변수 검증
func (c *Config) validate() error {
	if c.RedisHost == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

// AllGeminiKeys - 기본 키 + 추가 키 (429 로테이션용)
func (c *Config) AllGeminiKeys() []string {
	keys := []string{c.GeminiAPIKey}
	for _, k := range c.GeminiExtraKeys {
		if k != c.GeminiAPIKey {
			keys = append(keys, k)
		}
	}
	return keys
}

// getEnv - 환경변수 가져오기 (기본값 지원)
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitKeys - 쉼표로 구분된 API 키 목록 파싱
func splitKeys(raw string) []string {
	if raw == "" {
		return nil
	}
	var keys []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}

// GetRedisAddr - Redis 연결 문자열 생성
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
