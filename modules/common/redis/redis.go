package redis

import (
	"context"
	"crypto/tls"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"bds-studio-server/modules/common/config"
)

const (
	// JobQueueKey - 생성 Job 대기열
	JobQueueKey = "studio:jobs"

	jobDataPrefix   = "studio:job:"
	jobDataSuffix   = ":data"
	cancelledSuffix = ":cancelled"

	jobDataTTL = 1 * time.Hour
	cancelTTL  = 1 * time.Hour
)

// Connect - Redis 연결 생성
func Connect(cfg *config.Config) *redis.Client {
	log.Printf("🔌 Connecting to Redis: %s", cfg.GetRedisAddr())

	var tlsConfig *tls.Config
	if cfg.RedisUseTLS {
		tlsConfig = &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: true, // managed Redis용
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Username:     cfg.RedisUsername,
		Password:     cfg.RedisPassword,
		TLSConfig:    tlsConfig,
		DB:           0,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// 연결 테스트
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Printf("🔍 Testing Redis connection...")
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("❌ Redis ping failed: %v", err)
		return nil
	}

	return rdb
}

// StoreJobData - Job payload 저장 (TTL 포함)
func StoreJobData(ctx context.Context, rdb *redis.Client, jobID string, payload []byte) error {
	return rdb.Set(ctx, jobDataPrefix+jobID+jobDataSuffix, payload, jobDataTTL).Err()
}

// FetchJobData - Job payload 조회
func FetchJobData(ctx context.Context, rdb *redis.Client, jobID string) ([]byte, error) {
	return rdb.Get(ctx, jobDataPrefix+jobID+jobDataSuffix).Bytes()
}

// SetJobCancelled - Job 취소 플래그 설정
func SetJobCancelled(ctx context.Context, rdb *redis.Client, jobID string) error {
	return rdb.Set(ctx, jobDataPrefix+jobID+cancelledSuffix, "1", cancelTTL).Err()
}

// IsJobCancelled - Job 취소 여부 확인
func IsJobCancelled(ctx context.Context, rdb *redis.Client, jobID string) bool {
	val, err := rdb.Get(ctx, jobDataPrefix+jobID+cancelledSuffix).Result()
	if err != nil {
		return false
	}
	return val == "1"
}
