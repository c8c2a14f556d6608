package gemini

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GenerateContentWithRetry - 429 에러 시 여러 API 키로 재시도하는 헬퍼 함수
// 각 키당 최대 3번 재시도하며, 429가 아닌 에러는 즉시 반환한다.
func GenerateContentWithRetry(
	ctx context.Context,
	apiKeys []string,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {

	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("no API keys provided")
	}

	const maxRetriesPerKey = 3
	var lastErr error

	for keyIndex, apiKey := range apiKeys {
		for attempt := 1; attempt <= maxRetriesPerKey; attempt++ {
			if attempt > 1 {
				log.Printf("   🔄 Retry attempt %d/%d for key #%d", attempt, maxRetriesPerKey, keyIndex+1)
			}

			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				log.Printf("⚠️  [Gemini Retry] Failed to create client with key #%d: %v", keyIndex+1, err)
				lastErr = err
				continue
			}

			result, err := client.Models.GenerateContent(ctx, model, contents, config)
			if err == nil {
				return result, nil
			}
			lastErr = err

			// 컨텍스트 취소/타임아웃은 재시도 의미 없음
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			// 429가 아닌 다른 에러면 바로 반환 (재시도 안 함)
			if !is429Error(err) {
				return nil, err
			}

			log.Printf("⚠️  [Gemini Retry] Key #%d hit rate limit (429) on attempt %d/%d", keyIndex+1, attempt, maxRetriesPerKey)
			if attempt < maxRetriesPerKey {
				time.Sleep(2 * time.Second)
			}
		}

		log.Printf("⚠️  [Gemini Retry] Key #%d exhausted, trying next key...", keyIndex+1)
	}

	return nil, fmt.Errorf("all %d API keys exhausted, last error: %w", len(apiKeys), lastErr)
}

// is429Error - 429 Rate Limit 에러인지 확인
func is429Error(err error) bool {
	if err == nil {
		return false
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == 429
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "quota")
}
