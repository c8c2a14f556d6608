package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"

	"bds-studio-server/modules/common/config"
)

// Generator - 원격 생성 호출 인터페이스 (파이프라인 테스트 스텁용)
type Generator interface {
	GenerateJSON(ctx context.Context, systemInstruction string, parts []*genai.Part, schema *genai.Schema) ([]byte, error)
	GenerateImage(ctx context.Context, parts []*genai.Part, aspectRatio string) ([]byte, error)
}

// Client - Gemini 호출 래퍼
// 상태를 갖지 않으며 호출마다 config 기준으로 동작한다.
type Client struct {
	cfg *config.Config
}

// NewClient - Client 생성
func NewClient() *Client {
	return &Client{cfg: config.GetConfig()}
}

// GenerateJSON - 구조화 JSON 응답 생성 (텍스트 모델)
// systemInstruction + parts를 보내고 responseSchema에 맞는 JSON 텍스트를 받는다.
func (c *Client) GenerateJSON(ctx context.Context, systemInstruction string, parts []*genai.Part, schema *genai.Schema) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.GeminiTimeout)*time.Second)
	defer cancel()

	contents := []*genai.Content{{Parts: parts}}

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(systemInstruction)},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		Temperature:      floatPtr(0.7),
	}

	result, err := GenerateContentWithRetry(ctx, c.cfg.AllGeminiKeys(), c.cfg.GeminiTextModel, contents, genConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteCall, err)
	}

	text := extractText(result)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no text in candidates", ErrNoPayload)
	}

	log.Printf("📥 [Gemini] JSON response: %d chars", len(text))
	return []byte(text), nil
}

// GenerateImage - 이미지 생성 (이미지 모델)
// 첫 번째 candidate의 inline 이미지 바이트를 반환한다.
func (c *Client) GenerateImage(ctx context.Context, parts []*genai.Part, aspectRatio string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.GeminiTimeout)*time.Second)
	defer cancel()

	contents := []*genai.Content{{Parts: parts}}

	genConfig := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: aspectRatio,
		},
		Temperature: floatPtr(0.7),
	}

	result, err := GenerateContentWithRetry(ctx, c.cfg.AllGeminiKeys(), c.cfg.GeminiImageModel, contents, genConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteCall, err)
	}

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				log.Printf("✅ [Gemini] Image generated: %d bytes", len(part.InlineData.Data))
				return part.InlineData.Data, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: no image in candidates", ErrNoPayload)
}

// extractText - 첫 candidate의 텍스트 파트 연결
func extractText(result *genai.GenerateContentResponse) string {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// InlineImagePart - base64 아님, 디코딩된 PNG 바이트로 inline part 생성
func InlineImagePart(data []byte) *genai.Part {
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: "image/png",
			Data:     data,
		},
	}
}

func floatPtr(f float32) *float32 {
	return &f
}
