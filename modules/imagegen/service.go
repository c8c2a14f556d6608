package imagegen

import (
	"context"
	"errors"
	"log"
	"strings"

	"google.golang.org/genai"

	"bds-studio-server/modules/common/gemini"
	"bds-studio-server/modules/common/utils"
)

// ErrEmptyFeedback - 피드백 없는 재생성 요청 (호출 전에 거부)
var ErrEmptyFeedback = errors.New("imagegen: regeneration feedback is empty")

// Service - Scene 이미지 생성/재생성 공용 로직
type Service struct {
	gen gemini.Generator
}

// NewService - Service 생성
func NewService(gen gemini.Generator) *Service {
	return &Service{gen: gen}
}

// GenerateSceneImage - Scene 이미지 한 장 생성
// 이미지 순서가 프롬프트의 IMAGE 1/2 참조와 맞아야 한다: 배경 먼저, 인물 다음.
func (s *Service) GenerateSceneImage(
	ctx context.Context,
	intent Intent,
	visualPrompt string,
	aspectRatio string,
	portraitBase64 string,
	backgroundBase64 string,
) (string, error) {
	parts, hasBackground, err := buildImageParts(backgroundBase64, portraitBase64)
	if err != nil {
		return "", err
	}

	prompt := BuildImagePrompt(intent, visualPrompt, hasBackground)
	parts = append(parts, genai.NewPartFromText(prompt))

	imageData, err := s.gen.GenerateImage(ctx, parts, aspectRatio)
	if err != nil {
		return "", err
	}

	return utils.EncodeImageToBase64(imageData), nil
}

// Regenerate - 기존 Scene 한 장을 피드백 반영하여 다시 생성
// 실패 시 호출자는 기존 이미지를 그대로 유지해야 한다.
func (s *Service) Regenerate(
	ctx context.Context,
	originalVisualPrompt string,
	feedback string,
	aspectRatio string,
	portraitBase64 string,
	backgroundBase64 string,
) (string, error) {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return "", ErrEmptyFeedback
	}

	parts, _, err := buildImageParts(backgroundBase64, portraitBase64)
	if err != nil {
		return "", err
	}

	prompt := BuildRegenerationPrompt(originalVisualPrompt, feedback)
	parts = append(parts, genai.NewPartFromText(prompt))

	log.Printf("🎨 [Imagegen] Regenerating scene image with feedback (%d chars)", len(feedback))

	imageData, err := s.gen.GenerateImage(ctx, parts, aspectRatio)
	if err != nil {
		return "", err
	}

	return utils.EncodeImageToBase64(imageData), nil
}

// buildImageParts - 배경 → 인물 순서로 inline 이미지 파트 구성
func buildImageParts(backgroundBase64, portraitBase64 string) ([]*genai.Part, bool, error) {
	var parts []*genai.Part
	hasBackground := false

	if backgroundBase64 != "" {
		data, err := utils.DecodeBase64Image(backgroundBase64)
		if err != nil {
			return nil, false, err
		}
		parts = append(parts, gemini.InlineImagePart(data))
		hasBackground = true
	}

	if portraitBase64 != "" {
		data, err := utils.DecodeBase64Image(portraitBase64)
		if err != nil {
			return nil, false, err
		}
		parts = append(parts, gemini.InlineImagePart(data))
	}

	return parts, hasBackground, nil
}
