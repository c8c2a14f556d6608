package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// stubGenerator - 원격 호출 없이 파이프라인 로직만 검증하기 위한 스텁
type stubGenerator struct {
	imageData  []byte
	imageErr   error
	imageCalls int
	lastParts  []*genai.Part
	lastRatio  string
}

func (s *stubGenerator) GenerateJSON(ctx context.Context, systemInstruction string, parts []*genai.Part, schema *genai.Schema) ([]byte, error) {
	return nil, errors.New("not used")
}

func (s *stubGenerator) GenerateImage(ctx context.Context, parts []*genai.Part, aspectRatio string) ([]byte, error) {
	s.imageCalls++
	s.lastParts = parts
	s.lastRatio = aspectRatio
	if s.imageErr != nil {
		return nil, s.imageErr
	}
	return s.imageData, nil
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestGenerateSceneImage(t *testing.T) {
	stub := &stubGenerator{imageData: []byte("png-bytes")}
	svc := NewService(stub)

	got, err := svc.GenerateSceneImage(context.Background(), IntentLand, "visual", "9:16", b64("portrait"), "")
	require.NoError(t, err)

	assert.Equal(t, b64("png-bytes"), got)
	assert.Equal(t, "9:16", stub.lastRatio)
	// 인물 이미지 1 + 프롬프트 텍스트 1
	assert.Len(t, stub.lastParts, 2)
}

func TestGenerateSceneImagePartOrder(t *testing.T) {
	stub := &stubGenerator{imageData: []byte("png-bytes")}
	svc := NewService(stub)

	_, err := svc.GenerateSceneImage(context.Background(), IntentTownhouse, "visual", "9:16", b64("portrait"), b64("background"))
	require.NoError(t, err)

	// 배경(IMAGE 1) → 인물(IMAGE 2) → 프롬프트 텍스트
	require.Len(t, stub.lastParts, 3)
	require.NotNil(t, stub.lastParts[0].InlineData)
	assert.Equal(t, []byte("background"), stub.lastParts[0].InlineData.Data)
	require.NotNil(t, stub.lastParts[1].InlineData)
	assert.Equal(t, []byte("portrait"), stub.lastParts[1].InlineData.Data)
	assert.Contains(t, stub.lastParts[2].Text, "INSERT CHARACTER INTO EXISTING IMAGE")
}

func TestGenerateSceneImagePropagatesError(t *testing.T) {
	stub := &stubGenerator{imageErr: errors.New("remote down")}
	svc := NewService(stub)

	_, err := svc.GenerateSceneImage(context.Background(), IntentLand, "visual", "9:16", b64("portrait"), "")
	assert.Error(t, err)
}

func TestRegenerateEmptyFeedbackIsRejectedBeforeCall(t *testing.T) {
	stub := &stubGenerator{imageData: []byte("png-bytes")}
	svc := NewService(stub)

	_, err := svc.Regenerate(context.Background(), "original prompt", "   ", "9:16", b64("portrait"), "")
	assert.ErrorIs(t, err, ErrEmptyFeedback)
	assert.Zero(t, stub.imageCalls, "remote must not be called without feedback")
}

func TestRegenerateBuildsEditPrompt(t *testing.T) {
	stub := &stubGenerator{imageData: []byte("new-image")}
	svc := NewService(stub)

	got, err := svc.Regenerate(context.Background(), "original prompt", "change pose", "16:9", b64("portrait"), b64("background"))
	require.NoError(t, err)

	assert.Equal(t, b64("new-image"), got)
	require.Len(t, stub.lastParts, 3)
	assert.Contains(t, stub.lastParts[2].Text, "EDIT REQUEST: change pose.")
	assert.Contains(t, stub.lastParts[2].Text, "original prompt")
}
