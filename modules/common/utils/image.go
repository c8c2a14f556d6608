package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG 디코더 등록
	_ "image/png"  // PNG 디코더 등록
	"log"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// DecodeBase64Image - base64 문자열을 이미지 바이트로 변환
// data URL prefix가 붙어 있으면 제거한다.
func DecodeBase64Image(raw string) ([]byte, error) {
	if idx := findBase64Start(raw); idx > 0 {
		raw = raw[idx:]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image: %w", err)
	}
	return data, nil
}

// EncodeImageToBase64 - 이미지 바이트를 base64로 변환
func EncodeImageToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// ConvertToWebP - PNG/JPEG 바이너리를 lossy WebP로 변환 (다운로드용)
func ConvertToWebP(imageData []byte, quality float32) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to create WebP encoder options: %w", err)
	}

	var webpBuffer bytes.Buffer
	if err := webp.Encode(&webpBuffer, img, options); err != nil {
		return nil, fmt.Errorf("failed to encode WebP: %w", err)
	}

	webpData := webpBuffer.Bytes()
	log.Printf("✅ %s converted to WebP: %d bytes → %d bytes", format, len(imageData), len(webpData))

	return webpData, nil
}

// findBase64Start - data URL prefix 뒤 실제 데이터 시작 위치
func findBase64Start(s string) int {
	for i := 0; i < len(s) && i < 64; i++ {
		if s[i] == ',' {
			return i + 1
		}
	}
	return 0
}
