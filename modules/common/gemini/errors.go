package gemini

import "errors"

// 원격 호출 에러 분류
// 호출자가 errors.Is로 구분하고, 재시도 여부는 호출자가 결정한다.
var (
	// ErrRemoteCall - 네트워크/서비스 레벨 실패
	ErrRemoteCall = errors.New("gemini: remote call failed")

	// ErrNoPayload - 응답에 기대한 텍스트/이미지 payload가 없음
	ErrNoPayload = errors.New("gemini: response missing payload")

	// ErrParse - JSON 응답이 기대한 구조로 파싱되지 않음
	ErrParse = errors.New("gemini: response parse failed")
)
