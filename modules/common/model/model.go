package model

// AppType - 서브앱 종류
type AppType string

const (
	AppBranding  AppType = "branding"
	AppLand      AppType = "land"
	AppTownhouse AppType = "townhouse"
)

// IsValidApp - 서브앱 값 검증
func IsValidApp(app AppType) bool {
	switch app {
	case AppBranding, AppLand, AppTownhouse:
		return true
	}
	return false
}

// AspectRatio 옵션
const (
	RatioVertical   = "9:16"
	RatioHorizontal = "16:9"
	RatioSquare     = "1:1"

	DefaultAspectRatio = RatioVertical
)

// RatioOptions - 지원하는 출력 비율
var RatioOptions = []string{RatioVertical, RatioHorizontal, RatioSquare}

// IsValidAspectRatio - 비율 값 검증
func IsValidAspectRatio(ratio string) bool {
	for _, r := range RatioOptions {
		if r == ratio {
			return true
		}
	}
	return false
}

// ImageStatus - Scene별 이미지 생성 상태
type ImageStatus string

const (
	ImagePending    ImageStatus = "pending"
	ImageGenerating ImageStatus = "generating"
	ImageDone       ImageStatus = "done"
	ImageFailed     ImageStatus = "failed"
)

// SceneData - 생성된 Scene 단위 (Land & Townhouse 공용)
// 모델이 반환하는 id는 표시용이며, 배열 인덱스가 Scene의 식별자다.
type SceneData struct {
	ID           int         `json:"id"`
	Title        string      `json:"title"`
	Script       string      `json:"script"`
	VisualPrompt string      `json:"visualPrompt"`
	VeoPrompt    string      `json:"veoPrompt,omitempty"`
	ImageBase64  string      `json:"imageBase64,omitempty"`
	ImageStatus  ImageStatus `json:"imageStatus"`
	IsEditing    bool        `json:"isEditing,omitempty"`
	Feedback     string      `json:"feedback,omitempty"`
}

// ProjectInfo - 프로젝트 입력 정보
type ProjectInfo struct {
	Description string `json:"description"`
	Utilities   string `json:"utilities"`
	CTA         string `json:"cta"`
}

// BrandingVariation - 브랜딩 영상 variation (개별 이미지 없음)
type BrandingVariation struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Script    string `json:"script"`
	VeoPrompt string `json:"veoPrompt"`
}

// BrandingResult - 브랜딩 서브앱 단일 결과
type BrandingResult struct {
	HookHeadline      string              `json:"hookHeadline"`
	Hashtags          []string            `json:"hashtags"`
	MasterVisualPrompt string              `json:"masterVisualPrompt"`
	MasterImageBase64  string              `json:"masterImageBase64,omitempty"`
	MasterImageStatus  ImageStatus         `json:"masterImageStatus"`
	Variations         []BrandingVariation `json:"variations"`
}

// RunStatus - 생성 파이프라인 상태
type RunStatus string

const (
	RunIdle             RunStatus = "idle"
	RunTextGenerating   RunStatus = "text_generating"
	RunImagesGenerating RunStatus = "images_generating"
	RunDone             RunStatus = "done"
	RunFailed           RunStatus = "failed"
)

// GenerationJob - Redis 대기열을 통해 Worker로 전달되는 Job payload
type GenerationJob struct {
	JobID     string  `json:"jobId"`
	SessionID string  `json:"sessionId"`
	App       AppType `json:"app"`
	RunToken  string  `json:"runToken"`
}
