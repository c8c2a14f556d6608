package model

// GenerationOptions - 서브앱별 입력 집합
// 선택지 id와 custom 텍스트는 상호 배타적이며 ResolveOption이 최종 값을 정한다.
type GenerationOptions struct {
	AspectRatio string `json:"aspectRatio"`

	// Land & Townhouse
	ProjectInfo      ProjectInfo `json:"projectInfo"`
	SceneCountPreset int         `json:"sceneCountPreset"` // 3 | 5 | 7 | -1 (custom)
	CustomSceneCount int         `json:"customSceneCount"`

	// Land
	ClothingStyle      string `json:"clothingStyle"`
	CustomClothingText string `json:"customClothingText"`

	// Townhouse
	TownhouseOutfit       string `json:"townhouseOutfit"`
	CustomTownhouseOutfit string `json:"customTownhouseOutfit"`

	// Branding
	BrandingTopic    string `json:"brandingTopic"`
	BrandingBg       string `json:"brandingBg"`
	CustomBrandingBg string `json:"customBrandingBg"`
	BrandingStyle    string `json:"brandingStyle"`
	BrandingTone     string `json:"brandingTone"`
	BrandingQuantity int    `json:"brandingQuantity"`
}

// DefaultOptions - 서브앱 전환 시 초기값
func DefaultOptions() GenerationOptions {
	return GenerationOptions{
		AspectRatio:      DefaultAspectRatio,
		SceneCountPreset: 3,
		ClothingStyle:    ClothingOptions[0].ID,
		TownhouseOutfit:  TownhouseOutfits[0].ID,
		BrandingBg:       BrandingBackgrounds[0].ID,
		BrandingStyle:    BrandingStyles[0].Label,
		BrandingTone:     BrandingTones[0].Label,
		BrandingQuantity: 3,
	}
}
