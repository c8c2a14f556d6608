package model

import (
	"strings"
)

// Option - 선택지 하나 (id + 표시 라벨)
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CustomOptionID - "직접 입력" sentinel
const CustomOptionID = "custom"

// ClothingOptions - Land 앱 복장 선택지
var ClothingOptions = []Option{
	{ID: "vest", Label: "Vest chuyên nghiệp (Professional Suit)"},
	{ID: "polo", Label: "Áo Polo năng động (Smart Casual Polo)"},
	{ID: "shirt", Label: "Sơ mi trắng lịch lãm (White Dress Shirt)"},
	{ID: CustomOptionID, Label: "Tùy chỉnh (Custom Style)"},
}

// TownhouseOutfits - Townhouse 앱 복장 선택지
var TownhouseOutfits = []Option{
	{ID: "architect", Label: "Kiến trúc sư (Smart Casual Blazer)"},
	{ID: "luxury_realtor", Label: "Môi giới cao cấp (Premium Suit)"},
	{ID: "modern_host", Label: "Host hiện đại (Turtleneck & Coat)"},
	{ID: "minimalist", Label: "Tối giản (Minimalist Shirt)"},
	{ID: "creative", Label: "Sáng tạo (Creative Layering)"},
	{ID: CustomOptionID, Label: "Tùy chỉnh (Custom)"},
}

// BrandingBackgrounds - 브랜딩 배경 선택지
var BrandingBackgrounds = []Option{
	{ID: "studio", Label: "Studio Chuyên nghiệp (Professional Studio)"},
	{ID: "office", Label: "Văn phòng Hiện đại (Modern Office)"},
	{ID: "cafe", Label: "Quán Cafe Yên tĩnh (Cozy Cafe)"},
	{ID: "bookshelf", Label: "Thư viện / Kệ sách (Library/Bookshelf)"},
	{ID: "nature", Label: "Thiên nhiên Ngoài trời (Outdoor Nature)"},
	{ID: "podcast", Label: "Phòng thu Podcast (Podcast Setup)"},
	{ID: CustomOptionID, Label: "Tùy chỉnh (Custom)"},
}

// BrandingStyles - 브랜딩 스타일 선택지
var BrandingStyles = []Option{
	{ID: "minimalist", Label: "Tối giản & Tinh tế (Minimalist)"},
	{ID: "luxury", Label: "Sang trọng & Đẳng cấp (Luxury)"},
	{ID: "friendly", Label: "Thân thiện & Dễ gần (Friendly)"},
	{ID: "authoritative", Label: "Uy tín & Chuyên gia (Authoritative)"},
	{ID: "cinematic", Label: "Điện ảnh & Nghệ thuật (Cinematic)"},
}

// BrandingTones - 브랜딩 톤 선택지
var BrandingTones = []Option{
	{ID: "inspirational", Label: "Truyền cảm hứng (Inspirational)"},
	{ID: "educational", Label: "Giáo dục / Chia sẻ (Educational)"},
	{ID: "storytelling", Label: "Kể chuyện (Storytelling)"},
	{ID: "witty", Label: "Hài hước & Dí dỏm (Witty)"},
	{ID: "serious", Label: "Nghiêm túc & Phân tích (Serious)"},
}

// ResolveOption - 선택지 id + custom 텍스트를 최종 라벨로 변환
// id가 "custom"이면 custom 텍스트가 우선, 비어 있으면 fallback.
// 알 수 없는 id도 fallback으로 처리한다.
func ResolveOption(choiceID, customText string, catalog []Option, fallback string) string {
	if choiceID == CustomOptionID {
		if trimmed := strings.TrimSpace(customText); trimmed != "" {
			return trimmed
		}
		return fallback
	}
	for _, opt := range catalog {
		if opt.ID == choiceID {
			return opt.Label
		}
	}
	return fallback
}

// ResolveSceneCount - Scene 개수 확정 (custom 값 지원)
// preset이 -1이면 custom 값을 사용, 유효하지 않으면 3.
func ResolveSceneCount(preset int, custom int) int {
	if preset == -1 {
		if custom > 0 {
			return custom
		}
		return 3
	}
	if preset > 0 {
		return preset
	}
	return 3
}
