package export

import (
	"errors"
	"fmt"
	"strings"

	"bds-studio-server/modules/common/config"
	"bds-studio-server/modules/common/model"
	"bds-studio-server/modules/common/session"
	"bds-studio-server/modules/common/utils"
)

var (
	ErrNoResult = errors.New("export: no generated result to export")
	ErrNoImage  = errors.New("export: image is not ready")
)

const (
	sectionSeparator = "=================================================="
	itemSeparator    = "--------------------------------------------------"
)

// Service - 생성 결과를 다운로드 가능한 산출물로 변환
type Service struct {
	cfg *config.Config
}

// NewService - Service 생성
func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// BuildScriptBundle - 기획 텍스트 묶음(.txt) 생성
// 브랜딩은 HOOK/HASHTAGS 블록이 먼저 붙고, 이후 항목 포맷은 전 서브앱 공통이다.
func (s *Service) BuildScriptBundle(ws session.Workspace) (content string, filename string, err error) {
	var b strings.Builder

	switch ws.App {
	case model.AppBranding:
		if ws.Branding == nil {
			return "", "", ErrNoResult
		}
		fmt.Fprintf(&b, "HOOK: %s\n", ws.Branding.HookHeadline)
		fmt.Fprintf(&b, "HASHTAGS: %s\n", strings.Join(ws.Branding.Hashtags, " "))
		b.WriteString("\n" + sectionSeparator + "\n\n")

		for i, v := range ws.Branding.Variations {
			writeScriptItem(&b, i+1, v.Title, v.VeoPrompt, v.Script)
		}
		return b.String(), "Kich_ban_Thuong_hieu.txt", nil

	default:
		if len(ws.Scenes) == 0 {
			return "", "", ErrNoResult
		}
		for i, sc := range ws.Scenes {
			writeScriptItem(&b, i+1, sc.Title, sc.VeoPrompt, sc.Script)
		}
		return b.String(), "Kich_ban_BDS.txt", nil
	}
}

// SceneImageWebP - Scene 이미지 한 장을 WebP로 변환
func (s *Service) SceneImageWebP(ws session.Workspace, idx int) (data []byte, filename string, err error) {
	if idx < 0 || idx >= len(ws.Scenes) {
		return nil, "", ErrNoImage
	}
	sc := ws.Scenes[idx]
	if sc.ImageStatus != model.ImageDone || sc.ImageBase64 == "" {
		return nil, "", ErrNoImage
	}

	webp, err := s.toWebP(sc.ImageBase64)
	if err != nil {
		return nil, "", err
	}
	return webp, fmt.Sprintf("scene_%d.webp", idx+1), nil
}

// MasterImageWebP - 브랜딩 마스터 이미지를 WebP로 변환
func (s *Service) MasterImageWebP(ws session.Workspace) (data []byte, filename string, err error) {
	if ws.Branding == nil || ws.Branding.MasterImageStatus != model.ImageDone || ws.Branding.MasterImageBase64 == "" {
		return nil, "", ErrNoImage
	}

	webp, err := s.toWebP(ws.Branding.MasterImageBase64)
	if err != nil {
		return nil, "", err
	}
	return webp, "master_identity.webp", nil
}

// toWebP - base64 → WebP 바이트
func (s *Service) toWebP(base64Image string) ([]byte, error) {
	raw, err := utils.DecodeBase64Image(base64Image)
	if err != nil {
		return nil, err
	}
	return utils.ConvertToWebP(raw, s.cfg.WebPQuality)
}

// writeScriptItem - 항목 하나 포맷 (Cảnh n / Prompt Veo / Lời thoại)
func writeScriptItem(b *strings.Builder, n int, title, veoPrompt, script string) {
	fmt.Fprintf(b, "Cảnh %d: %s\n\n", n, title)
	fmt.Fprintf(b, "Prompt Veo: %s\n\n", veoPrompt)
	fmt.Fprintf(b, "Lời thoại: %s\n", script)
	b.WriteString("\n" + itemSeparator + "\n\n")
}
