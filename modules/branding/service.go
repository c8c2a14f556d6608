package branding

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"google.golang.org/genai"

	"bds-studio-server/modules/common/gemini"
	"bds-studio-server/modules/common/model"
	redisutil "bds-studio-server/modules/common/redis"
	"bds-studio-server/modules/common/session"
	"bds-studio-server/modules/common/utils"
	"bds-studio-server/modules/imagegen"
)

// Service - 퍼스널 브랜딩 서브앱 파이프라인
// 텍스트 1회 → 마스터 이미지 1회. Variation에는 개별 이미지가 없다.
type Service struct {
	gen    gemini.Generator
	images *imagegen.Service
	store  *session.Store
	rdb    *redis.Client
}

// NewService - Service 생성
func NewService(gen gemini.Generator, images *imagegen.Service, store *session.Store, rdb *redis.Client) *Service {
	return &Service{gen: gen, images: images, store: store, rdb: rdb}
}

// ProcessJob - 브랜딩 에셋 생성
func (s *Service) ProcessJob(ctx context.Context, job model.GenerationJob) {
	ws, ok := s.store.Get(job.SessionID)
	if !ok {
		log.Printf("❌ [Branding] Session not found: %s", job.SessionID)
		return
	}
	opts := ws.Options

	background := model.ResolveOption(opts.BrandingBg, opts.CustomBrandingBg, model.BrandingBackgrounds, "Professional Studio")
	quantity := opts.BrandingQuantity
	if quantity <= 0 {
		quantity = 3
	}

	log.Printf("🚀 [Branding] Processing job %s: topic=%q, quantity=%d, ratio=%s",
		job.JobID, truncate(opts.BrandingTopic, 50), quantity, opts.AspectRatio)

	// 1. 텍스트 호출 - Hook/해시태그/마스터 프롬프트/variations
	instruction := BuildBrandAssetsPrompt(opts.BrandingTopic, background, opts.BrandingStyle, opts.BrandingTone, quantity)

	parts := []*genai.Part{genai.NewPartFromText("Generate personal branding plan.")}
	if ws.PortraitImage != "" {
		data, err := utils.DecodeBase64Image(ws.PortraitImage)
		if err != nil {
			s.store.FailRun(job.SessionID, job.RunToken, "Ảnh đại diện không hợp lệ.")
			return
		}
		parts = append(parts, gemini.InlineImagePart(data))
		parts = append(parts, genai.NewPartFromText("Reference Identity (Keep facial features exactly)"))
	}

	raw, err := s.gen.GenerateJSON(ctx, instruction, parts, brandingMasterSchema)
	if err != nil {
		log.Printf("❌ [Branding] Text generation failed for job %s: %v", job.JobID, err)
		s.store.FailRun(job.SessionID, job.RunToken, "Không thể tạo kế hoạch thương hiệu. Vui lòng thử lại.")
		return
	}

	var result model.BrandingResult
	if err := json.Unmarshal(raw, &result); err != nil {
		log.Printf("❌ [Branding] Parse failed for job %s: %v", job.JobID, fmt.Errorf("%w: %v", gemini.ErrParse, err))
		s.store.FailRun(job.SessionID, job.RunToken, "Phản hồi AI không hợp lệ.")
		return
	}
	result.MasterImageStatus = model.ImagePending
	result.MasterImageBase64 = ""

	if ok := s.store.UpdateIfToken(job.SessionID, job.RunToken, func(ws *session.Workspace) {
		branding := result
		ws.Branding = &branding
		ws.Status = model.RunImagesGenerating
		ws.Progress = 40
	}); !ok {
		return
	}

	if redisutil.IsJobCancelled(ctx, s.rdb, job.JobID) {
		log.Printf("🛑 [Branding] Job %s cancelled before master image", job.JobID)
		return
	}

	// 2. 마스터 이미지 호출 - 실패해도 run은 완료 처리 (텍스트 결과는 유효)
	s.store.UpdateIfToken(job.SessionID, job.RunToken, func(ws *session.Workspace) {
		if ws.Branding != nil {
			ws.Branding.MasterImageStatus = model.ImageGenerating
		}
	})

	masterImage, err := s.images.GenerateSceneImage(
		ctx, imagegen.IntentBranding, result.MasterVisualPrompt, opts.AspectRatio, ws.PortraitImage, "")
	if err != nil {
		log.Printf("⚠️  [Branding] Master image failed for job %s: %v", job.JobID, err)
		s.store.UpdateIfToken(job.SessionID, job.RunToken, func(ws *session.Workspace) {
			if ws.Branding != nil {
				ws.Branding.MasterImageStatus = model.ImageFailed
			}
			ws.Status = model.RunDone
			ws.Progress = 100
		})
		return
	}

	s.store.UpdateIfToken(job.SessionID, job.RunToken, func(ws *session.Workspace) {
		if ws.Branding != nil {
			ws.Branding.MasterImageBase64 = masterImage
			ws.Branding.MasterImageStatus = model.ImageDone
		}
		ws.Status = model.RunDone
		ws.Progress = 100
	})
	log.Printf("✅ [Branding] Job %s completed", job.JobID)
}

// truncate - 로그용 문자열 자르기
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
