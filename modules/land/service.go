package land

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

// Service - Land(Đất Nền) 서브앱 파이프라인
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

// ProcessJob - 텍스트 1회 → Scene별 이미지 순차 생성
// 텍스트 실패만 run 전체를 실패시키고, 이미지 실패는 해당 Scene에만 남는다.
func (s *Service) ProcessJob(ctx context.Context, job model.GenerationJob) {
	ws, ok := s.store.Get(job.SessionID)
	if !ok {
		log.Printf("❌ [Land] Session not found: %s", job.SessionID)
		return
	}
	opts := ws.Options

	clothing := model.ResolveOption(opts.ClothingStyle, opts.CustomClothingText, model.ClothingOptions, "Professional Attire")
	numScenes := model.ResolveSceneCount(opts.SceneCountPreset, opts.CustomSceneCount)

	log.Printf("🚀 [Land] Processing job %s: scenes=%d, ratio=%s, projectImages=%d",
		job.JobID, numScenes, opts.AspectRatio, len(ws.ProjectImages))

	// 1. 텍스트 호출 - Scene 시나리오 생성
	instruction := BuildScenesPrompt(opts.ProjectInfo, clothing, numScenes)
	parts, err := buildTextParts(ws.PortraitImage, ws.ProjectImages)
	if err != nil {
		s.store.FailRun(job.SessionID, job.RunToken, "Ảnh tham chiếu không hợp lệ.")
		return
	}

	raw, err := s.gen.GenerateJSON(ctx, instruction, parts, scenesResponseSchema)
	if err != nil {
		log.Printf("❌ [Land] Text generation failed for job %s: %v", job.JobID, err)
		s.store.FailRun(job.SessionID, job.RunToken, "Không thể tạo kịch bản. Vui lòng thử lại.")
		return
	}

	var scenes []model.SceneData
	if err := json.Unmarshal(raw, &scenes); err != nil {
		log.Printf("❌ [Land] Parse failed for job %s: %v", job.JobID, fmt.Errorf("%w: %v", gemini.ErrParse, err))
		s.store.FailRun(job.SessionID, job.RunToken, "Phản hồi AI không hợp lệ.")
		return
	}

	// 모델이 준 id는 표시용, 인덱스가 식별자
	for i := range scenes {
		scenes[i].ImageStatus = model.ImagePending
		scenes[i].IsEditing = false
		scenes[i].Feedback = ""
		scenes[i].ImageBase64 = ""
	}

	if ok := s.store.UpdateIfToken(job.SessionID, job.RunToken, func(ws *session.Workspace) {
		ws.Scenes = scenes
		ws.Status = model.RunImagesGenerating
		ws.Progress = 30
	}); !ok {
		return
	}

	log.Printf("📝 [Land] Job %s: %d scenes generated, starting image loop", job.JobID, len(scenes))

	// 2. Scene별 이미지 순차 생성 (best-effort)
	for i := range scenes {
		if redisutil.IsJobCancelled(ctx, s.rdb, job.JobID) {
			log.Printf("🛑 [Land] Job %s cancelled at scene %d, keeping completed images", job.JobID, i+1)
			return
		}

		if ok := s.store.UpdateScene(job.SessionID, job.RunToken, i, func(sc *model.SceneData) {
			sc.ImageStatus = model.ImageGenerating
			sc.IsEditing = false
		}); !ok {
			return
		}

		imageBase64, err := s.images.GenerateSceneImage(
			ctx, imagegen.IntentLand, scenes[i].VisualPrompt, opts.AspectRatio, ws.PortraitImage, "")
		if err != nil {
			// Scene 하나의 실패가 나머지를 막지 않는다
			log.Printf("⚠️  [Land] Image failed for job %s scene %d: %v", job.JobID, i+1, err)
			s.store.UpdateScene(job.SessionID, job.RunToken, i, func(sc *model.SceneData) {
				sc.ImageStatus = model.ImageFailed
			})
		} else {
			s.store.UpdateScene(job.SessionID, job.RunToken, i, func(sc *model.SceneData) {
				sc.ImageBase64 = imageBase64
				sc.ImageStatus = model.ImageDone
			})
		}

		progress := 30 + (i+1)*70/len(scenes)
		s.store.UpdateIfToken(job.SessionID, job.RunToken, func(ws *session.Workspace) {
			ws.Progress = progress
		})
	}

	s.store.UpdateIfToken(job.SessionID, job.RunToken, func(ws *session.Workspace) {
		ws.Status = model.RunDone
		ws.Progress = 100
	})
	log.Printf("✅ [Land] Job %s completed", job.JobID)
}

// buildTextParts - 텍스트 호출용 파트 구성 (인물 + 프로젝트 이미지)
func buildTextParts(portraitBase64 string, projectImages []string) ([]*genai.Part, error) {
	parts := []*genai.Part{genai.NewPartFromText("Analyze attached images and generate video scenes.")}

	if portraitBase64 != "" {
		data, err := utils.DecodeBase64Image(portraitBase64)
		if err != nil {
			return nil, err
		}
		parts = append(parts, gemini.InlineImagePart(data))
		parts = append(parts, genai.NewPartFromText("Agent Reference Image (Face)"))
	}

	for idx, img := range projectImages {
		data, err := utils.DecodeBase64Image(img)
		if err != nil {
			return nil, err
		}
		parts = append(parts, gemini.InlineImagePart(data))
		parts = append(parts, genai.NewPartFromText(fmt.Sprintf("Project Context Image #%d", idx+1)))
	}

	return parts, nil
}
