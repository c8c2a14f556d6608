package studio

import (
	"context"
	"errors"
	"log"

	"bds-studio-server/modules/common/model"
	"bds-studio-server/modules/common/session"
	"bds-studio-server/modules/imagegen"
)

var (
	ErrSessionNotFound  = errors.New("studio: session not found")
	ErrSceneIndex       = errors.New("studio: scene index out of range")
	ErrSceneBusy        = errors.New("studio: scene image is still generating")
	ErrFeedbackRequired = errors.New("studio: feedback is required")
)

// RegenerateService - Scene 단건 재생성
// run 파이프라인과 달리 동기로 처리하며 run token과 무관하게 동작한다.
type RegenerateService struct {
	store  *session.Store
	images *imagegen.Service
}

// NewRegenerateService - RegenerateService 생성
func NewRegenerateService(store *session.Store, images *imagegen.Service) *RegenerateService {
	return &RegenerateService{store: store, images: images}
}

// RegenerateScene - 피드백 반영하여 Scene 이미지 한 장 재생성
// 실패해도 기존 이미지/스크립트는 그대로 유지되고 에러 메시지만 남는다.
func (s *RegenerateService) RegenerateScene(ctx context.Context, sessionID string, idx int, feedback string) (session.Workspace, error) {
	if feedback == "" {
		return session.Workspace{}, ErrFeedbackRequired
	}

	var (
		scene      model.SceneData
		prevStatus model.ImageStatus
		outOfRange bool
		busy       bool
	)

	// busy 검사와 generating 마킹은 같은 잠금 안에서 - 동시 요청은 하나만 통과한다
	ws, ok := s.store.Update(sessionID, func(ws *session.Workspace) {
		if idx < 0 || idx >= len(ws.Scenes) {
			outOfRange = true
			return
		}
		sc := &ws.Scenes[idx]
		if sc.ImageStatus == model.ImageGenerating {
			busy = true
			return
		}
		prevStatus = sc.ImageStatus
		scene = *sc
		sc.ImageStatus = model.ImageGenerating
		sc.IsEditing = false
		sc.Feedback = feedback
	})
	if !ok {
		return session.Workspace{}, ErrSessionNotFound
	}
	if outOfRange {
		return session.Workspace{}, ErrSceneIndex
	}
	if busy {
		return session.Workspace{}, ErrSceneBusy
	}

	// 프로젝트 이미지가 있으면 Scene 순서대로 순환하여 배경(IMAGE 1)으로 재사용
	background := ""
	if len(ws.ProjectImages) > 0 {
		background = ws.ProjectImages[idx%len(ws.ProjectImages)]
	}

	log.Printf("🔄 [Studio] Regenerating scene %d for session %s", idx, sessionID)

	newImage, err := s.images.Regenerate(ctx, scene.VisualPrompt, feedback, ws.Options.AspectRatio, ws.PortraitImage, background)
	if err != nil {
		log.Printf("❌ [Studio] Regeneration failed for session %s scene %d: %v", sessionID, idx, err)
		s.store.Update(sessionID, func(ws *session.Workspace) {
			if idx >= len(ws.Scenes) {
				return
			}
			sc := &ws.Scenes[idx]
			sc.ImageStatus = prevStatus
			ws.ErrorMessage = "Vẽ lại thất bại. Vui lòng thử lại."
		})
		return session.Workspace{}, err
	}

	snapshot, ok := s.store.Update(sessionID, func(ws *session.Workspace) {
		if idx >= len(ws.Scenes) {
			return
		}
		sc := &ws.Scenes[idx]
		sc.ImageBase64 = newImage
		sc.ImageStatus = model.ImageDone
		sc.Feedback = ""
		ws.ErrorMessage = ""
	})
	if !ok {
		return session.Workspace{}, ErrSessionNotFound
	}

	log.Printf("✅ [Studio] Scene %d regenerated for session %s", idx, sessionID)
	return snapshot, nil
}
