package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"bds-studio-server/modules/common/model"
)

// Workspace - 세션 하나가 소유하는 작업 공간
// 서브앱을 전환하면 전체가 초기화된다 (서브앱 간 공유 없음).
type Workspace struct {
	SessionID string        `json:"sessionId"`
	App       model.AppType `json:"app"`

	Options       model.GenerationOptions `json:"options"`
	PortraitImage string                  `json:"portraitImage,omitempty"`
	ProjectImages []string                `json:"projectImages,omitempty"`

	Scenes   []model.SceneData     `json:"scenes,omitempty"`
	Branding *model.BrandingResult `json:"branding,omitempty"`

	Status       model.RunStatus `json:"status"`
	Progress     int             `json:"progress"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	RunToken     string          `json:"-"`

	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// ChangeListener - Workspace가 변경될 때마다 스냅샷을 받는다
type ChangeListener func(snapshot Workspace)

// Store - 세션별 Workspace 저장소
// 모든 읽기는 깊은 복사 스냅샷, 모든 쓰기는 mutex 아래에서만 일어난다.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Workspace
	ttl      time.Duration
	listener ChangeListener
}

// NewStore - Store 생성
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Store{
		sessions: make(map[string]*Workspace),
		ttl:      ttl,
	}
}

// SetListener - 변경 알림 리스너 등록 (WebSocket hub)
func (s *Store) SetListener(fn ChangeListener) {
	s.mu.Lock()
	s.listener = fn
	s.mu.Unlock()
}

// Create - 새 세션 생성
func (s *Store) Create(app model.AppType) Workspace {
	now := time.Now()
	ws := &Workspace{
		SessionID:    uuid.NewString(),
		App:          app,
		Options:      model.DefaultOptions(),
		Status:       model.RunIdle,
		CreatedAt:    now,
		LastActivity: now,
	}

	s.mu.Lock()
	s.sessions[ws.SessionID] = ws
	snapshot := copyWorkspace(ws)
	s.mu.Unlock()

	log.Printf("✅ Created new session: %s (app: %s)", ws.SessionID, app)
	return snapshot
}

// Get - 세션 스냅샷 조회
func (s *Store) Get(sessionID string) (Workspace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ws, ok := s.sessions[sessionID]
	if !ok {
		return Workspace{}, false
	}
	return copyWorkspace(ws), true
}

// Update - 세션 변경 (copy-on-write 스냅샷 반환)
func (s *Store) Update(sessionID string, fn func(*Workspace)) (Workspace, bool) {
	s.mu.Lock()
	ws, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return Workspace{}, false
	}

	fn(ws)
	ws.LastActivity = time.Now()
	snapshot := copyWorkspace(ws)
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener(snapshot)
	}
	return snapshot, true
}

// UpdateIfToken - Run token이 일치할 때만 변경
// 새 generate가 토큰을 교체하면 이전 run의 콜백 쓰기는 조용히 버려진다.
func (s *Store) UpdateIfToken(sessionID, runToken string, fn func(*Workspace)) bool {
	stale := false
	_, ok := s.Update(sessionID, func(ws *Workspace) {
		if ws.RunToken != runToken {
			stale = true
			return
		}
		fn(ws)
	})
	if stale {
		log.Printf("⚠️  Dropping stale write for session %s (superseded run)", sessionID)
	}
	return ok && !stale
}

// UpdateScene - 인덱스 기준 Scene 부분 병합 (token 검사 포함)
func (s *Store) UpdateScene(sessionID, runToken string, idx int, fn func(*model.SceneData)) bool {
	return s.UpdateIfToken(sessionID, runToken, func(ws *Workspace) {
		if idx < 0 || idx >= len(ws.Scenes) {
			return
		}
		fn(&ws.Scenes[idx])
	})
}

// SwitchApp - 서브앱 전환: 결과/옵션/이미지 전부 초기값으로
func (s *Store) SwitchApp(sessionID string, app model.AppType) (Workspace, bool) {
	return s.Update(sessionID, func(ws *Workspace) {
		ws.App = app
		ws.Options = model.DefaultOptions()
		ws.PortraitImage = ""
		ws.ProjectImages = nil
		ws.Scenes = nil
		ws.Branding = nil
		ws.Status = model.RunIdle
		ws.Progress = 0
		ws.ErrorMessage = ""
		ws.RunToken = ""
	})
}

// BeginRun - 새 생성 run 시작
// 이전 결과를 비우고 run token을 교체해 겹치는 run의 쓰기를 차단한다.
func (s *Store) BeginRun(sessionID string) (string, bool) {
	token := uuid.NewString()
	_, ok := s.Update(sessionID, func(ws *Workspace) {
		ws.Scenes = nil
		ws.Branding = nil
		ws.Status = model.RunTextGenerating
		ws.Progress = 10
		ws.ErrorMessage = ""
		ws.RunToken = token
	})
	if !ok {
		return "", false
	}
	return token, true
}

// InvalidateRun - 진행 중인 run의 토큰을 폐기 (취소 경로)
func (s *Store) InvalidateRun(sessionID string) {
	s.Update(sessionID, func(ws *Workspace) {
		ws.RunToken = ""
		if ws.Status == model.RunTextGenerating || ws.Status == model.RunImagesGenerating {
			ws.Status = model.RunIdle
		}
	})
}

// FailRun - run 전체 실패 처리 (텍스트 호출 실패 시에만)
func (s *Store) FailRun(sessionID, runToken, message string) {
	s.UpdateIfToken(sessionID, runToken, func(ws *Workspace) {
		ws.Status = model.RunFailed
		ws.ErrorMessage = message
	})
}

// StartCleanupRoutine - 만료된 세션 정리 루틴 시작
func (s *Store) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			s.cleanupExpired()
		}
	}()
	log.Printf("🔄 Started session cleanup routine (TTL: %v)", s.ttl)
}

// cleanupExpired - TTL 초과 세션 제거
func (s *Store) cleanupExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cleaned := 0
	for id, ws := range s.sessions {
		if now.Sub(ws.LastActivity) > s.ttl {
			delete(s.sessions, id)
			cleaned++
		}
	}
	if cleaned > 0 {
		log.Printf("🧹 Cleaned up %d expired sessions (active: %d)", cleaned, len(s.sessions))
	}
}

// copyWorkspace - 깊은 복사 스냅샷
// 렌더러가 읽는 동안 공유 슬라이스를 제자리에서 바꾸지 않기 위한 장치.
func copyWorkspace(ws *Workspace) Workspace {
	out := *ws

	if ws.Scenes != nil {
		out.Scenes = make([]model.SceneData, len(ws.Scenes))
		copy(out.Scenes, ws.Scenes)
	}
	if ws.ProjectImages != nil {
		out.ProjectImages = make([]string, len(ws.ProjectImages))
		copy(out.ProjectImages, ws.ProjectImages)
	}
	if ws.Branding != nil {
		branding := *ws.Branding
		if ws.Branding.Variations != nil {
			branding.Variations = make([]model.BrandingVariation, len(ws.Branding.Variations))
			copy(branding.Variations, ws.Branding.Variations)
		}
		if ws.Branding.Hashtags != nil {
			branding.Hashtags = make([]string, len(ws.Branding.Hashtags))
			copy(branding.Hashtags, ws.Branding.Hashtags)
		}
		out.Branding = &branding
	}
	return out
}
