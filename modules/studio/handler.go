package studio

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"bds-studio-server/modules/common/model"
	"bds-studio-server/modules/common/session"
)

// 사용자 자유 입력 상한 - 프롬프트에 그대로 삽입되므로 길이만 제한한다
const maxFreeTextLen = 2000

// Handler - 세션 수명주기 + Scene 편집 API
type Handler struct {
	store      *session.Store
	regenerate *RegenerateService
}

// NewHandler - Handler 생성
func NewHandler(store *session.Store, regenerate *RegenerateService) *Handler {
	return &Handler{store: store, regenerate: regenerate}
}

// RegisterRoutes - 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/sessions", h.CreateSession).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/sessions/{sessionId}", h.GetSession).Methods("GET")
	r.HandleFunc("/api/sessions/{sessionId}/app", h.SwitchApp).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/sessions/{sessionId}/options", h.UpdateOptions).Methods("PUT", "OPTIONS")
	r.HandleFunc("/api/sessions/{sessionId}/images", h.UploadImages).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/sessions/{sessionId}/scenes/{idx}/edit", h.ToggleEdit).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/sessions/{sessionId}/scenes/{idx}/regenerate", h.RegenerateScene).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/options", h.GetOptionCatalogs).Methods("GET")
	log.Println("✅ Studio session routes registered")
}

// CreateSession - POST /api/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req struct {
		App model.AppType `json:"app"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !model.IsValidApp(req.App) {
		writeError(w, http.StatusBadRequest, "Invalid app type")
		return
	}

	ws := h.store.Create(req.App)
	json.NewEncoder(w).Encode(ws)
}

// GetSession - GET /api/sessions/{sessionId}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ws, ok := h.store.Get(mux.Vars(r)["sessionId"])
	if !ok {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	json.NewEncoder(w).Encode(ws)
}

// SwitchApp - POST /api/sessions/{sessionId}/app
// 서브앱 전환은 결과/옵션/이미지를 전부 초기화한다.
func (h *Handler) SwitchApp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req struct {
		App model.AppType `json:"app"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !model.IsValidApp(req.App) {
		writeError(w, http.StatusBadRequest, "Invalid app type")
		return
	}

	ws, ok := h.store.SwitchApp(mux.Vars(r)["sessionId"], req.App)
	if !ok {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	log.Printf("🔀 Session %s switched to app: %s", ws.SessionID, req.App)
	json.NewEncoder(w).Encode(ws)
}

// UpdateOptions - PUT /api/sessions/{sessionId}/options
func (h *Handler) UpdateOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var opts model.GenerationOptions
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if opts.AspectRatio != "" && !model.IsValidAspectRatio(opts.AspectRatio) {
		writeError(w, http.StatusBadRequest, "Invalid aspect ratio")
		return
	}
	sanitizeOptions(&opts)

	ws, ok := h.store.Update(mux.Vars(r)["sessionId"], func(ws *session.Workspace) {
		if opts.AspectRatio == "" {
			opts.AspectRatio = ws.Options.AspectRatio
		}
		ws.Options = opts
	})
	if !ok {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	json.NewEncoder(w).Encode(ws)
}

// UploadImages - POST /api/sessions/{sessionId}/images
// 인물 이미지 교체 또는 프로젝트 이미지 추가 (base64)
func (h *Handler) UploadImages(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req struct {
		Portrait      string   `json:"portrait,omitempty"`
		ProjectImages []string `json:"projectImages,omitempty"`
		Replace       bool     `json:"replace,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ws, ok := h.store.Update(mux.Vars(r)["sessionId"], func(ws *session.Workspace) {
		if req.Portrait != "" {
			ws.PortraitImage = req.Portrait
		}
		if req.Replace {
			ws.ProjectImages = req.ProjectImages
		} else if len(req.ProjectImages) > 0 {
			ws.ProjectImages = append(ws.ProjectImages, req.ProjectImages...)
		}
	})
	if !ok {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	json.NewEncoder(w).Encode(ws)
}

// ToggleEdit - POST /api/sessions/{sessionId}/scenes/{idx}/edit
// 편집 폼 열기/닫기. 이미지 생성 중인 Scene은 편집 불가.
func (h *Handler) ToggleEdit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	sessionID := mux.Vars(r)["sessionId"]
	idx, err := strconv.Atoi(mux.Vars(r)["idx"])
	if err != nil || idx < 0 {
		writeError(w, http.StatusBadRequest, "Invalid scene index")
		return
	}

	conflict := false
	ws, ok := h.store.Update(sessionID, func(ws *session.Workspace) {
		if idx >= len(ws.Scenes) {
			conflict = true
			return
		}
		sc := &ws.Scenes[idx]
		if sc.ImageStatus == model.ImageGenerating {
			conflict = true
			return
		}
		sc.IsEditing = !sc.IsEditing
		sc.Feedback = ""
	})
	if !ok {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	if conflict {
		writeError(w, http.StatusConflict, "Scene is busy or index out of range")
		return
	}
	json.NewEncoder(w).Encode(ws)
}

// RegenerateScene - POST /api/sessions/{sessionId}/scenes/{idx}/regenerate
func (h *Handler) RegenerateScene(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	sessionID := mux.Vars(r)["sessionId"]
	idx, err := strconv.Atoi(mux.Vars(r)["idx"])
	if err != nil || idx < 0 {
		writeError(w, http.StatusBadRequest, "Invalid scene index")
		return
	}

	var req struct {
		Feedback string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ws, err := h.regenerate.RegenerateScene(r.Context(), sessionID, idx, capText(req.Feedback))
	if err != nil {
		switch err {
		case ErrSessionNotFound:
			writeError(w, http.StatusNotFound, err.Error())
		case ErrSceneBusy, ErrSceneIndex:
			writeError(w, http.StatusConflict, err.Error())
		case ErrFeedbackRequired:
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			// 원격 호출 실패 - 기존 이미지는 보존되고 세션에 에러 메시지가 남는다
			writeError(w, http.StatusBadGateway, err.Error())
		}
		return
	}
	json.NewEncoder(w).Encode(ws)
}

// GetOptionCatalogs - GET /api/options
func (h *Handler) GetOptionCatalogs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"clothingOptions":     model.ClothingOptions,
		"townhouseOutfits":    model.TownhouseOutfits,
		"brandingBackgrounds": model.BrandingBackgrounds,
		"brandingStyles":      model.BrandingStyles,
		"brandingTones":       model.BrandingTones,
		"ratioOptions":        model.RatioOptions,
	})
}

// sanitizeOptions - 자유 입력 trim + 길이 제한
func sanitizeOptions(opts *model.GenerationOptions) {
	opts.ProjectInfo.Description = capText(opts.ProjectInfo.Description)
	opts.ProjectInfo.Utilities = capText(opts.ProjectInfo.Utilities)
	opts.ProjectInfo.CTA = capText(opts.ProjectInfo.CTA)
	opts.CustomClothingText = capText(opts.CustomClothingText)
	opts.CustomTownhouseOutfit = capText(opts.CustomTownhouseOutfit)
	opts.BrandingTopic = capText(opts.BrandingTopic)
	opts.CustomBrandingBg = capText(opts.CustomBrandingBg)
}

// capText - trim 후 상한 길이로 자르기 (rune 경계 유지, 베트남어 다바이트 문자 안전)
func capText(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxFreeTextLen {
		return s
	}
	cut := maxFreeTextLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// writeError - 에러 응답 공통 처리
func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
