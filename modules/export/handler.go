package export

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"bds-studio-server/modules/common/session"
)

// Handler - 결과 다운로드 API
type Handler struct {
	store   *session.Store
	service *Service
}

// NewHandler - Handler 생성
func NewHandler(store *session.Store, service *Service) *Handler {
	return &Handler{store: store, service: service}
}

// RegisterRoutes - 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/sessions/{sessionId}/export/scripts", h.DownloadScripts).Methods("GET")
	r.HandleFunc("/api/sessions/{sessionId}/export/scenes/{idx}/image", h.DownloadSceneImage).Methods("GET")
	r.HandleFunc("/api/sessions/{sessionId}/export/branding/master", h.DownloadMasterImage).Methods("GET")
	log.Println("✅ Export routes registered")
}

// DownloadScripts - GET /api/sessions/{sessionId}/export/scripts
func (h *Handler) DownloadScripts(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.store.Get(mux.Vars(r)["sessionId"])
	if !ok {
		writeJSONError(w, http.StatusNotFound, "Session not found")
		return
	}

	content, filename, err := h.service.BuildScriptBundle(ws)
	if err != nil {
		writeJSONError(w, http.StatusConflict, "Chưa có kịch bản để tải.")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write([]byte(content))
}

// DownloadSceneImage - GET /api/sessions/{sessionId}/export/scenes/{idx}/image
func (h *Handler) DownloadSceneImage(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.store.Get(mux.Vars(r)["sessionId"])
	if !ok {
		writeJSONError(w, http.StatusNotFound, "Session not found")
		return
	}

	idx, err := strconv.Atoi(mux.Vars(r)["idx"])
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene index")
		return
	}

	data, filename, err := h.service.SceneImageWebP(ws, idx)
	if err != nil {
		log.Printf("❌ [Export] Scene image export failed (session %s, idx %d): %v", ws.SessionID, idx, err)
		writeJSONError(w, http.StatusConflict, "Ảnh chưa sẵn sàng để tải.")
		return
	}

	writeWebP(w, data, filename)
}

// DownloadMasterImage - GET /api/sessions/{sessionId}/export/branding/master
func (h *Handler) DownloadMasterImage(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.store.Get(mux.Vars(r)["sessionId"])
	if !ok {
		writeJSONError(w, http.StatusNotFound, "Session not found")
		return
	}

	data, filename, err := h.service.MasterImageWebP(ws)
	if err != nil {
		log.Printf("❌ [Export] Master image export failed (session %s): %v", ws.SessionID, err)
		writeJSONError(w, http.StatusConflict, "Ảnh chưa sẵn sàng để tải.")
		return
	}

	writeWebP(w, data, filename)
}

// writeWebP - WebP 다운로드 응답
func writeWebP(w http.ResponseWriter, data []byte, filename string) {
	w.Header().Set("Content-Type", "image/webp")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// writeJSONError - 에러 응답
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
