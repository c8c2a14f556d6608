package worker

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"bds-studio-server/modules/common/model"
	redisutil "bds-studio-server/modules/common/redis"
	"bds-studio-server/modules/common/session"
)

// CancelHandler - Job 취소 API 핸들러
type CancelHandler struct {
	rdb   *redis.Client
	store *session.Store
}

// NewCancelHandler - 핸들러 생성
func NewCancelHandler(rdb *redis.Client, store *session.Store) *CancelHandler {
	return &CancelHandler{rdb: rdb, store: store}
}

// RegisterRoutes - 라우트 등록
func (h *CancelHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/jobs/{jobId}/cancel", h.CancelJob).Methods("POST", "OPTIONS")
	log.Println("✅ Cancel routes registered: POST /api/jobs/{jobId}/cancel")
}

// CancelJob - Job 취소 처리
// Redis 취소 플래그를 세우고 세션 run 토큰을 폐기한다.
// 진행 중인 이미지 루프는 다음 Scene 시작 전에 멈춘다.
func (h *CancelHandler) CancelJob(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	vars := mux.Vars(r)
	jobID := vars["jobId"]
	if jobID == "" {
		http.Error(w, `{"error": "jobId is required"}`, http.StatusBadRequest)
		return
	}

	log.Printf("🛑 [Cancel] Cancel requested for job: %s", jobID)

	ctx := r.Context()

	if err := redisutil.SetJobCancelled(ctx, h.rdb, jobID); err != nil {
		log.Printf("❌ [Cancel] Failed to set cancel flag: %v", err)
		http.Error(w, `{"error": "Failed to set cancel flag"}`, http.StatusInternalServerError)
		return
	}

	// Job payload에서 세션을 찾아 run 토큰 폐기
	payload, err := redisutil.FetchJobData(ctx, h.rdb, jobID)
	if err != nil {
		log.Printf("❌ [Cancel] Job not found: %s", jobID)
		http.Error(w, `{"error": "Job not found"}`, http.StatusNotFound)
		return
	}

	var job model.GenerationJob
	if err := json.Unmarshal(payload, &job); err != nil {
		http.Error(w, `{"error": "Invalid job payload"}`, http.StatusInternalServerError)
		return
	}

	h.store.InvalidateRun(job.SessionID)

	log.Printf("✅ [Cancel] Cancel flag set for job: %s (session: %s)", jobID, job.SessionID)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Cancel request sent. Generation will stop after current scene.",
		"jobId":   jobID,
	})
}
