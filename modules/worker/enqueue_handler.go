package worker

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"bds-studio-server/modules/common/model"
	redisutil "bds-studio-server/modules/common/redis"
	"bds-studio-server/modules/common/session"
)

// EnqueueHandler - 생성 Job Enqueue Handler
type EnqueueHandler struct {
	rdb   *redis.Client
	store *session.Store
}

// EnqueueRequest - Enqueue 요청
type EnqueueRequest struct {
	SessionID string `json:"sessionId"`
}

// EnqueueResponse - Enqueue 응답
type EnqueueResponse struct {
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
	JobID         string `json:"jobId,omitempty"`
	QueuePosition int64  `json:"queuePosition,omitempty"`
}

// NewEnqueueHandler - EnqueueHandler 생성
func NewEnqueueHandler(rdb *redis.Client, store *session.Store) *EnqueueHandler {
	return &EnqueueHandler{rdb: rdb, store: store}
}

// RegisterRoutes - 라우트 등록
func (h *EnqueueHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/generate", h.HandleEnqueue).Methods("POST", "OPTIONS")
	log.Println("✅ Enqueue routes registered: /api/generate")
}

// HandleEnqueue - POST /api/generate
// 세션 run을 시작하고 Job을 대기열에 넣는다. 새 run은 이전 run의 토큰을 무효화한다.
func (h *EnqueueHandler) HandleEnqueue(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req EnqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		json.NewEncoder(w).Encode(EnqueueResponse{Success: false, Error: "Invalid request body"})
		return
	}
	if req.SessionID == "" {
		json.NewEncoder(w).Encode(EnqueueResponse{Success: false, Error: "sessionId is required"})
		return
	}

	ws, ok := h.store.Get(req.SessionID)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(EnqueueResponse{Success: false, Error: "Session not found"})
		return
	}

	if !model.IsValidAspectRatio(ws.Options.AspectRatio) {
		json.NewEncoder(w).Encode(EnqueueResponse{Success: false, Error: "Invalid aspect ratio"})
		return
	}

	// 새 run 시작 - 이전 결과 정리 + 토큰 교체
	runToken, ok := h.store.BeginRun(req.SessionID)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(EnqueueResponse{Success: false, Error: "Session not found"})
		return
	}

	job := model.GenerationJob{
		JobID:     uuid.NewString(),
		SessionID: req.SessionID,
		App:       ws.App,
		RunToken:  runToken,
	}

	payload, err := json.Marshal(job)
	if err != nil {
		json.NewEncoder(w).Encode(EnqueueResponse{Success: false, Error: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := redisutil.StoreJobData(ctx, h.rdb, job.JobID, payload); err != nil {
		log.Printf("❌ [Enqueue] Failed to store job data: %v", err)
		json.NewEncoder(w).Encode(EnqueueResponse{Success: false, Error: "Failed to store job"})
		return
	}

	if _, err := h.rdb.LPush(ctx, redisutil.JobQueueKey, job.JobID).Result(); err != nil {
		log.Printf("❌ [Enqueue] Redis LPUSH failed: %v", err)
		json.NewEncoder(w).Encode(EnqueueResponse{Success: false, Error: err.Error()})
		return
	}

	queueLen, _ := h.rdb.LLen(ctx, redisutil.JobQueueKey).Result()
	log.Printf("📥 [Enqueue] Job %s enqueued for session %s (app: %s, position: %d)",
		job.JobID, job.SessionID, job.App, queueLen)

	json.NewEncoder(w).Encode(EnqueueResponse{
		Success:       true,
		JobID:         job.JobID,
		QueuePosition: queueLen,
	})
}
