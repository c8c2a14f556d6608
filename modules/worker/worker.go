package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"bds-studio-server/modules/branding"
	"bds-studio-server/modules/common/model"
	redisutil "bds-studio-server/modules/common/redis"
	"bds-studio-server/modules/land"
	"bds-studio-server/modules/townhouse"
)

// Worker - Redis Queue Worker
// 대기열에서 Job을 꺼내 서브앱 파이프라인으로 라우팅한다.
type Worker struct {
	rdb          *redis.Client
	brandingSvc  *branding.Service
	landSvc      *land.Service
	townhouseSvc *townhouse.Service
}

// NewWorker - Worker 생성
func NewWorker(rdb *redis.Client, brandingSvc *branding.Service, landSvc *land.Service, townhouseSvc *townhouse.Service) *Worker {
	return &Worker{
		rdb:          rdb,
		brandingSvc:  brandingSvc,
		landSvc:      landSvc,
		townhouseSvc: townhouseSvc,
	}
}

// Start - Queue 감시 시작 (blocking)
func (w *Worker) Start() {
	log.Println("🔄 Redis Queue Worker starting...")
	log.Printf("👀 Watching queue: %s", redisutil.JobQueueKey)

	ctx := context.Background()

	for {
		// Job 받기 (BRPOP - Blocking Right Pop)
		result, err := w.rdb.BRPop(ctx, 0, redisutil.JobQueueKey).Result()
		if err != nil {
			log.Printf("❌ Redis BRPOP error: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		// result[0]은 queue 이름, result[1]이 실제 job_id
		jobID := result[1]
		log.Printf("🎯 Received new job: %s", jobID)

		// Job 처리 (goroutine으로 비동기)
		go w.processJob(ctx, jobID)
	}
}

// processJob - Job payload 조회 후 서브앱으로 라우팅
func (w *Worker) processJob(ctx context.Context, jobID string) {
	payload, err := redisutil.FetchJobData(ctx, w.rdb, jobID)
	if err != nil {
		log.Printf("❌ Failed to fetch job %s: %v", jobID, err)
		return
	}

	var job model.GenerationJob
	if err := json.Unmarshal(payload, &job); err != nil {
		log.Printf("❌ Invalid job payload for %s: %v", jobID, err)
		return
	}

	log.Printf("📦 Job Data:")
	log.Printf("   JobID: %s", job.JobID)
	log.Printf("   SessionID: %s", job.SessionID)
	log.Printf("   App: %s", job.App)

	switch job.App {
	case model.AppBranding:
		log.Printf("✨ Routing to Branding module")
		w.brandingSvc.ProcessJob(ctx, job)

	case model.AppLand:
		log.Printf("🗺️  Routing to Land module")
		w.landSvc.ProcessJob(ctx, job)

	case model.AppTownhouse:
		log.Printf("🏡 Routing to Townhouse module")
		w.townhouseSvc.ProcessJob(ctx, job)

	default:
		log.Printf("⚠️  Unknown app type: %s, dropping job %s", job.App, job.JobID)
		return
	}

	log.Printf("✅ Job %s processing completed", job.JobID)
}
