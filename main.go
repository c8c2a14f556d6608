package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"bds-studio-server/modules/branding"
	"bds-studio-server/modules/common/config"
	"bds-studio-server/modules/common/gemini"
	redisutil "bds-studio-server/modules/common/redis"
	"bds-studio-server/modules/common/session"
	"bds-studio-server/modules/export"
	"bds-studio-server/modules/imagegen"
	"bds-studio-server/modules/land"
	"bds-studio-server/modules/realtime"
	"bds-studio-server/modules/studio"
	"bds-studio-server/modules/townhouse"
	"bds-studio-server/modules/worker"
)

// CORS 헤더 추가
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// 헬스 체크 엔드포인트
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "bds-studio-server",
	})
}

func main() {
	// 환경변수 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Redis 연결
	rdb := redisutil.Connect(cfg)
	if rdb == nil {
		log.Fatal("❌ Redis connection failed")
	}
	log.Println("✅ Redis connected")

	// 세션 Store + 정리 루틴
	store := session.NewStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute)
	store.StartCleanupRoutine()

	// WebSocket Hub - 세션 변경 스냅샷 push
	hub := realtime.NewHub(store)

	// Gemini 클라이언트 + 파이프라인 서비스
	gen := gemini.NewClient()
	images := imagegen.NewService(gen)

	brandingSvc := branding.NewService(gen, images, store, rdb)
	landSvc := land.NewService(gen, images, store, rdb)
	townhouseSvc := townhouse.NewService(gen, images, store, rdb)

	// Redis Queue Worker 시작 (백그라운드)
	w := worker.NewWorker(rdb, brandingSvc, landSvc, townhouseSvc)
	go w.Start()

	// 라우터 설정
	r := mux.NewRouter()
	r.Use(enableCORS)

	r.HandleFunc("/", healthCheck).Methods("GET")
	r.HandleFunc("/health", healthCheck).Methods("GET")
	r.HandleFunc("/ws", hub.HandleWebSocket)

	studio.NewHandler(store, studio.NewRegenerateService(store, images)).RegisterRoutes(r)
	export.NewHandler(store, export.NewService(cfg)).RegisterRoutes(r)
	worker.NewEnqueueHandler(rdb, store).RegisterRoutes(r)
	worker.NewCancelHandler(rdb, store).RegisterRoutes(r)

	log.Printf("🚀 BDS Studio Server starting on port %s", cfg.Port)
	log.Printf("📡 WebSocket endpoint: ws://localhost:%s/ws", cfg.Port)
	log.Printf("❤️  Health check: http://localhost:%s/health", cfg.Port)

	// 서버 시작
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
