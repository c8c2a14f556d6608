package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"bds-studio-server/modules/common/session"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// 개발용 - 모든 origin 허용
		// 프로덕션에서는 특정 도메인만 허용하도록 수정
		return true
	},
}

// Client - 연결된 WebSocket 클라이언트
type Client struct {
	conn      *websocket.Conn
	sessionID string
	send      chan []byte
}

// Hub - 세션별 WebSocket 연결 관리
// 세션 Workspace가 바뀔 때마다 해당 세션의 모든 연결로 스냅샷을 밀어낸다.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]bool
	store   *session.Store
}

// NewHub - Hub 생성, 세션 Store의 변경 리스너로 등록된다
func NewHub(store *session.Store) *Hub {
	h := &Hub{
		clients: make(map[string]map[*Client]bool),
		store:   store,
	}
	store.SetListener(h.BroadcastSnapshot)
	return h
}

// HandleWebSocket - GET /ws?session=<sessionId>
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter is required", http.StatusBadRequest)
		return
	}

	if _, ok := h.store.Get(sessionID); !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		conn:      conn,
		sessionID: sessionID,
		send:      make(chan []byte, 16),
	}

	// 등록 전에 현재 상태를 먼저 채워 넣는다
	if ws, ok := h.store.Get(sessionID); ok {
		if payload, err := json.Marshal(ws); err == nil {
			client.send <- payload
		}
	}

	h.addClient(client)
	log.Printf("🔍 New WebSocket connection - Session: %s", sessionID)

	go client.writePump()
	go client.readPump(h)
}

// BroadcastSnapshot - 세션 변경 스냅샷을 해당 세션의 모든 연결에 전송
func (h *Hub) BroadcastSnapshot(snapshot session.Workspace) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("Error marshaling snapshot: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients[snapshot.SessionID] {
		select {
		case client.send <- payload:
		default:
			// 느린 소비자는 끊는다
			close(client.send)
			delete(h.clients[snapshot.SessionID], client)
		}
	}
}

// addClient - 클라이언트 등록
func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.sessionID] == nil {
		h.clients[client.sessionID] = make(map[*Client]bool)
	}
	h.clients[client.sessionID][client] = true
}

// removeClient - 클라이언트 제거
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[client.sessionID]; ok {
		if _, exists := conns[client]; exists {
			close(client.send)
			delete(conns, client)
		}
		if len(conns) == 0 {
			delete(h.clients, client.sessionID)
		}
	}
}

// readPump - 연결 종료 감지용 (클라이언트 → 서버 메시지는 쓰지 않는다)
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.removeClient(c)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump - 클라이언트로 스냅샷 쓰기
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
