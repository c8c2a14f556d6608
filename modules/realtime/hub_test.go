package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bds-studio-server/modules/common/model"
	"bds-studio-server/modules/common/session"
)

func TestHubReceivesStoreUpdates(t *testing.T) {
	store := session.NewStore(time.Hour)
	h := NewHub(store)

	ws := store.Create(model.AppLand)
	client := &Client{sessionID: ws.SessionID, send: make(chan []byte, 16)}
	h.addClient(client)

	store.Update(ws.SessionID, func(ws *session.Workspace) {
		ws.Progress = 42
	})

	select {
	case msg := <-client.send:
		assert.Contains(t, string(msg), `"progress":42`)
		assert.Contains(t, string(msg), ws.SessionID)
	default:
		t.Fatal("store update must be pushed to the session's clients")
	}
}

func TestBroadcastSnapshotDropsSlowConsumer(t *testing.T) {
	store := session.NewStore(time.Hour)
	h := NewHub(store)

	fast := &Client{sessionID: "s1", send: make(chan []byte, 16)}
	slow := &Client{sessionID: "s1", send: make(chan []byte)} // 버퍼 없음 - 첫 브로드캐스트에서 드롭
	h.addClient(fast)
	h.addClient(slow)

	h.BroadcastSnapshot(session.Workspace{SessionID: "s1", Progress: 10})

	select {
	case msg := <-fast.send:
		assert.Contains(t, string(msg), `"progress":10`)
	default:
		t.Fatal("fast client must receive the snapshot")
	}

	// slow는 닫히고 제거된 상태 - 후속 브로드캐스트가 panic 없이 동작해야 한다
	h.BroadcastSnapshot(session.Workspace{SessionID: "s1", Progress: 20})

	_, open := <-slow.send
	assert.False(t, open, "slow client channel must be closed")

	require.Len(t, h.clients["s1"], 1)
}

func TestBroadcastSnapshotIgnoresUnknownSession(t *testing.T) {
	store := session.NewStore(time.Hour)
	h := NewHub(store)

	// 연결 없는 세션의 스냅샷은 조용히 무시
	h.BroadcastSnapshot(session.Workspace{SessionID: "nobody", Progress: 5})
}

func TestRemoveClientClosesChannelOnce(t *testing.T) {
	store := session.NewStore(time.Hour)
	h := NewHub(store)

	client := &Client{sessionID: "s1", send: make(chan []byte, 1)}
	h.addClient(client)

	h.removeClient(client)
	h.removeClient(client) // 중복 제거도 panic 없이

	_, open := <-client.send
	assert.False(t, open)
	assert.Empty(t, h.clients["s1"])
}
