package studio

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"bds-studio-server/modules/common/model"
	"bds-studio-server/modules/common/session"
	"bds-studio-server/modules/imagegen"
)

type stubGenerator struct {
	mu         sync.Mutex
	imageData  []byte
	imageErr   error
	imageCalls int
	lastParts  []*genai.Part
	gate       chan struct{} // nil이 아니면 이미지 호출이 여기서 블록
}

func (s *stubGenerator) GenerateJSON(ctx context.Context, systemInstruction string, parts []*genai.Part, schema *genai.Schema) ([]byte, error) {
	return nil, errors.New("not used")
}

func (s *stubGenerator) GenerateImage(ctx context.Context, parts []*genai.Part, aspectRatio string) ([]byte, error) {
	s.mu.Lock()
	s.imageCalls++
	s.lastParts = parts
	s.mu.Unlock()

	if s.gate != nil {
		<-s.gate
	}
	if s.imageErr != nil {
		return nil, s.imageErr
	}
	return s.imageData, nil
}

func (s *stubGenerator) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imageCalls
}

func newRegenerateFixture(t *testing.T, stub *stubGenerator) (*RegenerateService, *session.Store, string) {
	t.Helper()

	store := session.NewStore(time.Hour)
	ws := store.Create(model.AppLand)

	store.Update(ws.SessionID, func(ws *session.Workspace) {
		ws.PortraitImage = base64.StdEncoding.EncodeToString([]byte("portrait"))
		ws.Scenes = []model.SceneData{
			{Title: "s1", VisualPrompt: "agent at gate", ImageBase64: "old-image", ImageStatus: model.ImageDone},
		}
	})

	svc := NewRegenerateService(store, imagegen.NewService(stub))
	return svc, store, ws.SessionID
}

func TestRegenerateSceneReplacesImage(t *testing.T) {
	stub := &stubGenerator{imageData: []byte("new-image")}
	svc, store, sessionID := newRegenerateFixture(t, stub)

	got, err := svc.RegenerateScene(context.Background(), sessionID, 0, "make him smile")
	require.NoError(t, err)

	want := base64.StdEncoding.EncodeToString([]byte("new-image"))
	assert.Equal(t, want, got.Scenes[0].ImageBase64)
	assert.Equal(t, model.ImageDone, got.Scenes[0].ImageStatus)
	assert.Empty(t, got.Scenes[0].Feedback, "feedback cleared after success")
	assert.Empty(t, got.ErrorMessage)

	fresh, _ := store.Get(sessionID)
	assert.Equal(t, want, fresh.Scenes[0].ImageBase64)
}

func TestRegenerateSceneFailureKeepsOldImage(t *testing.T) {
	stub := &stubGenerator{imageErr: errors.New("remote down")}
	svc, store, sessionID := newRegenerateFixture(t, stub)

	_, err := svc.RegenerateScene(context.Background(), sessionID, 0, "change pose")
	assert.Error(t, err)

	fresh, _ := store.Get(sessionID)
	assert.Equal(t, "old-image", fresh.Scenes[0].ImageBase64, "prior image preserved on failure")
	assert.Equal(t, model.ImageDone, fresh.Scenes[0].ImageStatus)
	assert.NotEmpty(t, fresh.ErrorMessage)
}

func TestRegenerateSceneEmptyFeedbackIsNoOp(t *testing.T) {
	stub := &stubGenerator{imageData: []byte("new-image")}
	svc, store, sessionID := newRegenerateFixture(t, stub)

	_, err := svc.RegenerateScene(context.Background(), sessionID, 0, "")
	assert.ErrorIs(t, err, ErrFeedbackRequired)
	assert.Zero(t, stub.imageCalls)

	fresh, _ := store.Get(sessionID)
	assert.Equal(t, "old-image", fresh.Scenes[0].ImageBase64)
}

func TestRegenerateSceneValidation(t *testing.T) {
	stub := &stubGenerator{imageData: []byte("new-image")}
	svc, store, sessionID := newRegenerateFixture(t, stub)

	_, err := svc.RegenerateScene(context.Background(), "missing", 0, "feedback")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.RegenerateScene(context.Background(), sessionID, 9, "feedback")
	assert.ErrorIs(t, err, ErrSceneIndex)

	store.Update(sessionID, func(ws *session.Workspace) {
		ws.Scenes[0].ImageStatus = model.ImageGenerating
	})
	_, err = svc.RegenerateScene(context.Background(), sessionID, 0, "feedback")
	assert.ErrorIs(t, err, ErrSceneBusy)
	assert.Zero(t, stub.imageCalls)
}

func TestRegenerateSceneConcurrentRequestsSingleCall(t *testing.T) {
	stub := &stubGenerator{imageData: []byte("new-image"), gate: make(chan struct{})}
	svc, store, sessionID := newRegenerateFixture(t, stub)

	const workers = 8
	start := make(chan struct{})
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			<-start
			_, err := svc.RegenerateScene(context.Background(), sessionID, 0, "change pose")
			results <- err
		}()
	}
	close(start)

	// 승자는 스텁 안에서 블록 중이므로 먼저 도착하는 결과는 전부 busy 거절이어야 한다
	for i := 0; i < workers-1; i++ {
		assert.ErrorIs(t, <-results, ErrSceneBusy)
	}

	close(stub.gate)
	require.NoError(t, <-results)

	assert.Equal(t, 1, stub.calls(), "only one regeneration may reach the remote")

	fresh, _ := store.Get(sessionID)
	assert.Equal(t, model.ImageDone, fresh.Scenes[0].ImageStatus)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("new-image")), fresh.Scenes[0].ImageBase64)
}

func TestRegenerateSceneCyclesProjectImageBackground(t *testing.T) {
	stub := &stubGenerator{imageData: []byte("new-image")}

	store := session.NewStore(time.Hour)
	ws := store.Create(model.AppLand)

	site1 := base64.StdEncoding.EncodeToString([]byte("site-1"))
	site2 := base64.StdEncoding.EncodeToString([]byte("site-2"))
	store.Update(ws.SessionID, func(ws *session.Workspace) {
		ws.PortraitImage = base64.StdEncoding.EncodeToString([]byte("portrait"))
		ws.ProjectImages = []string{site1, site2}
		ws.Scenes = []model.SceneData{
			{Title: "s1", VisualPrompt: "v1", ImageStatus: model.ImageDone},
			{Title: "s2", VisualPrompt: "v2", ImageStatus: model.ImageDone},
		}
	})

	svc := NewRegenerateService(store, imagegen.NewService(stub))
	_, err := svc.RegenerateScene(context.Background(), ws.SessionID, 1, "brighter lighting")
	require.NoError(t, err)

	// Land 재생성도 배경(IMAGE 1) → 인물(IMAGE 2) → 프롬프트 순서로 전달된다
	require.Len(t, stub.lastParts, 3)
	require.NotNil(t, stub.lastParts[0].InlineData)
	assert.Equal(t, []byte("site-2"), stub.lastParts[0].InlineData.Data, "scene index cycles the project images")
	require.NotNil(t, stub.lastParts[1].InlineData)
	assert.Equal(t, []byte("portrait"), stub.lastParts[1].InlineData.Data)
	assert.Contains(t, stub.lastParts[2].Text, "EDIT REQUEST: brighter lighting.")
}
