package branding

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"bds-studio-server/modules/common/model"
	"bds-studio-server/modules/common/session"
	"bds-studio-server/modules/imagegen"
)

type stubGenerator struct {
	jsonPayload []byte
	jsonErr     error
	imageErr    error
	imageCalls  int
}

func (s *stubGenerator) GenerateJSON(ctx context.Context, systemInstruction string, parts []*genai.Part, schema *genai.Schema) ([]byte, error) {
	if s.jsonErr != nil {
		return nil, s.jsonErr
	}
	return s.jsonPayload, nil
}

func (s *stubGenerator) GenerateImage(ctx context.Context, parts []*genai.Part, aspectRatio string) ([]byte, error) {
	s.imageCalls++
	if s.imageErr != nil {
		return nil, s.imageErr
	}
	return []byte("master-image"), nil
}

func offlineRedis() *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

const brandingJSON = `{
	"hookHeadline": "Bí mật chốt deal trong 7 ngày",
	"hashtags": ["#batdongsan", "#personalbrand"],
	"masterVisualPrompt": "expert in modern studio",
	"variations": [
		{"id": 1, "title": "Video 1", "script": "Nội dung 1", "veoPrompt": "veo 1"},
		{"id": 2, "title": "Video 2", "script": "Nội dung 2", "veoPrompt": "veo 2"}
	]
}`

func newBrandingFixture(t *testing.T, stub *stubGenerator) (*Service, *session.Store, model.GenerationJob) {
	t.Helper()

	store := session.NewStore(time.Hour)
	ws := store.Create(model.AppBranding)

	store.Update(ws.SessionID, func(ws *session.Workspace) {
		ws.PortraitImage = base64.StdEncoding.EncodeToString([]byte("portrait"))
		ws.Options.BrandingTopic = "đầu tư đất nền"
	})

	token, ok := store.BeginRun(ws.SessionID)
	require.True(t, ok)

	svc := NewService(stub, imagegen.NewService(stub), store, offlineRedis())
	job := model.GenerationJob{
		JobID:     "job-branding",
		SessionID: ws.SessionID,
		App:       model.AppBranding,
		RunToken:  token,
	}
	return svc, store, job
}

func TestProcessJobHappyPath(t *testing.T) {
	stub := &stubGenerator{jsonPayload: []byte(brandingJSON)}
	svc, store, job := newBrandingFixture(t, stub)

	svc.ProcessJob(context.Background(), job)

	ws, _ := store.Get(job.SessionID)
	assert.Equal(t, model.RunDone, ws.Status)
	assert.Equal(t, 100, ws.Progress)

	require.NotNil(t, ws.Branding)
	assert.Equal(t, "Bí mật chốt deal trong 7 ngày", ws.Branding.HookHeadline)
	assert.Len(t, ws.Branding.Hashtags, 2)
	assert.Len(t, ws.Branding.Variations, 2)
	assert.Equal(t, model.ImageDone, ws.Branding.MasterImageStatus)
	assert.NotEmpty(t, ws.Branding.MasterImageBase64)
	assert.Equal(t, 1, stub.imageCalls, "variations get no individual images")
}

func TestProcessJobMasterImageFailureStillCompletesRun(t *testing.T) {
	stub := &stubGenerator{jsonPayload: []byte(brandingJSON), imageErr: errors.New("image down")}
	svc, store, job := newBrandingFixture(t, stub)

	svc.ProcessJob(context.Background(), job)

	ws, _ := store.Get(job.SessionID)
	// 텍스트 결과는 유효하므로 run은 완료 처리
	assert.Equal(t, model.RunDone, ws.Status)
	assert.Equal(t, 100, ws.Progress)

	require.NotNil(t, ws.Branding)
	assert.Equal(t, model.ImageFailed, ws.Branding.MasterImageStatus)
	assert.Empty(t, ws.Branding.MasterImageBase64)
	assert.Equal(t, "Bí mật chốt deal trong 7 ngày", ws.Branding.HookHeadline)
}

func TestProcessJobTextFailureFailsRun(t *testing.T) {
	stub := &stubGenerator{jsonErr: errors.New("remote down")}
	svc, store, job := newBrandingFixture(t, stub)

	svc.ProcessJob(context.Background(), job)

	ws, _ := store.Get(job.SessionID)
	assert.Equal(t, model.RunFailed, ws.Status)
	assert.Equal(t, "Không thể tạo kế hoạch thương hiệu. Vui lòng thử lại.", ws.ErrorMessage)
	assert.Nil(t, ws.Branding)
	assert.Zero(t, stub.imageCalls)
}

func TestProcessJobSupersededRunWritesNothing(t *testing.T) {
	stub := &stubGenerator{jsonPayload: []byte(brandingJSON)}
	svc, store, job := newBrandingFixture(t, stub)

	_, ok := store.BeginRun(job.SessionID)
	require.True(t, ok)

	svc.ProcessJob(context.Background(), job)

	ws, _ := store.Get(job.SessionID)
	assert.Nil(t, ws.Branding)
	assert.Equal(t, model.RunTextGenerating, ws.Status)
}
