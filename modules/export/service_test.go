package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bds-studio-server/modules/common/config"
	"bds-studio-server/modules/common/model"
	"bds-studio-server/modules/common/session"
)

func newService() *Service {
	return NewService(&config.Config{WebPQuality: 90})
}

func TestBuildScriptBundleScenes(t *testing.T) {
	ws := session.Workspace{
		App: model.AppLand,
		Scenes: []model.SceneData{
			{Title: "Mở đầu", Script: "Chào mừng quý vị", VeoPrompt: "drone over project"},
			{Title: "Kết", Script: "Liên hệ ngay", VeoPrompt: "zoom on agent"},
		},
	}

	content, filename, err := newService().BuildScriptBundle(ws)
	require.NoError(t, err)
	assert.Equal(t, "Kich_ban_BDS.txt", filename)

	assert.Contains(t, content, "Cảnh 1: Mở đầu\n\n")
	assert.Contains(t, content, "Prompt Veo: drone over project\n\n")
	assert.Contains(t, content, "Lời thoại: Chào mừng quý vị\n")
	assert.Contains(t, content, "Cảnh 2: Kết\n\n")
	assert.Contains(t, content, itemSeparator)
	assert.NotContains(t, content, "HOOK:")

	// Scene 순서 유지
	assert.Less(t, strings.Index(content, "Cảnh 1"), strings.Index(content, "Cảnh 2"))
}

func TestBuildScriptBundleBranding(t *testing.T) {
	ws := session.Workspace{
		App: model.AppBranding,
		Branding: &model.BrandingResult{
			HookHeadline: "Bí mật chốt deal",
			Hashtags:     []string{"#batdongsan", "#mogi"},
			Variations: []model.BrandingVariation{
				{Title: "Video 1", Script: "Nội dung 1", VeoPrompt: "veo 1"},
			},
		},
	}

	content, filename, err := newService().BuildScriptBundle(ws)
	require.NoError(t, err)
	assert.Equal(t, "Kich_ban_Thuong_hieu.txt", filename)

	assert.True(t, strings.HasPrefix(content, "HOOK: Bí mật chốt deal\n"))
	assert.Contains(t, content, "HASHTAGS: #batdongsan #mogi\n")
	assert.Contains(t, content, sectionSeparator)
	assert.Contains(t, content, "Cảnh 1: Video 1")
}

func TestBuildScriptBundleNoResult(t *testing.T) {
	_, _, err := newService().BuildScriptBundle(session.Workspace{App: model.AppLand})
	assert.ErrorIs(t, err, ErrNoResult)

	_, _, err = newService().BuildScriptBundle(session.Workspace{App: model.AppBranding})
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestSceneImageWebPNotReady(t *testing.T) {
	ws := session.Workspace{
		App: model.AppLand,
		Scenes: []model.SceneData{
			{Title: "s", ImageStatus: model.ImageFailed},
		},
	}

	_, _, err := newService().SceneImageWebP(ws, 0)
	assert.ErrorIs(t, err, ErrNoImage)

	_, _, err = newService().SceneImageWebP(ws, 5)
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestMasterImageWebPNotReady(t *testing.T) {
	_, _, err := newService().MasterImageWebP(session.Workspace{App: model.AppBranding})
	assert.ErrorIs(t, err, ErrNoImage)

	ws := session.Workspace{
		App:      model.AppBranding,
		Branding: &model.BrandingResult{MasterImageStatus: model.ImageFailed},
	}
	_, _, err = newService().MasterImageWebP(ws)
	assert.ErrorIs(t, err, ErrNoImage)
}
