package imagegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildImagePromptTownhouseWithBackground(t *testing.T) {
	prompt := BuildImagePrompt(IntentTownhouse, "agent in living room", true)

	assert.Contains(t, prompt, "INSERT CHARACTER INTO EXISTING IMAGE")
	assert.Contains(t, prompt, "FULL BODY STANDING SHOT")
	assert.Contains(t, prompt, "agent in living room")
	assert.Contains(t, prompt, "cropped feet", "townhouse negative prompt expected")
	assert.NotContains(t, prompt, "TV News Broadcast")
}

func TestBuildImagePromptTownhouseWithoutBackground(t *testing.T) {
	prompt := BuildImagePrompt(IntentTownhouse, "agent in hallway", false)

	assert.NotContains(t, prompt, "INSERT CHARACTER INTO EXISTING IMAGE")
	assert.Contains(t, prompt, "FULL BODY STANDING SHOT")
	assert.Contains(t, prompt, "cropped feet")
}

func TestBuildImagePromptBranding(t *testing.T) {
	prompt := BuildImagePrompt(IntentBranding, "expert at desk", false)

	assert.Contains(t, prompt, "Mid-shot (Waist-up)")
	assert.Contains(t, prompt, "YouTube Expert")
	assert.Contains(t, prompt, "expert at desk")
	assert.Contains(t, prompt, "full body", "mid-shot negative prompt excludes full body")
}

func TestBuildImagePromptLandDefault(t *testing.T) {
	prompt := BuildImagePrompt(IntentLand, "agent at project site", false)

	assert.Contains(t, prompt, "TV News Anchor MID-SHOT")
	assert.Contains(t, prompt, "DO NOT SHOW LEGS")
	assert.Contains(t, prompt, "agent at project site")
}

func TestBuildImagePromptDeterministic(t *testing.T) {
	a := BuildImagePrompt(IntentLand, "same input", false)
	b := BuildImagePrompt(IntentLand, "same input", false)
	assert.Equal(t, a, b)
}

func TestBuildRegenerationPrompt(t *testing.T) {
	prompt := BuildRegenerationPrompt("agent standing in showroom", "make him smile")

	assert.True(t, strings.HasPrefix(prompt, "EDIT REQUEST: make him smile."))
	assert.Contains(t, prompt, "BASE SCENE CONTEXT: agent standing in showroom.")
	assert.Contains(t, prompt, "PRESERVE IDENTITY")
	assert.Contains(t, prompt, "PRESERVE BACKGROUND")
}
