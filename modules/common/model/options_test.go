package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveOption(t *testing.T) {
	t.Run("known id returns catalog label", func(t *testing.T) {
		got := ResolveOption("vest", "", ClothingOptions, "Professional Attire")
		assert.Equal(t, "Vest chuyên nghiệp (Professional Suit)", got)
	})

	t.Run("custom id uses custom text", func(t *testing.T) {
		got := ResolveOption(CustomOptionID, "  áo dài truyền thống  ", ClothingOptions, "Professional Attire")
		assert.Equal(t, "áo dài truyền thống", got)
	})

	t.Run("custom id with blank text falls back", func(t *testing.T) {
		got := ResolveOption(CustomOptionID, "   ", ClothingOptions, "Professional Attire")
		assert.Equal(t, "Professional Attire", got)
	})

	t.Run("unknown id falls back", func(t *testing.T) {
		got := ResolveOption("does-not-exist", "ignored", TownhouseOutfits, "Smart Casual")
		assert.Equal(t, "Smart Casual", got)
	})

	t.Run("custom text ignored for non-custom id", func(t *testing.T) {
		got := ResolveOption("polo", "ignored", ClothingOptions, "Professional Attire")
		assert.Equal(t, "Áo Polo năng động (Smart Casual Polo)", got)
	})
}

func TestResolveSceneCount(t *testing.T) {
	assert.Equal(t, 5, ResolveSceneCount(5, 0))
	assert.Equal(t, 8, ResolveSceneCount(-1, 8))
	assert.Equal(t, 3, ResolveSceneCount(-1, 0), "custom sentinel without value defaults to 3")
	assert.Equal(t, 3, ResolveSceneCount(-1, -2))
	assert.Equal(t, 3, ResolveSceneCount(0, 0), "zero preset defaults to 3")
}

func TestIsValidAspectRatio(t *testing.T) {
	assert.True(t, IsValidAspectRatio(RatioVertical))
	assert.True(t, IsValidAspectRatio(RatioHorizontal))
	assert.True(t, IsValidAspectRatio(RatioSquare))
	assert.False(t, IsValidAspectRatio("4:3"))
	assert.False(t, IsValidAspectRatio(""))
}

func TestIsValidApp(t *testing.T) {
	assert.True(t, IsValidApp(AppBranding))
	assert.True(t, IsValidApp(AppLand))
	assert.True(t, IsValidApp(AppTownhouse))
	assert.False(t, IsValidApp("canvas"))
}
