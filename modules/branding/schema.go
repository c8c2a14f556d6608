package branding

import "google.golang.org/genai"

// brandingMasterSchema - 브랜딩 단일 객체 응답 스키마
var brandingMasterSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"hookHeadline": {
			Type:        genai.TypeString,
			Description: "A catchy, curiosity-inducing headline for the video topic.",
		},
		"hashtags": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "5-10 relevant hashtags.",
		},
		"masterVisualPrompt": {
			Type:        genai.TypeString,
			Description: "The single prompt to generate the master image.",
		},
		"variations": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id":        {Type: genai.TypeInteger},
					"title":     {Type: genai.TypeString},
					"script":    {Type: genai.TypeString},
					"veoPrompt": {Type: genai.TypeString},
				},
				Required: []string{"id", "title", "script", "veoPrompt"},
			},
		},
	},
	Required: []string{"hookHeadline", "hashtags", "masterVisualPrompt", "variations"},
}
