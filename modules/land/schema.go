package land

import "google.golang.org/genai"

// scenesResponseSchema - Scene 배열 응답 스키마
var scenesResponseSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":           {Type: genai.TypeInteger},
			"title":        {Type: genai.TypeString},
			"script":       {Type: genai.TypeString},
			"visualPrompt": {Type: genai.TypeString},
			"veoPrompt":    {Type: genai.TypeString},
		},
		Required: []string{"id", "title", "script", "visualPrompt", "veoPrompt"},
	},
}
