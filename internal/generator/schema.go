package generator

import "google.golang.org/genai"

// Response schemas sent with the JSON tasks. Field names are the model-facing
// wire format and match the json tags in results.go.

func visualInspirationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"description":   {Type: genai.TypeString, Description: "Description of the suggested image or video."},
			"color_palette": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "HEX colour codes."},
			"image_prompt":  {Type: genai.TypeString, Description: "Image generation prompt in English."},
		},
		Required: []string{"description", "color_palette", "image_prompt"},
	}
}

func postsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"posts": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"text":               {Type: genai.TypeString, Description: "The full content text."},
						"tov_phrase":         {Type: genai.TypeString, Description: "A short design phrase."},
						"visual_inspiration": visualInspirationSchema(),
					},
					Required: []string{"text", "tov_phrase", "visual_inspiration"},
				},
			},
		},
		Required: []string{"posts"},
	}
}

func campaignSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"campaignPosts": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"day":                {Type: genai.TypeNumber},
						"theme":              {Type: genai.TypeString},
						"text":               {Type: genai.TypeString},
						"tov_phrase":         {Type: genai.TypeString},
						"visual_inspiration": visualInspirationSchema(),
					},
					Required: []string{"day", "theme", "text", "tov_phrase", "visual_inspiration"},
				},
			},
		},
		Required: []string{"campaignPosts"},
	}
}

func stringListSchema(field, itemDescription string) *genai.Schema {
	item := &genai.Schema{Type: genai.TypeString}
	if itemDescription != "" {
		item.Description = itemDescription
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			field: {Type: genai.TypeArray, Items: item},
		},
		Required: []string{field},
	}
}
