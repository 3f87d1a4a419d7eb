package gemini

import "github.com/google/generative-ai-go/genai"

var geocodeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"latitude":         {Type: genai.TypeNumber},
		"longitude":        {Type: genai.TypeNumber},
		"confidence":       {Type: genai.TypeNumber},
		"formattedAddress": {Type: genai.TypeString},
	},
	Required: []string{"latitude", "longitude", "confidence", "formattedAddress"},
}

var entityListSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":     {Type: genai.TypeString},
			"address":  {Type: genai.TypeString},
			"industry": {Type: genai.TypeString},
		},
		Required: []string{"name", "address", "industry"},
	},
}

var stringList = &genai.Schema{
	Type:  genai.TypeArray,
	Items: &genai.Schema{Type: genai.TypeString},
}

var insightSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary":         {Type: genai.TypeString},
		"recommendations": stringList,
		"hotspots":        stringList,
		"riskAreas":       stringList,
	},
	Required: []string{"summary", "recommendations", "hotspots", "riskAreas"},
}
