package prompt

import "encoding/json"

// Schema contracts sent alongside structured-output requests. They are
// advisory to the model: the transport turns them into a strict prompt
// instruction and the sanitizer is the actual guarantor of shape.

// VariantsSchema constrains the creative-prompt generation output.
var VariantsSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "prompts": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "title": {"type": "string"},
          "prompt": {"type": "string"},
          "negativePrompt": {"type": "string"},
          "tags": {"type": "array", "items": {"type": "string"}},
          "suggestedModel": {"type": "string"}
        },
        "required": ["title", "prompt", "tags", "suggestedModel"]
      }
    }
  },
  "required": ["prompts"]
}`)

// BreakdownSchema constrains the image reverse-engineering output: the
// pedagogical 4-layer anatomy plus the improved prompt and its rationale.
var BreakdownSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "description": {"type": "string", "description": "Detailed visual DNA description in Portuguese (PT-BR). NO TEXT references."},
    "detailedPrompt": {"type": "string", "description": "The technical prompt in English focus on style."},
    "artStyle": {"type": "string", "description": "Art style analysis in Portuguese (PT-BR)."},
    "composition": {"type": "string", "description": "Composition and lighting geometry analysis in Portuguese (PT-BR)."},
    "promptBreakdown": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "term": {"type": "string", "description": "The specific keyword used in the English prompt."},
          "explanation": {"type": "string", "description": "Educational explanation of what this term does, in Portuguese (PT-BR)."}
        },
        "required": ["term", "explanation"]
      }
    },
    "promptLayers": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "layerType": {"type": "string", "enum": ["SUBJECT", "MEDIUM", "LIGHTING_CAMERA", "STYLE_VIBE"]},
          "content": {"type": "string", "description": "The segment of the prompt in English."},
          "explanation": {"type": "string", "description": "Analysis of this layer's contribution in Portuguese (PT-BR)."}
        },
        "required": ["layerType", "content", "explanation"]
      }
    },
    "improvedPrompt": {"type": "string", "description": "An optimized version of the prompt in English."},
    "improvementLogic": {"type": "string", "description": "Explanation of why this version is better, in Portuguese (PT-BR)."}
  },
  "required": ["description", "detailedPrompt", "artStyle", "composition", "promptBreakdown", "promptLayers", "improvedPrompt", "improvementLogic"]
}`)

// TextBreakdownSchema is the relaxed variant used when reverse-engineering
// a raw text prompt instead of an image.
var TextBreakdownSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "description": {"type": "string"},
    "detailedPrompt": {"type": "string"},
    "artStyle": {"type": "string"},
    "composition": {"type": "string"},
    "promptBreakdown": {"type": "array", "items": {"type": "object", "properties": {"term": {"type": "string"}, "explanation": {"type": "string"}}}},
    "promptLayers": {"type": "array", "items": {"type": "object", "properties": {"layerType": {"type": "string"}, "content": {"type": "string"}, "explanation": {"type": "string"}}}},
    "improvedPrompt": {"type": "string"},
    "improvementLogic": {"type": "string"}
  }
}`)

// PaletteSchema constrains the 2-tier color extraction output.
var PaletteSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "palettePrimary": {"type": "array", "items": {"type": "string"}},
    "paletteSecondary": {"type": "array", "items": {"type": "string"}},
    "description": {"type": "string"},
    "usagePrompt": {"type": "string"}
  },
  "required": ["palettePrimary", "paletteSecondary", "description", "usagePrompt"]
}`)

// CampaignSchema constrains the 6-scene storyboard output.
var CampaignSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "projectTitle": {"type": "string"},
    "logline": {"type": "string"},
    "visualStyle": {"type": "string"},
    "scenes": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "sceneNumber": {"type": "integer"},
          "type": {"type": "string"},
          "duration": {"type": "string"},
          "shotType": {"type": "string"},
          "cameraGear": {"type": "string"},
          "lighting": {"type": "string"},
          "transition": {"type": "string"},
          "audioCues": {"type": "string"},
          "description": {"type": "string"},
          "imagePrompt": {"type": "string"},
          "videoPrompt": {"type": "string"}
        },
        "required": ["sceneNumber", "type", "description", "imagePrompt", "videoPrompt"]
      }
    }
  },
  "required": ["projectTitle", "logline", "visualStyle", "scenes"]
}`)
