package generation

// PromptVariant is one generated prompt candidate.
type PromptVariant struct {
	Title          string   `json:"title"`
	Prompt         string   `json:"prompt"`
	NegativePrompt string   `json:"negativePrompt,omitempty"`
	Tags           []string `json:"tags"`
	SuggestedModel string   `json:"suggestedModel"`
}

// TermNote explains a single prompt keyword.
type TermNote struct {
	Term        string `json:"term"`
	Explanation string `json:"explanation"`
}

// Layer types for the prompt anatomy breakdown.
const (
	LayerSubject        = "SUBJECT"
	LayerMedium         = "MEDIUM"
	LayerLightingCamera = "LIGHTING_CAMERA"
	LayerStyleVibe      = "STYLE_VIBE"
)

// Layer is one slice of the 4-layer prompt anatomy.
type Layer struct {
	LayerType   string `json:"layerType"`
	Content     string `json:"content"`
	Explanation string `json:"explanation"`
}

// Breakdown is the pedagogical deconstruction of an image or prompt.
type Breakdown struct {
	Description      string     `json:"description"`
	DetailedPrompt   string     `json:"detailedPrompt"`
	ArtStyle         string     `json:"artStyle"`
	Composition      string     `json:"composition"`
	PromptBreakdown  []TermNote `json:"promptBreakdown"`
	PromptLayers     []Layer    `json:"promptLayers"`
	ImprovedPrompt   string     `json:"improvedPrompt"`
	ImprovementLogic string     `json:"improvementLogic"`
}

// Palette is the 2-tier color extraction result.
type Palette struct {
	Primary     []string `json:"palettePrimary"`
	Secondary   []string `json:"paletteSecondary"`
	Description string   `json:"description"`
	UsagePrompt string   `json:"usagePrompt"`
}

// Scene is one storyboard entry of an ad campaign.
type Scene struct {
	SceneNumber int    `json:"sceneNumber"`
	Type        string `json:"type"`
	Duration    string `json:"duration"`
	ShotType    string `json:"shotType"`
	CameraGear  string `json:"cameraGear"`
	Lighting    string `json:"lighting"`
	Transition  string `json:"transition"`
	AudioCues   string `json:"audioCues"`
	Description string `json:"description"`
	ImagePrompt string `json:"imagePrompt"`
	VideoPrompt string `json:"videoPrompt"`
}

// Campaign is a full 6-scene storyboard.
type Campaign struct {
	ProjectTitle string  `json:"projectTitle"`
	Logline      string  `json:"logline"`
	VisualStyle  string  `json:"visualStyle"`
	Scenes       []Scene `json:"scenes"`
}

// ImageRef is an inline image outside the role-tagged request flow.
type ImageRef struct {
	Data string
	MIME string
}

// AgentParams is the multi-field form compiled into an agent system prompt.
type AgentParams struct {
	Role        string `json:"role"`
	Context     string `json:"context"`
	Tasks       string `json:"tasks"`
	Tools       string `json:"tools"`
	Constraints string `json:"constraints"`
}

// AdaptRequest places product subjects into a reference's light/geometry.
type AdaptRequest struct {
	Reference ImageRef
	Products  []ImageRef
	// ColorRef optionally pins the palette to a separate image.
	ColorRef *ImageRef
}
