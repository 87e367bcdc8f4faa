package generation

import (
	"context"
	"fmt"
	"log"
	"strings"

	"alquimia/internal/llm"
	"alquimia/internal/persona"
	"alquimia/internal/prompt"
)

// Service composes personas, multi-modal messages, and schema contracts
// into single round trips against the chat transport. It holds no
// per-call state; concurrent use is safe.
//
// Failure policy: a missing credential aborts before any network I/O and
// is the only error propagated to callers. Transport and parse failures
// are logged and degrade to empty results; user-facing messaging is the
// UI layer's concern.
type Service struct {
	client llm.Client
	model  string
}

// NewService wires the orchestration layer to a chat transport. model
// may be empty to use the transport default.
func NewService(client llm.Client, model string) *Service {
	return &Service{client: client, model: model}
}

func (s *Service) opts(temperature float64, schema []byte) llm.CompletionOptions {
	return llm.CompletionOptions{Model: s.model, Temperature: temperature, Schema: schema}
}

// CreativePrompts generates prompt variants for a creative concept.
// Repeating the call with identical inputs to get "more" variants is
// supported and intentionally performs no deduplication or seed
// variation; callers append the results.
func (s *Service) CreativePrompts(ctx context.Context, req prompt.Request) ([]PromptVariant, error) {
	if err := s.client.Ready(); err != nil {
		return nil, err
	}

	p := persona.Select(req.Mode, req.PersonaOptions())
	messages, err := prompt.BuildMessages(req, p)
	if err != nil {
		return nil, err
	}

	content, err := s.client.ChatCompletion(ctx, messages, s.opts(0.7, prompt.VariantsSchema))
	if err != nil {
		log.Printf("generation: creative prompts call failed: %v", err)
		return []PromptVariant{}, nil
	}

	// The model may honor the envelope or answer with a bare array.
	var envelope struct {
		Prompts []PromptVariant `json:"prompts"`
	}
	if err := llm.ExtractJSON(content, &envelope); err == nil && len(envelope.Prompts) > 0 {
		return envelope.Prompts, nil
	}
	var variants []PromptVariant
	if err := llm.ExtractJSON(content, &variants); err == nil && len(variants) > 0 {
		return variants, nil
	}

	log.Printf("generation: creative prompts response unparsable")
	return []PromptVariant{}, nil
}

// StyleDescription analyzes the visual DNA of an image, ignoring any
// embedded text, and returns a prose description.
func (s *Service) StyleDescription(ctx context.Context, image ImageRef) (string, error) {
	if err := s.client.Ready(); err != nil {
		return "", err
	}

	user := llm.ChatMessage{Role: llm.RoleUser}
	user.AppendText(persona.CreativeRules + "\nAnalyze the visual DNA of this image. Focus ONLY on lighting, color palette, camera feel, and artistic medium. DO NOT mention any text or aspect ratio commands.")
	user.AppendImage(image.MIME, image.Data)

	content, err := s.client.ChatCompletion(ctx, []llm.ChatMessage{user}, s.opts(0.7, nil))
	if err != nil {
		log.Printf("generation: style description call failed: %v", err)
		return "", nil
	}
	return strings.TrimSpace(content), nil
}

// EnhanceRealism rewrites a prompt for hyper-realism without introducing
// ratio parameters.
func (s *Service) EnhanceRealism(ctx context.Context, current string) (string, error) {
	if err := s.client.Ready(); err != nil {
		return "", err
	}

	messages := []llm.ChatMessage{
		llm.Text(llm.RoleSystem, "You are a senior prompt engineer. Enhance technical depth. Never add aspect ratio parameters."),
		llm.Text(llm.RoleUser, fmt.Sprintf("Optimize this prompt for hyper-realism. DO NOT add aspect ratio tags. Original: %q.", current)),
	}
	content, err := s.client.ChatCompletion(ctx, messages, s.opts(0.4, nil))
	if err != nil {
		log.Printf("generation: enhance realism call failed: %v", err)
		return "", nil
	}
	return strings.TrimSpace(content), nil
}

const reverseImageBrief = `
                    ROLE: Grandmaster Prompt Engineer & Educator.
                    TASK: Deconstruct the VISUAL DNA of this image for a Portuguese-speaking student.
                    %s

                    LANGUAGE RULES (CRITICAL):
                    - **TECHNICAL PROMPTS & KEYWORDS**: Must be in **ENGLISH** (Standard Stable Diffusion format).
                    - **ANALYSIS, EXPLANATIONS, & RATIONALE**: Must be in **PORTUGUESE (PT-BR)**.

                    ANALYSIS FOCUS:
                    1. Geometry & Layout.
                    2. Optical properties.
                    3. Lighting setup.
                    4. Post-processing effects.

                    RULES: NO aspect ratio commands. NEVER describe text or logos.
                `

// ReverseEngineerImage deconstructs an image into the pedagogical
// breakdown. Returns nil on transport or parse failure.
func (s *Service) ReverseEngineerImage(ctx context.Context, image ImageRef) (*Breakdown, error) {
	if err := s.client.Ready(); err != nil {
		return nil, err
	}

	user := llm.ChatMessage{Role: llm.RoleUser}
	user.AppendText(fmt.Sprintf(reverseImageBrief, persona.CreativeRules))
	user.AppendImage(image.MIME, image.Data)

	content, err := s.client.ChatCompletion(ctx, []llm.ChatMessage{user}, s.opts(0.7, prompt.BreakdownSchema))
	if err != nil {
		log.Printf("generation: reverse engineer call failed: %v", err)
		return nil, nil
	}

	var breakdown Breakdown
	if err := llm.ExtractJSON(content, &breakdown); err != nil {
		log.Printf("generation: reverse engineer response unparsable")
		return nil, nil
	}
	return &breakdown, nil
}

// ReverseEngineerText analyzes a raw prompt's technical tokens using the
// same breakdown shape as the image path.
func (s *Service) ReverseEngineerText(ctx context.Context, textPrompt string) (*Breakdown, error) {
	if err := s.client.Ready(); err != nil {
		return nil, err
	}

	messages := []llm.ChatMessage{
		llm.Text(llm.RoleUser, fmt.Sprintf("Analyze technical tokens: %q. Prohibit aspect ratio tags in output suggestions.", textPrompt)),
	}
	content, err := s.client.ChatCompletion(ctx, messages, s.opts(0.7, prompt.TextBreakdownSchema))
	if err != nil {
		log.Printf("generation: reverse engineer text call failed: %v", err)
		return nil, nil
	}

	var breakdown Breakdown
	if err := llm.ExtractJSON(content, &breakdown); err != nil {
		log.Printf("generation: reverse engineer text response unparsable")
		return nil, nil
	}
	return &breakdown, nil
}

// AdaptStyle synthesizes a single prompt that places the product subjects
// into the reference's composition and lighting.
func (s *Service) AdaptStyle(ctx context.Context, req AdaptRequest) (string, error) {
	if err := s.client.Ready(); err != nil {
		return "", err
	}

	user := llm.ChatMessage{Role: llm.RoleUser}
	user.AppendText(fmt.Sprintf(`
            ROLE: High-End Product Director.
            TASK: Synthesize a prompt that places the PRODUCT Subject into the COMPOSITION/LIGHTING of the Reference.
            %s
            CRITICAL RESTRAINT: REFERENCE IMAGE IS A BLUEPRINT OF LIGHT AND GEOMETRY ONLY.
            FINAL PROMPT: Approx 250 characters, English, high-density keywords.
        `, persona.CreativeRules))

	user.AppendImage(req.Reference.MIME, req.Reference.Data)
	user.AppendText("MATRIX: Light and Layout Reference")

	for idx, product := range req.Products {
		user.AppendImage(product.MIME, product.Data)
		user.AppendText(fmt.Sprintf("SUBJECT: Main Product Source %d", idx+1))
	}

	if req.ColorRef != nil {
		user.AppendImage(req.ColorRef.MIME, req.ColorRef.Data)
		user.AppendText("DNA: Color Palette Source")
	}

	content, err := s.client.ChatCompletion(ctx, []llm.ChatMessage{user}, s.opts(0.7, nil))
	if err != nil {
		log.Printf("generation: adapt style call failed: %v", err)
		return "", nil
	}
	return strings.TrimSpace(content), nil
}

// ExtractPalette pulls the 2-tier hex palette out of an image.
func (s *Service) ExtractPalette(ctx context.Context, image ImageRef) (*Palette, error) {
	if err := s.client.Ready(); err != nil {
		return nil, err
	}

	user := llm.ChatMessage{Role: llm.RoleUser}
	user.AppendText("Extract hex colors from this image. Ignore text.")
	user.AppendImage(image.MIME, image.Data)

	content, err := s.client.ChatCompletion(ctx, []llm.ChatMessage{user}, s.opts(0.7, prompt.PaletteSchema))
	if err != nil {
		log.Printf("generation: palette call failed: %v", err)
		return nil, nil
	}

	var palette Palette
	if err := llm.ExtractJSON(content, &palette); err != nil {
		log.Printf("generation: palette response unparsable")
		return nil, nil
	}
	return &palette, nil
}

// AgentSystemPrompt compiles the agent-builder form into a markdown
// system prompt. Plain text, no schema contract.
func (s *Service) AgentSystemPrompt(ctx context.Context, params AgentParams) (string, error) {
	if err := s.client.Ready(); err != nil {
		return "", err
	}

	instruction := fmt.Sprintf(`Create a professional System Prompt for an AI Agent.
    Role: %s
    Context: %s
    Tasks: %s
    Tools: %s
    Constraints: %s

    Output the raw markdown system prompt only.`,
		params.Role, params.Context, params.Tasks, params.Tools, params.Constraints)

	content, err := s.client.ChatCompletion(ctx, []llm.ChatMessage{llm.Text(llm.RoleUser, instruction)}, s.opts(0.7, nil))
	if err != nil {
		log.Printf("generation: agent prompt call failed: %v", err)
		return "", nil
	}
	return strings.TrimSpace(content), nil
}

// AdCampaign generates the 6-scene storyboard for a concept. Scenes come
// back in model order, unfiltered.
func (s *Service) AdCampaign(ctx context.Context, concept, cinematicStyle string, category persona.Category, ref *ImageRef) (*Campaign, error) {
	if err := s.client.Ready(); err != nil {
		return nil, err
	}
	if cinematicStyle == "" {
		cinematicStyle = "Cinematic High-End"
	}

	director := persona.Director(category, ref != nil)

	user := llm.ChatMessage{Role: llm.RoleUser}
	user.AppendText(fmt.Sprintf(
		"Create a 6-Scene Storyboard for a %q video about: %q in style %q. Describe the 'sensation' and 'copy' (if valid) for each scene.",
		category, concept, cinematicStyle,
	))
	if ref != nil {
		user.AppendImage(ref.MIME, ref.Data)
		user.AppendText("REFERENCE ANCHOR: Use this image to maintain visual consistency across all generated scenes.")
	}

	messages := []llm.ChatMessage{
		llm.Text(llm.RoleSystem, director.System),
		user,
	}

	content, err := s.client.ChatCompletion(ctx, messages, s.opts(0.8, prompt.CampaignSchema))
	if err != nil {
		log.Printf("generation: ad campaign call failed: %v", err)
		return nil, nil
	}

	var campaign Campaign
	if err := llm.ExtractJSON(content, &campaign); err != nil {
		log.Printf("generation: ad campaign response unparsable")
		return nil, nil
	}
	return &campaign, nil
}
