package prompt

import (
	"fmt"
	"strings"

	"alquimia/internal/llm"
	"alquimia/internal/persona"
)

// attachOrder fixes how reference images stack in the user message:
// structure first, then style, then palette. Order conveys priority.
var attachOrder = []Role{RoleStructure, RoleStyle, RolePalette}

// UserContext assembles the primary text block describing the request.
// Deterministic: identical requests yield identical text.
func UserContext(r Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n      TASK: Generate 3 high-density, \"Sales-Ready\" AI prompts.\n")
	fmt.Fprintf(&b, "      TYPE: %s\n", r.Mode)
	fmt.Fprintf(&b, "      CONCEPT: %q\n", r.Concept)
	fmt.Fprintf(&b, "      COMPOSITION/RATIO_GUIDE: %q (Use this to architect the layout, but DO NOT output the ratio string)\n", r.Ratio)
	camera := r.CameraFraming
	if camera == "" {
		camera = "Eye Level"
	}
	fmt.Fprintf(&b, "      CAMERA: %q\n    ", camera)

	if len(r.Details) > 0 {
		fmt.Fprintf(&b, "\nDETAILS: %q", strings.Join(r.Details, ", "))
	}

	if r.AnalyzedStyle != "" {
		fmt.Fprintf(&b, "\nVISUAL_DNA_INSTRUCTION: Adopt the following extracted style strictly: %q", r.AnalyzedStyle)
	} else {
		b.WriteString("\nVISUAL_DNA_INSTRUCTION: No reference provided. You must act as a Creative Director and invent a top-tier, trending aesthetic that serves the CONCEPT perfectly.")
	}

	if r.Style != "" && r.Style != "General High Quality" {
		fmt.Fprintf(&b, "\nUSER_STYLE_PREFERENCE: %q", r.Style)
	}

	b.WriteString("\n")
	b.WriteString(persona.CreativeRules)

	if r.Mode == persona.ModeVideo {
		pacing := "Real-time"
		fps := "24fps"
		if r.Video != nil {
			if r.Video.Pacing != "" {
				pacing = r.Video.Pacing
			}
			if r.Video.FPS != "" {
				fps = r.Video.FPS
			}
		}
		fmt.Fprintf(&b, "\nVIDEO KINETICS: Focus on movement (%s) and FPS (%s).", pacing, fps)
	}

	return b.String()
}

// roleInstruction returns the text segment that must immediately follow
// an image segment, telling the model what the image is for.
func roleInstruction(role Role, mode persona.Mode) string {
	switch role {
	case RoleStructure:
		switch mode {
		case persona.ModeMockup:
			return "IMAGE A [SCENE_BASE]: This is the PHOTO CANVAS. Do not change the object. You are mapping the texture onto THIS specific item."
		case persona.ModeIcon:
			return "IMAGE A [SYMBOL_REF]: This is the HAND-DRAWN SYMBOL. Refine its geometry into a professional vector icon."
		case persona.ModeElement:
			return "IMAGE A [MOTIF_BASE]: Use this shape/texture as the repeating core of the pattern."
		default:
			return "IMAGE A [STRUCTURE]: This is the GEOMETRIC SKELETON. Respect its shape and composition."
		}
	case RoleStyle:
		if mode == persona.ModeLogoBrand {
			return "IMAGE B [STYLE]: This is the AESTHETIC SKIN. Apply its lighting, texture, and mood to Image A."
		}
		return "VISUAL REFERENCE: Use the lighting, composition, and atmosphere from this image. IGNORE TEXT/LOGOS."
	case RolePalette:
		return "COLOR REFERENCE: Extract and use the EXACT color palette from this image."
	}
	return ""
}

// BuildMessages produces the final message list: exactly one system
// message carrying the persona and one user message whose parts are the
// context text followed by each attached image immediately paired with
// its role instruction, in structure/style/palette order. Each role may
// appear at most once.
func BuildMessages(r Request, p persona.Persona) ([]llm.ChatMessage, error) {
	seen := map[Role]bool{}
	for _, att := range r.Attachments {
		switch att.Role {
		case RoleStructure, RoleStyle, RolePalette:
		default:
			return nil, fmt.Errorf("prompt: unknown attachment role %q", att.Role)
		}
		if seen[att.Role] {
			return nil, fmt.Errorf("prompt: duplicate attachment role %q", att.Role)
		}
		seen[att.Role] = true
	}

	user := llm.ChatMessage{Role: llm.RoleUser}
	user.AppendText(UserContext(r))

	for _, role := range attachOrder {
		att := r.Attachment(role)
		if att == nil {
			continue
		}
		user.AppendImage(att.MIME, att.Data)
		user.AppendText(roleInstruction(role, r.Mode))
	}

	return []llm.ChatMessage{
		llm.Text(llm.RoleSystem, p.System),
		user,
	}, nil
}
