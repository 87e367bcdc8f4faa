package prompt

import (
	"alquimia/internal/persona"
)

// Role declares what an attached image is for. The role decides both the
// instruction paired with the image and its position in the user message;
// relying on list position alone is not enough signal for the model.
type Role string

const (
	// RoleStructure marks the geometric skeleton to refine, not copy.
	RoleStructure Role = "structure"
	// RoleStyle marks the lighting/color/mood donor.
	RoleStyle Role = "style"
	// RolePalette marks the color source.
	RolePalette Role = "palette"
)

// Attachment is one reference image: opaque base64 payload plus its
// declared media type and role.
type Attachment struct {
	Data string
	MIME string
	Role Role
}

// VideoSettings are the VIDEO-mode specific options.
type VideoSettings struct {
	FPS    string
	Pacing string
}

// Request describes one creative-prompt generation call. The caller
// guarantees at least one of Concept or an attachment is present; the
// core does not re-validate that UI-level precondition.
type Request struct {
	Mode          persona.Mode
	Concept       string
	Style         string
	Tone          string
	Ratio         string
	CameraFraming string
	Details       []string
	AnalyzedStyle string

	// Mode-specific options. Only the fields applicable to Mode are
	// consulted; the rest are ignored.
	Video           *VideoSettings
	LogoMaterial    persona.Material
	MockupAesthetic persona.Aesthetic

	Attachments []Attachment
}

// Attachment returns the first attachment carrying the role, or nil.
func (r Request) Attachment(role Role) *Attachment {
	for i := range r.Attachments {
		if r.Attachments[i].Role == role {
			return &r.Attachments[i]
		}
	}
	return nil
}

// HasAttachment reports whether any attachment carries the role.
func (r Request) HasAttachment(role Role) bool {
	return r.Attachment(role) != nil
}

func (r Request) hasDetail(detail string) bool {
	for _, d := range r.Details {
		if d == detail {
			return true
		}
	}
	return false
}

// PersonaOptions derives the persona-selection inputs from the request.
func (r Request) PersonaOptions() persona.Options {
	return persona.Options{
		Concept:           r.Concept,
		Tone:              r.Tone,
		AnalyzedStyle:     r.AnalyzedStyle,
		HasStructureImage: r.HasAttachment(RoleStructure),
		HasStyleImage:     r.HasAttachment(RoleStyle),
		Material:          r.LogoMaterial,
		Aesthetic:         r.MockupAesthetic,
		BrandKit:          r.hasDetail("BRAND_KIT"),
		UIScreen:          r.hasDetail("PHONE") || r.hasDetail("LAPTOP"),
	}
}
