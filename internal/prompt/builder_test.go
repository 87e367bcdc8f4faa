package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alquimia/internal/llm"
	"alquimia/internal/persona"
)

func baseRequest() Request {
	return Request{
		Mode:    persona.ModeImage,
		Concept: "A floating city at dusk",
		Ratio:   "16:9",
	}
}

func TestBuildMessagesShape(t *testing.T) {
	p := persona.Select(persona.ModeImage, persona.Options{})

	t.Run("one system and one user message", func(t *testing.T) {
		messages, err := BuildMessages(baseRequest(), p)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, llm.RoleSystem, messages[0].Role)
		assert.Equal(t, p.System, messages[0].JoinedText())
		assert.Equal(t, llm.RoleUser, messages[1].Role)
	})

	t.Run("context text leads the user message", func(t *testing.T) {
		messages, err := BuildMessages(baseRequest(), p)
		require.NoError(t, err)
		first := messages[1].Parts[0]
		assert.Equal(t, llm.PartText, first.Type)
		assert.Contains(t, first.Text, `CONCEPT: "A floating city at dusk"`)
		assert.Contains(t, first.Text, "CRITICAL RULES")
	})
}

func TestBuildMessagesImagePairing(t *testing.T) {
	p := persona.Select(persona.ModeImage, persona.Options{})
	req := baseRequest()
	req.Attachments = []Attachment{
		{Data: "cGFs", MIME: "image/png", Role: RolePalette},
		{Data: "c3Ry", MIME: "image/png", Role: RoleStructure},
		{Data: "c3R5", MIME: "image/jpeg", Role: RoleStyle},
	}

	messages, err := BuildMessages(req, p)
	require.NoError(t, err)
	parts := messages[1].Parts

	// context text + 3 (image, instruction) pairs
	require.Len(t, parts, 7)

	t.Run("every image is followed by its role instruction", func(t *testing.T) {
		for i := 1; i < len(parts); i += 2 {
			assert.Equal(t, llm.PartImage, parts[i].Type, "part %d", i)
			require.Equal(t, llm.PartText, parts[i+1].Type, "part %d", i+1)
			assert.NotEmpty(t, parts[i+1].Text)
		}
	})

	t.Run("attachments are reordered structure, style, palette", func(t *testing.T) {
		assert.Equal(t, "c3Ry", parts[1].Data)
		assert.Contains(t, parts[2].Text, "STRUCTURE")
		assert.Equal(t, "c3R5", parts[3].Data)
		assert.Contains(t, parts[4].Text, "VISUAL REFERENCE")
		assert.Equal(t, "cGFs", parts[5].Data)
		assert.Contains(t, parts[6].Text, "COLOR REFERENCE")
	})
}

func TestBuildMessagesRoleInstructionsPerMode(t *testing.T) {
	cases := []struct {
		mode persona.Mode
		want string
	}{
		{persona.ModeMockup, "SCENE_BASE"},
		{persona.ModeIcon, "SYMBOL_REF"},
		{persona.ModeElement, "MOTIF_BASE"},
		{persona.ModeImage, "GEOMETRIC SKELETON"},
	}
	for _, tc := range cases {
		t.Run(string(tc.mode), func(t *testing.T) {
			req := baseRequest()
			req.Mode = tc.mode
			req.Attachments = []Attachment{{Data: "c3Ry", MIME: "image/png", Role: RoleStructure}}
			messages, err := BuildMessages(req, persona.Select(tc.mode, persona.Options{}))
			require.NoError(t, err)
			parts := messages[1].Parts
			assert.Contains(t, parts[2].Text, tc.want)
		})
	}

	t.Run("logo style reference names image b", func(t *testing.T) {
		req := baseRequest()
		req.Mode = persona.ModeLogoBrand
		req.Attachments = []Attachment{{Data: "c3R5", MIME: "image/png", Role: RoleStyle}}
		messages, err := BuildMessages(req, persona.Select(req.Mode, persona.Options{}))
		require.NoError(t, err)
		assert.Contains(t, messages[1].Parts[2].Text, "IMAGE B [STYLE]")
	})
}

func TestBuildMessagesValidation(t *testing.T) {
	p := persona.Select(persona.ModeImage, persona.Options{})

	t.Run("duplicate role is rejected", func(t *testing.T) {
		req := baseRequest()
		req.Attachments = []Attachment{
			{Data: "YQ==", MIME: "image/png", Role: RoleStyle},
			{Data: "Yg==", MIME: "image/png", Role: RoleStyle},
		}
		_, err := BuildMessages(req, p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		req := baseRequest()
		req.Attachments = []Attachment{{Data: "YQ==", MIME: "image/png", Role: Role("vibe")}}
		_, err := BuildMessages(req, p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown")
	})
}

func TestUserContextDeterminism(t *testing.T) {
	req := baseRequest()
	req.Details = []string{"BRAND_KIT", "PHONE"}
	req.AnalyzedStyle = "Soft pastel film grain"
	assert.Equal(t, UserContext(req), UserContext(req))
}

func TestUserContextContent(t *testing.T) {
	t.Run("camera defaults to eye level", func(t *testing.T) {
		assert.Contains(t, UserContext(baseRequest()), `CAMERA: "Eye Level"`)
	})

	t.Run("analyzed style switches the dna instruction", func(t *testing.T) {
		req := baseRequest()
		req.AnalyzedStyle = "Bauhaus grid"
		withStyle := UserContext(req)
		assert.Contains(t, withStyle, "Adopt the following extracted style strictly")
		assert.Contains(t, withStyle, "Bauhaus grid")

		without := UserContext(baseRequest())
		assert.Contains(t, without, "No reference provided")
	})

	t.Run("generic style preference is suppressed", func(t *testing.T) {
		req := baseRequest()
		req.Style = "General High Quality"
		assert.NotContains(t, UserContext(req), "USER_STYLE_PREFERENCE")

		req.Style = "Cyberpunk"
		assert.Contains(t, UserContext(req), `USER_STYLE_PREFERENCE: "Cyberpunk"`)
	})

	t.Run("video kinetics defaults", func(t *testing.T) {
		req := baseRequest()
		req.Mode = persona.ModeVideo
		out := UserContext(req)
		assert.Contains(t, out, "Real-time")
		assert.Contains(t, out, "24fps")

		req.Video = &VideoSettings{FPS: "60fps", Pacing: "Slow-motion"}
		out = UserContext(req)
		assert.Contains(t, out, "Slow-motion")
		assert.Contains(t, out, "60fps")
	})

	t.Run("non-video modes carry no kinetics", func(t *testing.T) {
		assert.NotContains(t, UserContext(baseRequest()), "VIDEO KINETICS")
	})
}

func TestPersonaOptionsDerivation(t *testing.T) {
	req := baseRequest()
	req.Details = []string{"BRAND_KIT", "PHONE"}
	req.Attachments = []Attachment{{Data: "YQ==", MIME: "image/png", Role: RoleStructure}}

	opts := req.PersonaOptions()
	assert.True(t, opts.BrandKit)
	assert.True(t, opts.UIScreen)
	assert.True(t, opts.HasStructureImage)
	assert.False(t, opts.HasStyleImage)
	assert.Equal(t, req.Concept, opts.Concept)
}
