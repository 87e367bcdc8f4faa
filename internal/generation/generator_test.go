package generation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alquimia/internal/llm"
	"alquimia/internal/persona"
	"alquimia/internal/prompt"
)

func creativeRequest() prompt.Request {
	return prompt.Request{
		Mode:    persona.ModeImage,
		Concept: "Bioluminescent forest",
		Ratio:   "1:1",
	}
}

func TestCreativePrompts(t *testing.T) {
	t.Run("parses the envelope shape", func(t *testing.T) {
		client := &stubClient{reply: `{"prompts":[{"title":"A","prompt":"B","tags":["x"],"suggestedModel":"m"}]}`}
		svc := NewService(client, "")

		variants, err := svc.CreativePrompts(context.Background(), creativeRequest())
		require.NoError(t, err)
		require.Len(t, variants, 1)
		assert.Equal(t, "A", variants[0].Title)
		assert.Equal(t, "B", variants[0].Prompt)
		assert.Equal(t, []string{"x"}, variants[0].Tags)
		assert.Equal(t, "m", variants[0].SuggestedModel)
	})

	t.Run("accepts a bare array", func(t *testing.T) {
		client := &stubClient{reply: `[{"title":"Solo","prompt":"p","tags":[],"suggestedModel":"m"}]`}
		svc := NewService(client, "")

		variants, err := svc.CreativePrompts(context.Background(), creativeRequest())
		require.NoError(t, err)
		require.Len(t, variants, 1)
		assert.Equal(t, "Solo", variants[0].Title)
	})

	t.Run("recovers fenced output", func(t *testing.T) {
		client := &stubClient{reply: "```json\n{\"prompts\":[{\"title\":\"F\",\"prompt\":\"p\",\"tags\":[],\"suggestedModel\":\"m\"}]}\n```"}
		svc := NewService(client, "")

		variants, err := svc.CreativePrompts(context.Background(), creativeRequest())
		require.NoError(t, err)
		require.Len(t, variants, 1)
		assert.Equal(t, "F", variants[0].Title)
	})

	t.Run("sends schema and default temperature", func(t *testing.T) {
		client := &stubClient{reply: `{"prompts":[]}`}
		svc := NewService(client, "my/model")

		_, err := svc.CreativePrompts(context.Background(), creativeRequest())
		require.NoError(t, err)
		assert.Equal(t, "my/model", client.opts.Model)
		assert.InDelta(t, 0.7, client.opts.Temperature, 1e-9)
		assert.JSONEq(t, string(prompt.VariantsSchema), string(client.opts.Schema))
	})

	t.Run("missing credential aborts before the transport is touched", func(t *testing.T) {
		client := &stubClient{readyErr: llm.ErrAPIKeyMissing}
		svc := NewService(client, "")

		_, err := svc.CreativePrompts(context.Background(), creativeRequest())
		assert.ErrorIs(t, err, llm.ErrAPIKeyMissing)
		assert.Zero(t, client.calls, "ChatCompletion must never be invoked")
	})

	t.Run("transport failure degrades to empty slice", func(t *testing.T) {
		client := &stubClient{replyErr: errTransport}
		svc := NewService(client, "")

		variants, err := svc.CreativePrompts(context.Background(), creativeRequest())
		require.NoError(t, err)
		assert.Empty(t, variants)
	})

	t.Run("prose response degrades to empty slice", func(t *testing.T) {
		client := &stubClient{reply: "I'm sorry, I cannot help with that."}
		svc := NewService(client, "")

		variants, err := svc.CreativePrompts(context.Background(), creativeRequest())
		require.NoError(t, err)
		assert.Empty(t, variants)
	})

	t.Run("repeated calls send identical requests", func(t *testing.T) {
		client := &stubClient{reply: `{"prompts":[]}`}
		svc := NewService(client, "")

		_, err := svc.CreativePrompts(context.Background(), creativeRequest())
		require.NoError(t, err)
		first := client.messages

		_, err = svc.CreativePrompts(context.Background(), creativeRequest())
		require.NoError(t, err)
		assert.Equal(t, first, client.messages)
	})
}

func TestStyleDescription(t *testing.T) {
	t.Run("returns trimmed prose", func(t *testing.T) {
		client := &stubClient{reply: "  Soft volumetric light, pastel haze.  \n"}
		svc := NewService(client, "")

		desc, err := svc.StyleDescription(context.Background(), ImageRef{Data: "YQ==", MIME: "image/png"})
		require.NoError(t, err)
		assert.Equal(t, "Soft volumetric light, pastel haze.", desc)

		require.Len(t, client.messages, 1)
		assert.Empty(t, client.opts.Schema, "style description is free prose")
	})

	t.Run("sends image after the instruction text", func(t *testing.T) {
		client := &stubClient{reply: "ok"}
		svc := NewService(client, "")

		_, err := svc.StyleDescription(context.Background(), ImageRef{Data: "YQ==", MIME: "image/webp"})
		require.NoError(t, err)
		parts := client.messages[0].Parts
		require.Len(t, parts, 2)
		assert.Equal(t, llm.PartText, parts[0].Type)
		assert.Equal(t, llm.PartImage, parts[1].Type)
		assert.Equal(t, "image/webp", parts[1].MIME)
	})
}

func TestEnhanceRealism(t *testing.T) {
	client := &stubClient{reply: "enhanced prompt"}
	svc := NewService(client, "")

	out, err := svc.EnhanceRealism(context.Background(), "a cat")
	require.NoError(t, err)
	assert.Equal(t, "enhanced prompt", out)
	assert.InDelta(t, 0.4, client.opts.Temperature, 1e-9)

	require.Len(t, client.messages, 2)
	assert.Equal(t, llm.RoleSystem, client.messages[0].Role)
	assert.Contains(t, client.messages[1].JoinedText(), `"a cat"`)
	assert.Contains(t, client.messages[1].JoinedText(), "DO NOT add aspect ratio tags")
}

func TestReverseEngineerImage(t *testing.T) {
	t.Run("decodes the breakdown", func(t *testing.T) {
		client := &stubClient{reply: `{
			"description":"desc","detailedPrompt":"dp","artStyle":"as","composition":"c",
			"promptBreakdown":[{"term":"bokeh","explanation":"desfoque"}],
			"promptLayers":[{"layerType":"SUBJECT","content":"cat","explanation":"gato"}],
			"improvedPrompt":"ip","improvementLogic":"il"}`}
		svc := NewService(client, "")

		b, err := svc.ReverseEngineerImage(context.Background(), ImageRef{Data: "YQ==", MIME: "image/png"})
		require.NoError(t, err)
		require.NotNil(t, b)
		assert.Equal(t, "dp", b.DetailedPrompt)
		require.Len(t, b.PromptLayers, 1)
		assert.Equal(t, LayerSubject, b.PromptLayers[0].LayerType)
		assert.JSONEq(t, string(prompt.BreakdownSchema), string(client.opts.Schema))
	})

	t.Run("unparsable response degrades to nil", func(t *testing.T) {
		client := &stubClient{reply: "no json here"}
		svc := NewService(client, "")

		b, err := svc.ReverseEngineerImage(context.Background(), ImageRef{Data: "YQ==", MIME: "image/png"})
		require.NoError(t, err)
		assert.Nil(t, b)
	})

	t.Run("credential failure propagates", func(t *testing.T) {
		client := &stubClient{readyErr: llm.ErrAPIKeyMissing}
		svc := NewService(client, "")

		_, err := svc.ReverseEngineerImage(context.Background(), ImageRef{Data: "YQ==", MIME: "image/png"})
		assert.ErrorIs(t, err, llm.ErrAPIKeyMissing)
		assert.Zero(t, client.calls)
	})
}

func TestAdaptStyle(t *testing.T) {
	client := &stubClient{reply: "fused prompt"}
	svc := NewService(client, "")

	out, err := svc.AdaptStyle(context.Background(), AdaptRequest{
		Reference: ImageRef{Data: "cmVm", MIME: "image/png"},
		Products: []ImageRef{
			{Data: "cDE=", MIME: "image/png"},
			{Data: "cDI=", MIME: "image/jpeg"},
		},
		ColorRef: &ImageRef{Data: "Y29s", MIME: "image/png"},
	})
	require.NoError(t, err)
	assert.Equal(t, "fused prompt", out)

	parts := client.messages[0].Parts
	// brief + (ref, label) + 2x(product, label) + (color, label)
	require.Len(t, parts, 9)
	assert.Contains(t, parts[2].Text, "MATRIX: Light and Layout Reference")
	assert.Contains(t, parts[4].Text, "SUBJECT: Main Product Source 1")
	assert.Contains(t, parts[6].Text, "SUBJECT: Main Product Source 2")
	assert.Contains(t, parts[8].Text, "DNA: Color Palette Source")
}

func TestExtractPalette(t *testing.T) {
	client := &stubClient{reply: `{"palettePrimary":["#101010"],"paletteSecondary":["#fafafa"],"description":"d","usagePrompt":"u"}`}
	svc := NewService(client, "")

	p, err := svc.ExtractPalette(context.Background(), ImageRef{Data: "YQ==", MIME: "image/png"})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []string{"#101010"}, p.Primary)
	assert.Equal(t, []string{"#fafafa"}, p.Secondary)
}

func TestAgentSystemPrompt(t *testing.T) {
	client := &stubClient{reply: "# Agent\nYou are..."}
	svc := NewService(client, "")

	out, err := svc.AgentSystemPrompt(context.Background(), AgentParams{
		Role:        "Support rep",
		Context:     "SaaS product",
		Tasks:       "Answer tickets",
		Tools:       "Knowledge base",
		Constraints: "Stay polite",
	})
	require.NoError(t, err)
	assert.Equal(t, "# Agent\nYou are...", out)

	text := client.messages[0].JoinedText()
	assert.Contains(t, text, "Support rep")
	assert.Contains(t, text, "Stay polite")
	assert.Empty(t, client.opts.Schema)
}

func TestAdCampaign(t *testing.T) {
	sceneJSON := `{"sceneNumber":%d,"type":"LIVE","duration":"3s","description":"d","imagePrompt":"i","videoPrompt":"v"}`
	reply := `{"projectTitle":"T","logline":"L","visualStyle":"V","scenes":[`
	for i := 1; i <= 6; i++ {
		if i > 1 {
			reply += ","
		}
		reply += replaceSceneNumber(sceneJSON, i)
	}
	reply += `]}`

	t.Run("scenes come back in model order", func(t *testing.T) {
		client := &stubClient{reply: reply}
		svc := NewService(client, "")

		c, err := svc.AdCampaign(context.Background(), "new sneaker", "", persona.CategoryCommercial, nil)
		require.NoError(t, err)
		require.NotNil(t, c)
		require.Len(t, c.Scenes, 6)
		for i, scene := range c.Scenes {
			assert.Equal(t, i+1, scene.SceneNumber)
		}
		assert.InDelta(t, 0.8, client.opts.Temperature, 1e-9)
	})

	t.Run("director system message matches category", func(t *testing.T) {
		client := &stubClient{reply: reply}
		svc := NewService(client, "")

		_, err := svc.AdCampaign(context.Background(), "course intro", "", persona.CategoryEducation, nil)
		require.NoError(t, err)
		require.Len(t, client.messages, 2)
		assert.Equal(t, llm.RoleSystem, client.messages[0].Role)
		assert.Contains(t, client.messages[0].JoinedText(), "MOTION GRAPHICS ARCHITECT")
	})

	t.Run("reference image appends the anchor", func(t *testing.T) {
		client := &stubClient{reply: reply}
		svc := NewService(client, "")

		_, err := svc.AdCampaign(context.Background(), "perfume", "Noir", persona.CategoryFilm, &ImageRef{Data: "YQ==", MIME: "image/png"})
		require.NoError(t, err)
		parts := client.messages[1].Parts
		require.Len(t, parts, 3)
		assert.Equal(t, llm.PartImage, parts[1].Type)
		assert.Contains(t, parts[2].Text, "REFERENCE ANCHOR")
	})

	t.Run("transport failure degrades to nil", func(t *testing.T) {
		client := &stubClient{replyErr: errTransport}
		svc := NewService(client, "")

		c, err := svc.AdCampaign(context.Background(), "x", "", persona.CategoryCommercial, nil)
		require.NoError(t, err)
		assert.Nil(t, c)
	})
}

func replaceSceneNumber(tmpl string, n int) string {
	return fmt.Sprintf(tmpl, n)
}
