package persona

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectIsDeterministic(t *testing.T) {
	opts := Options{Concept: "Brand Name: Aurora\nNiche: Coffee", Tone: "luxury"}
	for _, mode := range []Mode{ModeImage, ModeLogoBrand, ModeIcon, ModeSeal, ModeElement, ModeMockup} {
		first := Select(mode, opts)
		second := Select(mode, opts)
		assert.Equal(t, first, second, "mode %s", mode)
	}
}

func TestSelectDefaultPersona(t *testing.T) {
	for _, mode := range []Mode{ModeImage, ModeVideo, Mode3DAsset, ModeTexture, ModeUIUX, ModeWebsite} {
		p := Select(mode, Options{})
		assert.Contains(t, p.System, "Dr. Nexus", "mode %s", mode)
	}
}

func TestLogoPersonaBranching(t *testing.T) {
	base := Options{Concept: "Brand Name: Vulcan\nNiche: Forge"}

	sketch := Select(ModeLogoBrand, Options{Concept: base.Concept, HasStructureImage: true})
	scratch := Select(ModeLogoBrand, base)

	t.Run("structure branch uses fusion protocol", func(t *testing.T) {
		assert.Contains(t, sketch.System, "STRUCTURAL FUSION PROTOCOL")
		assert.Contains(t, sketch.System, `Name: "Vulcan"`)
		assert.Contains(t, sketch.System, `Niche: "Forge"`)
	})

	t.Run("branches are disjoint texts", func(t *testing.T) {
		assert.NotEqual(t, sketch.System, scratch.System)
		assert.False(t, strings.Contains(scratch.System, "STRUCTURAL FUSION PROTOCOL"))
		assert.False(t, strings.Contains(sketch.System, "PREMIER BRAND IDENTITY DESIGNER"))
	})

	t.Run("vector default forbids 3d finish", func(t *testing.T) {
		assert.Contains(t, scratch.System, "Vector-Style Logos")
		assert.Contains(t, scratch.System, "Flat Design")
	})

	t.Run("3d material injects its finish", func(t *testing.T) {
		p := Select(ModeLogoBrand, Options{Concept: base.Concept, Material: MaterialGold})
		assert.Contains(t, p.System, "3D Rendered Logos")
		assert.Contains(t, p.System, MaterialGold.Prompt())
	})
}

func TestIconPersonaBranching(t *testing.T) {
	t.Run("style reference branch replicates the set", func(t *testing.T) {
		p := Select(ModeIcon, Options{Concept: "Niche: Fitness", HasStyleImage: true})
		assert.Contains(t, p.System, "EXPAND AN EXISTING ICON SET")
		assert.NotContains(t, p.System, "CONSTRAINT: Use \"IMAGE A\"")
	})

	t.Run("style plus sketch appends the structure constraint", func(t *testing.T) {
		p := Select(ModeIcon, Options{HasStyleImage: true, HasStructureImage: true})
		assert.Contains(t, p.System, "EXPAND AN EXISTING ICON SET")
		assert.Contains(t, p.System, "CONSTRAINT: Use \"IMAGE A\"")
	})

	t.Run("sketch-only branch refines the sketch", func(t *testing.T) {
		p := Select(ModeIcon, Options{HasStructureImage: true})
		assert.Contains(t, p.System, "Take the user's SKETCH")
	})

	t.Run("no reference invents a system with vibe default", func(t *testing.T) {
		p := Select(ModeIcon, Options{Concept: "Niche: Banking"})
		assert.Contains(t, p.System, `"Modern"`)
		assert.Contains(t, p.System, `"Banking"`)
	})
}

func TestIconTraitsDecoding(t *testing.T) {
	cases := []struct {
		vibe string
		want string
	}{
		{"playful and cute", "rounded"},
		{"luxury premium", "hairline"},
		{"modern tech", "glassmorphism"},
		{"eco organic", "hand-drawn"},
		{"anything else", "clean vector lines"},
	}
	for _, tc := range cases {
		t.Run(tc.vibe, func(t *testing.T) {
			assert.Contains(t, strings.ToLower(iconTraits(tc.vibe)), tc.want)
		})
	}
}

func TestMockupPersonaBranching(t *testing.T) {
	t.Run("brand kit wins", func(t *testing.T) {
		p := Select(ModeMockup, Options{BrandKit: true, UIScreen: true, HasStructureImage: true})
		assert.Contains(t, p.System, "BRAND IDENTITY SUITE")
	})

	t.Run("ui screen persona is written in portuguese", func(t *testing.T) {
		p := Select(ModeMockup, Options{UIScreen: true})
		assert.Contains(t, p.System, "SENIOR UI/UX DESIGNER")
		assert.Contains(t, p.System, "PORTUGUÊS")
	})

	t.Run("structure image anchors reality", func(t *testing.T) {
		p := Select(ModeMockup, Options{HasStructureImage: true})
		assert.Contains(t, p.System, "THE REALITY ANCHOR")
	})

	t.Run("default photographer carries the aesthetic", func(t *testing.T) {
		p := Select(ModeMockup, Options{Concept: "Candle", Aesthetic: AestheticNature})
		assert.Contains(t, p.System, "PRODUCT PHOTOGRAPHER")
		assert.Contains(t, p.System, AestheticNature.Prompt())
	})
}

func TestMaterialPrompts(t *testing.T) {
	t.Run("every material has a prompt", func(t *testing.T) {
		for _, m := range []Material{MaterialVectorFlat, MaterialMetallic, MaterialRubber, MaterialGlass, MaterialSilver, MaterialBalloon, MaterialGold, MaterialNeon} {
			assert.NotEmpty(t, m.Prompt(), "material %s", m)
		}
	})

	t.Run("only 3d materials report as 3d", func(t *testing.T) {
		assert.False(t, MaterialVectorFlat.Is3D())
		assert.True(t, MaterialGold.Is3D())
		assert.True(t, MaterialNeon.Is3D())
	})
}

func TestAestheticPromptFallsBackToMinimalist(t *testing.T) {
	assert.Equal(t, Aesthetic("MINIMALIST").Prompt(), Aesthetic("UNKNOWN").Prompt())
}

func TestDirector(t *testing.T) {
	t.Run("commercial category gets the cinematography stack", func(t *testing.T) {
		p := Director(CategoryCommercial, false)
		assert.Contains(t, p.System, "World-Class")
		assert.Contains(t, p.System, cameraVocabulary)
	})

	t.Run("reference toggles the anchor clause", func(t *testing.T) {
		withRef := Director(CategoryFilm, true)
		withoutRef := Director(CategoryFilm, false)
		assert.NotEqual(t, withRef.System, withoutRef.System)
	})

	t.Run("language rules demand english prompts", func(t *testing.T) {
		require.Contains(t, Director(CategoryEducation, false).System, campaignLanguageRules)
	})
}
