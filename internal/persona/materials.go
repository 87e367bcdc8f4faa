package persona

import "strings"

// Material identifies the physical finish requested for 3D logo work.
// VectorFlat is the non-3D default.
type Material string

const (
	MaterialVectorFlat Material = "VECTOR_FLAT"
	MaterialMetallic   Material = "3D_METALLIC"
	MaterialRubber     Material = "3D_RUBBER"
	MaterialGlass      Material = "3D_GLASS"
	MaterialSilver     Material = "3D_SILVER"
	MaterialBalloon    Material = "3D_BALLOON"
	MaterialGold       Material = "3D_GOLD"
	MaterialNeon       Material = "3D_NEON"
)

// materialPrompts maps each finish to its physical description. The texts
// are part of the product voice and must stay stable.
var materialPrompts = map[Material]string{
	MaterialMetallic: "Material: Brushed Aluminum & Chrome. Finish: Anodized, Metallic Sheen, Industrial Precision. Rendering: Octane Render, Raytracing, 8k.",
	MaterialRubber:   "Material: Soft-Touch Matte Silicone. Finish: Rubberized, Vibrant, Tactile, Smooth curves. Rendering: Blender 3D, Soft Studio Lighting.",
	MaterialGlass:    "Material: Translucent Frosted Glass (Glassmorphism). Finish: Refractive, Subsurface Scattering, Crystal Clear. Rendering: Caustics, Prism Effect.",
	MaterialSilver:   "Material: Polished Sterling Silver. Finish: High-Gloss, Mirror Reflection, Luxury Jewel. Rendering: Studio Lighting, Specular Highlights.",
	MaterialBalloon:  "Material: Inflated Mylar/Latex Balloon. Finish: Glossy, Pillowy, Air-Filled, Tension creases. Rendering: Cinema 4D, Physical Render.",
	MaterialGold:     "Material: 24k Solid Gold. Finish: Brushed Metal, Wealth, Premium. Rendering: Unreal Engine 5, Global Illumination.",
	MaterialNeon:     "Material: Neon Gas Tubes. Finish: Glowing, Cyberpunk, Emissive Light. Rendering: Night setting, Volumetric Fog.",
}

// Prompt returns the physical finish description, empty for flat vector.
func (m Material) Prompt() string {
	return materialPrompts[m]
}

// Is3D reports whether the finish demands a rendered 3D treatment.
func (m Material) Is3D() bool {
	return m != "" && m != MaterialVectorFlat
}

// Aesthetic identifies the studio environment preset for mockup work.
type Aesthetic string

const (
	AestheticMinimalist Aesthetic = "MINIMALIST"
	AestheticLoft       Aesthetic = "LOFT"
	AestheticNature     Aesthetic = "NATURE"
	AestheticFuturistic Aesthetic = "FUTURISTIC"
)

var aestheticPrompts = map[Aesthetic]string{
	AestheticMinimalist: "AESTHETIC: Ultra-Clean Studio Minimalism. Background: Solid Off-White or Light Grey. Lighting: Soft Box, diffused, shadowless. Compositon: Central, abundant negative space. Vibe: Apple/Braun Design.",
	AestheticLoft:       "AESTHETIC: Industrial Loft / Concrete. Background: Raw Concrete texture, Brick wall, Steel surfaces. Lighting: Natural window light (Gobofilter), hard shadows. Vibe: Urban, Raw, Authentic.",
	AestheticNature:     "AESTHETIC: Organic / Biophilic. Background: Natural Stone, Wood grain, Monstera Leaves, Sunlight dappled through trees. Lighting: Warm Golden Hour sunbeams. Vibe: Eco, Sustainable, Fresh.",
	AestheticFuturistic: "AESTHETIC: Cyber / Neon / Tech. Background: Dark Gradient, Grid lines, Glossy Reflections. Lighting: Blue/Purple Rim light, LED accents. Vibe: Tech SaaS, Gamer, Innovation.",
}

// Prompt returns the studio description, defaulting to minimalism.
func (a Aesthetic) Prompt() string {
	if p, ok := aestheticPrompts[a]; ok {
		return p
	}
	return aestheticPrompts[AestheticMinimalist]
}

// iconTraits translates a brand vibe into concrete icon drawing rules.
func iconTraits(vibe string) string {
	lower := strings.ToLower(vibe)
	switch {
	case strings.Contains(lower, "child"), strings.Contains(lower, "playful"), strings.Contains(lower, "cute"):
		return "VISUALS: Thick monoline stroke, Soft rounded corners, 'Squircle' shapes, Pastel flat colors, Kawaii aesthetic."
	case strings.Contains(lower, "luxury"), strings.Contains(lower, "elegant"), strings.Contains(lower, "premium"):
		return "VISUALS: Ultra-thin hairline strokes, Sharp geometric corners, Metallic gradients, Minimalist line art, Sophisticated negative space."
	case strings.Contains(lower, "tech"), strings.Contains(lower, "modern"), strings.Contains(lower, "cyber"):
		return "VISUALS: Neon gradients, Glassmorphism effects, Pixel-perfect grid, Dynamic motion lines, Dark mode optimized."
	case strings.Contains(lower, "eco"), strings.Contains(lower, "organic"), strings.Contains(lower, "nature"):
		return "VISUALS: Hand-drawn textured lines, Imperfect edges, Earthy tones, Watercolor fill effects, Natural motifs, Textured Paper."
	default:
		return "VISUALS: Clean vector lines, grid-based construction, Solid primary colors, legible at small sizes (Favicon ready)."
	}
}

// conceptField pulls a labelled value ("Brand Name: X", "Niche: Y") out of
// the free-text concept block assembled by the UI.
func conceptField(concept, label, fallback string) string {
	marker := label + ": "
	idx := strings.Index(concept, marker)
	if idx < 0 {
		return fallback
	}
	rest := concept[idx+len(marker):]
	if end := strings.IndexByte(rest, '\n'); end >= 0 {
		rest = rest[:end]
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return fallback
	}
	return rest
}
