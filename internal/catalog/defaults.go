package catalog

import "github.com/brandforge/brandforge-golang/internal/models"

// DefaultGuideline is the compiled-in fallback used when no config file is
// provided. Matches configs/brand_guidelines.json.
func DefaultGuideline() *models.Guideline {
	return &models.Guideline{
		Identities: []models.BrandIdentity{
			{Code: "nocturne", Name: "Nocturne Athletics", HasMascot: true},
			{Code: "voltline", Name: "Voltline", HasMascot: true},
			{Code: "monoform", Name: "Monoform Studio", HasMascot: false},
		},
		ApprovedMascots: []string{
			"owl-classic", "owl-neon", "fox-circuit", "wolf-wireframe",
		},
		Archetypes: []models.Archetype{
			{
				Code:      "tee",
				Name:      "Tee",
				BasePrice: 20.0,
				Dimensions: []models.Dimension{
					{Name: "Size", Values: []string{"S", "M", "L", "XL"}},
					{Name: "Color", Values: []string{"Black", "White", "Heather Grey"}},
				},
				WeightGrams: 180,
				MaterialMultipliers: map[string]float64{
					"cotton":      1.0,
					"tri-blend":   1.25,
					"performance": 1.4,
				},
				ApprovedPalette: []string{"Black", "White", "Neon Green", "Electric Blue"},
			},
			{
				Code:      "hoodie",
				Name:      "Hoodie",
				BasePrice: 38.0,
				Dimensions: []models.Dimension{
					{Name: "Size", Values: []string{"S", "M", "L", "XL", "2XL"}},
					{Name: "Color", Values: []string{"Black", "Charcoal", "Navy"}},
				},
				WeightGrams: 560,
				MaterialMultipliers: map[string]float64{
					"fleece":       1.0,
					"heavy-fleece": 1.2,
				},
				ApprovedPalette: []string{"Black", "Charcoal", "Neon Green"},
			},
			{
				Code:      "mug",
				Name:      "Mug",
				BasePrice: 9.5,
				Dimensions: []models.Dimension{
					{Name: "Size", Values: []string{"11oz", "15oz"}},
				},
				WeightGrams: 340,
			},
			{
				Code:        "sticker",
				Name:        "Sticker",
				BasePrice:   2.5,
				WeightGrams: 5,
			},
		},
		Rules: []models.RuleDescription{
			{ID: "required-title", Label: "Product title present"},
			{ID: "required-variants", Label: "At least one variant"},
			{ID: "required-price", Label: "All variants priced"},
			{ID: "approved-mascot", Label: "Mascot from approved set"},
			{ID: "approved-palette", Label: "Colors within archetype palette"},
			{ID: "identity-mascot-coherence", Label: "Mascot allowed for identity"},
			{ID: "seo-complete", Label: "SEO title and description"},
			{ID: "images-present", Label: "Product imagery attached"},
			{ID: "metafields-present", Label: "Catalog metafields filled"},
			{ID: "collection-membership", Label: "Assigned to a collection"},
		},
	}
}
