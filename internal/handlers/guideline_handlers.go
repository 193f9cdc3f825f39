package handlers

import (
	"errors"
	"net/http"

	"github.com/brandforge/brandforge-golang/internal/models"
	"github.com/brandforge/brandforge-golang/internal/variant"
	"github.com/gin-gonic/gin"
)

// GetGuideline returns the full read-only brand guideline.
func (h *Handlers) GetGuideline(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"guideline": h.Catalog.Guideline()})
}

// GetArchetypes lists the selectable product archetypes.
func (h *Handlers) GetArchetypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"archetypes": h.Catalog.Guideline().Archetypes})
}

// GetArchetype returns one archetype by code.
func (h *Handlers) GetArchetype(c *gin.Context) {
	arch, ok := h.Catalog.ArchetypeByCode(c.Param("code"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Archetype not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"archetype": arch})
}

// --- Variant preview ---

// PreviewVariantsInput lets the options step show the matrix before it is
// committed to the draft. The advanced flow's UI clamps margin to [20, 70];
// the clamp lives here, not in the generator.
type PreviewVariantsInput struct {
	Flow          string                 `json:"flow" binding:"omitempty,oneof=simple advanced"`
	ArchetypeCode string                 `json:"archetypeCode" binding:"required"`
	Selection     models.OptionSelection `json:"selection"`
	Material      string                 `json:"material"`
	BasePrice     float64                `json:"basePrice" binding:"omitempty,gt=0"`
	MarginPct     float64                `json:"marginPct" binding:"gte=0,lt=100"`
}

// PreviewVariants expands a selection into variants without touching any
// draft.
func (h *Handlers) PreviewVariants(c *gin.Context) {
	var input PreviewVariantsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	arch, ok := h.Catalog.ArchetypeByCode(input.ArchetypeCode)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Archetype not found"})
		return
	}

	margin := input.MarginPct
	if input.Flow == models.FlowAdvanced {
		if margin < 20 {
			margin = 20
		}
		if margin > 70 {
			margin = 70
		}
	}

	basePrice := input.BasePrice
	if basePrice == 0 {
		basePrice = arch.BasePrice
	}

	variants, err := variant.Generate(variant.Request{
		ArchetypeCode: arch.Code,
		Dimensions:    arch.Dimensions,
		Selection:     input.Selection,
		Pricing: models.PricingInput{
			BasePrice:          basePrice,
			MaterialMultiplier: h.Catalog.MaterialMultiplier(arch.Code, input.Material),
			MarginPct:          margin,
		},
		SKU:         variant.PolicyForFlow(input.Flow),
		WeightGrams: arch.WeightGrams,
		Seed:        "PREVIEW",
	})
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, variant.ErrValueNotAllowed) || errors.Is(err, variant.ErrUnknownDimension) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"variants": variants, "count": len(variants)})
}
