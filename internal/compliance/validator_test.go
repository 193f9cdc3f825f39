package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandforge/brandforge-golang/internal/catalog"
	"github.com/brandforge/brandforge-golang/internal/models"
)

func testValidator(t *testing.T) *Validator {
	t.Helper()
	cat, err := catalog.New(catalog.DefaultGuideline())
	require.NoError(t, err)
	return &Validator{Catalog: cat}
}

// completeDraft is a tee draft that passes every rule.
func completeDraft() *models.Draft {
	return &models.Draft{
		ID:             "d-1",
		OwnerID:        1,
		Flow:           models.FlowSimple,
		Status:         models.DraftStatusDraft,
		ArchetypeCode:  "tee",
		IdentityCode:   "nocturne",
		MascotID:       "owl-classic",
		Title:          "Nocturne Owl Tee",
		Description:    "A tee.",
		SEOTitle:       "Nocturne Owl Tee",
		SEODescription: "Glow in the dark owl tee.",
		Images:         []string{"https://cdn.example.com/owl.png"},
		StrokeColor:    "Neon Green",
		FabricColor:    "Black",
		Variants: []models.Variant{
			{Title: "S / Black", SKU: "BF-TEE-S-BLACK-AAAAAA", Price: 33.33, Cost: 20},
		},
		CollectionIDs: []int64{7},
		Metafields:    map[string]string{"fit": "unisex"},
	}
}

func itemByID(t *testing.T, items []models.ValidationItem, id string) models.ValidationItem {
	t.Helper()
	for _, it := range items {
		if it.ID == id {
			return it
		}
	}
	t.Fatalf("checklist has no item %q", id)
	return models.ValidationItem{}
}

func TestValidateChecklistIsTotal(t *testing.T) {
	v := testValidator(t)
	editor := models.Actor{UserID: 2}

	// Even an empty draft yields the full checklist in declaration order.
	empty := &models.Draft{}
	items := v.Validate(empty, editor)
	require.Len(t, items, RuleCount)

	wantOrder := []string{
		RuleRequiredTitle, RuleRequiredVariants, RuleRequiredPrice,
		RuleApprovedMascot, RuleApprovedPalette, RuleIdentityMascot,
		RuleSEOComplete, RuleImagesPresent, RuleMetafieldsPresent,
		RuleCollectionMember,
	}
	for i, id := range wantOrder {
		assert.Equal(t, id, items[i].ID)
	}

	// A fully filled draft yields the same length, not a shorter one.
	full := v.Validate(completeDraft(), editor)
	require.Len(t, full, RuleCount)
	assert.True(t, AllPassed(full))
}

func TestValidateNoShortCircuit(t *testing.T) {
	v := testValidator(t)
	d := completeDraft()
	d.Title = ""
	d.Variants = nil

	items := v.Validate(d, models.Actor{UserID: 2})
	require.Len(t, items, RuleCount)

	assert.Equal(t, models.ValidationFail, itemByID(t, items, RuleRequiredTitle).Status)
	assert.Equal(t, models.ValidationFail, itemByID(t, items, RuleRequiredVariants).Status)
	// Later rules still evaluated.
	assert.Equal(t, models.ValidationPass, itemByID(t, items, RuleApprovedMascot).Status)
	assert.Equal(t, models.ValidationPass, itemByID(t, items, RuleSEOComplete).Status)
}

func TestValidateRequiredPrice(t *testing.T) {
	v := testValidator(t)
	d := completeDraft()
	d.Variants = append(d.Variants, models.Variant{Title: "M / Black", SKU: "BF-TEE-M-BLACK-AAAAAA"})

	items := v.Validate(d, models.Actor{UserID: 2})
	it := itemByID(t, items, RuleRequiredPrice)
	assert.Equal(t, models.ValidationFail, it.Status)
	assert.NotEmpty(t, it.Message)
}

func TestValidateMascotRule(t *testing.T) {
	v := testValidator(t)
	editor := models.Actor{UserID: 2}
	owner := models.Actor{UserID: 1, IsOwner: true}

	t.Run("no mascot is not applicable", func(t *testing.T) {
		d := completeDraft()
		d.MascotID = ""
		it := itemByID(t, v.Validate(d, editor), RuleApprovedMascot)
		assert.Equal(t, models.ValidationNotApplicable, it.Status)
	})

	t.Run("unapproved mascot fails for editors", func(t *testing.T) {
		d := completeDraft()
		d.MascotID = "dragon-sketch"
		it := itemByID(t, v.Validate(d, editor), RuleApprovedMascot)
		assert.Equal(t, models.ValidationFail, it.Status)
	})

	t.Run("owner override needs a custom design", func(t *testing.T) {
		d := completeDraft()
		d.MascotID = "dragon-sketch"

		// Owner without the custom design flag still fails.
		it := itemByID(t, v.Validate(d, owner), RuleApprovedMascot)
		assert.Equal(t, models.ValidationFail, it.Status)

		d.CustomDesign = true
		it = itemByID(t, v.Validate(d, owner), RuleApprovedMascot)
		assert.Equal(t, models.ValidationWarn, it.Status)

		// The same draft still fails for a non-owner.
		it = itemByID(t, v.Validate(d, editor), RuleApprovedMascot)
		assert.Equal(t, models.ValidationFail, it.Status)
	})
}

func TestValidatePaletteRule(t *testing.T) {
	v := testValidator(t)
	editor := models.Actor{UserID: 2}

	t.Run("off-palette color fails", func(t *testing.T) {
		d := completeDraft()
		d.StrokeColor = "Hot Pink"
		it := itemByID(t, v.Validate(d, editor), RuleApprovedPalette)
		assert.Equal(t, models.ValidationFail, it.Status)
		assert.Contains(t, it.Message, "Hot Pink")
	})

	t.Run("no palette means not applicable", func(t *testing.T) {
		d := completeDraft()
		d.ArchetypeCode = "sticker"
		it := itemByID(t, v.Validate(d, editor), RuleApprovedPalette)
		assert.Equal(t, models.ValidationNotApplicable, it.Status)
	})

	t.Run("no colors chosen means not applicable", func(t *testing.T) {
		d := completeDraft()
		d.StrokeColor = ""
		d.FabricColor = ""
		it := itemByID(t, v.Validate(d, editor), RuleApprovedPalette)
		assert.Equal(t, models.ValidationNotApplicable, it.Status)
	})

	t.Run("owner custom design downgrades to warn", func(t *testing.T) {
		d := completeDraft()
		d.FabricColor = "Hot Pink"
		d.CustomDesign = true
		it := itemByID(t, v.Validate(d, models.Actor{UserID: 1, IsOwner: true}), RuleApprovedPalette)
		assert.Equal(t, models.ValidationWarn, it.Status)
	})
}

func TestValidateIdentityMascotCoherence(t *testing.T) {
	v := testValidator(t)
	owner := models.Actor{UserID: 1, IsOwner: true}

	d := completeDraft()
	d.IdentityCode = "monoform"
	d.MascotID = "owl-classic"
	d.CustomDesign = true

	// The override never applies to structural incoherence.
	it := itemByID(t, v.Validate(d, owner), RuleIdentityMascot)
	assert.Equal(t, models.ValidationFail, it.Status)

	d.MascotID = ""
	it = itemByID(t, v.Validate(d, owner), RuleIdentityMascot)
	assert.Equal(t, models.ValidationNotApplicable, it.Status)
}

func TestValidateAdvisoryRulesWarnOnly(t *testing.T) {
	v := testValidator(t)
	d := completeDraft()
	d.SEOTitle = ""
	d.Images = nil
	d.Metafields = nil
	d.CollectionIDs = nil

	items := v.Validate(d, models.Actor{UserID: 2})
	for _, id := range []string{RuleSEOComplete, RuleImagesPresent, RuleMetafieldsPresent, RuleCollectionMember} {
		assert.Equal(t, models.ValidationWarn, itemByID(t, items, id).Status, id)
	}
	// Warnings never block.
	assert.True(t, AllPassed(items))
}

func TestAllPassed(t *testing.T) {
	assert.True(t, AllPassed(nil))
	assert.True(t, AllPassed([]models.ValidationItem{
		{Status: models.ValidationPass},
		{Status: models.ValidationWarn},
		{Status: models.ValidationNotApplicable},
	}))
	assert.False(t, AllPassed([]models.ValidationItem{
		{Status: models.ValidationPass},
		{Status: models.ValidationFail},
	}))
}
