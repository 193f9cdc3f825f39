package compliance

import (
	"fmt"

	"github.com/brandforge/brandforge-golang/internal/catalog"
	"github.com/brandforge/brandforge-golang/internal/models"
)

// Rule ids, in evaluation order. Validate always returns exactly one item
// per rule so callers can render a stable checklist.
const (
	RuleRequiredTitle     = "required-title"
	RuleRequiredVariants  = "required-variants"
	RuleRequiredPrice     = "required-price"
	RuleApprovedMascot    = "approved-mascot"
	RuleApprovedPalette   = "approved-palette"
	RuleIdentityMascot    = "identity-mascot-coherence"
	RuleSEOComplete       = "seo-complete"
	RuleImagesPresent     = "images-present"
	RuleMetafieldsPresent = "metafields-present"
	RuleCollectionMember  = "collection-membership"
)

// RuleCount is the fixed checklist length.
const RuleCount = 10

// Validator evaluates drafts against the loaded brand guideline. It is a
// pure read-only projection: it never mutates the draft and never errors.
// Every rule reports, whatever the draft looks like.
type Validator struct {
	Catalog *catalog.Catalog
}

// Validate runs every rule and returns the full checklist. No
// short-circuiting: a failing required field does not suppress later rules.
func (v *Validator) Validate(d *models.Draft, actor models.Actor) []models.ValidationItem {
	items := make([]models.ValidationItem, 0, RuleCount)

	// 1. --- Required fields ---
	items = append(items, requiredRule(RuleRequiredTitle, "Product title present",
		d.Title != "", "Title is required before publishing."))

	items = append(items, requiredRule(RuleRequiredVariants, "At least one variant",
		len(d.Variants) > 0, "Select options to generate at least one variant."))

	priced := len(d.Variants) > 0
	for _, vr := range d.Variants {
		if vr.Price <= 0 {
			priced = false
			break
		}
	}
	items = append(items, requiredRule(RuleRequiredPrice, "All variants priced",
		priced, "Every variant needs a non-zero price."))

	// 2. --- Approved-value membership (owner override downgrades to warn) ---
	items = append(items, v.mascotRule(d, actor))
	items = append(items, v.paletteRule(d, actor))

	// 3. --- Cross-field coherence ---
	items = append(items, v.identityMascotRule(d))

	// 4. --- Advisory completeness (warn, never fail) ---
	items = append(items, advisoryRule(RuleSEOComplete, "SEO title and description",
		d.SEOTitle != "" && d.SEODescription != "",
		"SEO fields improve catalog discoverability."))

	items = append(items, advisoryRule(RuleImagesPresent, "Product imagery attached",
		len(d.Images) > 0, "Listings without images convert poorly."))

	items = append(items, advisoryRule(RuleMetafieldsPresent, "Catalog metafields filled",
		len(d.Metafields) > 0, "Metafields drive storefront filtering."))

	items = append(items, advisoryRule(RuleCollectionMember, "Assigned to a collection",
		len(d.CollectionIDs) > 0, "Unassigned products are hard to find."))

	return items
}

// AllPassed reports publishability: zero failing items.
func AllPassed(items []models.ValidationItem) bool {
	for _, it := range items {
		if it.Status == models.ValidationFail {
			return false
		}
	}
	return true
}

func requiredRule(id, label string, ok bool, failMsg string) models.ValidationItem {
	item := models.ValidationItem{ID: id, Label: label, Status: models.ValidationPass}
	if !ok {
		item.Status = models.ValidationFail
		item.Message = failMsg
	}
	return item
}

func advisoryRule(id, label string, ok bool, warnMsg string) models.ValidationItem {
	item := models.ValidationItem{ID: id, Label: label, Status: models.ValidationPass}
	if !ok {
		item.Status = models.ValidationWarn
		item.Message = warnMsg
	}
	return item
}

// mascotRule: the selected mascot must be in the guideline's approved set.
// An owner working on a custom design gets a warning instead of a failure.
func (v *Validator) mascotRule(d *models.Draft, actor models.Actor) models.ValidationItem {
	item := models.ValidationItem{ID: RuleApprovedMascot, Label: "Mascot from approved set"}
	if d.MascotID == "" {
		item.Status = models.ValidationNotApplicable
		return item
	}
	if v.Catalog.IsApprovedMascot(d.MascotID) {
		item.Status = models.ValidationPass
		return item
	}
	if d.CustomDesign && actor.IsOwner {
		item.Status = models.ValidationWarn
		item.Message = fmt.Sprintf("Mascot %q is not approved; owner override for custom design.", d.MascotID)
		return item
	}
	item.Status = models.ValidationFail
	item.Message = fmt.Sprintf("Mascot %q is not in the approved set.", d.MascotID)
	return item
}

// paletteRule: stroke and fabric colors must sit inside the archetype's
// approved palette. Archetypes without a palette are exempt.
func (v *Validator) paletteRule(d *models.Draft, actor models.Actor) models.ValidationItem {
	item := models.ValidationItem{ID: RuleApprovedPalette, Label: "Colors within archetype palette"}

	palette := v.Catalog.PaletteFor(d.ArchetypeCode)
	if len(palette) == 0 || (d.StrokeColor == "" && d.FabricColor == "") {
		item.Status = models.ValidationNotApplicable
		return item
	}

	approved := make(map[string]bool, len(palette))
	for _, c := range palette {
		approved[c] = true
	}
	var offending string
	if d.StrokeColor != "" && !approved[d.StrokeColor] {
		offending = d.StrokeColor
	}
	if offending == "" && d.FabricColor != "" && !approved[d.FabricColor] {
		offending = d.FabricColor
	}

	if offending == "" {
		item.Status = models.ValidationPass
		return item
	}
	if d.CustomDesign && actor.IsOwner {
		item.Status = models.ValidationWarn
		item.Message = fmt.Sprintf("Color %q is outside the palette; owner override for custom design.", offending)
		return item
	}
	item.Status = models.ValidationFail
	item.Message = fmt.Sprintf("Color %q is not in the approved palette for this product type.", offending)
	return item
}

// identityMascotRule: selecting a mascot under an identity that has no
// mascot concept is a structurally invalid combination, so it fails rather
// than warns, and the owner override does not apply.
func (v *Validator) identityMascotRule(d *models.Draft) models.ValidationItem {
	item := models.ValidationItem{ID: RuleIdentityMascot, Label: "Mascot allowed for identity"}
	if d.IdentityCode == "" || d.MascotID == "" {
		item.Status = models.ValidationNotApplicable
		return item
	}
	identity, ok := v.Catalog.IdentityByCode(d.IdentityCode)
	if !ok {
		item.Status = models.ValidationFail
		item.Message = fmt.Sprintf("Unknown brand identity %q.", d.IdentityCode)
		return item
	}
	if !identity.HasMascot {
		item.Status = models.ValidationFail
		item.Message = fmt.Sprintf("Identity %q has no mascot concept; remove the mascot selection.", identity.Name)
		return item
	}
	item.Status = models.ValidationPass
	return item
}
