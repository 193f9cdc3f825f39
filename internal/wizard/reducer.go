package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brandforge/brandforge-golang/internal/catalog"
	"github.com/brandforge/brandforge-golang/internal/models"
	"github.com/brandforge/brandforge-golang/internal/variant"
	"github.com/google/uuid"
)

var (
	// ErrDraftPublished is returned for any action against a published
	// draft. Published drafts are immutable in this subsystem.
	ErrDraftPublished = errors.New("draft is published and immutable")

	// ErrUnknownAction is returned for unrecognized action types.
	ErrUnknownAction = errors.New("unknown action type")

	// ErrUnknownArchetype is returned when an action references an
	// archetype the catalog does not know.
	ErrUnknownArchetype = errors.New("unknown archetype")

	// ErrUnknownIdentity is returned when an action references a brand
	// identity the guideline does not know.
	ErrUnknownIdentity = errors.New("unknown brand identity")

	// ErrStaleGeneration is returned when an async result arrives for an
	// older draft generation; the result must be discarded.
	ErrStaleGeneration = errors.New("stale draft generation")
)

// Action types accepted by the reducer.
const (
	ActionSetArchetype   = "set_archetype"
	ActionSetIdentity    = "set_identity"
	ActionSetDesign      = "set_design"
	ActionSetCopy        = "set_copy"
	ActionSetMaterial    = "set_material"
	ActionSetSelection   = "set_selection"
	ActionSetPricing     = "set_pricing"
	ActionSetMetadata    = "set_metadata"
	ActionApplyAIContent = "apply_ai_content"
	ActionMarkValidated  = "mark_validated"
	ActionReset          = "reset"
)

// AIContent is the structured payload the generative collaborator fills in.
type AIContent struct {
	// Generation tags the draft generation the call was issued against.
	Generation int `json:"generation"`

	Title          string   `json:"title,omitempty"`
	Description    string   `json:"description,omitempty"`
	SEOTitle       string   `json:"seoTitle,omitempty"`
	SEODescription string   `json:"seoDescription,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	ImageURL       string   `json:"imageUrl,omitempty"`
}

// Action is one discrete draft mutation. Pointer fields distinguish "leave
// unchanged" from "set to zero value".
type Action struct {
	Type string `json:"type" binding:"required"`

	ArchetypeCode string `json:"archetypeCode,omitempty"`
	IdentityCode  string `json:"identityCode,omitempty"`

	MascotID     *string `json:"mascotId,omitempty"`
	CustomDesign *bool   `json:"customDesign,omitempty"`
	StrokeColor  *string `json:"strokeColor,omitempty"`
	FabricColor  *string `json:"fabricColor,omitempty"`

	Title          *string  `json:"title,omitempty"`
	Description    *string  `json:"description,omitempty"`
	SEOTitle       *string  `json:"seoTitle,omitempty"`
	SEODescription *string  `json:"seoDescription,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Images         []string `json:"images,omitempty"`

	Material *string `json:"material,omitempty"`

	Selection models.OptionSelection `json:"selection,omitempty"`

	BasePrice *float64 `json:"basePrice,omitempty" binding:"omitempty,gt=0"`
	MarginPct *float64 `json:"marginPct,omitempty" binding:"omitempty,gte=0,lt=100"`

	CollectionIDs []int64           `json:"collectionIds,omitempty"`
	Metafields    map[string]string `json:"metafields,omitempty"`

	AIContent *AIContent `json:"aiContent,omitempty"`
}

// Reducer applies actions to drafts. It owns variant recomputation: any
// action that touches archetype, selection, material, or pricing re-runs
// the matrix generator so the variant list never drifts from its inputs.
type Reducer struct {
	Catalog *catalog.Catalog
}

// NewDraft starts a fresh draft for one wizard session.
func (r *Reducer) NewDraft(ownerID int64, flow string) models.Draft {
	if flow != models.FlowAdvanced {
		flow = models.FlowSimple
	}
	now := time.Now()
	return models.Draft{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Generation:  1,
		Flow:        flow,
		CurrentStep: StepArchetype,
		Status:      models.DraftStatusInProgress,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Apply runs one action against a draft and returns the updated draft.
// The input draft is not mutated.
func (r *Reducer) Apply(d models.Draft, a Action) (models.Draft, error) {
	if d.IsPublished() {
		return d, ErrDraftPublished
	}

	recompute := false

	switch a.Type {
	case ActionSetArchetype:
		arch, ok := r.Catalog.ArchetypeByCode(a.ArchetypeCode)
		if !ok {
			return d, fmt.Errorf("%w: %q", ErrUnknownArchetype, a.ArchetypeCode)
		}
		d.ArchetypeCode = arch.Code
		if d.Pricing.BasePrice == 0 {
			d.Pricing.BasePrice = arch.BasePrice
		}
		// A new archetype invalidates the old selection outright.
		d.Selection = nil
		d.Variants = nil
		recompute = true

	case ActionSetIdentity:
		if _, ok := r.Catalog.IdentityByCode(a.IdentityCode); !ok {
			return d, fmt.Errorf("%w: %q", ErrUnknownIdentity, a.IdentityCode)
		}
		d.IdentityCode = a.IdentityCode

	case ActionSetDesign:
		if a.MascotID != nil {
			d.MascotID = *a.MascotID
		}
		if a.CustomDesign != nil {
			d.CustomDesign = *a.CustomDesign
		}
		if a.StrokeColor != nil {
			d.StrokeColor = *a.StrokeColor
		}
		if a.FabricColor != nil {
			d.FabricColor = *a.FabricColor
		}

	case ActionSetCopy:
		if a.Title != nil {
			d.Title = *a.Title
		}
		if a.Description != nil {
			d.Description = *a.Description
		}
		if a.SEOTitle != nil {
			d.SEOTitle = *a.SEOTitle
		}
		if a.SEODescription != nil {
			d.SEODescription = *a.SEODescription
		}
		if a.Tags != nil {
			d.Tags = a.Tags
		}
		if a.Images != nil {
			d.Images = a.Images
		}

	case ActionSetMaterial:
		if a.Material == nil {
			return d, errors.New("set_material requires a material")
		}
		d.Material = *a.Material
		recompute = true

	case ActionSetSelection:
		d.Selection = a.Selection
		recompute = true

	case ActionSetPricing:
		if a.BasePrice != nil {
			d.Pricing.BasePrice = *a.BasePrice
		}
		if a.MarginPct != nil {
			d.Pricing.MarginPct = *a.MarginPct
		}
		recompute = true

	case ActionSetMetadata:
		if a.CollectionIDs != nil {
			d.CollectionIDs = a.CollectionIDs
		}
		if a.Metafields != nil {
			d.Metafields = a.Metafields
		}

	case ActionApplyAIContent:
		if a.AIContent == nil {
			return d, errors.New("apply_ai_content requires content")
		}
		if a.AIContent.Generation != d.Generation {
			return d, ErrStaleGeneration
		}
		c := a.AIContent
		if c.Title != "" {
			d.Title = c.Title
		}
		if c.Description != "" {
			d.Description = c.Description
		}
		if c.SEOTitle != "" {
			d.SEOTitle = c.SEOTitle
		}
		if c.SEODescription != "" {
			d.SEODescription = c.SEODescription
		}
		if len(c.Tags) > 0 {
			d.Tags = c.Tags
		}
		if c.ImageURL != "" {
			d.Images = append(append([]string{}, d.Images...), c.ImageURL)
		}

	case ActionMarkValidated:
		d.Status = models.DraftStatusValidated

	case ActionReset:
		return r.reset(d), nil

	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}

	// Any validated stamp is void once the draft changes again.
	if d.Status == models.DraftStatusValidated && a.Type != ActionMarkValidated {
		d.Status = models.DraftStatusInProgress
	}

	if recompute {
		if err := r.recomputeVariants(&d); err != nil {
			return d, err
		}
	}

	d.UpdatedAt = time.Now()
	return d, nil
}

// reset replaces the draft with a fresh one, carrying over only the brand
// identity selection. The generation bump invalidates in-flight async work.
func (r *Reducer) reset(d models.Draft) models.Draft {
	fresh := r.NewDraft(d.OwnerID, d.Flow)
	fresh.ID = d.ID
	fresh.Generation = d.Generation + 1
	fresh.IdentityCode = d.IdentityCode
	fresh.CreatedAt = d.CreatedAt
	return fresh
}

func (r *Reducer) recomputeVariants(d *models.Draft) error {
	if d.ArchetypeCode == "" {
		d.Variants = nil
		return nil
	}
	arch, ok := r.Catalog.ArchetypeByCode(d.ArchetypeCode)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownArchetype, d.ArchetypeCode)
	}
	if len(d.Selection) == 0 {
		// Nothing chosen yet; the options step is simply incomplete.
		d.Variants = nil
		return nil
	}

	pricing := d.Pricing
	pricing.MaterialMultiplier = r.Catalog.MaterialMultiplier(d.ArchetypeCode, d.Material)

	variants, err := variant.Generate(variant.Request{
		ArchetypeCode: d.ArchetypeCode,
		Dimensions:    arch.Dimensions,
		Selection:     d.Selection,
		Pricing:       pricing,
		SKU:           variant.PolicyForFlow(d.Flow),
		WeightGrams:   arch.WeightGrams,
		Seed:          seedFromID(d.ID),
	})
	if err != nil {
		return err
	}
	d.Pricing.MaterialMultiplier = pricing.MaterialMultiplier
	d.Variants = variants
	return nil
}

// seedFromID derives a stable SKU disambiguator from the draft id, so
// regeneration for the same draft is byte-identical.
func seedFromID(id string) string {
	compact := strings.ReplaceAll(id, "-", "")
	if len(compact) > 6 {
		compact = compact[:6]
	}
	return strings.ToUpper(compact)
}
