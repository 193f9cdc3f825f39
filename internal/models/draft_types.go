package models

import (
	"time"
)

// Draft status lifecycle. Published is terminal.
const (
	DraftStatusInProgress = "in_progress"
	DraftStatusDraft      = "draft"
	DraftStatusValidated  = "validated"
	DraftStatusPublished  = "published"
)

// Wizard flow variants. The advanced flow adds a materials step and uses the
// short-suffix SKU convention.
const (
	FlowSimple   = "simple"
	FlowAdvanced = "advanced"
)

// SelectedDimension holds the chosen values for one active dimension.
// Order of the slice follows archetype dimension declaration order.
type SelectedDimension struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// OptionSelection is the full set of chosen values per active dimension.
type OptionSelection []SelectedDimension

// PricingInput carries the caller-supplied pricing knobs for variant
// synthesis. MaterialMultiplier is resolved from the archetype's material
// table for the advanced flow, 1.0 otherwise.
type PricingInput struct {
	BasePrice          float64 `json:"basePrice"`
	MaterialMultiplier float64 `json:"materialMultiplier"`
	MarginPct          float64 `json:"marginPct"`
}

// Draft is the root aggregate for one in-progress product configuration.
// It is the single owner of its variant list.
type Draft struct {
	ID      string `json:"id" db:"id"`
	OwnerID int64  `json:"ownerId" db:"owner_id"`

	// Generation increments on every reset. Results of asynchronous calls
	// issued against an older generation are discarded.
	Generation int `json:"generation" db:"generation"`

	Flow        string `json:"flow" db:"flow"`
	CurrentStep string `json:"currentStep" db:"current_step"`
	Status      string `json:"status" db:"status"`

	ArchetypeCode string `json:"archetypeCode"`
	IdentityCode  string `json:"identityCode"`
	MascotID      string `json:"mascotId,omitempty"`
	CustomDesign  bool   `json:"customDesign"`

	// --- Copy & Media ---
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	SEOTitle       string   `json:"seoTitle,omitempty"`
	SEODescription string   `json:"seoDescription,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Images         []string `json:"images,omitempty"`

	// --- Design ---
	StrokeColor string `json:"strokeColor,omitempty"`
	FabricColor string `json:"fabricColor,omitempty"`
	Material    string `json:"material,omitempty"`

	// --- Options & Pricing ---
	Selection OptionSelection `json:"selection,omitempty"`
	Pricing   PricingInput    `json:"pricing"`
	Variants  []Variant       `json:"variants,omitempty"`

	// --- Catalog metadata (advisory for compliance) ---
	CollectionIDs []int64           `json:"collectionIds,omitempty"`
	Metafields    map[string]string `json:"metafields,omitempty"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// IsPublished reports whether the draft reached its terminal state.
func (d *Draft) IsPublished() bool {
	return d.Status == DraftStatusPublished
}

// ValuesFor returns the selected values for the named dimension, or nil.
func (s OptionSelection) ValuesFor(name string) []string {
	for _, sd := range s {
		if sd.Name == name {
			return sd.Values
		}
	}
	return nil
}
