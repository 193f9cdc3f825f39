package models

// Dimension is one named axis of product variation (Size, Color, Material).
// Values are ordered; that order drives variant ordering downstream.
type Dimension struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Archetype is a product type template (e.g. "Tee", "Hoodie") defining which
// dimensions apply and the base pricing inputs.
type Archetype struct {
	Code                string             `json:"code"`
	Name                string             `json:"name"`
	Dimensions          []Dimension        `json:"dimensions"`
	BasePrice           float64            `json:"basePrice"`
	WeightGrams         int                `json:"weightGrams"`
	MaterialMultipliers map[string]float64 `json:"materialMultipliers,omitempty"`

	// ApprovedPalette lists the stroke/fabric colors compliance accepts for
	// this archetype. Empty means no palette restriction.
	ApprovedPalette []string `json:"approvedPalette,omitempty"`
}

// BrandIdentity is one selectable brand/identity line.
// HasMascot=false means the identity has no mascot concept at all; pairing
// it with a mascot selection is a structural error, not a missing field.
type BrandIdentity struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	HasMascot bool   `json:"hasMascot"`
}

// RuleDescription documents one compliance rule for UI checklists.
type RuleDescription struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Guideline is the read-only brand guideline structure drafts are validated
// against. Loaded once at startup; never mutated by the core.
type Guideline struct {
	Identities      []BrandIdentity   `json:"identities"`
	ApprovedMascots []string          `json:"approvedMascots"`
	Archetypes      []Archetype       `json:"archetypes"`
	Rules           []RuleDescription `json:"rules,omitempty"`
}
