package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/brandforge/brandforge-golang/internal/models"
)

// MaxActiveDimensions is the hard limit the target catalog imposes on
// simultaneous variation axes.
const MaxActiveDimensions = 3

// Catalog is the read-only option catalog plus brand guideline. It is loaded
// once at startup and shared; the core never mutates it.
type Catalog struct {
	guideline *models.Guideline

	archetypes map[string]*models.Archetype
	identities map[string]*models.BrandIdentity
	mascots    map[string]bool
}

// Load reads and validates a guideline config file (JSON).
func Load(configPath string) (*Catalog, error) {
	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read guideline config: %w", err)
	}

	var g models.Guideline
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse guideline config: %w", err)
	}

	cat, err := New(&g)
	if err != nil {
		return nil, fmt.Errorf("invalid guideline config: %w", err)
	}

	log.Printf("Catalog: loaded guideline config from %s (%d archetypes, %d identities)",
		configPath, len(g.Archetypes), len(g.Identities))
	return cat, nil
}

// New builds a catalog from an already-loaded guideline, validating it.
func New(g *models.Guideline) (*Catalog, error) {
	if err := validateGuideline(g); err != nil {
		return nil, err
	}

	cat := &Catalog{
		guideline:  g,
		archetypes: make(map[string]*models.Archetype, len(g.Archetypes)),
		identities: make(map[string]*models.BrandIdentity, len(g.Identities)),
		mascots:    make(map[string]bool, len(g.ApprovedMascots)),
	}
	for i := range g.Archetypes {
		cat.archetypes[g.Archetypes[i].Code] = &g.Archetypes[i]
	}
	for i := range g.Identities {
		cat.identities[g.Identities[i].Code] = &g.Identities[i]
	}
	for _, m := range g.ApprovedMascots {
		cat.mascots[m] = true
	}
	return cat, nil
}

func validateGuideline(g *models.Guideline) error {
	if len(g.Archetypes) == 0 {
		return fmt.Errorf("archetypes are required")
	}
	if len(g.Identities) == 0 {
		return fmt.Errorf("identities are required")
	}

	seenArch := make(map[string]bool)
	for _, a := range g.Archetypes {
		if a.Code == "" {
			return fmt.Errorf("archetype code is required")
		}
		if seenArch[a.Code] {
			return fmt.Errorf("duplicate archetype code %q", a.Code)
		}
		seenArch[a.Code] = true

		if a.BasePrice <= 0 {
			return fmt.Errorf("archetype %q: base price must be positive", a.Code)
		}
		if len(a.Dimensions) > MaxActiveDimensions {
			return fmt.Errorf("archetype %q: at most %d dimensions are supported, got %d",
				a.Code, MaxActiveDimensions, len(a.Dimensions))
		}
		seenDim := make(map[string]bool)
		for _, d := range a.Dimensions {
			if d.Name == "" || len(d.Values) == 0 {
				return fmt.Errorf("archetype %q: dimensions need a name and at least one value", a.Code)
			}
			if seenDim[d.Name] {
				return fmt.Errorf("archetype %q: duplicate dimension %q", a.Code, d.Name)
			}
			seenDim[d.Name] = true
		}
	}

	seenIdent := make(map[string]bool)
	for _, id := range g.Identities {
		if id.Code == "" {
			return fmt.Errorf("identity code is required")
		}
		if seenIdent[id.Code] {
			return fmt.Errorf("duplicate identity code %q", id.Code)
		}
		seenIdent[id.Code] = true
	}
	return nil
}

// Guideline exposes the underlying read-only guideline structure.
func (c *Catalog) Guideline() *models.Guideline {
	return c.guideline
}

// ArchetypeByCode looks up a product archetype.
func (c *Catalog) ArchetypeByCode(code string) (*models.Archetype, bool) {
	a, ok := c.archetypes[code]
	return a, ok
}

// IdentityByCode looks up a brand identity.
func (c *Catalog) IdentityByCode(code string) (*models.BrandIdentity, bool) {
	id, ok := c.identities[code]
	return id, ok
}

// IsApprovedMascot reports whether the mascot id is in the approved set.
func (c *Catalog) IsApprovedMascot(mascotID string) bool {
	return c.mascots[mascotID]
}

// PaletteFor returns the approved color palette for an archetype.
// Nil means the archetype carries no palette restriction.
func (c *Catalog) PaletteFor(archetypeCode string) []string {
	a, ok := c.archetypes[archetypeCode]
	if !ok {
		return nil
	}
	return a.ApprovedPalette
}

// MaterialMultiplier resolves the pricing multiplier for a material choice.
// Unknown or empty materials price at 1.0.
func (c *Catalog) MaterialMultiplier(archetypeCode, material string) float64 {
	a, ok := c.archetypes[archetypeCode]
	if !ok || material == "" {
		return 1.0
	}
	if m, ok := a.MaterialMultipliers[material]; ok {
		return m
	}
	return 1.0
}
