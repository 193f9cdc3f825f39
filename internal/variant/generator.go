package variant

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/brandforge/brandforge-golang/internal/catalog"
	"github.com/brandforge/brandforge-golang/internal/models"
	"github.com/gosimple/slug"
)

var (
	// ErrInvalidMargin is returned when the margin percentage falls outside
	// [0, 100). At 100 the price formula divides by zero.
	ErrInvalidMargin = errors.New("margin must be in [0, 100)")

	// ErrTooManyDimensions is returned when more than the supported number
	// of dimensions are active. The generator fails fast rather than
	// truncating the axis list.
	ErrTooManyDimensions = errors.New("too many active dimensions")

	// ErrValueNotAllowed is returned when a selected value is not in its
	// dimension's allowed list.
	ErrValueNotAllowed = errors.New("selected value not allowed for dimension")

	// ErrUnknownDimension is returned when the selection names a dimension
	// the archetype does not declare.
	ErrUnknownDimension = errors.New("dimension not declared for archetype")
)

// TitleSeparator joins per-dimension values into a variant title.
const TitleSeparator = " / "

// SKUPolicy is the strategy parameter covering the two SKU conventions the
// system exposes: the simple flow truncates the whole identifier, the
// advanced flow caps the per-combination suffix instead.
type SKUPolicy struct {
	Prefix string

	// MaxLength truncates the complete SKU. 0 disables.
	MaxLength int

	// MaxSuffixLength caps the joined dimension-code suffix. 0 disables.
	MaxSuffixLength int
}

// SimplePolicy is the simple-flow convention: 40-char cap on the whole SKU.
func SimplePolicy() SKUPolicy {
	return SKUPolicy{Prefix: "BF", MaxLength: 40}
}

// AdvancedPolicy is the materials-flow convention: 8-char cap on the
// dimension-code suffix, no overall cap.
func AdvancedPolicy() SKUPolicy {
	return SKUPolicy{Prefix: "BFX", MaxSuffixLength: 8}
}

// PolicyForFlow maps a wizard flow to its SKU convention.
func PolicyForFlow(flow string) SKUPolicy {
	if flow == models.FlowAdvanced {
		return AdvancedPolicy()
	}
	return SimplePolicy()
}

// Request carries everything Generate needs. The caller supplies Seed (the
// SKU disambiguator); the generator never reads a clock or random source, so
// identical requests produce identical output.
type Request struct {
	ArchetypeCode string
	Dimensions    []models.Dimension
	Selection     models.OptionSelection
	Pricing       models.PricingInput
	SKU           SKUPolicy
	WeightGrams   int
	Seed          string
}

// Generate expands the option selection into the full cartesian product of
// concrete variants, in dimension declaration order with value order
// preserved. With no active dimensions it returns a single "Default"
// variant.
func Generate(req Request) ([]models.Variant, error) {
	if req.Pricing.MarginPct < 0 || req.Pricing.MarginPct >= 100 {
		return nil, fmt.Errorf("%w: got %.2f", ErrInvalidMargin, req.Pricing.MarginPct)
	}

	// Every selection entry must name a declared dimension. An unknown name
	// is rejected outright, never silently ignored.
	declared := make(map[string]bool, len(req.Dimensions))
	for _, d := range req.Dimensions {
		declared[d.Name] = true
	}
	for _, sd := range req.Selection {
		if !declared[sd.Name] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, sd.Name)
		}
	}

	// Active dimensions are those with at least one selected value.
	type axis struct {
		name   string
		values []string
	}
	var axes []axis
	for _, d := range req.Dimensions {
		selected := req.Selection.ValuesFor(d.Name)
		if len(selected) == 0 {
			continue
		}
		allowed := make(map[string]bool, len(d.Values))
		for _, v := range d.Values {
			allowed[v] = true
		}
		for _, v := range selected {
			if !allowed[v] {
				return nil, fmt.Errorf("%w: %q is not a value of %q", ErrValueNotAllowed, v, d.Name)
			}
		}
		axes = append(axes, axis{name: d.Name, values: selected})
	}

	if len(axes) > catalog.MaxActiveDimensions {
		return nil, fmt.Errorf("%w: %d active, limit is %d",
			ErrTooManyDimensions, len(axes), catalog.MaxActiveDimensions)
	}

	multiplier := req.Pricing.MaterialMultiplier
	if multiplier == 0 {
		multiplier = 1.0
	}
	cost := round2(req.Pricing.BasePrice * multiplier)
	price := round2(cost / (1 - req.Pricing.MarginPct/100))

	archCode := slug.Make(req.ArchetypeCode)

	if len(axes) == 0 {
		return []models.Variant{{
			Title:       "Default",
			SKU:         buildSKU(req.SKU, archCode, nil, req.Seed),
			Price:       price,
			Cost:        cost,
			Profit:      round2(price - cost),
			WeightGrams: req.WeightGrams,
			Options:     []models.VariantOption{},
		}}, nil
	}

	total := 1
	for _, ax := range axes {
		total *= len(ax.values)
	}

	variants := make([]models.Variant, 0, total)
	indices := make([]int, len(axes))
	for {
		titleParts := make([]string, len(axes))
		codes := make([]string, len(axes))
		options := make([]models.VariantOption, len(axes))
		for i, ax := range axes {
			v := ax.values[indices[i]]
			titleParts[i] = v
			codes[i] = slug.Make(v)
			options[i] = models.VariantOption{Name: ax.name, Value: v}
		}

		variants = append(variants, models.Variant{
			Title:       strings.Join(titleParts, TitleSeparator),
			SKU:         buildSKU(req.SKU, archCode, codes, req.Seed),
			Price:       price,
			Cost:        cost,
			Profit:      round2(price - cost),
			WeightGrams: req.WeightGrams,
			Options:     options,
		})

		// Advance odometer-style: last axis spins fastest, so output order
		// is the lexicographic cartesian order of the value lists as given.
		pos := len(indices) - 1
		for pos >= 0 {
			indices[pos]++
			if indices[pos] < len(axes[pos].values) {
				break
			}
			indices[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}

	return variants, nil
}

func buildSKU(policy SKUPolicy, archCode string, dimCodes []string, seed string) string {
	suffix := strings.ToUpper(strings.Join(dimCodes, "-"))
	if policy.MaxSuffixLength > 0 && len(suffix) > policy.MaxSuffixLength {
		suffix = suffix[:policy.MaxSuffixLength]
	}

	parts := []string{policy.Prefix, strings.ToUpper(archCode)}
	if suffix != "" {
		parts = append(parts, suffix)
	}
	if seed != "" {
		parts = append(parts, strings.ToUpper(seed))
	}
	sku := strings.Join(parts, "-")

	if policy.MaxLength > 0 && len(sku) > policy.MaxLength {
		sku = sku[:policy.MaxLength]
		sku = strings.TrimRight(sku, "-")
	}
	return sku
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
