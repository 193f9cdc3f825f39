package models

// VariantOption is one dimension/value slot on a variant (at most 3, ordered).
type VariantOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variant is one concrete purchasable unit derived from a draft.
// Variants have no identity outside their parent draft; the draft's list is
// always the full cartesian product of its option selection.
type Variant struct {
	Title       string          `json:"title"`
	SKU         string          `json:"sku"`
	Price       float64         `json:"price"`
	Cost        float64         `json:"cost"`
	Profit      float64         `json:"profit"`
	WeightGrams int             `json:"weightGrams"`
	Options     []VariantOption `json:"options"`
}
