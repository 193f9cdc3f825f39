package wizard

import (
	"testing"

	"github.com/brandforge/brandforge-golang/internal/catalog"
	"github.com/brandforge/brandforge-golang/internal/models"
	"github.com/brandforge/brandforge-golang/internal/variant"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReducer(t *testing.T) *Reducer {
	t.Helper()
	cat, err := catalog.New(catalog.DefaultGuideline())
	require.NoError(t, err)
	return &Reducer{Catalog: cat}
}

func strptr(s string) *string   { return &s }
func f64ptr(f float64) *float64 { return &f }
func boolptr(b bool) *bool      { return &b }

func TestNewDraft(t *testing.T) {
	r := testReducer(t)
	d := r.NewDraft(7, models.FlowAdvanced)

	assert.NotEmpty(t, d.ID)
	assert.Equal(t, int64(7), d.OwnerID)
	assert.Equal(t, 1, d.Generation)
	assert.Equal(t, models.FlowAdvanced, d.Flow)
	assert.Equal(t, StepArchetype, d.CurrentStep)
	assert.Equal(t, models.DraftStatusInProgress, d.Status)

	// Unknown flows fall back to simple.
	assert.Equal(t, models.FlowSimple, r.NewDraft(7, "turbo").Flow)
}

func TestApplySetArchetype(t *testing.T) {
	r := testReducer(t)
	d := r.NewDraft(1, models.FlowSimple)

	updated, err := r.Apply(d, Action{Type: ActionSetArchetype, ArchetypeCode: "tee"})
	require.NoError(t, err)
	assert.Equal(t, "tee", updated.ArchetypeCode)
	assert.Equal(t, 20.0, updated.Pricing.BasePrice)

	_, err = r.Apply(d, Action{Type: ActionSetArchetype, ArchetypeCode: "bicycle"})
	assert.ErrorIs(t, err, ErrUnknownArchetype)
}

func TestApplySetArchetypeClearsSelection(t *testing.T) {
	r := testReducer(t)
	d := r.NewDraft(1, models.FlowSimple)

	d, err := r.Apply(d, Action{Type: ActionSetArchetype, ArchetypeCode: "tee"})
	require.NoError(t, err)
	d, err = r.Apply(d, Action{Type: ActionSetSelection, Selection: models.OptionSelection{
		{Name: "Size", Values: []string{"S", "M"}},
	}})
	require.NoError(t, err)
	require.Len(t, d.Variants, 2)

	// Switching product type invalidates the old axes wholesale.
	d, err = r.Apply(d, Action{Type: ActionSetArchetype, ArchetypeCode: "mug"})
	require.NoError(t, err)
	assert.Empty(t, d.Selection)
	assert.Empty(t, d.Variants)
}

func TestApplySelectionRecomputesVariants(t *testing.T) {
	r := testReducer(t)
	d := r.NewDraft(1, models.FlowSimple)

	d, err := r.Apply(d, Action{Type: ActionSetArchetype, ArchetypeCode: "tee"})
	require.NoError(t, err)

	d, err = r.Apply(d, Action{Type: ActionSetSelection, Selection: models.OptionSelection{
		{Name: "Size", Values: []string{"S", "M", "L"}},
		{Name: "Color", Values: []string{"Black", "White"}},
	}})
	require.NoError(t, err)
	require.Len(t, d.Variants, 6)
	assert.Equal(t, "S / Black", d.Variants[0].Title)

	// Same draft, same inputs: regeneration is byte-identical.
	again, err := r.Apply(d, Action{Type: ActionSetSelection, Selection: d.Selection})
	require.NoError(t, err)
	if diff := cmp.Diff(d.Variants, again.Variants); diff != "" {
		t.Errorf("variant regeneration differs:\n%s", diff)
	}
}

func TestApplySelectionUnknownDimension(t *testing.T) {
	r := testReducer(t)
	d := r.NewDraft(1, models.FlowSimple)

	d, err := r.Apply(d, Action{Type: ActionSetArchetype, ArchetypeCode: "tee"})
	require.NoError(t, err)

	// A client-supplied selection naming an axis the archetype does not
	// declare is rejected and leaves no variants behind.
	_, err = r.Apply(d, Action{Type: ActionSetSelection, Selection: models.OptionSelection{
		{Name: "Gender", Values: []string{"Unisex"}},
	}})
	assert.ErrorIs(t, err, variant.ErrUnknownDimension)
}

func TestApplyPricingRecomputes(t *testing.T) {
	r := testReducer(t)
	d := r.NewDraft(1, models.FlowSimple)

	d, err := r.Apply(d, Action{Type: ActionSetArchetype, ArchetypeCode: "tee"})
	require.NoError(t, err)
	d, err = r.Apply(d, Action{Type: ActionSetSelection, Selection: models.OptionSelection{
		{Name: "Size", Values: []string{"S"}},
	}})
	require.NoError(t, err)

	d, err = r.Apply(d, Action{Type: ActionSetPricing, MarginPct: f64ptr(40)})
	require.NoError(t, err)
	assert.Equal(t, 33.33, d.Variants[0].Price)

	_, err = r.Apply(d, Action{Type: ActionSetPricing, MarginPct: f64ptr(100)})
	assert.ErrorIs(t, err, variant.ErrInvalidMargin)
}

func TestApplyMaterialAffectsPricing(t *testing.T) {
	r := testReducer(t)
	d := r.NewDraft(1, models.FlowAdvanced)

	d, err := r.Apply(d, Action{Type: ActionSetArchetype, ArchetypeCode: "tee"})
	require.NoError(t, err)
	d, err = r.Apply(d, Action{Type: ActionSetSelection, Selection: models.OptionSelection{
		{Name: "Size", Values: []string{"S"}},
	}})
	require.NoError(t, err)
	baseCost := d.Variants[0].Cost

	d, err = r.Apply(d, Action{Type: ActionSetMaterial, Material: strptr("tri-blend")})
	require.NoError(t, err)
	assert.Equal(t, 1.25, d.Pricing.MaterialMultiplier)
	assert.Equal(t, baseCost*1.25, d.Variants[0].Cost)
}

func TestApplyCopyAndDesign(t *testing.T) {
	r := testReducer(t)
	d := r.NewDraft(1, models.FlowSimple)

	d, err := r.Apply(d, Action{
		Type:     ActionSetDesign,
		MascotID: strptr("owl-classic"),
	})
	require.NoError(t, err)
	d, err = r.Apply(d, Action{
		Type:  ActionSetCopy,
		Title: strptr("Night Owl Tee"),
		Tags:  []string{"owl", "night"},
	})
	require.NoError(t, err)

	assert.Equal(t, "owl-classic", d.MascotID)
	assert.Equal(t, "Night Owl Tee", d.Title)
	assert.Equal(t, []string{"owl", "night"}, d.Tags)

	// Untouched pointer fields leave existing values alone.
	d, err = r.Apply(d, Action{Type: ActionSetCopy, Description: strptr("Soft cotton tee.")})
	require.NoError(t, err)
	assert.Equal(t, "Night Owl Tee", d.Title)
	assert.Equal(t, "Soft cotton tee.", d.Description)
}

func TestApplyAIContentGenerationGuard(t *testing.T) {
	r := testReducer(t)
	d := r.NewDraft(1, models.FlowSimple)

	// Result for the current generation applies.
	updated, err := r.Apply(d, Action{
		Type: ActionApplyAIContent,
		AIContent: &AIContent{
			Generation: d.Generation,
			Title:      "Generated Title",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Generated Title", updated.Title)

	// A result tagged with an older generation is discarded.
	reset, err := r.Apply(updated, Action{Type: ActionReset})
	require.NoError(t, err)
	_, err = r.Apply(reset, Action{
		Type: ActionApplyAIContent,
		AIContent: &AIContent{
			Generation: updated.Generation,
			Title:      "Late Arrival",
		},
	})
	assert.ErrorIs(t, err, ErrStaleGeneration)
}

func TestApplyReset(t *testing.T) {
	r := testReducer(t)
	d := r.NewDraft(9, models.FlowAdvanced)

	d, err := r.Apply(d, Action{Type: ActionSetArchetype, ArchetypeCode: "hoodie"})
	require.NoError(t, err)
	d, err = r.Apply(d, Action{Type: ActionSetIdentity, IdentityCode: "voltline"})
	require.NoError(t, err)
	d, err = r.Apply(d, Action{Type: ActionSetCopy, Title: strptr("Volt Hoodie")})
	require.NoError(t, err)

	reset, err := r.Apply(d, Action{Type: ActionReset})
	require.NoError(t, err)

	// Identity carries over; everything else starts fresh.
	assert.Equal(t, d.ID, reset.ID)
	assert.Equal(t, int64(9), reset.OwnerID)
	assert.Equal(t, d.Generation+1, reset.Generation)
	assert.Equal(t, "voltline", reset.IdentityCode)
	assert.Empty(t, reset.ArchetypeCode)
	assert.Empty(t, reset.Title)
	assert.Empty(t, reset.Variants)
	assert.Equal(t, StepArchetype, reset.CurrentStep)
	assert.Equal(t, models.DraftStatusInProgress, reset.Status)
}

func TestApplyPublishedImmutable(t *testing.T) {
	r := testReducer(t)
	d := r.NewDraft(1, models.FlowSimple)
	d.Status = models.DraftStatusPublished

	for _, a := range []Action{
		{Type: ActionSetCopy, Title: strptr("New Title")},
		{Type: ActionReset},
		{Type: ActionSetArchetype, ArchetypeCode: "tee"},
	} {
		_, err := r.Apply(d, a)
		assert.ErrorIs(t, err, ErrDraftPublished, "action %s", a.Type)
	}
}

func TestApplyVoidsValidatedStamp(t *testing.T) {
	r := testReducer(t)
	d := r.NewDraft(1, models.FlowSimple)

	d, err := r.Apply(d, Action{Type: ActionMarkValidated})
	require.NoError(t, err)
	require.Equal(t, models.DraftStatusValidated, d.Status)

	d, err = r.Apply(d, Action{Type: ActionSetCopy, Title: strptr("Changed")})
	require.NoError(t, err)
	assert.Equal(t, models.DraftStatusInProgress, d.Status)
}

func TestApplyUnknownAction(t *testing.T) {
	r := testReducer(t)
	d := r.NewDraft(1, models.FlowSimple)
	_, err := r.Apply(d, Action{Type: "warp_drive"})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestApplyCustomDesignFlag(t *testing.T) {
	r := testReducer(t)
	d := r.NewDraft(1, models.FlowSimple)

	d, err := r.Apply(d, Action{Type: ActionSetDesign, CustomDesign: boolptr(true)})
	require.NoError(t, err)
	assert.True(t, d.CustomDesign)
}
