package wizard

import (
	"testing"

	"github.com/brandforge/brandforge-golang/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftAt(step string, mutate func(*models.Draft)) *models.Draft {
	d := &models.Draft{
		Flow:        models.FlowSimple,
		CurrentStep: step,
		Status:      models.DraftStatusInProgress,
	}
	if mutate != nil {
		mutate(d)
	}
	return d
}

func TestStepsPerFlow(t *testing.T) {
	simple := Steps(models.FlowSimple)
	advanced := Steps(models.FlowAdvanced)

	assert.Len(t, simple, 5)
	assert.Len(t, advanced, 6)

	// The advanced flow only inserts materials; everything else matches.
	assert.Equal(t, StepMaterials, advanced[3].ID)
	assert.Equal(t, simple[0].ID, advanced[0].ID)
	assert.Equal(t, simple[len(simple)-1].ID, advanced[len(advanced)-1].ID)
	assert.Equal(t, StepReview, simple[len(simple)-1].ID)
}

func TestIsStepComplete(t *testing.T) {
	tests := []struct {
		name   string
		step   string
		mutate func(*models.Draft)
		want   bool
	}{
		{"archetype empty", StepArchetype, nil, false},
		{"archetype set", StepArchetype, func(d *models.Draft) { d.ArchetypeCode = "tee" }, true},
		{"identity set", StepIdentity, func(d *models.Draft) { d.IdentityCode = "nocturne" }, true},
		{"design needs title", StepDesign, func(d *models.Draft) { d.MascotID = "owl-classic" }, false},
		{"design title plus mascot", StepDesign, func(d *models.Draft) {
			d.Title = "Night Owl Tee"
			d.MascotID = "owl-classic"
		}, true},
		{"design title plus custom", StepDesign, func(d *models.Draft) {
			d.Title = "Night Owl Tee"
			d.CustomDesign = true
		}, true},
		{"materials set", StepMaterials, func(d *models.Draft) { d.Material = "cotton" }, true},
		{"options need variants", StepOptions, nil, false},
		{"options with variants", StepOptions, func(d *models.Draft) {
			d.Variants = []models.Variant{{Title: "Default"}}
		}, true},
		{"review after validation", StepReview, func(d *models.Draft) {
			d.Status = models.DraftStatusValidated
		}, true},
		{"unknown step", "bogus", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := draftAt(StepArchetype, tt.mutate)
			assert.Equal(t, tt.want, IsStepComplete(tt.step, d))
		})
	}
}

// Completion predicates must be monotonic under addition-only mutations:
// filling in more of the draft never un-completes an already-complete step.
func TestStepCompletionMonotonic(t *testing.T) {
	d := draftAt(StepArchetype, func(d *models.Draft) { d.ArchetypeCode = "tee" })
	require.True(t, IsStepComplete(StepArchetype, d))

	d.IdentityCode = "nocturne"
	d.Title = "Night Owl Tee"
	d.MascotID = "owl-classic"
	d.Material = "cotton"
	d.Variants = []models.Variant{{Title: "S / Black"}}

	for _, step := range []string{StepArchetype, StepIdentity, StepDesign, StepMaterials, StepOptions} {
		assert.True(t, IsStepComplete(step, d), "step %s", step)
	}
}

func TestMachineGoNext(t *testing.T) {
	d := draftAt(StepArchetype, nil)
	m := NewMachine(d)

	// Current step incomplete: forward navigation blocked.
	_, err := m.GoNext(d)
	assert.ErrorIs(t, err, ErrStepBlocked)
	assert.Equal(t, StepArchetype, m.Current().ID)

	// Complete it and move on.
	d.ArchetypeCode = "tee"
	next, err := m.GoNext(d)
	require.NoError(t, err)
	assert.Equal(t, StepIdentity, next.ID)
}

func TestMachineTerminal(t *testing.T) {
	d := draftAt(StepReview, nil)
	m := NewMachine(d)

	require.True(t, m.IsTerminal())
	assert.False(t, m.CanGoNext(d))

	_, err := m.GoNext(d)
	assert.ErrorIs(t, err, ErrAtTerminal)
}

func TestMachineGoBack(t *testing.T) {
	d := draftAt(StepDesign, nil)
	m := NewMachine(d)

	assert.Equal(t, StepIdentity, m.GoBack().ID)
	assert.Equal(t, StepArchetype, m.GoBack().ID)
	// At the first step back is a no-op.
	assert.Equal(t, StepArchetype, m.GoBack().ID)
}

func TestMachineGoToStep(t *testing.T) {
	t.Run("backward always allowed", func(t *testing.T) {
		d := draftAt(StepOptions, nil)
		m := NewMachine(d)
		got, err := m.GoToStep(StepArchetype, d)
		require.NoError(t, err)
		assert.Equal(t, StepArchetype, got.ID)
	})

	t.Run("jump to completed step allowed", func(t *testing.T) {
		d := draftAt(StepArchetype, func(d *models.Draft) {
			d.ArchetypeCode = "tee"
			d.Variants = []models.Variant{{Title: "Default"}}
		})
		m := NewMachine(d)
		got, err := m.GoToStep(StepOptions, d)
		require.NoError(t, err)
		assert.Equal(t, StepOptions, got.ID)
	})

	t.Run("immediate next allowed when current complete", func(t *testing.T) {
		d := draftAt(StepArchetype, func(d *models.Draft) { d.ArchetypeCode = "tee" })
		m := NewMachine(d)
		got, err := m.GoToStep(StepIdentity, d)
		require.NoError(t, err)
		assert.Equal(t, StepIdentity, got.ID)
	})

	t.Run("skipping ahead blocked", func(t *testing.T) {
		d := draftAt(StepArchetype, func(d *models.Draft) { d.ArchetypeCode = "tee" })
		m := NewMachine(d)
		_, err := m.GoToStep(StepOptions, d)
		assert.ErrorIs(t, err, ErrStepBlocked)
		assert.Equal(t, StepArchetype, m.Current().ID)
	})

	t.Run("unknown step rejected", func(t *testing.T) {
		d := draftAt(StepArchetype, nil)
		m := NewMachine(d)
		_, err := m.GoToStep("shipping", d)
		assert.ErrorIs(t, err, ErrUnknownStep)
	})

	t.Run("materials unknown to simple flow", func(t *testing.T) {
		d := draftAt(StepArchetype, nil)
		m := NewMachine(d)
		_, err := m.GoToStep(StepMaterials, d)
		assert.ErrorIs(t, err, ErrUnknownStep)
	})
}

func TestMachineProgress(t *testing.T) {
	d := draftAt(StepIdentity, func(d *models.Draft) {
		d.ArchetypeCode = "tee"
	})
	m := NewMachine(d)

	progress := m.Progress(d)
	require.Len(t, progress, 5)
	assert.True(t, progress[0].Complete)
	assert.False(t, progress[0].Current)
	assert.False(t, progress[1].Complete)
	assert.True(t, progress[1].Current)
}
