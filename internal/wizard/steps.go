package wizard

import (
	"errors"
	"fmt"

	"github.com/brandforge/brandforge-golang/internal/models"
)

var (
	// ErrUnknownStep is returned for step ids outside the active flow.
	ErrUnknownStep = errors.New("unknown step")

	// ErrStepBlocked is returned when navigation would skip a required,
	// incomplete step.
	ErrStepBlocked = errors.New("step blocked")

	// ErrAtTerminal is returned when goNext is called on the last step.
	// The terminal step's forward action belongs to the publish gate.
	ErrAtTerminal = errors.New("already at terminal step")
)

// Step ids shared by both flows.
const (
	StepArchetype = "archetype"
	StepIdentity  = "identity"
	StepDesign    = "design"
	StepMaterials = "materials"
	StepOptions   = "options"
	StepReview    = "review"
)

// Step is one ordinal, named phase of the wizard.
type Step struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// completion predicates, one per step id, shared by both flows. Predicates
// are pure over the draft and recomputed on every call; completion state is
// never cached across mutations.
var predicates = map[string]func(d *models.Draft) bool{
	StepArchetype: func(d *models.Draft) bool { return d.ArchetypeCode != "" },
	StepIdentity:  func(d *models.Draft) bool { return d.IdentityCode != "" },
	StepDesign: func(d *models.Draft) bool {
		return d.Title != "" && (d.MascotID != "" || d.CustomDesign)
	},
	StepMaterials: func(d *models.Draft) bool { return d.Material != "" },
	StepOptions:   func(d *models.Draft) bool { return len(d.Variants) > 0 },
	StepReview: func(d *models.Draft) bool {
		return d.Status == models.DraftStatusValidated || d.Status == models.DraftStatusPublished
	},
}

// Steps returns the ordered step sequence for a flow. The advanced flow
// inserts the materials step; everything else is identical.
func Steps(flow string) []Step {
	steps := []Step{
		{ID: StepArchetype, Label: "Product type", Required: true},
		{ID: StepIdentity, Label: "Brand identity", Required: true},
		{ID: StepDesign, Label: "Design & copy", Required: true},
	}
	if flow == models.FlowAdvanced {
		steps = append(steps, Step{ID: StepMaterials, Label: "Materials", Required: true})
	}
	steps = append(steps,
		Step{ID: StepOptions, Label: "Options & pricing", Required: true},
		Step{ID: StepReview, Label: "Review & publish", Required: false},
	)
	return steps
}

// IsStepComplete evaluates the step's completion predicate against the live
// draft.
func IsStepComplete(stepID string, d *models.Draft) bool {
	pred, ok := predicates[stepID]
	if !ok {
		return false
	}
	return pred(d)
}

// Machine orders the step sequence for one flow and constrains navigation.
// Position is derived from the draft's CurrentStep on construction, so the
// machine itself carries no state that can go stale.
type Machine struct {
	steps []Step
	pos   int
}

// NewMachine builds a machine for the draft's flow, positioned at the
// draft's current step (first step when unset).
func NewMachine(d *models.Draft) *Machine {
	m := &Machine{steps: Steps(d.Flow)}
	if d.CurrentStep == "" {
		return m
	}
	for i, s := range m.steps {
		if s.ID == d.CurrentStep {
			m.pos = i
			break
		}
	}
	return m
}

// Current returns the current step.
func (m *Machine) Current() Step {
	return m.steps[m.pos]
}

// IsTerminal reports whether the machine sits on the last step.
func (m *Machine) IsTerminal() bool {
	return m.pos == len(m.steps)-1
}

// CanGoNext reports whether forward navigation is permitted: the current
// step must be optional or complete, and must not be the last step.
func (m *Machine) CanGoNext(d *models.Draft) bool {
	if m.IsTerminal() {
		return false
	}
	cur := m.steps[m.pos]
	return !cur.Required || IsStepComplete(cur.ID, d)
}

// GoNext advances exactly one step.
func (m *Machine) GoNext(d *models.Draft) (Step, error) {
	if m.IsTerminal() {
		return m.Current(), ErrAtTerminal
	}
	if !m.CanGoNext(d) {
		return m.Current(), fmt.Errorf("%w: complete %q first", ErrStepBlocked, m.Current().ID)
	}
	m.pos++
	return m.Current(), nil
}

// GoBack moves exactly one step backward. Backward navigation is always
// free; at the first step it is a no-op.
func (m *Machine) GoBack() Step {
	if m.pos > 0 {
		m.pos--
	}
	return m.Current()
}

// GoToStep jumps directly to a step. Permitted only when the target is at
// or before the current position, already complete, or the immediate next
// step. Skipping ahead past incomplete required steps is not allowed.
func (m *Machine) GoToStep(stepID string, d *models.Draft) (Step, error) {
	target := -1
	for i, s := range m.steps {
		if s.ID == stepID {
			target = i
			break
		}
	}
	if target < 0 {
		return m.Current(), fmt.Errorf("%w: %q", ErrUnknownStep, stepID)
	}

	switch {
	case target <= m.pos:
	case IsStepComplete(stepID, d):
	case target == m.pos+1 && m.CanGoNext(d):
	default:
		return m.Current(), fmt.Errorf("%w: cannot jump to %q", ErrStepBlocked, stepID)
	}
	m.pos = target
	return m.Current(), nil
}

// StepState is a per-step progress snapshot for checklist rendering.
type StepState struct {
	Step
	Complete bool `json:"complete"`
	Current  bool `json:"current"`
}

// Progress reports completion of every step against the live draft.
func (m *Machine) Progress(d *models.Draft) []StepState {
	out := make([]StepState, len(m.steps))
	for i, s := range m.steps {
		out[i] = StepState{
			Step:     s,
			Complete: IsStepComplete(s.ID, d),
			Current:  i == m.pos,
		}
	}
	return out
}
