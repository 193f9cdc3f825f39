package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/brandforge/brandforge-golang/internal/compliance"
	"github.com/brandforge/brandforge-golang/internal/models"
	"github.com/brandforge/brandforge-golang/internal/publish"
	"github.com/brandforge/brandforge-golang/internal/store"
	"github.com/brandforge/brandforge-golang/internal/variant"
	"github.com/brandforge/brandforge-golang/internal/wizard"
	"github.com/gin-gonic/gin"
)

// --- Inputs ---

type StartWizardInput struct {
	Flow          string `json:"flow" binding:"omitempty,oneof=simple advanced"`
	ArchetypeCode string `json:"archetypeCode"`
}

type GoToStepInput struct {
	Step string `json:"step" binding:"required"`
}

type EnhanceInput struct {
	Keywords    []string `json:"keywords"`
	ExtraPrompt string   `json:"extraPrompt"`
	Model       string   `json:"model"`
}

// draftResponse is the standard draft payload: the aggregate plus the
// per-step progress snapshot recomputed against the live draft.
func draftResponse(d *models.Draft) gin.H {
	m := wizard.NewMachine(d)
	return gin.H{
		"draft":    d,
		"steps":    m.Progress(d),
		"terminal": m.IsTerminal(),
	}
}

// loadDraft fetches the draft with ownership enforced, writing the error
// response itself when it fails.
func (h *Handlers) loadDraft(c *gin.Context) (*models.Draft, models.Actor, bool) {
	actor := actorFromContext(c)
	d, err := h.Drafts.Get(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error loading draft"})
		}
		return nil, actor, false
	}
	return d, actor, true
}

// saveDraft persists a mutated draft, mapping store errors.
func (h *Handlers) saveDraft(c *gin.Context, d *models.Draft) bool {
	if err := h.Drafts.Update(c.Request.Context(), d); err != nil {
		if errors.Is(err, store.ErrStaleDraft) {
			c.JSON(http.StatusConflict, gin.H{"error": "Draft was modified concurrently; reload and retry"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
		}
		return false
	}
	return true
}

// StartWizard creates a fresh draft and enters the first step.
func (h *Handlers) StartWizard(c *gin.Context) {
	actor := actorFromContext(c)

	var input StartWizardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d := h.Reducer.NewDraft(actor.UserID, input.Flow)

	// Starting with a preselected product type is a convenience the list
	// page offers; it runs through the reducer like any other mutation.
	if input.ArchetypeCode != "" {
		var err error
		d, err = h.Reducer.Apply(d, wizard.Action{
			Type:          wizard.ActionSetArchetype,
			ArchetypeCode: input.ArchetypeCode,
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := h.Drafts.Insert(c.Request.Context(), &d); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create draft"})
		return
	}

	c.JSON(http.StatusCreated, draftResponse(&d))
}

// GetDraft returns one draft with step progress.
func (h *Handlers) GetDraft(c *gin.Context) {
	d, _, ok := h.loadDraft(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, draftResponse(d))
}

// GetMyDrafts lists the caller's drafts, optionally filtered by status.
func (h *Handlers) GetMyDrafts(c *gin.Context) {
	actor := actorFromContext(c)
	drafts, err := h.Drafts.ListByOwner(c.Request.Context(), actor.UserID, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if drafts == nil {
		drafts = []*models.Draft{}
	}
	c.JSON(http.StatusOK, gin.H{"drafts": drafts})
}

// ApplyAction runs one reducer action against the draft.
func (h *Handlers) ApplyAction(c *gin.Context) {
	d, _, ok := h.loadDraft(c)
	if !ok {
		return
	}

	var action wizard.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Reducer.Apply(*d, action)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, wizard.ErrDraftPublished):
			status = http.StatusConflict
		case errors.Is(err, variant.ErrInvalidMargin),
			errors.Is(err, variant.ErrTooManyDimensions),
			errors.Is(err, variant.ErrValueNotAllowed),
			errors.Is(err, variant.ErrUnknownDimension):
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if !h.saveDraft(c, &updated) {
		return
	}
	c.JSON(http.StatusOK, draftResponse(&updated))
}

// GoNext advances the wizard one step. On the terminal step there is no
// next; the client is pointed at the publish endpoint instead.
func (h *Handlers) GoNext(c *gin.Context) {
	d, _, ok := h.loadDraft(c)
	if !ok {
		return
	}

	m := wizard.NewMachine(d)
	next, err := m.GoNext(d)
	if err != nil {
		if errors.Is(err, wizard.ErrAtTerminal) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Already at the final step; use the publish endpoint to submit.",
			})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	d.CurrentStep = next.ID
	d.UpdatedAt = time.Now()
	if !h.saveDraft(c, d) {
		return
	}
	c.JSON(http.StatusOK, draftResponse(d))
}

// GoBack moves the wizard one step backward.
func (h *Handlers) GoBack(c *gin.Context) {
	d, _, ok := h.loadDraft(c)
	if !ok {
		return
	}

	m := wizard.NewMachine(d)
	d.CurrentStep = m.GoBack().ID
	d.UpdatedAt = time.Now()
	if !h.saveDraft(c, d) {
		return
	}
	c.JSON(http.StatusOK, draftResponse(d))
}

// GoToStep jumps to a named step, subject to the navigation rules.
func (h *Handlers) GoToStep(c *gin.Context) {
	d, _, ok := h.loadDraft(c)
	if !ok {
		return
	}

	var input GoToStepInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m := wizard.NewMachine(d)
	target, err := m.GoToStep(input.Step, d)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, wizard.ErrUnknownStep) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	d.CurrentStep = target.ID
	d.UpdatedAt = time.Now()
	if !h.saveDraft(c, d) {
		return
	}
	c.JSON(http.StatusOK, draftResponse(d))
}

// ValidateDraft runs the full compliance checklist. A clean run stamps the
// draft as validated so the review step reads complete.
func (h *Handlers) ValidateDraft(c *gin.Context) {
	d, actor, ok := h.loadDraft(c)
	if !ok {
		return
	}

	items := h.Validator.Validate(d, actor)
	allPassed := compliance.AllPassed(items)

	if allPassed && !d.IsPublished() {
		updated, err := h.Reducer.Apply(*d, wizard.Action{Type: wizard.ActionMarkValidated})
		if err == nil {
			if !h.saveDraft(c, &updated) {
				return
			}
			d = &updated
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"items":     items,
		"allPassed": allPassed,
		"draft":     d,
	})
}

// PublishDraft validates, then hands the draft to the publish gate. Owners
// may force-publish past failures; editors may not.
func (h *Handlers) PublishDraft(c *gin.Context) {
	d, actor, ok := h.loadDraft(c)
	if !ok {
		return
	}

	items := h.Validator.Validate(d, actor)

	publishedID, err := h.Gate.Publish(c.Request.Context(), d, items, actor)
	if err != nil {
		switch {
		case errors.Is(err, publish.ErrValidationBlocked):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Compliance failures block publishing",
				"items": items,
			})
		case errors.Is(err, publish.ErrAlreadyPublished):
			c.JSON(http.StatusConflict, gin.H{"error": "Draft is already published"})
		default:
			// External failure: the draft is exactly as it was before.
			log.Printf("Publish failed for draft %s: %v", d.ID, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Catalog service unavailable, draft unchanged"})
		}
		return
	}

	if !h.saveDraft(c, d) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Product published",
		"publishedId": publishedID,
		"draft":       d,
	})
}

// ResetDraft discards all progress except the brand identity carryover.
func (h *Handlers) ResetDraft(c *gin.Context) {
	d, _, ok := h.loadDraft(c)
	if !ok {
		return
	}

	updated, err := h.Reducer.Apply(*d, wizard.Action{Type: wizard.ActionReset})
	if err != nil {
		if errors.Is(err, wizard.ErrDraftPublished) {
			c.JSON(http.StatusConflict, gin.H{"error": "Published drafts cannot be reset"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.saveDraft(c, &updated) {
		return
	}
	c.JSON(http.StatusOK, draftResponse(&updated))
}

// DeleteDraft discards a draft entirely.
func (h *Handlers) DeleteDraft(c *gin.Context) {
	actor := actorFromContext(c)
	err := h.Drafts.Delete(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete draft"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draft discarded"})
}

// GetWizardStats returns per-status draft counts for the caller.
func (h *Handlers) GetWizardStats(c *gin.Context) {
	actor := actorFromContext(c)
	counts, err := h.Drafts.CountByStatus(c.Request.Context(), actor.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}
