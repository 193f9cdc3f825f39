package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/brandforge/brandforge-golang/internal/ai"
	"github.com/brandforge/brandforge-golang/internal/wizard"
	"github.com/gin-gonic/gin"
)

// EnhanceDraft asks the generative collaborator for listing copy and applies
// it to the draft. The call is awaited to completion; if the draft was reset
// while the call was in flight, its generation moved and the result is
// discarded rather than applied to the wrong session.
func (h *Handlers) EnhanceDraft(c *gin.Context) {
	d, actor, ok := h.loadDraft(c)
	if !ok {
		return
	}
	if d.IsPublished() {
		c.JSON(http.StatusConflict, gin.H{"error": "Published drafts cannot be modified"})
		return
	}

	var input EnhanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Capture the generation the call is issued against.
	generation := d.Generation

	payload := map[string]interface{}{
		"mascotId":    d.MascotID,
		"material":    d.Material,
		"keywords":    input.Keywords,
		"extraPrompt": input.ExtraPrompt,
		"model":       input.Model,
	}
	if arch, ok := h.Catalog.ArchetypeByCode(d.ArchetypeCode); ok {
		payload["archetypeName"] = arch.Name
	}
	if identity, ok := h.Catalog.IdentityByCode(d.IdentityCode); ok {
		payload["identityName"] = identity.Name
	}

	result, err := h.AIService.Invoke(c.Request.Context(), ai.OpGenerateCopy, payload)
	if err != nil {
		// A failed external call leaves the draft exactly as it was.
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI service unavailable: " + err.Error()})
		return
	}

	// Re-read: the draft may have been reset or mutated while we waited.
	d, err2 := h.Drafts.Get(c.Request.Context(), c.Param("id"), actor)
	if err2 != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft no longer exists"})
		return
	}

	// Only the fields the operation populated land on the draft.
	content := wizard.AIContent{Generation: generation}
	raw, _ := json.Marshal(result)
	if err := json.Unmarshal(raw, &content); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI service returned malformed content"})
		return
	}

	updated, err := h.Reducer.Apply(*d, wizard.Action{
		Type:      wizard.ActionApplyAIContent,
		AIContent: &content,
	})
	if err != nil {
		if errors.Is(err, wizard.ErrStaleGeneration) {
			log.Printf("Discarding stale AI result for draft %s (generation %d)", d.ID, generation)
			c.JSON(http.StatusConflict, gin.H{"error": "Draft was reset while generating; result discarded"})
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
