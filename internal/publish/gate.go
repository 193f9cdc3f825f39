package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brandforge/brandforge-golang/internal/compliance"
	"github.com/brandforge/brandforge-golang/internal/models"
)

var (
	// ErrValidationBlocked is returned when compliance failures exist and
	// the actor lacks the owner override capability.
	ErrValidationBlocked = errors.New("validation failures block publishing")

	// ErrAlreadyPublished is returned for a second publish attempt.
	ErrAlreadyPublished = errors.New("draft already published")
)

// MaterializedProduct is the fully expanded payload sent to the external
// catalog service: everything the listing needs, nothing wizard-internal.
type MaterializedProduct struct {
	Title         string                  `json:"title"`
	Description   string                  `json:"description"`
	ArchetypeCode string                  `json:"archetypeCode"`
	IdentityCode  string                  `json:"identityCode"`
	Tags          []string                `json:"tags,omitempty"`
	Images        []string                `json:"images,omitempty"`
	SEOTitle      string                  `json:"seoTitle,omitempty"`
	SEODesc       string                  `json:"seoDescription,omitempty"`
	CollectionIDs []int64                 `json:"collectionIds,omitempty"`
	Metafields    map[string]string       `json:"metafields,omitempty"`
	Variants      []models.Variant        `json:"variants"`
	Compliance    []models.ValidationItem `json:"compliance"`
}

// CatalogService is the narrow interface to the external catalog
// collaborator. The production implementation is an HTTP client; tests use
// a fake.
type CatalogService interface {
	CreateProduct(ctx context.Context, p MaterializedProduct) (string, error)
}

// Gate decides whether a draft may leave the wizard. On success it calls the
// catalog service exactly once and flips the draft to its terminal state.
type Gate struct {
	Catalog CatalogService
}

// Publish submits the draft to the external catalog.
//   - fails with ErrValidationBlocked when failures exist and the actor is
//     not an owner (owner force-publish is the one role-gated behavior),
//   - calls the catalog service exactly once per successful publish and not
//     at all on a blocked or failed attempt,
//   - leaves the draft untouched on any failure path.
func (g *Gate) Publish(ctx context.Context, d *models.Draft, items []models.ValidationItem, actor models.Actor) (string, error) {
	if d.IsPublished() {
		return "", ErrAlreadyPublished
	}
	if !compliance.AllPassed(items) && !actor.IsOwner {
		return "", ErrValidationBlocked
	}

	id, err := g.Catalog.CreateProduct(ctx, Materialize(d, items))
	if err != nil {
		return "", fmt.Errorf("catalog service: %w", err)
	}

	d.Status = models.DraftStatusPublished
	d.UpdatedAt = time.Now()
	return id, nil
}

// Materialize builds the catalog payload from a draft. Pure; shared with
// tests and the preview endpoint.
func Materialize(d *models.Draft, items []models.ValidationItem) MaterializedProduct {
	return MaterializedProduct{
		Title:         d.Title,
		Description:   d.Description,
		ArchetypeCode: d.ArchetypeCode,
		IdentityCode:  d.IdentityCode,
		Tags:          d.Tags,
		Images:        d.Images,
		SEOTitle:      d.SEOTitle,
		SEODesc:       d.SEODescription,
		CollectionIDs: d.CollectionIDs,
		Metafields:    d.Metafields,
		Variants:      d.Variants,
		Compliance:    items,
	}
}
