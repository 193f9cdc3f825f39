package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/brandforge/brandforge-golang/internal/models"
)

var (
	// ErrNotFound is returned when no draft matches the id (and owner).
	ErrNotFound = errors.New("draft not found")

	// ErrStaleDraft is returned when an update carries an older generation
	// than the stored row, meaning another mutation landed first.
	ErrStaleDraft = errors.New("draft was modified concurrently")
)

// DraftStore persists wizard drafts in MySQL. The aggregate is stored as a
// JSON document column; status, owner, and step are mirrored into columns
// for filtering.
type DraftStore struct {
	DB *sql.DB
}

// Insert saves a freshly started draft.
func (s *DraftStore) Insert(ctx context.Context, d *models.Draft) error {
	doc, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	query := `
		INSERT INTO drafts
		(id, owner_id, status, flow, current_step, generation, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.DB.ExecContext(ctx, query,
		d.ID, d.OwnerID, d.Status, d.Flow, d.CurrentStep, d.Generation,
		string(doc), d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert draft: %w", err)
	}
	return nil
}

// Get loads a draft, checking ownership. Owners may read any draft; editors
// only their own.
func (s *DraftStore) Get(ctx context.Context, id string, actor models.Actor) (*models.Draft, error) {
	query := `SELECT owner_id, document FROM drafts WHERE id = ?`

	var ownerID int64
	var doc []byte
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&ownerID, &doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query draft: %w", err)
	}

	if !actor.IsOwner && ownerID != actor.UserID {
		// Treated as not found so the API does not leak draft existence.
		return nil, ErrNotFound
	}

	var d models.Draft
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &d, nil
}

// Update persists a mutated draft. The generation guard rejects writes that
// lost a race with a reset.
func (s *DraftStore) Update(ctx context.Context, d *models.Draft) error {
	doc, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	query := `
		UPDATE drafts
		SET status = ?, current_step = ?, generation = ?, document = ?, updated_at = ?
		WHERE id = ? AND generation <= ?`

	res, err := s.DB.ExecContext(ctx, query,
		d.Status, d.CurrentStep, d.Generation, string(doc), d.UpdatedAt,
		d.ID, d.Generation,
	)
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	if affected == 0 {
		// Either the row is gone or a newer generation already landed.
		var exists int
		if scanErr := s.DB.QueryRowContext(ctx, "SELECT 1 FROM drafts WHERE id = ?", d.ID).Scan(&exists); scanErr != nil {
			return ErrNotFound
		}
		return ErrStaleDraft
	}
	return nil
}

// Delete discards a draft.
func (s *DraftStore) Delete(ctx context.Context, id string, actor models.Actor) error {
	query := "DELETE FROM drafts WHERE id = ?"
	args := []interface{}{id}
	if !actor.IsOwner {
		query += " AND owner_id = ?"
		args = append(args, actor.UserID)
	}

	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByOwner returns an owner's drafts, newest first, optionally filtered
// by status.
func (s *DraftStore) ListByOwner(ctx context.Context, ownerID int64, statusFilter string) ([]*models.Draft, error) {
	query := `SELECT document FROM drafts WHERE owner_id = ?`
	args := []interface{}{ownerID}
	if statusFilter != "" {
		query += " AND status = ?"
		args = append(args, statusFilter)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*models.Draft
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan draft row: %w", err)
		}
		var d models.Draft
		if err := json.Unmarshal(doc, &d); err != nil {
			return nil, fmt.Errorf("decode draft: %w", err)
		}
		drafts = append(drafts, &d)
	}
	return drafts, rows.Err()
}

// CountByStatus returns draft counts per status for an owner's dashboard.
func (s *DraftStore) CountByStatus(ctx context.Context, ownerID int64) (map[string]int, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM drafts WHERE owner_id = ? GROUP BY status", ownerID)
	if err != nil {
		return nil, fmt.Errorf("count drafts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count row: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// ExpireAbandoned deletes in_progress drafts untouched for longer than
// maxAge. Run from the background worker.
func (s *DraftStore) ExpireAbandoned(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	res, err := s.DB.ExecContext(ctx,
		"DELETE FROM drafts WHERE status = ? AND updated_at < ?",
		models.DraftStatusInProgress, cutoff)
	if err != nil {
		return 0, fmt.Errorf("expire drafts: %w", err)
	}
	return res.RowsAffected()
}
