package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/orgscope/internal/db"
	"github.com/alexanderramin/orgscope/internal/domain"
)

// SQLiteViewStateRepo implements ViewStateRepo using a SQLite database.
type SQLiteViewStateRepo struct {
	db db.DBTX
}

// NewSQLiteViewStateRepo creates a new SQLiteViewStateRepo.
func NewSQLiteViewStateRepo(conn db.DBTX) *SQLiteViewStateRepo {
	return &SQLiteViewStateRepo{db: conn}
}

func (r *SQLiteViewStateRepo) Get(ctx context.Context, id string) (*domain.ViewState, error) {
	query := `SELECT id, expanded_ids, visible_layers, zoom, highlighted_id, updated_at
		FROM view_state WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var v domain.ViewState
	var expanded, layers, updatedAt string
	err := row.Scan(&v.ID, &expanded, &layers, &v.Zoom, &v.HighlightedID, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("view state %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning view state: %w", err)
	}

	if v.ExpandedIDs, err = decodeList[string]("expanded_ids", expanded); err != nil {
		return nil, err
	}
	if v.VisibleLayers, err = decodeList[int]("visible_layers", layers); err != nil {
		return nil, err
	}
	if v.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *SQLiteViewStateRepo) Upsert(ctx context.Context, v *domain.ViewState) error {
	expanded, err := encodeList(v.ExpandedIDs)
	if err != nil {
		return fmt.Errorf("encoding expanded ids: %w", err)
	}
	layers, err := encodeList(v.VisibleLayers)
	if err != nil {
		return fmt.Errorf("encoding visible layers: %w", err)
	}
	if v.UpdatedAt.IsZero() {
		v.UpdatedAt = time.Now().UTC()
	}

	query := `INSERT OR REPLACE INTO view_state (id, expanded_ids, visible_layers, zoom, highlighted_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		v.ID,
		expanded,
		layers,
		v.Zoom,
		v.HighlightedID,
		formatTimestamp(v.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting view state: %w", err)
	}
	return nil
}
