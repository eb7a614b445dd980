// Package notes provides the PostgreSQL-backed repository for note records.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rjrato/Write-it-V2-Backend/internal/common"
	"github.com/rjrato/Write-it-V2-Backend/internal/dbx"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/models"
)

// PostgresRepository implements note storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {

	query :=
		`INSERT INTO notes (user_id, title, content)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, note.UserID, note.Title, note.Content).Scan(&note.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	query :=
		`SELECT id, user_id, title, content FROM notes
		 WHERE id = $1
		 `

	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&note.ID, &note.UserID, &note.Title, &note.Content)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	query :=
		`DELETE FROM notes
		 WHERE id = $1
		 `

	// No rows deleted is fine: the operation is idempotent.
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.Note, error) {

	result := []*models.Note{}
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(
		`SELECT id, user_id, title, content FROM notes WHERE id IN (%s)`,
		strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	found := make(map[string]*models.Note, len(ids))
	for rows.Next() {
		var item models.Note
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Content); err != nil {
			return nil, err
		}
		found[item.ID] = &item
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Preserve the caller's order; ids whose rows are gone are dropped.
	for _, id := range ids {
		if note, ok := found[id]; ok {
			result = append(result, note)
		}
	}
	return result, nil
}
