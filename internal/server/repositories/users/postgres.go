// Package users provides the PostgreSQL-backed repository for user accounts
// and their persisted note sets.
package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rjrato/Write-it-V2-Backend/internal/common"
	"github.com/rjrato/Write-it-V2-Backend/internal/dbx"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/models"
)

// PostgresRepository implements user storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	noteIDs, err := marshalNoteIDs(user.NoteIDs)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO users (first_name, last_name, email, password_hash, note_ids)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err = r.db.QueryRowContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.PasswordHash, noteIDs).Scan(&user.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, first_name, last_name, email, password_hash, note_ids FROM users
		 WHERE email = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, first_name, last_name, email, password_hash, note_ids FROM users
		 WHERE id = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, first_name, last_name, email, password_hash, note_ids FROM users
		 WHERE id = $1
		 FOR UPDATE
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) SaveNoteIDs(ctx context.Context, id string, noteIDs []string) error {

	encoded, err := marshalNoteIDs(noteIDs)
	if err != nil {
		return err
	}

	query :=
		`UPDATE users SET note_ids = $2
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, encoded)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var noteIDs []byte

	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash, &noteIDs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(noteIDs, &user.NoteIDs); err != nil {
		return nil, fmt.Errorf("decode note_ids: %w", err)
	}

	return user, nil
}

// marshalNoteIDs encodes the note set for the jsonb column. A nil set is
// stored as an empty array so reads never see SQL NULL.
func marshalNoteIDs(noteIDs []string) ([]byte, error) {
	if noteIDs == nil {
		noteIDs = []string{}
	}
	encoded, err := json.Marshal(noteIDs)
	if err != nil {
		return nil, fmt.Errorf("encode note_ids: %w", err)
	}
	return encoded, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (code 23505).
func isUniqueViolation(err error) bool {
	var pge *pgconn.PgError
	return errors.As(err, &pge) && pge.Code == "23505"
}
