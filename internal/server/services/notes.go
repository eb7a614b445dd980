package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rjrato/Write-it-V2-Backend/internal/common"
	"github.com/rjrato/Write-it-V2-Backend/internal/dbx"
	"github.com/rjrato/Write-it-V2-Backend/internal/logging"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/cache"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/config"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/models"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/repositories/repomanager"
)

// NoteService is the ownership coordinator: the only writer allowed to touch
// both the notes table and a user's note set. Every mutation runs in a single
// transaction and locks the owner row first, so concurrent mutations for one
// user serialize instead of losing updates, and the two sides of the
// relationship cannot diverge.
type NoteService struct {
	db             *sql.DB
	repos          repomanager.RepositoryManager
	cache          *cache.NoteCache
	sf             singleflight.Group
	logger         logging.Logger
	storageTimeout time.Duration
}

// NewNoteService creates a NoteService. If c is nil, caching is disabled.
func NewNoteService(db *sql.DB, m repomanager.RepositoryManager, c *cache.NoteCache, cfg *config.Config, logger logging.Logger) *NoteService {
	return &NoteService{
		db:             db,
		repos:          m,
		cache:          c,
		logger:         logger.With("module", "notes_service"),
		storageTimeout: cfg.StorageTimeout,
	}
}

// AddNote creates a note owned by userID and appends it to the user's note
// set. The owner is validated (and locked) before the note is created, so a
// missing user can never leave an orphaned note behind.
func (s *NoteService) AddNote(ctx context.Context, userID, title, content string) (*models.Note, error) {

	ctx, cancel := context.WithTimeout(ctx, s.storageTimeout)
	defer cancel()

	var note *models.Note

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		usersRepo := s.repos.Users(tx)
		notesRepo := s.repos.Notes(tx)

		user, err := usersRepo.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		note, err = notesRepo.Create(ctx, &models.Note{UserID: userID, Title: title, Content: content})
		if err != nil {
			return err
		}

		return usersRepo.SaveNoteIDs(ctx, userID, append(user.NoteIDs, note.ID))
	})
	if err != nil {
		return nil, mapStorageErr(ctx, s.logger, "add note", err)
	}

	s.invalidateCache(ctx, userID)
	return note, nil
}

// DeleteNote removes the note and prunes its id from the owner's note set.
// Only the owning user may delete a note; a mismatch fails with
// ErrorUnauthorized before any mutation. Deleting an id that no longer
// exists is a success (the id is still pruned from the set).
func (s *NoteService) DeleteNote(ctx context.Context, userID, noteID string) error {

	ctx, cancel := context.WithTimeout(ctx, s.storageTimeout)
	defer cancel()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		usersRepo := s.repos.Users(tx)
		notesRepo := s.repos.Notes(tx)

		user, err := usersRepo.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		note, err := notesRepo.GetByID(ctx, noteID)
		switch {
		case err == nil:
			if note.UserID != userID {
				return common.ErrorUnauthorized
			}
			if err := notesRepo.DeleteByID(ctx, noteID); err != nil {
				return err
			}
		case errors.Is(err, common.ErrorNotFound):
			// Already gone; still prune the dangling id below.
		default:
			return err
		}

		kept := make([]string, 0, len(user.NoteIDs))
		for _, id := range user.NoteIDs {
			if id != noteID {
				kept = append(kept, id)
			}
		}

		return usersRepo.SaveNoteIDs(ctx, userID, kept)
	})
	if err != nil {
		return mapStorageErr(ctx, s.logger, "delete note", err)
	}

	s.invalidateCache(ctx, userID)
	return nil
}

// ListNotes returns the user's notes in note-set (insertion) order. Note ids
// whose rows no longer exist are dropped rather than failing the call. An
// empty set returns an empty list, never an error.
func (s *NoteService) ListNotes(ctx context.Context, userID string) ([]*models.Note, error) {

	ctx, cancel := context.WithTimeout(ctx, s.storageTimeout)
	defer cancel()

	if s.cache == nil {
		list, err := s.loadNotes(ctx, userID)
		if err != nil {
			return nil, mapStorageErr(ctx, s.logger, "list notes", err)
		}
		return list, nil
	}

	v, err, _ := s.sf.Do(userID, func() (any, error) {
		if list, err := s.cache.Get(ctx, userID); err == nil && list != nil {
			return list, nil
		}
		list, err := s.loadNotes(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, userID, list); err != nil {
			s.logger.Warn(ctx, "note cache set failed", "error", err.Error())
		}
		return list, nil
	})
	if err != nil {
		return nil, mapStorageErr(ctx, s.logger, "list notes", err)
	}
	return v.([]*models.Note), nil
}

func (s *NoteService) loadNotes(ctx context.Context, userID string) ([]*models.Note, error) {
	user, err := s.repos.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repos.Notes(s.db).ListByIDs(ctx, user.NoteIDs)
}

func (s *NoteService) invalidateCache(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn(ctx, "note cache invalidation failed", "user_id", userID, "error", err.Error())
	}
}
