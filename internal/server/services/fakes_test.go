package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/rjrato/Write-it-V2-Backend/internal/common"
	"github.com/rjrato/Write-it-V2-Backend/internal/dbx"
	"github.com/rjrato/Write-it-V2-Backend/internal/logging"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/config"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/models"
	notesrepo "github.com/rjrato/Write-it-V2-Backend/internal/server/repositories/notes"
	usersrepo "github.com/rjrato/Write-it-V2-Backend/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		StorageTimeout: time.Second,
		BcryptCost:     4, // bcrypt.MinCost, keeps tests fast
	}
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeUsersRepo keeps users in memory and ignores its DB handle, so services
// can run their transactions against a sqlmock connection.
type fakeUsersRepo struct {
	users map[string]*models.User // by id

	createErr error
	saveErr   error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]*models.User{}}
}

func (f *fakeUsersRepo) addUser(email string) *models.User {
	u := &models.User{ID: uuid.NewString(), Email: email, NoteIDs: []string{}}
	f.users[u.ID] = u
	return u
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, common.ErrorDuplicateEmail
		}
	}
	user.ID = uuid.NewString()
	if user.NoteIDs == nil {
		user.NoteIDs = []string{}
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByIDForUpdate(ctx context.Context, id string) (*models.User, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeUsersRepo) SaveNoteIDs(ctx context.Context, id string, noteIDs []string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	u, ok := f.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.NoteIDs = noteIDs
	return nil
}

type fakeNotesRepo struct {
	notes map[string]*models.Note // by id

	createErr error
}

func newFakeNotesRepo() *fakeNotesRepo {
	return &fakeNotesRepo{notes: map[string]*models.Note{}}
}

func (f *fakeNotesRepo) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	note.ID = uuid.NewString()
	f.notes[note.ID] = note
	return note, nil
}

func (f *fakeNotesRepo) GetByID(ctx context.Context, id string) (*models.Note, error) {
	if n, ok := f.notes[id]; ok {
		return n, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeNotesRepo) DeleteByID(ctx context.Context, id string) error {
	delete(f.notes, id)
	return nil
}

func (f *fakeNotesRepo) ListByIDs(ctx context.Context, ids []string) ([]*models.Note, error) {
	result := []*models.Note{}
	for _, id := range ids {
		if n, ok := f.notes[id]; ok {
			result = append(result, n)
		}
	}
	return result, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	n *fakeNotesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), n: newFakeNotesRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notesrepo.Repository      { return m.n }
