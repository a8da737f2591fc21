package recording

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"voicecrm-backend/internal/alerts"

	"github.com/google/uuid"
)

// fakeRepo is an in-memory Repo with query counting.
type fakeRepo struct {
	byID       map[uuid.UUID]Recording
	setQueries int
	reverse    bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[uuid.UUID]Recording)}
}

func (f *fakeRepo) Create(ctx context.Context, rec *Recording) error {
	f.byID[rec.ID] = *rec
	return nil
}

func (f *fakeRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Recording, error) {
	rec, ok := f.byID[id]
	if !ok || rec.UserID != userID {
		return nil, errors.New("not found")
	}
	return &rec, nil
}

func (f *fakeRepo) GetByIDsForUser(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]Recording, error) {
	f.setQueries++
	var out []Recording
	for _, id := range ids {
		if rec, ok := f.byID[id]; ok && rec.UserID == userID {
			out = append(out, rec)
		}
	}
	if f.reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (f *fakeRepo) GetOwners(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]uuid.UUID, error) {
	owners := make(map[uuid.UUID]uuid.UUID)
	for _, id := range ids {
		if rec, ok := f.byID[id]; ok {
			owners[id] = rec.UserID
		}
	}
	return owners, nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Recording, error) {
	var out []Recording
	for _, rec := range f.byID {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateConverted(ctx context.Context, id uuid.UUID, path, format string, size int64) error {
	rec, ok := f.byID[id]
	if !ok {
		return errors.New("not found")
	}
	rec.FilePath = path
	rec.Format = format
	rec.FileSize = size
	f.byID[id] = rec
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func addRecording(t *testing.T, repo *fakeRepo, owner uuid.UUID, dir, name string, withFile bool) uuid.UUID {
	t.Helper()
	id := uuid.New()
	path := filepath.Join(dir, name)
	if withFile {
		mustWriteFile(t, path, "audio")
	}
	repo.byID[id] = Recording{
		ID:       id,
		UserID:   owner,
		FilePath: path,
		Status:   StatusUploaded,
	}
	return id
}

func newTestService(repo Repo, dir string) Service {
	return NewService(repo, dir, alerts.NewNoop())
}

func TestResolveDualRolesFollowIDsNotRowOrder(t *testing.T) {
	dir := t.TempDir()
	repo := newFakeRepo()
	user := uuid.New()

	relID := addRecording(t, repo, user, dir, "rel.mp3", true)
	contID := addRecording(t, repo, user, dir, "cont.mp3", true)

	svc := newTestService(repo, dir)

	for _, reversed := range []bool{false, true} {
		repo.reverse = reversed

		pair, err := svc.ResolveDual(context.Background(), relID.String(), contID.String(), user)
		if err != nil {
			t.Fatalf("reversed=%v: ResolveDual() error = %v", reversed, err)
		}
		if pair.RelationshipPath != filepath.Join(dir, "rel.mp3") {
			t.Fatalf("reversed=%v: relationship path = %q", reversed, pair.RelationshipPath)
		}
		if pair.ContentPath != filepath.Join(dir, "cont.mp3") {
			t.Fatalf("reversed=%v: content path = %q", reversed, pair.ContentPath)
		}
	}
}

func TestResolveDualDuplicateInputRejectedBeforeQuery(t *testing.T) {
	dir := t.TempDir()
	repo := newFakeRepo()
	user := uuid.New()
	id := addRecording(t, repo, user, dir, "a.mp3", true)

	svc := newTestService(repo, dir)

	_, err := svc.ResolveDual(context.Background(), id.String(), id.String(), user)
	var dup *DuplicateInputError
	if !errors.As(err, &dup) {
		t.Fatalf("error = %v, want DuplicateInputError", err)
	}
	if repo.setQueries != 0 {
		t.Fatalf("store queried %d times for duplicate input, want 0", repo.setQueries)
	}
}

func TestResolveDualInvalidID(t *testing.T) {
	svc := newTestService(newFakeRepo(), t.TempDir())

	_, err := svc.ResolveDual(context.Background(), "not-a-uuid", uuid.NewString(), uuid.New())
	var invalid *InvalidIDError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want InvalidIDError", err)
	}
}

func TestResolveDualNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), t.TempDir())

	_, err := svc.ResolveDual(context.Background(), uuid.NewString(), uuid.NewString(), uuid.New())
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}

func TestResolveDualForeignOwner(t *testing.T) {
	dir := t.TempDir()
	repo := newFakeRepo()
	owner := uuid.New()
	caller := uuid.New()

	relID := addRecording(t, repo, owner, dir, "rel.mp3", true)
	contID := addRecording(t, repo, owner, dir, "cont.mp3", true)

	svc := newTestService(repo, dir)

	_, err := svc.ResolveDual(context.Background(), relID.String(), contID.String(), caller)
	var ownership *OwnershipError
	if !errors.As(err, &ownership) {
		t.Fatalf("error = %v, want OwnershipError", err)
	}
	if len(ownership.Owners) != 1 || ownership.Owners[0] != owner.String() {
		t.Fatalf("owners = %v, want [%s]", ownership.Owners, owner)
	}
}

func TestResolveDualIncompleteNamesMissingRole(t *testing.T) {
	dir := t.TempDir()
	repo := newFakeRepo()
	user := uuid.New()

	relID := addRecording(t, repo, user, dir, "rel.mp3", true)
	contID := uuid.New() // never stored

	svc := newTestService(repo, dir)

	_, err := svc.ResolveDual(context.Background(), relID.String(), contID.String(), user)
	var partial *IncompleteResolutionError
	if !errors.As(err, &partial) {
		t.Fatalf("error = %v, want IncompleteResolutionError", err)
	}
	if partial.MissingRole != RoleContent {
		t.Fatalf("missing role = %q, want %q", partial.MissingRole, RoleContent)
	}
	if partial.MissingID != contID.String() {
		t.Fatalf("missing id = %q, want %q", partial.MissingID, contID)
	}
}

func TestResolveDualMissingFileNamesRecording(t *testing.T) {
	dir := t.TempDir()
	repo := newFakeRepo()
	user := uuid.New()

	relID := addRecording(t, repo, user, dir, "rel.mp3", true)
	contID := addRecording(t, repo, user, dir, "cont.mp3", false) // row only, no file

	svc := newTestService(repo, dir)

	_, err := svc.ResolveDual(context.Background(), relID.String(), contID.String(), user)
	var missing *MissingFileError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingFileError", err)
	}
	if missing.Role != RoleContent {
		t.Fatalf("role = %q, want %q", missing.Role, RoleContent)
	}
	if missing.RecordingID != contID.String() {
		t.Fatalf("recording id = %q, want %q", missing.RecordingID, contID)
	}
}
