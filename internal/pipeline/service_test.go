package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"voicecrm-backend/internal/ai"
	"voicecrm-backend/internal/alerts"
	"voicecrm-backend/internal/convert"
	"voicecrm-backend/internal/recording"

	"github.com/google/uuid"
)

// --- fakes -----------------------------------------------------------------

type fakeRecordingRepo struct {
	byID map[uuid.UUID]recording.Recording
}

func (f *fakeRecordingRepo) Create(ctx context.Context, rec *recording.Recording) error {
	f.byID[rec.ID] = *rec
	return nil
}

func (f *fakeRecordingRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*recording.Recording, error) {
	rec, ok := f.byID[id]
	if !ok || rec.UserID != userID {
		return nil, errors.New("not found")
	}
	return &rec, nil
}

func (f *fakeRecordingRepo) GetByIDsForUser(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]recording.Recording, error) {
	var out []recording.Recording
	for _, id := range ids {
		if rec, ok := f.byID[id]; ok && rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRecordingRepo) GetOwners(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]uuid.UUID, error) {
	owners := make(map[uuid.UUID]uuid.UUID)
	for _, id := range ids {
		if rec, ok := f.byID[id]; ok {
			owners[id] = rec.UserID
		}
	}
	return owners, nil
}

func (f *fakeRecordingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]recording.Recording, error) {
	return nil, nil
}

func (f *fakeRecordingRepo) UpdateConverted(ctx context.Context, id uuid.UUID, path, format string, size int64) error {
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

func (f *fakeRecordingRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

type countingRunner struct {
	mu    sync.Mutex
	calls int
}

func (r *countingRunner) Run(ctx context.Context, name string, args ...string) error {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	return os.WriteFile(args[len(args)-1], []byte("mp3"), 0o644)
}

func (r *countingRunner) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type fakeGenAI struct {
	mu       sync.Mutex
	uploads  int
	stuck    bool
	genText  string
	genErr   error
	genCalls int
}

func (f *fakeGenAI) UploadFile(ctx context.Context, path string) (*ai.UploadedFile, error) {
	f.mu.Lock()
	f.uploads++
	f.mu.Unlock()
	state := ai.FileStateActive
	if f.stuck {
		state = ai.FileStateProcessing
	}
	return &ai.UploadedFile{Name: path, URI: "uri://" + path, MIMEType: "audio/mp3", State: state}, nil
}

func (f *fakeGenAI) GetFile(ctx context.Context, name string) (*ai.UploadedFile, error) {
	state := ai.FileStateActive
	if f.stuck {
		state = ai.FileStateProcessing
	}
	return &ai.UploadedFile{Name: name, State: state}, nil
}

func (f *fakeGenAI) GenerateFromFiles(ctx context.Context, prompt string, files []*ai.UploadedFile) (string, error) {
	f.mu.Lock()
	f.genCalls++
	f.mu.Unlock()
	if f.genErr != nil {
		return "", f.genErr
	}
	if f.genText == "" {
		return "ANALYSIS:\n...\n\nEMAIL:\nSubject: follow-up", nil
	}
	return f.genText, nil
}

func (f *fakeGenAI) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploads
}

// --- harness ---------------------------------------------------------------

type harness struct {
	svc    Service
	repo   *fakeRecordingRepo
	runner *countingRunner
	genai  *fakeGenAI
	user   uuid.UUID
	dir    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	repo := &fakeRecordingRepo{byID: make(map[uuid.UUID]recording.Recording)}
	runner := &countingRunner{}
	client := &fakeGenAI{}

	recordingSvc := recording.NewService(repo, dir, alerts.NewNoop())
	convertSvc := convert.NewService(runner, repo)
	synthSvc := ai.NewServiceWithPolling(client, 2*time.Millisecond, 50*time.Millisecond)

	return &harness{
		svc:    NewService(recordingSvc, convertSvc, synthSvc, alerts.NewNoop()),
		repo:   repo,
		runner: runner,
		genai:  client,
		user:   uuid.New(),
		dir:    dir,
	}
}

func (h *harness) addRecording(t *testing.T, owner uuid.UUID, name string, withFile bool) uuid.UUID {
	t.Helper()
	id := uuid.New()
	path := filepath.Join(h.dir, name)
	if withFile {
		if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	h.repo.byID[id] = recording.Recording{
		ID:       id,
		UserID:   owner,
		FilePath: path,
		Status:   recording.StatusUploaded,
	}
	return id
}

func (h *harness) request(relID, contID uuid.UUID) Request {
	return Request{
		RelationshipRecordingID: relID.String(),
		ContentRecordingID:      contID.String(),
		UserID:                  h.user,
		RecipientName:           "Alex Chen",
		RecipientEmail:          "alex@example.com",
		Relationship:            "professional",
	}
}

// --- scenarios -------------------------------------------------------------

func TestGenerateDualEmailHappyPathCanonicalInputs(t *testing.T) {
	h := newHarness(t)
	relID := h.addRecording(t, h.user, "rel.mp3", true)
	contID := h.addRecording(t, h.user, "cont.mp3", true)

	result, err := h.svc.GenerateDualEmail(context.Background(), h.request(relID, contID))
	if err != nil {
		t.Fatalf("GenerateDualEmail() error = %v", err)
	}
	if result.Email == "" {
		t.Fatalf("generated email is empty")
	}
	if result.ProcessingMethod != "direct_audio_to_gemini" {
		t.Fatalf("processing method = %q", result.ProcessingMethod)
	}
	if h.runner.callCount() != 0 {
		t.Fatalf("ffmpeg calls = %d for canonical inputs, want 0", h.runner.callCount())
	}
}

func TestGenerateDualEmailNormalizesBothInputs(t *testing.T) {
	h := newHarness(t)
	relID := h.addRecording(t, h.user, "rel.webm", true)
	contID := h.addRecording(t, h.user, "cont.wav", true)

	result, err := h.svc.GenerateDualEmail(context.Background(), h.request(relID, contID))
	if err != nil {
		t.Fatalf("GenerateDualEmail() error = %v", err)
	}
	if result.Email == "" {
		t.Fatalf("generated email is empty")
	}
	if h.runner.callCount() != 2 {
		t.Fatalf("ffmpeg calls = %d, want 2", h.runner.callCount())
	}
	// Conversion must be visible to future invocations.
	if got := h.repo.byID[relID].FilePath; filepath.Ext(got) != ".mp3" {
		t.Fatalf("relationship metadata not updated, path = %q", got)
	}
}

func TestGenerateDualEmailForeignOwnerFailsBeforeSideEffects(t *testing.T) {
	h := newHarness(t)
	stranger := uuid.New()
	relID := h.addRecording(t, h.user, "rel.webm", true)
	contID := h.addRecording(t, stranger, "cont.webm", true)

	_, err := h.svc.GenerateDualEmail(context.Background(), h.request(relID, contID))

	// One of the two resolves, so this surfaces as an incomplete resolution;
	// with both foreign it is an ownership failure.
	var partial *recording.IncompleteResolutionError
	if !errors.As(err, &partial) {
		t.Fatalf("error = %v, want IncompleteResolutionError", err)
	}
	h.assertNoSideEffects(t)

	relID2 := h.addRecording(t, stranger, "rel2.webm", true)
	contID2 := h.addRecording(t, stranger, "cont2.webm", true)

	_, err = h.svc.GenerateDualEmail(context.Background(), h.request(relID2, contID2))
	var ownership *recording.OwnershipError
	if !errors.As(err, &ownership) {
		t.Fatalf("error = %v, want OwnershipError", err)
	}
	h.assertNoSideEffects(t)
}

func TestGenerateDualEmailDuplicateIDsNoSideEffects(t *testing.T) {
	h := newHarness(t)
	id := h.addRecording(t, h.user, "rel.webm", true)

	_, err := h.svc.GenerateDualEmail(context.Background(), h.request(id, id))
	var dup *recording.DuplicateInputError
	if !errors.As(err, &dup) {
		t.Fatalf("error = %v, want DuplicateInputError", err)
	}
	h.assertNoSideEffects(t)
}

func TestGenerateDualEmailMissingFileNamesRole(t *testing.T) {
	h := newHarness(t)
	relID := h.addRecording(t, h.user, "rel.mp3", true)
	contID := h.addRecording(t, h.user, "cont.mp3", false)

	_, err := h.svc.GenerateDualEmail(context.Background(), h.request(relID, contID))
	var missing *recording.MissingFileError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingFileError", err)
	}
	if missing.Role != recording.RoleContent {
		t.Fatalf("role = %q, want %q", missing.Role, recording.RoleContent)
	}
	h.assertNoSideEffects(t)
}

func TestGenerateDualEmailUploadNeverReadyReturnsErrorsAsContent(t *testing.T) {
	h := newHarness(t)
	h.genai.stuck = true
	relID := h.addRecording(t, h.user, "rel.mp3", true)
	contID := h.addRecording(t, h.user, "cont.mp3", true)

	result, err := h.svc.GenerateDualEmail(context.Background(), h.request(relID, contID))
	if err != nil {
		t.Fatalf("GenerateDualEmail() error = %v, provider faults must degrade to content", err)
	}
	if !strings.Contains(result.Email, "Error") {
		t.Fatalf("email text does not explain the failure: %q", result.Email)
	}
	if result.ProcessingMethod != ProcessingMethodDirectAudio {
		t.Fatalf("processing method = %q", result.ProcessingMethod)
	}
}

func TestGenerateDualEmailProviderErrorReturnsErrorsAsContent(t *testing.T) {
	h := newHarness(t)
	h.genai.genErr = errors.New("quota exceeded")
	relID := h.addRecording(t, h.user, "rel.mp3", true)
	contID := h.addRecording(t, h.user, "cont.mp3", true)

	result, err := h.svc.GenerateDualEmail(context.Background(), h.request(relID, contID))
	if err != nil {
		t.Fatalf("GenerateDualEmail() error = %v", err)
	}
	if !strings.Contains(result.Email, "quota exceeded") {
		t.Fatalf("email text does not carry the provider error: %q", result.Email)
	}
}

func (h *harness) assertNoSideEffects(t *testing.T) {
	t.Helper()
	if h.runner.callCount() != 0 {
		t.Fatalf("ffmpeg calls = %d after resolution failure, want 0", h.runner.callCount())
	}
	if h.genai.uploadCount() != 0 {
		t.Fatalf("provider uploads = %d after resolution failure, want 0", h.genai.uploadCount())
	}
}
