package pipeline

import (
	"context"
	"fmt"

	"voicecrm-backend/internal/ai"
	"voicecrm-backend/internal/recording"

	"github.com/google/uuid"
)

// ProcessingMethodDirectAudio tags results produced by the direct
// dual-audio-to-Gemini path, for downstream logging and analytics.
const ProcessingMethodDirectAudio = "direct_audio_to_gemini"

type Request struct {
	RelationshipRecordingID string
	ContentRecordingID      string
	UserID                  uuid.UUID
	RecipientName           string
	RecipientEmail          string
	Relationship            string
}

type Result struct {
	Email            string `json:"email"`
	ProcessingMethod string `json:"processing_method"`
}

// Failure wraps any fault escaping the pipeline stages that is not one of the
// typed resolution errors, so callers see one shape for the unexpected.
type Failure struct {
	Stage string
	Err   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("pipeline %s stage: %v", f.Stage, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

type Resolver interface {
	ResolveDual(ctx context.Context, relationshipID, contentID string, userID uuid.UUID) (*recording.ResolvedPair, error)
}

type Normalizer interface {
	EnsureMP3(ctx context.Context, path string, recordingID string) string
}

type Synthesizer interface {
	Synthesize(ctx context.Context, relationshipPath, contentPath string, rcpt ai.Recipient) ai.SynthesisResult
}

type Service interface {
	GenerateDualEmail(ctx context.Context, req Request) (*Result, error)
}
