package ai

import "context"

type FileState int

const (
	FileStateProcessing FileState = iota
	FileStateActive
	FileStateFailed
)

func (s FileState) String() string {
	switch s {
	case FileStateActive:
		return "ACTIVE"
	case FileStateFailed:
		return "FAILED"
	default:
		return "PROCESSING"
	}
}

// UploadedFile is the provider's opaque blob handle with its readiness state.
type UploadedFile struct {
	Name     string
	URI      string
	MIMEType string
	State    FileState
}

// Client is the slice of the provider the synthesizer needs: blob upload with
// a polled readiness state, and one multimodal generation call.
type Client interface {
	UploadFile(ctx context.Context, path string) (*UploadedFile, error)
	GetFile(ctx context.Context, name string) (*UploadedFile, error)
	GenerateFromFiles(ctx context.Context, prompt string, files []*UploadedFile) (string, error)
}

type Recipient struct {
	Name         string
	Email        string
	Relationship string
}

// Failure reason codes.
const (
	ReasonUploadFailed     = "upload_failed"
	ReasonNotReady         = "not_ready"
	ReasonGenerationFailed = "generation_failed"
)

// SynthesisResult is a tagged result: either generated text, or a failure
// variant whose Text still carries human-readable guidance. Callers can
// branch on Failed instead of sniffing strings, and UI-facing layers can
// keep returning the Text as-is.
type SynthesisResult struct {
	Text   string
	Failed bool
	Reason string
}

type Service interface {
	// Synthesize never returns a Go error: provider-side faults come back
	// as a failure-variant SynthesisResult.
	Synthesize(ctx context.Context, relationshipPath, contentPath string, rcpt Recipient) SynthesisResult
}
