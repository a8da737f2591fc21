package recording

import (
	"errors"
	"fmt"
	"strings"
)

// InvalidIDError: a recording id is not a valid UUID. Caller error.
type InvalidIDError struct {
	ID string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid recording id %q", e.ID)
}

// DuplicateInputError: both ids of a dual request normalize to the same
// recording. Detected before any store query.
type DuplicateInputError struct {
	ID string
}

func (e *DuplicateInputError) Error() string {
	return fmt.Sprintf("relationship and content ids are the same recording: %s", e.ID)
}

// NotFoundError: neither id matches a recording owned by the user.
type NotFoundError struct {
	RelationshipID string
	ContentID      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no recordings found with ids %s and %s", e.RelationshipID, e.ContentID)
}

// OwnershipError: the recordings exist, but under a different owner. Kept
// distinct from NotFoundError to aid diagnosis; both are access denied.
type OwnershipError struct {
	UserID string
	Owners []string
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("recordings exist but belong to different user(s) %s, not %s",
		strings.Join(e.Owners, ", "), e.UserID)
}

// IncompleteResolutionError: exactly one of the two ids resolved.
type IncompleteResolutionError struct {
	MissingRole string
	MissingID   string
}

func (e *IncompleteResolutionError) Error() string {
	return fmt.Sprintf("missing %s recording with id %s", e.MissingRole, e.MissingID)
}

// AmbiguousResolutionError: the store returned a row count outside {0,1,2}.
// Should not happen under unique ids; treated as an internal fault.
type AmbiguousResolutionError struct {
	Count int
}

func (e *AmbiguousResolutionError) Error() string {
	return fmt.Sprintf("expected 2 recordings, store returned %d", e.Count)
}

// MissingFileError: the persisted storage location is empty or absent on disk.
// Reported per recording so the caller can tell which input is bad.
type MissingFileError struct {
	RecordingID string
	Role        string
	Path        string
}

func (e *MissingFileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s recording %s has no file path", e.Role, e.RecordingID)
	}
	return fmt.Sprintf("audio file not found on disk: %s (%s recording %s)", e.Path, e.Role, e.RecordingID)
}

// IsResolutionError reports whether err is one of the typed resolution faults.
func IsResolutionError(err error) bool {
	var (
		invalid   *InvalidIDError
		dup       *DuplicateInputError
		notFound  *NotFoundError
		ownership *OwnershipError
		partial   *IncompleteResolutionError
		ambiguous *AmbiguousResolutionError
		missing   *MissingFileError
	)
	return errors.As(err, &invalid) ||
		errors.As(err, &dup) ||
		errors.As(err, &notFound) ||
		errors.As(err, &ownership) ||
		errors.As(err, &partial) ||
		errors.As(err, &ambiguous) ||
		errors.As(err, &missing)
}
