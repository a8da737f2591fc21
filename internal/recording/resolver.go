package recording

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
)

// ResolveDual implements the dual-recording resolution ladder. Ids may arrive
// in structured or textual form, so every comparison goes through the
// canonical uuid string.
func (s *service) ResolveDual(ctx context.Context, relationshipID, contentID string, userID uuid.UUID) (*ResolvedPair, error) {
	relID, err := uuid.Parse(strings.TrimSpace(relationshipID))
	if err != nil {
		return nil, &InvalidIDError{ID: relationshipID}
	}
	contID, err := uuid.Parse(strings.TrimSpace(contentID))
	if err != nil {
		return nil, &InvalidIDError{ID: contentID}
	}

	// Caller error, rejected before touching the store.
	if relID == contID {
		return nil, &DuplicateInputError{ID: relID.String()}
	}

	ids := []uuid.UUID{relID, contID}
	recs, err := s.repo.GetByIDsForUser(ctx, ids, userID)
	if err != nil {
		return nil, err
	}

	switch len(recs) {
	case 2:
		// fall through
	case 0:
		// Distinguish "nothing exists" from "exists under another owner".
		owners, oerr := s.repo.GetOwners(ctx, ids)
		if oerr != nil {
			log.Printf("[resolver] owner diagnosis failed: %v", oerr)
		}
		if len(owners) > 0 {
			seen := map[string]bool{}
			var foreign []string
			for _, owner := range owners {
				o := owner.String()
				if !seen[o] {
					seen[o] = true
					foreign = append(foreign, o)
				}
			}
			return nil, &OwnershipError{UserID: userID.String(), Owners: foreign}
		}
		return nil, &NotFoundError{RelationshipID: relID.String(), ContentID: contID.String()}
	case 1:
		missingRole, missingID := RoleContent, contID
		if recs[0].ID != relID {
			missingRole, missingID = RoleRelationship, relID
		}
		return nil, &IncompleteResolutionError{MissingRole: missingRole, MissingID: missingID.String()}
	default:
		return nil, &AmbiguousResolutionError{Count: len(recs)}
	}

	// Role assignment by id match, never by row order: one map keyed by the
	// canonical id string, populated once, looked up twice.
	byID := make(map[string]Recording, len(recs))
	for _, rec := range recs {
		byID[rec.ID.String()] = rec
	}

	pair := &ResolvedPair{}
	for _, want := range []struct {
		role string
		id   uuid.UUID
		dst  *string
	}{
		{RoleRelationship, relID, &pair.RelationshipPath},
		{RoleContent, contID, &pair.ContentPath},
	} {
		rec, ok := byID[want.id.String()]
		if !ok {
			return nil, &IncompleteResolutionError{MissingRole: want.role, MissingID: want.id.String()}
		}
		if rec.FilePath == "" {
			return nil, &MissingFileError{RecordingID: rec.ID.String(), Role: want.role}
		}
		if _, err := os.Stat(rec.FilePath); err != nil {
			return nil, &MissingFileError{RecordingID: rec.ID.String(), Role: want.role, Path: rec.FilePath}
		}
		*want.dst = rec.FilePath
	}

	return pair, nil
}
