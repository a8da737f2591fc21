package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"voicecrm-backend/internal/email"
	"voicecrm-backend/internal/pipeline"
	"voicecrm-backend/internal/recording"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/google/uuid"
)

type EmailHandler struct {
	pipeline pipeline.Service
	emails   email.Service
	log      *logger.ZapLogger
}

func NewEmailHandler(pipelineSvc pipeline.Service, emails email.Service, log *logger.ZapLogger) *EmailHandler {
	return &EmailHandler{
		pipeline: pipelineSvc,
		emails:   emails,
		log:      log,
	}
}

// GenerateDualEmail runs the whole dual-audio pipeline for one request.
func (h *EmailHandler) GenerateDualEmail(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req struct {
		RelationshipRecordingID string `json:"relationship_recording_id"`
		ContentRecordingID      string `json:"content_recording_id"`
		RecipientName           string `json:"recipient_name"`
		RecipientEmail          string `json:"recipient_email"`
		Relationship            string `json:"relationship"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Relationship == "" {
		req.Relationship = "professional"
	}

	result, err := h.pipeline.GenerateDualEmail(r.Context(), pipeline.Request{
		RelationshipRecordingID: req.RelationshipRecordingID,
		ContentRecordingID:      req.ContentRecordingID,
		UserID:                  userID,
		RecipientName:           req.RecipientName,
		RecipientEmail:          req.RecipientEmail,
		Relationship:            req.Relationship,
	})
	if err != nil {
		h.writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writePipelineError maps the resolution taxonomy onto status codes. Both
// not-found and foreign ownership deny access; the status split (404/403)
// mirrors the message split and aids diagnosis.
func (h *EmailHandler) writePipelineError(w http.ResponseWriter, err error) {
	var (
		invalid   *recording.InvalidIDError
		dup       *recording.DuplicateInputError
		notFound  *recording.NotFoundError
		ownership *recording.OwnershipError
		partial   *recording.IncompleteResolutionError
		ambiguous *recording.AmbiguousResolutionError
		missing   *recording.MissingFileError
		failure   *pipeline.Failure
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &invalid), errors.As(err, &dup):
		status = http.StatusBadRequest
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &ownership):
		status = http.StatusForbidden
	case errors.As(err, &partial):
		status = http.StatusBadRequest
	case errors.As(err, &ambiguous), errors.As(err, &missing), errors.As(err, &failure):
		h.log.Log(logger.LogEntry{Level: "error", Message: "pipeline fault", Error: err})
	default:
		h.log.Log(logger.LogEntry{Level: "error", Message: "unexpected pipeline error", Error: err})
	}

	http.Error(w, err.Error(), status)
}

func (h *EmailHandler) Approve(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req struct {
		ContactID    uuid.UUID `json:"contact_id"`
		RecordingID  uuid.UUID `json:"recording_id"`
		EmailContent string    `json:"email_content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	approved, err := h.emails.Approve(r.Context(), userID, req.ContactID, req.RecordingID, req.EmailContent)
	if err != nil {
		http.Error(w, "failed to approve email: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, approved)
}

func (h *EmailHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	emails, err := h.emails.ListByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to list emails: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if emails == nil {
		emails = []email.ApprovedEmail{}
	}

	writeJSON(w, http.StatusOK, emails)
}
