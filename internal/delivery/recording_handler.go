package delivery

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"voicecrm-backend/internal/archive"
	"voicecrm-backend/internal/recording"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxUploadBytes = 50 << 20

type RecordingHandler struct {
	recordings recording.Service
	archiver   archive.Service
	log        *logger.ZapLogger
}

func NewRecordingHandler(recordings recording.Service, archiver archive.Service, log *logger.ZapLogger) *RecordingHandler {
	return &RecordingHandler{
		recordings: recordings,
		archiver:   archiver,
		log:        log,
	}
}

func (h *RecordingHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}

	audioType := r.FormValue("audio_type")
	if audioType != "" && audioType != recording.RoleRelationship && audioType != recording.RoleContent {
		http.Error(w, "audio_type must be relationship or content", http.StatusBadRequest)
		return
	}

	var contactID *uuid.UUID
	if raw := r.FormValue("contact_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid contact_id", http.StatusBadRequest)
			return
		}
		contactID = &id
	}

	rec, err := h.recordings.SaveUpload(r.Context(), userID, contactID,
		title, header.Filename, header.Header.Get("Content-Type"), audioType, file)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "upload failed", Error: err})
		http.Error(w, "failed to save recording: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Durability mirror, off the request path.
	go h.archiver.MirrorRecording(context.Background(), userID, rec.Filename, rec.Format, rec.FilePath)

	writeJSON(w, http.StatusCreated, map[string]any{
		"recording_id": rec.ID,
		"filename":     rec.Filename,
		"file_size":    rec.FileSize,
		"status":       rec.Status,
		"message":      "audio file saved successfully",
	})
}

func (h *RecordingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	recs, err := h.recordings.ListByUser(r.Context(), userID)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "list recordings failed", Error: err})
		http.Error(w, "failed to list recordings: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []recording.Recording{}
	}

	writeJSON(w, http.StatusOK, recs)
}

func (h *RecordingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "recording_id"))
	if err != nil {
		http.Error(w, "invalid recording id", http.StatusBadRequest)
		return
	}

	if err := h.recordings.Delete(r.Context(), id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "recording not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete recording: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
