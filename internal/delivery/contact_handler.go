package delivery

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"voicecrm-backend/internal/contact"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ContactHandler struct {
	contacts contact.Service
}

func NewContactHandler(contacts contact.Service) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var c contact.Contact
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	created, err := h.contacts.Create(r.Context(), userID, &c)
	if err != nil {
		http.Error(w, "failed to create contact: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	contacts, err := h.contacts.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to list contacts: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if contacts == nil {
		contacts = []contact.Contact{}
	}

	writeJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	contacts, err := h.contacts.ListFavorites(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to list favorites: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if contacts == nil {
		contacts = []contact.Contact{}
	}

	writeJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "contact_id"))
	if err != nil {
		http.Error(w, "invalid contact id", http.StatusBadRequest)
		return
	}

	c, err := h.contacts.Get(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "contact not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to get contact: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "contact_id"))
	if err != nil {
		http.Error(w, "invalid contact id", http.StatusBadRequest)
		return
	}

	var upd contact.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	c, err := h.contacts.Update(r.Context(), id, userID, upd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "contact not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to update contact: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *ContactHandler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	h.setFavorite(w, r, true)
}

func (h *ContactHandler) UnsetFavorite(w http.ResponseWriter, r *http.Request) {
	h.setFavorite(w, r, false)
}

func (h *ContactHandler) setFavorite(w http.ResponseWriter, r *http.Request, favorite bool) {
	userID, _ := UserIDFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "contact_id"))
	if err != nil {
		http.Error(w, "invalid contact id", http.StatusBadRequest)
		return
	}

	if err := h.contacts.SetFavorite(r.Context(), id, userID, favorite); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "contact not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to update favorite: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"is_favorite": favorite})
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "contact_id"))
	if err != nil {
		http.Error(w, "invalid contact id", http.StatusBadRequest)
		return
	}

	if err := h.contacts.Delete(r.Context(), id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "contact not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete contact: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
