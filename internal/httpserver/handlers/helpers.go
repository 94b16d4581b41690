package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/bookmarks"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/httpserver/deps"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/store"
)

// ownerID resolves the calling user. Authentication lives in front of this
// service; the identity seam is a plain header with a configured fallback.
func ownerID(r *http.Request, d deps.Deps) string {
	if owner := strings.TrimSpace(r.Header.Get("X-Owner-ID")); owner != "" {
		return owner
	}
	return d.DefaultOwner
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// loadDocument fetches the owner's document and writes the HTTP error itself
// when there is nothing to load.
func loadDocument(w http.ResponseWriter, r *http.Request, d deps.Deps, owner string) (*bookmarks.Document, bool) {
	doc, err := d.Documents.Load(r.Context(), owner)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no bookmark document imported yet")
		} else {
			writeError(w, http.StatusInternalServerError, "failed to load document")
		}
		return nil, false
	}
	return doc, true
}
