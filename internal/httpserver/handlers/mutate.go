package handlers

import (
	"net/http"
	"strings"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/bookmarks"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/httpserver/deps"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/logger"
)

type mutationResponse struct {
	Changed    bool                 `json:"changed"`
	Statistics bookmarks.Statistics `json:"statistics"`
}

// saveMutated persists the mutated document when the mutator actually changed
// something. Statistics and the generation timestamp are restamped here, once
// per request, never inside the pure mutators.
func saveMutated(w http.ResponseWriter, r *http.Request, d deps.Deps, owner string, before, after *bookmarks.Document) {
	if after == before {
		writeJSON(w, http.StatusOK, mutationResponse{Changed: false, Statistics: before.Statistics})
		return
	}

	stamped := bookmarks.Restamp(after)
	if err := d.Documents.Save(r.Context(), owner, stamped); err != nil {
		d.Logger.Error("failed to save mutated document",
			logger.String("owner", owner),
			logger.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store document")
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Changed: true, Statistics: stamped.Statistics})
}

type reorderRequest struct {
	FolderID    string `json:"folderId"`
	BookmarkID  string `json:"bookmarkId"`
	TargetIndex int    `json:"targetIndex"`
}

// ReorderBookmark moves a bookmark among its bookmark siblings inside one
// folder. Unknown ids are a no-op, not an error.
func ReorderBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := ownerID(r, d)

		var req reorderRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.FolderID == "" || req.BookmarkID == "" {
			writeError(w, http.StatusBadRequest, "folderId and bookmarkId are required")
			return
		}

		doc, ok := loadDocument(w, r, d, owner)
		if !ok {
			return
		}

		after := bookmarks.ReorderBookmark(doc, req.FolderID, req.BookmarkID, req.TargetIndex)
		saveMutated(w, r, d, owner, doc, after)
	}
}

type renameRequest struct {
	NodeID string `json:"nodeId"`
	Kind   string `json:"kind"` // "bookmark" | "folder"
	Name   string `json:"name"`
}

// RenameNode renames a bookmark or folder by id.
func RenameNode(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := ownerID(r, d)

		var req renameRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.NodeID == "" {
			writeError(w, http.StatusBadRequest, "nodeId is required")
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		doc, ok := loadDocument(w, r, d, owner)
		if !ok {
			return
		}

		var after *bookmarks.Document
		switch req.Kind {
		case "bookmark":
			after = bookmarks.RenameBookmark(doc, req.NodeID, req.Name)
		case "folder":
			after = bookmarks.RenameFolder(doc, req.NodeID, req.Name)
		default:
			writeError(w, http.StatusBadRequest, `kind must be "bookmark" or "folder"`)
			return
		}

		saveMutated(w, r, d, owner, doc, after)
	}
}
