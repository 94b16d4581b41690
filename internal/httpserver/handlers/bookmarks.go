package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/bookmarks"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/exporter"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/httpserver/deps"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/importer"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/logger"
)

type importResponse struct {
	Source     string               `json:"source"`
	Statistics bookmarks.Statistics `json:"statistics"`
}

// ImportBookmarks accepts a raw browser export (Netscape HTML, Chromium JSON
// or canonical JSON), converts it into the canonical document and stores it
// as the owner's current one.
func ImportBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := ownerID(r, d)

		body, err := io.ReadAll(io.LimitReader(r.Body, d.MaxImportBytes+1))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read upload")
			return
		}
		if int64(len(body)) > d.MaxImportBytes {
			writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
			return
		}
		if len(strings.TrimSpace(string(body))) == 0 {
			writeError(w, http.StatusBadRequest, "empty upload")
			return
		}

		source := strings.TrimSpace(r.Header.Get("X-Bookmark-Source"))
		if source == "" {
			source = strings.TrimSpace(r.URL.Query().Get("source"))
		}
		if source == "" {
			source = "upload"
		}

		doc, err := importer.Parse(body, source)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := d.Documents.Save(r.Context(), owner, doc); err != nil {
			d.Logger.Error("failed to save imported document",
				logger.String("owner", owner),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to store document")
			return
		}

		d.Logger.Info("bookmark document imported",
			logger.String("owner", owner),
			logger.String("source", source),
			logger.Int("folders", doc.Statistics.TotalFolders),
			logger.Int("bookmarks", doc.Statistics.TotalBookmarks))

		writeJSON(w, http.StatusCreated, importResponse{
			Source:     source,
			Statistics: doc.Statistics,
		})
	}
}

// GetDocument returns the owner's full canonical document.
func GetDocument(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := ownerID(r, d)
		doc, ok := loadDocument(w, r, d, owner)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

// ExportBookmarks serializes the owner's document back to Netscape HTML.
func ExportBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := ownerID(r, d)
		doc, ok := loadDocument(w, r, d, owner)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="bookmarks.html"`)
		_, _ = io.WriteString(w, exporter.ToHTML(doc))
	}
}

type folderOptionsResponse struct {
	Folders []bookmarks.FolderOption `json:"folders"`
}

// ListFolders returns the flattened pre-order folder catalog for pickers.
func ListFolders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := ownerID(r, d)
		doc, ok := loadDocument(w, r, d, owner)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, folderOptionsResponse{
			Folders: bookmarks.CollectFolderOptions(doc),
		})
	}
}
