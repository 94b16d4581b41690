package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/httpserver/deps"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Route("/bookmarks", func(r chi.Router) {
		r.Get("/", handlers.GetDocument(d))
		r.Post("/import", handlers.ImportBookmarks(d))
		r.Get("/export", handlers.ExportBookmarks(d))
		r.Get("/folders", handlers.ListFolders(d))
		r.Post("/reorder", handlers.ReorderBookmark(d))
		r.Post("/rename", handlers.RenameNode(d))
	})
}
