package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/bookmarks"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/httpserver/deps"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/logger"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/organize"
)

type createJobRequest struct {
	Strategy string `json:"strategy"`
	FolderID string `json:"folderId,omitempty"`
	Locale   string `json:"locale,omitempty"`
}

// CreateJob starts an asynchronous classification job over the owner's
// bookmarks (optionally scoped to one folder) and answers 202 with the
// pending snapshot.
func CreateJob(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := ownerID(r, d)

		var req createJobRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Strategy == "" {
			writeError(w, http.StatusBadRequest, "strategy is required")
			return
		}

		doc, ok := loadDocument(w, r, d, owner)
		if !ok {
			return
		}

		input := organize.CollectInputs(doc, req.FolderID)
		if len(input) == 0 {
			writeError(w, http.StatusBadRequest, "no bookmarks to classify")
			return
		}

		snap, err := d.Jobs.Create(organize.CreateRequest{
			Strategy:  req.Strategy,
			Bookmarks: input,
			Locale:    req.Locale,
		})
		if err != nil {
			if errors.Is(err, organize.ErrUnknownStrategy) || errors.Is(err, organize.ErrNoBookmarks) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			d.Logger.Error("failed to create classification job",
				logger.String("owner", owner),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to create job")
			return
		}

		writeJSON(w, http.StatusAccepted, snap)
	}
}

// GetJob returns the current snapshot of one job.
func GetJob(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		snap, ok := d.Jobs.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown job")
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

type jobListResponse struct {
	Jobs []organize.Snapshot `json:"jobs"`
}

// ListJobs returns snapshots of every known job.
func ListJobs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobs := d.Jobs.List()
		if jobs == nil {
			jobs = []organize.Snapshot{}
		}
		writeJSON(w, http.StatusOK, jobListResponse{Jobs: jobs})
	}
}

// CancelJob requests cancellation and returns the resulting snapshot.
func CancelJob(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		snap, ok := d.Jobs.Cancel(id)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown job")
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

type applyJobRequest struct {
	ContainerName string `json:"containerName,omitempty"`
}

type applyJobResponse struct {
	Statistics bookmarks.Statistics `json:"statistics"`
}

// ApplyJob grafts the plan of a succeeded job onto the owner's document.
func ApplyJob(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := ownerID(r, d)
		id := chi.URLParam(r, "id")

		// The body is optional; an absent one means default container name.
		var req applyJobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		snap, ok := d.Jobs.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown job")
			return
		}
		if snap.Status != organize.StatusSucceeded || snap.Result == nil || snap.Result.Plan == nil {
			writeError(w, http.StatusConflict, "job has no applicable result")
			return
		}
		input, ok := d.Jobs.Inputs(id)
		if !ok {
			writeError(w, http.StatusConflict, "job input is no longer available")
			return
		}

		doc, ok := loadDocument(w, r, d, owner)
		if !ok {
			return
		}

		after := organize.ApplyPlan(doc, input, snap.Result.Plan, req.ContainerName)
		if err := d.Documents.Save(r.Context(), owner, after); err != nil {
			d.Logger.Error("failed to save organized document",
				logger.String("owner", owner),
				logger.String("job_id", id),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to store document")
			return
		}

		d.Logger.Info("classification plan applied",
			logger.String("owner", owner),
			logger.String("job_id", id),
			logger.Int("groups", len(snap.Result.Plan.Groups)))

		writeJSON(w, http.StatusOK, applyJobResponse{Statistics: after.Statistics})
	}
}
