// Package api exposes heap commands over HTTP with JSON bodies.
//
//	POST /v1/heap/commands  {"kind":"insert","value":5}
//	GET  /v1/heap
package api

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/tufitko/minmaxheap/pkg/command"
	"github.com/tufitko/minmaxheap/pkg/encoding/json"
	"github.com/tufitko/minmaxheap/pkg/heap"
	"github.com/tufitko/minmaxheap/pkg/logging"
)

const maxBodyBytes = 1 << 20

// Executor runs commands and exposes the heap it owns.
type Executor interface {
	Execute(ctx context.Context, cmd command.Command) (command.Result, error)
	Snapshot() (elements []int, valid bool)
}

type Handler struct {
	executor Executor
	logger   logging.Logger
	mux      *http.ServeMux
}

func NewHandler(executor Executor, logger logging.Logger) *Handler {
	h := &Handler{
		executor: executor,
		logger:   logger.WithField("service", "api"),
		mux:      http.NewServeMux(),
	}
	h.mux.HandleFunc("/v1/heap/commands", h.commands)
	h.mux.HandleFunc("/v1/heap", h.snapshot)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

//easyjson:json
type snapshotResponse struct {
	Elements []int `json:"elements"`
	Len      int   `json:"len"`
	Valid    bool  `json:"valid"`
}

// SnapshotHandler serves the current heap. It is mounted on the diagnostics
// server as well.
func (h *Handler) SnapshotHandler() http.HandlerFunc {
	return h.snapshot
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		h.writeError(w, http.StatusMethodNotAllowed, errors.New(http.StatusText(http.StatusMethodNotAllowed)))
		return
	}

	elements, valid := h.executor.Snapshot()
	body, err := json.Marshal(snapshotResponse{Elements: elements, Len: len(elements), Valid: valid})
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	etag := `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	h.writeBody(w, http.StatusOK, body)
}

func (h *Handler) commands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		h.writeError(w, http.StatusMethodNotAllowed, errors.New(http.StatusText(http.StatusMethodNotAllowed)))
		return
	}

	var cmd command.Command
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&cmd); err != nil {
		h.writeError(w, http.StatusBadRequest, errors.Wrap(err, "decode command"))
		return
	}
	if err := command.CheckRemote(cmd); err != nil {
		h.writeError(w, StatusCode(err), err)
		return
	}

	res, err := h.executor.Execute(r.Context(), cmd)
	if err != nil {
		h.writeError(w, StatusCode(err), err)
		return
	}

	body, err := json.Marshal(res)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeBody(w, http.StatusOK, body)
}

// StatusCode maps command errors to HTTP statuses.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, heap.ErrIndexOutOfRange),
		errors.Is(err, heap.ErrMalformedInput),
		errors.Is(err, command.ErrUnknownCommand),
		errors.Is(err, command.ErrPathNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, heap.ErrEmptyHeap):
		return http.StatusConflict
	case errors.Is(err, heap.ErrSourceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.WithError(err).Error("failed to write http response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).Error("request failed")
	}
	body, mErr := json.Marshal(struct {
		Error string `json:"error"`
	}{Error: err.Error()})
	if mErr != nil {
		h.logger.WithError(mErr).Error("failed to marshal response")
	}
	h.writeBody(w, status, body)
}
