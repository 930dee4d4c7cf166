package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/fosel/chirp/internal/storage"
)

const maxUploadSize = 20 << 20 // 20MB

// UploadHandler turns multipart image uploads into URIs via the storage
// strategy chosen at startup. The content service only ever sees the
// returned URI strings.
type UploadHandler struct {
	store storage.Strategy
	log   *zap.Logger
}

func NewUploadHandler(store storage.Strategy, log *zap.Logger) *UploadHandler {
	return &UploadHandler{store: store, log: log}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_UPLOAD", "Invalid multipart body")
		return
	}

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "NO_FILES", "No image files provided")
		return
	}

	uris := make([]string, 0, len(files))
	for _, header := range files {
		f, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_UPLOAD", "Unreadable file in upload")
			return
		}

		uri, err := h.store.Save(header.Filename, f)
		f.Close()
		if err != nil {
			h.log.Error("storing upload failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
			return
		}
		uris = append(uris, uri)
	}

	writeJSON(w, http.StatusOK, uris)
}
