package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/api/dto"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/infra/objectstore"
)

// UploadHandler - выдача presigned-ссылок для загрузки фото в объектное хранилище.
type UploadHandler struct {
	Photos *objectstore.PhotoStore
}

// NewUploadHandler возвращает новый UploadHandler.
func NewUploadHandler(photos *objectstore.PhotoStore) *UploadHandler {
	return &UploadHandler{Photos: photos}
}

// Presign обрабатывает POST /uploads/presign
func (h *UploadHandler) Presign(w http.ResponseWriter, r *http.Request) {
	var req dto.PresignUploadRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "invalid JSON")
		return
	}

	if req.FileName == "" {
		respondError(w, http.StatusBadRequest, string(InvalidRequest), "file_name is required")
		return
	}

	upload, err := h.Photos.PresignUpload(r.Context(), req.FileName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ISSUE", "failed to presign upload")
		return
	}

	respondJSON(w, http.StatusOK, dto.PresignUploadResponse{
		UploadURL: upload.UploadURL,
		PhotoURL:  upload.PhotoURL,
		ObjectKey: upload.ObjectKey,
	})
}
