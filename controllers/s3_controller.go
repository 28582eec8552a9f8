package controllers

import (
	"encoding/json"
	"net/http"

	"synapse_server/services"
)

// S3Controller issues presigned URLs for image uploads and reads
type S3Controller struct {
	S3Service *services.S3Service
}

func NewS3Controller(s3Service *services.S3Service) *S3Controller {
	return &S3Controller{S3Service: s3Service}
}

// GeneratePresignedURL generates a presigned URL for uploading a file.
// The returned key is what the client sends as an image message's content.
func (c *S3Controller) GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"error": "Invalid request payload"}`, http.StatusBadRequest)
		return
	}
	if payload.FileName == "" || payload.FileType == "" {
		http.Error(w, `{"error": "Missing required fields"}`, http.StatusBadRequest)
		return
	}

	url, key, err := c.S3Service.GenerateUploadURL(r.Context(), payload.FileName, payload.FileType)
	if err != nil {
		http.Error(w, `{"error": "Failed to generate pre-signed URL"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url, "key": key})
}

// GetPresignedReadURL resolves a stored object key to a readable URL
func (c *S3Controller) GetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		http.Error(w, `{"error": "Invalid request payload"}`, http.StatusBadRequest)
		return
	}

	url, err := c.S3Service.GenerateReadURL(r.Context(), payload.Key)
	if err != nil {
		http.Error(w, `{"error": "Failed to generate read pre-signed URL"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
