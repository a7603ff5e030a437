package handler

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"filemanager/internal/auth"
	"filemanager/internal/domain"
	"filemanager/internal/service"
)

const maxUploadMemory = 32 << 20 // 32MB

type FileHandler struct {
	fileService *service.FileService
}

func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload обрабатывает POST /file/upload (multipart: file_name, file)
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userGUID, err := auth.VerifyToken(r)
	if err != nil {
		log.Printf("[Upload] Authentication failed: %v", err)
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ownerGUID, err := uuid.Parse(userGUID)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	fileName := r.FormValue("file_name")
	file, _, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if _, err := h.fileService.Upload(r.Context(), ownerGUID, fileName, file); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		log.Printf("[Upload] Failed to upload file: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeMessage(w, http.StatusCreated, "File uploaded successfully")
}

// List обрабатывает GET /file/list?size&page
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	userGUID, err := auth.VerifyToken(r)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	requesterGUID, err := uuid.Parse(userGUID)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	size := 30
	if v := r.URL.Query().Get("size"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			size = parsed
		}
	}
	page := 0
	if v := r.URL.Query().Get("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			page = parsed
		}
	}

	result, err := h.fileService.List(r.Context(), requesterGUID, page, size)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		log.Printf("[List] Error at file list: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Details обрабатывает GET /file/details?file_guid
func (h *FileHandler) Details(w http.ResponseWriter, r *http.Request) {
	userGUID, err := auth.VerifyToken(r)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	requesterGUID, err := uuid.Parse(userGUID)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	fileGUID, err := uuid.Parse(r.URL.Query().Get("file_guid"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "File not found")
		return
	}

	details, err := h.fileService.Details(r.Context(), requesterGUID, fileGUID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFileNotFound):
			writeMessage(w, http.StatusNotFound, "File not found")
		case errors.Is(err, domain.ErrAccessDenied):
			writeMessage(w, http.StatusUnauthorized, "Unauthorized. User does not have permission to view this file")
		case errors.Is(err, domain.ErrUserNotFound):
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		default:
			log.Printf("[Details] Failed to get file details: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	writeJSON(w, http.StatusOK, details)
}

// Download обрабатывает GET /file/download?file_guid и стримит содержимое
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	userGUID, err := auth.VerifyToken(r)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	requesterGUID, err := uuid.Parse(userGUID)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	fileGUID, err := uuid.Parse(r.URL.Query().Get("file_guid"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "File not found")
		return
	}

	download, err := h.fileService.Download(r.Context(), requesterGUID, fileGUID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFileNotFound):
			writeMessage(w, http.StatusNotFound, "File not found")
		case errors.Is(err, domain.ErrAccessDenied):
			writeMessage(w, http.StatusUnauthorized, "Unauthorized. User does not have permission to view this file")
		case errors.Is(err, domain.ErrUserNotFound):
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		default:
			log.Printf("[Download] Failed to get file content: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}
	defer download.Body.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Name))
	if download.ContentType != "" {
		w.Header().Set("Content-Type", download.ContentType)
	}
	if download.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(download.ContentLength, 10))
	}

	if _, err := io.Copy(w, download.Body); err != nil {
		log.Printf("[Download] Failed to stream file content: %v", err)
	}
}

// Update обрабатывает PUT /file/update (multipart: file_guid, file_name, file)
func (h *FileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userGUID, err := auth.VerifyToken(r)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	requesterGUID, err := uuid.Parse(userGUID)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	fileGUID, err := uuid.Parse(r.FormValue("file_guid"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "File not found")
		return
	}

	fileName := r.FormValue("file_name")
	file, _, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if _, err := h.fileService.Update(r.Context(), requesterGUID, fileGUID, fileName, file); err != nil {
		switch {
		case errors.Is(err, domain.ErrFileNotFound):
			writeMessage(w, http.StatusNotFound, "File not found")
		case errors.Is(err, domain.ErrAccessDenied):
			writeMessage(w, http.StatusUnauthorized, "Unauthorized. User does not have read access to this file")
		case errors.Is(err, domain.ErrUserNotFound):
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		default:
			log.Printf("[Update] Failed to update file: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	writeMessage(w, http.StatusOK, "File updated successfully")
}

// Delete обрабатывает DELETE /file/delete?file_guid
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userGUID, err := auth.VerifyToken(r)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	requesterGUID, err := uuid.Parse(userGUID)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	fileGUID, err := uuid.Parse(r.URL.Query().Get("file_guid"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "File Does not exist")
		return
	}

	if err := h.fileService.Delete(r.Context(), requesterGUID, fileGUID); err != nil {
		switch {
		case errors.Is(err, domain.ErrFileNotFound):
			writeMessage(w, http.StatusNotFound, "File Does not exist")
		case errors.Is(err, domain.ErrAccessDenied):
			writeMessage(w, http.StatusUnauthorized, "Unauthorized. User does not have permission to delete this file")
		case errors.Is(err, domain.ErrUserNotFound):
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		default:
			log.Printf("[Delete] Failed to delete file: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
