package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"filemanager/internal/domain"
	"filemanager/internal/service"
)

// AccessHandler обслуживает шесть симметричных операций выдачи и отзыва
// прав: /access/{read|update|delete}/{create|remove}. Сегмент update
// исторически означает право записи.
type AccessHandler struct {
	accessService *service.AccessService
}

type accessRequest struct {
	UserEmail string `json:"user_email"`
	FileGUID  string `json:"file_guid"`
}

func NewAccessHandler(accessService *service.AccessService) *AccessHandler {
	return &AccessHandler{accessService: accessService}
}

func kindFromPath(r *http.Request) (domain.AccessKind, bool) {
	switch chi.URLParam(r, "kind") {
	case "read":
		return domain.AccessRead, true
	case "update":
		return domain.AccessWrite, true
	case "delete":
		return domain.AccessDelete, true
	}
	return "", false
}

func (h *AccessHandler) bind(w http.ResponseWriter, r *http.Request) (domain.AccessKind, string, uuid.UUID, bool) {
	kind, ok := kindFromPath(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not Found")
		return "", "", uuid.Nil, false
	}

	var req accessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return "", "", uuid.Nil, false
	}

	fileGUID, err := uuid.Parse(req.FileGUID)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "File Not Found")
		return "", "", uuid.Nil, false
	}

	return kind, req.UserEmail, fileGUID, true
}

// Create обрабатывает POST /access/{kind}/create
func (h *AccessHandler) Create(w http.ResponseWriter, r *http.Request) {
	kind, userEmail, fileGUID, ok := h.bind(w, r)
	if !ok {
		return
	}

	userName, err := h.accessService.Grant(r.Context(), kind, userEmail, fileGUID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			writeMessage(w, http.StatusNotFound, "User Not Found")
		case errors.Is(err, domain.ErrFileNotFound):
			writeMessage(w, http.StatusNotFound, "File Not Found")
		case errors.Is(err, domain.ErrAccessExists):
			writeMessage(w, http.StatusConflict, fmt.Sprintf("User already has %s access", kind))
		default:
			log.Printf("[CreateAccess] Failed to grant %s access: %v", kind, err)
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	writeMessage(w, http.StatusCreated, fmt.Sprintf("User %s has been provided %s access", userName, kind))
}

// Remove обрабатывает POST /access/{kind}/remove
func (h *AccessHandler) Remove(w http.ResponseWriter, r *http.Request) {
	kind, userEmail, fileGUID, ok := h.bind(w, r)
	if !ok {
		return
	}

	userName, err := h.accessService.Revoke(r.Context(), kind, userEmail, fileGUID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			writeMessage(w, http.StatusNotFound, "User Not Found")
		case errors.Is(err, domain.ErrFileNotFound):
			writeMessage(w, http.StatusNotFound, "File Not Found")
		case errors.Is(err, domain.ErrAccessMissing):
			writeMessage(w, http.StatusConflict, fmt.Sprintf("User does not have %s access for this file", kind))
		default:
			log.Printf("[RemoveAccess] Failed to revoke %s access: %v", kind, err)
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	writeMessage(w, http.StatusCreated, fmt.Sprintf("User %s %s access has been removed", userName, kind))
}
