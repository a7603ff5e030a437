package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"filemanager/internal/auth"
	"filemanager/internal/domain"
	"filemanager/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type verificationResponse struct {
	Msg  string `json:"msg"`
	Link string `json:"link"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	GUID      uuid.UUID `json:"guid"`
	CreatedAt string    `json:"created_at"`
	Msg       string    `json:"msg"`
	Token     string    `json:"token"`
}

type resetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateDetailsRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func verificationLink(r *http.Request, userGUID uuid.UUID) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/auth/verify?guid=%s", scheme, r.Host, userGUID)
}

// Signup обрабатывает POST /auth/signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.userService.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			writeMessage(w, http.StatusConflict, "Email is already registered")
			return
		}
		log.Printf("[Signup] Failed to create user: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusCreated, verificationResponse{
		Msg:  "Please use this link to verify user before login",
		Link: verificationLink(r, user.GUID),
	})
}

// Verify обрабатывает PATCH /auth/verify?guid.
// Подтверждение одноразовое по смыслу: повторный вызов ничего не меняет.
func (h *UserHandler) Verify(w http.ResponseWriter, r *http.Request) {
	guid, err := uuid.Parse(r.URL.Query().Get("guid"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "User not found for verification")
		return
	}

	user, err := h.userService.Verify(r.Context(), guid)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found for verification")
			return
		}
		log.Printf("[Verify] Failed to verify user: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Msg string `json:"msg"`
	}{Msg: "Welcome " + user.Name})
}

// GetVerificationLink обрабатывает GET /auth/get/verification?email
func (h *UserHandler) GetVerificationLink(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	user, err := h.userService.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeMessage(w, http.StatusNotFound, "No user with this email")
			return
		}
		log.Printf("[GetVerificationLink] Failed to get user: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, verificationResponse{
		Msg:  "Please use this link to verify user before login",
		Link: verificationLink(r, user.GUID),
	})
}

// Login обрабатывает POST /auth/login.
// Неверные учетные данные отдаются как 404, вслед за исходным API.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeMessage(w, http.StatusNotFound, "Invalid Credentials")
		case errors.Is(err, domain.ErrUserNotVerified):
			writeMessage(w, http.StatusUnauthorized, "User is not verified. Verify the user using the verification link")
		default:
			log.Printf("[Login] Failed to login: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		GUID:      user.GUID,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Msg:       "User Login Successful",
		Token:     token,
	})
}

// ResetPassword обрабатывает POST /auth/password/reset
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.userService.ResetPassword(r.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeMessage(w, http.StatusNotFound, "No user with this email")
			return
		}
		log.Printf("[ResetPassword] Failed to reset password: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeMessage(w, http.StatusOK, "Password Changed Successfully")
}

// UpdateDetails обрабатывает PATCH /auth/update/details
func (h *UserHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	userGUID, err := auth.VerifyToken(r)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	guid, err := uuid.Parse(userGUID)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req updateDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.userService.UpdateDetails(r.Context(), guid, req.Name, req.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		case errors.Is(err, domain.ErrEmailTaken):
			writeMessage(w, http.StatusConflict, "Email is already registered")
		default:
			log.Printf("[UpdateDetails] Failed to update details: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Details changed successfully. Kindly Log back in to view the new details")
}

// Logout обрабатывает GET /auth/logout. Токены не хранятся на сервере,
// дальше клиент просто забывает свой.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.VerifyToken(r); err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	writeMessage(w, http.StatusOK, "Logged out")
}
