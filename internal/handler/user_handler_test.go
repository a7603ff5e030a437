package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filemanager/internal/auth"
)

func verifiedUserRow(t *testing.T, id int64, guid uuid.UUID, email, name, password string, verified bool) *sqlmock.Rows {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	return sqlmock.NewRows(userColumns).
		AddRow(id, guid.String(), email, name, hash, verified, verified, false, time.Now(), nil)
}

func TestSignupReturnsVerificationLink(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	body := strings.NewReader(`{"email":"a@example.com","name":"Alice","password":"secret"}`)
	req := httptest.NewRequest("POST", "/auth/signup", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Msg  string `json:"msg"`
		Link string `json:"link"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Link, "/auth/verify?guid=")
	assert.NotEmpty(t, resp.Msg)
}

func TestSignupDuplicateEmail(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})

	body := strings.NewReader(`{"email":"a@example.com","name":"Alice","password":"secret"}`)
	req := httptest.NewRequest("POST", "/auth/signup", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email is already registered")
}

func TestVerifyActivatesUser(t *testing.T) {
	r, mock := newTestRouter(t)

	guid := uuid.New()
	expectUserByGUID(mock, 1, guid, "a@example.com", "Alice")
	mock.ExpectExec("UPDATE users SET is_verified").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest("PATCH", "/auth/verify?guid="+guid.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome Alice")
}

func TestVerifyUnknownUser(t *testing.T) {
	r, mock := newTestRouter(t)

	guid := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM users WHERE guid`).
		WithArgs(guid).
		WillReturnRows(sqlmock.NewRows(userColumns))

	req := httptest.NewRequest("PATCH", "/auth/verify?guid="+guid.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginSuccess(t *testing.T) {
	r, mock := newTestRouter(t)

	guid := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM users WHERE email`).
		WithArgs("a@example.com").
		WillReturnRows(verifiedUserRow(t, 1, guid, "a@example.com", "Alice", "secret", true))

	body := strings.NewReader(`{"email":"a@example.com","password":"secret"}`)
	req := httptest.NewRequest("POST", "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		GUID  string `json:"guid"`
		Msg   string `json:"msg"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, guid.String(), resp.GUID)
	assert.Equal(t, "User Login Successful", resp.Msg)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	r, mock := newTestRouter(t)

	guid := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM users WHERE email`).
		WithArgs("a@example.com").
		WillReturnRows(verifiedUserRow(t, 1, guid, "a@example.com", "Alice", "secret", true))

	body := strings.NewReader(`{"email":"a@example.com","password":"wrong"}`)
	req := httptest.NewRequest("POST", "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid Credentials")
}

func TestLoginUnverifiedUser(t *testing.T) {
	r, mock := newTestRouter(t)

	guid := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM users WHERE email`).
		WithArgs("a@example.com").
		WillReturnRows(verifiedUserRow(t, 1, guid, "a@example.com", "Alice", "secret", false))

	body := strings.NewReader(`{"email":"a@example.com","password":"secret"}`)
	req := httptest.NewRequest("POST", "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "not verified")
}

func TestResetPasswordUnknownEmail(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(`SELECT \* FROM users WHERE email`).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns))

	body := strings.NewReader(`{"email":"ghost@example.com","password":"newpass"}`)
	req := httptest.NewRequest("POST", "/auth/password/reset", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No user with this email")
}

func TestLogout(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/auth/logout", nil)
	req.Header.Set("Authorization", bearerToken(t, uuid.New()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Logged out")
}

func TestLogoutWithoutToken(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/auth/logout", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
