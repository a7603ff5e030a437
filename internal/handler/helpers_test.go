package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"filemanager/internal/auth"
	"filemanager/internal/repository"
	"filemanager/internal/service"
	"filemanager/internal/service/s3"
)

func init() {
	auth.Init(&auth.Config{Secret: "test-secret", Issuer: "filemanager", TokenTTL: time.Hour})
}

type fakeStorage struct {
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) UploadFile(key string, file multipart.File) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) GetObject(ctx context.Context, key string) (s3.S3Object, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", key)
	}
	return fakeObject{
		ReadCloser:    io.NopCloser(bytes.NewReader(data)),
		contentLength: int64(len(data)),
		contentType:   "application/octet-stream",
	}, nil
}

// fakeObject отдает сохраненные байты как объект хранилища
type fakeObject struct {
	io.ReadCloser
	contentLength int64
	contentType   string
}

func (o fakeObject) ContentLength() int64 { return o.contentLength }
func (o fakeObject) ContentType() string  { return o.contentType }

func (f *fakeStorage) DeleteObject(key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) ObjectURL(key string) string {
	return "https://storage.test/files/" + key
}

// newTestRouter собирает роутер с теми же маршрутами, что и main
func newTestRouter(t *testing.T) (chi.Router, sqlmock.Sqlmock) {
	r, mock, _ := newTestRouterWithStorage(t)
	return r, mock
}

func newTestRouterWithStorage(t *testing.T) (chi.Router, sqlmock.Sqlmock, *fakeStorage) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	db := sqlx.NewDb(mockDB, "sqlmock")

	storage := newFakeStorage()

	userRepo := repository.NewUserRepository(db)
	fileRepo := repository.NewFileRepository(db)
	accessRepo := repository.NewAccessRepository(db)

	permissionService := service.NewPermissionService(accessRepo)
	fileService := service.NewFileService(fileRepo, userRepo, accessRepo, permissionService, storage)
	accessService := service.NewAccessService(accessRepo, fileRepo, userRepo)
	userService := service.NewUserService(userRepo)

	fileHandler := NewFileHandler(fileService)
	accessHandler := NewAccessHandler(accessService)
	userHandler := NewUserHandler(userService)

	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", userHandler.Signup)
		r.Patch("/verify", userHandler.Verify)
		r.Get("/get/verification", userHandler.GetVerificationLink)
		r.Post("/login", userHandler.Login)
		r.Post("/password/reset", userHandler.ResetPassword)
		r.Patch("/update/details", userHandler.UpdateDetails)
		r.Get("/logout", userHandler.Logout)
	})
	r.Route("/file", func(r chi.Router) {
		r.Post("/upload", fileHandler.Upload)
		r.Get("/list", fileHandler.List)
		r.Get("/details", fileHandler.Details)
		r.Get("/download", fileHandler.Download)
		r.Put("/update", fileHandler.Update)
		r.Delete("/delete", fileHandler.Delete)
	})
	r.Route("/access/{kind}", func(r chi.Router) {
		r.Post("/create", accessHandler.Create)
		r.Post("/remove", accessHandler.Remove)
	})

	return r, mock, storage
}

func bearerToken(t *testing.T, guid uuid.UUID) string {
	t.Helper()

	token, err := auth.IssueToken(guid.String())
	require.NoError(t, err)
	return "Bearer " + token
}

var userColumns = []string{
	"id", "guid", "email", "name", "password_hash",
	"is_verified", "is_active", "is_deleted", "created_at", "deleted_at",
}

func userRow(id int64, guid uuid.UUID, email, name string) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).
		AddRow(id, guid.String(), email, name, "hash", true, true, false, time.Now(), nil)
}

var fileColumns = []string{
	"id", "guid", "name", "content_key", "owner_id",
	"is_deleted", "created_at", "updated_at", "deleted_at",
}

func fileRow(id int64, guid uuid.UUID, name string, ownerID int64) *sqlmock.Rows {
	key := fmt.Sprintf("uploads/file/%s", guid)
	return sqlmock.NewRows(fileColumns).
		AddRow(id, guid.String(), name, key, ownerID, false, time.Now(), time.Now(), nil)
}

func expectUserByGUID(mock sqlmock.Sqlmock, id int64, guid uuid.UUID, email, name string) {
	mock.ExpectQuery(`SELECT \* FROM users WHERE guid`).
		WithArgs(guid).
		WillReturnRows(userRow(id, guid, email, name))
}

func expectFileByGUID(mock sqlmock.Sqlmock, id int64, guid uuid.UUID, name string, ownerID int64) {
	mock.ExpectQuery(`SELECT \* FROM files WHERE guid`).
		WithArgs(guid).
		WillReturnRows(fileRow(id, guid, name, ownerID))
}

func expectHasActive(mock sqlmock.Sqlmock, fileID, userID int64, kind string, active bool) {
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(fileID, userID, kind).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(active))
}

func jsonHeader(req *http.Request) *http.Request {
	req.Header.Set("Content-Type", "application/json")
	return req
}
