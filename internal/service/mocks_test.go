package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"filemanager/internal/service/s3"
)

func newTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
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

// fakeStorage подменяет S3 в тестах
type fakeStorage struct {
	objects map[string][]byte
	deleted []string
	failPut bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) UploadFile(key string, file multipart.File) error {
	if f.failPut {
		return fmt.Errorf("storage unavailable")
	}
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
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) ObjectURL(key string) string {
	return "https://storage.test/files/" + key
}

// memFile реализует multipart.File поверх байтов
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func newMemFile(content string) multipart.File {
	return memFile{bytes.NewReader([]byte(content))}
}
