package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filemanager/internal/domain"
	"filemanager/internal/repository"
)

func TestCanWithActiveGrant(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewPermissionService(repository.NewAccessRepository(db))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(10), int64(7), domain.AccessDelete).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := svc.Can(context.Background(), 7, &domain.File{ID: 10}, domain.AccessDelete)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCanWithoutGrant(t *testing.T) {
	db, mock := newTestDB(t)
	svc := NewPermissionService(repository.NewAccessRepository(db))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(10), int64(7), domain.AccessDelete).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := svc.Can(context.Background(), 7, &domain.File{ID: 10}, domain.AccessDelete)
	require.NoError(t, err)
	assert.False(t, ok)
}

// Для удаленного файла право не действует даже при активной записи
func TestCanDeletedFile(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewPermissionService(repository.NewAccessRepository(db))

	ok, err := svc.Can(context.Background(), 7, &domain.File{ID: 10, IsDeleted: true}, domain.AccessDelete)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanNilFile(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewPermissionService(repository.NewAccessRepository(db))

	ok, err := svc.Can(context.Background(), 7, nil, domain.AccessRead)
	require.NoError(t, err)
	assert.False(t, ok)
}
