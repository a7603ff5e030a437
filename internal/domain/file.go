package domain

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// File представляет метаданные загруженного файла.
// Содержимое хранится в S3, в базе только ключ объекта.
type File struct {
	ID         int64      `json:"-" db:"id"`
	GUID       uuid.UUID  `json:"guid" db:"guid"`
	Name       string     `json:"file_name" db:"name"`
	ContentKey string     `json:"-" db:"content_key"`
	OwnerID    int64      `json:"-" db:"owner_id"`
	IsDeleted  bool       `json:"-" db:"is_deleted"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt  *time.Time `json:"-" db:"deleted_at"`
}

// FileDownload — содержимое файла для отдачи клиенту.
// Body закрывает вызывающая сторона.
type FileDownload struct {
	Name          string
	ContentType   string
	ContentLength int64
	Body          io.ReadCloser
}

// FileSummary — строка списка файлов
type FileSummary struct {
	GUID       uuid.UUID `json:"guid" db:"guid"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	Name       string    `json:"file_name" db:"name"`
	OwnerGUID  uuid.UUID `json:"file_owner_guid" db:"owner_guid"`
	URL        string    `json:"file" db:"-"`
	ContentKey string    `json:"-" db:"content_key"`
}

// FileDetails — полная карточка файла со списками доступов
type FileDetails struct {
	GUID             uuid.UUID     `json:"guid"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	Name             string        `json:"file_name"`
	OwnerGUID        uuid.UUID     `json:"file_owner_guid"`
	URL              string        `json:"file"`
	UserReadAccess   []UserSummary `json:"user_read_access"`
	UserWriteAccess  []UserSummary `json:"user_write_access"`
	UserDeleteAccess []UserSummary `json:"user_delete_access"`
}

// FilePage — страница списка файлов
type FilePage struct {
	Page       int           `json:"page"`
	Size       int           `json:"size"`
	TotalItems int           `json:"total_items"`
	TotalPages int           `json:"total_pages"`
	HasNext    bool          `json:"has_next"`
	HasPrev    bool          `json:"has_prev"`
	Data       []FileSummary `json:"data"`
}
