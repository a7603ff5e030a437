package domain

import (
	"github.com/google/uuid"
	"time"
)

// AccessKind определяет вид права доступа к файлу
type AccessKind string

const (
	AccessRead   AccessKind = "read"
	AccessWrite  AccessKind = "write"
	AccessDelete AccessKind = "delete"
)

// Valid проверяет, что значение является одним из трех видов доступа
func (k AccessKind) Valid() bool {
	switch k {
	case AccessRead, AccessWrite, AccessDelete:
		return true
	}
	return false
}

func (k AccessKind) String() string {
	return string(k)
}

// AccessGrant связывает пользователя с файлом для одного вида операций.
// Отзыв права помечает запись удаленной, строка остается в таблице.
type AccessGrant struct {
	ID        int64      `json:"-" db:"id"`
	GUID      uuid.UUID  `json:"guid" db:"guid"`
	FileID    int64      `json:"-" db:"file_id"`
	UserID    int64      `json:"-" db:"user_id"`
	Kind      AccessKind `json:"kind" db:"kind"`
	IsDeleted bool       `json:"-" db:"is_deleted"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}
