package domain

import (
	"github.com/google/uuid"
	"time"
)

// User представляет учетную запись пользователя
type User struct {
	ID           int64      `json:"-" db:"id"`
	GUID         uuid.UUID  `json:"guid" db:"guid"`
	Email        string     `json:"email" db:"email"`
	Name         string     `json:"name" db:"name"`
	PasswordHash string     `json:"-" db:"password_hash"`
	IsVerified   bool       `json:"is_verified" db:"is_verified"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	IsDeleted    bool       `json:"-" db:"is_deleted"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}

// UserSummary возвращается в списках доступов к файлу
type UserSummary struct {
	GUID      uuid.UUID `json:"guid" db:"guid"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
}
