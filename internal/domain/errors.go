package domain

import "errors"

// Ожидаемые ошибки операций. Хендлеры маппят их на фиксированные HTTP-статусы,
// все остальное отдается как 500 без деталей.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrFileNotFound       = errors.New("file not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrAccessExists       = errors.New("access already granted")
	ErrAccessMissing      = errors.New("access does not exist")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotVerified    = errors.New("user is not verified")
)
