package service

import (
	"context"

	"github.com/google/uuid"

	"filemanager/internal/auth"
	"filemanager/internal/domain"
	"filemanager/internal/repository"
)

// UserService управляет учетными записями: регистрация, подтверждение,
// вход, смена пароля и данных.
type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Signup создает неподтвержденную и неактивную учетную запись
func (s *UserService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		GUID:         uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Verify подтверждает учетную запись по guid из ссылки
func (s *UserService) Verify(ctx context.Context, guid uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByGUID(ctx, guid)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return nil, err
	}
	user.IsVerified = true
	user.IsActive = true

	return user, nil
}

// GetByEmail нужен для повторной выдачи ссылки подтверждения
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// Login сверяет пароль и выдает bearer-токен. Неизвестный email и неверный
// пароль неразличимы для вызывающего.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, "", domain.ErrUserNotVerified
	}

	token, err := auth.IssueToken(user.GUID.String())
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *UserService) ResetPassword(ctx context.Context, email, password string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, user.ID, hash)
}

// UpdateDetails меняет имя и email. Выданные токены при этом не
// отзываются, клиенту предлагается войти заново.
func (s *UserService) UpdateDetails(ctx context.Context, userGUID uuid.UUID, name, email string) error {
	user, err := s.userRepo.GetByGUID(ctx, userGUID)
	if err != nil {
		return err
	}

	return s.userRepo.UpdateDetails(ctx, user.ID, name, email)
}
